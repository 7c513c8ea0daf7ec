package game

import (
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/EMCSquare12/live-bingo/models"
	"github.com/EMCSquare12/live-bingo/utils/logger"
)

// Conn is the transient connection attached to a participant. Send must
// never block: implementations queue and drop when the receiver cannot keep
// up, so a vanished client cannot stall the room.
type Conn interface {
	Send(event string, data any)
	Close()
}

// SessionConfig carries the timing knobs of a room. Tests drive sessions at
// millisecond scale through it.
type SessionConfig struct {
	PlayerGracePeriod time.Duration
	HostGracePeriod   time.Duration
	ShuffleDuration   time.Duration
	ShuffleInterval   time.Duration
}

func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		PlayerGracePeriod: 60 * time.Second,
		HostGracePeriod:   5 * time.Minute,
		ShuffleDuration:   1500 * time.Millisecond,
		ShuffleInterval:   60 * time.Millisecond,
	}
}

// Player couples a participant's wire state with its connection and any
// pending disconnect grace timer.
type Player struct {
	models.Participant
	conn  Conn
	grace *time.Timer
}

// Session is one live room. Every mutation goes through mu, so handlers
// arriving on different connections are serialized. The only asynchronous
// continuations are the shuffle resolution and the grace timers, both held
// as cancelable handles so a later event (reconnect, teardown) preempts
// them with a plain stop.
type Session struct {
	Code string

	mu            sync.Mutex
	dir           *Directory
	cfg           SessionConfig
	hostID        string
	hostName      string
	hostConn      Conn
	hostConnected bool
	hostGrace     *time.Timer
	cardCount     int
	pattern       models.WinningPattern
	theme         string
	called        []int
	players       []*Player
	winners       []models.Winner
	shuffling     bool
	shuffleStop   chan struct{}
	resetting     bool
	closed        bool
}

func newSession(dir *Directory, code string, cfg SessionConfig, hostName string, cardCount int, pattern models.WinningPattern, theme string, conn Conn) *Session {
	if cardCount < 1 {
		cardCount = 1
	}
	if len(pattern.Index) == 0 {
		pattern = models.FullCardPattern()
	}
	return &Session{
		Code:          code,
		dir:           dir,
		cfg:           cfg,
		hostID:        uuid.NewString(),
		hostName:      hostName,
		hostConn:      conn,
		hostConnected: conn != nil,
		cardCount:     cardCount,
		pattern:       pattern,
		theme:         theme,
		called:        []int{models.FreeCell},
		winners:       []models.Winner{},
	}
}

// HostID returns the host's persistent identity. It is handed only to the
// host's own connection; possession of it is what authorizes host actions.
func (s *Session) HostID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hostID
}

func (s *Session) IsHost(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return id == s.hostID
}

// Snapshot returns the full room state.
func (s *Session) Snapshot() models.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

// Join adds a player with freshly generated cards. Rejected once the round
// has started.
func (s *Session) Join(name string, conn Conn) (models.Participant, models.SessionState, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return models.Participant{}, models.SessionState{}, ErrRoomNotFound
	}
	if len(s.called) > 1 {
		s.mu.Unlock()
		return models.Participant{}, models.SessionState{}, ErrRoundInProgress
	}
	cards := make([]models.Card, s.cardCount)
	for i := range cards {
		cards[i] = GenerateCard()
	}
	p := &Player{
		Participant: models.Participant{
			ID:        uuid.NewString(),
			Name:      name,
			Cards:     cards,
			Marked:    []int{},
			Result:    Evaluate(cards, s.pattern, s.called),
			Connected: true,
		},
		conn: conn,
	}
	s.players = append(s.players, p)
	you := p.Participant
	state := s.stateLocked()
	roster := s.rosterLocked()
	s.mu.Unlock()

	logger.Infof("[room %s] %s joined (%d players)", s.Code, name, len(roster))
	s.broadcast(models.EvtPlayers, roster)
	return you, state, nil
}

// ReconnectHost rebinds the host connection and cancels any pending
// teardown timer.
func (s *Session) ReconnectHost(id string, conn Conn) (models.SessionState, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return models.SessionState{}, ErrRoomNotFound
	}
	if id != s.hostID {
		s.mu.Unlock()
		return models.SessionState{}, ErrUnknownSession
	}
	if s.hostGrace != nil {
		s.hostGrace.Stop()
		s.hostGrace = nil
	}
	if s.hostConn != nil && s.hostConn != conn {
		s.hostConn.Close()
	}
	s.hostConn = conn
	s.hostConnected = true
	state := s.stateLocked()
	s.mu.Unlock()

	logger.Infof("[room %s] host reconnected", s.Code)
	return state, nil
}

// ReconnectPlayer rebinds a player connection by persistent identity,
// cancels the grace timer and restores cards and marks untouched.
func (s *Session) ReconnectPlayer(id string, conn Conn) (models.SessionState, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return models.SessionState{}, ErrRoomNotFound
	}
	p := s.findPlayerLocked(id)
	if p == nil {
		s.mu.Unlock()
		return models.SessionState{}, ErrUnknownSession
	}
	if p.grace != nil {
		p.grace.Stop()
		p.grace = nil
	}
	if p.conn != nil && p.conn != conn {
		p.conn.Close()
	}
	p.conn = conn
	p.Connected = true
	name := p.Name
	state := s.stateLocked()
	roster := s.rosterLocked()
	s.mu.Unlock()

	logger.Infof("[room %s] %s reconnected", s.Code, name)
	s.broadcast(models.EvtPlayers, roster)
	return state, nil
}

// RequestCall starts the shuffle phase. Host-only; a no-op while already
// shuffling, after a win, during a reset, or with nobody connected to play.
func (s *Session) RequestCall(requesterID string) {
	s.mu.Lock()
	if s.closed || requesterID != s.hostID || len(s.winners) > 0 ||
		s.shuffling || s.resetting || s.connectedPlayersLocked() == 0 {
		s.mu.Unlock()
		return
	}
	s.shuffling = true
	stop := make(chan struct{})
	s.shuffleStop = stop
	cfg := s.cfg
	s.mu.Unlock()

	go s.runShuffle(cfg, stop)
}

// runShuffle streams cosmetic preview values at a fixed cadence, then
// resolves the call. Preview values are never persisted.
func (s *Session) runShuffle(cfg SessionConfig, stop chan struct{}) {
	ticker := time.NewTicker(cfg.ShuffleInterval)
	defer ticker.Stop()
	deadline := time.NewTimer(cfg.ShuffleDuration)
	defer deadline.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.broadcast(models.EvtShuffling, rand.Intn(models.MaxNumber)+1)
		case <-deadline.C:
			s.resolveCall(stop)
			return
		}
	}
}

// resolveCall draws one number from the not-yet-called set, appends it and
// notifies the room. Exhausted universe resolves to a no-op. The stop
// handle identifies the shuffle being resolved: if it is no longer the
// session's current one, the shuffle was canceled and resolution is
// abandoned.
func (s *Session) resolveCall(stop chan struct{}) {
	s.mu.Lock()
	if s.shuffleStop != stop {
		s.mu.Unlock()
		return
	}
	s.shuffling = false
	s.shuffleStop = nil
	if s.closed {
		s.mu.Unlock()
		return
	}
	available := s.uncalledLocked()
	if len(available) == 0 {
		s.mu.Unlock()
		return
	}
	next := available[rand.Intn(len(available))]
	newWin := s.applyCallLocked(next)
	seq := append([]int(nil), s.called...)
	roster := s.rosterLocked()
	winners := append([]models.Winner{}, s.winners...)
	s.mu.Unlock()

	logger.Infof("[room %s] called %d (%d/%d)", s.Code, next, len(seq)-1, models.MaxNumber)
	s.broadcast(models.EvtNumberCalled, seq)
	s.broadcast(models.EvtPlayers, roster)
	if newWin {
		s.broadcast(models.EvtPlayersWon, winners)
	}
}

// applyCallLocked appends n to the call sequence, refreshes every cached
// progress result against the new sequence and runs win detection. Caller
// holds mu; reports whether the winners list grew.
func (s *Session) applyCallLocked(n int) bool {
	s.called = append(s.called, n)
	newWin := false
	for _, p := range s.players {
		p.Result = Evaluate(p.Cards, s.pattern, s.called)
		if s.checkWinLocked(p) {
			newWin = true
		}
	}
	return newWin
}

// MarkNumbers replaces a player's marked-set with the sanitized intersection
// of the desired set and the call sequence, then runs win detection. Unknown
// players and uncalled numbers are dropped silently.
func (s *Session) MarkNumbers(playerID string, marked []int) {
	s.mu.Lock()
	p := s.findPlayerLocked(playerID)
	if p == nil || s.closed {
		s.mu.Unlock()
		return
	}
	p.Marked = s.sanitizeLocked(marked)
	p.Result = Evaluate(p.Cards, s.pattern, s.called)
	won := s.checkWinLocked(p)
	roster := s.rosterLocked()
	winners := append([]models.Winner{}, s.winners...)
	s.mu.Unlock()

	s.broadcast(models.EvtPlayers, roster)
	if won {
		logger.Infof("[room %s] %s won", s.Code, winners[len(winners)-1].Name)
		s.broadcast(models.EvtPlayersWon, winners)
	}
}

// sanitizeLocked keeps only called numbers (the sentinel is always in the
// call sequence, so it is always allowed), dropping duplicates.
func (s *Session) sanitizeLocked(marked []int) []int {
	calledSet := make(map[int]bool, len(s.called))
	for _, n := range s.called {
		calledSet[n] = true
	}
	out := make([]int, 0, len(marked))
	seen := make(map[int]bool, len(marked))
	for _, n := range marked {
		if calledSet[n] && !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	return out
}

// checkWinLocked appends p to the winners list if any of its cards has every
// required pattern number marked. A participant wins at most once. Caller
// holds mu; reports a first-time win.
func (s *Session) checkWinLocked(p *Player) bool {
	for _, w := range s.winners {
		if w.ID == p.ID {
			return false
		}
	}
	markedSet := make(map[int]bool, len(p.Marked))
	for _, n := range p.Marked {
		markedSet[n] = true
	}
	for _, card := range p.Cards {
		required := requiredNumbers(card, s.pattern)
		if len(required) == 0 {
			continue
		}
		complete := true
		for _, n := range required {
			if !markedSet[n] {
				complete = false
				break
			}
		}
		if complete {
			s.winners = append(s.winners, models.Winner{ID: p.ID, Name: p.Name})
			return true
		}
	}
	return false
}

// RefreshCard regenerates exactly one of a player's cards and clears their
// marks. Rejected once the round has started.
func (s *Session) RefreshCard(playerID string, index int) ([]models.Card, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrRoomNotFound
	}
	if len(s.called) > 1 {
		s.mu.Unlock()
		return nil, ErrRoundInProgress
	}
	p := s.findPlayerLocked(playerID)
	if p == nil {
		s.mu.Unlock()
		return nil, ErrUnknownPlayer
	}
	if index < 0 || index >= len(p.Cards) {
		s.mu.Unlock()
		return nil, ErrBadCardIndex
	}
	cards := append([]models.Card(nil), p.Cards...)
	cards[index] = GenerateCard()
	p.Cards = cards
	p.Marked = []int{}
	p.Result = Evaluate(cards, s.pattern, s.called)
	roster := s.rosterLocked()
	s.mu.Unlock()

	s.broadcast(models.EvtPlayers, roster)
	return cards, nil
}

// NewRound resets the call sequence and winners, keeping everyone's cards.
func (s *Session) NewRound(requesterID string) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrRoomNotFound
	}
	if requesterID != s.hostID {
		s.mu.Unlock()
		return ErrNotHost
	}
	if s.shuffleStop != nil {
		close(s.shuffleStop)
		s.shuffleStop = nil
		s.shuffling = false
	}
	s.resetting = true
	s.called = []int{models.FreeCell}
	s.winners = []models.Winner{}
	for _, p := range s.players {
		p.Marked = []int{}
		p.Result = Evaluate(p.Cards, s.pattern, s.called)
	}
	state := s.stateLocked()
	s.mu.Unlock()

	logger.Infof("[room %s] new round", s.Code)
	s.broadcast(models.EvtGameReset, state)

	s.mu.Lock()
	s.resetting = false
	s.mu.Unlock()
	return nil
}

// UpdatePattern replaces the winning pattern and re-evaluates every
// player's progress against it.
func (s *Session) UpdatePattern(requesterID string, pattern models.WinningPattern) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrRoomNotFound
	}
	if requesterID != s.hostID {
		s.mu.Unlock()
		return ErrNotHost
	}
	s.pattern = pattern
	for _, p := range s.players {
		p.Result = Evaluate(p.Cards, pattern, s.called)
	}
	roster := s.rosterLocked()
	s.mu.Unlock()

	s.broadcast(models.EvtPatternUpdated, pattern)
	s.broadcast(models.EvtPlayers, roster)
	return nil
}

// UpdateTheme stores the room's shared theme string.
func (s *Session) UpdateTheme(requesterID, theme string) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrRoomNotFound
	}
	if requesterID != s.hostID {
		s.mu.Unlock()
		return ErrNotHost
	}
	s.theme = theme
	s.mu.Unlock()

	s.broadcast(models.EvtThemeUpdated, theme)
	return nil
}

// HandleDisconnect is invoked by the transport when a connection drops
// without an explicit leave. It flags the participant, informs the room and
// arms the grace timer.
func (s *Session) HandleDisconnect(conn Conn) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	if s.hostConn == conn {
		s.hostConnected = false
		s.hostConn = nil
		if s.hostGrace != nil {
			s.hostGrace.Stop()
		}
		s.hostGrace = time.AfterFunc(s.cfg.HostGracePeriod, s.hostGraceExpired)
		s.mu.Unlock()
		logger.Infof("[room %s] host disconnected, grace %s", s.Code, s.cfg.HostGracePeriod)
		return
	}
	p := s.findByConnLocked(conn)
	if p == nil {
		s.mu.Unlock()
		return
	}
	p.Connected = false
	p.conn = nil
	if p.grace != nil {
		p.grace.Stop()
	}
	id := p.ID
	p.grace = time.AfterFunc(s.cfg.PlayerGracePeriod, func() { s.playerGraceExpired(id) })
	roster := s.rosterLocked()
	s.mu.Unlock()

	logger.Infof("[room %s] %s disconnected, grace %s", s.Code, p.Name, s.cfg.PlayerGracePeriod)
	s.broadcast(models.EvtPlayers, roster)
}

func (s *Session) playerGraceExpired(id string) {
	s.mu.Lock()
	p := s.findPlayerLocked(id)
	if p == nil || p.Connected || s.closed {
		s.mu.Unlock()
		return
	}
	name := p.Name
	s.removePlayerLocked(id)
	roster := s.rosterLocked()
	s.mu.Unlock()

	logger.Infof("[room %s] %s pruned after grace period", s.Code, name)
	s.broadcast(models.EvtPlayers, roster)
}

func (s *Session) hostGraceExpired() {
	s.mu.Lock()
	if s.hostConnected || s.closed {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()
	logger.Infof("[room %s] host grace period expired", s.Code)
	s.End()
}

// Leave removes a player immediately, skipping the grace period.
func (s *Session) Leave(playerID string) {
	s.mu.Lock()
	p := s.findPlayerLocked(playerID)
	if p == nil {
		s.mu.Unlock()
		return
	}
	if p.grace != nil {
		p.grace.Stop()
	}
	name := p.Name
	s.removePlayerLocked(playerID)
	roster := s.rosterLocked()
	s.mu.Unlock()

	logger.Infof("[room %s] %s left", s.Code, name)
	s.broadcast(models.EvtPlayerLeft, name)
	s.broadcast(models.EvtPlayers, roster)
}

// End tears the room down: termination notice to every connection, sockets
// closed, directory entry removed, timers dropped. Safe to call twice.
func (s *Session) End() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	if s.shuffleStop != nil {
		close(s.shuffleStop)
		s.shuffleStop = nil
		s.shuffling = false
	}
	if s.hostGrace != nil {
		s.hostGrace.Stop()
	}
	for _, p := range s.players {
		if p.grace != nil {
			p.grace.Stop()
		}
	}
	conns := s.connsLocked()
	s.mu.Unlock()

	for _, c := range conns {
		c.Send(models.EvtHostLeft, nil)
	}
	for _, c := range conns {
		c.Close()
	}
	s.dir.Remove(s.Code)
	logger.Infof("[room %s] destroyed", s.Code)
}

// ---- locked helpers ----

func (s *Session) findPlayerLocked(id string) *Player {
	for _, p := range s.players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (s *Session) findByConnLocked(conn Conn) *Player {
	for _, p := range s.players {
		if p.conn == conn {
			return p
		}
	}
	return nil
}

func (s *Session) removePlayerLocked(id string) {
	for i, p := range s.players {
		if p.ID == id {
			s.players = append(s.players[:i], s.players[i+1:]...)
			return
		}
	}
}

func (s *Session) connectedPlayersLocked() int {
	n := 0
	for _, p := range s.players {
		if p.Connected {
			n++
		}
	}
	return n
}

func (s *Session) uncalledLocked() []int {
	calledSet := make(map[int]bool, len(s.called))
	for _, n := range s.called {
		calledSet[n] = true
	}
	out := make([]int, 0, models.MaxNumber)
	for n := 1; n <= models.MaxNumber; n++ {
		if !calledSet[n] {
			out = append(out, n)
		}
	}
	return out
}

func (s *Session) rosterLocked() []models.Participant {
	out := make([]models.Participant, 0, len(s.players))
	for _, p := range s.players {
		out = append(out, p.Participant)
	}
	return out
}

func (s *Session) stateLocked() models.SessionState {
	return models.SessionState{
		RoomCode:      s.Code,
		HostName:      s.hostName,
		HostConnected: s.hostConnected,
		CardCount:     s.cardCount,
		Pattern:       s.pattern,
		NumberCalled:  append([]int(nil), s.called...),
		Players:       s.rosterLocked(),
		Winners:       append([]models.Winner{}, s.winners...),
		Theme:         s.theme,
	}
}

// connsLocked gathers every live connection in the room, host included.
func (s *Session) connsLocked() []Conn {
	conns := make([]Conn, 0, len(s.players)+1)
	if s.hostConn != nil {
		conns = append(conns, s.hostConn)
	}
	for _, p := range s.players {
		if p.conn != nil {
			conns = append(conns, p.conn)
		}
	}
	return conns
}

// broadcast fans an event out to everyone in the room, fire-and-forget.
func (s *Session) broadcast(event string, data any) {
	s.mu.Lock()
	conns := s.connsLocked()
	s.mu.Unlock()
	for _, c := range conns {
		c.Send(event, data)
	}
}
