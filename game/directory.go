package game

import (
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/EMCSquare12/live-bingo/models"
	"github.com/EMCSquare12/live-bingo/utils/logger"
)

const roomCodeLength = 6

// Directory maps live room codes to their sessions. It is owned by the
// composition root and handed to every consumer; there is no package-level
// instance. Two sessions never share a code while both are live.
type Directory struct {
	mu    sync.RWMutex
	rooms map[string]*Session
}

func NewDirectory() *Directory {
	return &Directory{rooms: make(map[string]*Session)}
}

// Create builds the session for a new room, registers it atomically with
// code generation, and returns it. The caller reads the host identity off
// the session and hands it to the creator only.
func (d *Directory) Create(cfg SessionConfig, hostName string, cardCount int, pattern models.WinningPattern, theme string, conn Conn) *Session {
	d.mu.Lock()
	defer d.mu.Unlock()
	var code string
	for {
		code = newRoomCode()
		if _, taken := d.rooms[code]; !taken {
			break
		}
	}
	s := newSession(d, code, cfg, hostName, cardCount, pattern, theme, conn)
	d.rooms[code] = s
	logger.Infof("[room %s] created by %s", code, hostName)
	return s
}

// Get looks a room up by code, case-insensitively.
func (d *Directory) Get(code string) (*Session, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	s, ok := d.rooms[strings.ToUpper(code)]
	return s, ok
}

// Remove drops the entry for code. Idempotent.
func (d *Directory) Remove(code string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.rooms, strings.ToUpper(code))
}

// Count reports the number of live rooms.
func (d *Directory) Count() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.rooms)
}

// newRoomCode derives a short uppercase code from a UUID.
func newRoomCode() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(raw[:roomCodeLength])
}
