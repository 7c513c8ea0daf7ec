package services

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/EMCSquare12/live-bingo/game"
	"github.com/EMCSquare12/live-bingo/models"
	"github.com/EMCSquare12/live-bingo/utils/logger"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handler owns the websocket surface: it upgrades connections, decodes the
// tagged envelopes and dispatches them onto session operations. Direct
// replies go back on the originating connection; room-wide notifications
// are the session's job.
type Handler struct {
	dir *game.Directory
	cfg game.SessionConfig
}

func NewHandler(dir *game.Directory, cfg game.SessionConfig) *Handler {
	return &Handler{dir: dir, cfg: cfg}
}

// HandleWebSocket upgrades the connection and runs its read loop until the
// peer goes away.
func (h *Handler) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Errorf("[ws] upgrade error: %v", err)
		return
	}
	client := newClient(conn)
	go client.writePump()
	h.readPump(client)
}

func (h *Handler) readPump(client *Client) {
	defer h.handleDisconnect(client)
	for {
		_, raw, err := client.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Debugf("[ws] client closed")
			} else {
				logger.Debugf("[ws] read error: %v", err)
			}
			return
		}
		h.dispatch(client, raw)
	}
}

// handleDisconnect turns a dropped socket into a grace-period disconnect on
// whatever session the connection was bound to.
func (h *Handler) handleDisconnect(client *Client) {
	if s := client.session; s != nil {
		s.HandleDisconnect(client)
	}
	client.Close()
}

func (h *Handler) dispatch(client *Client, raw []byte) {
	defer func() {
		if r := recover(); r != nil {
			logger.Errorf("[ws] recovered handling message: %v", r)
		}
	}()

	var env models.Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		client.Send(models.EvtError, models.ErrorPayload{Code: "bad-request", Message: "malformed message"})
		return
	}

	switch env.Type {
	case models.MsgCreateRoom:
		var req models.CreateRoomRequest
		if decode(client, env.Data, &req) {
			h.createRoom(client, req)
		}
	case models.MsgJoinRoom:
		var req models.JoinRoomRequest
		if decode(client, env.Data, &req) {
			h.joinRoom(client, req)
		}
	case models.MsgReconnect:
		var req models.ReconnectRequest
		if decode(client, env.Data, &req) {
			h.reconnect(client, req)
		}
	case models.MsgRequestCall:
		var req models.RequestCallRequest
		if decode(client, env.Data, &req) {
			if s, ok := h.dir.Get(req.RoomCode); ok {
				s.RequestCall(client.participantID)
			}
		}
	case models.MsgMarkNumbers:
		var req models.MarkNumbersRequest
		if decode(client, env.Data, &req) {
			if s, ok := h.dir.Get(req.RoomCode); ok {
				s.MarkNumbers(req.PlayerID, req.Marked)
			}
		}
	case models.MsgRefreshCard:
		var req models.RefreshCardRequest
		if decode(client, env.Data, &req) {
			h.refreshCard(client, req)
		}
	case models.MsgNewRound:
		var req models.NewRoundRequest
		if decode(client, env.Data, &req) {
			h.hostAction(client, req.RoomCode, func(s *game.Session) error {
				return s.NewRound(client.participantID)
			})
		}
	case models.MsgUpdatePattern:
		var req models.UpdatePatternRequest
		if decode(client, env.Data, &req) {
			h.hostAction(client, req.RoomCode, func(s *game.Session) error {
				return s.UpdatePattern(client.participantID, req.Pattern)
			})
		}
	case models.MsgUpdateTheme:
		var req models.UpdateThemeRequest
		if decode(client, env.Data, &req) {
			h.hostAction(client, req.RoomCode, func(s *game.Session) error {
				return s.UpdateTheme(client.participantID, req.Theme)
			})
		}
	case models.MsgLeave:
		var req models.LeaveRequest
		if decode(client, env.Data, &req) {
			h.leave(client, req)
		}
	case models.MsgEndSession:
		var req models.EndSessionRequest
		if decode(client, env.Data, &req) {
			h.endSession(client, req)
		}
	default:
		logger.Debugf("[ws] unknown message type %q", env.Type)
	}
}

func decode(client *Client, data json.RawMessage, v any) bool {
	if err := json.Unmarshal(data, v); err != nil {
		client.Send(models.EvtError, models.ErrorPayload{Code: "bad-request", Message: "malformed payload"})
		return false
	}
	return true
}

func (h *Handler) createRoom(client *Client, req models.CreateRoomRequest) {
	s := h.dir.Create(h.cfg, req.HostName, req.CardCount, req.Pattern, req.Theme, client)
	client.session = s
	client.role = models.RoleHost
	client.participantID = s.HostID()
	client.Send(models.EvtRoomCreated, models.RoomCreatedPayload{RoomCode: s.Code, HostID: s.HostID()})
}

func (h *Handler) joinRoom(client *Client, req models.JoinRoomRequest) {
	s, ok := h.dir.Get(req.RoomCode)
	if !ok {
		client.Send(models.EvtError, errorPayload(game.ErrRoomNotFound))
		return
	}
	you, state, err := s.Join(req.PlayerName, client)
	if err != nil {
		client.Send(models.EvtError, errorPayload(err))
		return
	}
	client.session = s
	client.role = models.RolePlayer
	client.participantID = you.ID
	client.Send(models.EvtJoinedRoom, models.JoinedRoomPayload{SessionState: state, You: you})
}

func (h *Handler) reconnect(client *Client, req models.ReconnectRequest) {
	s, ok := h.dir.Get(req.RoomCode)
	if !ok {
		client.Send(models.EvtReconnectFailed, "room expired or not found")
		return
	}
	var (
		state models.SessionState
		err   error
	)
	if req.Role == models.RoleHost {
		state, err = s.ReconnectHost(req.ID, client)
	} else {
		state, err = s.ReconnectPlayer(req.ID, client)
	}
	if err != nil {
		// The client is expected to discard its cached identity on this.
		client.Send(models.EvtReconnectFailed, err.Error())
		return
	}
	client.session = s
	client.role = req.Role
	client.participantID = req.ID
	client.Send(models.EvtReconnected, state)
}

func (h *Handler) refreshCard(client *Client, req models.RefreshCardRequest) {
	s, ok := h.dir.Get(req.RoomCode)
	if !ok {
		client.Send(models.EvtError, errorPayload(game.ErrRoomNotFound))
		return
	}
	cards, err := s.RefreshCard(req.PlayerID, req.CardIndex)
	if err != nil {
		client.Send(models.EvtError, errorPayload(err))
		return
	}
	client.Send(models.EvtCardRefreshed, cards)
}

func (h *Handler) hostAction(client *Client, roomCode string, fn func(*game.Session) error) {
	s, ok := h.dir.Get(roomCode)
	if !ok {
		client.Send(models.EvtError, errorPayload(game.ErrRoomNotFound))
		return
	}
	if err := fn(s); err != nil {
		client.Send(models.EvtError, errorPayload(err))
	}
}

// leave acknowledges before removing, so the client can transition away
// before the roster fallout reaches it.
func (h *Handler) leave(client *Client, req models.LeaveRequest) {
	s, ok := h.dir.Get(req.RoomCode)
	if !ok {
		client.Send(models.EvtError, errorPayload(game.ErrRoomNotFound))
		return
	}
	client.Send(models.EvtLeaveAck, nil)
	s.Leave(req.PlayerID)
	client.session = nil
	client.participantID = ""
	client.role = ""
}

func (h *Handler) endSession(client *Client, req models.EndSessionRequest) {
	s, ok := h.dir.Get(req.RoomCode)
	if !ok {
		client.Send(models.EvtError, errorPayload(game.ErrRoomNotFound))
		return
	}
	if !s.IsHost(client.participantID) {
		client.Send(models.EvtError, errorPayload(game.ErrNotHost))
		return
	}
	client.Send(models.EvtLeaveAck, nil)
	client.session = nil
	s.End()
}

// errorPayload maps game errors onto wire codes. Failures only ever go to
// the originating connection.
func errorPayload(err error) models.ErrorPayload {
	code := "internal"
	switch {
	case errors.Is(err, game.ErrRoomNotFound):
		code = "room-not-found"
	case errors.Is(err, game.ErrRoundInProgress):
		code = "game-started"
	case errors.Is(err, game.ErrNotHost):
		code = "unauthorized"
	case errors.Is(err, game.ErrUnknownSession), errors.Is(err, game.ErrUnknownPlayer):
		code = "invalid-session"
	case errors.Is(err, game.ErrBadCardIndex):
		code = "bad-request"
	}
	return models.ErrorPayload{Code: code, Message: err.Error()}
}
