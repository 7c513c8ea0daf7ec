package models

import "encoding/json"

// Envelope frames every inbound websocket message. Each Type has exactly
// one payload struct below, decoded once at the boundary.
type Envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Event frames every outbound message.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// Inbound message types, one per client operation.
const (
	MsgCreateRoom    = "create-room"
	MsgJoinRoom      = "join-room"
	MsgReconnect     = "reconnect"
	MsgRequestCall   = "request-call"
	MsgMarkNumbers   = "mark-numbers"
	MsgRefreshCard   = "refresh-card"
	MsgNewRound      = "new-round"
	MsgUpdatePattern = "update-pattern"
	MsgUpdateTheme   = "update-theme"
	MsgLeave         = "leave-game"
	MsgEndSession    = "end-session"
)

// Outbound event types.
const (
	EvtRoomCreated     = "room-created"
	EvtJoinedRoom      = "joined-room"
	EvtReconnected     = "session-reconnected"
	EvtReconnectFailed = "reconnect-failed"
	EvtPlayers         = "players"
	EvtShuffling       = "shuffling"
	EvtNumberCalled    = "number-called"
	EvtPlayersWon      = "players-won"
	EvtPatternUpdated  = "pattern-updated"
	EvtThemeUpdated    = "theme-updated"
	EvtGameReset       = "game-reset"
	EvtCardRefreshed   = "card-refreshed"
	EvtPlayerLeft      = "player-left"
	EvtHostLeft        = "host-left"
	EvtLeaveAck        = "leave-acknowledged"
	EvtError           = "error"
)

type CreateRoomRequest struct {
	HostName  string         `json:"hostName"`
	CardCount int            `json:"cardCount"`
	Pattern   WinningPattern `json:"pattern"`
	Theme     string         `json:"theme,omitempty"`
}

type JoinRoomRequest struct {
	PlayerName string `json:"playerName"`
	RoomCode   string `json:"roomCode"`
}

type ReconnectRequest struct {
	RoomCode string `json:"roomCode"`
	ID       string `json:"id"`
	Role     string `json:"role"`
}

type RequestCallRequest struct {
	RoomCode string `json:"roomCode"`
}

type MarkNumbersRequest struct {
	RoomCode string `json:"roomCode"`
	PlayerID string `json:"playerId"`
	Marked   []int  `json:"markedNumbers"`
}

type RefreshCardRequest struct {
	RoomCode  string `json:"roomCode"`
	PlayerID  string `json:"playerId"`
	CardIndex int    `json:"cardIndex"`
}

type NewRoundRequest struct {
	RoomCode string `json:"roomCode"`
}

type UpdatePatternRequest struct {
	RoomCode string         `json:"roomCode"`
	Pattern  WinningPattern `json:"pattern"`
}

type UpdateThemeRequest struct {
	RoomCode string `json:"roomCode"`
	Theme    string `json:"theme"`
}

type LeaveRequest struct {
	RoomCode string `json:"roomCode"`
	PlayerID string `json:"playerId"`
}

type EndSessionRequest struct {
	RoomCode string `json:"roomCode"`
}

type RoomCreatedPayload struct {
	RoomCode string `json:"roomCode"`
	HostID   string `json:"hostId"`
}

// SessionState is the full room snapshot sent on join, reconnect and reset.
type SessionState struct {
	RoomCode      string         `json:"roomCode"`
	HostName      string         `json:"hostName"`
	HostConnected bool           `json:"hostConnected"`
	CardCount     int            `json:"cardCount"`
	Pattern       WinningPattern `json:"cardWinningPattern"`
	NumberCalled  []int          `json:"numberCalled"`
	Players       []Participant  `json:"players"`
	Winners       []Winner       `json:"winners"`
	Theme         string         `json:"theme,omitempty"`
}

type JoinedRoomPayload struct {
	SessionState
	You Participant `json:"you"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
