package game

import "errors"

// Request-scoped failures. Each one is reported only to the originating
// connection and never mutates session state.
var (
	ErrRoomNotFound    = errors.New("room not found")
	ErrRoundInProgress = errors.New("round already in progress")
	ErrNotHost         = errors.New("host-only action")
	ErrUnknownSession  = errors.New("unknown session identity")
	ErrUnknownPlayer   = errors.New("player not in room")
	ErrBadCardIndex    = errors.New("card index out of range")
)
