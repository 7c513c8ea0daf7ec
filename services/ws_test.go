package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/EMCSquare12/live-bingo/game"
)

func TestErrorPayloadCodes(t *testing.T) {
	cases := []struct {
		err  error
		code string
	}{
		{game.ErrRoomNotFound, "room-not-found"},
		{game.ErrRoundInProgress, "game-started"},
		{game.ErrNotHost, "unauthorized"},
		{game.ErrUnknownSession, "invalid-session"},
		{game.ErrUnknownPlayer, "invalid-session"},
		{game.ErrBadCardIndex, "bad-request"},
	}
	for _, tc := range cases {
		p := errorPayload(tc.err)
		assert.Equal(t, tc.code, p.Code)
		assert.Equal(t, tc.err.Error(), p.Message)
	}
}
