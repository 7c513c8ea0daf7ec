package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/EMCSquare12/live-bingo/game"
	"github.com/EMCSquare12/live-bingo/models"
)

type RoomController struct {
	dir *game.Directory
}

func NewRoomController(dir *game.Directory) *RoomController {
	return &RoomController{dir: dir}
}

// GetRoom reports whether a room exists and is still joinable, so clients
// can validate a code before opening a socket.
func (rc *RoomController) GetRoom(c *gin.Context) {
	s, ok := rc.dir.Get(c.Param("code"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		return
	}
	state := s.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"roomCode": state.RoomCode,
		"hostName": state.HostName,
		"players":  len(state.Players),
		"joinable": len(state.NumberCalled) <= 1,
	})
}

// ListPatterns returns the preset winning patterns.
func (rc *RoomController) ListPatterns(c *gin.Context) {
	c.JSON(http.StatusOK, models.PresetPatterns())
}
