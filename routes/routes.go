package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/EMCSquare12/live-bingo/controllers"
)

func SetupRoutes(r *gin.Engine, rooms *controllers.RoomController) {
	api := r.Group("/api")

	api.GET("/rooms/:code", rooms.GetRoom)   // Pre-join room probe
	api.GET("/patterns", rooms.ListPatterns) // Preset winning patterns
}
