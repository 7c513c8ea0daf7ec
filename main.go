package main

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/EMCSquare12/live-bingo/config"
	"github.com/EMCSquare12/live-bingo/controllers"
	"github.com/EMCSquare12/live-bingo/game"
	"github.com/EMCSquare12/live-bingo/routes"
	"github.com/EMCSquare12/live-bingo/services"
	"github.com/EMCSquare12/live-bingo/utils/logger"
)

// setupRouter wires middleware, the REST routes and the websocket endpoint.
func setupRouter(cfg config.Config, dir *game.Directory) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.SetupRoutes(r, controllers.NewRoomController(dir))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "rooms": dir.Count(), "timestamp": time.Now()})
	})

	ws := services.NewHandler(dir, cfg.Session)
	r.GET("/ws", ws.HandleWebSocket)

	return r
}

func main() {
	cfg := config.Load()
	dir := game.NewDirectory()

	router := setupRouter(cfg, dir)

	logger.Infof("live bingo server starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Log.Fatalf("failed to start server: %v", err)
	}
}
