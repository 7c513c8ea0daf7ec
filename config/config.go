package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/EMCSquare12/live-bingo/game"
)

// Config carries everything main needs to wire the server.
type Config struct {
	Port           string
	AllowedOrigins []string
	Session        game.SessionConfig
}

// Load reads .env (if present) and the environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] No .env file found, reading environment variables")
	}

	cfg := Config{
		Port:           envString("PORT", "3001"),
		AllowedOrigins: strings.Split(envString("ALLOWED_ORIGINS", "http://localhost:3000"), ","),
		Session:        game.DefaultSessionConfig(),
	}
	cfg.Session.PlayerGracePeriod = envDuration("PLAYER_GRACE_PERIOD", cfg.Session.PlayerGracePeriod)
	cfg.Session.HostGracePeriod = envDuration("HOST_GRACE_PERIOD", cfg.Session.HostGracePeriod)
	cfg.Session.ShuffleDuration = envDuration("SHUFFLE_DURATION", cfg.Session.ShuffleDuration)
	cfg.Session.ShuffleInterval = envDuration("SHUFFLE_INTERVAL", cfg.Session.ShuffleInterval)
	return cfg
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("[WARN] invalid %s %q, using %s", key, v, fallback)
		return fallback
	}
	return d
}
