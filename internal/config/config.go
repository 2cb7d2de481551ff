package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Host          string
	Port          int
	StaticDir     string
	LogLevel      string
	ShutdownGrace time.Duration
	StaticRate    float64 // static-file requests per second per IP
	StaticBurst   int
}

// Load builds the configuration from the environment. A .env file in
// the working directory is read first when present. Command-line flags
// are applied on top by the caller.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Host:          envOr("SSECAST_HOST", "localhost"),
		Port:          envIntOr("SSECAST_PORT", 8080),
		StaticDir:     envOr("SSECAST_DIR", "./static"),
		LogLevel:      envOr("SSECAST_LOG_LEVEL", "info"),
		ShutdownGrace: time.Duration(envIntOr("SSECAST_SHUTDOWN_GRACE_SECS", 5)) * time.Second,
		StaticRate:    envFloatOr("SSECAST_STATIC_RATE", 50),
		StaticBurst:   envIntOr("SSECAST_STATIC_BURST", 100),
	}
}

// Addr returns the host:port the server binds to.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
