package config

import (
	"os"
	"time"
)

// Default configuration values
const (
	DefaultAddr            = ":8080"
	DefaultSessionCookie   = "session_id"
	DefaultPresenceTTL     = 5 * time.Minute
	DefaultShutdownTimeout = 5 * time.Second
)

// Config holds server configuration, loaded from the environment with
// hardcoded fallbacks. An empty DatabaseURL/RedisAddr selects the in-memory
// adapters (dev mode).
type Config struct {
	Addr            string
	DatabaseURL     string
	RedisAddr       string
	SessionCookie   string
	LogLevel        string
	PresenceTTL     time.Duration
	ShutdownTimeout time.Duration
}

// Load reads configuration: environment variable first, default otherwise.
func Load() Config {
	cfg := Config{
		Addr:            getenv("ADDR", DefaultAddr),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		SessionCookie:   getenv("SESSION_COOKIE", DefaultSessionCookie),
		LogLevel:        getenv("LOG_LEVEL", "info"),
		PresenceTTL:     getduration("PRESENCE_TTL", DefaultPresenceTTL),
		ShutdownTimeout: getduration("SHUTDOWN_TIMEOUT", DefaultShutdownTimeout),
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getduration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
