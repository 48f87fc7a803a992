package logger

import (
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"parley-server/services/chat-api/internal/config"
)

var (
	mu     sync.RWMutex
	global = log.Logger
)

// New creates a zerolog.Logger configured for the chat service and
// installs it as the package global.
func New(cfg *config.Config) zerolog.Logger {
	level := parseLevel(cfg.LogLevel)
	output := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}
	base := log.Output(output).
		With().
		Timestamp().
		Str("service", cfg.ServiceName).
		Str("environment", cfg.Environment).
		Logger().
		Level(level)

	mu.Lock()
	global = base
	mu.Unlock()
	return base
}

// GetLogger returns the process-wide logger. Packages without access
// to the wired logger (database bootstrap, HTTP client middleware)
// use this accessor.
func GetLogger() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return global
}

func parseLevel(raw string) zerolog.Level {
	if raw == "" {
		return zerolog.InfoLevel
	}
	level, err := zerolog.ParseLevel(strings.ToLower(raw))
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}
