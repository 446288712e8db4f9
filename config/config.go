// Package config provides configuration for the chat backend.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the backend configuration.
type Config struct {
	// Server settings
	HTTPPort int

	// Database
	DatabasePath string

	// Gemini settings
	GeminiAPIKey string
	GeminiModel  string

	// Timeouts
	LLMTimeout time.Duration

	// Context window
	HistoryWindow      int
	HistoryTokenBudget int

	// Logging
	LogLevel string
}

// Load loads configuration from environment variables.
func Load() *Config {
	cfg := &Config{
		HTTPPort:           getEnvInt("HTTP_PORT", 8000),
		DatabasePath:       getEnv("DATABASE_PATH", "voxchat.db"),
		GeminiAPIKey:       getEnv("GEMINI_API_KEY", ""),
		GeminiModel:        getEnv("GEMINI_MODEL", "gemini-2.0-flash-001"),
		LLMTimeout:         time.Duration(getEnvInt("LLM_TIMEOUT_MS", 60000)) * time.Millisecond,
		HistoryWindow:      getEnvInt("HISTORY_WINDOW", 20),
		HistoryTokenBudget: getEnvInt("HISTORY_TOKEN_BUDGET", 8192),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
	}
	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}
