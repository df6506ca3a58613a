// Package config loads the toolkit's runtime configuration once, at
// process start, into an explicit struct that is passed to constructors.
// Nothing outside this package reads environment state.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config carries every externally tunable setting.
type Config struct {
	// HTTPTimeout bounds a single remote image fetch. Zero disables the
	// client-side timeout.
	HTTPTimeout time.Duration

	// UserAgent is sent with remote image fetches.
	UserAgent string

	// LogLevel selects logger verbosity: "debug" or "info".
	LogLevel string
}

// Load builds a Config from the process environment, first merging in an
// optional .env file when one exists at envFile (empty means ".env").
// Missing variables fall back to defaults; a missing .env file is not an
// error.
func Load(envFile string) Config {
	if envFile == "" {
		envFile = ".env"
	}
	if _, err := os.Stat(envFile); err == nil {
		// Load never overrides variables already set in the process.
		_ = godotenv.Load(envFile)
	}

	return Config{
		HTTPTimeout: time.Duration(getInt("FIGPREP_HTTP_TIMEOUT_SECONDS", 30)) * time.Second,
		UserAgent:   getString("FIGPREP_USER_AGENT", "figprep/1.0"),
		LogLevel:    getString("FIGPREP_LOG_LEVEL", "info"),
	}
}

func getString(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
