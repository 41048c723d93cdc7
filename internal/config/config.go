// Package config loads runtime settings from the environment, after
// merging an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"

	"github.com/abhisek/examlens/internal/llm"
)

// Config holds the settings shared by the CLI and the HTTP server.
type Config struct {
	// DBPath is empty when the store should pick its default location.
	DBPath          string
	LogLevel        slog.Level
	LogFormat       string
	ServerAddress   string
	ShutdownTimeout time.Duration
	CORSOrigins     []string
	Location        *time.Location
	LLM             llm.Config
}

// Load reads the given .env files (".env" when none are named) into the
// process environment, then builds a Config. Missing files are ignored;
// variables already set in the environment win.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: load %s: %w", f, err)
		}
	}
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config from an arbitrary variable source.
func FromLookup(lookup llm.LookupFunc) (*Config, error) {
	get := func(k, fallback string) string {
		if v, ok := lookup(k); ok && v != "" {
			return v
		}
		return fallback
	}

	cfg := &Config{
		DBPath:        get("EXAMLENS_DB", ""),
		LogFormat:     get("EXAMLENS_LOG_FORMAT", "text"),
		ServerAddress: get("EXAMLENS_ADDR", ":8080"),
		LLM:           llm.ConfigFromLookup(lookup),
	}

	level, err := ParseLevel(get("EXAMLENS_LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	timeout := get("EXAMLENS_SHUTDOWN_TIMEOUT", "10s")
	cfg.ShutdownTimeout, err = time.ParseDuration(timeout)
	if err != nil {
		return nil, fmt.Errorf("config: EXAMLENS_SHUTDOWN_TIMEOUT=%q is not a valid duration: %w", timeout, err)
	}

	tz := get("EXAMLENS_TZ", "Local")
	cfg.Location, err = time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("config: EXAMLENS_TZ=%q: %w", tz, err)
	}

	for _, o := range strings.Split(get("EXAMLENS_CORS_ORIGINS", "*"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, o)
		}
	}

	return cfg, nil
}

// ParseLevel maps debug, info, warn and error to slog levels.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("config: unknown log level %q", s)
	}
	return l, nil
}

// NewLogger builds the process logger. Format "json" selects the JSON
// handler; anything else writes text.
func NewLogger(w io.Writer, format string, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
