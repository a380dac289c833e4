package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Config describes the desired logging configuration.
type Config struct {
	Level          string
	Format         string
	FilePath       string
	FileMaxSizeMB  int
	FileMaxFiles   int
	FileMaxAgeDays int
}

// DefaultConfig returns a Config with sensible defaults. FilePath is left
// empty; the caller decides where the log lives.
func DefaultConfig() Config {
	return Config{
		Level:          "info",
		Format:         "text",
		FileMaxSizeMB:  10,
		FileMaxFiles:   3,
		FileMaxAgeDays: 30,
	}
}

// New builds a logger for cfg. The terminal belongs to the UI, so records
// only ever go to the rotating file; with no FilePath they are discarded.
// The returned closer releases the file and may be nil.
func New(cfg Config) (*slog.Logger, io.Closer) {
	if cfg.FilePath == "" {
		return slog.New(slog.DiscardHandler), nil
	}

	lj := &lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    positiveOr(cfg.FileMaxSizeMB, 10),
		MaxBackups: positiveOr(cfg.FileMaxFiles, 3),
		MaxAge:     positiveOr(cfg.FileMaxAgeDays, 30),
	}
	return slog.New(buildHandler(lj, parseLevel(cfg.Level), cfg.Format)), lj
}

// buildHandler creates a slog.Handler with the given writer, leveler, and format.
func buildHandler(w io.Writer, leveler slog.Leveler, format string) slog.Handler {
	opts := &slog.HandlerOptions{Level: leveler}
	if format == "json" {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// parseLevel converts a string to slog.Level, defaulting to Info.
func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func positiveOr(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

// String returns a human-readable summary of the config.
func (c Config) String() string {
	s := fmt.Sprintf("level=%s format=%s", c.Level, c.Format)
	if c.FilePath != "" {
		s += fmt.Sprintf(" file=%s max_size=%dMB max_files=%d max_age=%dd",
			c.FilePath, c.FileMaxSizeMB, c.FileMaxFiles, c.FileMaxAgeDays)
	}
	return s
}
