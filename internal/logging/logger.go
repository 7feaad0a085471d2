// Package logging builds the process-wide slog logger.
package logging

import (
	"io"
	"log/slog"
	"strings"

	"github.com/ANNAMARONE/Kam-daay-backend-app/internal/config"
)

// ParseLevel maps a configured level name to slog / Convertit le niveau configuré
// Unknown names fall back to info.
func ParseLevel(name string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return slog.LevelInfo
	}
	return level
}

// NewHandler returns a JSON handler (with source) in production or when
// logging.format is "json", a text handler otherwise.
func NewHandler(w io.Writer, conf *config.Config) slog.Handler {
	level := ParseLevel(conf.Logging.Level)
	format := strings.ToLower(conf.Logging.Format)

	if format == "json" || (format == "" && conf.IsProduction()) {
		return slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level:     level,
			AddSource: conf.IsProduction(),
		})
	}
	return slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
}

// Setup installs the configured logger as slog's default / Installe le logger par défaut
func Setup(w io.Writer, conf *config.Config) *slog.Logger {
	logger := slog.New(NewHandler(w, conf)).With("service", "kame-daay")
	slog.SetDefault(logger)
	return logger
}
