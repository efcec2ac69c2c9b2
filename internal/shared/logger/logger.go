package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Setup installs the global slog logger for the given environment.
// level overrides the environment default when it parses (debug, info, warn, error).
func Setup(env, level string) {
	slog.SetDefault(New(os.Stdout, env, level))

	slog.Info("Logger 초기화", "env", env, "level", resolveLevel(env, level).String())
}

// New builds a logger writing to w: JSON in production, text elsewhere.
func New(w io.Writer, env, level string) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: resolveLevel(env, level),
	}

	if isProduction(env) {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func resolveLevel(env, level string) slog.Level {
	var parsed slog.Level
	if level != "" && parsed.UnmarshalText([]byte(strings.TrimSpace(level))) == nil {
		return parsed
	}

	switch env {
	case "local", "dev", "development":
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

func isProduction(env string) bool {
	return env == "production" || env == "prod"
}
