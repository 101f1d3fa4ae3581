package domain

import "log/slog"

// LogLevel is the severity of a message attached to a telemetry vertex.
type LogLevel = slog.Level

// Severities understood by the telemetry vertices.
const (
	LogLevelDebug = slog.LevelDebug
	LogLevelInfo  = slog.LevelInfo
	LogLevelWarn  = slog.LevelWarn
	LogLevelError = slog.LevelError
)
