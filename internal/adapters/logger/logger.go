// Package logger implements a logging adapter using log/slog.
package logger

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"go.trai.ch/labgen/internal/core/ports"
)

// messager is implemented by zerr errors, which can report their own message
// without the wrapped chain.
type messager interface {
	Message() string
}

// Logger implements ports.Logger using log/slog.
type Logger struct {
	logger *slog.Logger
	mu     sync.RWMutex
}

// New creates a new Logger writing to stderr, leaving stdout to the generated document.
func New() ports.Logger {
	return NewWithWriter(os.Stderr)
}

// NewWithWriter creates a new Logger writing to w.
func NewWithWriter(w io.Writer) *Logger {
	return &Logger{
		logger: slog.New(newHandler(w)),
	}
}

func newHandler(w io.Writer) slog.Handler {
	return slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
}

// SetOutput updates the logger's output destination.
// If w is nil, os.Stderr is used.
func (l *Logger) SetOutput(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logger = slog.New(newHandler(w))
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Info(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Warn(msg)
}

// Error logs err with its cause chain, one cause per line.
func (l *Logger) Error(err error) {
	if err == nil {
		return
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Error(FormatError(err))
}

// FormatError renders the zerr message chain of err as a main error followed
// by its causes. A non-zerr error in the chain ends it with its full message.
func FormatError(err error) string {
	var messages []string
	for current := err; current != nil; {
		m, ok := current.(messager)
		if !ok {
			messages = append(messages, current.Error())
			break
		}
		messages = append(messages, m.Message())
		current = errors.Unwrap(current)
	}

	var b strings.Builder
	for i, msg := range messages {
		lines := strings.Split(msg, "\n")
		switch i {
		case 0:
			b.WriteString("Error: " + lines[0])
			for _, line := range lines[1:] {
				b.WriteString("\n       " + line)
			}
			continue
		case 1:
			b.WriteString("\n\n  Caused by:")
		}
		b.WriteString("\n    → " + lines[0])
		for _, line := range lines[1:] {
			b.WriteString("\n      " + line)
		}
	}
	return b.String()
}
