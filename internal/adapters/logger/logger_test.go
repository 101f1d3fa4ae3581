package logger_test

import (
	"bytes"
	"errors"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/labgen/internal/adapters/logger"
	"go.trai.ch/zerr"
)

// captureStderr captures output written to os.Stderr during the execution of fn.
func captureStderr(t *testing.T, fn func()) string {
	t.Helper()
	originalStderr := os.Stderr
	defer func() { os.Stderr = originalStderr }()

	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stderr = w

	done := make(chan string, 1)
	go func() {
		buf, _ := io.ReadAll(r)
		done <- string(buf)
	}()

	fn()

	require.NoError(t, w.Close())
	output := <-done
	require.NoError(t, r.Close())
	return output
}

func TestNew_WritesToStderr(t *testing.T) {
	output := captureStderr(t, func() {
		// Created inside the capture so it picks up the redirected stderr.
		logger.New().Info("wrote 24 records to lab.cfg")
	})

	assert.Contains(t, output, "wrote 24 records to lab.cfg")
	assert.Contains(t, output, "INFO")
}

func TestLogger_Levels(t *testing.T) {
	tests := []struct {
		name  string
		log   func(*logger.Logger)
		want  string
		level string
	}{
		{
			name:  "info",
			log:   func(l *logger.Logger) { l.Info("no labgen.yaml found, using built-in catalog") },
			want:  "no labgen.yaml found, using built-in catalog",
			level: "level=INFO",
		},
		{
			name:  "warn",
			log:   func(l *logger.Logger) { l.Warn("lab.cfg was edited by hand") },
			want:  "lab.cfg was edited by hand",
			level: "level=WARN",
		},
		{
			name:  "error",
			log:   func(l *logger.Logger) { l.Error(os.ErrPermission) },
			want:  "permission denied",
			level: "level=ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(logger.NewWithWriter(&buf))

			assert.Contains(t, buf.String(), tt.want)
			assert.Contains(t, buf.String(), tt.level)
		})
	}
}

func TestLogger_ErrorNil(t *testing.T) {
	var buf bytes.Buffer
	logger.NewWithWriter(&buf).Error(nil)
	assert.Empty(t, buf.String())
}

func TestLogger_SetOutput(t *testing.T) {
	var buf bytes.Buffer
	lg := logger.NewWithWriter(io.Discard)
	lg.SetOutput(&buf)

	lg.Info("generated 24 records")
	assert.Contains(t, buf.String(), "generated 24 records")
}

func TestFormatError_PlainError(t *testing.T) {
	got := logger.FormatError(errors.New("catalog has no distributions"))
	assert.Equal(t, "Error: catalog has no distributions", got)
}

func TestFormatError_Chain(t *testing.T) {
	root := errors.New("open labgen.yaml: permission denied")
	err := zerr.Wrap(root, "failed to load catalog")

	got := logger.FormatError(err)
	assert.Contains(t, got, "Error: failed to load catalog")
	assert.Contains(t, got, "Caused by:")
	assert.Contains(t, got, "→ open labgen.yaml: permission denied")
}
