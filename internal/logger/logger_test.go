package logger

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"", slog.LevelWarn},
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			l := New(Options{Level: tt.level}, &bytes.Buffer{})
			assert.True(t, l.Enabled(context.Background(), tt.want))
			assert.False(t, l.Enabled(context.Background(), tt.want-1))
		})
	}
}

func TestNewJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: "info", Format: "json"}, &buf)
	l.Info("loaded", "records", 3)
	assert.Contains(t, buf.String(), `"msg":"loaded"`)
	assert.Contains(t, buf.String(), `"records":3`)
}

func TestNewReportsBadOptions(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: "loud", Format: "xml"}, &buf)
	assert.Contains(t, buf.String(), "could not parse logger level")
	assert.Contains(t, buf.String(), "could not parse logger format")

	buf.Reset()
	l.Info("hidden")
	assert.Empty(t, buf.String(), "falls back to warn")
}

func TestNewLogfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "phonebook.log")
	var buf bytes.Buffer
	l := New(Options{Level: "warn", Logfile: path}, &buf)
	l.Warn("written to file")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to file")
	assert.Empty(t, buf.String())
}

func TestNewDevNullDiscards(t *testing.T) {
	l := New(Options{Level: "debug", Logfile: os.DevNull}, &bytes.Buffer{})
	assert.False(t, l.Enabled(context.Background(), slog.LevelError))
}
