package main

import (
	"errors"
	"log/slog"
	"path/filepath"
	"sageleaf/internal/history"
	"sageleaf/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogLevelFromString(t *testing.T) {
	tests := []struct {
		in       string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"none", slog.LevelError},
		{"bogus", slog.LevelError},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.expected, logLevelFromString(tt.in))
		})
	}
}

func TestOpenHistoryDefaultsUnderHome(t *testing.T) {
	home := filepath.Join(t.TempDir(), "home")
	store, err := openHistory(util.Configuration{HistoryDriver: "bolt", SageleafHome: home})
	require.NoError(t, err)
	defer store.Close()
	assert.FileExists(t, filepath.Join(home, "history.bolt"))
}

func TestOpenHistoryDefaultsToSQLite(t *testing.T) {
	home := t.TempDir()
	store, err := openHistory(util.Configuration{SageleafHome: home})
	require.NoError(t, err)
	defer store.Close()
	assert.IsType(t, &history.SQLStore{}, store)
	assert.FileExists(t, filepath.Join(home, "history.db"))
}

func TestOpenHistoryNoneWinsOverHome(t *testing.T) {
	store, err := openHistory(util.Configuration{HistoryDriver: "none", SageleafHome: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, history.Nop{}, store)
}

func TestOpenHistoryDisabled(t *testing.T) {
	store, err := openHistory(util.Configuration{})
	require.NoError(t, err)
	assert.IsType(t, history.Nop{}, store)
}

func TestFormatRunError(t *testing.T) {
	assert.Equal(t, "error: boom", formatRunError(errors.New("boom")))
}
