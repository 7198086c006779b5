package log

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	testCases := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			require.Equal(t, tc.expected, ParseLevel(tc.input))
		})
	}
}

func TestInit_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "taskboard.log")
	require.NoError(t, Init(path, "debug"))
	t.Cleanup(func() {
		_ = Close()
		_ = Init("", "info")
	})

	Debug(CatDB, "opening database", "path", "/tmp/x.db")
	Info(CatService, "task added", "id", 1)
	ErrorErr(CatCache, "invalidate failed", os.ErrClosed)

	data, err := os.ReadFile(path) //nolint:gosec // test-owned path
	require.NoError(t, err)
	out := string(data)
	require.Contains(t, out, "cat=db")
	require.Contains(t, out, "opening database")
	require.Contains(t, out, "cat=service")
	require.Contains(t, out, "cat=cache")
	require.Contains(t, out, "file already closed")
}

func TestInit_RespectsLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taskboard.log")
	require.NoError(t, Init(path, "warn"))
	t.Cleanup(func() {
		_ = Close()
		_ = Init("", "info")
	})

	Debug(CatDB, "should be dropped")
	Info(CatDB, "should also be dropped")
	Warn(CatDB, "kept")

	data, err := os.ReadFile(path) //nolint:gosec // test-owned path
	require.NoError(t, err)
	out := string(data)
	require.NotContains(t, out, "should be dropped")
	require.NotContains(t, out, "should also be dropped")
	require.Contains(t, out, "kept")
}
