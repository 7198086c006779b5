package watcher

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatcher_FiresAfterWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "taskboard.db")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0o600))

	var fired atomic.Int32
	w, err := New(path, 50*time.Millisecond, func() { fired.Add(1) })
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	require.NoError(t, os.WriteFile(path, []byte("v2"), 0o600))

	require.Eventually(t, func() bool { return fired.Load() >= 1 },
		3*time.Second, 20*time.Millisecond, "callback should fire after the debounce window")
}

func TestWatcher_DebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "taskboard.db")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0o600))

	var fired atomic.Int32
	w, err := New(path, 200*time.Millisecond, func() { fired.Add(1) })
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	// A burst of writes well inside the debounce window.
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte{byte(i)}, 0o600))
		time.Sleep(10 * time.Millisecond)
	}

	require.Eventually(t, func() bool { return fired.Load() >= 1 },
		3*time.Second, 20*time.Millisecond)
	// Give a stray second firing time to show up, then check it didn't.
	time.Sleep(300 * time.Millisecond)
	require.LessOrEqual(t, fired.Load(), int32(2), "burst should collapse to at most a couple of notifications")
}

func TestWatcher_IgnoresUnrelatedFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "taskboard.db")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0o600))

	var fired atomic.Int32
	w, err := New(path, 50*time.Millisecond, func() { fired.Add(1) })
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o600))
	time.Sleep(200 * time.Millisecond)
	require.Equal(t, int32(0), fired.Load())
}

func TestWatcher_CloseStopsPendingCallback(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "taskboard.db")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0o600))

	var fired atomic.Int32
	w, err := New(path, 500*time.Millisecond, func() { fired.Add(1) })
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("v2"), 0o600))
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, w.Close())
	require.NoError(t, w.Close(), "double close is a no-op")

	time.Sleep(700 * time.Millisecond)
	require.Equal(t, int32(0), fired.Load(), "pending notification should be dropped on close")
}
