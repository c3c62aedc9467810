package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitChange(t *testing.T, ch <-chan Change) Change {
	t.Helper()
	select {
	case change, ok := <-ch:
		require.True(t, ok, "change channel closed unexpectedly")
		return change
	case <-time.After(3 * time.Second):
		t.Fatal("Timeout waiting for change")
	}
	return Change{}
}

func drain(ch <-chan Change) {
	for {
		select {
		case <-ch:
		case <-time.After(200 * time.Millisecond):
			return
		}
	}
}

func TestWatcherReportsChanges(t *testing.T) {
	dir := t.TempDir()

	w, err := New()
	require.NoError(t, err)
	require.NoError(t, w.Watch(dir))
	require.NoError(t, w.Start())
	defer w.Stop()
	assert.True(t, w.IsRunning())

	path := filepath.Join(dir, "new.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	change := waitChange(t, w.Changes())
	assert.Equal(t, dir, change.Dir)
	assert.Equal(t, path, change.Path)
	assert.False(t, change.Timestamp.IsZero())

	drain(w.Changes())
	require.NoError(t, os.Remove(path))
	change = waitChange(t, w.Changes())
	assert.Equal(t, path, change.Path)
}

func TestWatcherSwitchesDirectory(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()

	w, err := New()
	require.NoError(t, err)
	require.NoError(t, w.Watch(first))
	require.NoError(t, w.Start())
	defer w.Stop()

	require.NoError(t, w.Watch(second))
	assert.Equal(t, second, w.Dir())
	drain(w.Changes())

	require.NoError(t, os.WriteFile(filepath.Join(first, "ignored"), nil, 0644))
	select {
	case change := <-w.Changes():
		t.Fatalf("unexpected change after switching away: %+v", change)
	case <-time.After(300 * time.Millisecond):
	}

	require.NoError(t, os.Mkdir(filepath.Join(second, "sub"), 0755))
	change := waitChange(t, w.Changes())
	assert.Equal(t, second, change.Dir)
	assert.Equal(t, filepath.Join(second, "sub"), change.Path)
}

func TestWatcherCoalesces(t *testing.T) {
	dir := t.TempDir()

	w, err := New()
	require.NoError(t, err)
	require.NoError(t, w.Watch(dir))
	require.NoError(t, w.Start())
	defer w.Stop()

	for i := 0; i < 20; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "f"+string(rune('a'+i))), nil, 0644))
	}
	time.Sleep(300 * time.Millisecond)

	assert.LessOrEqual(t, len(w.Changes()), 1, "pending changes are coalesced")
}

func TestWatchRejectsBadDirectory(t *testing.T) {
	w, err := New()
	require.NoError(t, err)
	defer w.Stop()

	assert.Error(t, w.Watch(filepath.Join(t.TempDir(), "missing")))

	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0644))
	assert.Error(t, w.Watch(file))
	assert.Empty(t, w.Dir())
}

func TestWatcherStop(t *testing.T) {
	w, err := New()
	require.NoError(t, err)
	require.NoError(t, w.Watch(t.TempDir()))
	require.NoError(t, w.Start())
	assert.Error(t, w.Start(), "second start fails")

	w.Stop()
	assert.False(t, w.IsRunning())
	w.Stop()

	select {
	case _, ok := <-w.Changes():
		assert.False(t, ok, "change channel should be closed after stop")
	case <-time.After(time.Second):
		t.Error("Timeout waiting for change channel to close after stop")
	}

	assert.Error(t, w.Start(), "a stopped watcher cannot restart")
}
