package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/j-veylop/clutter-dashboard-tui/internal/config"
	"github.com/j-veylop/clutter-dashboard-tui/internal/services/session"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	tmpDir := t.TempDir()
	cfg := &config.Config{
		APIURL:       "http://127.0.0.1:1",
		DatabasePath: filepath.Join(tmpDir, "session.db"),
		LogPath:      filepath.Join(tmpDir, "clutter.log"),
	}

	mgr, err := NewManager(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = mgr.Close() })
	return mgr
}

func TestNewManager(t *testing.T) {
	mgr := newTestManager(t)

	require.NotNil(t, mgr.Session())
	assert.NotNil(t, mgr.Sites())

	handle, err := mgr.Session().Handle(context.Background())
	require.NoError(t, err)
	assert.Nil(t, handle, "fresh store should be signed out")
}

func TestNewManager_BadDatabasePath(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	_, err := NewManager(&config.Config{
		APIURL:       "http://127.0.0.1:1",
		DatabasePath: filepath.Join(blocker, "session.db"),
	})
	assert.Error(t, err)
}

func TestManager_BroadcastsSessionEvents(t *testing.T) {
	mgr := newTestManager(t)
	ch, cmd := mgr.Subscribe()

	mgr.handleSessionEvent(session.Event{Type: session.EventSessionChanged})
	mgr.handleSessionEvent(session.Event{Type: session.EventError, Error: errors.New("boom")})

	done := make(chan any, 1)
	go func() { done <- cmd() }()

	select {
	case msg := <-done:
		assert.IsType(t, SessionChangedEvent{}, msg)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}

	select {
	case ev := <-ch:
		errEv, ok := ev.(ErrorEvent)
		require.True(t, ok, "second event = %#v", ev)
		assert.Equal(t, "session", errEv.Service)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for error event")
	}
}

func TestManager_CloseEndsSubscriptions(t *testing.T) {
	mgr := newTestManager(t)
	ch, cmd := mgr.Subscribe()

	require.NoError(t, mgr.Close())
	require.NoError(t, mgr.Close(), "Close must be idempotent")

	_, open := <-ch
	assert.False(t, open)
	assert.Nil(t, cmd(), "waiting on a closed subscription yields nil")
}

func TestManager_NotifyDisabled(t *testing.T) {
	mgr := newTestManager(t)
	// Notify is false in the test config, so this must return without
	// touching the desktop.
	assert.NotPanics(t, func() { mgr.notify("title", "message") })
}
