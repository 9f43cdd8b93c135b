package session

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/j-veylop/clutter-dashboard-tui/internal/logger"
)

// EventType defines the type of watcher event.
type EventType int

const (
	// EventSessionChanged fires when another process signed in or out.
	EventSessionChanged EventType = iota
	EventError
)

// Event is emitted by the Watcher.
type Event struct {
	Type   EventType
	Handle *Handle
	Error  error
}

// ChangeSource reports session changes made outside this process.
type ChangeSource interface {
	Changed(ctx context.Context) (bool, error)
	Handle(ctx context.Context) (*Handle, error)
}

const debounceInterval = 100 * time.Millisecond

// Watcher watches the session database for writes by other processes.
type Watcher struct {
	mu            sync.Mutex
	dbPath        string
	source        ChangeSource
	watcher       *fsnotify.Watcher
	eventChan     chan Event
	stopChan      chan struct{}
	stopOnce      sync.Once
	debounceTimer *time.Timer
}

// NewWatcher starts watching the directory holding dbPath.
func NewWatcher(dbPath string, source ChangeSource) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	// Watch the directory; SQLite writes land in the -wal file first.
	if err := fw.Add(filepath.Dir(dbPath)); err != nil {
		if closeErr := fw.Close(); closeErr != nil {
			logger.Error("failed to close watcher", "error", closeErr)
		}
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(dbPath), err)
	}

	w := &Watcher{
		dbPath:    dbPath,
		source:    source,
		watcher:   fw,
		eventChan: make(chan Event, 16),
		stopChan:  make(chan struct{}),
	}
	go w.watchLoop()
	return w, nil
}

// Events returns the event channel.
func (w *Watcher) Events() <-chan Event {
	return w.eventChan
}

func (w *Watcher) relevant(name string) bool {
	base := filepath.Base(w.dbPath)
	switch filepath.Base(name) {
	case base, base + "-wal":
		return true
	}
	return false
}

func (w *Watcher) watchLoop() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			w.mu.Lock()
			if w.debounceTimer != nil {
				w.debounceTimer.Stop()
			}
			w.debounceTimer = time.AfterFunc(debounceInterval, w.check)
			w.mu.Unlock()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.sendEvent(Event{Type: EventError, Error: err})

		case <-w.stopChan:
			return
		}
	}
}

// check compares the stored generation against the last one seen.
func (w *Watcher) check() {
	ctx := context.Background()

	changed, err := w.source.Changed(ctx)
	if err != nil {
		w.sendEvent(Event{Type: EventError, Error: err})
		return
	}
	if !changed {
		return
	}

	handle, err := w.source.Handle(ctx)
	if err != nil {
		w.sendEvent(Event{Type: EventError, Error: err})
		return
	}

	logger.Info("session changed by another process", "signed_in", handle != nil)
	w.sendEvent(Event{Type: EventSessionChanged, Handle: handle})
}

// sendEvent sends without blocking, dropping the oldest event when full.
func (w *Watcher) sendEvent(event Event) {
	select {
	case w.eventChan <- event:
	default:
		select {
		case <-w.eventChan:
		default:
		}
		select {
		case w.eventChan <- event:
		default:
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.stopChan)

		w.mu.Lock()
		if w.debounceTimer != nil {
			w.debounceTimer.Stop()
		}
		w.mu.Unlock()

		err = w.watcher.Close()
	})
	return err
}
