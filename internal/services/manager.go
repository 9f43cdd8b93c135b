// Package services provides service orchestration for the TUI.
package services

import (
	"errors"
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gen2brain/beeep"

	"github.com/j-veylop/clutter-dashboard-tui/internal/api"
	"github.com/j-veylop/clutter-dashboard-tui/internal/config"
	"github.com/j-veylop/clutter-dashboard-tui/internal/db"
	"github.com/j-veylop/clutter-dashboard-tui/internal/logger"
	"github.com/j-veylop/clutter-dashboard-tui/internal/services/session"
	"github.com/j-veylop/clutter-dashboard-tui/internal/version"
)

type (
	// SessionChangedEvent is emitted when another process signs in or out.
	SessionChangedEvent struct {
		Handle *session.Handle
	}

	// ErrorEvent is emitted when an error occurs in any service.
	ErrorEvent struct {
		Service string
		Error   error
	}
)

// ServiceEvent is the interface implemented by all service events.
type ServiceEvent interface {
	isServiceEvent()
}

func (SessionChangedEvent) isServiceEvent() {}
func (ErrorEvent) isServiceEvent()          {}

// Manager builds the backend collaborators and routes background events to
// the UI.
type Manager struct {
	mu          sync.RWMutex
	cfg         *config.Config
	database    *db.DB
	jar         *session.Jar
	auth        *api.Auth
	sites       *api.Sites
	session     *session.Service
	watcher     *session.Watcher
	stopChan    chan struct{}
	closeOnce   sync.Once
	subscribers []chan ServiceEvent
}

// NewManager creates a new service manager.
func NewManager(cfg *config.Config) (*Manager, error) {
	m := &Manager{
		cfg:      cfg,
		stopChan: make(chan struct{}),
	}

	var err error
	m.database, err = db.New(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	m.jar = session.NewJar(m.database)
	client := api.NewClient(cfg.APIURL,
		api.WithCookieJar(m.jar),
		api.WithTimeout(cfg.RequestTimeout),
		api.WithUserAgent(version.UserAgent()),
	)
	m.auth = api.NewAuth(client)
	m.sites = api.NewSites(client)

	m.session, err = session.New(m.auth, m.database, m.jar, session.WithNotifier(m.notify))
	if err != nil {
		_ = m.database.Close()
		return nil, err
	}

	// Without a watcher the client still works; it just won't notice
	// sign-outs from other terminals until the next request fails.
	m.watcher, err = session.NewWatcher(cfg.DatabasePath, m.session)
	if err != nil {
		logger.Warn("session watcher disabled", "error", err)
		m.watcher = nil
	}

	go m.routeEvents()

	return m, nil
}

// routeEvents routes events from individual services to subscribers.
func (m *Manager) routeEvents() {
	var events <-chan session.Event
	if m.watcher != nil {
		events = m.watcher.Events()
	}

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			m.handleSessionEvent(event)

		case <-m.stopChan:
			return
		}
	}
}

func (m *Manager) handleSessionEvent(event session.Event) {
	switch event.Type {
	case session.EventSessionChanged:
		m.broadcast(SessionChangedEvent{Handle: event.Handle})
	case session.EventError:
		m.broadcast(ErrorEvent{Service: "session", Error: event.Error})
	}
}

// notify raises a desktop notification when enabled.
func (m *Manager) notify(title, message string) {
	if !m.cfg.Notify {
		return
	}
	if err := beeep.Notify(title, message, ""); err != nil {
		logger.Debug("desktop notification failed", "error", err)
	}
}

// broadcast sends an event to all subscribers.
func (m *Manager) broadcast(event ServiceEvent) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, sub := range m.subscribers {
		select {
		case sub <- event:
		default:
			// Subscriber channel full, skip
		}
	}
}

// Subscribe creates a channel for receiving service events.
// Returns a tea.Cmd that can be used in Bubble Tea's Init or Update.
func (m *Manager) Subscribe() (chan ServiceEvent, tea.Cmd) {
	ch := make(chan ServiceEvent, 16)

	m.mu.Lock()
	m.subscribers = append(m.subscribers, ch)
	m.mu.Unlock()

	return ch, WaitForEvent(ch)
}

// WaitForEvent returns a tea.Cmd for the next event on a channel. It yields
// nil once the channel is closed.
func WaitForEvent(ch <-chan ServiceEvent) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-ch
		if !ok {
			return nil
		}
		return event
	}
}

// Session returns the session service.
func (m *Manager) Session() *session.Service {
	return m.session
}

// Sites returns the sites collaborator.
func (m *Manager) Sites() *api.Sites {
	return m.sites
}

// Close closes the manager and all its services.
func (m *Manager) Close() error {
	var errs []error

	m.closeOnce.Do(func() {
		close(m.stopChan)

		m.mu.Lock()
		for _, sub := range m.subscribers {
			close(sub)
		}
		m.subscribers = nil
		m.mu.Unlock()

		if m.watcher != nil {
			if err := m.watcher.Close(); err != nil {
				errs = append(errs, err)
			}
		}

		if m.database != nil {
			if err := m.database.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	})

	return errors.Join(errs...)
}
