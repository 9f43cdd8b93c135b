// Package info provides the info page: configuration, session and build
// details of the running client.
package info

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/clutter-dashboard-tui/internal/app"
	"github.com/j-veylop/clutter-dashboard-tui/internal/config"
	"github.com/j-veylop/clutter-dashboard-tui/internal/logger"
	"github.com/j-veylop/clutter-dashboard-tui/internal/services/session"
)

// HandleSource reads the local session handle.
type HandleSource interface {
	Handle(ctx context.Context) (*session.Handle, error)
}

type handleLoadedMsg struct {
	epoch  uint64
	handle *session.Handle
	err    error
}

// keyMap defines the key bindings specific to the info page.
type keyMap struct {
	Refresh  key.Binding
	CopyURL  key.Binding
	CopyPath key.Binding
	Up       key.Binding
	Down     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		CopyURL: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy API URL"),
		),
		CopyPath: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "copy database path"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
	}
}

// Model represents the info page state.
type Model struct {
	state    *app.State
	config   *config.Config
	handles  HandleSource
	handle   *session.Handle
	epoch    uint64
	width    int
	height   int
	keys     keyMap
	viewport viewport.Model
}

// New creates a new info model. handles may be nil.
func New(state *app.State, cfg *config.Config, handles HandleSource) *Model {
	return &Model{
		state:    state,
		config:   cfg,
		handles:  handles,
		keys:     defaultKeyMap(),
		viewport: viewport.New(0, 0),
	}
}

// Init initializes the info page.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Enter reloads the session handle.
func (m *Model) Enter(app.NavigateParams) tea.Cmd {
	m.epoch++
	m.viewport.GotoTop()
	return m.loadHandle()
}

func (m *Model) loadHandle() tea.Cmd {
	if m.handles == nil {
		return nil
	}
	epoch := m.epoch
	handles := m.handles
	return func() tea.Msg {
		h, err := handles.Handle(context.Background())
		return handleLoadedMsg{epoch: epoch, handle: h, err: err}
	}
}

// Update handles messages for the info page.
func (m *Model) Update(msg tea.Msg) (app.Page, tea.Cmd) {
	switch msg := msg.(type) {
	case handleLoadedMsg:
		if msg.epoch != m.epoch {
			return m, nil
		}
		if msg.err != nil {
			logger.Warn("failed to read session handle", "error", msg.err)
			m.handle = nil
			return m, nil
		}
		m.handle = msg.handle

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Refresh):
			m.epoch++
			return m, m.loadHandle()
		case key.Matches(msg, m.keys.CopyURL):
			if m.config != nil {
				return m, app.CopyToClipboard(m.config.APIURL, "API URL")
			}
		case key.Matches(msg, m.keys.CopyPath):
			if m.config != nil {
				return m, app.CopyToClipboard(m.config.DatabasePath, "database path")
			}
		default:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

// SetSize sets the available size for the info page.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.CopyURL, m.keys.Refresh}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.CopyURL, m.keys.CopyPath},
		{m.keys.Refresh, m.keys.Up, m.keys.Down},
	}
}

// CapturesInput reports false; the info page has no text fields.
func (m *Model) CapturesInput() bool {
	return false
}
