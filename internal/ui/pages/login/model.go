// Package login provides the sign-in page.
package login

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/clutter-dashboard-tui/internal/api"
	"github.com/j-veylop/clutter-dashboard-tui/internal/app"
	"github.com/j-veylop/clutter-dashboard-tui/internal/logger"
	"github.com/j-veylop/clutter-dashboard-tui/internal/models"
	"github.com/j-veylop/clutter-dashboard-tui/internal/ui/components"
	"github.com/j-veylop/clutter-dashboard-tui/internal/validation"
)

const (
	fieldEmail = iota
	fieldPassword
)

// Authenticator signs users in.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*models.AuthResponse, error)
}

type loginResultMsg struct {
	epoch uint64
	resp  *models.AuthResponse
	err   error
}

type keyMap struct {
	Submit key.Binding
	Next   key.Binding
	Prev   key.Binding
	Signup key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "sign in"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "next field"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "previous field"),
		),
		Signup: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("ctrl+n", "create account"),
		),
	}
}

// Model represents the login page state.
type Model struct {
	auth       Authenticator
	keys       keyMap
	form       components.Form
	width      int
	height     int
	epoch      uint64
	submitting bool
}

// New creates a new login model.
func New(auth Authenticator) *Model {
	return &Model{
		auth: auth,
		keys: defaultKeyMap(),
		form: components.NewForm(
			components.NewField("Email", "you@example.com", false),
			components.NewField("Password", "", true),
		),
	}
}

// Init initializes the login page.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Enter clears the form.
func (m *Model) Enter(app.NavigateParams) tea.Cmd {
	m.epoch++
	m.submitting = false
	m.form.Reset()
	return textinput.Blink
}

// Update handles messages for the login page.
func (m *Model) Update(msg tea.Msg) (app.Page, tea.Cmd) {
	switch msg := msg.(type) {
	case loginResultMsg:
		return m, m.handleResult(msg)

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.submitting {
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.Submit):
		if !m.form.OnLast() {
			m.form.Next()
			return nil
		}
		return m.submit()
	case key.Matches(msg, m.keys.Next):
		m.form.Next()
		return nil
	case key.Matches(msg, m.keys.Prev):
		m.form.Prev()
		return nil
	case key.Matches(msg, m.keys.Signup):
		return app.Navigate(app.PageSignup, app.NavigateParams{})
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return cmd
}

func (m *Model) submit() tea.Cmd {
	form := validation.LoginForm{
		Email:    m.form.Value(fieldEmail),
		Password: m.form.Value(fieldPassword),
	}
	if err := validation.Validate(form); err != nil {
		return app.Notify(app.NotificationError, "Error", err.Error())
	}

	m.submitting = true
	epoch := m.epoch
	auth := m.auth
	return func() tea.Msg {
		resp, err := auth.Login(context.Background(), form.Email, form.Password)
		return loginResultMsg{epoch: epoch, resp: resp, err: err}
	}
}

func (m *Model) handleResult(msg loginResultMsg) tea.Cmd {
	if msg.epoch != m.epoch {
		return nil
	}
	m.submitting = false

	if msg.err != nil {
		logger.Warn("login failed", "error", msg.err)
		return app.Notify(app.NotificationError, "Login Failed", api.Message(msg.err, "Invalid email or password."))
	}

	message := "Signed in successfully!"
	cmds := []tea.Cmd{}
	if msg.resp != nil {
		if msg.resp.Message != "" {
			message = msg.resp.Message
		}
		if msg.resp.User != nil {
			cmds = append(cmds, app.SetUser(msg.resp.User))
		}
	}
	cmds = append(cmds,
		app.Notify(app.NotificationSuccess, "Success", message),
		app.Navigate(app.PageDashboard, app.NavigateParams{}),
	)
	return tea.Batch(cmds...)
}

// SetSize sets the available size for the login page.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.form.SetWidth(min(max(width-20, 20), 48))
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Submit, m.keys.Next, m.keys.Signup}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Submit, m.keys.Signup},
		{m.keys.Next, m.keys.Prev},
	}
}

// CapturesInput reports true; every key types into the form.
func (m *Model) CapturesInput() bool {
	return true
}
