// Package signup provides the account registration page.
package signup

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
	fieldUsername = iota
	fieldEmail
	fieldPassword
	fieldConfirm
)

// Registrar creates accounts.
type Registrar interface {
	Register(ctx context.Context, username, email, password string) (*models.AuthResponse, error)
}

type registerResultMsg struct {
	epoch uint64
	resp  *models.AuthResponse
	err   error
}

type keyMap struct {
	Submit key.Binding
	Next   key.Binding
	Prev   key.Binding
	Login  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "create account"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "next field"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "previous field"),
		),
		Login: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back to sign in"),
		),
	}
}

// Model represents the signup page state.
type Model struct {
	auth       Registrar
	keys       keyMap
	form       components.Form
	width      int
	height     int
	epoch      uint64
	submitting bool
}

// New creates a new signup model.
func New(auth Registrar) *Model {
	return &Model{
		auth: auth,
		keys: defaultKeyMap(),
		form: components.NewForm(
			components.NewField("Username", "johndoe", false),
			components.NewField("Email", "you@example.com", false),
			components.NewField("Password", "at least 6 characters", true),
			components.NewField("Confirm Password", "", true),
		),
	}
}

// Init initializes the signup page.
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

// Update handles messages for the signup page.
func (m *Model) Update(msg tea.Msg) (app.Page, tea.Cmd) {
	switch msg := msg.(type) {
	case registerResultMsg:
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
	case key.Matches(msg, m.keys.Login):
		return app.Navigate(app.PageLogin, app.NavigateParams{})
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return cmd
}

// submit validates every field locally and only calls the backend when the
// whole form passes.
func (m *Model) submit() tea.Cmd {
	form := validation.SignupForm{
		Username:        m.form.Value(fieldUsername),
		Email:           m.form.Value(fieldEmail),
		Password:        m.form.Value(fieldPassword),
		ConfirmPassword: m.form.Value(fieldConfirm),
	}
	if err := validation.Validate(form); err != nil {
		if vErr, ok := validation.AsError(err); ok {
			m.focusField(vErr.First().Field())
		}
		return app.Notify(app.NotificationError, "Error", err.Error())
	}

	m.submitting = true
	epoch := m.epoch
	auth := m.auth
	return func() tea.Msg {
		resp, err := auth.Register(context.Background(), form.Username, form.Email, form.Password)
		return registerResultMsg{epoch: epoch, resp: resp, err: err}
	}
}

func (m *Model) focusField(name string) {
	switch name {
	case "Username":
		m.form.Focus(fieldUsername)
	case "Email":
		m.form.Focus(fieldEmail)
	case "Password":
		m.form.Focus(fieldPassword)
	case "ConfirmPassword":
		m.form.Focus(fieldConfirm)
	}
}

func (m *Model) handleResult(msg registerResultMsg) tea.Cmd {
	if msg.epoch != m.epoch {
		return nil
	}
	m.submitting = false

	if msg.err != nil {
		logger.Warn("registration failed", "error", msg.err)
		return app.Notify(app.NotificationError, "Registration Failed", api.Message(msg.err, "An error occurred during signup."))
	}

	message := "Account created successfully!"
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

// SetSize sets the available size for the signup page.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.form.SetWidth(min(max(width-20, 20), 48))
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Submit, m.keys.Next, m.keys.Login}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Submit, m.keys.Login},
		{m.keys.Next, m.keys.Prev},
	}
}

// CapturesInput reports true; every key types into the form.
func (m *Model) CapturesInput() bool {
	return true
}
