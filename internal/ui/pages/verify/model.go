// Package verify provides the email verification page.
package verify

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/clutter-dashboard-tui/internal/api"
	"github.com/j-veylop/clutter-dashboard-tui/internal/app"
	"github.com/j-veylop/clutter-dashboard-tui/internal/logger"
	"github.com/j-veylop/clutter-dashboard-tui/internal/models"
	"github.com/j-veylop/clutter-dashboard-tui/internal/ui/components"
	"github.com/j-veylop/clutter-dashboard-tui/internal/ui/styles"
	"github.com/j-veylop/clutter-dashboard-tui/internal/validation"
)

const (
	// ResendCooldown is how long the resend action stays disabled after a
	// code was sent.
	ResendCooldown = 60 * time.Second
	codeLength     = 6
)

// tick schedules the next countdown step.
var tick = tea.Tick

// Verifier checks and re-sends email verification codes.
type Verifier interface {
	Verify(ctx context.Context, code string) (*models.MessageResponse, error)
	GenerateCode(ctx context.Context) (*models.MessageResponse, error)
}

type (
	verifyResultMsg struct {
		epoch uint64
		resp  *models.MessageResponse
		err   error
	}

	resendResultMsg struct {
		epoch uint64
		resp  *models.MessageResponse
		err   error
	}

	countdownTickMsg struct {
		epoch uint64
	}
)

type keyMap struct {
	Submit key.Binding
	Resend key.Binding
	Logout key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "verify"),
		),
		Resend: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "resend code"),
		),
		Logout: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "sign out"),
		),
	}
}

// Model represents the verify page state.
type Model struct {
	auth      Verifier
	keys      keyMap
	input     textinput.Model
	countdown components.CountdownBar
	width     int
	height    int

	epoch     uint64
	remaining time.Duration
	verifying bool
	resending bool
}

// New creates a new verify model.
func New(auth Verifier) *Model {
	ti := textinput.New()
	ti.Placeholder = "Enter code"
	ti.Prompt = "› "
	ti.PromptStyle = styles.FocusedStyle
	ti.CharLimit = codeLength
	ti.Width = codeLength + 4

	return &Model{
		auth:      auth,
		keys:      defaultKeyMap(),
		input:     ti,
		countdown: components.NewCountdownBar(30),
	}
}

// Init initializes the verify page.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Enter clears the code and any running cooldown.
func (m *Model) Enter(app.NavigateParams) tea.Cmd {
	m.epoch++
	m.remaining = 0
	m.verifying = false
	m.resending = false
	m.input.Reset()
	m.input.Focus()
	return textinput.Blink
}

// Update handles messages for the verify page.
func (m *Model) Update(msg tea.Msg) (app.Page, tea.Cmd) {
	switch msg := msg.(type) {
	case verifyResultMsg:
		return m, m.handleVerified(msg)

	case resendResultMsg:
		return m, m.handleResent(msg)

	case countdownTickMsg:
		return m, m.handleTick(msg)

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Submit):
		return m.verify()
	case key.Matches(msg, m.keys.Resend):
		return m.resend()
	case key.Matches(msg, m.keys.Logout):
		return app.Logout()
	}

	if m.verifying {
		return nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

// verify sends the code exactly as typed; only the emptiness check trims.
func (m *Model) verify() tea.Cmd {
	if m.verifying {
		return nil
	}
	code := m.input.Value()
	if err := validation.Validate(validation.VerifyForm{Code: code}); err != nil {
		return app.Notify(app.NotificationError, "Error", err.Error())
	}

	m.verifying = true
	epoch := m.epoch
	auth := m.auth
	return func() tea.Msg {
		resp, err := auth.Verify(context.Background(), code)
		return verifyResultMsg{epoch: epoch, resp: resp, err: err}
	}
}

func (m *Model) handleVerified(msg verifyResultMsg) tea.Cmd {
	if msg.epoch != m.epoch {
		return nil
	}
	m.verifying = false

	if msg.err != nil {
		logger.Warn("email verification failed", "error", msg.err)
		return app.Notify(app.NotificationError, "Verification Failed", api.Message(msg.err, "Invalid verification code"))
	}

	message := "Email verified successfully!"
	if msg.resp != nil && msg.resp.Message != "" {
		message = msg.resp.Message
	}
	return tea.Batch(
		app.Notify(app.NotificationSuccess, "Success", message),
		app.Navigate(app.PageDashboard, app.NavigateParams{}),
	)
}

func (m *Model) resend() tea.Cmd {
	if m.remaining > 0 || m.resending {
		return nil
	}

	m.resending = true
	epoch := m.epoch
	auth := m.auth
	return func() tea.Msg {
		resp, err := auth.GenerateCode(context.Background())
		return resendResultMsg{epoch: epoch, resp: resp, err: err}
	}
}

func (m *Model) handleResent(msg resendResultMsg) tea.Cmd {
	if msg.epoch != m.epoch {
		return nil
	}
	m.resending = false

	if msg.err != nil {
		logger.Warn("failed to send verification code", "error", msg.err)
		return app.Notify(app.NotificationError, "Failed to Send Code", api.Message(msg.err, "Could not send verification code"))
	}

	message := "Verification code has been sent to your email"
	if msg.resp != nil && msg.resp.Message != "" {
		message = msg.resp.Message
	}
	m.remaining = ResendCooldown
	return tea.Batch(
		app.Notify(app.NotificationSuccess, "Code Sent", message),
		m.scheduleTick(),
	)
}

func (m *Model) scheduleTick() tea.Cmd {
	epoch := m.epoch
	return tick(time.Second, func(time.Time) tea.Msg {
		return countdownTickMsg{epoch: epoch}
	})
}

func (m *Model) handleTick(msg countdownTickMsg) tea.Cmd {
	if msg.epoch != m.epoch || m.remaining <= 0 {
		return nil
	}
	m.remaining = max(m.remaining-time.Second, 0)
	if m.remaining == 0 {
		return nil
	}
	return m.scheduleTick()
}

// SetSize sets the available size for the verify page.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.countdown.SetWidth(min(max(width-30, 10), 40))
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Submit, m.keys.Resend, m.keys.Logout}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Submit, m.keys.Resend},
		{m.keys.Logout},
	}
}

// CapturesInput reports true; every key types into the code field.
func (m *Model) CapturesInput() bool {
	return true
}
