// Package addsite provides the page that registers a new site and shows its
// tracking snippet.
package addsite

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/clutter-dashboard-tui/internal/api"
	"github.com/j-veylop/clutter-dashboard-tui/internal/app"
	"github.com/j-veylop/clutter-dashboard-tui/internal/logger"
	"github.com/j-veylop/clutter-dashboard-tui/internal/models"
	"github.com/j-veylop/clutter-dashboard-tui/internal/ui/styles"
	"github.com/j-veylop/clutter-dashboard-tui/internal/validation"
)

// SiteCreator registers sites.
type SiteCreator interface {
	Create(ctx context.Context, siteURL string) (*models.CreateSiteResponse, error)
}

type phase int

const (
	phaseForm phase = iota
	phaseCreated
)

type siteCreatedMsg struct {
	epoch   uint64
	siteURL string
	resp    *models.CreateSiteResponse
	err     error
}

type keyMap struct {
	Submit    key.Binding
	Cancel    key.Binding
	Copy      key.Binding
	Done      key.Binding
	Dashboard key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "add site"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Copy: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy snippet"),
		),
		Done: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "go to sites"),
		),
		Dashboard: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "view analytics"),
		),
	}
}

// Model represents the add site page state.
type Model struct {
	sites      SiteCreator
	trackerURL string
	keys       keyMap
	input      textinput.Model
	width      int
	height     int

	phase      phase
	epoch      uint64
	submitting bool
	siteURL    string
	siteID     string
	snippet    string
}

// New creates a new add site model. trackerURL is the script embedded in
// the snippet; empty selects the hosted tracker.
func New(sites SiteCreator, trackerURL string) *Model {
	ti := textinput.New()
	ti.Placeholder = "www.example.com"
	ti.Prompt = "› "
	ti.CharLimit = 253
	ti.PromptStyle = styles.FocusedStyle
	ti.Width = 40

	return &Model{
		sites:      sites,
		trackerURL: trackerURL,
		keys:       defaultKeyMap(),
		input:      ti,
	}
}

// Init initializes the add site page.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Enter resets the form.
func (m *Model) Enter(app.NavigateParams) tea.Cmd {
	m.epoch++
	m.reset()
	return textinput.Blink
}

func (m *Model) reset() {
	m.phase = phaseForm
	m.submitting = false
	m.siteURL = ""
	m.siteID = ""
	m.snippet = ""
	m.input.Reset()
	m.input.Focus()
}

// Update handles messages for the add site page.
func (m *Model) Update(msg tea.Msg) (app.Page, tea.Cmd) {
	switch msg := msg.(type) {
	case siteCreatedMsg:
		return m, m.handleCreated(msg)

	case tea.KeyMsg:
		if m.phase == phaseCreated {
			return m, m.handleCreatedKey(msg)
		}
		return m, m.handleFormKey(msg)
	}

	if m.phase == phaseForm {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleFormKey(msg tea.KeyMsg) tea.Cmd {
	if m.submitting {
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	case key.Matches(msg, m.keys.Cancel):
		return app.Navigate(app.PageSites, app.NavigateParams{})
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	// Domains are entered lower-case.
	if v := m.input.Value(); v != strings.ToLower(v) {
		m.input.SetValue(strings.ToLower(v))
	}
	return cmd
}

func (m *Model) submit() tea.Cmd {
	siteURL := m.input.Value()
	if err := validation.Validate(validation.SiteForm{SiteURL: siteURL}); err != nil {
		return app.Notify(app.NotificationError, "Invalid input", err.Error())
	}

	m.submitting = true
	epoch := m.epoch
	sites := m.sites
	return func() tea.Msg {
		resp, err := sites.Create(context.Background(), siteURL)
		return siteCreatedMsg{epoch: epoch, siteURL: siteURL, resp: resp, err: err}
	}
}

func (m *Model) handleCreated(msg siteCreatedMsg) tea.Cmd {
	if msg.epoch != m.epoch {
		return nil
	}
	m.submitting = false

	if msg.err != nil || msg.resp == nil || msg.resp.SiteID == "" {
		if msg.err != nil {
			logger.Error("failed to create site", "site", msg.siteURL, "error", msg.err)
		} else {
			logger.Error("create site response carried no id", "site", msg.siteURL)
		}
		return app.Notify(app.NotificationError, "Error", api.Message(msg.err, "Failed to add site. Please try again."))
	}

	m.phase = phaseCreated
	m.siteURL = strings.ToLower(msg.siteURL)
	m.siteID = msg.resp.SiteID
	m.snippet = models.TrackingSnippet(m.siteID, m.trackerURL)
	m.input.Blur()

	return app.Notify(app.NotificationSuccess, "Success", fmt.Sprintf("Site %s added successfully!", m.siteURL))
}

// handleCreatedKey only offers ways out; adding another site takes a new visit.
func (m *Model) handleCreatedKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Copy):
		return app.CopyToClipboard(m.snippet, "tracking snippet")
	case key.Matches(msg, m.keys.Done):
		return app.Navigate(app.PageSites, app.NavigateParams{})
	case key.Matches(msg, m.keys.Dashboard):
		return app.Navigate(app.PageDashboard, app.NavigateParams{SiteID: m.siteID})
	}
	return nil
}

// SetSize sets the available size for the add site page.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = min(max(width-16, 20), 60)
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	if m.phase == phaseCreated {
		return []key.Binding{m.keys.Copy, m.keys.Done, m.keys.Dashboard}
	}
	return []key.Binding{m.keys.Submit, m.keys.Cancel}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Submit, m.keys.Cancel},
		{m.keys.Copy, m.keys.Done, m.keys.Dashboard},
	}
}

// CapturesInput reports whether the domain field is being edited.
func (m *Model) CapturesInput() bool {
	return m.phase == phaseForm
}
