// Package dashboard provides the analytics dashboard page: one site's
// visitors, pageviews, sources, pages and devices over the last four weeks.
package dashboard

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/clutter-dashboard-tui/internal/api"
	"github.com/j-veylop/clutter-dashboard-tui/internal/app"
	"github.com/j-veylop/clutter-dashboard-tui/internal/logger"
	"github.com/j-veylop/clutter-dashboard-tui/internal/models"
	"github.com/j-veylop/clutter-dashboard-tui/internal/services/analytics"
	"github.com/j-veylop/clutter-dashboard-tui/internal/ui/components"
)

const loadFailedMessage = "Failed to load site data."

// UserSource fetches the signed-in user.
type UserSource interface {
	CurrentUser(ctx context.Context) (*models.User, error)
}

// SiteSource lists sites and fetches their analytics.
type SiteSource interface {
	All(ctx context.Context) ([]models.Site, error)
	Analytics(ctx context.Context, id string, from, to time.Time) (*models.SiteAnalytics, error)
}

type phase int

const (
	phaseLoading phase = iota
	phaseNoSites
	phaseReady
	phaseError
)

type (
	userLoadedMsg struct {
		epoch uint64
		user  *models.User
		err   error
	}

	sitesLoadedMsg struct {
		epoch uint64
		sites []models.Site
		err   error
	}

	analyticsLoadedMsg struct {
		ticket analytics.Ticket
		data   *models.SiteAnalytics
		err    error
	}
)

// keyMap defines the key bindings specific to the dashboard page.
type keyMap struct {
	NextSite key.Binding
	PrevSite key.Binding
	Refresh  key.Binding
	AddSite  key.Binding
	Up       key.Binding
	Down     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		NextSite: key.NewBinding(
			key.WithKeys("n", "l", "right"),
			key.WithHelp("n/→", "next site"),
		),
		PrevSite: key.NewBinding(
			key.WithKeys("p", "h", "left"),
			key.WithHelp("p/←", "prev site"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		AddSite: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add site"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
	}
}

// Model represents the dashboard page state.
type Model struct {
	users   UserSource
	sites   SiteSource
	now     func() time.Time
	keys    keyMap
	spinner components.LoadingSpinner

	viewport viewport.Model
	width    int
	height   int

	phase  phase
	epoch  uint64
	wantID string

	siteList  []models.Site
	selected  int
	data      *models.SiteAnalytics
	dataSite  string
	fetching  bool
	seq       analytics.Sequencer
	from, to  time.Time
	lastError error
}

// Option configures a dashboard Model.
type Option func(*Model)

// WithClock overrides the time source used for the analytics window.
func WithClock(now func() time.Time) Option {
	return func(m *Model) {
		m.now = now
	}
}

// New creates a new dashboard model.
func New(users UserSource, sites SiteSource, opts ...Option) *Model {
	m := &Model{
		users:    users,
		sites:    sites,
		now:      time.Now,
		keys:     defaultKeyMap(),
		spinner:  components.NewSpinner("Loading dashboard..."),
		viewport: viewport.New(0, 0),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Init initializes the dashboard page.
func (m *Model) Init() tea.Cmd {
	return m.spinner.Init()
}

// Enter checks the session and loads the site list. params.SiteID selects
// the site to show, falling back to the first one.
func (m *Model) Enter(params app.NavigateParams) tea.Cmd {
	m.epoch++
	m.seq.Invalidate()
	m.wantID = params.SiteID
	m.phase = phaseLoading
	m.siteList = nil
	m.selected = 0
	m.data = nil
	m.dataSite = ""
	m.fetching = false
	m.lastError = nil
	m.viewport.GotoTop()
	m.spinner.SetLabel("Loading dashboard...")

	return tea.Batch(m.spinner.Start(), m.fetchUser())
}

func (m *Model) fetchUser() tea.Cmd {
	epoch := m.epoch
	users := m.users
	return func() tea.Msg {
		user, err := users.CurrentUser(context.Background())
		return userLoadedMsg{epoch: epoch, user: user, err: err}
	}
}

func (m *Model) fetchSites() tea.Cmd {
	epoch := m.epoch
	sites := m.sites
	return func() tea.Msg {
		list, err := sites.All(context.Background())
		return sitesLoadedMsg{epoch: epoch, sites: list, err: err}
	}
}

func (m *Model) fetchAnalytics() tea.Cmd {
	site := m.siteList[m.selected]
	ticket := m.seq.Next(site.ID)
	m.from, m.to = analytics.Window(m.now())
	m.fetching = true

	from, to := m.from, m.to
	sites := m.sites
	return func() tea.Msg {
		data, err := sites.Analytics(context.Background(), ticket.SiteID, from, to)
		return analyticsLoadedMsg{ticket: ticket, data: data, err: err}
	}
}

// Update handles messages for the dashboard page.
func (m *Model) Update(msg tea.Msg) (app.Page, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case userLoadedMsg:
		return m, m.handleUser(msg)

	case sitesLoadedMsg:
		return m, m.handleSites(msg)

	case analyticsLoadedMsg:
		return m, m.handleAnalytics(msg)

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleUser(msg userLoadedMsg) tea.Cmd {
	if msg.epoch != m.epoch {
		return nil
	}
	if msg.err != nil || msg.user == nil {
		m.spinner.Stop()
		if msg.err != nil && !api.IsUnauthorized(msg.err) {
			logger.Warn("failed to load current user", "error", msg.err)
		}
		return app.Navigate(app.PageLogin, app.NavigateParams{})
	}
	if !msg.user.EmailVerified {
		m.spinner.Stop()
		return tea.Batch(
			app.SetUser(msg.user),
			app.Navigate(app.PageVerify, app.NavigateParams{}),
		)
	}

	m.spinner.SetLabel("Loading sites...")
	return tea.Batch(app.SetUser(msg.user), m.fetchSites())
}

func (m *Model) handleSites(msg sitesLoadedMsg) tea.Cmd {
	if msg.epoch != m.epoch {
		return nil
	}
	if msg.err != nil {
		logger.Error("failed to load sites", "error", msg.err)
		m.spinner.Stop()
		m.lastError = msg.err
		if len(m.siteList) == 0 {
			m.phase = phaseError
		}
		return app.Notify(app.NotificationError, "Error", loadFailedMessage)
	}

	m.siteList = msg.sites
	site, ok := analytics.SelectSite(m.siteList, m.wantID)
	if !ok {
		m.spinner.Stop()
		m.phase = phaseNoSites
		return nil
	}

	m.selected = max(analytics.IndexOf(m.siteList, site.ID), 0)
	m.phase = phaseReady
	m.spinner.SetLabel("Loading analytics...")
	return m.fetchAnalytics()
}

func (m *Model) handleAnalytics(msg analyticsLoadedMsg) tea.Cmd {
	if !m.seq.IsCurrent(msg.ticket) {
		logger.Debug("dropping stale analytics response", "site", msg.ticket.SiteID)
		return nil
	}
	m.fetching = false
	m.spinner.Stop()

	if msg.err != nil {
		logger.Error("failed to load analytics", "site", msg.ticket.SiteID, "error", msg.err)
		m.lastError = msg.err
		return app.Notify(app.NotificationError, "Error", loadFailedMessage)
	}

	m.lastError = nil
	m.data = msg.data
	m.dataSite = msg.ticket.SiteID
	return nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Refresh):
		if m.phase == phaseLoading {
			return nil
		}
		return m.Enter(app.NavigateParams{SiteID: m.currentSiteID()})

	case key.Matches(msg, m.keys.AddSite):
		return app.Navigate(app.PageAddSite, app.NavigateParams{})

	case key.Matches(msg, m.keys.NextSite):
		return m.selectSite(m.selected + 1)

	case key.Matches(msg, m.keys.PrevSite):
		return m.selectSite(m.selected - 1)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return cmd
}

// selectSite switches to the site at index i, wrapping around the list.
func (m *Model) selectSite(i int) tea.Cmd {
	if m.phase != phaseReady || len(m.siteList) < 2 {
		return nil
	}
	n := len(m.siteList)
	i = ((i % n) + n) % n
	if i == m.selected {
		return nil
	}

	m.selected = i
	m.wantID = m.siteList[i].ID
	m.data = nil
	m.dataSite = ""
	m.lastError = nil
	m.viewport.GotoTop()
	m.spinner.SetLabel("Loading analytics...")
	return tea.Batch(m.spinner.Start(), m.fetchAnalytics())
}

func (m *Model) currentSiteID() string {
	if site, ok := m.currentSite(); ok {
		return site.ID
	}
	return m.wantID
}

func (m *Model) currentSite() (models.Site, bool) {
	if m.phase != phaseReady || m.selected >= len(m.siteList) {
		return models.Site{}, false
	}
	return m.siteList[m.selected], true
}

// SetSize sets the available size for the dashboard page.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	if m.phase == phaseReady && len(m.siteList) > 1 {
		return []key.Binding{m.keys.NextSite, m.keys.PrevSite, m.keys.Refresh}
	}
	return []key.Binding{m.keys.AddSite, m.keys.Refresh}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.NextSite, m.keys.PrevSite},
		{m.keys.Up, m.keys.Down},
		{m.keys.Refresh, m.keys.AddSite},
	}
}

// CapturesInput reports false; the dashboard has no text fields.
func (m *Model) CapturesInput() bool {
	return false
}
