// Package sites provides the site management page: list, open and delete
// tracked sites.
package sites

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/clutter-dashboard-tui/internal/api"
	"github.com/j-veylop/clutter-dashboard-tui/internal/app"
	"github.com/j-veylop/clutter-dashboard-tui/internal/logger"
	"github.com/j-veylop/clutter-dashboard-tui/internal/models"
	"github.com/j-veylop/clutter-dashboard-tui/internal/ui/components"
	"github.com/j-veylop/clutter-dashboard-tui/internal/ui/styles"
)

// SiteService lists and deletes sites.
type SiteService interface {
	All(ctx context.Context) ([]models.Site, error)
	Delete(ctx context.Context, id string) (*models.DeleteSiteResponse, error)
}

type phase int

const (
	phaseLoading phase = iota
	phaseReady
	phaseError
)

type (
	sitesLoadedMsg struct {
		epoch uint64
		sites []models.Site
		err   error
	}

	siteDeletedMsg struct {
		epoch uint64
		site  models.Site
		resp  *models.DeleteSiteResponse
		err   error
	}
)

type keyMap struct {
	Open    key.Binding
	Delete  key.Binding
	Confirm key.Binding
	Cancel  key.Binding
	Add     key.Binding
	Copy    key.Binding
	Refresh key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "view analytics"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete site"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "confirm delete"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("n", "esc"),
			key.WithHelp("n/esc", "cancel"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add site"),
		),
		Copy: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy site ID"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
	}
}

// Model represents the sites page state.
type Model struct {
	sites   SiteService
	keys    keyMap
	spinner components.LoadingSpinner
	table   table.Model
	width   int
	height  int

	phase phase
	epoch uint64
	list  []models.Site

	// pending is the site awaiting delete confirmation.
	pending  *models.Site
	deleting bool
}

// New creates a new sites model.
func New(sites SiteService) *Model {
	t := table.New(
		table.WithColumns(columns(80)),
		table.WithFocused(true),
	)
	st := table.DefaultStyles()
	st.Header = styles.TableHeaderStyle
	st.Cell = styles.TableCellStyle
	st.Selected = styles.TableSelectedStyle
	t.SetStyles(st)

	return &Model{
		sites:   sites,
		keys:    defaultKeyMap(),
		spinner: components.NewSpinner("Loading sites..."),
		table:   t,
	}
}

// Init initializes the sites page.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Enter loads the site list.
func (m *Model) Enter(app.NavigateParams) tea.Cmd {
	m.epoch++
	m.phase = phaseLoading
	m.list = nil
	m.pending = nil
	m.deleting = false
	m.table.SetRows(nil)
	m.table.SetCursor(0)
	return tea.Batch(m.spinner.Start(), m.fetch())
}

func (m *Model) fetch() tea.Cmd {
	epoch := m.epoch
	sites := m.sites
	return func() tea.Msg {
		list, err := sites.All(context.Background())
		return sitesLoadedMsg{epoch: epoch, sites: list, err: err}
	}
}

func (m *Model) remove(site models.Site) tea.Cmd {
	epoch := m.epoch
	sites := m.sites
	return func() tea.Msg {
		resp, err := sites.Delete(context.Background(), site.ID)
		return siteDeletedMsg{epoch: epoch, site: site, resp: resp, err: err}
	}
}

// Update handles messages for the sites page.
func (m *Model) Update(msg tea.Msg) (app.Page, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case sitesLoadedMsg:
		return m, m.handleSites(msg)

	case siteDeletedMsg:
		return m, m.handleDeleted(msg)

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleSites(msg sitesLoadedMsg) tea.Cmd {
	if msg.epoch != m.epoch {
		return nil
	}
	m.spinner.Stop()

	if msg.err != nil {
		logger.Error("failed to load sites", "error", msg.err)
		m.phase = phaseError
		cmds := []tea.Cmd{app.Notify(app.NotificationError, "Error", "Failed to load your sites. Please try again.")}
		if api.IsUnauthorized(msg.err) {
			cmds = append(cmds, app.Navigate(app.PageLogin, app.NavigateParams{}))
		}
		return tea.Batch(cmds...)
	}

	m.phase = phaseReady
	m.list = msg.sites
	m.table.SetRows(rows(m.list))
	if m.table.Cursor() >= len(m.list) {
		m.table.SetCursor(max(len(m.list)-1, 0))
	}
	return nil
}

// handleDeleted reports the outcome and re-fetches the list once, whether or
// not the delete succeeded.
func (m *Model) handleDeleted(msg siteDeletedMsg) tea.Cmd {
	if msg.epoch != m.epoch {
		return nil
	}
	m.deleting = false
	m.pending = nil

	var note tea.Cmd
	switch {
	case msg.err != nil:
		logger.Error("failed to delete site", "site", msg.site.ID, "error", msg.err)
		note = app.Notify(app.NotificationError, "Error", api.Message(msg.err, "Failed to delete site. Please try again."))
	case msg.resp != nil && !msg.resp.Success:
		note = app.Notify(app.NotificationWarning, "Warning", orDefault(msg.resp.Message, "The site could not be deleted."))
	default:
		message := "Site " + msg.site.SiteURL + " deleted."
		if msg.resp != nil {
			message = orDefault(msg.resp.Message, message)
		}
		note = app.Notify(app.NotificationSuccess, "Success", message)
	}

	m.spinner.SetLabel("Refreshing sites...")
	return tea.Batch(note, m.spinner.Start(), m.fetch())
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.pending != nil {
		return m.handleConfirmKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Refresh):
		if m.phase == phaseLoading {
			return nil
		}
		return m.Enter(app.NavigateParams{})

	case key.Matches(msg, m.keys.Add):
		return app.Navigate(app.PageAddSite, app.NavigateParams{})
	}

	site, ok := m.selected()
	if !ok {
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.Open):
		return app.Navigate(app.PageDashboard, app.NavigateParams{SiteID: site.ID})

	case key.Matches(msg, m.keys.Delete):
		m.pending = &site
		return nil

	case key.Matches(msg, m.keys.Copy):
		return app.CopyToClipboard(site.ID, "site ID")
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return cmd
}

func (m *Model) handleConfirmKey(msg tea.KeyMsg) tea.Cmd {
	if m.deleting {
		return nil
	}
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.deleting = true
		return m.remove(*m.pending)
	case key.Matches(msg, m.keys.Cancel):
		m.pending = nil
	}
	return nil
}

func (m *Model) selected() (models.Site, bool) {
	if m.phase != phaseReady || len(m.list) == 0 {
		return models.Site{}, false
	}
	i := min(max(m.table.Cursor(), 0), len(m.list)-1)
	return m.list[i], true
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// SetSize sets the available size for the sites page.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.table.SetColumns(columns(width))
	m.table.SetWidth(max(width-4, 20))
	m.table.SetHeight(max(height-12, 3))
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	if m.pending != nil {
		return []key.Binding{m.keys.Confirm, m.keys.Cancel}
	}
	return []key.Binding{m.keys.Open, m.keys.Add, m.keys.Delete}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Open, m.keys.Add, m.keys.Copy},
		{m.keys.Delete, m.keys.Confirm, m.keys.Cancel},
		{m.keys.Refresh},
	}
}

// CapturesInput reports whether a delete confirmation is open, so the shell
// leaves y/n to the page.
func (m *Model) CapturesInput() bool {
	return m.pending != nil
}
