// Package app implements the main Bubble Tea application: a page router with
// a tab bar for signed-in pages, toasts and a help overlay.
package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/j-veylop/clutter-dashboard-tui/internal/api"
	"github.com/j-veylop/clutter-dashboard-tui/internal/services"
	"github.com/j-veylop/clutter-dashboard-tui/internal/ui/styles"
)

// PageID represents the identifier for a page in the application.
type PageID int

const (
	// PageDashboard shows analytics for one site.
	PageDashboard PageID = iota
	// PageSites lists the user's sites.
	PageSites
	// PageAddSite registers a new site.
	PageAddSite
	// PageInfo shows configuration and build data.
	PageInfo
	// PageLogin is the sign-in form and the target of auth redirects.
	PageLogin
	// PageSignup is the registration form.
	PageSignup
	// PageVerify asks for the e-mail verification code.
	PageVerify

	pageCount
)

// tabCount is the number of pages reachable from the tab bar.
const tabCount = int(PageInfo) + 1

// String returns the string representation of the PageID.
func (p PageID) String() string {
	switch p {
	case PageDashboard:
		return "Dashboard"
	case PageSites:
		return "Sites"
	case PageAddSite:
		return "Add Site"
	case PageInfo:
		return "Info"
	case PageLogin:
		return "Login"
	case PageSignup:
		return "Sign Up"
	case PageVerify:
		return "Verify"
	default:
		return "Unknown"
	}
}

// Tabbed reports whether the page is one of the signed-in tabs.
func (p PageID) Tabbed() bool {
	return p >= PageDashboard && int(p) < tabCount
}

// Page defines the interface that all pages must implement.
type Page interface {
	// Init initializes the page once at program start.
	Init() tea.Cmd

	// Enter runs every time the page is navigated to and issues its
	// initial fetches.
	Enter(params NavigateParams) tea.Cmd

	// Update handles messages and returns the updated page and any commands.
	Update(msg tea.Msg) (Page, tea.Cmd)

	// View renders the page content.
	View() string

	// SetSize sets the available size for the page.
	SetSize(width, height int)

	// ShortHelp returns key bindings for the short help view.
	ShortHelp() []key.Binding

	// FullHelp returns key bindings for the full help view.
	FullHelp() [][]key.Binding

	// CapturesInput reports whether a text field has focus, in which case
	// printable keys go to the page instead of the global bindings.
	CapturesInput() bool
}

// KeyMap defines the global keybindings for the application.
type KeyMap struct {
	Tab1      key.Binding
	Tab2      key.Binding
	Tab3      key.Binding
	Tab4      key.Binding
	NextTab   key.Binding
	PrevTab   key.Binding
	Help      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
	Logout    key.Binding
	Escape    key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	km := KeyMap{}
	km = setTabKeys(km)
	km = setActionKeys(km)
	return km
}

func setTabKeys(k KeyMap) KeyMap {
	k.Tab1 = key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "dashboard"))
	k.Tab2 = key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "sites"))
	k.Tab3 = key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "add site"))
	k.Tab4 = key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "info"))
	k.NextTab = key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab"))
	k.PrevTab = key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev tab"))
	return k
}

func setActionKeys(k KeyMap) KeyMap {
	k.Help = key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help"))
	k.Quit = key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit"))
	k.ForceQuit = key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit"))
	k.Logout = key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "log out"))
	k.Escape = key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close"))
	return k
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Logout, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab1, k.Tab2, k.Tab3, k.Tab4},
		{k.NextTab, k.PrevTab},
		{k.Logout, k.Help, k.Quit},
	}
}

// Styles defines the application styles.
type Styles struct {
	// Tab bar styles
	TabBar      lipgloss.Style
	ActiveTab   lipgloss.Style
	InactiveTab lipgloss.Style
	Brand       lipgloss.Style
	UserBadge   lipgloss.Style

	// Notification styles
	NotificationSuccess lipgloss.Style
	NotificationError   lipgloss.Style
	NotificationWarning lipgloss.Style
	NotificationInfo    lipgloss.Style

	// Content styles
	Content lipgloss.Style
	Help    lipgloss.Style
	Toast   lipgloss.Style

	// Common styles
	Title     lipgloss.Style
	Subtle    lipgloss.Style
	Highlight lipgloss.Style
}

// DefaultStyles returns the default application styles.
func DefaultStyles() Styles {
	subtle := lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#5C5C5C"}
	highlight := lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	success := lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#04B575"}
	warning := lipgloss.AdaptiveColor{Light: "#FF8C00", Dark: "#FF8C00"}
	errorColor := lipgloss.AdaptiveColor{Light: "#FF5F87", Dark: "#FF5F87"}
	info := lipgloss.AdaptiveColor{Light: "#0087D7", Dark: "#5FAFFF"}

	s := Styles{}
	s.TabBar = lipgloss.NewStyle().Padding(0, 1).BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).BorderForeground(subtle)
	s.ActiveTab = lipgloss.NewStyle().Bold(true).Foreground(highlight).Padding(0, 2)
	s.InactiveTab = lipgloss.NewStyle().Foreground(subtle).Padding(0, 2)
	s.Brand = lipgloss.NewStyle().Bold(true).Foreground(highlight).PaddingRight(2)
	s.UserBadge = lipgloss.NewStyle().Foreground(subtle).PaddingLeft(2)

	s.NotificationSuccess = lipgloss.NewStyle().Foreground(success).Padding(0, 1)
	s.NotificationError = lipgloss.NewStyle().Foreground(errorColor).Bold(true).Padding(0, 1)
	s.NotificationWarning = lipgloss.NewStyle().Foreground(warning).Padding(0, 1)
	s.NotificationInfo = lipgloss.NewStyle().Foreground(info).Padding(0, 1)

	s.Content = lipgloss.NewStyle().Padding(1, 2)
	s.Help = lipgloss.NewStyle().Foreground(subtle).Padding(0, 1)
	s.Toast = styles.ToastStyle

	s.Title = lipgloss.NewStyle().Bold(true).Foreground(highlight)
	s.Subtle = lipgloss.NewStyle().Foreground(subtle)
	s.Highlight = lipgloss.NewStyle().Foreground(highlight)

	return s
}

// Model is the main application model.
type Model struct {
	// Page management
	active PageID
	pages  []Page
	start  NavigateMsg

	// Shared state
	state    *State
	services *services.Manager
	session  SessionEnder
	keymap   KeyMap
	styles   Styles

	// UI components
	spinner spinner.Model

	// Window dimensions
	width  int
	height int

	// UI state
	showHelp bool
	ready    bool

	// Service subscription
	eventChannel chan services.ServiceEvent
}

// NewModel initializes a new application model. mgr may be nil, in which case
// no service events are received and logout only navigates.
func NewModel(mgr *services.Manager) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	m := &Model{
		active:   PageDashboard,
		pages:    make([]Page, pageCount),
		start:    NavigateMsg{Page: PageDashboard},
		state:    NewState(),
		services: mgr,
		keymap:   DefaultKeyMap(),
		styles:   DefaultStyles(),
		spinner:  s,
	}
	if mgr != nil {
		m.session = mgr.Session()
	}

	return m
}

// SetPage installs the page model for id.
func (m *Model) SetPage(id PageID, page Page) {
	if id < 0 || id >= pageCount {
		return
	}
	m.pages[id] = page
	if page != nil && m.width > 0 && m.height > 0 {
		page.SetSize(m.width, m.contentHeight())
	}
}

// SetStartPage chooses the page entered by Init.
func (m *Model) SetStartPage(id PageID, params NavigateParams) {
	m.start = NavigateMsg{Page: id, Params: params}
	m.active = id
}

// GetState returns the application state.
func (m *Model) GetState() *State {
	return m.state
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.spinner.Tick,
		defaultTickCmd(),
	}

	if m.services != nil {
		cmds = append(cmds, subscribeToServicesCmd(m.services))
	}

	for _, page := range m.pages {
		if page != nil {
			cmds = append(cmds, page.Init())
		}
	}

	start := m.start
	cmds = append(cmds, func() tea.Msg { return start })

	return tea.Batch(cmds...)
}

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd, handled := m.handleKeyMsg(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		if handled {
			return m, tea.Batch(cmds...)
		}

	case tea.WindowSizeMsg:
		m.handleWindowSize(msg)

	case spinner.TickMsg:
		if cmd := m.handleSpinnerTick(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}

	case NavigateMsg:
		return m, m.navigate(msg)

	default:
		if appCmds := m.handleAppMsg(msg); len(appCmds) > 0 {
			cmds = append(cmds, appCmds...)
		}
	}

	if cmd := m.updateActivePage(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleAppMsg(msg tea.Msg) []tea.Cmd {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case TickMsg:
		m.state.ClearExpiredNotifications()
		cmds = append(cmds, defaultTickCmd())
	case SubscriptionEventMsg:
		m.eventChannel = msg.Channel
		cmds = append(cmds, waitForServiceEventCmd(m.eventChannel))
	case ServiceEventMsg:
		cmds = append(cmds, m.handleServiceEventMsg(msg)...)
	case AddNotificationMsg:
		id := m.state.AddNotification(msg.Type, msg.Title, msg.Message, msg.Duration)
		if msg.Duration > 0 {
			cmds = append(cmds, clearNotificationCmd(id, msg.Duration))
		}
	case RemoveNotificationMsg:
		m.state.RemoveNotification(msg.ID)
	case UserLoadedMsg:
		m.state.SetUser(msg.User)
	case LogoutMsg:
		cmds = append(cmds, m.handleLogout())
	case LogoutResultMsg:
		cmds = append(cmds, m.handleLogoutResult(msg)...)
	case CopyToClipboardMsg:
		cmds = append(cmds, copyToClipboardCmd(msg.Text, msg.Label))
	case ClipboardResultMsg:
		cmds = append(cmds, m.handleClipboardResult(msg))
	case ToggleHelpMsg:
		m.showHelp = !m.showHelp
	case QuitMsg:
		cmds = append(cmds, tea.Quit)
	}
	return cmds
}

func (m *Model) handleWindowSize(msg tea.WindowSizeMsg) {
	m.width = msg.Width
	m.height = msg.Height
	m.ready = true
	m.updatePageSizes()
}

func (m *Model) handleSpinnerTick(msg spinner.TickMsg) tea.Cmd {
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return cmd
}

func (m *Model) handleServiceEventMsg(msg ServiceEventMsg) []tea.Cmd {
	var cmds []tea.Cmd
	if cmd := m.handleServiceEvent(msg.Event); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if m.eventChannel != nil {
		cmds = append(cmds, waitForServiceEventCmd(m.eventChannel))
	}
	return cmds
}

func (m *Model) handleServiceEvent(event services.ServiceEvent) tea.Cmd {
	switch e := event.(type) {
	case services.SessionChangedEvent:
		if e.Handle == nil {
			if !m.active.Tabbed() {
				return nil
			}
			m.state.ClearUser()
			return tea.Batch(
				Notify(NotificationWarning, "Signed out", "Your session ended in another terminal."),
				Navigate(PageLogin, NavigateParams{}),
			)
		}
		// Dashboard re-checks /users/me and redirects if needed.
		return tea.Batch(
			NotifyInfo(fmt.Sprintf("Signed in as %s in another terminal", e.Handle.Email)),
			Navigate(PageDashboard, NavigateParams{}),
		)

	case services.ErrorEvent:
		return NotifyError(fmt.Sprintf("[%s] %v", e.Service, e.Error))
	}

	return nil
}

func (m *Model) handleLogout() tea.Cmd {
	if m.session == nil {
		m.state.ClearUser()
		return Navigate(PageLogin, NavigateParams{})
	}
	m.state.SetLoadingNotification("Signing out...")
	return logoutCmd(m.session)
}

// handleLogoutResult drops every toast of the ended session, the loading one
// included.
func (m *Model) handleLogoutResult(msg LogoutResultMsg) []tea.Cmd {
	m.state.ClearAllNotifications()
	m.state.ClearUser()

	cmds := []tea.Cmd{Navigate(PageLogin, NavigateParams{})}
	if msg.Error != nil {
		cmds = append(cmds, Notify(NotificationWarning, "Signed out locally",
			api.Message(msg.Error, "The server could not be reached.")))
	} else {
		cmds = append(cmds, NotifySuccess("Signed out"))
	}
	return cmds
}

func (m *Model) handleClipboardResult(msg ClipboardResultMsg) tea.Cmd {
	label := msg.Label
	if label == "" {
		label = "text"
	}
	if !msg.Success {
		return Notify(NotificationError, "Error", fmt.Sprintf("Could not copy %s to the clipboard", label))
	}
	return NotifySuccess(fmt.Sprintf("Copied %s to the clipboard", label))
}

// navigate shows the requested page and runs its Enter hook.
func (m *Model) navigate(msg NavigateMsg) tea.Cmd {
	if msg.Page < 0 || msg.Page >= pageCount {
		return nil
	}
	m.active = msg.Page
	m.showHelp = false
	m.updatePageSizes()

	if page := m.pages[m.active]; page != nil {
		return page.Enter(msg.Params)
	}
	return nil
}

func (m *Model) activePage() Page {
	if m.active >= 0 && m.active < pageCount {
		return m.pages[m.active]
	}
	return nil
}

func (m *Model) updateActivePage(msg tea.Msg) tea.Cmd {
	page := m.activePage()
	if page == nil {
		return nil
	}
	var cmd tea.Cmd
	m.pages[m.active], cmd = page.Update(msg)
	return cmd
}

func (m *Model) contentHeight() int {
	return max(0, m.height-5)
}

func (m *Model) updatePageSizes() {
	for _, page := range m.pages {
		if page != nil {
			page.SetSize(m.width, m.contentHeight())
		}
	}
}

// handleKeyMsg handles global keys. The second result reports whether the
// key was consumed and must not reach the page.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Cmd, bool) {
	if key.Matches(msg, m.keymap.ForceQuit) {
		return tea.Quit, true
	}

	if m.showHelp {
		if key.Matches(msg, m.keymap.Help, m.keymap.Escape) {
			m.showHelp = false
		}
		return nil, true
	}

	if page := m.activePage(); page != nil && page.CapturesInput() {
		return nil, false
	}

	switch {
	case key.Matches(msg, m.keymap.Quit):
		return tea.Quit, true

	case key.Matches(msg, m.keymap.Help):
		m.showHelp = true
		return nil, true
	}

	if !m.active.Tabbed() {
		return nil, false
	}

	switch {
	case key.Matches(msg, m.keymap.Tab1):
		return m.switchTab(PageDashboard), true
	case key.Matches(msg, m.keymap.Tab2):
		return m.switchTab(PageSites), true
	case key.Matches(msg, m.keymap.Tab3):
		return m.switchTab(PageAddSite), true
	case key.Matches(msg, m.keymap.Tab4):
		return m.switchTab(PageInfo), true
	case key.Matches(msg, m.keymap.NextTab):
		return m.switchTab(PageID((int(m.active) + 1) % tabCount)), true
	case key.Matches(msg, m.keymap.PrevTab):
		return m.switchTab(PageID((int(m.active) - 1 + tabCount) % tabCount)), true
	case key.Matches(msg, m.keymap.Logout):
		return Logout(), true
	}

	return nil, false
}

func (m *Model) switchTab(id PageID) tea.Cmd {
	if id == m.active {
		return nil
	}
	return Navigate(id, NavigateParams{})
}

// View renders the application UI.
func (m *Model) View() string {
	var b strings.Builder

	if m.width > 0 {
		b.WriteString(m.renderNavbar())
		b.WriteString("\n")
	}

	if !m.ready {
		b.WriteString(m.styles.Content.Render(fmt.Sprintf("%s Loading...", m.spinner.View())))
		return b.String()
	}

	if page := m.activePage(); page != nil {
		b.WriteString(page.View())
	} else {
		b.WriteString(m.renderPlaceholder())
	}

	if footer := m.renderFooter(); footer != "" {
		b.WriteString("\n")
		b.WriteString(footer)
	}

	mainView := b.String()

	if m.showHelp {
		mainView = m.overlayCentered(mainView, m.renderHelp())
	}

	if notifications := m.renderNotifications(); len(notifications) > 0 {
		return m.overlayToasts(mainView, notifications)
	}

	return mainView
}

func (m *Model) overlayCentered(mainView string, overlay string) string {
	mainLines := padLines(strings.Split(mainView, "\n"), m.height)
	overlayLines := strings.Split(overlay, "\n")

	overlayWidth := lipgloss.Width(overlay)

	y := max((m.height-len(overlayLines))/2, 0)
	x := max((m.width-overlayWidth)/2, 0)

	for i, overlayLine := range overlayLines {
		mainY := y + i
		if mainY >= len(mainLines) {
			break
		}

		mainLine := mainLines[mainY]
		left := ansi.Truncate(mainLine, x, "")
		right := ansi.TruncateLeft(mainLine, x+overlayWidth, "")

		if lipgloss.Width(left) < x {
			left += strings.Repeat(" ", x-lipgloss.Width(left))
		}

		mainLines[mainY] = left + overlayLine + right
	}

	return strings.Join(mainLines, "\n")
}

// padLines extends lines to at least n entries so overlays can be drawn below
// short pages.
func padLines(lines []string, n int) []string {
	for len(lines) < n {
		lines = append(lines, "")
	}
	return lines
}

func (m *Model) renderNavbar() string {
	brand := m.styles.Brand.Render("clutter")

	var bar string
	if m.active.Tabbed() {
		tabs := []string{brand}
		for i := range tabCount {
			name := PageID(i).String()
			if PageID(i) == m.active {
				tabs = append(tabs, m.styles.ActiveTab.Render(fmt.Sprintf("[%d] %s", i+1, name)))
			} else {
				tabs = append(tabs, m.styles.InactiveTab.Render(fmt.Sprintf(" %d  %s", i+1, name)))
			}
		}
		bar = lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	} else {
		bar = lipgloss.JoinHorizontal(lipgloss.Top, brand, m.styles.ActiveTab.Render(m.active.String()))
	}

	if user := m.state.User(); user != nil && m.active.Tabbed() {
		badge := m.styles.UserBadge.Render(user.DisplayName())
		gap := m.width - lipgloss.Width(bar) - lipgloss.Width(badge) - 2
		if gap > 0 {
			bar += strings.Repeat(" ", gap) + badge
		}
	}

	return m.styles.TabBar.Width(m.width).Render(bar)
}

func (m *Model) renderFooter() string {
	page := m.activePage()
	if page == nil {
		return ""
	}

	bindings := append([]key.Binding{}, page.ShortHelp()...)
	bindings = append(bindings, m.keymap.Help)

	var parts []string
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		parts = append(parts, styles.HelpKeyStyle.Render(h.Key)+" "+styles.HelpDescStyle.Render(h.Desc))
	}
	return m.styles.Help.Render(strings.Join(parts, styles.HelpSeparatorStyle.Render(" • ")))
}

func (m *Model) renderNotifications() []string {
	notifications := m.state.GetNotifications()
	if len(notifications) == 0 {
		return nil
	}

	var toasts []string
	for _, n := range notifications {
		var style lipgloss.Style
		var prefix string

		switch n.Type {
		case NotificationSuccess:
			style = m.styles.NotificationSuccess
			prefix = "[OK]"
		case NotificationError:
			style = m.styles.NotificationError
			prefix = "[ERR]"
		case NotificationWarning:
			style = m.styles.NotificationWarning
			prefix = "[WARN]"
		case NotificationInfo:
			style = m.styles.NotificationInfo
			prefix = "[INFO]"
		case NotificationLoading:
			style = m.styles.NotificationInfo
			prefix = m.spinner.View()
		}

		content := style.Render(fmt.Sprintf("%s %s", prefix, n.Text()))
		toasts = append(toasts, m.styles.Toast.Render(content))
	}

	return toasts
}

func (m *Model) overlayToasts(mainView string, toasts []string) string {
	if len(toasts) == 0 {
		return mainView
	}

	toastStack := lipgloss.JoinVertical(lipgloss.Right, toasts...)
	toastLines := strings.Split(toastStack, "\n")
	mainLines := padLines(strings.Split(mainView, "\n"), m.height)

	toastWidth := lipgloss.Width(toastStack)
	startX := max(m.width-toastWidth-2, 0)
	startY := 2

	for i, toastLine := range toastLines {
		lineIdx := startY + i
		if lineIdx >= len(mainLines) {
			break
		}

		mainLine := mainLines[lineIdx]
		mainLineWidth := lipgloss.Width(mainLine)

		if mainLineWidth < startX {
			mainLines[lineIdx] = mainLine + strings.Repeat(" ", startX-mainLineWidth) + toastLine
		} else {
			mainLines[lineIdx] = ansi.Truncate(mainLine, startX, "") + toastLine
		}
	}

	return strings.Join(mainLines, "\n")
}

func (m *Model) renderHelp() string {
	var lines []string

	lines = append(lines, m.styles.Title.Render("Keyboard Shortcuts"))
	lines = append(lines, "")

	if m.active.Tabbed() {
		lines = append(lines, m.styles.Highlight.Render("Navigation"))
		lines = append(lines, "  1-4        Switch tabs")
		lines = append(lines, "  Tab        Next tab")
		lines = append(lines, "  Shift+Tab  Previous tab")
		lines = append(lines, "")
	}

	lines = append(lines, m.styles.Highlight.Render("Actions"))
	if m.active.Tabbed() {
		lines = append(lines, "  L          Log out")
	}
	lines = append(lines, "  ?          Toggle help")
	lines = append(lines, "  q/Ctrl+C   Quit")
	lines = append(lines, "")

	if page := m.activePage(); page != nil {
		for _, group := range page.FullHelp() {
			if len(group) == 0 {
				continue
			}
			lines = append(lines, m.styles.Highlight.Render(m.active.String()))
			for _, binding := range group {
				lines = append(lines, fmt.Sprintf("  %-10s %s", binding.Help().Key, binding.Help().Desc))
			}
			lines = append(lines, "")
		}
	}

	lines = append(lines, m.styles.Subtle.Render("Press ? or Esc to close"))

	return styles.HelpPanelStyle.Render(strings.Join(lines, "\n"))
}

func (m *Model) renderPlaceholder() string {
	content := fmt.Sprintf(
		"%s\n\n%s",
		m.active.String(),
		m.styles.Subtle.Render("This page is not available."),
	)
	return m.styles.Content.Render(content)
}
