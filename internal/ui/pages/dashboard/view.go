package dashboard

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/j-veylop/clutter-dashboard-tui/internal/models"
	"github.com/j-veylop/clutter-dashboard-tui/internal/services/analytics"
	"github.com/j-veylop/clutter-dashboard-tui/internal/ui/components"
	"github.com/j-veylop/clutter-dashboard-tui/internal/ui/styles"
)

// sideBySideWidth is the narrowest page that fits two cards per row.
const sideBySideWidth = 100

// View renders the dashboard page.
func (m *Model) View() string {
	switch m.phase {
	case phaseLoading:
		return components.RenderSpinnerCentered(m.spinner, m.width, m.height)
	case phaseError:
		return m.renderMessage(
			"Sites unavailable",
			"We couldn't load your sites at the moment.",
			"Press r to try again.",
		)
	case phaseNoSites:
		return m.renderMessage(
			"No sites found",
			"You haven't added any sites yet.",
			"Press a to add your first site and start tracking analytics.",
		)
	}

	site, _ := m.currentSite()
	header := m.renderHeader(site)

	m.viewport.Height = max(m.height-lipgloss.Height(header), 1)
	m.viewport.SetContent(m.renderBody(site))

	return lipgloss.JoinVertical(lipgloss.Left, header, m.viewport.View())
}

func (m *Model) renderMessage(title, body, hint string) string {
	content := lipgloss.JoinVertical(lipgloss.Center,
		styles.TitleStyle.Render(title),
		body,
		"",
		styles.HelpStyle.Render(hint),
	)
	return styles.CenterBoth(content, m.width, m.height)
}

func (m *Model) renderHeader(site models.Site) string {
	title := styles.TitleStyle.UnsetMarginBottom().Render("Analytics: " + site.SiteURL)

	position := ""
	if len(m.siteList) > 1 {
		position = styles.HelpStyle.Render(fmt.Sprintf("  ◂ site %d of %d ▸", m.selected+1, len(m.siteList)))
	}

	window := styles.HelpStyle.Render(fmt.Sprintf("View your site statistics and insights. Last 28 days: %s → %s",
		m.from.Local().Format("Jan 2"), m.to.Local().Format("Jan 2")))

	return lipgloss.JoinVertical(lipgloss.Left, title+position, window, "")
}

func (m *Model) renderBody(site models.Site) string {
	data := m.data
	if data != nil && m.dataSite != site.ID {
		data = nil
	}

	switch {
	case data == nil && m.fetching:
		return m.spinner.ViewWithLabel()
	case data == nil && m.lastError != nil:
		return styles.ErrorTextStyle.Render(loadFailedMessage) + "\n" +
			styles.HelpStyle.Render("Press r to try again.")
	case data.IsEmpty():
		return lipgloss.JoinVertical(lipgloss.Left,
			styles.SubTitleStyle.Render("No analytics data available"),
			"We haven't collected any data for this site yet.",
			styles.HelpStyle.Render("Analytics data will appear here once visitors start browsing your site."),
		)
	}

	full := m.contentWidth()
	half := full
	if m.width >= sideBySideWidth {
		half = (full - 1) / 2
	}

	sections := []string{
		m.pair(
			m.renderStatCard("Unique Visitors", data.UniqueVisitors, components.RenderSparkline(data.VisitorSeries(), half-8), half),
			m.renderStatCard("Total Pageviews", data.PageViews, viewsPerVisitor(data), half),
		),
		m.renderVisitorsCard(data, full),
		m.pair(
			m.renderSourcesCard(data, half),
			m.renderPagesCard(data, half),
		),
		m.renderDevicesCard(data, full),
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) contentWidth() int {
	return max(m.width-2, 40)
}

// pair lays two cards side by side on wide terminals and stacks them
// otherwise.
func (m *Model) pair(left, right string) string {
	if m.width >= sideBySideWidth {
		return lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)
	}
	return lipgloss.JoinVertical(lipgloss.Left, left, right)
}

func card(title, subtitle, body string, width int) string {
	rows := []string{styles.CardTitleStyle.UnsetMarginBottom().Render(title)}
	if subtitle != "" {
		rows = append(rows, styles.HelpStyle.Render(subtitle))
	}
	rows = append(rows, "", body)

	return styles.CardStyle.
		Width(width).
		Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m *Model) renderStatCard(label string, value int64, detail string, width int) string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		styles.StatValueStyle.Render(humanize.Comma(value)),
		detail,
	)
	return card(label, "Last 28 days", body, width)
}

func viewsPerVisitor(data *models.SiteAnalytics) string {
	if data.UniqueVisitors == 0 {
		return styles.StatLabelStyle.Render("No unique visitors recorded")
	}
	ratio := float64(data.PageViews) / float64(data.UniqueVisitors)
	return styles.StatLabelStyle.Render(fmt.Sprintf("%.1f pageviews per visitor", ratio))
}

func (m *Model) renderVisitorsCard(data *models.SiteAnalytics, width int) string {
	graph := components.RenderVisitorGraph(data.VisitorDays(), data.VisitorSeries(), width-6, 8)
	return card("Visitors", "Unique visitors per day", graph, width)
}

func (m *Model) renderSourcesCard(data *models.SiteAnalytics, width int) string {
	bars := make([]components.Bar, len(data.TopReferrers))
	for i, r := range data.TopReferrers {
		label := r.Referrer
		if label == "" {
			label = "Direct / None"
		}
		bars[i] = components.Bar{Label: label, Value: float64(r.Count)}
	}
	return card("Top Sources", "Where your visitors come from", renderBars(bars, width-6), width)
}

func (m *Model) renderPagesCard(data *models.SiteAnalytics, width int) string {
	bars := make([]components.Bar, len(data.TopPages))
	for i, p := range data.TopPages {
		bars[i] = components.Bar{Label: p.Page, Value: float64(p.Count)}
	}
	return card("Top Pages", "Most visited pages", renderBars(bars, width-6), width)
}

func (m *Model) renderDevicesCard(data *models.SiteAnalytics, width int) string {
	shares := analytics.DeviceShares(data.DeviceStats)
	rows := make([]components.ShareRow, len(shares))
	items := make([]components.LegendItem, len(shares))
	for i, s := range shares {
		rows[i] = components.ShareRow{Label: s.Label, Count: s.Count, Percent: s.Percent}
		items[i] = components.LegendItem{Label: s.Label, Color: styles.DeviceColors[i%len(styles.DeviceColors)]}
	}

	body := components.RenderShareRows(rows, width-6)
	if len(items) > 0 {
		body = lipgloss.JoinVertical(lipgloss.Left, body, "", components.RenderLegend(items))
	}
	return card("Devices", "Breakdown by device type", body, width)
}

func renderBars(bars []components.Bar, width int) string {
	if len(bars) == 0 {
		return styles.HelpStyle.Render("No data available")
	}
	return components.RenderBarChart(bars, width, func(v float64) string {
		return humanize.Comma(int64(v))
	})
}
