package sites

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/j-veylop/clutter-dashboard-tui/internal/models"
	"github.com/j-veylop/clutter-dashboard-tui/internal/ui/components"
	"github.com/j-veylop/clutter-dashboard-tui/internal/ui/styles"
)

const dateLayout = "Jan 2, 2006"

// columns sizes the table to width. The ID column keeps a full UUID visible
// on wide terminals.
func columns(width int) []table.Column {
	usable := max(width-10, 50)
	added := 26
	id := min(36, usable/3)
	site := max(usable-added-id, 16)
	return []table.Column{
		{Title: "Site", Width: site},
		{Title: "Added", Width: added},
		{Title: "ID", Width: id},
	}
}

func rows(sites []models.Site) []table.Row {
	out := make([]table.Row, len(sites))
	for i, s := range sites {
		out[i] = table.Row{s.SiteURL, addedOn(s), s.ID}
	}
	return out
}

func addedOn(s models.Site) string {
	if s.CreatedAt.IsZero() {
		return "unknown"
	}
	return fmt.Sprintf("%s (%s)", s.CreatedAt.Local().Format(dateLayout), humanize.Time(s.CreatedAt))
}

// View renders the sites page.
func (m *Model) View() string {
	header := m.renderHeader()

	var body string
	switch m.phase {
	case phaseLoading:
		body = components.RenderSpinnerCentered(m.spinner, m.width, max(m.height-lipgloss.Height(header), 1))
	case phaseError:
		body = lipgloss.JoinVertical(lipgloss.Left,
			styles.SubTitleStyle.Render("Sites Unavailable"),
			"We couldn't load your sites at the moment.",
			"",
			styles.HelpStyle.Render("Press r to try again."),
		)
	default:
		body = m.renderList()
	}

	return styles.DocStyle.UnsetMargins().Render(lipgloss.JoinVertical(lipgloss.Left, header, body))
}

func (m *Model) renderHeader() string {
	title := styles.TitleStyle.UnsetMarginBottom().Render("Your Sites")
	subtitle := styles.HelpStyle.Render("Manage and track your websites.")
	if m.phase == phaseReady && len(m.list) > 0 {
		subtitle += styles.HelpStyle.Render(fmt.Sprintf("  %d tracked", len(m.list)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

func (m *Model) renderList() string {
	if len(m.list) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left,
			styles.SubTitleStyle.Render("No sites yet"),
			"You haven't added any sites yet.",
			"",
			styles.HelpStyle.Render("Press a to add a site."),
		)
	}

	sections := []string{m.table.View(), ""}

	if m.pending != nil {
		sections = append(sections, m.renderConfirm(*m.pending))
	} else if site, ok := m.selected(); ok {
		sections = append(sections, m.renderDetails(site))
	}
	if m.spinner.Active() {
		sections = append(sections, m.spinner.ViewWithLabel())
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) renderDetails(site models.Site) string {
	label := lipgloss.NewStyle().Width(10).Foreground(styles.TextMuted)
	value := lipgloss.NewStyle().Foreground(styles.TextPrimary)

	added := "unknown"
	if !site.CreatedAt.IsZero() {
		added = site.CreatedAt.Local().Format(dateLayout)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		styles.CardTitleStyle.UnsetMarginBottom().Render(site.SiteURL),
		label.Render("Added on")+value.Render(added),
		label.Render("ID:")+value.Render(site.ID),
	)
}

func (m *Model) renderConfirm(site models.Site) string {
	action := "[y] Yes, delete   [n] Cancel"
	if m.deleting {
		action = "Deleting " + site.SiteURL + "..."
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.ErrorTextStyle.Bold(true).Render("Are you absolutely sure?"),
		"",
		lipgloss.NewStyle().Width(min(max(m.width-12, 30), 70)).Render(
			"This action cannot be undone. This will permanently delete your site and remove your data from our servers."),
		"",
		"Site: "+styles.WarningTextStyle.Render(site.SiteURL),
		"",
		styles.HelpStyle.Render(action),
	)
	return styles.ModalContentStyle.Render(content)
}
