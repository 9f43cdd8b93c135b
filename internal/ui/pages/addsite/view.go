package addsite

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/clutter-dashboard-tui/internal/ui/styles"
)

// View renders the add site page.
func (m *Model) View() string {
	var content string
	if m.phase == phaseCreated {
		content = m.renderSnippet()
	} else {
		content = m.renderForm()
	}
	return styles.CenterBoth(content, m.width, m.height)
}

func (m *Model) renderForm() string {
	status := styles.HelpStyle.Render("enter to add · esc to cancel")
	if m.submitting {
		status = styles.InfoTextStyle.Render("Adding site...")
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		styles.TitleStyle.Render("Add a new site"),
		"Enter the domain name of the website you want to track",
		"",
		styles.FocusedBorderStyle.Render(m.input.View()),
		"",
		status,
	)
	return styles.FormStyle.Render(body)
}

func (m *Model) renderSnippet() string {
	width := min(max(m.width-12, 40), 90)

	body := lipgloss.JoinVertical(lipgloss.Left,
		styles.TitleStyle.Render("Installation Instructions"),
		styles.SuccessTextStyle.Render("✓ "+m.siteURL+" is ready to track"),
		"",
		"Add this script to the <head> section of your website.",
		"",
		styles.SnippetStyle.Width(width-8).Render(m.snippet),
		"",
		styles.HelpStyle.Render("Site ID: "+m.siteID),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top,
			styles.ButtonActiveStyle.Render("enter Go to Dashboard"),
			styles.ButtonInactiveStyle.Render("c Copy"),
			styles.ButtonInactiveStyle.Render("d View analytics"),
		),
	)
	return styles.FormStyle.Width(width).Render(body)
}
