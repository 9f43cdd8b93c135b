package signup

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/clutter-dashboard-tui/internal/ui/styles"
)

// View renders the signup page.
func (m *Model) View() string {
	status := styles.HelpStyle.Render("Already have an account? Press esc to sign in.")
	if m.submitting {
		status = styles.InfoTextStyle.Render("Creating account...")
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		styles.TitleStyle.Render("Create an account"),
		styles.HelpStyle.Render("Start tracking your websites in minutes."),
		"",
		m.form.View(),
		"",
		status,
	)
	return styles.CenterBoth(styles.FormStyle.Render(body), m.width, m.height)
}
