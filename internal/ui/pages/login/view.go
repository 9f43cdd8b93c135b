package login

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/clutter-dashboard-tui/internal/ui/styles"
)

// View renders the login page.
func (m *Model) View() string {
	status := styles.HelpStyle.Render("Don't have an account? Press ctrl+n to sign up.")
	if m.submitting {
		status = styles.InfoTextStyle.Render("Signing in...")
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		styles.TitleStyle.Render("Welcome back"),
		styles.HelpStyle.Render("Sign in to view your site analytics."),
		"",
		m.form.View(),
		"",
		status,
	)
	return styles.CenterBoth(styles.FormStyle.Render(body), m.width, m.height)
}
