package verify

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/clutter-dashboard-tui/internal/ui/styles"
)

// View renders the verify page.
func (m *Model) View() string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		styles.TitleStyle.Render("Verify your email"),
		lipgloss.NewStyle().Width(min(max(m.width-16, 30), 60)).Render(
			"We've sent a verification code to your email address. Please enter it below to verify your account."),
		"",
		styles.FocusedBorderStyle.Render(m.input.View()),
		"",
		m.renderStatus(),
		"",
		m.renderResend(),
	)
	return styles.CenterBoth(styles.FormStyle.Render(body), m.width, m.height)
}

func (m *Model) renderStatus() string {
	if m.verifying {
		return styles.InfoTextStyle.Render("Verifying...")
	}
	return styles.HelpStyle.Render("enter to verify · esc to sign out")
}

func (m *Model) renderResend() string {
	switch {
	case m.resending:
		return styles.ButtonInactiveStyle.Render("Sending...")
	case m.remaining > 0:
		secs := int(m.remaining.Seconds())
		return lipgloss.JoinVertical(lipgloss.Left,
			styles.ButtonInactiveStyle.Render(fmt.Sprintf("Resend Code (%ds)", secs)),
			m.countdown.View(m.remaining, ResendCooldown),
		)
	default:
		return styles.ButtonActiveStyle.Render("ctrl+r Resend Code")
	}
}
