package info

import (
	"fmt"
	"runtime"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/j-veylop/clutter-dashboard-tui/internal/ui/styles"
	"github.com/j-veylop/clutter-dashboard-tui/internal/version"
)

// View renders the info page.
func (m *Model) View() string {
	sections := []string{
		m.renderTitle(),
		m.renderConfigCard(),
		m.renderSessionCard(),
		m.renderAboutCard(),
	}

	m.viewport.SetContent(lipgloss.JoinVertical(lipgloss.Left, sections...))

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Info")
	subtitle := styles.HelpStyle.Render("Configuration, session and build information")

	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

func (m *Model) cardWidth() int {
	return min(max(m.width-6, 50), 80)
}

func (m *Model) renderConfigCard() string {
	rows := []string{styles.CardTitleStyle.Render("Configuration"), ""}

	if m.config != nil {
		timeout := "none"
		if m.config.RequestTimeout > 0 {
			timeout = m.config.RequestTimeout.String()
		}
		notify := "off"
		if m.config.Notify {
			notify = "on"
		}
		rows = append(rows,
			renderRow("API URL", m.config.APIURL),
			renderRow("Tracker script", m.config.TrackerURL),
			renderRow("Database", m.config.DatabasePath),
			renderRow("Log file", m.config.LogPath),
			renderRow("Log level", m.config.LogLevel),
			renderRow("Request timeout", timeout),
			renderRow("Notifications", notify),
			"",
			styles.HelpStyle.Render("Press 'c' to copy the API URL, 'C' for the database path"),
		)
	} else {
		rows = append(rows, styles.HelpStyle.Render("Configuration not loaded"))
	}

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

func (m *Model) renderSessionCard() string {
	rows := []string{styles.CardTitleStyle.Render("Session"), ""}

	if m.handle == nil {
		rows = append(rows, styles.HelpStyle.Render("Not signed in"))
	} else {
		rows = append(rows,
			renderRow("Signed in as", m.handle.Email),
			renderRow("Since", humanize.Time(m.handle.StartedAt)),
			renderRow("Handle", m.handle.ID),
		)
	}

	if user := m.state.User(); user != nil {
		verified := styles.GetVerifiedStyle(user.EmailVerified)
		status := "unverified"
		if user.EmailVerified {
			status = "verified"
		}
		rows = append(rows,
			"",
			renderRow("Username", user.Username),
			renderRow("Email", user.Email+" "+verified.Render(status)),
		)
		if !user.CreatedAt.IsZero() {
			rows = append(rows, renderRow("Member since", user.CreatedAt.Local().Format("Jan 2, 2006")))
		}
		if fetched := m.state.UserFetchedAt(); !fetched.IsZero() {
			rows = append(rows, renderRow("Checked", humanize.Time(fetched)))
		}
	}

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

func (m *Model) renderAboutCard() string {
	rows := []string{
		styles.CardTitleStyle.Render("About Clutter"),
		"",
		renderRow("Version", version.GetVersion()),
		renderRow("Build Date", version.GetDate()),
		renderRow("Git Commit", version.GetCommit()),
		renderRow("Go Version", runtime.Version()),
		renderRow("Platform", fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)),
	}

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

// renderRow renders a key-value row.
func renderRow(label, value string) string {
	labelStyle := lipgloss.NewStyle().
		Width(18).
		Foreground(styles.TextMuted)

	valueStyle := lipgloss.NewStyle().
		Foreground(styles.TextPrimary)

	return labelStyle.Render(label+":") + " " + valueStyle.Render(value)
}
