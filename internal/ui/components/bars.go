package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/j-veylop/clutter-dashboard-tui/internal/logger"
	"github.com/j-veylop/clutter-dashboard-tui/internal/ui/styles"
)

const (
	shareFrom = "#5fafff"
	shareTo   = "#ff5faf"
)

// RenderGradientBar renders a bar filled to percent (0-100) with a gradient.
func RenderGradientBar(percent float64, width int) string {
	if width < 1 {
		return ""
	}

	filled := min(max(int(float64(width)*percent/100), 0), width)

	var b strings.Builder
	for i := range width {
		if i < filled {
			t := float64(i) / float64(max(1, width-1))
			color := interpolateColor(shareFrom, shareTo, t)
			b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("█"))
		} else {
			b.WriteString(lipgloss.NewStyle().Foreground(styles.Subtle).Render("░"))
		}
	}
	return b.String()
}

// ShareRow is one labelled row of a breakdown.
type ShareRow struct {
	Label   string
	Count   int64
	Percent float64
}

// RenderShareRows renders one gradient bar per row, in the given order, with
// the count and share on the right.
func RenderShareRows(rows []ShareRow, width int) string {
	if len(rows) == 0 {
		return styles.HelpStyle.Render("No data available")
	}

	labelWidth := 0
	for _, r := range rows {
		labelWidth = max(labelWidth, lipgloss.Width(r.Label))
	}
	labelWidth = min(labelWidth, max(width/3, 8))

	const countWidth = 8
	const percentWidth = 6
	barWidth := max(width-labelWidth-countWidth-percentWidth-6, 5)

	labelStyle := lipgloss.NewStyle().Foreground(styles.TextSecondary).Width(labelWidth)
	countStyle := lipgloss.NewStyle().Foreground(styles.TextPrimary).Width(countWidth).Align(lipgloss.Right)
	percentStyle := lipgloss.NewStyle().Foreground(styles.TextSecondary).Width(percentWidth).Align(lipgloss.Right)

	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = fmt.Sprintf("%s [%s] %s %s",
			labelStyle.Render(styles.Truncate(r.Label, labelWidth)),
			RenderGradientBar(r.Percent, barWidth),
			countStyle.Render(humanize.Comma(r.Count)),
			percentStyle.Render(fmt.Sprintf("%.0f%%", r.Percent)),
		)
	}
	return strings.Join(lines, "\n")
}

// CountdownBar shows how much of a cooldown is left.
type CountdownBar struct {
	progress progress.Model
}

// NewCountdownBar creates a countdown bar of the given width.
func NewCountdownBar(width int) CountdownBar {
	p := progress.New(
		progress.WithScaledGradient("#ffd93d", "#6c5ce7"),
		progress.WithWidth(max(width, 10)),
		progress.WithoutPercentage(),
	)
	return CountdownBar{progress: p}
}

// SetWidth resizes the bar.
func (c *CountdownBar) SetWidth(width int) {
	c.progress.Width = max(width, 10)
}

// View renders the remaining part of total with a "Ns" label. The bar is
// full when the countdown starts and empty when it ends.
func (c CountdownBar) View(remaining, total time.Duration) string {
	percent := 0.0
	if total > 0 {
		percent = min(max(float64(remaining)/float64(total), 0), 1)
	}
	secs := int((remaining + time.Second - 1) / time.Second)
	label := lipgloss.NewStyle().Foreground(styles.TextSecondary).Render(fmt.Sprintf("%2ds", max(secs, 0)))
	return c.progress.ViewAs(percent) + " " + label
}

func interpolateColor(fromHex, toHex string, t float64) string {
	from := hexToRGB(fromHex)
	to := hexToRGB(toHex)

	r := int(float64(from[0]) + t*(float64(to[0])-float64(from[0])))
	g := int(float64(from[1]) + t*(float64(to[1])-float64(from[1])))
	b := int(float64(from[2]) + t*(float64(to[2])-float64(from[2])))

	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

func hexToRGB(hex string) [3]int {
	hex = strings.TrimPrefix(hex, "#")
	var r, g, b int
	if _, err := fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b); err != nil {
		logger.Error("failed to parse hex color", "hex", hex, "error", err)
		return [3]int{0, 0, 0}
	}
	return [3]int{r, g, b}
}
