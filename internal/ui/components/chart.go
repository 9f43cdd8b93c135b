// Package components provides reusable UI components for the TUI.
package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/j-veylop/clutter-dashboard-tui/internal/ui/styles"
)

// graphAxisWidth is the room asciigraph needs for the y-axis labels.
const graphAxisWidth = 10

// RenderLineChart creates a single-series ASCII line chart.
func RenderLineChart(data []float64, width, height int, caption string) string {
	if len(data) == 0 {
		return styles.HelpStyle.Render("No data available")
	}

	width = max(width, 20)
	height = max(height, 3)

	// asciigraph needs two points to draw a line.
	if len(data) == 1 {
		data = []float64{data[0], data[0]}
	}

	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Precision(0),
		asciigraph.LowerBound(0),
		asciigraph.SeriesColors(asciigraph.Blue),
		asciigraph.Caption(caption),
	)
}

// RenderVisitorGraph plots unique visitors per day in backend order. days
// labels the first and last points in the caption.
func RenderVisitorGraph(days []string, visitors []float64, width, height int) string {
	if len(visitors) == 0 {
		return styles.HelpStyle.Render("No visitors recorded in this period")
	}

	caption := "Unique visitors"
	if len(days) > 0 {
		caption = fmt.Sprintf("Unique visitors  %s → %s", days[0], days[len(days)-1])
	}

	return RenderLineChart(visitors, width-graphAxisWidth, height, caption)
}

// Bar is one entry of a horizontal bar chart.
type Bar struct {
	Label string
	Value float64
}

// RenderBarChart creates a simple horizontal bar chart in the given order.
func RenderBarChart(bars []Bar, width int, format func(float64) string) string {
	if len(bars) == 0 {
		return ""
	}
	if format == nil {
		format = func(v float64) string { return fmt.Sprintf("%.0f", v) }
	}

	maxVal := 0.0
	maxLabelLen := 0
	for _, b := range bars {
		maxVal = max(maxVal, b.Value)
		maxLabelLen = max(maxLabelLen, lipgloss.Width(b.Label))
	}
	if maxVal == 0 {
		maxVal = 1
	}
	maxLabelLen = min(maxLabelLen, max(width/2, 8))

	barWidth := max(width-maxLabelLen-12, 10)
	barStyle := lipgloss.NewStyle().Foreground(styles.PageViews)

	lines := make([]string, len(bars))
	for i, b := range bars {
		label := fmt.Sprintf("%-*s", maxLabelLen, styles.Truncate(b.Label, maxLabelLen))
		barLen := max(int((b.Value/maxVal)*float64(barWidth)), 0)
		bar := barStyle.Render(strings.Repeat("█", barLen))
		lines[i] = label + " │" + bar + " " + format(b.Value)
	}

	return strings.Join(lines, "\n")
}

var sparkChars = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// RenderSparkline creates a compact inline sparkline chart.
func RenderSparkline(values []float64, width int) string {
	if len(values) == 0 || width < 1 {
		return ""
	}

	maxVal := 0.0
	for _, v := range values {
		maxVal = max(maxVal, v)
	}
	if maxVal == 0 {
		maxVal = 1
	}

	var result strings.Builder
	step := max(float64(len(values))/float64(width), 1)

	for i := 0; i < width && int(float64(i)*step) < len(values); i++ {
		val := values[int(float64(i)*step)]
		normalized := min(max(int((val/maxVal)*float64(len(sparkChars)-1)), 0), len(sparkChars)-1)
		result.WriteRune(sparkChars[normalized])
	}

	return lipgloss.NewStyle().Foreground(styles.Visitors).Render(result.String())
}

// LegendItem represents a single legend entry.
type LegendItem struct {
	Label string
	Color lipgloss.Color
}

// RenderLegend creates a chart legend.
func RenderLegend(items []LegendItem) string {
	parts := make([]string, len(items))
	for i, item := range items {
		colorBox := lipgloss.NewStyle().Foreground(item.Color).Render("■")
		parts[i] = fmt.Sprintf("%s %s", colorBox, item.Label)
	}
	return strings.Join(parts, "  ")
}
