package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nova728/diary/internal/stats"
)

// heatmapPrefix is the width of the weekday label column.
const heatmapPrefix = 4

// Heatmap cell glyphs by intensity, for output without color.
var heatmapGlyphs = [...]string{
	stats.IntensityNone:   "·",
	stats.IntensityLow:    "░",
	stats.IntensityMedium: "▒",
	stats.IntensityHigh:   "▓",
	stats.IntensityMax:    "█",
}

// Heatmap cell colors by intensity.
var heatmapColors = [...]lipgloss.Color{
	stats.IntensityNone:   "#2D333B",
	stats.IntensityLow:    "#0E4429",
	stats.IntensityMedium: "#006D32",
	stats.IntensityHigh:   "#26A641",
	stats.IntensityMax:    "#39D353",
}

var weekdayLabels = [7]string{"Mon", "", "Wed", "", "Fri", "", "Sun"}

// RenderHeatmap draws the year as a grid of weeks (columns) by weekdays (rows,
// Monday first). When the grid is wider than width only the latest weeks are drawn.
func RenderHeatmap(h *stats.Heatmap, width int, color bool) string {
	if len(h.Days) == 0 {
		return ""
	}
	offset := h.Days[0].Date.ISOWeekday() - 1
	weeks := (offset + len(h.Days) + 6) / 7

	cellWidth := 2
	if heatmapPrefix+weeks*cellWidth > width {
		cellWidth = 1
	}
	visible := max((width-heatmapPrefix)/cellWidth, 1)
	firstWeek := max(weeks-visible, 0)

	cell := func(i stats.Intensity) string {
		if color {
			return lipgloss.NewStyle().Foreground(heatmapColors[i]).Render("■")
		}
		return heatmapGlyphs[i]
	}

	var grid [7][]string
	for row := range grid {
		grid[row] = make([]string, weeks)
		for col := range grid[row] {
			grid[row][col] = " "
		}
	}
	months := []rune(strings.Repeat(" ", heatmapPrefix+(weeks-firstWeek)*cellWidth))
	lastLabelEnd := 0
	for i, day := range h.Days {
		pos := offset + i
		col, row := pos/7, pos%7
		grid[row][col] = cell(stats.IntensityOf(day.Count))

		if day.Date.Day() != 1 || col < firstWeek {
			continue
		}
		start := heatmapPrefix + (col-firstWeek)*cellWidth
		label := day.Date.Month().String()[:3]
		if start >= lastLabelEnd && start+len(label) <= len(months) {
			copy(months[start:], []rune(label))
			lastLabelEnd = start + len(label) + 1
		}
	}

	var b strings.Builder
	b.WriteString(strings.TrimRight(string(months), " "))
	b.WriteString("\n")
	gap := strings.Repeat(" ", cellWidth-1)
	for row := range grid {
		line := fmt.Sprintf("%-*s", heatmapPrefix, weekdayLabels[row])
		for col := firstWeek; col < weeks; col++ {
			line += grid[row][col] + gap
		}
		b.WriteString(strings.TrimRight(line, " "))
		b.WriteString("\n")
	}

	legend := make([]string, 0, len(heatmapGlyphs))
	for i := range heatmapGlyphs {
		legend = append(legend, cell(stats.Intensity(i)))
	}
	b.WriteString(strings.Repeat(" ", heatmapPrefix) + "less " + strings.Join(legend, " ") + " more\n")
	return b.String()
}

// PrintHeatmap prints the heatmap grid and its totals.
func (c *CLIFormatter) PrintHeatmap(h *stats.Heatmap) {
	c.Title(fmt.Sprintf("%d", h.Year))
	c.Print(RenderHeatmap(h, c.Width(), c.IsColorEnabled()))
	c.Println()
	c.Muted(fmt.Sprintf("%s · %s · %s",
		Plural(h.Stats.TotalDays, "active day", "active days"),
		Plural(h.Stats.TotalEntries, "entry", "entries"),
		FormatWords(h.Stats.TotalWords)))
}
