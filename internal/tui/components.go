package tui

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/nova728/diary/internal/output"
	"github.com/nova728/diary/internal/stats"
)

// boxWidth is the content width of a section box for a window width.
func boxWidth(width int) int {
	return max(width-4, 20)
}

// OverviewView renders the headline numbers.
func OverviewView(o *stats.Overview, width int) string {
	if o == nil {
		return ""
	}
	stat := func(label, value string) string {
		return StyleNumber.Render(value) + " " + StyleSubtitle.Render(label)
	}
	line := strings.Join([]string{
		stat("entries", fmt.Sprint(o.TotalEntries)),
		stat("words", humanize.Comma(int64(o.TotalWords))),
		stat("day streak", fmt.Sprint(o.Streak)),
		stat("this month", fmt.Sprint(o.ThisMonthCount)),
	}, "   ")
	return StyleBox.Width(boxWidth(width)).Render(StyleTitle.Render("Overview") + "\n" + line)
}

// GoalView renders today's and this week's goal progress.
func GoalView(p *stats.GoalProgress, width int) string {
	if p == nil {
		return ""
	}
	barWidth := max(boxWidth(width)-46, 10)

	var content strings.Builder
	content.WriteString(StyleTitle.Render("Writing goal"))
	content.WriteString("\n")
	fmt.Fprintf(&content, "Today      %s %3d%%  %s\n", ProgressBar(p.DailyPercent, barWidth), p.DailyPercent,
		StyleSubtitle.Render(fmt.Sprintf("%d / %d words", p.DailyWords, p.DailyGoal)))
	fmt.Fprintf(&content, "This week  %s %3d%%  %s", ProgressBar(p.WeeklyPercent, barWidth), p.WeeklyPercent,
		StyleSubtitle.Render(fmt.Sprintf("%d / %d entries", p.WeeklyEntries, p.WeeklyGoal)))

	box := StyleBox
	if p.DailyPercent >= 100 && p.WeeklyPercent >= 100 {
		box = StyleCompleteBox
		content.WriteString("\n" + StyleSuccess.Render("✓ Goals met"))
	}
	return box.Width(boxWidth(width)).Render(content.String())
}

// HeatmapView renders the year heatmap with its totals.
func HeatmapView(h *stats.Heatmap, width int) string {
	if h == nil {
		return ""
	}
	inner := boxWidth(width) - 4
	title := StyleTitle.Render(fmt.Sprintf("Activity %d", h.Year))
	summary := StyleSubtitle.Render(fmt.Sprintf("%s · %s",
		output.Plural(h.Stats.TotalDays, "active day", "active days"),
		output.FormatWords(h.Stats.TotalWords)))
	grid := strings.TrimRight(output.RenderHeatmap(h, inner, true), "\n")
	return StyleBox.Width(boxWidth(width)).Render(title + "\n" + grid + "\n" + summary)
}

// MemoriesView renders the on-this-day entries, at most limit of them.
func MemoriesView(memories []stats.Memory, width, limit int) string {
	var content strings.Builder
	content.WriteString(StyleTitle.Render("On this day"))
	content.WriteString("\n")

	if len(memories) == 0 {
		content.WriteString(StyleSubtitle.Render("Nothing written on this day in other years"))
	}
	excerptWidth := max(boxWidth(width)-8, 20)
	for i, m := range memories {
		if i == limit {
			content.WriteString("\n" + StyleSubtitle.Render(fmt.Sprintf("…and %d more", len(memories)-limit)))
			break
		}
		if i > 0 {
			content.WriteString("\n")
		}
		when := output.Plural(m.YearsAgo, "year ago", "years ago")
		if m.YearsAgo < 0 {
			when = output.Plural(-m.YearsAgo, "year ahead", "years ahead")
		}
		content.WriteString(StyleEntryTitle.Render(m.Entry.Title) + "  " + StyleSubtitle.Render(when))
		if excerpt := output.Excerpt(m.Entry.ContentText, excerptWidth); excerpt != "" {
			content.WriteString("\n  " + StyleExcerpt.Render(excerpt))
		}
	}
	return StyleBox.Width(boxWidth(width)).Render(content.String())
}

// HelpBar renders the help bar at the bottom.
func HelpBar() string {
	keys := []struct {
		key  string
		desc string
	}{
		{"←/→", "year"},
		{"r", "refresh"},
		{"q", "quit"},
	}

	var parts []string
	for _, k := range keys {
		part := StyleHelpKey.Render(k.key) + " " + StyleHelpDesc.Render(k.desc)
		parts = append(parts, part)
	}

	return StyleHelp.Render(strings.Join(parts, "  •  "))
}
