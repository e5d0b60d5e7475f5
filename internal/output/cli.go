package output

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/nova728/diary/internal/journal"
	"github.com/nova728/diary/internal/model"
	"github.com/nova728/diary/internal/stats"
)

// Styles for CLI output.
var (
	// Colors
	colorPrimary = lipgloss.Color("#7C3AED") // Purple
	colorMuted   = lipgloss.Color("#6B7280") // Gray
	colorWarning = lipgloss.Color("#F59E0B") // Yellow
	colorError   = lipgloss.Color("#EF4444") // Red
	colorSuccess = lipgloss.Color("#10B981") // Green

	// Styles
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorSuccess)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorWarning)

	styleError = lipgloss.NewStyle().
			Foreground(colorError)

	styleMuted = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleBold = lipgloss.NewStyle().
			Bold(true)

	styleTag = lipgloss.NewStyle().
			Foreground(colorSuccess)

	styleNumber = lipgloss.NewStyle().
			Bold(true)
)

// moodIcons decorates moods in CLI output.
var moodIcons = map[model.Mood]string{
	model.MoodHappy:    "😊",
	model.MoodCalm:     "😌",
	model.MoodSad:      "😢",
	model.MoodAngry:    "😠",
	model.MoodAnxious:  "😰",
	model.MoodExcited:  "🤩",
	model.MoodGrateful: "🙏",
	model.MoodTired:    "😴",
}

// CLIFormatter provides CLI-specific formatting.
type CLIFormatter struct {
	*Formatter
}

// NewCLIFormatter creates a new CLI formatter.
func NewCLIFormatter(f *Formatter) *CLIFormatter {
	return &CLIFormatter{Formatter: f}
}

func (c *CLIFormatter) render(style lipgloss.Style, text string) string {
	if c.IsColorEnabled() {
		return style.Render(text)
	}
	return text
}

// Title prints a title.
func (c *CLIFormatter) Title(text string) {
	c.Println(c.render(styleTitle, text))
}

// Success prints a success message.
func (c *CLIFormatter) Success(text string) {
	c.Println(c.render(styleSuccess, "✓ "+text))
}

// Warning prints a warning message.
func (c *CLIFormatter) Warning(text string) {
	c.Println(c.render(styleWarning, "⚠ "+text))
}

// Error prints an error message.
func (c *CLIFormatter) Error(text string) {
	c.Println(c.render(styleError, "✗ "+text))
}

// Muted prints muted text.
func (c *CLIFormatter) Muted(text string) {
	c.Println(c.render(styleMuted, text))
}

// Mood formats a mood with its icon, or "" when unset.
func (c *CLIFormatter) Mood(m model.Mood) string {
	if m == "" {
		return ""
	}
	if c.Format == FormatPlain {
		return string(m)
	}
	return moodIcons[m] + " " + string(m)
}

// Tags formats tags as "#a #b".
func (c *CLIFormatter) Tags(tags []string) string {
	parts := make([]string, len(tags))
	for i, t := range tags {
		parts[i] = c.render(styleTag, "#"+t)
	}
	return strings.Join(parts, " ")
}

// Number formats an emphasized count.
func (c *CLIFormatter) Number(n int) string {
	return c.render(styleNumber, fmt.Sprint(n))
}

// entryHeadline renders the one-line summary of an entry.
func (c *CLIFormatter) entryHeadline(e *model.Entry) string {
	var b strings.Builder
	if e.Pinned {
		b.WriteString("📌 ")
	}
	b.WriteString(c.render(styleBold, e.Title))
	b.WriteString("  ")
	b.WriteString(c.render(styleMuted, FormatDate(e.Date)+" · "+FormatWords(e.WordCount)))
	if mood := c.Mood(e.Mood); mood != "" {
		b.WriteString("  " + mood)
	}
	if len(e.Tags) > 0 {
		b.WriteString("  " + c.Tags(e.Tags))
	}
	return b.String()
}

// PrintSaved prints a saved entry and any achievements the save unlocked.
func (c *CLIFormatter) PrintSaved(verb string, res *journal.Result) {
	c.Success(fmt.Sprintf("%s entry %s", verb, res.Entry.ID))
	c.Printf("  %s\n", c.entryHeadline(res.Entry))
	c.PrintUnlocks(res.Unlocked)
}

// PrintUnlocks announces newly unlocked achievements.
func (c *CLIFormatter) PrintUnlocks(unlocks []stats.Unlock) {
	for _, u := range unlocks {
		c.Printf("%s %s  %s\n", u.Icon, c.render(styleTitle, "Achievement unlocked: "+u.Name), c.render(styleMuted, u.Description))
	}
}

// PrintEntry prints one entry in full.
func (c *CLIFormatter) PrintEntry(e *model.Entry) {
	c.Println(c.entryHeadline(e))
	c.Muted(fmt.Sprintf("id %s · written %s · updated %s", e.ID, c.FormatTime(e.CreatedAt), FormatAgo(e.UpdatedAt, time.Now())))
	c.Println()
	c.Println(e.ContentText)
}

// PrintEntryList prints one page of entries.
func (c *CLIFormatter) PrintEntryList(page *journal.Page) {
	if len(page.Entries) == 0 {
		c.Muted("No entries found.")
		c.Muted("Use 'diary write' to start your journal.")
		return
	}
	for _, e := range page.Entries {
		c.Printf("%s  %s\n", c.render(styleMuted, e.ID), c.entryHeadline(e))
	}
	c.PrintPagination(page.Pagination)
}

// PrintPagination prints a page footer.
func (c *CLIFormatter) PrintPagination(p stats.Pagination) {
	if p.Pages <= 1 {
		return
	}
	c.Muted(fmt.Sprintf("page %d of %d · %s", p.Page, p.Pages, Plural(p.Total, "entry", "entries")))
}

// PrintOverview prints the headline numbers and goal progress.
func (c *CLIFormatter) PrintOverview(o *stats.Overview, p *stats.GoalProgress) {
	c.Title("Journal overview")
	c.Printf("  Entries:     %s\n", c.render(styleNumber, Plural(o.TotalEntries, "entry", "entries")))
	c.Printf("  Words:       %s\n", c.render(styleNumber, FormatWords(o.TotalWords)))
	c.Printf("  Streak:      %s\n", c.render(styleNumber, Plural(o.Streak, "day", "days")))
	c.Printf("  This month:  %s\n", c.render(styleNumber, Plural(o.ThisMonthCount, "entry", "entries")))
	if p != nil {
		c.Println()
		c.PrintGoalProgress(p)
	}
}

// PrintGoalProgress prints today's and this week's progress bars.
func (c *CLIFormatter) PrintGoalProgress(p *stats.GoalProgress) {
	c.Printf("  Today       %s %3d%%  %s / %s\n", ProgressBar(p.DailyPercent, 20), p.DailyPercent,
		FormatWords(p.DailyWords), FormatWords(p.DailyGoal))
	c.Printf("  This week   %s %3d%%  %d / %s\n", ProgressBar(p.WeeklyPercent, 20), p.WeeklyPercent,
		p.WeeklyEntries, Plural(p.WeeklyGoal, "entry", "entries"))
}

// PrintGoal prints the writing goal settings, its progress and the next reminder.
func (c *CLIFormatter) PrintGoal(g *model.WritingGoal, p *stats.GoalProgress, next time.Time) {
	c.Title("Writing goal")
	c.Printf("  Daily words:     %d\n", g.DailyWordGoal)
	c.Printf("  Weekly entries:  %d\n", g.WeeklyEntryGoal)
	if g.ReminderEnabled {
		c.Printf("  Reminder:        %s", g.ReminderTime)
		if g.ReminderEmail {
			c.Print(" (email)")
		}
		c.Println()
		if !next.IsZero() {
			c.Printf("  Next reminder:   %s\n", c.FormatTime(next))
		}
	} else {
		c.Printf("  Reminder:        %s\n", c.render(styleMuted, "off"))
	}
	if p != nil {
		c.Println()
		c.PrintGoalProgress(p)
	}
}

// PrintAchievements prints the catalog with unlock state.
func (c *CLIFormatter) PrintAchievements(list []stats.AchievementStatus) {
	unlocked := 0
	for _, a := range list {
		if a.Unlocked {
			unlocked++
		}
	}
	c.Title(fmt.Sprintf("Achievements (%d/%d)", unlocked, len(list)))

	var category model.AchievementCategory
	for _, a := range list {
		if a.Category != category {
			category = a.Category
			c.Println()
			c.Println(c.render(styleBold, strings.ToUpper(string(category))))
		}
		if a.Unlocked {
			c.Printf("  %s %-16s %s  %s\n", a.Icon, a.Name, a.Description,
				c.render(styleMuted, "unlocked "+c.FormatTime(*a.UnlockedAt)))
		} else {
			c.Println(c.render(styleMuted, fmt.Sprintf("  🔒 %-16s %s", a.Name, a.Description)))
		}
	}
}

// PrintMoods prints a bar chart of mood counts.
func (c *CLIFormatter) PrintMoods(counts []model.MoodCount) {
	if len(counts) == 0 {
		c.Muted("No moods recorded yet.")
		return
	}
	most := 0
	for _, m := range counts {
		most = max(most, m.Count)
	}
	c.Title("Moods")
	for _, m := range counts {
		c.Printf("  %-12s %s %d\n", c.Mood(m.Mood), ProgressBar(m.Count*100/most, 20), m.Count)
	}
}

// PrintTopTags prints the most used tags.
func (c *CLIFormatter) PrintTopTags(tags []model.TagCount) {
	if len(tags) == 0 {
		c.Muted("No tags used yet.")
		return
	}
	rows := make([]TableRow, len(tags))
	for i, t := range tags {
		rows[i] = TableRow{Columns: []string{"#" + t.Name, Plural(t.Count, "entry", "entries")}}
	}
	c.PrintTable([]string{"TAG", "USED IN"}, rows)
}

// PrintActivity prints the active days of a year.
func (c *CLIFormatter) PrintActivity(days []model.DayActivity) {
	if len(days) == 0 {
		c.Muted("No entries in this year.")
		return
	}
	rows := make([]TableRow, len(days))
	for i, d := range days {
		rows[i] = TableRow{Columns: []string{d.Date.String(), fmt.Sprint(d.Count), humanize.Comma(int64(d.Words))}}
	}
	c.PrintTable([]string{"DATE", "ENTRIES", "WORDS"}, rows)
}

// PrintMemories prints on-this-day entries.
func (c *CLIFormatter) PrintMemories(memories []stats.Memory) {
	if len(memories) == 0 {
		c.Muted("Nothing written on this day in other years.")
		return
	}
	c.Title("On this day")
	for _, m := range memories {
		label := Plural(m.YearsAgo, "year ago", "years ago")
		if m.YearsAgo < 0 {
			label = Plural(-m.YearsAgo, "year ahead", "years ahead")
		}
		c.Printf("  %s  %s\n", c.render(styleMuted, fmt.Sprintf("%-13s", label)), c.entryHeadline(m.Entry))
		if excerpt := Excerpt(m.Entry.ContentText, 100); excerpt != "" {
			c.Printf("                 %s\n", excerpt)
		}
	}
}

// PrintTimeline prints entries grouped by month.
func (c *CLIFormatter) PrintTimeline(tl *stats.Timeline) {
	if len(tl.Groups) == 0 {
		c.Muted("No entries found.")
		return
	}
	for i, g := range tl.Groups {
		if i > 0 {
			c.Println()
		}
		c.Title(monthLabel(g.Month))
		for _, e := range g.Entries {
			c.Printf("  %s\n", c.entryHeadline(e))
		}
	}
	c.Println()
	years := make([]string, len(tl.Years))
	for i, y := range tl.Years {
		years[i] = fmt.Sprint(y)
	}
	c.Muted("Years: " + strings.Join(years, " "))
	c.PrintPagination(tl.Pagination)
}

// monthLabel turns "2025-03" into "March 2025".
func monthLabel(ym string) string {
	t, err := time.Parse("2006-01", ym)
	if err != nil {
		return ym
	}
	return t.Format("January 2006")
}

// Excerpt shortens text to at most n runes, ending with an ellipsis when cut.
func Excerpt(text string, n int) string {
	if utf8.RuneCountInString(text) <= n {
		return text
	}
	runes := []rune(text)
	return strings.TrimSpace(string(runes[:n-1])) + "…"
}

// ProgressBar creates a simple progress bar. Percentages above 100 render full.
func ProgressBar(percentage int, width int) string {
	percentage = min(max(percentage, 0), 100)
	filled := width * percentage / 100
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// TableRow is one row of a CLI table.
type TableRow struct {
	Columns []string
}

// PrintTable prints a simple table.
func (c *CLIFormatter) PrintTable(headers []string, rows []TableRow) {
	if len(rows) == 0 {
		return
	}

	// Calculate column widths
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, col := range row.Columns {
			if i < len(widths) {
				widths[i] = max(widths[i], lipgloss.Width(col))
			}
		}
	}

	var headerLine strings.Builder
	for i, h := range headers {
		headerLine.WriteString(pad(h, widths[i]))
	}
	c.Println(c.render(styleBold, strings.TrimRight(headerLine.String(), " ")))

	var sep strings.Builder
	for _, w := range widths {
		sep.WriteString(strings.Repeat("─", w) + "  ")
	}
	c.Println(strings.TrimRight(sep.String(), " "))

	for _, row := range rows {
		var line strings.Builder
		for i, col := range row.Columns {
			if i < len(widths) {
				line.WriteString(pad(col, widths[i]))
			}
		}
		c.Println(strings.TrimRight(line.String(), " "))
	}
}

func pad(s string, width int) string {
	return s + strings.Repeat(" ", width-lipgloss.Width(s)+2)
}
