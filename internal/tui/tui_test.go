package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nova728/diary/internal/model"
	"github.com/nova728/diary/internal/stats"
)

// fakeEngine serves canned dashboard data.
type fakeEngine struct {
	today      model.Date
	heatmapErr error
}

func (f *fakeEngine) Today() model.Date { return f.today }

func (f *fakeEngine) Overview(ctx context.Context, userID string) (*stats.Overview, error) {
	return &stats.Overview{TotalEntries: 42, TotalWords: 12345, Streak: 7, ThisMonthCount: 5}, nil
}

func (f *fakeEngine) GoalProgress(ctx context.Context, userID string) (*stats.GoalProgress, error) {
	return &stats.GoalProgress{DailyWords: 150, DailyGoal: 300, DailyPercent: 50, WeeklyEntries: 3, WeeklyGoal: 3, WeeklyPercent: 100}, nil
}

func (f *fakeEngine) Heatmap(ctx context.Context, userID string, year int) (*stats.Heatmap, error) {
	if f.heatmapErr != nil {
		return nil, f.heatmapErr
	}
	return stats.BuildHeatmap(year, []model.DayActivity{
		{Date: model.NewDate(year, time.March, 1), Count: 2, Words: 400},
	}), nil
}

func (f *fakeEngine) OnThisDay(ctx context.Context, userID string) ([]stats.Memory, error) {
	return []stats.Memory{
		{Entry: &model.Entry{Title: "Old friends", ContentText: "Dinner by the river"}, YearsAgo: 1},
		{Entry: &model.Entry{Title: "Snow"}, YearsAgo: 3},
	}, nil
}

func newTestModel(engine *fakeEngine) *DashboardModel {
	return NewDashboardModel(DashboardConfig{Engine: engine, UserID: "u1", MaxMemories: 1})
}

// run executes cmd and feeds its message back into the model.
func run(t *testing.T, m *DashboardModel, cmd tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	m.Update(cmd())
}

// =============================================================================
// ProgressBar Tests
// =============================================================================

func TestProgressBar(t *testing.T) {
	for _, pct := range []int{-10, 0, 50, 100, 150} {
		bar := ProgressBar(pct, 10)
		assert.Equal(t, 10, strings.Count(bar, "█")+strings.Count(bar, "░"), pct)
	}
	assert.Equal(t, 5, strings.Count(ProgressBar(50, 10), "█"))
	assert.Equal(t, 10, strings.Count(ProgressBar(150, 10), "█"))
}

// =============================================================================
// Component Tests
// =============================================================================

func TestOverviewView(t *testing.T) {
	assert.Empty(t, OverviewView(nil, 80))

	view := OverviewView(&stats.Overview{TotalEntries: 42, TotalWords: 12345, Streak: 7}, 80)
	assert.Contains(t, view, "42")
	assert.Contains(t, view, "12,345")
	assert.Contains(t, view, "day streak")
}

func TestGoalView(t *testing.T) {
	assert.Empty(t, GoalView(nil, 80))

	view := GoalView(&stats.GoalProgress{DailyWords: 100, DailyGoal: 300, DailyPercent: 33, WeeklyGoal: 3}, 80)
	assert.Contains(t, view, "100 / 300 words")
	assert.Contains(t, view, "0 / 3 entries")
	assert.NotContains(t, view, "Goals met")

	done := GoalView(&stats.GoalProgress{DailyPercent: 100, WeeklyPercent: 100}, 80)
	assert.Contains(t, done, "Goals met")
}

func TestHeatmapView(t *testing.T) {
	assert.Empty(t, HeatmapView(nil, 80))

	view := HeatmapView(stats.BuildHeatmap(2024, []model.DayActivity{
		{Date: model.MustParseDate("2024-05-05"), Count: 1, Words: 250},
	}), 120)
	assert.Contains(t, view, "Activity 2024")
	assert.Contains(t, view, "1 active day")
	assert.Contains(t, view, "250 words")
}

func TestMemoriesView(t *testing.T) {
	empty := MemoriesView(nil, 80, 3)
	assert.Contains(t, empty, "Nothing written on this day")

	view := MemoriesView([]stats.Memory{
		{Entry: &model.Entry{Title: "Old friends", ContentText: "Dinner"}, YearsAgo: 1},
		{Entry: &model.Entry{Title: "Snow"}, YearsAgo: 3},
		{Entry: &model.Entry{Title: "Later"}, YearsAgo: -1},
	}, 80, 2)
	assert.Contains(t, view, "Old friends")
	assert.Contains(t, view, "1 year ago")
	assert.Contains(t, view, "Snow")
	assert.NotContains(t, view, "Later")
	assert.Contains(t, view, "and 1 more")
}

func TestHelpBar(t *testing.T) {
	help := HelpBar()
	assert.Contains(t, help, "refresh")
	assert.Contains(t, help, "quit")
	assert.Contains(t, help, "year")
}

// =============================================================================
// Dashboard Tests
// =============================================================================

func TestLoad(t *testing.T) {
	engine := &fakeEngine{today: model.MustParseDate("2025-03-14")}
	snap, err := Load(context.Background(), engine, "u1", 2024)
	require.NoError(t, err)

	assert.Equal(t, 42, snap.Overview.TotalEntries)
	assert.Equal(t, 50, snap.Goal.DailyPercent)
	assert.Equal(t, 2024, snap.Heatmap.Year)
	assert.Len(t, snap.Memories, 2)
}

func TestLoadFailsAsAWhole(t *testing.T) {
	engine := &fakeEngine{today: model.MustParseDate("2025-03-14"), heatmapErr: errors.New("store down")}
	snap, err := Load(context.Background(), engine, "u1", 2025)
	assert.Error(t, err)
	assert.Nil(t, snap)
}

func TestDashboardView(t *testing.T) {
	engine := &fakeEngine{today: model.MustParseDate("2025-03-14")}
	m := newTestModel(engine)
	assert.Equal(t, "Loading...", m.View())

	m.Update(tea.WindowSizeMsg{Width: 120, Height: 50})
	run(t, m, m.loadCmd())

	view := m.View()
	assert.Contains(t, view, "Friday, March 14 2025")
	assert.Contains(t, view, "Overview")
	assert.Contains(t, view, "Activity 2025")
	assert.Contains(t, view, "Old friends")
	assert.Contains(t, view, "and 1 more")
}

func TestDashboardError(t *testing.T) {
	engine := &fakeEngine{today: model.MustParseDate("2025-03-14"), heatmapErr: errors.New("store down")}
	m := newTestModel(engine)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	run(t, m, m.loadCmd())

	assert.Contains(t, m.View(), "Error: store down")
}

func TestDashboardYearNavigation(t *testing.T) {
	engine := &fakeEngine{today: model.MustParseDate("2025-03-14")}
	m := newTestModel(engine)
	assert.Equal(t, 2025, m.year)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 2024, m.year)
	run(t, m, cmd)
	assert.Equal(t, 2024, m.data.Heatmap.Year)

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 2025, m.year)
	run(t, m, cmd)

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Nil(t, cmd)
	assert.Equal(t, 2025, m.year, "cannot move past the current year")
	assert.NotEmpty(t, m.message)
}

func TestDashboardQuit(t *testing.T) {
	m := newTestModel(&fakeEngine{today: model.MustParseDate("2025-03-14")})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestDashboardTickClearsMessage(t *testing.T) {
	m := newTestModel(&fakeEngine{today: model.MustParseDate("2025-03-14")})
	m.setMessage("hello", time.Millisecond)

	m.Update(tickMsg(time.Now().Add(time.Second)))
	assert.Empty(t, m.message)
}
