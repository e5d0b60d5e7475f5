package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Date Tests
// =============================================================================

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, 2024, d.Year())
	assert.Equal(t, time.February, d.Month())
	assert.Equal(t, 29, d.Day())
	assert.Equal(t, "2024-02-29", d.String())

	_, err = ParseDate("2023-02-29")
	assert.Error(t, err)
	_, err = ParseDate("29/02/2024")
	assert.Error(t, err)
}

func TestDateOfUsesLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*3600)
	// 20:00 UTC on the 14th is already the 15th in Tokyo.
	instant := time.Date(2025, 3, 14, 20, 0, 0, 0, time.UTC)

	assert.Equal(t, "2025-03-14", DateOf(instant).String())
	assert.Equal(t, "2025-03-15", DateOf(instant.In(tokyo)).String())
}

func TestDateAddDaysCrossesBoundaries(t *testing.T) {
	assert.Equal(t, "2024-03-01", MustParseDate("2024-02-29").AddDays(1).String())
	assert.Equal(t, "2023-12-31", MustParseDate("2024-01-01").AddDays(-1).String())
}

func TestDateISOWeekday(t *testing.T) {
	assert.Equal(t, 1, MustParseDate("2025-03-10").ISOWeekday()) // Monday
	assert.Equal(t, 7, MustParseDate("2025-03-16").ISOWeekday()) // Sunday
}

func TestDateJSON(t *testing.T) {
	type wrapper struct {
		Date Date `json:"date"`
	}

	data, err := json.Marshal(wrapper{Date: MustParseDate("2024-01-20")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2024-01-20"}`, string(data))

	var w wrapper
	require.NoError(t, json.Unmarshal([]byte(`{"date":"2022-03-14"}`), &w))
	assert.Equal(t, "2022-03-14", w.Date.String())

	assert.Error(t, json.Unmarshal([]byte(`{"date":"2022-13-01"}`), &w))
}

func TestDaysInYear(t *testing.T) {
	assert.Equal(t, 366, DaysInYear(2024))
	assert.Equal(t, 365, DaysInYear(2025))
	assert.Equal(t, 365, DaysInYear(1900))
	assert.Equal(t, 366, DaysInYear(2000))
}

// =============================================================================
// Entry Tests
// =============================================================================

func TestMoodValid(t *testing.T) {
	for _, m := range Moods {
		assert.True(t, m.Valid(), string(m))
	}
	assert.False(t, Mood("bored").Valid())
	assert.False(t, Mood("").Valid())
	assert.Len(t, Moods, 8)
}

func TestEntryHasTag(t *testing.T) {
	e := &Entry{Tags: []string{"Travel", "family"}}
	assert.True(t, e.HasTag("travel"))
	assert.True(t, e.HasTag("FAMILY"))
	assert.False(t, e.HasTag("work"))
	assert.False(t, e.HasTag(""))
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "entry:u1:abc", GenerateEntryKey("u1", "abc"))
	assert.Equal(t, "tag:u1:travel", GenerateTagKey("u1", "  Travel "))
	assert.Equal(t, "achievement:u1:streak_7", GenerateAchievementKey("u1", "streak_7"))
	assert.Equal(t, "goal:u1", GenerateGoalKey("u1"))
	assert.Equal(t, "entry:u1:", UserPrefix(PrefixEntry, "u1"))
}

// =============================================================================
// Achievement Catalog Tests
// =============================================================================

func TestCatalogOrder(t *testing.T) {
	order := map[AchievementCategory]int{
		CategoryStreak: 0, CategoryEntries: 1, CategoryWords: 2, CategorySpecial: 3,
	}

	defs := Catalog()
	require.Len(t, defs, 14)

	seen := map[string]bool{}
	for i, def := range defs {
		assert.False(t, seen[def.Key], "duplicate key %s", def.Key)
		seen[def.Key] = true

		if i == 0 {
			continue
		}
		prev := defs[i-1]
		assert.LessOrEqual(t, order[prev.Category], order[def.Category])
		if prev.Category == def.Category && def.Category != CategorySpecial {
			assert.Less(t, prev.Threshold, def.Threshold)
		}
	}
}

func TestCatalogReturnsCopy(t *testing.T) {
	defs := Catalog()
	defs[0].Threshold = 9999

	def, ok := LookupAchievement(defs[0].Key)
	require.True(t, ok)
	assert.Equal(t, 7, def.Threshold)

	_, ok = LookupAchievement("nope")
	assert.False(t, ok)
}

// =============================================================================
// Writing Goal Tests
// =============================================================================

func TestNewWritingGoalDefaults(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	g := NewWritingGoal("u1", now)

	assert.Equal(t, "goal:u1", g.Key)
	assert.Equal(t, 300, g.DailyWordGoal)
	assert.Equal(t, 3, g.WeeklyEntryGoal)
	assert.False(t, g.ReminderEnabled)
	assert.Equal(t, "21:00", g.ReminderTime)
	assert.False(t, g.ReminderEmail)
}

func TestWritingGoalApply(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	g := NewWritingGoal("u1", now)

	words := 500
	enabled := true
	g.Apply(GoalUpdate{DailyWordGoal: &words, ReminderEnabled: &enabled}, now.Add(time.Hour))

	assert.Equal(t, 500, g.DailyWordGoal)
	assert.Equal(t, 3, g.WeeklyEntryGoal)
	assert.True(t, g.ReminderEnabled)
	assert.Equal(t, now.Add(time.Hour), g.UpdatedAt)

	assert.True(t, GoalUpdate{}.IsEmpty())
	assert.False(t, GoalUpdate{DailyWordGoal: &words}.IsEmpty())
}

func TestPercent(t *testing.T) {
	tests := []struct {
		name   string
		actual int
		goal   int
		want   int
	}{
		{"exactly met", 300, 300, 100},
		{"capped", 301, 300, 100},
		{"far over", 900, 300, 100},
		{"half", 150, 300, 50},
		{"rounds half up", 1, 8, 13},
		{"rounds down", 1, 3, 33},
		{"nothing", 0, 300, 0},
		{"zero goal", 0, 0, 100},
		{"negative goal", 5, -1, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Percent(tt.actual, tt.goal))
		})
	}
}
