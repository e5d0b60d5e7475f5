package storage

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nova728/diary/internal/errors"
	"github.com/nova728/diary/internal/model"
)

// Helper to create an in-memory database for testing
func setupTestDB(t *testing.T) *DB {
	db, err := Open(Options{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

var baseTime = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

// addEntry stores an entry for user on date with the given word count.
func addEntry(t *testing.T, repo *EntryRepo, user, date string, words int, opts ...func(*model.Entry)) *model.Entry {
	t.Helper()
	e := &model.Entry{
		UserID:    user,
		Title:     "entry " + date,
		Date:      model.MustParseDate(date),
		WordCount: words,
		CreatedAt: baseTime.Add(time.Duration(words) * time.Second),
	}
	for _, opt := range opts {
		opt(e)
	}
	require.NoError(t, repo.Create(e))
	return e
}

func withMood(m model.Mood) func(*model.Entry) {
	return func(e *model.Entry) { e.Mood = m }
}

func withTags(tags ...string) func(*model.Entry) {
	return func(e *model.Entry) { e.Tags = tags }
}

// =============================================================================
// DB Tests
// =============================================================================

func TestOpenClose(t *testing.T) {
	t.Run("in_memory", func(t *testing.T) {
		db, err := Open(Options{InMemory: true})
		require.NoError(t, err)
		assert.NotNil(t, db.Badger())
		assert.Equal(t, "", db.Path())
		assert.NoError(t, db.Close())
	})

	t.Run("empty_path_uses_in_memory", func(t *testing.T) {
		db, err := Open(Options{Path: ""})
		require.NoError(t, err)
		assert.Equal(t, "", db.Path())
		db.Close()
	})

	t.Run("on_disk", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "db")
		db, err := Open(Options{Path: dir})
		require.NoError(t, err)
		assert.Equal(t, dir, db.Path())
		assert.NoError(t, db.Close())
	})
}

// =============================================================================
// CRUD Tests
// =============================================================================

func TestInsertRejectsDuplicates(t *testing.T) {
	db := setupTestDB(t)

	rec := model.NewAchievementRecord("u1", model.KeyFirstEntry, baseTime)
	require.NoError(t, db.Insert(rec))

	err := db.Insert(model.NewAchievementRecord("u1", model.KeyFirstEntry, baseTime.Add(time.Hour)))
	assert.True(t, errors.IsConflict(err))

	var stored model.AchievementRecord
	require.NoError(t, db.Get(rec.Key, &stored))
	assert.True(t, stored.UnlockedAt.Equal(baseTime), "first insert must win")
}

func TestGetMissingKey(t *testing.T) {
	db := setupTestDB(t)
	err := db.Get("entry:nobody:x", &model.Entry{})
	assert.True(t, IsErrKeyNotFound(err))

	exists, err := db.Exists("entry:nobody:x")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGetFilteredByPrefixStaysInPrefix(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEntryRepo(db)
	addEntry(t, repo, "ann", "2024-01-01", 5)
	addEntry(t, repo, "ann", "2024-01-02", 7)
	addEntry(t, repo, "anna", "2024-01-03", 9)

	entries, err := GetAllByPrefix(db, model.UserPrefix(model.PrefixEntry, "ann"), func() *model.Entry {
		return &model.Entry{}
	})
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	big, err := GetFilteredByPrefix(db, model.UserPrefix(model.PrefixEntry, "ann"), func() *model.Entry {
		return &model.Entry{}
	}, func(e *model.Entry) bool { return e.WordCount > 5 })
	require.NoError(t, err)
	require.Len(t, big, 1)
	assert.Equal(t, 7, big[0].WordCount)
	assert.NotEmpty(t, big[0].Key)
}

// =============================================================================
// EntryRepo Tests
// =============================================================================

func TestEntryRepoCRUD(t *testing.T) {
	repo := NewEntryRepo(setupTestDB(t))

	e := addEntry(t, repo, "u1", "2024-02-10", 12)
	require.NotEmpty(t, e.ID)
	assert.Equal(t, model.GenerateEntryKey("u1", e.ID), e.Key)

	got, err := repo.Get("u1", e.ID)
	require.NoError(t, err)
	assert.Equal(t, "2024-02-10", got.Date.String())

	_, err = repo.Get("u2", e.ID)
	assert.ErrorIs(t, err, errors.ErrEntryNotFound)

	got.Title = "renamed"
	require.NoError(t, repo.Update(got))
	got, err = repo.Get("u1", e.ID)
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Title)

	require.NoError(t, repo.Delete("u1", e.ID))
	assert.ErrorIs(t, repo.Delete("u1", e.ID), errors.ErrEntryNotFound)
}

func TestEntryRepoAggregates(t *testing.T) {
	repo := NewEntryRepo(setupTestDB(t))
	addEntry(t, repo, "u1", "2023-12-31", 10, withMood(model.MoodSad))
	addEntry(t, repo, "u1", "2024-01-05", 20, withMood(model.MoodHappy), withTags("Work"))
	addEntry(t, repo, "u1", "2024-01-05", 30, withMood(model.MoodHappy), withTags("work", "travel"))
	addEntry(t, repo, "u1", "2024-03-01", 40)
	addEntry(t, repo, "u2", "2024-01-05", 99, withMood(model.MoodTired))

	t.Run("count", func(t *testing.T) {
		n, err := repo.Count("u1", EntryFilter{})
		require.NoError(t, err)
		assert.Equal(t, 4, n)

		n, err = repo.Count("u1", EntryFilter{From: model.MustParseDate("2024-01-01")})
		require.NoError(t, err)
		assert.Equal(t, 3, n)

		n, err = repo.Count("u1", EntryFilter{Mood: model.MoodHappy})
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		n, err = repo.Count("nobody", EntryFilter{})
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("sum_words", func(t *testing.T) {
		n, err := repo.SumWords("u1", EntryFilter{})
		require.NoError(t, err)
		assert.Equal(t, 100, n)

		n, err = repo.SumWords("u1", EntryFilter{Until: model.MustParseDate("2024-01-05")})
		require.NoError(t, err)
		assert.Equal(t, 60, n)

		n, err = repo.SumWords("nobody", EntryFilter{})
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("distinct", func(t *testing.T) {
		moods, err := repo.DistinctMoods("u1", EntryFilter{})
		require.NoError(t, err)
		assert.Equal(t, 2, moods)

		tags, err := repo.DistinctTags("u1", EntryFilter{})
		require.NoError(t, err)
		assert.Equal(t, 2, tags)
	})

	t.Run("dates", func(t *testing.T) {
		dates, err := repo.Dates("u1")
		require.NoError(t, err)
		var got []string
		for _, d := range dates {
			got = append(got, d.String())
		}
		assert.Equal(t, []string{"2023-12-31", "2024-01-05", "2024-03-01"}, got)
	})

	t.Run("daily_activity", func(t *testing.T) {
		days, err := repo.DailyActivity("u1", 2024)
		require.NoError(t, err)
		require.Len(t, days, 2)
		assert.Equal(t, "2024-01-05", days[0].Date.String())
		assert.Equal(t, 2, days[0].Count)
		assert.Equal(t, 50, days[0].Words)
		assert.Equal(t, "2024-03-01", days[1].Date.String())
	})

	t.Run("years", func(t *testing.T) {
		years, err := repo.Years("u1")
		require.NoError(t, err)
		assert.Equal(t, []int{2024, 2023}, years)
	})

	t.Run("mood_counts", func(t *testing.T) {
		counts, err := repo.MoodCounts("u1", EntryFilter{})
		require.NoError(t, err)
		assert.Equal(t, map[model.Mood]int{model.MoodHappy: 2, model.MoodSad: 1}, counts)
	})

	t.Run("tag_usage", func(t *testing.T) {
		usage, err := repo.TagUsage("u1", 0)
		require.NoError(t, err)
		require.Len(t, usage, 2)
		assert.Equal(t, 2, usage[0].Count)
		assert.Equal(t, "travel", usage[1].Name)

		usage, err = repo.TagUsage("u1", 1)
		require.NoError(t, err)
		assert.Len(t, usage, 1)
	})
}

func TestEntryRepoRandom(t *testing.T) {
	repo := NewEntryRepo(setupTestDB(t))

	none, err := repo.Random("u1")
	require.NoError(t, err)
	assert.Nil(t, none)

	a := addEntry(t, repo, "u1", "2024-01-01", 1)
	b := addEntry(t, repo, "u1", "2024-01-02", 2)
	for range 20 {
		got, err := repo.Random("u1")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Contains(t, []string{a.ID, b.ID}, got.ID)
	}
}

func TestEntryRepoByMonthDay(t *testing.T) {
	repo := NewEntryRepo(setupTestDB(t))
	addEntry(t, repo, "u1", "2022-03-14", 1)
	addEntry(t, repo, "u1", "2024-03-14", 2)
	addEntry(t, repo, "u1", "2024-03-15", 3)

	entries, err := repo.ByMonthDay("u1", time.March, 14)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestEntryRepoYearPage(t *testing.T) {
	repo := NewEntryRepo(setupTestDB(t))
	addEntry(t, repo, "u1", "2023-06-01", 1)
	addEntry(t, repo, "u1", "2024-01-05", 2, func(e *model.Entry) { e.Pinned = true })
	addEntry(t, repo, "u1", "2024-01-20", 3)
	addEntry(t, repo, "u1", "2024-02-01", 4)

	page, total, err := repo.YearPage("u1", 2024, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, page, 2)
	assert.Equal(t, "2024-02-01", page[0].Date.String())
	assert.Equal(t, "2024-01-20", page[1].Date.String(), "pinned entries do not jump the timeline")

	page, total, err = repo.YearPage("u1", 0, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 4, total)
	require.Len(t, page, 2)
	assert.Equal(t, "2023-06-01", page[1].Date.String())

	page, _, err = repo.YearPage("u1", 2024, 10, 2)
	require.NoError(t, err)
	assert.Empty(t, page)
}

func TestEntryRepoQuery(t *testing.T) {
	repo := NewEntryRepo(setupTestDB(t))
	addEntry(t, repo, "u1", "2024-01-01", 50, func(e *model.Entry) {
		e.Title = "Morning walk"
		e.ContentText = "Cold air by the river"
	})
	addEntry(t, repo, "u1", "2024-01-02", 10, withTags("Work"), func(e *model.Entry) { e.Pinned = true })
	addEntry(t, repo, "u1", "2024-01-03", 30, withMood(model.MoodCalm))

	t.Run("pinned_first_then_date_desc", func(t *testing.T) {
		entries, total, err := repo.Query("u1", EntryQuery{PinnedFirst: true})
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		assert.Equal(t, "2024-01-02", entries[0].Date.String())
		assert.Equal(t, "2024-01-03", entries[1].Date.String())
	})

	t.Run("word_count_asc", func(t *testing.T) {
		entries, _, err := repo.Query("u1", EntryQuery{SortBy: SortByWordCount, Asc: true})
		require.NoError(t, err)
		assert.Equal(t, []int{10, 30, 50}, []int{entries[0].WordCount, entries[1].WordCount, entries[2].WordCount})
	})

	t.Run("search_is_case_insensitive", func(t *testing.T) {
		entries, total, err := repo.Query("u1", EntryQuery{Search: "RIVER"})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		assert.Equal(t, "Morning walk", entries[0].Title)
	})

	t.Run("tag_mood_pinned", func(t *testing.T) {
		_, total, err := repo.Query("u1", EntryQuery{Tag: "work"})
		require.NoError(t, err)
		assert.Equal(t, 1, total)

		_, total, err = repo.Query("u1", EntryQuery{EntryFilter: EntryFilter{Mood: model.MoodCalm}})
		require.NoError(t, err)
		assert.Equal(t, 1, total)

		unpinned := false
		_, total, err = repo.Query("u1", EntryQuery{Pinned: &unpinned})
		require.NoError(t, err)
		assert.Equal(t, 2, total)
	})

	t.Run("pagination", func(t *testing.T) {
		entries, total, err := repo.Query("u1", EntryQuery{Offset: 2, Limit: 2})
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		assert.Len(t, entries, 1)
	})
}

func TestValidSortField(t *testing.T) {
	assert.True(t, ValidSortField(""))
	assert.True(t, ValidSortField(SortByWordCount))
	assert.False(t, ValidSortField("title"))
}

// =============================================================================
// TagRepo Tests
// =============================================================================

func TestTagRepoFindOrCreate(t *testing.T) {
	repo := NewTagRepo(setupTestDB(t))

	tag, created, err := repo.FindOrCreate("u1", "  Travel ", baseTime)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "Travel", tag.Name)

	again, created, err := repo.FindOrCreate("u1", "travel", baseTime)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, tag.ID, again.ID)
	assert.Equal(t, "Travel", again.Name)

	_, _, err = repo.FindOrCreate("u2", "travel", baseTime)
	require.NoError(t, err)

	n, err := repo.Count("u1")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	tags, err := repo.List("u2")
	require.NoError(t, err)
	assert.Len(t, tags, 1)
}

// =============================================================================
// AchievementRepo Tests
// =============================================================================

func TestAchievementRepoInsertIsUnique(t *testing.T) {
	repo := NewAchievementRepo(setupTestDB(t))

	require.NoError(t, repo.Insert(&model.AchievementRecord{UserID: "u1", AchievementKey: "streak_7", UnlockedAt: baseTime}))
	err := repo.Insert(&model.AchievementRecord{UserID: "u1", AchievementKey: "streak_7", UnlockedAt: baseTime})
	assert.True(t, errors.IsConflict(err))

	require.NoError(t, repo.Insert(&model.AchievementRecord{UserID: "u2", AchievementKey: "streak_7", UnlockedAt: baseTime}))

	records, err := repo.List("u1")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "streak_7", records[0].AchievementKey)
}

func TestAchievementRepoConcurrentInsert(t *testing.T) {
	repo := NewAchievementRepo(setupTestDB(t))

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		ok, dupes int
	)
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := repo.Insert(&model.AchievementRecord{UserID: "u1", AchievementKey: "first_entry", UnlockedAt: baseTime})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.IsConflict(err):
				dupes++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, ok)
	assert.Equal(t, 7, dupes)
}

// =============================================================================
// GoalRepo Tests
// =============================================================================

func TestGoalRepo(t *testing.T) {
	repo := NewGoalRepo(setupTestDB(t))

	_, err := repo.Get("u1")
	assert.ErrorIs(t, err, errors.ErrGoalNotFound)

	goal, created, err := repo.GetOrCreate("u1", baseTime)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, model.DefaultDailyWordGoal, goal.DailyWordGoal)

	goal.DailyWordGoal = 500
	require.NoError(t, repo.Update(goal))

	goal, created, err = repo.GetOrCreate("u1", baseTime)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, 500, goal.DailyWordGoal)

	stored, err := repo.Get("u1")
	require.NoError(t, err)
	assert.Equal(t, 500, stored.DailyWordGoal)
}
