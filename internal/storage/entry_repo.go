package storage

import (
	"cmp"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nova728/diary/internal/errors"
	"github.com/nova728/diary/internal/model"
)

// EntryFilter narrows an aggregate to a date range and mood. Zero values mean no bound.
type EntryFilter struct {
	From  model.Date // inclusive
	Until model.Date // inclusive
	Mood  model.Mood
}

// Match reports whether e passes the filter.
func (f EntryFilter) Match(e *model.Entry) bool {
	if !f.From.IsZero() && e.Date.Before(f.From) {
		return false
	}
	if !f.Until.IsZero() && e.Date.After(f.Until) {
		return false
	}
	if f.Mood != "" && e.Mood != f.Mood {
		return false
	}
	return true
}

// Sort fields accepted by EntryQuery.
const (
	SortByDate      = "date"
	SortByCreatedAt = "createdAt"
	SortByWordCount = "wordCount"
)

// EntryQuery is a filtered, sorted and paginated entry listing.
type EntryQuery struct {
	EntryFilter
	Search string // case-insensitive match on title and plain text
	Tag    string // case-insensitive tag name
	Pinned *bool

	PinnedFirst bool
	SortBy      string // date (default), createdAt or wordCount
	Asc         bool
	Offset      int
	Limit       int // 0 means no limit
}

// EntryRepo provides operations for Entry entities.
type EntryRepo struct {
	db *DB
}

// NewEntryRepo creates a new entry repository.
func NewEntryRepo(db *DB) *EntryRepo {
	return &EntryRepo{db: db}
}

// Create stores a new entry, assigning a time-ordered ID when none is set.
func (r *EntryRepo) Create(entry *model.Entry) error {
	if entry.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("generate entry id: %w", err)
		}
		entry.ID = id.String()
	}
	entry.Key = model.GenerateEntryKey(entry.UserID, entry.ID)
	return r.db.Insert(entry)
}

// Get retrieves one entry of a user. It returns errors.ErrEntryNotFound when absent.
func (r *EntryRepo) Get(userID, id string) (*model.Entry, error) {
	entry := &model.Entry{}
	if err := r.db.Get(model.GenerateEntryKey(userID, id), entry); err != nil {
		if IsErrKeyNotFound(err) {
			return nil, fmt.Errorf("%w: %s", errors.ErrEntryNotFound, id)
		}
		return nil, err
	}
	return entry, nil
}

// Update overwrites an existing entry.
func (r *EntryRepo) Update(entry *model.Entry) error {
	entry.Key = model.GenerateEntryKey(entry.UserID, entry.ID)
	return r.db.Set(entry)
}

// Delete removes one entry of a user. It returns errors.ErrEntryNotFound when absent.
func (r *EntryRepo) Delete(userID, id string) error {
	key := model.GenerateEntryKey(userID, id)
	exists, err := r.db.Exists(key)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: %s", errors.ErrEntryNotFound, id)
	}
	return r.db.Delete(key)
}

// find loads the entries of a user that pass keep in a single read transaction.
func (r *EntryRepo) find(userID string, keep func(*model.Entry) bool) ([]*model.Entry, error) {
	return GetFilteredByPrefix(r.db, model.UserPrefix(model.PrefixEntry, userID), func() *model.Entry {
		return &model.Entry{}
	}, keep)
}

// Find returns the entries of a user passing the filter, in key order.
func (r *EntryRepo) Find(userID string, filter EntryFilter) ([]*model.Entry, error) {
	return r.find(userID, filter.Match)
}

// Count returns the number of entries passing the filter.
func (r *EntryRepo) Count(userID string, filter EntryFilter) (int, error) {
	if filter == (EntryFilter{}) {
		return r.db.CountByPrefix(model.UserPrefix(model.PrefixEntry, userID))
	}
	entries, err := r.Find(userID, filter)
	return len(entries), err
}

// SumWords returns the total word count of the entries passing the filter.
// No entries sum to zero.
func (r *EntryRepo) SumWords(userID string, filter EntryFilter) (int, error) {
	entries, err := r.Find(userID, filter)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, e := range entries {
		total += e.WordCount
	}
	return total, nil
}

// DistinctMoods returns how many different moods the filtered entries carry.
func (r *EntryRepo) DistinctMoods(userID string, filter EntryFilter) (int, error) {
	counts, err := r.MoodCounts(userID, filter)
	return len(counts), err
}

// DistinctTags returns how many different tags the filtered entries use.
func (r *EntryRepo) DistinctTags(userID string, filter EntryFilter) (int, error) {
	entries, err := r.Find(userID, filter)
	if err != nil {
		return 0, err
	}
	seen := make(map[string]struct{})
	for _, e := range entries {
		for _, t := range e.Tags {
			seen[strings.ToLower(t)] = struct{}{}
		}
	}
	return len(seen), nil
}

// MoodCounts returns the number of entries per mood. Entries without a mood are skipped.
func (r *EntryRepo) MoodCounts(userID string, filter EntryFilter) (map[model.Mood]int, error) {
	entries, err := r.Find(userID, filter)
	if err != nil {
		return nil, err
	}
	counts := make(map[model.Mood]int)
	for _, e := range entries {
		if e.HasMood() {
			counts[e.Mood]++
		}
	}
	return counts, nil
}

// Dates returns the distinct entry dates of a user in ascending order.
func (r *EntryRepo) Dates(userID string) ([]model.Date, error) {
	entries, err := r.find(userID, nil)
	if err != nil {
		return nil, err
	}
	dates := make([]model.Date, 0, len(entries))
	for _, e := range entries {
		dates = append(dates, e.Date)
	}
	slices.SortFunc(dates, model.Date.Compare)
	return slices.CompactFunc(dates, func(a, b model.Date) bool { return a.Compare(b) == 0 }), nil
}

// DailyActivity returns per-date entry counts and word sums for the days of
// year with at least one entry, ascending.
func (r *EntryRepo) DailyActivity(userID string, year int) ([]model.DayActivity, error) {
	first, last := model.YearBounds(year)
	entries, err := r.Find(userID, EntryFilter{From: first, Until: last})
	if err != nil {
		return nil, err
	}

	byDate := make(map[string]*model.DayActivity)
	for _, e := range entries {
		day, ok := byDate[e.Date.String()]
		if !ok {
			day = &model.DayActivity{Date: e.Date}
			byDate[e.Date.String()] = day
		}
		day.Count++
		day.Words += e.WordCount
	}

	days := make([]model.DayActivity, 0, len(byDate))
	for _, day := range byDate {
		days = append(days, *day)
	}
	slices.SortFunc(days, func(a, b model.DayActivity) int { return a.Date.Compare(b.Date) })
	return days, nil
}

// Random returns one uniformly chosen entry of a user, or nil if there are none.
func (r *EntryRepo) Random(userID string) (*model.Entry, error) {
	entries, err := r.find(userID, nil)
	if err != nil || len(entries) == 0 {
		return nil, err
	}
	return entries[rand.IntN(len(entries))], nil
}

// ByMonthDay returns the entries dated on the given month and day of any year.
func (r *EntryRepo) ByMonthDay(userID string, month time.Month, day int) ([]*model.Entry, error) {
	return r.find(userID, func(e *model.Entry) bool {
		return e.Date.Month() == month && e.Date.Day() == day
	})
}

// YearPage returns one page of a user's entries newest first, optionally
// restricted to year (0 means all years), together with the unpaginated total.
func (r *EntryRepo) YearPage(userID string, year, offset, limit int) ([]*model.Entry, int, error) {
	var filter EntryFilter
	if year != 0 {
		filter.From, filter.Until = model.YearBounds(year)
	}
	return r.Query(userID, EntryQuery{EntryFilter: filter, Offset: offset, Limit: limit})
}

// Years returns the distinct years with at least one entry, descending.
func (r *EntryRepo) Years(userID string) ([]int, error) {
	dates, err := r.Dates(userID)
	if err != nil {
		return nil, err
	}
	years := make([]int, 0)
	for i := len(dates) - 1; i >= 0; i-- {
		if y := dates[i].Year(); len(years) == 0 || years[len(years)-1] != y {
			years = append(years, y)
		}
	}
	return years, nil
}

// TagUsage returns how many entries use each tag, most used first, ties by name.
// A limit of 0 returns every tag.
func (r *EntryRepo) TagUsage(userID string, limit int) ([]model.TagCount, error) {
	entries, err := r.find(userID, nil)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]*model.TagCount)
	for _, e := range entries {
		for _, name := range e.Tags {
			k := strings.ToLower(name)
			tc, ok := counts[k]
			if !ok {
				tc = &model.TagCount{Name: name}
				counts[k] = tc
			}
			tc.Count++
		}
	}

	usage := make([]model.TagCount, 0, len(counts))
	for _, tc := range counts {
		usage = append(usage, *tc)
	}
	slices.SortFunc(usage, func(a, b model.TagCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	if limit > 0 && len(usage) > limit {
		usage = usage[:limit]
	}
	return usage, nil
}

// Query lists entries matching q ordered by the sort field, with pinned entries
// first when requested. It returns the requested page and the total number of matches.
func (r *EntryRepo) Query(userID string, q EntryQuery) ([]*model.Entry, int, error) {
	search := strings.ToLower(strings.TrimSpace(q.Search))
	entries, err := r.find(userID, func(e *model.Entry) bool {
		if !q.Match(e) {
			return false
		}
		if q.Tag != "" && !e.HasTag(q.Tag) {
			return false
		}
		if q.Pinned != nil && e.Pinned != *q.Pinned {
			return false
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(e.Title), search) &&
			!strings.Contains(strings.ToLower(e.ContentText), search) {
			return false
		}
		return true
	})
	if err != nil {
		return nil, 0, err
	}

	slices.SortStableFunc(entries, entryOrder(q.SortBy, q.Asc, q.PinnedFirst))

	total := len(entries)
	start := min(max(q.Offset, 0), total)
	end := total
	if q.Limit > 0 {
		end = min(start+q.Limit, total)
	}
	return entries[start:end], total, nil
}

// entryOrder orders by field, breaking ties by creation time in the same direction.
func entryOrder(field string, asc, pinnedFirst bool) func(a, b *model.Entry) int {
	return func(a, b *model.Entry) int {
		if pinnedFirst && a.Pinned != b.Pinned {
			if a.Pinned {
				return -1
			}
			return 1
		}

		var c int
		switch field {
		case SortByCreatedAt:
			c = a.CreatedAt.Compare(b.CreatedAt)
		case SortByWordCount:
			c = cmp.Compare(a.WordCount, b.WordCount)
		default:
			c = a.Date.Compare(b.Date)
		}
		if c == 0 {
			c = a.CreatedAt.Compare(b.CreatedAt)
		}
		if c == 0 {
			c = cmp.Compare(a.ID, b.ID)
		}
		if !asc {
			c = -c
		}
		return c
	}
}

// ValidSortField reports whether field is accepted by EntryQuery.
func ValidSortField(field string) bool {
	switch field {
	case "", SortByDate, SortByCreatedAt, SortByWordCount:
		return true
	}
	return false
}
