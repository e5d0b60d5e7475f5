package stats

import (
	"cmp"
	"context"
	"slices"

	"github.com/nova728/diary/internal/errors"
	"github.com/nova728/diary/internal/logging"
	"github.com/nova728/diary/internal/model"
	"github.com/nova728/diary/internal/validate"
)

// Timeline page sizes.
const (
	DefaultTimelineLimit = 50
	MaxTimelineLimit     = 100
)

// Memory is an entry written on today's month and day in another year.
type Memory struct {
	Entry    *model.Entry `json:"entry"`
	YearsAgo int          `json:"years_ago"`
}

// TimelineQuery selects one page of the timeline. A zero Year covers every year.
type TimelineQuery struct {
	Year  int
	Page  int
	Limit int
}

// MonthGroup holds the entries of one YYYY-MM month, newest first.
type MonthGroup struct {
	Month   string         `json:"month"`
	Entries []*model.Entry `json:"entries"`
}

// Pagination describes the page of entries a timeline was built from.
type Pagination struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
}

// Timeline is one page of entries grouped by month, plus every year with entries.
type Timeline struct {
	Groups     []MonthGroup `json:"groups"`
	Years      []int        `json:"years"`
	Pagination Pagination   `json:"pagination"`
}

// OnThisDay returns the user's entries dated on today's month and day in
// other years, most recent year first.
func (s *Service) OnThisDay(ctx context.Context, userID string) ([]Memory, error) {
	today := s.Today()
	entries, err := s.entries.ByMonthDay(userID, today.Month(), today.Day())
	if err != nil {
		return nil, errors.StoreFailure("on_this_day", err)
	}

	memories := make([]Memory, 0, len(entries))
	for _, e := range entries {
		if e.Date.Year() == today.Year() {
			continue
		}
		memories = append(memories, Memory{Entry: e, YearsAgo: today.Year() - e.Date.Year()})
	}
	slices.SortStableFunc(memories, func(a, b Memory) int {
		if c := cmp.Compare(a.YearsAgo, b.YearsAgo); c != 0 {
			return c
		}
		return b.Entry.CreatedAt.Compare(a.Entry.CreatedAt)
	})

	logging.DebugContext(ctx, "on this day", logging.KeyCount, len(memories))
	return memories, nil
}

// RandomMemory returns one uniformly chosen entry, or nil when the user has none.
func (s *Service) RandomMemory(ctx context.Context, userID string) (*model.Entry, error) {
	entry, err := s.entries.Random(userID)
	if err != nil {
		return nil, errors.StoreFailure("random_memory", err)
	}
	return entry, nil
}

// Timeline fetches one page of entries newest first and groups it by month.
// Pagination applies before grouping, so a month may continue on the next page.
func (s *Service) Timeline(ctx context.Context, userID string, q TimelineQuery) (*Timeline, error) {
	if q.Year != 0 {
		if err := validate.Year(q.Year); err != nil {
			return nil, err
		}
	}
	limit := s.timelineLimit
	if q.Limit != 0 {
		limit = clampLimit(q.Limit)
	}
	page := max(q.Page, 1)

	entries, total, err := s.entries.YearPage(userID, q.Year, (page-1)*limit, limit)
	if err != nil {
		return nil, errors.StoreFailure("timeline", err)
	}
	years, err := s.entries.Years(userID)
	if err != nil {
		return nil, errors.StoreFailure("timeline_years", err)
	}

	tl := &Timeline{
		Groups: GroupByMonth(entries),
		Years:  years,
		Pagination: Pagination{
			Total: total,
			Page:  page,
			Limit: limit,
			Pages: (total + limit - 1) / limit,
		},
	}
	logging.DebugContext(ctx, "timeline built", logging.KeyYear, q.Year, logging.KeyCount, len(entries))
	return tl, nil
}

// GroupByMonth groups entries that are already ordered newest first by their
// YYYY-MM month, keeping that order inside and across groups.
func GroupByMonth(entries []*model.Entry) []MonthGroup {
	groups := make([]MonthGroup, 0)
	index := make(map[string]int)
	for _, e := range entries {
		month := e.Date.YearMonth()
		i, ok := index[month]
		if !ok {
			i = len(groups)
			index[month] = i
			groups = append(groups, MonthGroup{Month: month})
		}
		groups[i].Entries = append(groups[i].Entries, e)
	}
	return groups
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultTimelineLimit
	}
	return min(limit, MaxTimelineLimit)
}
