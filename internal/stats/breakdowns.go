package stats

import (
	"context"

	"github.com/nova728/diary/internal/errors"
	"github.com/nova728/diary/internal/model"
	"github.com/nova728/diary/internal/storage"
	"github.com/nova728/diary/internal/validate"
)

// TopTagsLimit is the number of tags TopTags reports.
const TopTagsLimit = 20

// MoodBreakdown counts entries per mood within [from, until], either bound
// optional. Moods that never occur are omitted; the rest follow enumeration order.
func (s *Service) MoodBreakdown(ctx context.Context, userID string, from, until model.Date) ([]model.MoodCount, error) {
	counts, err := s.entries.MoodCounts(userID, storage.EntryFilter{From: from, Until: until})
	if err != nil {
		return nil, errors.StoreFailure("mood_counts", err)
	}

	breakdown := make([]model.MoodCount, 0, len(counts))
	for _, mood := range model.Moods {
		if n := counts[mood]; n > 0 {
			breakdown = append(breakdown, model.MoodCount{Mood: mood, Count: n})
		}
	}
	return breakdown, nil
}

// Activity returns the per-date aggregates of the active days of year, ascending.
func (s *Service) Activity(ctx context.Context, userID string, year int) ([]model.DayActivity, error) {
	if err := validate.Year(year); err != nil {
		return nil, err
	}
	days, err := s.entries.DailyActivity(userID, year)
	if err != nil {
		return nil, errors.StoreFailure("activity", err)
	}
	return days, nil
}

// TopTags returns the user's most used tags, most used first, ties by name.
func (s *Service) TopTags(ctx context.Context, userID string) ([]model.TagCount, error) {
	tags, err := s.entries.TagUsage(userID, TopTagsLimit)
	if err != nil {
		return nil, errors.StoreFailure("top_tags", err)
	}
	return tags, nil
}
