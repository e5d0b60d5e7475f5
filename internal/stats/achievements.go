package stats

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nova728/diary/internal/errors"
	"github.com/nova728/diary/internal/logging"
	"github.com/nova728/diary/internal/model"
	"github.com/nova728/diary/internal/storage"
)

// Unlock is an achievement granted by one CheckAchievements call.
type Unlock struct {
	model.AchievementDefinition
	UnlockedAt time.Time `json:"unlocked_at"`
}

// AchievementStatus is a catalog entry annotated with the user's unlock state.
type AchievementStatus struct {
	model.AchievementDefinition
	Unlocked   bool       `json:"unlocked"`
	UnlockedAt *time.Time `json:"unlocked_at,omitempty"`
}

// Totals are the per-user figures achievements are judged against.
type Totals struct {
	Entries int
	Words   int
	Moods   int
	Tags    int
	Streak  int
}

// Qualifies reports whether totals meet the definition's threshold.
func Qualifies(def model.AchievementDefinition, t Totals) bool {
	switch def.Category {
	case model.CategoryStreak:
		return t.Streak >= def.Threshold
	case model.CategoryEntries:
		return t.Entries >= def.Threshold
	case model.CategoryWords:
		return t.Words >= def.Threshold
	case model.CategorySpecial:
		switch def.Key {
		case model.KeyFirstEntry:
			return t.Entries >= def.Threshold
		case model.KeyMoodVariety:
			return t.Moods >= def.Threshold
		case model.KeyTagMaster:
			return t.Tags >= def.Threshold
		}
	}
	return false
}

// unlockedKeys maps achievement keys to unlock times.
func (s *Service) unlockedKeys(userID string) (map[string]time.Time, error) {
	records, err := s.achievements.List(userID)
	if err != nil {
		return nil, err
	}
	unlocked := make(map[string]time.Time, len(records))
	for _, r := range records {
		unlocked[r.AchievementKey] = r.UnlockedAt
	}
	return unlocked, nil
}

// gather reads the totals and unlocked keys of a user concurrently. Any
// failed read fails the whole gather.
func (s *Service) gather(ctx context.Context, userID string) (Totals, map[string]time.Time, error) {
	var (
		t        Totals
		unlocked map[string]time.Time
		all      storage.EntryFilter
	)
	today := s.Today()

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		t.Entries, err = s.entries.Count(userID, all)
		return errors.StoreFailure("count_entries", err)
	})
	g.Go(func() (err error) {
		t.Words, err = s.entries.SumWords(userID, all)
		return errors.StoreFailure("sum_words", err)
	})
	g.Go(func() (err error) {
		t.Moods, err = s.entries.DistinctMoods(userID, all)
		return errors.StoreFailure("distinct_moods", err)
	})
	g.Go(func() (err error) {
		t.Tags, err = s.tags.Count(userID)
		return errors.StoreFailure("count_tags", err)
	})
	g.Go(func() error {
		dates, err := s.entries.Dates(userID)
		if err != nil {
			return errors.StoreFailure("entry_dates", err)
		}
		t.Streak = Streak(dates, today, AchievementHorizon)
		return nil
	})
	g.Go(func() (err error) {
		unlocked, err = s.unlockedKeys(userID)
		return errors.StoreFailure("list_achievements", err)
	})
	if err := g.Wait(); err != nil {
		return Totals{}, nil, err
	}
	return t, unlocked, nil
}

// CheckAchievements records every catalog achievement the user now qualifies
// for and has not unlocked before, in catalog order, and returns them.
// A duplicate unlock from a concurrent call is treated as already unlocked.
// Any other store failure aborts the evaluation and is returned.
func (s *Service) CheckAchievements(ctx context.Context, userID string) ([]Unlock, error) {
	totals, unlocked, err := s.gather(ctx, userID)
	if err != nil {
		return nil, err
	}

	var newly []Unlock
	for _, def := range model.Catalog() {
		if _, ok := unlocked[def.Key]; ok {
			continue
		}
		if !Qualifies(def, totals) {
			continue
		}

		at := s.Now()
		err := s.achievements.Insert(model.NewAchievementRecord(userID, def.Key, at))
		if errors.IsConflict(err) {
			logging.DebugContext(ctx, "achievement already unlocked", logging.KeyAchievement, def.Key)
			continue
		}
		if err != nil {
			return nil, errors.StoreFailure("unlock_achievement", err)
		}

		logging.InfoContext(ctx, "achievement unlocked", logging.KeyAchievement, def.Key)
		newly = append(newly, Unlock{AchievementDefinition: def, UnlockedAt: at})
	}
	return newly, nil
}

// ListAchievements returns the whole catalog with the user's unlock state.
func (s *Service) ListAchievements(ctx context.Context, userID string) ([]AchievementStatus, error) {
	unlocked, err := s.unlockedKeys(userID)
	if err != nil {
		return nil, errors.StoreFailure("list_achievements", err)
	}

	catalog := model.Catalog()
	statuses := make([]AchievementStatus, 0, len(catalog))
	for _, def := range catalog {
		status := AchievementStatus{AchievementDefinition: def}
		if at, ok := unlocked[def.Key]; ok {
			status.Unlocked = true
			status.UnlockedAt = &at
		}
		statuses = append(statuses, status)
	}
	logging.DebugContext(ctx, "achievements listed", logging.KeyCount, len(unlocked))
	return statuses, nil
}
