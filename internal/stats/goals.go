package stats

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/nova728/diary/internal/errors"
	"github.com/nova728/diary/internal/logging"
	"github.com/nova728/diary/internal/model"
	"github.com/nova728/diary/internal/storage"
	"github.com/nova728/diary/internal/validate"
)

// GoalProgress compares today's words and this week's entries with the goal.
type GoalProgress struct {
	DailyWords    int `json:"daily_words"`
	DailyGoal     int `json:"daily_goal"`
	DailyPercent  int `json:"daily_percent"`
	WeeklyEntries int `json:"weekly_entries"`
	WeeklyGoal    int `json:"weekly_goal"`
	WeeklyPercent int `json:"weekly_percent"`
}

// WeekStart returns the Monday on or before d.
func WeekStart(d model.Date) model.Date {
	return d.AddDays(1 - d.ISOWeekday())
}

// Goal returns the user's writing goal, creating it with defaults on first access.
func (s *Service) Goal(ctx context.Context, userID string) (*model.WritingGoal, error) {
	goal, created, err := s.goals.GetOrCreate(userID, s.Now())
	if err != nil {
		return nil, errors.StoreFailure("get_goal", err)
	}
	if created {
		logging.DebugContext(ctx, "writing goal created with defaults")
	}
	return goal, nil
}

// UpdateGoal validates and applies a partial goal change. Unset fields keep
// their current values.
func (s *Service) UpdateGoal(ctx context.Context, userID string, u model.GoalUpdate) (*model.WritingGoal, error) {
	if err := validate.GoalUpdate(u); err != nil {
		return nil, err
	}

	goal, err := s.Goal(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u.IsEmpty() {
		return goal, nil
	}

	goal.Apply(u, s.Now())
	if err := s.goals.Update(goal); err != nil {
		return nil, errors.StoreFailure("update_goal", err)
	}
	logging.InfoContext(ctx, "writing goal updated",
		"daily_word_goal", goal.DailyWordGoal,
		"weekly_entry_goal", goal.WeeklyEntryGoal)
	return goal, nil
}

// GoalProgress sums the words of entries dated today and counts the entries
// dated from this week's Monday through today.
func (s *Service) GoalProgress(ctx context.Context, userID string) (*GoalProgress, error) {
	goal, err := s.Goal(ctx, userID)
	if err != nil {
		return nil, err
	}

	today := s.Today()
	var p GoalProgress
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		p.DailyWords, err = s.entries.SumWords(userID, storage.EntryFilter{From: today, Until: today})
		return errors.StoreFailure("daily_words", err)
	})
	g.Go(func() (err error) {
		p.WeeklyEntries, err = s.entries.Count(userID, storage.EntryFilter{From: WeekStart(today), Until: today})
		return errors.StoreFailure("weekly_entries", err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	p.DailyGoal = goal.DailyWordGoal
	p.DailyPercent = model.Percent(p.DailyWords, p.DailyGoal)
	p.WeeklyGoal = goal.WeeklyEntryGoal
	p.WeeklyPercent = model.Percent(p.WeeklyEntries, p.WeeklyGoal)
	return &p, nil
}
