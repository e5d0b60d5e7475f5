package stats

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/nova728/diary/internal/errors"
	"github.com/nova728/diary/internal/model"
	"github.com/nova728/diary/internal/storage"
)

// Overview is the headline summary of a user's journal.
type Overview struct {
	TotalEntries   int `json:"total_entries"`
	TotalWords     int `json:"total_words"`
	Streak         int `json:"streak"`
	ThisMonthCount int `json:"this_month_count"`
}

// Overview gathers the headline numbers concurrently; any failed read fails the call.
func (s *Service) Overview(ctx context.Context, userID string) (*Overview, error) {
	today := s.Today()
	monthStart := model.NewDate(today.Year(), today.Month(), 1)
	monthEnd := model.NewDate(today.Year(), today.Month()+1, 0)

	var o Overview
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		o.TotalEntries, err = s.entries.Count(userID, storage.EntryFilter{})
		return errors.StoreFailure("count_entries", err)
	})
	g.Go(func() (err error) {
		o.TotalWords, err = s.entries.SumWords(userID, storage.EntryFilter{})
		return errors.StoreFailure("sum_words", err)
	})
	g.Go(func() error {
		dates, err := s.entries.Dates(userID)
		if err != nil {
			return errors.StoreFailure("entry_dates", err)
		}
		o.Streak = Streak(dates, today, OverviewHorizon)
		return nil
	})
	g.Go(func() (err error) {
		o.ThisMonthCount, err = s.entries.Count(userID, storage.EntryFilter{From: monthStart, Until: monthEnd})
		return errors.StoreFailure("count_month", err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &o, nil
}
