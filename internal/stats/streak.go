package stats

import (
	"context"

	"github.com/nova728/diary/internal/errors"
	"github.com/nova728/diary/internal/logging"
	"github.com/nova728/diary/internal/model"
)

// Walk horizons bounding the streak computation.
const (
	OverviewHorizon    = 365
	AchievementHorizon = 400
)

// Streak returns the number of consecutive days ending today (or yesterday,
// when today has no entry yet) that appear in dates. The walk stops after
// horizon days.
func Streak(dates []model.Date, today model.Date, horizon int) int {
	if len(dates) == 0 {
		return 0
	}

	written := make(map[string]struct{}, len(dates))
	for _, d := range dates {
		written[d.String()] = struct{}{}
	}

	streak := 0
	for i := 0; i < horizon; i++ {
		if _, ok := written[today.AddDays(-i).String()]; ok {
			streak++
		} else if i > 0 {
			break
		}
	}
	return streak
}

// CurrentStreak returns the user's streak as of today.
func (s *Service) CurrentStreak(ctx context.Context, userID string, horizon int) (int, error) {
	dates, err := s.entries.Dates(userID)
	if err != nil {
		return 0, errors.StoreFailure("streak", err)
	}
	streak := Streak(dates, s.Today(), horizon)
	logging.DebugContext(ctx, "streak computed", logging.KeyCount, streak)
	return streak, nil
}
