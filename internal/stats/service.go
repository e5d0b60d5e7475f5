// Package stats derives streaks, achievements, goal progress, memories,
// timelines and heatmaps from a user's entry history.
//
// Every call re-reads the entry store; nothing is cached between calls. The
// only write is the achievement unlock insert performed by CheckAchievements.
package stats

import (
	"time"

	"github.com/nova728/diary/internal/model"
	"github.com/nova728/diary/internal/storage"
)

// Service computes derived metrics for one store.
type Service struct {
	entries      EntryStore
	tags         TagStore
	achievements AchievementStore
	goals        GoalStore

	now           func() time.Time
	loc           *time.Location
	timelineLimit int
}

// Option configures a Service.
type Option func(*Service)

// WithClock sets the source of the current time.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLocation sets the zone whose calendar defines "today".
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithTimelineLimit sets the timeline page size used when a query leaves it unset.
func WithTimelineLimit(limit int) Option {
	return func(s *Service) { s.timelineLimit = clampLimit(limit) }
}

// NewService creates a Service over the given stores.
func NewService(entries EntryStore, tags TagStore, achievements AchievementStore, goals GoalStore, opts ...Option) *Service {
	s := &Service{
		entries:       entries,
		tags:          tags,
		achievements:  achievements,
		goals:         goals,
		now:           time.Now,
		loc:           time.Local,
		timelineLimit: DefaultTimelineLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewStorageService creates a Service backed by the Badger repositories of db.
func NewStorageService(db *storage.DB, opts ...Option) *Service {
	return NewService(
		storage.NewEntryRepo(db),
		storage.NewTagRepo(db),
		storage.NewAchievementRepo(db),
		storage.NewGoalRepo(db),
		opts...,
	)
}

// Now returns the current time in the configured zone.
func (s *Service) Now() time.Time {
	return s.now().In(s.loc)
}

// Today returns the current calendar date in the configured zone.
func (s *Service) Today() model.Date {
	return model.DateOf(s.Now())
}

// Location returns the zone whose calendar defines "today".
func (s *Service) Location() *time.Location {
	return s.loc
}
