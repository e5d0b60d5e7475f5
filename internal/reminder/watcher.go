package reminder

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/nova728/diary/internal/errors"
	"github.com/nova728/diary/internal/logging"
	"github.com/nova728/diary/internal/model"
	"github.com/nova728/diary/internal/stats"
)

// Engine is the part of the stats service the watcher reads.
type Engine interface {
	Goal(ctx context.Context, userID string) (*model.WritingGoal, error)
	GoalProgress(ctx context.Context, userID string) (*stats.GoalProgress, error)
}

// Notice is delivered when the reminder fires before today's goal is met.
type Notice struct {
	UserID   string
	At       time.Time
	Progress stats.GoalProgress
}

// Notifier delivers a notice.
type Notifier func(ctx context.Context, n Notice) error

// Broadcast returns a notifier delivering to every notifier in turn.
// A failing notifier does not stop the others.
func Broadcast(notifiers ...Notifier) Notifier {
	return func(ctx context.Context, n Notice) error {
		var errs []error
		for _, notify := range notifiers {
			if err := notify(ctx, n); err != nil {
				errs = append(errs, err)
			}
		}
		return stderrors.Join(errs...)
	}
}

// Watcher fires the daily writing reminder of one user in the foreground.
type Watcher struct {
	cron   *cron.Cron
	engine Engine
	userID string
	notify Notifier
	loc    *time.Location
	now    func() time.Time
}

// NewWatcher creates a watcher evaluating the reminder schedule in loc.
func NewWatcher(engine Engine, userID string, loc *time.Location, notify Notifier) *Watcher {
	return &Watcher{
		cron:   cron.New(cron.WithLocation(loc)),
		engine: engine,
		userID: userID,
		notify: notify,
		loc:    loc,
		now:    time.Now,
	}
}

// Start schedules the reminder. It fails when the user has reminders disabled.
func (w *Watcher) Start(ctx context.Context) error {
	goal, err := w.engine.Goal(ctx, w.userID)
	if err != nil {
		return err
	}
	if !goal.ReminderEnabled {
		return errors.NewUserError("Reminders are disabled",
			"Enable them with 'diary goal set --reminder on'")
	}

	spec, err := Spec(goal.ReminderTime)
	if err != nil {
		return err
	}
	if _, err := w.cron.AddFunc(spec, func() {
		if err := w.Fire(ctx); err != nil {
			logging.WarnContext(ctx, "reminder failed", logging.KeyError, err)
		}
	}); err != nil {
		return fmt.Errorf("schedule reminder: %w", err)
	}

	w.cron.Start()
	logging.DebugContext(ctx, "reminder scheduled", "spec", spec, "next", w.Next())
	return nil
}

// Stop stops the scheduler and waits for a running reminder to finish.
func (w *Watcher) Stop() {
	<-w.cron.Stop().Done()
}

// Run starts the watcher and blocks until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	if err := w.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	w.Stop()
	return nil
}

// Next returns the next time the reminder fires, or the zero time before Start.
func (w *Watcher) Next() time.Time {
	entries := w.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}

// Fire notifies the user unless today's word goal is already met.
func (w *Watcher) Fire(ctx context.Context) error {
	progress, err := w.engine.GoalProgress(ctx, w.userID)
	if err != nil {
		return err
	}
	if progress.DailyPercent >= 100 {
		logging.DebugContext(ctx, "reminder skipped, goal met")
		return nil
	}
	return w.notify(ctx, Notice{
		UserID:   w.userID,
		At:       w.now().In(w.loc),
		Progress: *progress,
	})
}
