// Package reminder schedules the daily writing reminder of a writing goal.
package reminder

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/nova728/diary/internal/model"
	"github.com/nova728/diary/internal/validate"
)

// Spec returns the standard five-field cron spec firing every day at the
// HH:MM reminder time.
func Spec(reminderTime string) (string, error) {
	if err := validate.ReminderTime(reminderTime); err != nil {
		return "", err
	}
	hour, minute, _ := strings.Cut(reminderTime, ":")
	h, _ := strconv.Atoi(hour)
	m, _ := strconv.Atoi(minute)
	return fmt.Sprintf("%d %d * * *", m, h), nil
}

// Schedule parses the reminder time of goal into a cron schedule.
func Schedule(goal *model.WritingGoal) (cron.Schedule, error) {
	spec, err := Spec(goal.ReminderTime)
	if err != nil {
		return nil, err
	}
	return cron.ParseStandard(spec)
}

// Next returns the next reminder after now, evaluated in now's location.
// It reports false when reminders are disabled.
func Next(goal *model.WritingGoal, now time.Time) (time.Time, bool, error) {
	if !goal.ReminderEnabled {
		return time.Time{}, false, nil
	}
	schedule, err := Schedule(goal)
	if err != nil {
		return time.Time{}, false, err
	}
	return schedule.Next(now), true, nil
}
