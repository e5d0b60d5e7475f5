package model

import (
	"math"
	"time"
)

// Default writing goal values.
const (
	DefaultDailyWordGoal   = 300
	DefaultWeeklyEntryGoal = 3
	DefaultReminderTime    = "21:00"
)

// WritingGoal holds a user's daily word and weekly entry targets and reminder settings.
type WritingGoal struct {
	Key             string    `json:"key"`
	UserID          string    `json:"user_id"`
	DailyWordGoal   int       `json:"daily_word_goal"`
	WeeklyEntryGoal int       `json:"weekly_entry_goal"`
	ReminderEnabled bool      `json:"reminder_enabled"`
	ReminderTime    string    `json:"reminder_time"`
	ReminderEmail   bool      `json:"reminder_email"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// SetKey sets the database key for this goal.
func (g *WritingGoal) SetKey(key string) {
	g.Key = key
}

// GetKey returns the database key for this goal.
func (g *WritingGoal) GetKey() string {
	return g.Key
}

// GenerateGoalKey generates the database key for a user's writing goal.
func GenerateGoalKey(userID string) string {
	return joinKey(PrefixGoal, userID)
}

// NewWritingGoal creates a goal with default targets.
func NewWritingGoal(userID string, now time.Time) *WritingGoal {
	return &WritingGoal{
		Key:             GenerateGoalKey(userID),
		UserID:          userID,
		DailyWordGoal:   DefaultDailyWordGoal,
		WeeklyEntryGoal: DefaultWeeklyEntryGoal,
		ReminderTime:    DefaultReminderTime,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// GoalUpdate carries a partial change to a writing goal. Nil fields are left untouched.
type GoalUpdate struct {
	DailyWordGoal   *int    `json:"daily_word_goal,omitempty"`
	WeeklyEntryGoal *int    `json:"weekly_entry_goal,omitempty"`
	ReminderEnabled *bool   `json:"reminder_enabled,omitempty"`
	ReminderTime    *string `json:"reminder_time,omitempty"`
	ReminderEmail   *bool   `json:"reminder_email,omitempty"`
}

// IsEmpty reports whether the update changes nothing.
func (u GoalUpdate) IsEmpty() bool {
	return u.DailyWordGoal == nil && u.WeeklyEntryGoal == nil &&
		u.ReminderEnabled == nil && u.ReminderTime == nil && u.ReminderEmail == nil
}

// Apply copies the set fields of u onto g.
func (g *WritingGoal) Apply(u GoalUpdate, now time.Time) {
	if u.DailyWordGoal != nil {
		g.DailyWordGoal = *u.DailyWordGoal
	}
	if u.WeeklyEntryGoal != nil {
		g.WeeklyEntryGoal = *u.WeeklyEntryGoal
	}
	if u.ReminderEnabled != nil {
		g.ReminderEnabled = *u.ReminderEnabled
	}
	if u.ReminderTime != nil {
		g.ReminderTime = *u.ReminderTime
	}
	if u.ReminderEmail != nil {
		g.ReminderEmail = *u.ReminderEmail
	}
	g.UpdatedAt = now
}

// Percent returns min(100, round(actual/goal*100)). A goal of zero or less
// counts as met.
func Percent(actual, goal int) int {
	if goal <= 0 {
		return 100
	}
	if actual <= 0 {
		return 0
	}
	p := int(math.Round(float64(actual) / float64(goal) * 100))
	if p > 100 {
		return 100
	}
	return p
}
