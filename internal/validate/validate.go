// Package validate provides input validation helpers for the diary CLI.
package validate

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/nova728/diary/internal/errors"
	"github.com/nova728/diary/internal/model"
)

const (
	// MaxTitleLength is the maximum length of an entry title.
	MaxTitleLength = 300
	// MaxTags is the maximum number of tags on one entry.
	MaxTags = 20
	// MaxTagLength is the maximum length of a tag name.
	MaxTagLength = 50

	// Writing goal bounds.
	MinDailyWordGoal   = 50
	MaxDailyWordGoal   = 10000
	MinWeeklyEntryGoal = 1
	MaxWeeklyEntryGoal = 14

	// Supported calendar years.
	MinYear = 1
	MaxYear = 9999
)

// reminderTimeRegex validates a 24-hour HH:MM time of day.
var reminderTimeRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// Title validates an entry title.
func Title(title string) error {
	if strings.TrimSpace(title) == "" {
		return errors.NewUserError("Title cannot be empty", "Give the entry a title with --title")
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return errors.NewUserErrorWithField("title", title,
			"Title too long",
			fmt.Sprintf("Titles must be %d characters or fewer", MaxTitleLength))
	}
	return nil
}

// Content validates entry content.
func Content(content string) error {
	return NonEmpty("Content", content)
}

// Mood validates an optional mood. The empty mood is allowed.
func Mood(mood model.Mood) error {
	if mood == "" || mood.Valid() {
		return nil
	}
	return &errors.UserError{
		Message: "Unknown mood",
		Field:   "mood",
		Value:   string(mood),
		Cause:   errors.ErrUnknownMood,
	}
}

// Tags validates the tag names of one entry.
func Tags(tags []string) error {
	if len(tags) > MaxTags {
		return errors.NewUserError("Too many tags",
			fmt.Sprintf("An entry can have at most %d tags", MaxTags))
	}
	for _, tag := range tags {
		name := model.NormalizeTagName(tag)
		if name == "" {
			return errors.NewUserError("Tag cannot be empty", "Remove the empty tag")
		}
		if utf8.RuneCountInString(name) > MaxTagLength {
			return errors.NewUserErrorWithField("tag", name,
				"Tag too long",
				fmt.Sprintf("Tags must be %d characters or fewer", MaxTagLength))
		}
	}
	return nil
}

// ReminderTime validates a reminder time of day.
func ReminderTime(value string) error {
	if !reminderTimeRegex.MatchString(value) {
		return &errors.UserError{
			Message:    "Invalid reminder time",
			Suggestion: "Use 24-hour HH:MM, for example 21:00",
			Field:      "reminder_time",
			Value:      value,
			Cause:      errors.ErrInvalidGoal,
		}
	}
	return nil
}

// GoalUpdate validates the fields set on a writing goal change.
func GoalUpdate(u model.GoalUpdate) error {
	if u.DailyWordGoal != nil {
		if err := goalRange("daily_word_goal", *u.DailyWordGoal, MinDailyWordGoal, MaxDailyWordGoal); err != nil {
			return err
		}
	}
	if u.WeeklyEntryGoal != nil {
		if err := goalRange("weekly_entry_goal", *u.WeeklyEntryGoal, MinWeeklyEntryGoal, MaxWeeklyEntryGoal); err != nil {
			return err
		}
	}
	if u.ReminderTime != nil {
		if err := ReminderTime(*u.ReminderTime); err != nil {
			return err
		}
	}
	return nil
}

func goalRange(field string, value, min, max int) error {
	err := InRange(field, value, min, max)
	if ue, ok := errors.AsUserError(err); ok {
		ue.Cause = errors.ErrInvalidGoal
	}
	return err
}

// Year validates a calendar year.
func Year(year int) error {
	return InRange("year", year, MinYear, MaxYear)
}

// NonEmpty validates that a string is not empty.
func NonEmpty(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return errors.NewUserError(
			field+" cannot be empty",
			"Provide a value for "+strings.ToLower(field))
	}
	return nil
}

// InRange validates that an integer is within a range.
func InRange(field string, value, min, max int) error {
	if value < min || value > max {
		return errors.NewUserErrorWithField(field, fmt.Sprint(value),
			"Value out of range",
			fmt.Sprintf("Must be between %d and %d", min, max))
	}
	return nil
}
