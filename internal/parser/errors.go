package parser

import (
	"fmt"
	"strings"

	"github.com/nova728/diary/internal/errors"
)

// DateParseError represents a date parsing error with helpful examples.
type DateParseError struct {
	Input      string
	Field      string
	Message    string
	Examples   []string
	Suggestion string
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("invalid %s '%s': %s", e.Field, e.Input, e.Message)
}

// Unwrap ties every date parse error to errors.ErrInvalidDate.
func (e *DateParseError) Unwrap() error {
	return errors.ErrInvalidDate
}

// FormatWithExamples returns the error message with example suggestions.
func (e *DateParseError) FormatWithExamples() string {
	var sb strings.Builder
	sb.WriteString(e.Error())

	if len(e.Examples) > 0 {
		sb.WriteString("\n\nValid examples:\n")
		for _, ex := range e.Examples {
			sb.WriteString("  - ")
			sb.WriteString(ex)
			sb.WriteString("\n")
		}
	}

	if e.Suggestion != "" {
		sb.WriteString("\n")
		sb.WriteString(e.Suggestion)
	}

	return sb.String()
}

// DateExamples provides example entry date formats.
var DateExamples = []string{
	"2024-03-05",
	"today",
	"yesterday",
	"3 days ago",
	"last friday",
}

// PeriodExamples provides example period formats.
var PeriodExamples = []string{
	"this week",
	"last month",
	"this year",
	"2024",
	"all",
}

// NewDateError creates a date parse error with standard examples.
func NewDateError(input string) *DateParseError {
	return &DateParseError{
		Input:      input,
		Field:      "date",
		Message:    "could not parse date",
		Examples:   DateExamples,
		Suggestion: "Use YYYY-MM-DD or natural language like 'yesterday'.",
	}
}

// NewPeriodError creates a period parse error with standard examples.
func NewPeriodError(input string) *DateParseError {
	return &DateParseError{
		Input:      input,
		Field:      "period",
		Message:    "could not parse period",
		Examples:   PeriodExamples,
		Suggestion: "Use period names like 'this week', 'last month' or a year.",
	}
}

// ToUserError converts a DateParseError to a UserError for consistent handling.
func (e *DateParseError) ToUserError() *errors.UserError {
	suggestion := e.Suggestion
	if len(e.Examples) > 0 && suggestion == "" {
		suggestion = fmt.Sprintf("Try: %s", strings.Join(e.Examples[:min(3, len(e.Examples))], ", "))
	}

	return &errors.UserError{
		Message:    e.Message,
		Suggestion: suggestion,
		Field:      e.Field,
		Value:      e.Input,
		Cause:      errors.ErrInvalidDate,
	}
}
