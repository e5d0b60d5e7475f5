package output

import (
	"time"

	"github.com/nova728/diary/internal/journal"
	"github.com/nova728/diary/internal/model"
	"github.com/nova728/diary/internal/stats"
)

// JSONFormatter provides JSON-specific formatting.
type JSONFormatter struct {
	*Formatter
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(f *Formatter) *JSONFormatter {
	return &JSONFormatter{Formatter: f}
}

// SavedResponse represents a created or updated entry in JSON.
type SavedResponse struct {
	Status   string         `json:"status"`
	Entry    *model.Entry   `json:"entry"`
	Unlocked []stats.Unlock `json:"unlocked"`
}

// ErrorResponse represents an error in JSON.
type ErrorResponse struct {
	Status     string `json:"status"`
	Error      string `json:"error"`
	Category   string `json:"category,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

// GoalResponse represents the writing goal with its progress in JSON.
type GoalResponse struct {
	Goal         *model.WritingGoal  `json:"goal"`
	Progress     *stats.GoalProgress `json:"progress,omitempty"`
	NextReminder *time.Time          `json:"next_reminder,omitempty"`
}

// OverviewResponse represents the stats overview in JSON.
type OverviewResponse struct {
	*stats.Overview
	Goal *stats.GoalProgress `json:"goal,omitempty"`
}

// PrintSaved outputs a saved entry in JSON format.
func (j *JSONFormatter) PrintSaved(status string, res *journal.Result) error {
	unlocked := res.Unlocked
	if unlocked == nil {
		unlocked = []stats.Unlock{}
	}
	return j.JSON(SavedResponse{Status: status, Entry: res.Entry, Unlocked: unlocked})
}

// PrintGoal outputs the writing goal in JSON format. A zero next is omitted.
func (j *JSONFormatter) PrintGoal(g *model.WritingGoal, p *stats.GoalProgress, next time.Time) error {
	resp := GoalResponse{Goal: g, Progress: p}
	if !next.IsZero() {
		resp.NextReminder = &next
	}
	return j.JSON(resp)
}

// PrintOverview outputs the overview in JSON format.
func (j *JSONFormatter) PrintOverview(o *stats.Overview, p *stats.GoalProgress) error {
	return j.JSON(OverviewResponse{Overview: o, Goal: p})
}

// PrintError outputs an error in JSON format.
func (j *JSONFormatter) PrintError(errMsg, category, suggestion string) error {
	return j.JSON(ErrorResponse{
		Status:     "error",
		Error:      errMsg,
		Category:   category,
		Suggestion: suggestion,
	})
}
