package errors

import "errors"

// Suggestions maps common errors to helpful suggestions.
var Suggestions = map[error]string{
	ErrEntryNotFound:     "Use 'diary list' to see your entries and their IDs.",
	ErrUnknownMood:       "Moods are: happy, calm, sad, angry, anxious, excited, grateful, tired.",
	ErrInvalidDate:       "Use YYYY-MM-DD, or phrases like 'today', 'yesterday' or '3 days ago'.",
	ErrInvalidGoal:       "Daily words must be 50-10000, weekly entries 1-14, reminder time HH:MM.",
	ErrInvalidTimezone:   "Set DIARY_TIMEZONE to an IANA name such as 'Europe/Berlin'.",
	ErrStoreUnavailable:  "The journal database could not be read. Try again in a moment.",
	ErrDatabaseCorrupted: "Restore the data directory from a backup.",
	ErrPermissionDenied:  "Check file permissions in your data directory (~/.local/share/diary/).",
}

// GetSuggestion returns a suggestion for an error, if available.
// It walks the error chain to find matching suggestions.
func GetSuggestion(err error) string {
	if err == nil {
		return ""
	}

	if ue, ok := AsUserError(err); ok && ue.Suggestion != "" {
		return ue.Suggestion
	}

	for knownErr, suggestion := range Suggestions {
		if errors.Is(err, knownErr) {
			return suggestion
		}
	}

	return ""
}
