package model

import (
	"strings"
	"time"
)

// Tag is a free-form label owned by a user. Names are unique per user
// regardless of case.
type Tag struct {
	Key       string    `json:"key"`
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// SetKey sets the database key for this tag.
func (t *Tag) SetKey(key string) {
	t.Key = key
}

// GetKey returns the database key for this tag.
func (t *Tag) GetKey() string {
	return t.Key
}

// NormalizeTagName trims surrounding whitespace from a tag name.
func NormalizeTagName(name string) string {
	return strings.TrimSpace(name)
}

// GenerateTagKey generates a database key for a tag. The name segment is
// lower-cased so that the key itself enforces per-user uniqueness.
func GenerateTagKey(userID, name string) string {
	return joinKey(PrefixTag, userID, strings.ToLower(NormalizeTagName(name)))
}
