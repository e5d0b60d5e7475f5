package model

import (
	"strings"
	"time"
)

// Mood is one of a fixed set of eight moods an entry may be tagged with.
type Mood string

const (
	MoodHappy    Mood = "happy"
	MoodCalm     Mood = "calm"
	MoodSad      Mood = "sad"
	MoodAngry    Mood = "angry"
	MoodAnxious  Mood = "anxious"
	MoodExcited  Mood = "excited"
	MoodGrateful Mood = "grateful"
	MoodTired    Mood = "tired"
)

// Moods lists every mood in enumeration order.
var Moods = []Mood{
	MoodHappy, MoodCalm, MoodSad, MoodAngry,
	MoodAnxious, MoodExcited, MoodGrateful, MoodTired,
}

// Valid reports whether m belongs to the enumeration.
func (m Mood) Valid() bool {
	for _, known := range Moods {
		if m == known {
			return true
		}
	}
	return false
}

// Entry is one journal post.
type Entry struct {
	Key         string    `json:"key"`
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	ContentText string    `json:"content_text"`
	WordCount   int       `json:"word_count"`
	Mood        Mood      `json:"mood,omitempty"`
	Date        Date      `json:"date"`
	Pinned      bool      `json:"pinned"`
	Tags        []string  `json:"tags,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SetKey sets the database key for this entry.
func (e *Entry) SetKey(key string) {
	e.Key = key
}

// GetKey returns the database key for this entry.
func (e *Entry) GetKey() string {
	return e.Key
}

// HasMood reports whether the entry carries a mood.
func (e *Entry) HasMood() bool {
	return e.Mood != ""
}

// HasTag checks if the entry has the given tag (case-insensitive).
func (e *Entry) HasTag(tag string) bool {
	if tag == "" {
		return false
	}
	for _, t := range e.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// GenerateEntryKey generates a database key for an entry.
func GenerateEntryKey(userID, id string) string {
	return joinKey(PrefixEntry, userID, id)
}
