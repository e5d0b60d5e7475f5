// Package model defines the domain models for the diary.
package model

import "strings"

// Model is the interface that all database models must implement.
type Model interface {
	// SetKey sets the database key for this model.
	SetKey(key string)
	// GetKey returns the database key for this model.
	GetKey() string
}

// KeyPrefix constants for database key generation.
const (
	PrefixEntry       = "entry"
	PrefixTag         = "tag"
	PrefixAchievement = "achievement"
	PrefixGoal        = "goal"
)

// keySep separates key segments.
const keySep = ":"

// UserPrefix returns the key prefix covering all records of one kind owned by a user.
func UserPrefix(prefix, userID string) string {
	return prefix + keySep + userID + keySep
}

// joinKey builds a database key from its segments.
func joinKey(parts ...string) string {
	return strings.Join(parts, keySep)
}
