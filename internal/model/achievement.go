package model

import "time"

// AchievementCategory determines how an achievement's threshold is interpreted.
type AchievementCategory string

const (
	CategoryStreak  AchievementCategory = "streak"
	CategoryEntries AchievementCategory = "entries"
	CategoryWords   AchievementCategory = "words"
	CategorySpecial AchievementCategory = "special"
)

// Keys of the special achievements, each of which has its own predicate.
const (
	KeyFirstEntry  = "first_entry"
	KeyMoodVariety = "mood_variety"
	KeyTagMaster   = "tag_master"
)

// AchievementDefinition describes one achievement of the static catalog.
type AchievementDefinition struct {
	Key         string              `json:"key"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Icon        string              `json:"icon"`
	Category    AchievementCategory `json:"category"`
	Threshold   int                 `json:"threshold"`
}

// catalog is ordered by category (streak, entries, words, special) and by
// ascending threshold within a category. It is never mutated.
var catalog = []AchievementDefinition{
	{Key: "streak_7", Name: "First Spark", Description: "Write 7 days in a row", Icon: "🔥", Category: CategoryStreak, Threshold: 7},
	{Key: "streak_30", Name: "Steady Hand", Description: "Write 30 days in a row", Icon: "💪", Category: CategoryStreak, Threshold: 30},
	{Key: "streak_100", Name: "Hundred Days", Description: "Write 100 days in a row", Icon: "🏆", Category: CategoryStreak, Threshold: 100},
	{Key: "streak_365", Name: "Year Round", Description: "Write 365 days in a row", Icon: "👑", Category: CategoryStreak, Threshold: 365},

	{Key: "entries_10", Name: "Finding a Voice", Description: "Write 10 entries", Icon: "📝", Category: CategoryEntries, Threshold: 10},
	{Key: "entries_50", Name: "Never Idle", Description: "Write 50 entries", Icon: "📖", Category: CategoryEntries, Threshold: 50},
	{Key: "entries_100", Name: "Century", Description: "Write 100 entries", Icon: "📚", Category: CategoryEntries, Threshold: 100},
	{Key: "entries_365", Name: "Diarist", Description: "Write 365 entries", Icon: "🎓", Category: CategoryEntries, Threshold: 365},

	{Key: "words_10000", Name: "Ten Thousand", Description: "Write 10,000 words in total", Icon: "✍️", Category: CategoryWords, Threshold: 10000},
	{Key: "words_50000", Name: "Fifty Thousand", Description: "Write 50,000 words in total", Icon: "📜", Category: CategoryWords, Threshold: 50000},
	{Key: "words_100000", Name: "Long Form", Description: "Write 100,000 words in total", Icon: "🏅", Category: CategoryWords, Threshold: 100000},

	{Key: KeyFirstEntry, Name: "First Step", Description: "Write your first entry", Icon: "🌱", Category: CategorySpecial, Threshold: 1},
	{Key: KeyMoodVariety, Name: "Full Palette", Description: "Use every mood at least once", Icon: "🎭", Category: CategorySpecial, Threshold: len(Moods)},
	{Key: KeyTagMaster, Name: "Tag Collector", Description: "Create 10 different tags", Icon: "🏷️", Category: CategorySpecial, Threshold: 10},
}

// Catalog returns a copy of the achievement catalog in definition order.
func Catalog() []AchievementDefinition {
	out := make([]AchievementDefinition, len(catalog))
	copy(out, catalog)
	return out
}

// LookupAchievement returns the catalog definition for key.
func LookupAchievement(key string) (AchievementDefinition, bool) {
	for _, def := range catalog {
		if def.Key == key {
			return def, true
		}
	}
	return AchievementDefinition{}, false
}

// AchievementRecord marks one achievement as unlocked for a user.
// Records are created once and never updated or deleted.
type AchievementRecord struct {
	Key            string    `json:"key"`
	UserID         string    `json:"user_id"`
	AchievementKey string    `json:"achievement_key"`
	UnlockedAt     time.Time `json:"unlocked_at"`
}

// SetKey sets the database key for this record.
func (a *AchievementRecord) SetKey(key string) {
	a.Key = key
}

// GetKey returns the database key for this record.
func (a *AchievementRecord) GetKey() string {
	return a.Key
}

// GenerateAchievementKey generates the database key for a user's achievement.
// One key per (user, achievement) is the uniqueness constraint on unlocks.
func GenerateAchievementKey(userID, achievementKey string) string {
	return joinKey(PrefixAchievement, userID, achievementKey)
}

// NewAchievementRecord creates a record for an unlock happening at unlockedAt.
func NewAchievementRecord(userID, achievementKey string, unlockedAt time.Time) *AchievementRecord {
	return &AchievementRecord{
		Key:            GenerateAchievementKey(userID, achievementKey),
		UserID:         userID,
		AchievementKey: achievementKey,
		UnlockedAt:     unlockedAt,
	}
}
