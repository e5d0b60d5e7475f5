package stats

import (
	"time"

	"github.com/nova728/diary/internal/model"
	"github.com/nova728/diary/internal/storage"
)

// EntryStore is the read side of the entry store the engine aggregates over.
// *storage.EntryRepo implements it.
type EntryStore interface {
	Count(userID string, filter storage.EntryFilter) (int, error)
	SumWords(userID string, filter storage.EntryFilter) (int, error)
	DistinctMoods(userID string, filter storage.EntryFilter) (int, error)
	MoodCounts(userID string, filter storage.EntryFilter) (map[model.Mood]int, error)
	Dates(userID string) ([]model.Date, error)
	DailyActivity(userID string, year int) ([]model.DayActivity, error)
	Random(userID string) (*model.Entry, error)
	ByMonthDay(userID string, month time.Month, day int) ([]*model.Entry, error)
	YearPage(userID string, year, offset, limit int) ([]*model.Entry, int, error)
	Years(userID string) ([]int, error)
	TagUsage(userID string, limit int) ([]model.TagCount, error)
}

// TagStore counts a user's tags.
type TagStore interface {
	Count(userID string) (int, error)
}

// AchievementStore persists unlock records. Insert must return an error
// matching errors.ErrConflict when the (user, key) record already exists.
type AchievementStore interface {
	Insert(record *model.AchievementRecord) error
	List(userID string) ([]*model.AchievementRecord, error)
}

// GoalStore persists writing goals.
type GoalStore interface {
	GetOrCreate(userID string, now time.Time) (*model.WritingGoal, bool, error)
	Update(goal *model.WritingGoal) error
}

var (
	_ EntryStore       = (*storage.EntryRepo)(nil)
	_ TagStore         = (*storage.TagRepo)(nil)
	_ AchievementStore = (*storage.AchievementRepo)(nil)
	_ GoalStore        = (*storage.GoalRepo)(nil)
)
