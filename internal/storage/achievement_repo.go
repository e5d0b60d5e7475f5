package storage

import (
	"github.com/nova728/diary/internal/model"
)

// AchievementRepo provides operations for AchievementRecord entities.
// Records are only ever inserted.
type AchievementRepo struct {
	db *DB
}

// NewAchievementRepo creates a new achievement repository.
func NewAchievementRepo(db *DB) *AchievementRepo {
	return &AchievementRepo{db: db}
}

// Insert stores a record unless one already exists for the same user and key,
// in which case it returns errors.ErrConflict.
func (r *AchievementRepo) Insert(record *model.AchievementRecord) error {
	record.Key = model.GenerateAchievementKey(record.UserID, record.AchievementKey)
	return r.db.Insert(record)
}

// List retrieves every achievement record of a user.
func (r *AchievementRepo) List(userID string) ([]*model.AchievementRecord, error) {
	return GetAllByPrefix(r.db, model.UserPrefix(model.PrefixAchievement, userID), func() *model.AchievementRecord {
		return &model.AchievementRecord{}
	})
}
