package storage

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nova728/diary/internal/model"
)

// TagRepo provides operations for Tag entities.
type TagRepo struct {
	db *DB
}

// NewTagRepo creates a new tag repository.
func NewTagRepo(db *DB) *TagRepo {
	return &TagRepo{db: db}
}

// FindOrCreate returns the user's tag with the given name, creating it on first
// use. Names are trimmed and matched case-insensitively; the first spelling wins.
func (r *TagRepo) FindOrCreate(userID, name string, now time.Time) (*model.Tag, bool, error) {
	name = model.NormalizeTagName(name)
	key := model.GenerateTagKey(userID, name)

	result, created, err := r.db.GetOrCreate(key, &model.Tag{}, func() model.Model {
		return &model.Tag{
			ID:        uuid.NewString(),
			UserID:    userID,
			Name:      name,
			CreatedAt: now,
		}
	})
	if err != nil {
		return nil, false, fmt.Errorf("find or create tag %q: %w", name, err)
	}
	return result.(*model.Tag), created, nil
}

// List retrieves all tags of a user ordered by lower-cased name.
func (r *TagRepo) List(userID string) ([]*model.Tag, error) {
	return GetAllByPrefix(r.db, model.UserPrefix(model.PrefixTag, userID), func() *model.Tag {
		return &model.Tag{}
	})
}

// Count returns the number of distinct tags a user owns.
func (r *TagRepo) Count(userID string) (int, error) {
	return r.db.CountByPrefix(model.UserPrefix(model.PrefixTag, userID))
}
