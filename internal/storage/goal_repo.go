package storage

import (
	"fmt"
	"time"

	"github.com/nova728/diary/internal/errors"
	"github.com/nova728/diary/internal/model"
)

// GoalRepo provides operations for WritingGoal entities.
type GoalRepo struct {
	db *DB
}

// NewGoalRepo creates a new goal repository.
func NewGoalRepo(db *DB) *GoalRepo {
	return &GoalRepo{db: db}
}

// Get retrieves the goal of a user. It returns errors.ErrGoalNotFound when none exists.
func (r *GoalRepo) Get(userID string) (*model.WritingGoal, error) {
	goal := &model.WritingGoal{}
	if err := r.db.Get(model.GenerateGoalKey(userID), goal); err != nil {
		if IsErrKeyNotFound(err) {
			return nil, fmt.Errorf("%w: %s", errors.ErrGoalNotFound, userID)
		}
		return nil, err
	}
	return goal, nil
}

// GetOrCreate retrieves the goal of a user, creating it with defaults when absent.
// This operation is atomic to prevent race conditions.
func (r *GoalRepo) GetOrCreate(userID string, now time.Time) (*model.WritingGoal, bool, error) {
	result, created, err := r.db.GetOrCreate(model.GenerateGoalKey(userID), &model.WritingGoal{}, func() model.Model {
		return model.NewWritingGoal(userID, now)
	})
	if err != nil {
		return nil, false, err
	}
	return result.(*model.WritingGoal), created, nil
}

// Update stores the goal.
func (r *GoalRepo) Update(goal *model.WritingGoal) error {
	goal.Key = model.GenerateGoalKey(goal.UserID)
	return r.db.Set(goal)
}
