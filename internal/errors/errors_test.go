package errors

import (
	"errors"
	"fmt"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// UserError Tests
// =============================================================================

func TestUserErrorError(t *testing.T) {
	err := NewUserError("Title is required", "Pass --title")
	assert.Equal(t, "Title is required", err.Error())

	withField := NewUserErrorWithField("mood", "bored", "Unknown mood", "Pick another")
	assert.Equal(t, "Unknown mood: 'bored'", withField.Error())
}

func TestUserErrorUnwrapsCause(t *testing.T) {
	err := &UserError{Message: "bad goal", Cause: ErrInvalidGoal}
	assert.True(t, errors.Is(err, ErrInvalidGoal))
	assert.True(t, IsUserError(fmt.Errorf("wrapped: %w", err)))

	ue, ok := AsUserError(fmt.Errorf("wrapped: %w", err))
	require.True(t, ok)
	assert.Equal(t, "bad goal", ue.Message)
}

// =============================================================================
// SystemError Tests
// =============================================================================

func TestSystemError(t *testing.T) {
	cause := errors.New("io failure")
	err := NewSystemErrorWithOp("open", "cannot open database", cause)

	assert.Equal(t, "cannot open database during open", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.True(t, IsSystemError(err))

	se, ok := AsSystemError(err)
	require.True(t, ok)
	assert.Equal(t, "open", se.Op)

	assert.Equal(t, "plain", NewSystemError("plain", nil).Error())
}

// =============================================================================
// StoreFailure Tests
// =============================================================================

func TestStoreFailure(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, StoreFailure("count", nil))
	})

	t.Run("wraps as recoverable", func(t *testing.T) {
		cause := errors.New("iterator closed")
		err := StoreFailure("count_entries", cause)

		assert.True(t, IsRecoverableError(err))
		assert.ErrorIs(t, err, cause)
		assert.ErrorIs(t, err, ErrStoreUnavailable)
		assert.Contains(t, err.Error(), "count_entries")

		re, ok := AsRecoverableError(err)
		require.True(t, ok)
		assert.Equal(t, "count_entries", re.Op)
	})

	t.Run("does not double wrap", func(t *testing.T) {
		first := StoreFailure("a", errors.New("x"))
		second := StoreFailure("b", first)
		assert.Same(t, first, second)
	})

	t.Run("leaves user errors alone", func(t *testing.T) {
		ue := NewUserError("bad", "")
		assert.Same(t, ue, StoreFailure("a", ue))
	})
}

func TestSentinelHelpers(t *testing.T) {
	assert.True(t, IsConflict(fmt.Errorf("insert: %w", ErrConflict)))
	assert.False(t, IsConflict(errors.New("other")))

	assert.True(t, IsNotFound(ErrEntryNotFound))
	assert.True(t, IsNotFound(fmt.Errorf("get: %w", ErrGoalNotFound)))
	assert.False(t, IsNotFound(ErrConflict))
}

func TestWrap(t *testing.T) {
	assert.Nil(t, Wrap(nil, "ctx"))
	assert.Nil(t, Wrapf(nil, "ctx %d", 1))

	base := errors.New("base")
	err := Wrapf(base, "loading %s", "goal")
	assert.Equal(t, "loading goal: base", err.Error())
	assert.ErrorIs(t, err, base)
}

// =============================================================================
// Classification Tests
// =============================================================================

func TestCategoryString(t *testing.T) {
	assert.Equal(t, "user", CategoryUser.String())
	assert.Equal(t, "system", CategorySystem.String())
	assert.Equal(t, "recoverable", CategoryRecoverable.String())
	assert.Equal(t, "unknown", CategoryUnknown.String())
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Category
	}{
		{"nil", nil, CategoryUnknown},
		{"user error", NewUserError("x", ""), CategoryUser},
		{"not found", ErrEntryNotFound, CategoryUser},
		{"store failure", StoreFailure("op", errors.New("x")), CategoryRecoverable},
		{"system error", NewSystemError("x", nil), CategorySystem},
		{"enospc", fmt.Errorf("write: %w", syscall.ENOSPC), CategorySystem},
		{"corrupted", ErrDatabaseCorrupted, CategorySystem},
		{"plain", errors.New("x"), CategoryUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}

func TestFormatByCategory(t *testing.T) {
	assert.Equal(t, "", FormatByCategory(nil))

	msg := FormatByCategory(ErrEntryNotFound)
	assert.Contains(t, msg, "entry not found")
	assert.Contains(t, msg, "diary list")

	msg = FormatByCategory(NewUserError("Goal out of range", "Use 50-10000"))
	assert.Contains(t, msg, "Try: Use 50-10000")

	msg = FormatByCategory(StoreFailure("heatmap", errors.New("boom")))
	assert.Contains(t, msg, "try again")

	msg = FormatByCategory(NewSystemError("disk gone", nil))
	assert.Contains(t, msg, "System error: disk gone")
}
