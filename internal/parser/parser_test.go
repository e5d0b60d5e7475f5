package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nova728/diary/internal/errors"
	"github.com/nova728/diary/internal/model"
)

// now is Friday 2025-03-14.
var now = time.Date(2025, 3, 14, 15, 4, 0, 0, time.UTC)

func TestParseDate(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", "2025-03-14"},
		{"today", "2025-03-14"},
		{"  NOW ", "2025-03-14"},
		{"yesterday", "2025-03-13"},
		{"Tomorrow", "2025-03-15"},
		{"2024-02-29", "2024-02-29"},
		{"3 days ago", "2025-03-11"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDate(tt.input, now)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestParseDateUsesNowLocation(t *testing.T) {
	late := time.Date(2025, 3, 14, 23, 30, 0, 0, time.FixedZone("UTC-5", -5*3600))
	got, err := ParseDate("today", late)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-14", got.String())
}

func TestParseDateInvalid(t *testing.T) {
	_, err := ParseDate("the day the music died", now)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrInvalidDate)

	var pe *DateParseError
	require.ErrorAs(t, err, &pe)
	assert.Contains(t, pe.FormatWithExamples(), "Valid examples:")

	ue := pe.ToUserError()
	assert.True(t, errors.IsUserError(ue))
	assert.ErrorIs(t, ue, errors.ErrInvalidDate)
}

func TestParsePeriod(t *testing.T) {
	today := model.DateOf(now)

	tests := []struct {
		input     string
		from, end string
	}{
		{"today", "2025-03-14", "2025-03-14"},
		{"yesterday", "2025-03-13", "2025-03-13"},
		{"week", "2025-03-10", "2025-03-16"},
		{"month", "2025-03-01", "2025-03-31"},
		{"this week", "2025-03-10", "2025-03-16"},
		{"last week", "2025-03-03", "2025-03-09"},
		{"current month", "2025-03-01", "2025-03-31"},
		{"last month", "2025-02-01", "2025-02-28"},
		{"this year", "2025-01-01", "2025-12-31"},
		{"previous year", "2024-01-01", "2024-12-31"},
		{"2023", "2023-01-01", "2023-12-31"},
		{"2024-07-04", "2024-07-04", "2024-07-04"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p, err := ParsePeriod(tt.input, today)
			require.NoError(t, err)
			assert.Equal(t, tt.from, p.From.String())
			assert.Equal(t, tt.end, p.Until.String())
		})
	}
}

func TestParsePeriodOpen(t *testing.T) {
	p, err := ParsePeriod("all", model.DateOf(now))
	require.NoError(t, err)
	assert.True(t, p.From.IsZero())
	assert.True(t, p.Until.IsZero())
}

func TestParsePeriodLastMonthInJanuary(t *testing.T) {
	p, err := ParsePeriod("last month", model.MustParseDate("2025-01-20"))
	require.NoError(t, err)
	assert.Equal(t, "2024-12-01", p.From.String())
	assert.Equal(t, "2024-12-31", p.Until.String())
}

func TestParsePeriodInvalid(t *testing.T) {
	_, err := ParsePeriod("fortnight", model.DateOf(now))
	assert.ErrorIs(t, err, errors.ErrInvalidDate)
}
