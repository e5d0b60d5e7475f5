package stats

import (
	"context"

	"github.com/nova728/diary/internal/errors"
	"github.com/nova728/diary/internal/logging"
	"github.com/nova728/diary/internal/model"
	"github.com/nova728/diary/internal/validate"
)

// Intensity is the shading level of a heatmap cell.
type Intensity int

const (
	IntensityNone Intensity = iota
	IntensityLow
	IntensityMedium
	IntensityHigh
	IntensityMax
)

// IntensityOf maps a day's entry count to its shading level:
// 0, 1, 2, 3-4 and 5 or more.
func IntensityOf(count int) Intensity {
	switch {
	case count <= 0:
		return IntensityNone
	case count == 1:
		return IntensityLow
	case count == 2:
		return IntensityMedium
	case count <= 4:
		return IntensityHigh
	default:
		return IntensityMax
	}
}

// HeatmapDay is the activity of one calendar day.
type HeatmapDay struct {
	Date  model.Date `json:"date"`
	Count int        `json:"count"`
	Words int        `json:"words"`
}

// HeatmapStats summarizes the active days of a heatmap.
type HeatmapStats struct {
	TotalDays    int `json:"total_days"`
	TotalEntries int `json:"total_entries"`
	TotalWords   int `json:"total_words"`
}

// Heatmap holds one cell for every day of a year.
type Heatmap struct {
	Year  int          `json:"year"`
	Days  []HeatmapDay `json:"days"`
	Stats HeatmapStats `json:"stats"`
}

// BuildHeatmap fills every day of year from the sparse activity of its active
// days. Activity outside the year is ignored.
func BuildHeatmap(year int, activity []model.DayActivity) *Heatmap {
	byDate := make(map[string]model.DayActivity, len(activity))
	for _, a := range activity {
		if a.Date.Year() == year {
			byDate[a.Date.String()] = a
		}
	}

	first, _ := model.YearBounds(year)
	n := model.DaysInYear(year)
	h := &Heatmap{Year: year, Days: make([]HeatmapDay, n)}
	for i := range n {
		d := first.AddDays(i)
		day := HeatmapDay{Date: d}
		if a, ok := byDate[d.String()]; ok && a.Count > 0 {
			day.Count, day.Words = a.Count, a.Words
			h.Stats.TotalDays++
			h.Stats.TotalEntries += a.Count
			h.Stats.TotalWords += a.Words
		}
		h.Days[i] = day
	}
	return h
}

// Heatmap builds the user's activity heatmap for year. A failed read fails
// the whole heatmap.
func (s *Service) Heatmap(ctx context.Context, userID string, year int) (*Heatmap, error) {
	if err := validate.Year(year); err != nil {
		return nil, err
	}
	activity, err := s.entries.DailyActivity(userID, year)
	if err != nil {
		return nil, errors.StoreFailure("heatmap", err)
	}
	h := BuildHeatmap(year, activity)
	logging.DebugContext(ctx, "heatmap built", logging.KeyYear, year, logging.KeyCount, h.Stats.TotalDays)
	return h, nil
}
