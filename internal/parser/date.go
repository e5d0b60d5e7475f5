// Package parser turns natural language date input into calendar dates.
package parser

import (
	"regexp"
	"strings"
	"time"

	"github.com/markusmobius/go-dateparser"

	"github.com/nova728/diary/internal/model"
)

// ParseDate parses an entry date relative to now. It accepts YYYY-MM-DD,
// "today", "yesterday", "tomorrow" and anything go-dateparser understands,
// such as "3 days ago" or "5 March 2024". Empty input means today.
func ParseDate(input string, now time.Time) (model.Date, error) {
	input = strings.TrimSpace(input)
	today := model.DateOf(now)

	switch strings.ToLower(input) {
	case "", "today", "now":
		return today, nil
	case "yesterday":
		return today.AddDays(-1), nil
	case "tomorrow":
		return today.AddDays(1), nil
	}

	if d, err := model.ParseDate(input); err == nil {
		return d, nil
	}

	cfg := &dateparser.Configuration{
		CurrentTime: now,
	}
	result, err := dateparser.Parse(cfg, input)
	if err != nil || result.Time.IsZero() {
		return model.Date{}, NewDateError(input)
	}
	return model.DateOf(result.Time), nil
}

// Period is an inclusive date range. Zero bounds are open.
type Period struct {
	From  model.Date
	Until model.Date
}

// periodRegex matches period expressions like "week", "this week", "last month".
var periodRegex = regexp.MustCompile(`(?i)^(?:(this|current|last|previous)\s+)?(week|month|year)$`)

// ParsePeriod parses a named period relative to today: "all", "today",
// "yesterday", "this|last week|month|year", "YYYY", or a single date.
func ParsePeriod(input string, today model.Date) (Period, error) {
	input = strings.ToLower(strings.TrimSpace(input))

	switch input {
	case "", "all":
		return Period{}, nil
	case "today":
		return Period{From: today, Until: today}, nil
	case "yesterday":
		y := today.AddDays(-1)
		return Period{From: y, Until: y}, nil
	}

	if match := periodRegex.FindStringSubmatch(input); match != nil {
		last := match[1] == "last" || match[1] == "previous"
		return periodOf(match[2], last, today), nil
	}

	if t, err := time.Parse("2006", input); err == nil {
		first, end := model.YearBounds(t.Year())
		return Period{From: first, Until: end}, nil
	}

	if d, err := model.ParseDate(input); err == nil {
		return Period{From: d, Until: d}, nil
	}

	return Period{}, NewPeriodError(input)
}

func periodOf(unit string, last bool, today model.Date) Period {
	switch unit {
	case "week":
		start := today.AddDays(1 - today.ISOWeekday())
		if last {
			start = start.AddDays(-7)
		}
		return Period{From: start, Until: start.AddDays(6)}

	case "month":
		year, month := today.Year(), today.Month()
		if last {
			month--
		}
		start := model.NewDate(year, month, 1)
		return Period{From: start, Until: model.NewDate(start.Year(), start.Month()+1, 0)}

	default: // year
		year := today.Year()
		if last {
			year--
		}
		first, end := model.YearBounds(year)
		return Period{From: first, Until: end}
	}
}
