package model

// DayActivity aggregates the entries written on one calendar date.
type DayActivity struct {
	Date  Date `json:"date"`
	Count int  `json:"count"`
	Words int  `json:"words"`
}

// MoodCount is the number of entries carrying one mood.
type MoodCount struct {
	Mood  Mood `json:"mood"`
	Count int  `json:"count"`
}

// TagCount is the number of entries using one tag.
type TagCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}
