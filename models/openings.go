package models

import "time"

// EventWindow is the occupied interval of one remote calendar event.
type EventWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// DayInfo identifies the calendar date behind a weekday column.
type DayInfo struct {
	Month string `json:"month"` // e.g. "May"
	Day   string `json:"day"`   // e.g. "09"
	Year  string `json:"year"`  // e.g. "2021"
}

// WeekInfo maps weekday labels to the concrete dates of one displayed week.
type WeekInfo map[string]DayInfo

// WeekOpenings maps weekday labels to the ordered time blocks that are both
// marked available and free of conflicting calendar events. Derived data;
// cached per week offset but never persisted.
type WeekOpenings map[string][]string

// WeekSchedule bundles the derived results for one week offset.
type WeekSchedule struct {
	Info     WeekInfo     `json:"week"`
	Openings WeekOpenings `json:"openings"`
}
