// Package scheduling computes bookable openings for a displayed week by
// merging the recurring weekly availability template against the live
// calendar events of that week.
package scheduling

import (
	"time"

	"glowbook/models"
)

// ComputeWeek derives (WeekInfo, WeekOpenings) for the week `offset` weeks
// ahead of `now`. offset 0 anchors on now itself; a future week anchors on
// its Sunday at local midnight. A time block is open when its slot starts
// strictly after now, the template marks it available, and the slot interval
// [start, start+slotLen) overlaps no event. Exact abutment with an event is
// not a conflict.
//
// The reference instant is an explicit parameter (with its location) so the
// computation stays deterministic; inputs are never mutated.
func ComputeWeek(
	avail models.WeeklyAvailability,
	events []models.EventWindow,
	offset int,
	slotLen time.Duration,
	now time.Time,
) (models.WeekInfo, models.WeekOpenings) {
	loc := now.Location()

	anchor := now
	if offset != 0 {
		d := now.AddDate(0, 0, offset*7-int(now.Weekday()))
		anchor = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
	}

	// Sunday of the anchor week, at local midnight.
	ws := anchor.AddDate(0, 0, -int(anchor.Weekday()))
	weekStart := time.Date(ws.Year(), ws.Month(), ws.Day(), 0, 0, 0, 0, loc)

	info := make(models.WeekInfo, len(models.Days))
	openings := make(models.WeekOpenings, len(models.Days))

	for i := 0; i < 7; i++ {
		day := weekStart.AddDate(0, 0, i)
		label := day.Format("Mon")
		info[label] = models.DayInfo{
			Month: day.Format("Jan"),
			Day:   day.Format("02"),
			Year:  day.Format("2006"),
		}
		openings[label] = []string{}

		for _, tb := range models.TimeBlocks {
			start := time.Date(day.Year(), day.Month(), day.Day(),
				blockHour(tb), blockMinute(tb), 0, 0, loc)
			end := start.Add(slotLen)

			// Past slots within the current week are excluded.
			if !start.After(now) {
				continue
			}
			if !avail.IsOpen(label, tb) {
				continue
			}
			if conflicts(start, end, events) {
				continue
			}
			openings[label] = append(openings[label], tb)
		}
	}

	return info, openings
}

// conflicts reports whether the candidate slot [start, end) intersects any
// event. Half-open intervals: a slot ending exactly when an event starts, or
// starting exactly when one ends, does not conflict.
func conflicts(start, end time.Time, events []models.EventWindow) bool {
	for _, ev := range events {
		if end.After(ev.Start) && ev.End.After(start) {
			return true
		}
	}
	return false
}

// WeekWindow returns the [min, max] instants bounding the displayed week for
// event listing: from the anchor instant through the end of that week's
// Saturday.
func WeekWindow(offset int, now time.Time) (time.Time, time.Time) {
	loc := now.Location()

	anchor := now
	if offset != 0 {
		d := now.AddDate(0, 0, offset*7-int(now.Weekday()))
		anchor = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
	}

	sat := anchor.AddDate(0, 0, 6-int(anchor.Weekday()))
	end := time.Date(sat.Year(), sat.Month(), sat.Day(), 23, 59, 59, 999999000, loc)
	return anchor, end
}

// blockHour and blockMinute parse the "HHMM" time-block label. Labels come
// from the fixed TimeBlocks sequence, so they are always four digits.
func blockHour(tb string) int {
	return int(tb[0]-'0')*10 + int(tb[1]-'0')
}

func blockMinute(tb string) int {
	return int(tb[2]-'0')*10 + int(tb[3]-'0')
}
