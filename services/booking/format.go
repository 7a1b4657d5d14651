package booking

import (
	"fmt"
	"strings"
	"time"

	"glowbook/models"
)

// formatApptDate renders a slot start as e.g. "Monday, May 10th".
func formatApptDate(t time.Time) string {
	return fmt.Sprintf("%s %s", t.Format("Monday, January"), ordinal(t.Day()))
}

// formatClock renders a slot boundary as e.g. "5:00pm".
func formatClock(t time.Time) string {
	return strings.ToLower(t.Format("3:04PM"))
}

func slotTimes(start time.Time, slotLen time.Duration) models.SlotTimes {
	return models.SlotTimes{
		Start: formatClock(start),
		End:   formatClock(start.Add(slotLen)),
	}
}

func ordinal(day int) string {
	suffix := "th"
	if day%100 < 11 || day%100 > 13 {
		switch day % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", day, suffix)
}

// friendlyTimezoneLabel returns a human-readable timezone string for the
// booking pages, with a nicer form for the studio's home zone.
func friendlyTimezoneLabel(tzName string, now time.Time, loc *time.Location) string {
	if tzName == "America/Chicago" {
		switch now.In(loc).Format("MST") {
		case "CDT":
			return "Central Daylight Time"
		case "CST":
			return "Central Standard Time"
		}
	}
	return "the " + tzName + " timezone"
}
