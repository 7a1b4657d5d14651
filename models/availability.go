package models

// Days holds the weekday labels of the booking week, Sunday first so the
// index lines up with time.Weekday.
var Days = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// TimeBlocks is the fixed ordered sequence of half-hour slot-start labels
// covering the business day.
var TimeBlocks = []string{
	"0800", "0830", "0900", "0930", "1000", "1030", "1100", "1130",
	"1200", "1230", "1300", "1330", "1400", "1430", "1500", "1530",
	"1600", "1630", "1700", "1730", "1800", "1830", "1900", "1930",
	"2000",
}

// WeeklyAvailability is the recurring weekly template: for each weekday
// label, whether each time block is open for booking. It is the sole source
// of recurring availability and is only mutated through the admin edit flow.
type WeeklyAvailability map[string]map[string]bool

// NewWeeklyAvailability returns a template with every block closed.
func NewWeeklyAvailability() WeeklyAvailability {
	avail := make(WeeklyAvailability, len(Days))
	for _, d := range Days {
		blocks := make(map[string]bool, len(TimeBlocks))
		for _, tb := range TimeBlocks {
			blocks[tb] = false
		}
		avail[d] = blocks
	}
	return avail
}

// Normalize fills in any missing day or block entries as closed and drops
// keys outside the known grid, so every day carries exactly one entry per
// time block.
func (a WeeklyAvailability) Normalize() {
	known := make(map[string]bool, len(TimeBlocks))
	for _, tb := range TimeBlocks {
		known[tb] = true
	}
	for day := range a {
		if !knownDay(day) {
			delete(a, day)
		}
	}
	for _, d := range Days {
		if a[d] == nil {
			a[d] = make(map[string]bool, len(TimeBlocks))
		}
		for tb := range a[d] {
			if !known[tb] {
				delete(a[d], tb)
			}
		}
		for _, tb := range TimeBlocks {
			if _, ok := a[d][tb]; !ok {
				a[d][tb] = false
			}
		}
	}
}

func knownDay(day string) bool {
	for _, d := range Days {
		if d == day {
			return true
		}
	}
	return false
}

// IsOpen reports whether the given (weekday, block) pair is marked open.
// Missing entries count as closed.
func (a WeeklyAvailability) IsOpen(day, block string) bool {
	blocks, ok := a[day]
	if !ok {
		return false
	}
	return blocks[block]
}

// Clone returns an independent copy of the template.
func (a WeeklyAvailability) Clone() WeeklyAvailability {
	out := make(WeeklyAvailability, len(a))
	for d, blocks := range a {
		cp := make(map[string]bool, len(blocks))
		for tb, open := range blocks {
			cp[tb] = open
		}
		out[d] = cp
	}
	return out
}
