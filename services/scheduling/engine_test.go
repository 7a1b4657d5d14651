package scheduling

import (
	"reflect"
	"testing"
	"time"

	"glowbook/models"
)

var chicago = time.FixedZone("CST", -6*60*60)

// monday returns the Monday of a fixed reference week at the given clock
// time. 2024-06-03 is a Monday.
func monday(hour, min int) time.Time {
	return time.Date(2024, time.June, 3, hour, min, 0, 0, chicago)
}

func availWith(day string, blocks ...string) models.WeeklyAvailability {
	avail := models.NewWeeklyAvailability()
	for _, tb := range blocks {
		avail[day][tb] = true
	}
	return avail
}

func TestComputeWeek_EmptyEventsReflectsAvailability(t *testing.T) {
	t.Parallel()

	avail := availWith("Tue", "0900", "1300", "1800")
	now := monday(8, 0)

	_, openings := ComputeWeek(avail, nil, 0, time.Hour, now)

	want := []string{"0900", "1300", "1800"}
	if !reflect.DeepEqual(openings["Tue"], want) {
		t.Fatalf("Tue openings = %v, want %v", openings["Tue"], want)
	}
	for _, d := range []string{"Wed", "Thu", "Fri", "Sat"} {
		if len(openings[d]) != 0 {
			t.Errorf("%s openings = %v, want none", d, openings[d])
		}
	}
}

func TestComputeWeek_FutureOnlyWithinCurrentWeek(t *testing.T) {
	t.Parallel()

	avail := availWith("Mon", "0900", "1400")
	// Monday noon: the 0900 block is already past, 1400 is still ahead.
	now := monday(12, 0)

	_, openings := ComputeWeek(avail, nil, 0, time.Hour, now)

	want := []string{"1400"}
	if !reflect.DeepEqual(openings["Mon"], want) {
		t.Fatalf("Mon openings = %v, want %v", openings["Mon"], want)
	}
}

func TestComputeWeek_SlotStartingExactlyNowIsExcluded(t *testing.T) {
	t.Parallel()

	avail := availWith("Mon", "0900")
	now := monday(9, 0)

	_, openings := ComputeWeek(avail, nil, 0, time.Hour, now)

	if len(openings["Mon"]) != 0 {
		t.Fatalf("slot starting exactly at now should be excluded, got %v", openings["Mon"])
	}
}

func TestComputeWeek_FutureWeekIgnoresTimeOfDay(t *testing.T) {
	t.Parallel()

	avail := availWith("Mon", "0800")
	// Late Saturday evening; next week's Monday 0800 must still be open.
	now := time.Date(2024, time.June, 8, 22, 0, 0, 0, chicago)

	info, openings := ComputeWeek(avail, nil, 1, time.Hour, now)

	if !reflect.DeepEqual(openings["Mon"], []string{"0800"}) {
		t.Fatalf("Mon openings = %v, want [0800]", openings["Mon"])
	}
	if info["Mon"].Day != "10" || info["Mon"].Month != "Jun" || info["Mon"].Year != "2024" {
		t.Fatalf("Mon date = %+v, want Jun 10 2024", info["Mon"])
	}
}

func TestComputeWeek_Scenarios(t *testing.T) {
	t.Parallel()

	t.Run("single open block before now stays open", func(t *testing.T) {
		t.Parallel()
		avail := availWith("Mon", "0900")
		now := monday(8, 0)

		_, openings := ComputeWeek(avail, nil, 0, time.Hour, now)
		if !reflect.DeepEqual(openings["Mon"], []string{"0900"}) {
			t.Fatalf("Mon openings = %v, want [0900]", openings["Mon"])
		}
	})

	t.Run("full overlap removes the block", func(t *testing.T) {
		t.Parallel()
		avail := availWith("Mon", "0900")
		events := []models.EventWindow{{Start: monday(9, 0), End: monday(10, 0)}}
		now := monday(8, 0)

		_, openings := ComputeWeek(avail, events, 0, time.Hour, now)
		if len(openings["Mon"]) != 0 {
			t.Fatalf("Mon openings = %v, want none", openings["Mon"])
		}
	})

	t.Run("abutting end is free, identical start conflicts", func(t *testing.T) {
		t.Parallel()
		avail := availWith("Mon", "0900", "0930")
		events := []models.EventWindow{{Start: monday(9, 30), End: monday(10, 0)}}
		now := monday(8, 0)

		// 30-minute slots: [0900,0930) abuts the event and stays open;
		// [0930,1000) coincides with it exactly and conflicts.
		_, openings := ComputeWeek(avail, events, 0, 30*time.Minute, now)
		if !reflect.DeepEqual(openings["Mon"], []string{"0900"}) {
			t.Fatalf("Mon openings = %v, want [0900]", openings["Mon"])
		}
	})

	t.Run("slot starting exactly at event end is free", func(t *testing.T) {
		t.Parallel()
		avail := availWith("Mon", "1000")
		events := []models.EventWindow{{Start: monday(9, 0), End: monday(10, 0)}}
		now := monday(8, 0)

		_, openings := ComputeWeek(avail, events, 0, time.Hour, now)
		if !reflect.DeepEqual(openings["Mon"], []string{"1000"}) {
			t.Fatalf("Mon openings = %v, want [1000]", openings["Mon"])
		}
	})
}

func TestConflicts_BoundarySemantics(t *testing.T) {
	t.Parallel()

	evStart := monday(10, 0)
	evEnd := monday(11, 0)
	events := []models.EventWindow{{Start: evStart, End: evEnd}}

	cases := []struct {
		name       string
		start, end time.Time
		want       bool
	}{
		{"slot ends when event starts", monday(9, 0), evStart, false},
		{"slot starts when event ends", evEnd, monday(12, 0), false},
		{"slot overlaps event head", monday(9, 30), monday(10, 30), true},
		{"slot overlaps event tail", monday(10, 30), monday(11, 30), true},
		{"slot inside event", monday(10, 15), monday(10, 45), true},
		{"event inside slot", monday(9, 0), monday(12, 0), true},
		{"disjoint", monday(12, 0), monday(13, 0), false},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := conflicts(tc.start, tc.end, events); got != tc.want {
				t.Fatalf("conflicts(%v, %v) = %v, want %v", tc.start, tc.end, got, tc.want)
			}
		})
	}
}

func TestComputeWeek_EmptyAvailabilityYieldsNoOpenings(t *testing.T) {
	t.Parallel()

	now := monday(8, 0)
	_, openings := ComputeWeek(models.WeeklyAvailability{}, nil, 0, time.Hour, now)

	for _, d := range models.Days {
		if len(openings[d]) != 0 {
			t.Errorf("%s openings = %v, want none", d, openings[d])
		}
	}
}

func TestComputeWeek_PureAndNonMutating(t *testing.T) {
	t.Parallel()

	avail := availWith("Wed", "1000", "1030")
	events := []models.EventWindow{{Start: monday(10, 0).AddDate(0, 0, 2), End: monday(10, 30).AddDate(0, 0, 2)}}
	now := monday(8, 0)
	snapshot := avail.Clone()

	info1, open1 := ComputeWeek(avail, events, 0, 30*time.Minute, now)
	info2, open2 := ComputeWeek(avail, events, 0, 30*time.Minute, now)

	if !reflect.DeepEqual(info1, info2) || !reflect.DeepEqual(open1, open2) {
		t.Fatal("identical inputs produced different results")
	}
	if !reflect.DeepEqual(avail, snapshot) {
		t.Fatal("availability template was mutated")
	}
}

func TestComputeWeek_WeekInfoCoversAllSevenDays(t *testing.T) {
	t.Parallel()

	// Thursday of the reference week.
	now := time.Date(2024, time.June, 6, 14, 0, 0, 0, chicago)
	info, openings := ComputeWeek(models.NewWeeklyAvailability(), nil, 0, time.Hour, now)

	for _, d := range models.Days {
		if _, ok := info[d]; !ok {
			t.Errorf("week info missing %s", d)
		}
		if _, ok := openings[d]; !ok {
			t.Errorf("openings missing %s", d)
		}
	}
	if info["Sun"].Day != "02" {
		t.Errorf("Sun date = %+v, want Jun 02", info["Sun"])
	}
	if info["Sat"].Day != "08" {
		t.Errorf("Sat date = %+v, want Jun 08", info["Sat"])
	}
}

func TestWeekWindow(t *testing.T) {
	t.Parallel()

	now := monday(12, 0)

	t.Run("current week runs from now to Saturday night", func(t *testing.T) {
		t.Parallel()
		min, max := WeekWindow(0, now)
		if !min.Equal(now) {
			t.Errorf("min = %v, want %v", min, now)
		}
		if max.Day() != 8 || max.Hour() != 23 || max.Minute() != 59 {
			t.Errorf("max = %v, want end of Saturday Jun 8", max)
		}
	})

	t.Run("future week starts on its Sunday midnight", func(t *testing.T) {
		t.Parallel()
		min, _ := WeekWindow(2, now)
		want := time.Date(2024, time.June, 16, 0, 0, 0, 0, chicago)
		if !min.Equal(want) {
			t.Errorf("min = %v, want %v", min, want)
		}
		if min.Weekday() != time.Sunday {
			t.Errorf("future week anchor weekday = %v, want Sunday", min.Weekday())
		}
	})
}
