package booking

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"glowbook/cache"
	"glowbook/models"
	"glowbook/services/calendar"
)

// fixedNow is Monday 2024-06-03 08:00 UTC.
var fixedNow = time.Date(2024, time.June, 3, 8, 0, 0, 0, time.UTC)

type fakeCalendar struct {
	tz        string
	events    map[string]*calendar.Event
	nextID    int
	listCalls int

	listErr   error
	insertErr error
	updateErr error
	deleteErr error
}

func newFakeCalendar() *fakeCalendar {
	return &fakeCalendar{tz: "UTC", events: map[string]*calendar.Event{}}
}

func (f *fakeCalendar) ListEvents(_ context.Context, timeMin, timeMax time.Time) ([]models.EventWindow, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	var windows []models.EventWindow
	for _, ev := range f.events {
		if ev.End.After(timeMin) && timeMax.After(ev.Start) {
			windows = append(windows, models.EventWindow{Start: ev.Start, End: ev.End})
		}
	}
	return windows, nil
}

func (f *fakeCalendar) GetEvent(_ context.Context, id string) (*calendar.Event, error) {
	ev, ok := f.events[id]
	if !ok {
		return nil, calendar.ErrEventNotFound
	}
	cp := *ev
	return &cp, nil
}

func (f *fakeCalendar) InsertEvent(_ context.Context, ev *calendar.Event) (*calendar.Event, error) {
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	f.nextID++
	cp := *ev
	cp.ID = fmt.Sprintf("evt-%d", f.nextID)
	f.events[cp.ID] = &cp
	return &cp, nil
}

func (f *fakeCalendar) UpdateEvent(_ context.Context, id string, ev *calendar.Event) (*calendar.Event, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	if _, ok := f.events[id]; !ok {
		return nil, calendar.ErrEventNotFound
	}
	cp := *ev
	cp.ID = id
	f.events[id] = &cp
	return &cp, nil
}

func (f *fakeCalendar) DeleteEvent(_ context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.events[id]; !ok {
		return calendar.ErrEventNotFound
	}
	delete(f.events, id)
	return nil
}

func (f *fakeCalendar) Timezone(_ context.Context) (string, error) {
	return f.tz, nil
}

type fakeAvailability struct {
	avail models.WeeklyAvailability
}

func (f *fakeAvailability) Get(_ context.Context) (models.WeeklyAvailability, error) {
	return f.avail, nil
}

func (f *fakeAvailability) Update(_ context.Context, avail models.WeeklyAvailability) error {
	f.avail = avail
	return nil
}

type fakeNotifier struct {
	confirmations int
	cancellations int
	reschedules   int
	sendErr       error
}

func (f *fakeNotifier) SendConfirmation(*models.BookingSession) error {
	f.confirmations++
	return f.sendErr
}

func (f *fakeNotifier) SendCancellation(*models.BookingSession) error {
	f.cancellations++
	return f.sendErr
}

func (f *fakeNotifier) SendReschedule(*models.BookingSession) error {
	f.reschedules++
	return f.sendErr
}

func (f *fakeNotifier) SendContactMessage(name, email, message string) error {
	return f.sendErr
}

func openAvail(day string, blocks ...string) models.WeeklyAvailability {
	avail := models.NewWeeklyAvailability()
	for _, tb := range blocks {
		avail[day][tb] = true
	}
	return avail
}

func newService(cal *fakeCalendar, avail models.WeeklyAvailability, notify *fakeNotifier) *DefaultBookingService {
	return &DefaultBookingService{
		Dial:            func(context.Context) (calendar.Client, error) { return cal, nil },
		Cache:           cache.NewMemory(),
		Availability:    &fakeAvailability{avail: avail},
		Notification:    notify,
		SlotLen:         time.Hour,
		CacheTTL:        5 * time.Minute,
		DefaultTimezone: "UTC",
		Now:             func() time.Time { return fixedNow },
	}
}

func TestWeekSchedule(t *testing.T) {
	t.Run("reflects availability filtered by events", func(t *testing.T) {
		cal := newFakeCalendar()
		cal.events["busy"] = &calendar.Event{
			ID:    "busy",
			Start: time.Date(2024, time.June, 3, 14, 0, 0, 0, time.UTC),
			End:   time.Date(2024, time.June, 3, 15, 0, 0, 0, time.UTC),
		}
		svc := newService(cal, openAvail("Mon", "1400", "1600"), &fakeNotifier{})
		sess := &models.BookingSession{SessionID: "s1"}

		sched, err := svc.WeekSchedule(context.Background(), sess)
		if err != nil {
			t.Fatalf("WeekSchedule: %v", err)
		}
		if !reflect.DeepEqual(sched.Openings["Mon"], []string{"1600"}) {
			t.Fatalf("Mon openings = %v, want [1600]", sched.Openings["Mon"])
		}
		if sess.TimezoneName != "UTC" {
			t.Errorf("session timezone = %q, want UTC", sess.TimezoneName)
		}
	})

	t.Run("caches per week offset", func(t *testing.T) {
		cal := newFakeCalendar()
		svc := newService(cal, openAvail("Tue", "0900"), &fakeNotifier{})
		sess := &models.BookingSession{SessionID: "s1"}

		for i := 0; i < 3; i++ {
			if _, err := svc.WeekSchedule(context.Background(), sess); err != nil {
				t.Fatalf("WeekSchedule: %v", err)
			}
		}
		if cal.listCalls != 1 {
			t.Fatalf("listCalls = %d, want 1 (cached)", cal.listCalls)
		}

		svc.Navigate(sess, 1)
		if _, err := svc.WeekSchedule(context.Background(), sess); err != nil {
			t.Fatalf("WeekSchedule offset 1: %v", err)
		}
		if cal.listCalls != 2 {
			t.Fatalf("listCalls = %d, want 2 (new offset misses)", cal.listCalls)
		}
	})

	t.Run("warm cache still resolves a fresh session's timezone", func(t *testing.T) {
		cal := newFakeCalendar()
		svc := newService(cal, openAvail("Tue", "0900"), &fakeNotifier{})

		first := &models.BookingSession{SessionID: "s1"}
		if _, err := svc.WeekSchedule(context.Background(), first); err != nil {
			t.Fatalf("WeekSchedule: %v", err)
		}

		// A different visitor hits the already-populated schedule entry.
		second := &models.BookingSession{SessionID: "s2"}
		if _, err := svc.WeekSchedule(context.Background(), second); err != nil {
			t.Fatalf("WeekSchedule: %v", err)
		}
		if second.TimezoneName != "UTC" {
			t.Errorf("timezone name = %q, want UTC", second.TimezoneName)
		}
		if second.TimezoneLabel == "" {
			t.Error("timezone label left empty on a cache hit")
		}
		if cal.listCalls != 1 {
			t.Errorf("listCalls = %d, want 1 (schedule still cached)", cal.listCalls)
		}
	})

	t.Run("dial failure surfaces as connection error", func(t *testing.T) {
		svc := newService(newFakeCalendar(), openAvail("Mon"), &fakeNotifier{})
		svc.Dial = func(context.Context) (calendar.Client, error) {
			return nil, errors.New("no route to host")
		}
		sess := &models.BookingSession{SessionID: "s1"}

		_, err := svc.WeekSchedule(context.Background(), sess)
		if !errors.Is(err, ErrConnection) {
			t.Fatalf("err = %v, want ErrConnection", err)
		}
	})
}

func TestNavigate_ClampsAtZero(t *testing.T) {
	svc := newService(newFakeCalendar(), openAvail("Mon"), &fakeNotifier{})
	sess := &models.BookingSession{SessionID: "s1"}

	svc.Navigate(sess, -1)
	if sess.Offset != 0 {
		t.Fatalf("offset = %d, want 0 after prev at 0", sess.Offset)
	}
	svc.Navigate(sess, 1)
	svc.Navigate(sess, 1)
	svc.Navigate(sess, -1)
	if sess.Offset != 1 {
		t.Fatalf("offset = %d, want 1", sess.Offset)
	}
}

func TestSelectSlot(t *testing.T) {
	t.Run("records the chosen slot", func(t *testing.T) {
		svc := newService(newFakeCalendar(), openAvail("Mon", "0900"), &fakeNotifier{})
		sess := &models.BookingSession{SessionID: "s1"}

		if err := svc.SelectSlot(context.Background(), sess, "Mon", "0900"); err != nil {
			t.Fatalf("SelectSlot: %v", err)
		}
		want := time.Date(2024, time.June, 3, 9, 0, 0, 0, time.UTC)
		if !sess.SlotStart.Equal(want) {
			t.Errorf("slot start = %v, want %v", sess.SlotStart, want)
		}
		if sess.ApptDate != "Monday, June 3rd" {
			t.Errorf("appt date = %q, want %q", sess.ApptDate, "Monday, June 3rd")
		}
		if sess.ApptTime.Start != "9:00am" || sess.ApptTime.End != "10:00am" {
			t.Errorf("appt time = %+v, want 9:00am-10:00am", sess.ApptTime)
		}
	})

	t.Run("rejects a slot taken since the page rendered", func(t *testing.T) {
		cal := newFakeCalendar()
		svc := newService(cal, openAvail("Mon", "0900"), &fakeNotifier{})
		sess := &models.BookingSession{SessionID: "s1"}

		// Warm the cached schedule while the slot is still free.
		if _, err := svc.WeekSchedule(context.Background(), sess); err != nil {
			t.Fatalf("WeekSchedule: %v", err)
		}
		// Another visitor books the same time on the remote calendar.
		cal.events["rival"] = &calendar.Event{
			ID:    "rival",
			Start: time.Date(2024, time.June, 3, 9, 0, 0, 0, time.UTC),
			End:   time.Date(2024, time.June, 3, 10, 0, 0, 0, time.UTC),
		}

		err := svc.SelectSlot(context.Background(), sess, "Mon", "0900")
		if !errors.Is(err, ErrSlotTaken) {
			t.Fatalf("err = %v, want ErrSlotTaken", err)
		}
	})

	t.Run("rejects past blocks", func(t *testing.T) {
		svc := newService(newFakeCalendar(), openAvail("Mon", "0800"), &fakeNotifier{})
		sess := &models.BookingSession{SessionID: "s1"}

		// 0800 has already passed at the fixed 08:00 reference.
		err := svc.SelectSlot(context.Background(), sess, "Mon", "0800")
		if !errors.Is(err, ErrSlotTaken) {
			t.Fatalf("err = %v, want ErrSlotTaken", err)
		}
	})
}

func TestConfirm(t *testing.T) {
	t.Run("requires selection and contact details", func(t *testing.T) {
		svc := newService(newFakeCalendar(), openAvail("Mon", "0900"), &fakeNotifier{})
		sess := &models.BookingSession{SessionID: "s1"}

		if _, err := svc.Confirm(context.Background(), sess); !errors.Is(err, ErrIncompleteBooking) {
			t.Fatalf("err = %v, want ErrIncompleteBooking", err)
		}
	})

	t.Run("books the event and emails confirmation", func(t *testing.T) {
		cal := newFakeCalendar()
		notify := &fakeNotifier{}
		svc := newService(cal, openAvail("Mon", "0900"), notify)
		sess := &models.BookingSession{SessionID: "s1"}

		if err := svc.SelectSlot(context.Background(), sess, "Mon", "0900"); err != nil {
			t.Fatalf("SelectSlot: %v", err)
		}
		if err := svc.SetContact(sess, "Dana", "dana@example.com"); err != nil {
			t.Fatalf("SetContact: %v", err)
		}

		receipt, err := svc.Confirm(context.Background(), sess)
		if err != nil {
			t.Fatalf("Confirm: %v", err)
		}
		if receipt.EventID == "" || sess.EventID != receipt.EventID {
			t.Fatalf("event id not recorded: receipt=%q session=%q", receipt.EventID, sess.EventID)
		}
		if receipt.NotificationErr != nil {
			t.Fatalf("unexpected notification error: %v", receipt.NotificationErr)
		}
		if notify.confirmations != 1 {
			t.Errorf("confirmations = %d, want 1", notify.confirmations)
		}

		booked := cal.events[receipt.EventID]
		if booked == nil {
			t.Fatal("event missing from remote calendar")
		}
		if booked.Summary != "Session with Dana" {
			t.Errorf("summary = %q", booked.Summary)
		}
		if !booked.End.Equal(booked.Start.Add(time.Hour)) {
			t.Errorf("event span = %v..%v, want one hour", booked.Start, booked.End)
		}
	})

	t.Run("mail failure does not undo the booking", func(t *testing.T) {
		cal := newFakeCalendar()
		notify := &fakeNotifier{sendErr: errors.New("smtp down")}
		svc := newService(cal, openAvail("Mon", "0900"), notify)
		sess := &models.BookingSession{SessionID: "s1"}

		if err := svc.SelectSlot(context.Background(), sess, "Mon", "0900"); err != nil {
			t.Fatalf("SelectSlot: %v", err)
		}
		if err := svc.SetContact(sess, "Dana", "dana@example.com"); err != nil {
			t.Fatalf("SetContact: %v", err)
		}

		receipt, err := svc.Confirm(context.Background(), sess)
		if err != nil {
			t.Fatalf("Confirm: %v", err)
		}
		if receipt.NotificationErr == nil {
			t.Fatal("expected notification error to be reported")
		}
		if _, ok := cal.events[receipt.EventID]; !ok {
			t.Fatal("booking should stand despite the failed email")
		}
	})

	t.Run("insert failure reports a write conflict", func(t *testing.T) {
		cal := newFakeCalendar()
		cal.insertErr = errors.New("rejected")
		svc := newService(cal, openAvail("Mon", "0900"), &fakeNotifier{})
		sess := &models.BookingSession{SessionID: "s1"}

		if err := svc.SelectSlot(context.Background(), sess, "Mon", "0900"); err != nil {
			t.Fatalf("SelectSlot: %v", err)
		}
		if err := svc.SetContact(sess, "Dana", "dana@example.com"); err != nil {
			t.Fatalf("SetContact: %v", err)
		}

		_, err := svc.Confirm(context.Background(), sess)
		if !errors.Is(err, ErrWriteConflict) {
			t.Fatalf("err = %v, want ErrWriteConflict", err)
		}
		if sess.EventID != "" {
			t.Errorf("event id should stay empty on failure, got %q", sess.EventID)
		}
	})
}

func TestCancel(t *testing.T) {
	t.Run("deletes the event and leaves availability untouched", func(t *testing.T) {
		cal := newFakeCalendar()
		notify := &fakeNotifier{}
		avail := openAvail("Mon", "0900")
		snapshot := avail.Clone()
		svc := newService(cal, avail, notify)
		sess := &models.BookingSession{SessionID: "s1"}

		if err := svc.SelectSlot(context.Background(), sess, "Mon", "0900"); err != nil {
			t.Fatalf("SelectSlot: %v", err)
		}
		if err := svc.SetContact(sess, "Dana", "dana@example.com"); err != nil {
			t.Fatalf("SetContact: %v", err)
		}
		receipt, err := svc.Confirm(context.Background(), sess)
		if err != nil {
			t.Fatalf("Confirm: %v", err)
		}

		if _, err := svc.Cancel(context.Background(), sess, receipt.EventID); err != nil {
			t.Fatalf("Cancel: %v", err)
		}
		if _, ok := cal.events[receipt.EventID]; ok {
			t.Fatal("remote event should be deleted")
		}
		if notify.cancellations != 1 {
			t.Errorf("cancellations = %d, want 1", notify.cancellations)
		}
		// The weekly template is a recurring schedule, not a counter.
		if !reflect.DeepEqual(avail, snapshot) {
			t.Fatal("availability template changed by cancel")
		}
		if sess.EventID != "" {
			t.Errorf("session event id = %q, want cleared", sess.EventID)
		}
	})

	t.Run("unknown id is reported as not found", func(t *testing.T) {
		svc := newService(newFakeCalendar(), openAvail("Mon"), &fakeNotifier{})
		sess := &models.BookingSession{SessionID: "s1"}

		_, err := svc.Cancel(context.Background(), sess, "missing")
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("err = %v, want ErrNotFound", err)
		}
	})
}

func TestReschedule(t *testing.T) {
	setup := func(t *testing.T, cal *fakeCalendar, notify *fakeNotifier) (*DefaultBookingService, *models.BookingSession) {
		t.Helper()
		svc := newService(cal, openAvail("Mon", "0900", "1100"), notify)
		sess := &models.BookingSession{SessionID: "s1"}

		if err := svc.SelectSlot(context.Background(), sess, "Mon", "0900"); err != nil {
			t.Fatalf("SelectSlot: %v", err)
		}
		if err := svc.SetContact(sess, "Dana", "dana@example.com"); err != nil {
			t.Fatalf("SetContact: %v", err)
		}
		if _, err := svc.Confirm(context.Background(), sess); err != nil {
			t.Fatalf("Confirm: %v", err)
		}
		return svc, sess
	}

	t.Run("moves the event to the new slot", func(t *testing.T) {
		cal := newFakeCalendar()
		notify := &fakeNotifier{}
		svc, sess := setup(t, cal, notify)
		eventID := sess.EventID

		svc.StartReschedule(sess)
		if err := svc.SelectSlot(context.Background(), sess, "Mon", "1100"); err != nil {
			t.Fatalf("SelectSlot: %v", err)
		}
		receipt, err := svc.Reschedule(context.Background(), sess, eventID)
		if err != nil {
			t.Fatalf("Reschedule: %v", err)
		}
		if receipt.EventID != eventID {
			t.Errorf("event id changed: %q -> %q", eventID, receipt.EventID)
		}

		moved := cal.events[eventID]
		want := time.Date(2024, time.June, 3, 11, 0, 0, 0, time.UTC)
		if !moved.Start.Equal(want) {
			t.Errorf("event start = %v, want %v", moved.Start, want)
		}
		if sess.Rescheduling {
			t.Error("rescheduling flag should be cleared")
		}
		if notify.reschedules != 1 {
			t.Errorf("reschedules = %d, want 1", notify.reschedules)
		}
	})

	t.Run("rejects an id that is not the session's appointment", func(t *testing.T) {
		cal := newFakeCalendar()
		svc, sess := setup(t, cal, &fakeNotifier{})
		eventID := sess.EventID
		originalStart := cal.events[eventID].Start

		svc.StartReschedule(sess)
		if err := svc.SelectSlot(context.Background(), sess, "Mon", "1100"); err != nil {
			t.Fatalf("SelectSlot: %v", err)
		}

		_, err := svc.Reschedule(context.Background(), sess, "someone-elses-event")
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("err = %v, want ErrNotFound", err)
		}
		if !cal.events[eventID].Start.Equal(originalStart) {
			t.Error("session's own booking was moved")
		}
	})

	t.Run("failed update falls back to the prior slot", func(t *testing.T) {
		cal := newFakeCalendar()
		svc, sess := setup(t, cal, &fakeNotifier{})
		eventID := sess.EventID
		originalStart := sess.SlotStart
		originalDate := sess.ApptDate

		svc.StartReschedule(sess)
		if err := svc.SelectSlot(context.Background(), sess, "Mon", "1100"); err != nil {
			t.Fatalf("SelectSlot: %v", err)
		}

		cal.updateErr = errors.New("rejected")
		_, err := svc.Reschedule(context.Background(), sess, eventID)
		if !errors.Is(err, ErrWriteConflict) {
			t.Fatalf("err = %v, want ErrWriteConflict", err)
		}

		// The original remote booking is untouched and the session shows it.
		remote := cal.events[eventID]
		if !remote.Start.Equal(originalStart) {
			t.Errorf("remote event moved to %v, want %v", remote.Start, originalStart)
		}
		if !sess.SlotStart.Equal(originalStart) || sess.ApptDate != originalDate {
			t.Errorf("session slot = %v (%q), want prior %v (%q)",
				sess.SlotStart, sess.ApptDate, originalStart, originalDate)
		}
	})
}

func TestLoadAppointment(t *testing.T) {
	t.Run("fills the session from the remote event", func(t *testing.T) {
		cal := newFakeCalendar()
		cal.events["evt-9"] = &calendar.Event{
			ID:    "evt-9",
			Start: time.Date(2024, time.June, 4, 17, 0, 0, 0, time.UTC),
			End:   time.Date(2024, time.June, 4, 18, 0, 0, 0, time.UTC),
		}
		svc := newService(cal, openAvail("Tue"), &fakeNotifier{})
		sess := &models.BookingSession{SessionID: "s1"}

		if err := svc.LoadAppointment(context.Background(), sess, "evt-9"); err != nil {
			t.Fatalf("LoadAppointment: %v", err)
		}
		if sess.EventID != "evt-9" {
			t.Errorf("event id = %q, want evt-9", sess.EventID)
		}
		if sess.ApptDate != "Tuesday, June 4th" {
			t.Errorf("appt date = %q", sess.ApptDate)
		}
		if sess.ApptTime.Start != "5:00pm" || sess.ApptTime.End != "6:00pm" {
			t.Errorf("appt time = %+v, want 5:00pm-6:00pm", sess.ApptTime)
		}
	})

	t.Run("unknown id is reported as not found", func(t *testing.T) {
		svc := newService(newFakeCalendar(), openAvail("Mon"), &fakeNotifier{})
		sess := &models.BookingSession{SessionID: "s1"}

		err := svc.LoadAppointment(context.Background(), sess, "missing")
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("err = %v, want ErrNotFound", err)
		}
	})
}
