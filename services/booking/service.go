package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"glowbook/cache"
	"glowbook/models"
	"glowbook/services/availability"
	"glowbook/services/calendar"
	"glowbook/services/notification"
	"glowbook/services/scheduling"
	"glowbook/utils"
)

// connectionKey caches the live calendar client handle.
const connectionKey = "calendar:connection"

func scheduleKey(offset int) string {
	return fmt.Sprintf("schedule:%d", offset)
}

// DefaultBookingService implements Service.
type DefaultBookingService struct {
	Dial         calendar.Dialer
	Cache        cache.Store
	Availability availability.Service
	Notification notification.Service

	SlotLen         time.Duration
	CacheTTL        time.Duration
	DefaultTimezone string

	// Now is the clock; nil means time.Now. Injected for tests.
	Now func() time.Time
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// client returns the calendar client, from cache when the cached handle has
// not expired. Concurrent misses may both dial; last writer wins.
func (s *DefaultBookingService) client(ctx context.Context) (calendar.Client, error) {
	if v, ok := s.Cache.Get(connectionKey); ok {
		if cl, ok := v.(calendar.Client); ok {
			return cl, nil
		}
	}
	cl, err := s.Dial(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnection, err)
	}
	s.Cache.Set(connectionKey, cl, s.CacheTTL)
	utils.GetLogger().Debug("connected to calendar")
	return cl, nil
}

// location resolves the session timezone, falling back to the configured
// default and finally UTC.
func (s *DefaultBookingService) location(sess *models.BookingSession) *time.Location {
	for _, name := range []string{sess.TimezoneName, s.DefaultTimezone} {
		if name == "" {
			continue
		}
		if loc, err := time.LoadLocation(name); err == nil {
			return loc
		}
	}
	return time.UTC
}

// ensureTimezone resolves the calendar timezone once per session. A lookup
// failure falls back to the configured default rather than failing the page.
func (s *DefaultBookingService) ensureTimezone(ctx context.Context, sess *models.BookingSession, cl calendar.Client) {
	if sess.TimezoneName != "" && sess.TimezoneLabel != "" {
		return
	}
	tzName, err := cl.Timezone(ctx)
	if err != nil {
		utils.GetLogger().Info("failed to get calendar timezone, using default",
			zap.String("default", s.DefaultTimezone), zap.Error(err))
		tzName = s.DefaultTimezone
	}
	sess.TimezoneName = tzName
	loc := s.location(sess)
	sess.TimezoneLabel = friendlyTimezoneLabel(tzName, s.now(), loc)
}

// computeSchedule derives the week schedule for the session's offset from
// live data, bypassing the result cache.
func (s *DefaultBookingService) computeSchedule(ctx context.Context, sess *models.BookingSession) (*models.WeekSchedule, error) {
	cl, err := s.client(ctx)
	if err != nil {
		return nil, err
	}
	s.ensureTimezone(ctx, sess, cl)

	now := s.now().In(s.location(sess))
	avail, err := s.Availability.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load availability: %w", err)
	}

	timeMin, timeMax := scheduling.WeekWindow(sess.Offset, now)
	events, err := cl.ListEvents(ctx, timeMin, timeMax)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnection, err)
	}

	info, openings := scheduling.ComputeWeek(avail, events, sess.Offset, s.SlotLen, now)
	return &models.WeekSchedule{Info: info, Openings: openings}, nil
}

func (s *DefaultBookingService) WeekSchedule(ctx context.Context, sess *models.BookingSession) (*models.WeekSchedule, error) {
	// The timezone belongs to the session, not to the cached week: a fresh
	// visitor must get it resolved even when the schedule is served warm.
	if sess.TimezoneName == "" || sess.TimezoneLabel == "" {
		cl, err := s.client(ctx)
		if err != nil {
			return nil, err
		}
		s.ensureTimezone(ctx, sess, cl)
	}

	if v, ok := s.Cache.Get(scheduleKey(sess.Offset)); ok {
		if sched, ok := v.(*models.WeekSchedule); ok {
			return sched, nil
		}
	}
	sched, err := s.computeSchedule(ctx, sess)
	if err != nil {
		return nil, err
	}
	s.Cache.Set(scheduleKey(sess.Offset), sched, s.CacheTTL)
	return sched, nil
}

func (s *DefaultBookingService) Navigate(sess *models.BookingSession, delta int) {
	sess.Offset += delta
	if sess.Offset < 0 {
		sess.Offset = 0
	}
}

// SelectSlot revalidates the pick against freshly computed openings before
// recording it: the rendered slot list may be stale relative to events
// created since. The remote calendar remains the final arbiter for races
// this check cannot see.
func (s *DefaultBookingService) SelectSlot(ctx context.Context, sess *models.BookingSession, day, block string) error {
	sched, err := s.computeSchedule(ctx, sess)
	if err != nil {
		return err
	}
	if !containsBlock(sched.Openings[day], block) {
		return ErrSlotTaken
	}

	info, ok := sched.Info[day]
	if !ok {
		return ErrSlotTaken
	}
	date, err := time.Parse("Jan 02 2006", fmt.Sprintf("%s %s %s", info.Month, info.Day, info.Year))
	if err != nil {
		return fmt.Errorf("malformed week info for %s: %w", day, err)
	}
	clock, err := time.Parse("1504", block)
	if err != nil {
		return fmt.Errorf("malformed time block %q: %w", block, err)
	}

	loc := s.location(sess)
	start := time.Date(date.Year(), date.Month(), date.Day(),
		clock.Hour(), clock.Minute(), 0, 0, loc)

	sess.SlotStart = start
	sess.ApptDate = formatApptDate(start)
	sess.ApptTime = slotTimes(start, s.SlotLen)
	return nil
}

func (s *DefaultBookingService) SetContact(sess *models.BookingSession, name, email string) error {
	if name == "" || email == "" {
		return fmt.Errorf("%w: name and email are required", ErrIncompleteBooking)
	}
	sess.ClientName = name
	sess.ClientEmail = email
	return nil
}

func (s *DefaultBookingService) Confirm(ctx context.Context, sess *models.BookingSession) (*Receipt, error) {
	if !sess.HasSelection() || !sess.HasContact() {
		return nil, ErrIncompleteBooking
	}
	cl, err := s.client(ctx)
	if err != nil {
		return nil, err
	}

	ev := &calendar.Event{
		Summary:     fmt.Sprintf("Session with %s", sess.ClientName),
		Description: fmt.Sprintf("Session with %s; %s", sess.ClientName, sess.ClientEmail),
		Start:       sess.SlotStart,
		End:         sess.SlotStart.Add(s.SlotLen),
		Timezone:    sess.TimezoneName,
	}
	created, err := cl.InsertEvent(ctx, ev)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWriteConflict, err)
	}
	sess.EventID = created.ID

	receipt := &Receipt{EventID: created.ID}
	if err := s.Notification.SendConfirmation(sess); err != nil {
		utils.GetLogger().Warn("confirmation email failed", zap.String("eventID", created.ID), zap.Error(err))
		receipt.NotificationErr = err
	}
	return receipt, nil
}

func (s *DefaultBookingService) LoadAppointment(ctx context.Context, sess *models.BookingSession, eventID string) error {
	cl, err := s.client(ctx)
	if err != nil {
		return err
	}
	ev, err := cl.GetEvent(ctx, eventID)
	if err != nil {
		if errors.Is(err, calendar.ErrEventNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	s.ensureTimezone(ctx, sess, cl)

	start := ev.Start.In(s.location(sess))
	sess.EventID = ev.ID
	sess.SlotStart = start
	sess.ApptDate = formatApptDate(start)
	sess.ApptTime = models.SlotTimes{Start: formatClock(start), End: formatClock(ev.End.In(s.location(sess)))}
	return nil
}

func (s *DefaultBookingService) Cancel(ctx context.Context, sess *models.BookingSession, eventID string) (*Receipt, error) {
	cl, err := s.client(ctx)
	if err != nil {
		return nil, err
	}
	if err := cl.DeleteEvent(ctx, eventID); err != nil {
		if errors.Is(err, calendar.ErrEventNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrWriteConflict, err)
	}

	receipt := &Receipt{EventID: eventID}
	if err := s.Notification.SendCancellation(sess); err != nil {
		utils.GetLogger().Warn("cancellation email failed", zap.String("eventID", eventID), zap.Error(err))
		receipt.NotificationErr = err
	}
	sess.EventID = ""
	return receipt, nil
}

func (s *DefaultBookingService) StartReschedule(sess *models.BookingSession) {
	sess.Rescheduling = true
	sess.PrevSlotStart = sess.SlotStart
	sess.PrevApptDate = sess.ApptDate
	sess.PrevApptTime = sess.ApptTime
}

// Reschedule moves the remote event to the newly selected slot. On failure
// the session falls back to the retained prior slot and the original remote
// booking is left untouched.
func (s *DefaultBookingService) Reschedule(ctx context.Context, sess *models.BookingSession, eventID string) (*Receipt, error) {
	if sess.EventID == "" || !sess.HasSelection() {
		return nil, ErrIncompleteBooking
	}
	// The URL names the appointment; it must be the one this session holds.
	if eventID != sess.EventID {
		return nil, ErrNotFound
	}
	cl, err := s.client(ctx)
	if err != nil {
		return nil, err
	}

	ev, err := cl.GetEvent(ctx, sess.EventID)
	if err != nil {
		s.restorePriorSlot(sess)
		if errors.Is(err, calendar.ErrEventNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrConnection, err)
	}

	ev.Start = sess.SlotStart
	ev.End = sess.SlotStart.Add(s.SlotLen)
	ev.Timezone = sess.TimezoneName
	if _, err := cl.UpdateEvent(ctx, sess.EventID, ev); err != nil {
		s.restorePriorSlot(sess)
		return nil, fmt.Errorf("%w: %v", ErrWriteConflict, err)
	}

	sess.Rescheduling = false
	sess.PrevSlotStart = time.Time{}
	sess.PrevApptDate = ""
	sess.PrevApptTime = models.SlotTimes{}

	receipt := &Receipt{EventID: sess.EventID}
	if err := s.Notification.SendReschedule(sess); err != nil {
		utils.GetLogger().Warn("reschedule email failed", zap.String("eventID", sess.EventID), zap.Error(err))
		receipt.NotificationErr = err
	}
	return receipt, nil
}

func (s *DefaultBookingService) restorePriorSlot(sess *models.BookingSession) {
	if sess.PrevSlotStart.IsZero() {
		return
	}
	sess.SlotStart = sess.PrevSlotStart
	sess.ApptDate = sess.PrevApptDate
	sess.ApptTime = sess.PrevApptTime
}

func containsBlock(blocks []string, block string) bool {
	for _, tb := range blocks {
		if tb == block {
			return true
		}
	}
	return false
}
