// Package booking orchestrates one visitor's appointment flow: browsing
// weekly openings, selecting a slot, confirming, and later cancelling or
// rescheduling via the remote calendar event.
package booking

import (
	"context"

	"glowbook/models"
)

// Receipt reports the outcome of a calendar write. NotificationErr carries a
// failed email send; the calendar write it accompanies still stands, since
// the remote event is the durable record and email is best-effort.
type Receipt struct {
	EventID         string
	NotificationErr error
}

// Service drives the visitor booking flow. The session is passed in
// explicitly; callers persist it between requests via the SessionStore.
type Service interface {
	// WeekSchedule returns the week info and openings for the session's
	// current offset, from cache when fresh.
	WeekSchedule(ctx context.Context, sess *models.BookingSession) (*models.WeekSchedule, error)
	// Navigate moves the browsed week by delta, clamped so the offset never
	// goes negative.
	Navigate(sess *models.BookingSession, delta int)
	// SelectSlot records the chosen (day, block) pair after revalidating it
	// against freshly computed openings.
	SelectSlot(ctx context.Context, sess *models.BookingSession, day, block string) error
	// SetContact records the visitor's name and email.
	SetContact(sess *models.BookingSession, name, email string) error
	// Confirm creates the remote calendar event and sends the confirmation.
	Confirm(ctx context.Context, sess *models.BookingSession) (*Receipt, error)
	// LoadAppointment fetches an existing event into the session so it can
	// be cancelled or rescheduled.
	LoadAppointment(ctx context.Context, sess *models.BookingSession, eventID string) error
	// Cancel deletes the remote event and sends the cancellation notice.
	Cancel(ctx context.Context, sess *models.BookingSession, eventID string) (*Receipt, error)
	// StartReschedule retains the current slot so a failed reschedule can
	// fall back to it.
	StartReschedule(sess *models.BookingSession)
	// Reschedule moves the remote event named by eventID to the newly
	// selected slot. The id must match the appointment held in the session.
	Reschedule(ctx context.Context, sess *models.BookingSession, eventID string) (*Receipt, error)
}
