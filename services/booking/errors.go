package booking

import "errors"

// Failure kinds surfaced by the booking flow. Handlers map these onto
// user-facing apology messages; everything is scoped to a single request.
var (
	// ErrConnection: the remote calendar could not be reached.
	ErrConnection = errors.New("cannot reach the calendar")
	// ErrNotFound: no appointment exists with the given identifier.
	ErrNotFound = errors.New("appointment not found")
	// ErrWriteConflict: the calendar rejected an insert, update or delete.
	ErrWriteConflict = errors.New("the calendar rejected the change")
	// ErrSlotTaken: revalidation found the selected slot no longer open.
	ErrSlotTaken = errors.New("the selected slot is no longer open")
	// ErrIncompleteBooking: the flow was advanced out of order.
	ErrIncompleteBooking = errors.New("booking details are incomplete")
	// ErrSessionNotFound: the visitor's session expired or never existed.
	ErrSessionNotFound = errors.New("booking session not found or expired")
)
