package models

import "time"

// SlotTimes holds the human-formatted start and end of a selected slot,
// e.g. "5:00pm" / "6:00pm".
type SlotTimes struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// BookingSession holds one visitor's state across the multi-step booking
// flow. It lives in Redis under the visitor's cookie and expires with it.
type BookingSession struct {
	SessionID string `json:"sessionId"`

	// Week the visitor is currently browsing; never negative.
	Offset int `json:"offset"`

	// Timezone of the studio calendar, resolved once per session.
	TimezoneName  string `json:"tzName,omitempty"`  // IANA name, e.g. "America/Chicago"
	TimezoneLabel string `json:"tzLabel,omitempty"` // friendly display string

	// Selected slot and its display strings.
	SlotStart time.Time `json:"slotStart,omitzero"`
	ApptDate  string    `json:"apptDate,omitempty"` // e.g. "Monday, May 10th"
	ApptTime  SlotTimes `json:"apptTime,omitzero"`

	ClientName  string `json:"clientName,omitempty"`
	ClientEmail string `json:"clientEmail,omitempty"`

	// Remote calendar event identifier once booked.
	EventID string `json:"eventId,omitempty"`

	// Reschedule-in-progress state: the prior slot is retained so a failed
	// reschedule leaves the original booking intact.
	Rescheduling  bool      `json:"rescheduling,omitempty"`
	PrevSlotStart time.Time `json:"prevSlotStart,omitzero"`
	PrevApptDate  string    `json:"prevApptDate,omitempty"`
	PrevApptTime  SlotTimes `json:"prevApptTime,omitzero"`
}

// HasSelection reports whether the visitor has picked a slot.
func (s *BookingSession) HasSelection() bool {
	return !s.SlotStart.IsZero()
}

// HasContact reports whether the visitor has supplied contact details.
func (s *BookingSession) HasContact() bool {
	return s.ClientName != "" && s.ClientEmail != ""
}
