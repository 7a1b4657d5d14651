// Package calendar wraps the studio's remote calendar. The booking flow
// reads busy windows from it and writes one event per appointment.
package calendar

import (
	"context"
	"time"

	"glowbook/models"
)

// Event is one appointment on the remote calendar.
type Event struct {
	ID          string
	Summary     string
	Description string
	Start       time.Time
	End         time.Time
	Timezone    string // IANA name attached to the start/end instants
}

// Client is the remote calendar collaborator.
type Client interface {
	// ListEvents returns the occupied windows between timeMin and timeMax,
	// ordered by start time.
	ListEvents(ctx context.Context, timeMin, timeMax time.Time) ([]models.EventWindow, error)
	GetEvent(ctx context.Context, id string) (*Event, error)
	InsertEvent(ctx context.Context, ev *Event) (*Event, error)
	UpdateEvent(ctx context.Context, id string, ev *Event) (*Event, error)
	DeleteEvent(ctx context.Context, id string) error
	// Timezone returns the calendar's IANA timezone name.
	Timezone(ctx context.Context) (string, error)
}

// Dialer establishes a Client connection. The booking service caches the
// handle it returns and redials on cache expiry.
type Dialer func(ctx context.Context) (Client, error)
