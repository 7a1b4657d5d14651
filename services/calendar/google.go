package calendar

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"glowbook/models"
)

// ErrEventNotFound is returned when the remote calendar has no event with
// the requested identifier.
var ErrEventNotFound = errors.New("calendar event not found")

// GoogleClient implements Client against the Google Calendar API using a
// service account.
type GoogleClient struct {
	svc        *gcal.Service
	calendarID string
}

// NewGoogleClient connects to Google Calendar with the given service-account
// credentials file and operates on the single configured calendar.
func NewGoogleClient(ctx context.Context, credentialsFile, calendarID string) (*GoogleClient, error) {
	svc, err := gcal.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(gcal.CalendarReadonlyScope, gcal.CalendarEventsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build calendar service: %w", err)
	}
	return &GoogleClient{svc: svc, calendarID: calendarID}, nil
}

func (c *GoogleClient) ListEvents(ctx context.Context, timeMin, timeMax time.Time) ([]models.EventWindow, error) {
	res, err := c.svc.Events.List(c.calendarID).
		SingleEvents(true).
		OrderBy("startTime").
		TimeMin(timeMin.Format(time.RFC3339)).
		TimeMax(timeMax.Format(time.RFC3339)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	windows := make([]models.EventWindow, 0, len(res.Items))
	for _, item := range res.Items {
		// All-day events carry only a date; they never block timed slots here.
		if item.Start == nil || item.Start.DateTime == "" || item.End == nil || item.End.DateTime == "" {
			continue
		}
		start, err := time.Parse(time.RFC3339, item.Start.DateTime)
		if err != nil {
			return nil, fmt.Errorf("malformed event start %q: %w", item.Start.DateTime, err)
		}
		end, err := time.Parse(time.RFC3339, item.End.DateTime)
		if err != nil {
			return nil, fmt.Errorf("malformed event end %q: %w", item.End.DateTime, err)
		}
		windows = append(windows, models.EventWindow{Start: start, End: end})
	}
	return windows, nil
}

func (c *GoogleClient) GetEvent(ctx context.Context, id string) (*Event, error) {
	item, err := c.svc.Events.Get(c.calendarID, id).Context(ctx).Do()
	if err != nil {
		if isNotFound(err) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event %s: %w", id, err)
	}
	return fromGoogleEvent(item)
}

func (c *GoogleClient) InsertEvent(ctx context.Context, ev *Event) (*Event, error) {
	item, err := c.svc.Events.Insert(c.calendarID, toGoogleEvent(ev)).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to insert event: %w", err)
	}
	return fromGoogleEvent(item)
}

func (c *GoogleClient) UpdateEvent(ctx context.Context, id string, ev *Event) (*Event, error) {
	item, err := c.svc.Events.Update(c.calendarID, id, toGoogleEvent(ev)).Context(ctx).Do()
	if err != nil {
		if isNotFound(err) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to update event %s: %w", id, err)
	}
	return fromGoogleEvent(item)
}

func (c *GoogleClient) DeleteEvent(ctx context.Context, id string) error {
	if err := c.svc.Events.Delete(c.calendarID, id).Context(ctx).Do(); err != nil {
		if isNotFound(err) {
			return ErrEventNotFound
		}
		return fmt.Errorf("failed to delete event %s: %w", id, err)
	}
	return nil
}

func (c *GoogleClient) Timezone(ctx context.Context) (string, error) {
	cal, err := c.svc.Calendars.Get(c.calendarID).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to get calendar: %w", err)
	}
	return cal.TimeZone, nil
}

func toGoogleEvent(ev *Event) *gcal.Event {
	return &gcal.Event{
		Summary:     ev.Summary,
		Description: ev.Description,
		Start: &gcal.EventDateTime{
			DateTime: ev.Start.Format(time.RFC3339),
			TimeZone: ev.Timezone,
		},
		End: &gcal.EventDateTime{
			DateTime: ev.End.Format(time.RFC3339),
			TimeZone: ev.Timezone,
		},
	}
}

func fromGoogleEvent(item *gcal.Event) (*Event, error) {
	ev := &Event{
		ID:          item.Id,
		Summary:     item.Summary,
		Description: item.Description,
	}
	if item.Start != nil && item.Start.DateTime != "" {
		start, err := time.Parse(time.RFC3339, item.Start.DateTime)
		if err != nil {
			return nil, fmt.Errorf("malformed event start %q: %w", item.Start.DateTime, err)
		}
		ev.Start = start
		ev.Timezone = item.Start.TimeZone
	}
	if item.End != nil && item.End.DateTime != "" {
		end, err := time.Parse(time.RFC3339, item.End.DateTime)
		if err != nil {
			return nil, fmt.Errorf("malformed event end %q: %w", item.End.DateTime, err)
		}
		ev.End = end
	}
	return ev, nil
}

func isNotFound(err error) bool {
	var apiErr *googleapi.Error
	return errors.As(err, &apiErr) && apiErr.Code == http.StatusNotFound
}
