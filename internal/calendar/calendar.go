// Package calendar provides the day's busy events and creates new ones,
// either against an HTTP calendar service or a local ICS file.
package calendar

import (
	"context"
	"errors"

	"github.com/alexanderramin/dayplan/internal/contract"
	"github.com/alexanderramin/dayplan/internal/domain"
)

// ErrCreateFailed indicates the backend rejected an event creation.
var ErrCreateFailed = errors.New("calendar event creation failed")

// Backend lists a date's busy events and creates new ones.
type Backend interface {
	// ListEventsForDate returns the events already booked on the given ISO
	// date ("2025-07-20"), as minute-of-day busy intervals.
	ListEventsForDate(ctx context.Context, date string) ([]domain.BusyEvent, error)

	// CreateEvent books one event and returns the backend's acknowledgement.
	CreateEvent(ctx context.Context, req contract.EventRequest) (contract.CreatedEvent, error)
}
