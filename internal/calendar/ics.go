package calendar

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"github.com/alexanderramin/dayplan/internal/contract"
	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/alexanderramin/dayplan/internal/timetext"
)

const icsDateLayout = "2006-01-02"

// icsBackend reads and writes a local ICS calendar file. It exists for
// setups without a calendar service: busy events come from the file and
// created events are appended to it.
type icsBackend struct {
	path string
	loc  *time.Location
}

// NewICSBackend creates a Backend over an ICS file. Times are interpreted
// in the given location; nil means time.Local.
func NewICSBackend(path string, loc *time.Location) Backend {
	if loc == nil {
		loc = time.Local
	}
	return &icsBackend{path: path, loc: loc}
}

func (b *icsBackend) ListEventsForDate(_ context.Context, date string) ([]domain.BusyEvent, error) {
	day, err := time.ParseInLocation(icsDateLayout, date, b.loc)
	if err != nil {
		return nil, fmt.Errorf("parsing date %q: %w", date, err)
	}

	cal, err := b.load()
	if err != nil {
		return nil, err
	}
	if cal == nil {
		return nil, nil
	}

	var busy []domain.BusyEvent
	for _, ve := range cal.Events() {
		start, err := ve.GetStartAt()
		if err != nil {
			continue
		}
		end, err := ve.GetEndAt()
		if err != nil {
			continue
		}
		start = start.In(b.loc)
		end = end.In(b.loc)

		if start.Year() != day.Year() || start.YearDay() != day.YearDay() {
			continue
		}

		iv, err := domain.NewTimeInterval(start.Hour()*60+start.Minute(), end.Hour()*60+end.Minute())
		if err != nil {
			// All-day and midnight-crossing entries do not map to a
			// single-day minute interval.
			continue
		}

		title := ""
		if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
			title = p.Value
		}
		busy = append(busy, domain.BusyEvent{Title: title, Interval: iv})
	}
	return busy, nil
}

func (b *icsBackend) CreateEvent(_ context.Context, req contract.EventRequest) (contract.CreatedEvent, error) {
	day, err := time.ParseInLocation(icsDateLayout, req.Date, b.loc)
	if err != nil {
		return contract.CreatedEvent{}, fmt.Errorf("parsing date %q: %w", req.Date, err)
	}
	startMin, err := timetext.ClockToMinutes(req.StartTime)
	if err != nil {
		return contract.CreatedEvent{}, fmt.Errorf("%w: %v", ErrCreateFailed, err)
	}
	endMin, err := timetext.ClockToMinutes(req.EndTime)
	if err != nil {
		return contract.CreatedEvent{}, fmt.Errorf("%w: %v", ErrCreateFailed, err)
	}

	cal, err := b.load()
	if err != nil {
		return contract.CreatedEvent{}, err
	}
	if cal == nil {
		cal = ical.NewCalendar()
		cal.SetMethod(ical.MethodPublish)
	}

	id := uuid.NewString()
	ve := cal.AddEvent(id)
	ve.SetCreatedTime(time.Now())
	ve.SetDtStampTime(time.Now())
	ve.SetStartAt(day.Add(time.Duration(startMin) * time.Minute))
	ve.SetEndAt(day.Add(time.Duration(endMin) * time.Minute))
	ve.SetSummary(req.Title)
	if req.Description != "" {
		ve.SetDescription(req.Description)
	}

	if err := os.WriteFile(b.path, []byte(cal.Serialize()), 0o644); err != nil {
		return contract.CreatedEvent{}, fmt.Errorf("writing calendar file: %w", err)
	}

	return contract.CreatedEvent{
		EventID: id,
		Title:   req.Title,
		Date:    req.Date,
		Start:   req.StartTime,
		End:     req.EndTime,
	}, nil
}

// load parses the calendar file. A missing file is not an error; it means
// an empty calendar.
func (b *icsBackend) load() (*ical.Calendar, error) {
	data, err := os.ReadFile(b.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading calendar file: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	cal, err := ical.ParseCalendar(strings.NewReader(string(data)))
	if err != nil {
		return nil, fmt.Errorf("parsing calendar file: %w", err)
	}
	return cal, nil
}
