package calendar

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/alexanderramin/dayplan/internal/contract"
	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestCalendar(t *testing.T, path string, loc *time.Location) {
	t.Helper()

	cal := ical.NewCalendar()
	ev := cal.AddEvent("seed-1")
	ev.SetStartAt(time.Date(2025, 7, 20, 9, 0, 0, 0, loc))
	ev.SetEndAt(time.Date(2025, 7, 20, 9, 30, 0, 0, loc))
	ev.SetSummary("Standup")

	other := cal.AddEvent("seed-2")
	other.SetStartAt(time.Date(2025, 7, 21, 9, 0, 0, 0, loc))
	other.SetEndAt(time.Date(2025, 7, 21, 10, 0, 0, 0, loc))
	other.SetSummary("Different day")

	require.NoError(t, os.WriteFile(path, []byte(cal.Serialize()), 0o644))
}

func TestICSListEventsForDate(t *testing.T) {
	loc := time.UTC
	path := filepath.Join(t.TempDir(), "calendar.ics")
	writeTestCalendar(t, path, loc)

	backend := NewICSBackend(path, loc)
	busy, err := backend.ListEventsForDate(context.Background(), "2025-07-20")
	require.NoError(t, err)

	require.Len(t, busy, 1)
	assert.Equal(t, "Standup", busy[0].Title)
	assert.Equal(t, domain.TimeInterval{Start: 540, End: 570}, busy[0].Interval)
}

func TestICSListEventsForDate_MissingFileIsEmpty(t *testing.T) {
	backend := NewICSBackend(filepath.Join(t.TempDir(), "missing.ics"), time.UTC)
	busy, err := backend.ListEventsForDate(context.Background(), "2025-07-20")
	require.NoError(t, err)
	assert.Empty(t, busy)
}

func TestICSCreateEventRoundTrip(t *testing.T) {
	loc := time.UTC
	path := filepath.Join(t.TempDir(), "calendar.ics")

	backend := NewICSBackend(path, loc)
	created, err := backend.CreateEvent(context.Background(), contract.EventRequest{
		Title:       "Deep work",
		Date:        "2025-07-20",
		StartTime:   "10:00",
		EndTime:     "11:30",
		Description: "accounting system rewrite",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.EventID)

	busy, err := backend.ListEventsForDate(context.Background(), "2025-07-20")
	require.NoError(t, err)
	require.Len(t, busy, 1)
	assert.Equal(t, "Deep work", busy[0].Title)
	assert.Equal(t, domain.TimeInterval{Start: 600, End: 690}, busy[0].Interval)
}

func TestICSCreateEvent_AppendsToExistingCalendar(t *testing.T) {
	loc := time.UTC
	path := filepath.Join(t.TempDir(), "calendar.ics")
	writeTestCalendar(t, path, loc)

	backend := NewICSBackend(path, loc)
	_, err := backend.CreateEvent(context.Background(), contract.EventRequest{
		Title:     "Customer calls",
		Date:      "2025-07-20",
		StartTime: "14:00",
		EndTime:   "15:00",
	})
	require.NoError(t, err)

	busy, err := backend.ListEventsForDate(context.Background(), "2025-07-20")
	require.NoError(t, err)
	require.Len(t, busy, 2)
}

func TestICSCreateEvent_RejectsBadClock(t *testing.T) {
	backend := NewICSBackend(filepath.Join(t.TempDir(), "calendar.ics"), time.UTC)
	_, err := backend.CreateEvent(context.Background(), contract.EventRequest{
		Title:     "Bad",
		Date:      "2025-07-20",
		StartTime: "25:00",
		EndTime:   "26:00",
	})
	require.Error(t, err)
}
