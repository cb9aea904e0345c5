package contract

import "github.com/alexanderramin/dayplan/internal/domain"

// Validation status values.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// NormalizedEvent is a plan item that survived validation and is ready to
// be created on the calendar.
type NormalizedEvent struct {
	Title             string              `json:"title"`
	Interval          domain.TimeInterval `json:"interval"`
	Description       string              `json:"description,omitempty"`
	SourceActionItems []string            `json:"source_action_items,omitempty"`
}

// ValidationResult is the outcome of reconciling a proposed plan against
// the day's busy calendar and free windows. On StatusError no events are
// returned; warnings and unmatched action items are advisory either way.
type ValidationResult struct {
	Status               string            `json:"status"`
	Events               []NormalizedEvent `json:"events"`
	Warnings             []string          `json:"warnings,omitempty"`
	Errors               []string          `json:"errors,omitempty"`
	UnmatchedActionItems []string          `json:"unmatched_action_items,omitempty"`
}

// EventRequest is the backend-facing shape of one event to create.
type EventRequest struct {
	Title       string `json:"title"`
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Description string `json:"description,omitempty"`
}

// CreatedEvent is the backend's acknowledgement of a created event.
type CreatedEvent struct {
	EventID string `json:"event_id"`
	Link    string `json:"link,omitempty"`
	Title   string `json:"title"`
	Date    string `json:"date"`
	Start   string `json:"start_time"`
	End     string `json:"end_time"`
}
