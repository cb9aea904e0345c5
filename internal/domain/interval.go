package domain

import "fmt"

// MinutesPerDay bounds every interval to a single calendar day.
const MinutesPerDay = 24 * 60

// Default working window: 08:00-20:00, expressed in minutes from midnight.
const (
	DefaultWorkStart = 8 * 60
	DefaultWorkEnd   = 20 * 60
)

// TimeInterval is a half-open [Start, End) span within a single day,
// expressed in minutes from midnight. Intervals are value types and are
// never mutated after construction.
type TimeInterval struct {
	Start int
	End   int
}

// NewTimeInterval constructs a validated interval.
// Requires 0 <= start < end <= 1440.
func NewTimeInterval(start, end int) (TimeInterval, error) {
	if start < 0 || end > MinutesPerDay || start >= end {
		return TimeInterval{}, fmt.Errorf("invalid interval %d-%d", start, end)
	}
	return TimeInterval{Start: start, End: end}, nil
}

// Duration returns the interval length in minutes.
func (t TimeInterval) Duration() int {
	return t.End - t.Start
}

// Overlaps reports whether t and o share any minute.
func (t TimeInterval) Overlaps(o TimeInterval) bool {
	return t.Start < o.End && o.Start < t.End
}

// Contains reports whether o lies fully within t.
func (t TimeInterval) Contains(o TimeInterval) bool {
	return o.Start >= t.Start && o.End <= t.End
}

// Before orders intervals by start, then end.
func (t TimeInterval) Before(o TimeInterval) bool {
	if t.Start != o.Start {
		return t.Start < o.Start
	}
	return t.End < o.End
}

// String renders the interval as "HH:MM-HH:MM".
func (t TimeInterval) String() string {
	return fmt.Sprintf("%02d:%02d-%02d:%02d", t.Start/60, t.Start%60, t.End/60, t.End%60)
}
