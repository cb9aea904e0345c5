// Package schedule holds the day-level reconciliation logic: free/busy
// window computation and plan validation/normalization. All functions are
// pure; callers supply the full busy picture each run.
package schedule

import (
	"sort"

	"github.com/alexanderramin/dayplan/internal/domain"
)

// MergeIntervals sorts intervals by start and folds overlapping or
// adjacent ones into a minimal covering set.
func MergeIntervals(intervals []domain.TimeInterval) []domain.TimeInterval {
	if len(intervals) == 0 {
		return nil
	}

	sorted := make([]domain.TimeInterval, len(intervals))
	copy(sorted, intervals)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		return sorted[i].End < sorted[j].End
	})

	merged := []domain.TimeInterval{sorted[0]}
	for _, iv := range sorted[1:] {
		last := &merged[len(merged)-1]
		if iv.Start <= last.End {
			if iv.End > last.End {
				last.End = iv.End
			}
			continue
		}
		merged = append(merged, iv)
	}
	return merged
}

// MergeBusy is MergeIntervals over the intervals of busy events.
func MergeBusy(events []domain.BusyEvent) []domain.TimeInterval {
	intervals := make([]domain.TimeInterval, 0, len(events))
	for _, e := range events {
		intervals = append(intervals, e.Interval)
	}
	return MergeIntervals(intervals)
}

// ComputeFreeWindows returns the gaps inside [workStart, workEnd] not
// covered by any busy event, ascending by start. Zero-length gaps are
// dropped. A day with no busy events yields one window spanning the whole
// working bound.
func ComputeFreeWindows(busy []domain.BusyEvent, workStart, workEnd int) []domain.TimeInterval {
	var free []domain.TimeInterval
	cursor := workStart

	for _, iv := range MergeBusy(busy) {
		if iv.End <= workStart || iv.Start >= workEnd {
			continue
		}
		start := iv.Start
		if start < workStart {
			start = workStart
		}
		end := iv.End
		if end > workEnd {
			end = workEnd
		}
		if start > cursor {
			free = append(free, domain.TimeInterval{Start: cursor, End: start})
		}
		if end > cursor {
			cursor = end
		}
	}

	if cursor < workEnd {
		free = append(free, domain.TimeInterval{Start: cursor, End: workEnd})
	}
	return free
}
