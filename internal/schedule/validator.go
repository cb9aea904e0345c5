package schedule

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alexanderramin/dayplan/internal/contract"
	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/alexanderramin/dayplan/internal/timetext"
)

// maxIdleGapMinutes is the largest unscheduled stretch tolerated without a
// warning, both between items and at the tail of the day.
const maxIdleGapMinutes = 60

// Options configures a validation pass. Zero-value working bounds fall
// back to the default 08:00-20:00 window.
type Options struct {
	WorkStart int
	WorkEnd   int

	// ExpectedActionItems are advisory task titles the plan is supposed to
	// cover; titles absent from the normalized output are reported as
	// unmatched, never as errors.
	ExpectedActionItems []string

	// PreSort reorders parseable blocks chronologically before validation.
	// Without it the caller must supply blocks already in chronological
	// order; out-of-order items surface as overlap errors.
	PreSort bool
}

type errorKind int

const (
	errFormat errorKind = iota
	errConflict
	errSequence
	errContainment
)

// demotable marks the error kinds eligible for the degenerate soft-failure
// path: when every error is a busy conflict or a free-window miss and no
// item survived, the plan is salvaged by demoting them all to warnings.
func (k errorKind) demotable() bool {
	return k == errConflict || k == errContainment
}

type recordedError struct {
	kind errorKind
	msg  string
}

// ValidateAndNormalize reconciles a proposed plan against the day's busy
// events and free windows. Items are processed in supplied order with a
// running occupancy cursor; out-of-order items surface as overlap errors.
// On any surviving error the result carries no events.
func ValidateAndNormalize(blocks []contract.TimeBlock, busy []domain.BusyEvent, free []domain.TimeInterval, opts Options) contract.ValidationResult {
	if opts.WorkStart == 0 && opts.WorkEnd == 0 {
		opts.WorkStart = domain.DefaultWorkStart
		opts.WorkEnd = domain.DefaultWorkEnd
	}

	var (
		events   []contract.NormalizedEvent
		warnings []string
		errs     []recordedError
	)

	if len(blocks) == 0 {
		return contract.ValidationResult{
			Status: contract.StatusError,
			Errors: []string{"plan contains no time blocks"},
		}
	}

	if opts.PreSort {
		blocks = sortedByStart(blocks)
	}

	sortedBusy := make([]domain.BusyEvent, len(busy))
	copy(sortedBusy, busy)
	sort.Slice(sortedBusy, func(i, j int) bool {
		return sortedBusy[i].Interval.Before(sortedBusy[j].Interval)
	})

	cursor := opts.WorkStart

	for i, blk := range blocks {
		iv, ok := timetext.ParseTimeWindow(blk.Time)
		if !ok {
			errs = append(errs, recordedError{errFormat,
				fmt.Sprintf("time block %d has invalid time format: %q", i+1, blk.Time)})
			continue
		}

		title := strings.TrimSpace(blk.CalendarTitle)
		if title == "" {
			title = strings.TrimSpace(blk.Activity)
		}
		if title == "" {
			errs = append(errs, recordedError{errFormat,
				fmt.Sprintf("time block %d has no activity", i+1)})
			continue
		}

		if iv.End <= opts.WorkStart || iv.Start >= opts.WorkEnd {
			warnings = append(warnings, fmt.Sprintf("'%s' (%s) falls outside working hours %s-%s",
				title, iv,
				timetext.MinutesToClock(opts.WorkStart), timetext.MinutesToClock(opts.WorkEnd)))
		}

		dropped := false
		for _, b := range sortedBusy {
			if b.Interval.End <= iv.Start {
				if b.Interval.End > cursor {
					cursor = b.Interval.End
				}
				continue
			}
			if !b.Interval.Overlaps(iv) {
				continue
			}
			if titlesRelated(title, b.Title) {
				warnings = append(warnings, fmt.Sprintf("skipped '%s' (%s): already on the calendar as '%s'",
					title, iv, b.Title))
			} else {
				errs = append(errs, recordedError{errConflict,
					fmt.Sprintf("time block '%s' (%s) conflicts with existing event '%s' (%s)",
						title, iv, b.Title, b.Interval)})
			}
			dropped = true
			break
		}
		if dropped {
			continue
		}

		if iv.Start < cursor {
			errs = append(errs, recordedError{errSequence,
				fmt.Sprintf("time block '%s' (%s) overlaps with an earlier scheduled item", title, iv)})
			continue
		}
		if gap := iv.Start - cursor; gap > maxIdleGapMinutes {
			warnings = append(warnings, fmt.Sprintf("gap of %d minutes before '%s'", gap, title))
		}

		if len(free) > 0 && !fitsFreeWindow(free, iv) {
			errs = append(errs, recordedError{errContainment,
				fmt.Sprintf("time block '%s' (%s) does not fit within any available free window", title, iv)})
			continue
		}

		events = append(events, contract.NormalizedEvent{
			Title:             title,
			Interval:          iv,
			Description:       buildDescription(blk),
			SourceActionItems: blk.SourceActionItems,
		})
		cursor = iv.End
	}

	// Soft-failure path: a plan entirely blocked by conflicts or
	// free-window misses is salvaged rather than failed outright. Its
	// invocation signals a low-quality upstream plan.
	if len(errs) > 0 && len(events) == 0 && allDemotable(errs) {
		for _, e := range errs {
			warnings = append(warnings, e.msg)
		}
		errs = nil
	}

	if len(errs) > 0 {
		msgs := make([]string, 0, len(errs))
		for _, e := range errs {
			msgs = append(msgs, e.msg)
		}
		return contract.ValidationResult{
			Status:   contract.StatusError,
			Warnings: warnings,
			Errors:   msgs,
		}
	}

	latestOccupied := cursor
	for _, b := range sortedBusy {
		if b.Interval.End > latestOccupied {
			latestOccupied = b.Interval.End
		}
	}
	if tail := opts.WorkEnd - latestOccupied; tail > maxIdleGapMinutes {
		warnings = append(warnings, fmt.Sprintf("the day ends with %d unscheduled minutes before %s",
			tail, timetext.MinutesToClock(opts.WorkEnd)))
	}

	return contract.ValidationResult{
		Status:               contract.StatusOK,
		Events:               events,
		Warnings:             warnings,
		UnmatchedActionItems: unmatchedActionItems(opts.ExpectedActionItems, events),
	}
}

// sortedByStart orders blocks by parsed start time. Blocks whose time does
// not parse keep their relative position and fail later as format errors.
func sortedByStart(blocks []contract.TimeBlock) []contract.TimeBlock {
	out := make([]contract.TimeBlock, len(blocks))
	copy(out, blocks)
	sort.SliceStable(out, func(i, j int) bool {
		a, aok := timetext.ParseTimeWindow(out[i].Time)
		b, bok := timetext.ParseTimeWindow(out[j].Time)
		if !aok || !bok {
			return false
		}
		return a.Start < b.Start
	})
	return out
}

// titlesRelated treats two titles as the same commitment when either
// contains the other, case-insensitively.
func titlesRelated(a, b string) bool {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// fitsFreeWindow reports whether the interval lies fully within a single
// free window. Spanning two windows does not count.
func fitsFreeWindow(free []domain.TimeInterval, iv domain.TimeInterval) bool {
	for _, w := range free {
		if w.Contains(iv) {
			return true
		}
	}
	return false
}

func allDemotable(errs []recordedError) bool {
	for _, e := range errs {
		if !e.kind.demotable() {
			return false
		}
	}
	return true
}

func buildDescription(blk contract.TimeBlock) string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(blk.Activity))
	if notes := strings.TrimSpace(blk.Notes); notes != "" {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString("Notes: ")
		b.WriteString(notes)
	}
	if len(blk.SourceActionItems) > 0 {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString("Action items: ")
		b.WriteString(strings.Join(blk.SourceActionItems, ", "))
	}
	return b.String()
}

// unmatchedActionItems reports expected task titles absent from the
// normalized output. Matching is a lower-cased substring test against the
// concatenation of every event title and description.
func unmatchedActionItems(expected []string, events []contract.NormalizedEvent) []string {
	if len(expected) == 0 {
		return nil
	}

	var haystack strings.Builder
	for _, ev := range events {
		haystack.WriteString(strings.ToLower(ev.Title))
		haystack.WriteString(" ")
		haystack.WriteString(strings.ToLower(ev.Description))
		haystack.WriteString(" ")
	}
	hay := haystack.String()

	var unmatched []string
	for _, want := range expected {
		needle := strings.ToLower(strings.TrimSpace(want))
		if needle == "" {
			continue
		}
		if !strings.Contains(hay, needle) {
			unmatched = append(unmatched, want)
		}
	}
	return unmatched
}
