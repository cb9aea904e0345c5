// Package pipeline orchestrates one planning run: fetch the journal entry,
// obtain a plan (explicit or generated), reconcile it against the calendar,
// and create the surviving events.
package pipeline

import (
	"context"
	"fmt"

	"github.com/alexanderramin/dayplan/internal/calendar"
	"github.com/alexanderramin/dayplan/internal/contract"
	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/alexanderramin/dayplan/internal/extract"
	"github.com/alexanderramin/dayplan/internal/history"
	"github.com/alexanderramin/dayplan/internal/schedule"
	"github.com/alexanderramin/dayplan/internal/timetext"
)

// JournalStore fetches a day's journal entry.
type JournalStore interface {
	EntryForDate(ctx context.Context, date string) (domain.JournalEntry, error)
}

// PlanGenerator produces a structured plan from journal context. Used only
// when the journal carries no explicit plan.
type PlanGenerator interface {
	GeneratePlan(ctx context.Context, input contract.PlanningInput) (contract.GeneratedPlan, error)
}

// RunRecorder appends a finished run to the history log.
type RunRecorder interface {
	RecordRun(ctx context.Context, run *history.Run) error
}

// ConfirmFunc is asked before events are created. Returning false aborts
// creation without error.
type ConfirmFunc func(events []contract.NormalizedEvent) (bool, error)

// Service wires the pipeline's collaborators.
type Service struct {
	Journal  JournalStore
	Planner  PlanGenerator
	Calendar calendar.Backend
	History  RunRecorder // nil disables run recording

	WorkStart int
	WorkEnd   int
}

// RunOptions control a single pipeline invocation.
type RunOptions struct {
	// JournalDate is the entry to read the plan and context from.
	JournalDate string
	// PlanDate is the day being scheduled.
	PlanDate string
	// DryRun validates and reports without creating events or recording
	// history.
	DryRun bool
	// Confirm, when set, is consulted before events are created.
	Confirm ConfirmFunc
}

// RunResult summarizes one pipeline invocation.
type RunResult struct {
	JournalDate string
	PlanDate    string
	PlanSource  domain.PlanSource
	Validation  contract.ValidationResult
	Created     []contract.CreatedEvent
	// CreateErrors holds per-event creation failures; creation continues
	// past them.
	CreateErrors []string
	// Aborted is true when the confirmation hook declined.
	Aborted bool
	RunID   string
}

// Run executes the full pipeline for one day.
func (s *Service) Run(ctx context.Context, opts RunOptions) (*RunResult, error) {
	entry, err := s.Journal.EntryForDate(ctx, opts.JournalDate)
	if err != nil {
		return nil, fmt.Errorf("fetching journal entry: %w", err)
	}

	sections := extract.ClassifySections(entry.Blocks)
	actionItems := extract.CollectActionItems(sections, opts.PlanDate)

	busy, err := s.Calendar.ListEventsForDate(ctx, opts.PlanDate)
	if err != nil {
		return nil, fmt.Errorf("listing calendar events: %w", err)
	}
	free := schedule.ComputeFreeWindows(busy, s.WorkStart, s.WorkEnd)

	result := &RunResult{JournalDate: opts.JournalDate, PlanDate: opts.PlanDate}

	var blocks []contract.TimeBlock
	if explicit := extract.ExtractExplicitPlan(entry.Blocks); len(explicit) > 0 {
		result.PlanSource = domain.SourceExplicitPlan
		blocks = contract.ExplicitPlanBlocks(explicit)
	} else {
		result.PlanSource = domain.SourceGenerated
		plan, err := s.Planner.GeneratePlan(ctx, buildPlanningInput(opts.PlanDate, sections, busy, free, actionItems))
		if err != nil {
			return nil, fmt.Errorf("generating plan: %w", err)
		}
		blocks = plan.TimeBlocks
	}

	expected := make([]string, 0, len(actionItems))
	for _, item := range actionItems {
		expected = append(expected, item.Title)
	}

	result.Validation = schedule.ValidateAndNormalize(blocks, busy, free, schedule.Options{
		WorkStart:           s.WorkStart,
		WorkEnd:             s.WorkEnd,
		ExpectedActionItems: expected,
	})

	if result.Validation.Status != contract.StatusOK || opts.DryRun {
		if !opts.DryRun {
			s.record(ctx, result)
		}
		return result, nil
	}

	if opts.Confirm != nil && len(result.Validation.Events) > 0 {
		ok, err := opts.Confirm(result.Validation.Events)
		if err != nil {
			return nil, fmt.Errorf("confirming plan: %w", err)
		}
		if !ok {
			result.Aborted = true
			return result, nil
		}
	}

	for _, ev := range result.Validation.Events {
		created, err := s.Calendar.CreateEvent(ctx, contract.EventRequest{
			Title:       ev.Title,
			Date:        opts.PlanDate,
			StartTime:   timetext.MinutesToClock(ev.Interval.Start),
			EndTime:     timetext.MinutesToClock(ev.Interval.End),
			Description: ev.Description,
		})
		if err != nil {
			result.CreateErrors = append(result.CreateErrors,
				fmt.Sprintf("creating %q: %v", ev.Title, err))
			continue
		}
		result.Created = append(result.Created, created)
	}

	s.record(ctx, result)
	return result, nil
}

func buildPlanningInput(date string, sections map[domain.Section][]string, busy []domain.BusyEvent, free []domain.TimeInterval, items []domain.ActionItem) contract.PlanningInput {
	labeled := make(map[string][]string, len(sections))
	for section, texts := range sections {
		labeled[domain.SectionLabel(section)] = texts
	}

	busyCtx := make([]contract.BusyEventContext, 0, len(busy))
	for _, b := range busy {
		busyCtx = append(busyCtx, contract.BusyEventContext{
			Title:     b.Title,
			StartTime: timetext.MinutesToClock(b.Interval.Start),
			EndTime:   timetext.MinutesToClock(b.Interval.End),
		})
	}

	freeCtx := make([]contract.FreeWindowContext, 0, len(free))
	for _, w := range free {
		freeCtx = append(freeCtx, contract.FreeWindowContext{
			Time:    w.String(),
			Minutes: w.Duration(),
		})
	}

	return contract.PlanningInput{
		Date:        date,
		Sections:    labeled,
		BusyEvents:  busyCtx,
		FreeWindows: freeCtx,
		ActionItems: items,
	}
}

// record appends the run to the history log. Recording failures do not
// fail the run; the calendar writes already happened.
func (s *Service) record(ctx context.Context, result *RunResult) {
	if s.History == nil {
		return
	}

	run := &history.Run{
		Date:       result.PlanDate,
		PlanSource: string(result.PlanSource),
		Status:     result.Validation.Status,
		Warnings:   result.Validation.Warnings,
		Errors:     append(append([]string{}, result.Validation.Errors...), result.CreateErrors...),
		Unmatched:  result.Validation.UnmatchedActionItems,
	}
	for _, ev := range result.Created {
		run.Events = append(run.Events, history.RunEvent{
			Title:          ev.Title,
			StartTime:      ev.Start,
			EndTime:        ev.End,
			BackendEventID: ev.EventID,
		})
	}

	if err := s.History.RecordRun(ctx, run); err == nil {
		result.RunID = run.ID
	}
}
