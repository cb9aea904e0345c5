// Package planner turns journal context into a structured day plan by
// prompting a language model and extracting its JSON payload.
package planner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/dayplan/internal/contract"
	"github.com/alexanderramin/dayplan/internal/llm"
	"github.com/alexanderramin/dayplan/internal/timetext"
)

// ErrMissingPayload indicates the generator response carried no usable
// structured plan.
var ErrMissingPayload = errors.New("plan generator response missing structured payload")

const systemPrompt = "You are a focused productivity strategist. You build concrete, " +
	"time-blocked day plans from journal context and always respond with valid JSON."

// Service generates day plans and reflections through a model client.
type Service struct {
	client    llm.Client
	workStart int
	workEnd   int
}

// NewService creates a planner bound to the given working window, expressed
// in minutes from midnight.
func NewService(client llm.Client, workStart, workEnd int) *Service {
	return &Service{client: client, workStart: workStart, workEnd: workEnd}
}

// GeneratePlan prompts the model with the assembled planning context and
// returns its structured plan. A response without a valid JSON payload is
// reported as ErrMissingPayload.
func (s *Service) GeneratePlan(ctx context.Context, input contract.PlanningInput) (contract.GeneratedPlan, error) {
	prompt, err := s.buildPlanPrompt(input)
	if err != nil {
		return contract.GeneratedPlan{}, fmt.Errorf("building plan prompt: %w", err)
	}

	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskDailyPlan,
		SystemPrompt: systemPrompt,
		UserPrompt:   prompt,
	})
	if err != nil {
		return contract.GeneratedPlan{}, fmt.Errorf("generating plan: %w", err)
	}

	plan, err := llm.ExtractJSON[contract.GeneratedPlan](resp.Text, validatePlan)
	if err != nil {
		return contract.GeneratedPlan{}, fmt.Errorf("%w: %v", ErrMissingPayload, err)
	}
	return plan, nil
}

// validatePlan rejects payloads the validator downstream could not work
// with at all.
func validatePlan(p contract.GeneratedPlan) error {
	if len(p.TimeBlocks) == 0 {
		return errors.New("time_blocks is empty")
	}
	for i, b := range p.TimeBlocks {
		if strings.TrimSpace(b.Time) == "" {
			return fmt.Errorf("time block %d has no time", i+1)
		}
		if strings.TrimSpace(b.Activity) == "" && strings.TrimSpace(b.CalendarTitle) == "" {
			return fmt.Errorf("time block %d has no activity", i+1)
		}
	}
	return nil
}

func (s *Service) buildPlanPrompt(input contract.PlanningInput) (string, error) {
	sectionsJSON, err := json.MarshalIndent(input.Sections, "", "  ")
	if err != nil {
		return "", err
	}
	itemsJSON, err := json.MarshalIndent(input.ActionItems, "", "  ")
	if err != nil {
		return "", err
	}
	busyJSON, err := json.MarshalIndent(input.BusyEvents, "", "  ")
	if err != nil {
		return "", err
	}
	freeJSON, err := json.MarshalIndent(input.FreeWindows, "", "  ")
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Build a concrete, time-blocked plan for %s using the journal context and action items below.\n\n", input.Date)
	fmt.Fprintf(&b, "WORKING HOURS TO PLAN: %s-%s. The schedule must be sequential, free of overlaps, and leave no gaps longer than 60 minutes. Include purposeful breaks and focused deep-work blocks.\n\n",
		timetext.MinutesToClock(s.workStart), timetext.MinutesToClock(s.workEnd))
	fmt.Fprintf(&b, "JOURNAL SECTIONS:\n%s\n\n", sectionsJSON)
	fmt.Fprintf(&b, "ACTION ITEMS (with suggested durations in minutes):\n%s\n\n", itemsJSON)
	fmt.Fprintf(&b, "EXISTING CALENDAR EVENTS (busy blocks you must schedule around, never edit):\n%s\n\n", busyJSON)
	fmt.Fprintf(&b, "AVAILABLE FREE WINDOWS (place new work only inside these):\n%s\n\n", freeJSON)
	b.WriteString(`PLANNING DIRECTIVES:
1. Every action item with an estimated duration must appear across enough time blocks to cover it; break work longer than about 60 minutes into multiple focused sessions.
2. Only schedule new work inside the free windows above and never overlap the busy events.
3. Put high-leverage tasks early in the day, before generic admin work.
4. Treat the duration estimates as guidance; you may adjust by up to 15 minutes to fit a window.
5. Keep block descriptions specific enough to go straight onto a calendar.
6. List any action item you cannot fit in "unassigned_action_items".

Respond with valid JSON only, using this structure:
{
  "overview": "High-level goals for the day",
  "time_blocks": [
    {
      "time": "08:00-09:30",
      "activity": "Internship application sprint",
      "calendar_title": "Apply: Target Internships",
      "source_action_items": ["Internship outreach emails"],
      "notes": "Customize resumes for top roles"
    }
  ],
  "unassigned_action_items": [],
  "reasoning": "Explain prioritization and how the schedule avoids conflicts"
}
`)
	return b.String(), nil
}

// Reflect asks the model for a short free-text reflection over the day's
// journal sections.
func (s *Service) Reflect(ctx context.Context, sections map[string][]string) (string, error) {
	sectionsJSON, err := json.MarshalIndent(sections, "", "  ")
	if err != nil {
		return "", fmt.Errorf("building reflection prompt: %w", err)
	}

	prompt := fmt.Sprintf(`Analyze these journal entries and provide insights on:
1. Progress patterns
2. Recurring challenges
3. Growth opportunities
4. Productivity recommendations

JOURNAL DATA:
%s

Provide actionable insights in a short structured format.
`, sectionsJSON)

	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskReflection,
		SystemPrompt: systemPrompt,
		UserPrompt:   prompt,
	})
	if err != nil {
		return "", fmt.Errorf("generating reflection: %w", err)
	}
	return strings.TrimSpace(resp.Text), nil
}
