// Package contract defines the data shapes exchanged between the pipeline
// stages and with external collaborators: generated-plan payloads, planning
// context, validation results, and calendar event requests.
package contract

import "github.com/alexanderramin/dayplan/internal/domain"

// TimeBlock is one proposed block of a day plan in wire form. The Time
// field holds the raw human expression ("09:00-10:30") and is parsed
// during validation.
type TimeBlock struct {
	Time              string   `json:"time"`
	Activity          string   `json:"activity"`
	CalendarTitle     string   `json:"calendar_title,omitempty"`
	Notes             string   `json:"notes,omitempty"`
	SourceActionItems []string `json:"source_action_items,omitempty"`
}

// GeneratedPlan is the structured payload expected from the plan generator.
type GeneratedPlan struct {
	Overview              string      `json:"overview"`
	TimeBlocks            []TimeBlock `json:"time_blocks"`
	UnassignedActionItems []string    `json:"unassigned_action_items,omitempty"`
	Reasoning             string      `json:"reasoning,omitempty"`
}

// BusyEventContext is a busy event in the JSON shape handed to the plan
// generator.
type BusyEventContext struct {
	Title     string `json:"title"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// FreeWindowContext is a free window in generator context form.
type FreeWindowContext struct {
	Time    string `json:"time"`
	Minutes int    `json:"minutes"`
}

// PlanningInput is the JSON-serializable context assembled for the plan
// generator: journal excerpts plus the busy/free picture of the target day.
type PlanningInput struct {
	Date        string              `json:"date"`
	Sections    map[string][]string `json:"sections"`
	BusyEvents  []BusyEventContext  `json:"existing_calendar_events"`
	FreeWindows []FreeWindowContext `json:"free_time_windows"`
	ActionItems []domain.ActionItem `json:"action_items"`
}

// ExplicitPlanBlocks converts parsed explicit-plan items into the wire
// blocks consumed by the validator, so user-authored and generated plans
// share one validation path.
func ExplicitPlanBlocks(items []domain.PlanItem) []TimeBlock {
	blocks := make([]TimeBlock, 0, len(items))
	for _, item := range items {
		blocks = append(blocks, TimeBlock{
			Time:              item.Interval.String(),
			Activity:          item.Task,
			CalendarTitle:     item.CalendarTitle,
			Notes:             item.Notes,
			SourceActionItems: item.SourceActionItems,
		})
	}
	return blocks
}
