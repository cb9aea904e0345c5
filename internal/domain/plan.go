package domain

// PlanSource identifies where a plan item came from.
type PlanSource string

const (
	// SourceExplicitPlan marks items the user wrote directly in the journal.
	SourceExplicitPlan PlanSource = "explicit_plan"
	// SourceGenerated marks items proposed by the plan generator.
	SourceGenerated PlanSource = "generated"
)

// PlanItem is one proposed unit of the day awaiting validation.
// Items are constructed per pipeline run and never persisted.
type PlanItem struct {
	Interval          TimeInterval
	Task              string
	CalendarTitle     string
	Notes             string
	SourceActionItems []string
	Source            PlanSource
}

// BusyEvent is a read-only snapshot of an existing calendar commitment
// for the target date.
type BusyEvent struct {
	Title    string
	Interval TimeInterval
}

// ActionItem is a free-text task with a heuristic duration estimate,
// consumed only as advisory context by the plan generator.
type ActionItem struct {
	Title            string `json:"title"`
	SourceSection    string `json:"source_section"`
	EstimatedMinutes int    `json:"estimated_minutes"`
	Date             string `json:"date"`
}
