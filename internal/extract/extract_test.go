package extract

import (
	"testing"

	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func block(typ, text string) domain.JournalBlock {
	return domain.JournalBlock{Type: typ, Text: text}
}

func TestExtractExplicitPlan_PlanForTomorrow(t *testing.T) {
	blocks := []domain.JournalBlock{
		block("heading_2", "Plan for Tomorrow"),
		block("paragraph", "9:00-10:30: Deep work on accounting system"),
		block("paragraph", "11:00-12:00: Internship applications"),
		block("paragraph", "2pm-3:30pm: Customer discovery calls"),
		block("paragraph", "4:00: Code review (1 hour)"),
	}

	items := ExtractExplicitPlan(blocks)
	require.Len(t, items, 4)

	assert.Equal(t, domain.TimeInterval{Start: 540, End: 630}, items[0].Interval)
	assert.Equal(t, "Deep work on accounting system", items[0].Task)
	assert.Equal(t, domain.SourceExplicitPlan, items[0].Source)

	assert.Equal(t, domain.TimeInterval{Start: 840, End: 930}, items[2].Interval)
	assert.Equal(t, "Customer discovery calls", items[2].Task)

	// "4:00" carries explicit minutes, so no afternoon bias applies.
	assert.Equal(t, domain.TimeInterval{Start: 240, End: 300}, items[3].Interval)
}

func TestExtractExplicitPlan_ProseLinesSkippedSilently(t *testing.T) {
	blocks := []domain.JournalBlock{
		block("heading_2", "Build Blocks (Tomorrow's System)"),
		block("paragraph", "(Estimate time + set anchor order)"),
		block("paragraph", "Meet with Chris 2 hours"),
		block("paragraph", "9:00-10:00 accounting homework"),
	}

	items := ExtractExplicitPlan(blocks)
	require.Len(t, items, 1)
	assert.Equal(t, "accounting homework", items[0].Task)
}

func TestExtractExplicitPlan_NoPlanningSection(t *testing.T) {
	blocks := []domain.JournalBlock{
		block("paragraph", "Shipped the importer today."),
		block("paragraph", "9:00-10:00 this line is outside any plan"),
	}

	// Without a planning keyword nothing is ever treated as a plan line.
	assert.Empty(t, ExtractExplicitPlan(blocks))
}

func TestExtractExplicitPlan_TemplateBlocksSkippedInsideSection(t *testing.T) {
	blocks := []domain.JournalBlock{
		block("heading_2", "Tasks for the morning"),
		block("paragraph", "Estimate total time before committing"),
		block("paragraph", "8:00-8:30 Standup prep"),
	}

	items := ExtractExplicitPlan(blocks)
	require.Len(t, items, 1)
	assert.Equal(t, "Standup prep", items[0].Task)
}

func TestClassifySections(t *testing.T) {
	blocks := []domain.JournalBlock{
		block("heading_2", "What Did I Build Today (Time to Ship)"),
		block("paragraph", "Finished the validator rewrite"),
		block("heading_2", "Dangerous Entrepreneur mode"),
		block("paragraph", "Ship before polishing"),
		block("paragraph", "Some stray note"),
	}

	sections := ClassifySections(blocks)

	assert.Equal(t, []string{"Finished the validator rewrite"}, sections[domain.SectionBuiltToday])
	assert.Equal(t, []string{"Ship before polishing", "Some stray note"}, sections[domain.SectionIdealSelf])
	assert.Empty(t, sections[domain.SectionGeneral])
}

func TestClassifySections_GeneralBucketBeforeAnyHeading(t *testing.T) {
	blocks := []domain.JournalBlock{
		block("paragraph", "woke up late, rough start"),
	}
	sections := ClassifySections(blocks)
	assert.Equal(t, []string{"woke up late, rough start"}, sections[domain.SectionGeneral])
}

func TestCollectActionItems(t *testing.T) {
	sections := map[domain.Section][]string{
		domain.SectionTomorrowPriority: {
			"internship applications 90 min",
			"finish accounting reconciliation",
		},
		domain.SectionImprovements: {
			"reply to investor email",
		},
	}

	items := CollectActionItems(sections, "2025-07-20")
	require.Len(t, items, 3)

	// Explicit 90 min estimate clamped by the internship cap.
	assert.Equal(t, 55, items[0].EstimatedMinutes)
	// "account" keyword caps the section baseline of 60 down to 50.
	assert.Equal(t, 50, items[1].EstimatedMinutes)
	// The improvements baseline of 30 already sits below the email cap
	// of 35, so no clamping happens.
	assert.Equal(t, 30, items[2].EstimatedMinutes)

	assert.Equal(t, "Tomorrow's Priority", items[0].SourceSection)
	assert.Equal(t, "2025-07-20", items[2].Date)
}

func TestIsTemplate(t *testing.T) {
	assert.True(t, IsTemplate("Daily Founder Frame — morning"))
	assert.True(t, IsTemplate("What Did I Build Today"))
	assert.False(t, IsTemplate("Built the ICS adapter"))
}
