// Package extract turns raw journal blocks into structured planning inputs:
// classified user content sections, an explicit day plan when the user wrote
// one, and duration-estimated action items.
package extract

import (
	"strings"

	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/alexanderramin/dayplan/internal/timetext"
)

// templatePhrases identifies journal-template boilerplate. Matching is an
// exact substring test against the block text.
var templatePhrases = []string{
	"Notion Template", "Daily Founder Frame", "Entrepreneur Identity Tracker",
	"Entrepreneurial Creed", "Time to Ship", "What Did I Build Today",
	"technical rep", "Name your enemy", "Dangerous Entrepreneur",
	"Call it out", "Train your mind", "Estimate total time",
}

// planningKeywords flip the extractor into its planning section.
// Matching is a case-insensitive substring test.
var planningKeywords = []string{
	"tomorrow", "plan for", "schedule", "to do", "tasks for", "build blocks",
}

// IsTemplate reports whether a block is journal-template boilerplate
// rather than user content.
func IsTemplate(text string) bool {
	lower := strings.ToLower(text)
	for _, phrase := range templatePhrases {
		if strings.Contains(lower, strings.ToLower(phrase)) {
			return true
		}
	}
	return false
}

// sectionForHeading maps a template heading to the section it opens.
func sectionForHeading(text string) (domain.Section, bool) {
	switch {
	case strings.Contains(text, "What Did I Build Today"):
		return domain.SectionBuiltToday, true
	case strings.Contains(text, "technical rep"):
		return domain.SectionEmotionalWork, true
	case strings.Contains(text, "module, snippet, or flow"):
		return domain.SectionShippedCode, true
	case strings.Contains(text, "Dangerous Entrepreneur"):
		return domain.SectionIdealSelf, true
	case strings.Contains(text, "Scar Faced"):
		return domain.SectionChallenges, true
	case strings.Contains(text, "part of the stack"):
		return domain.SectionTechProgress, true
	case strings.Contains(text, "3 ways better"):
		return domain.SectionImprovements, true
	case strings.Contains(text, "one thing to do tomorrow"):
		return domain.SectionTomorrowPriority, true
	case strings.Contains(text, "tool am I rep"):
		return domain.SectionTomorrowTool, true
	}
	return "", false
}

// ClassifySections walks the block sequence and buckets user content by the
// template heading it appeared under. Template blocks themselves are dropped;
// headings among them move the cursor to the matching section.
func ClassifySections(blocks []domain.JournalBlock) map[domain.Section][]string {
	sections := make(map[domain.Section][]string)
	current := domain.SectionGeneral

	for _, block := range blocks {
		text := strings.TrimSpace(block.Text)
		if text == "" {
			continue
		}
		if IsTemplate(text) {
			if strings.HasPrefix(block.Type, "heading") {
				if section, ok := sectionForHeading(text); ok {
					current = section
				}
			}
			continue
		}
		sections[current] = append(sections[current], text)
	}

	return sections
}

// ExtractExplicitPlan scans journal blocks for a user-authored day plan.
//
// The scan is a two-state machine: blocks are ignored until one contains a
// planning keyword; from then on every non-template block is a plan-line
// candidate for the remainder of the sequence. Lines that carry no parseable
// time window are assumed to be prose and skipped without error. An empty
// result means no explicit plan exists and the caller should fall back to a
// generated plan.
func ExtractExplicitPlan(blocks []domain.JournalBlock) []domain.PlanItem {
	var items []domain.PlanItem
	inPlanningSection := false

	for _, block := range blocks {
		text := strings.TrimSpace(block.Text)
		if text == "" {
			continue
		}

		if !inPlanningSection {
			lower := strings.ToLower(text)
			for _, kw := range planningKeywords {
				if strings.Contains(lower, kw) {
					inPlanningSection = true
					break
				}
			}
			continue
		}

		if IsTemplate(text) {
			continue
		}

		iv, task, ok := timetext.ParsePlanLine(text)
		if !ok {
			continue
		}
		items = append(items, domain.PlanItem{
			Interval: iv,
			Task:     task,
			Source:   domain.SourceExplicitPlan,
		})
	}

	return items
}

// sectionBaselines gives each action-item source section a default minute
// estimate used when the item text carries no duration of its own.
var sectionBaselines = map[domain.Section]int{
	domain.SectionTomorrowPriority: 60,
	domain.SectionTomorrowTool:     45,
	domain.SectionChallenges:       40,
	domain.SectionImprovements:     30,
}

// durationCaps clamp estimates downward for task categories that tend to
// balloon. A crude prioritization signal, not a scheduling decision.
var durationCaps = []struct {
	keywords []string
	maxMin   int
}{
	{[]string{"internship", "apply"}, 55},
	{[]string{"account"}, 50},
	{[]string{"email", "dm"}, 35},
}

// CollectActionItems derives duration-estimated action items from the
// planning-relevant journal sections for a date.
func CollectActionItems(sections map[domain.Section][]string, date string) []domain.ActionItem {
	var items []domain.ActionItem

	for _, section := range []domain.Section{
		domain.SectionTomorrowPriority,
		domain.SectionTomorrowTool,
		domain.SectionChallenges,
		domain.SectionImprovements,
	} {
		baseline := sectionBaselines[section]
		for _, text := range sections[section] {
			minutes := timetext.InferDurationMinutes(text, baseline)
			lower := strings.ToLower(text)
			for _, rule := range durationCaps {
				for _, kw := range rule.keywords {
					if strings.Contains(lower, kw) && minutes > rule.maxMin {
						minutes = rule.maxMin
						break
					}
				}
			}
			items = append(items, domain.ActionItem{
				Title:            text,
				SourceSection:    domain.SectionLabel(section),
				EstimatedMinutes: minutes,
				Date:             date,
			})
		}
	}

	return items
}
