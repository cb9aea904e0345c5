package domain

// Section categorizes user journal content by the template heading it
// appeared under.
type Section string

const (
	SectionGeneral          Section = "general"
	SectionBuiltToday       Section = "built_today"
	SectionEmotionalWork    Section = "emotional_work"
	SectionShippedCode      Section = "shipped_code"
	SectionIdealSelf        Section = "ideal_self"
	SectionChallenges       Section = "challenges"
	SectionTechProgress     Section = "tech_progress"
	SectionImprovements     Section = "improvements"
	SectionTomorrowPriority Section = "tomorrow_priority"
	SectionTomorrowTool     Section = "tomorrow_tool"
)

// Sections returns all sections in template order.
func Sections() []Section {
	return []Section{
		SectionGeneral,
		SectionBuiltToday,
		SectionEmotionalWork,
		SectionShippedCode,
		SectionIdealSelf,
		SectionChallenges,
		SectionTechProgress,
		SectionImprovements,
		SectionTomorrowPriority,
		SectionTomorrowTool,
	}
}

// SectionLabel maps a section to the readable name used in generator
// prompts and console output.
func SectionLabel(s Section) string {
	switch s {
	case SectionBuiltToday:
		return "What I Built Today"
	case SectionEmotionalWork:
		return "Emotional/Technical Work Done"
	case SectionShippedCode:
		return "Code/Features Shipped"
	case SectionIdealSelf:
		return "What My Ideal Self Would Do"
	case SectionChallenges:
		return "Challenges Faced"
	case SectionTechProgress:
		return "Technical Stack Progress"
	case SectionImprovements:
		return "Daily Improvements"
	case SectionTomorrowPriority:
		return "Tomorrow's Priority"
	case SectionTomorrowTool:
		return "Tomorrow's Tool Focus"
	default:
		return "General Notes"
	}
}

// JournalBlock is one content block from the journal store, flattened
// to plain text.
type JournalBlock struct {
	Type       string
	Text       string
	Created    string
	LastEdited string
}

// JournalEntry is the journal content for a single date. The store reports
// a missing date as an error rather than a zero entry.
type JournalEntry struct {
	Date       string
	PageID     string
	Created    string
	LastEdited string
	Blocks     []JournalBlock
}
