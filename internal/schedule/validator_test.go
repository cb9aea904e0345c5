package schedule

import (
	"strings"
	"testing"

	"github.com/alexanderramin/dayplan/internal/contract"
	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tb(time, activity string) contract.TimeBlock {
	return contract.TimeBlock{Time: time, Activity: activity}
}

func TestValidateAndNormalize_CleanPlan(t *testing.T) {
	free := []domain.TimeInterval{iv(480, 1200)}
	res := ValidateAndNormalize([]contract.TimeBlock{
		tb("8:00-9:30", "Deep work"),
		tb("9:30-10:00", "Break"),
	}, nil, free, Options{})

	require.Equal(t, contract.StatusOK, res.Status)
	require.Len(t, res.Events, 2)
	assert.Equal(t, "Deep work", res.Events[0].Title)
	assert.Equal(t, iv(480, 570), res.Events[0].Interval)
	assert.Equal(t, iv(570, 600), res.Events[1].Interval)
	assert.Empty(t, res.Errors)

	// 10:00 to 20:00 is an idle tail well past the tolerance.
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "unscheduled minutes")
}

func TestValidateAndNormalize_EmptyPlanIsStructuralError(t *testing.T) {
	res := ValidateAndNormalize(nil, nil, nil, Options{})
	assert.Equal(t, contract.StatusError, res.Status)
	assert.Empty(t, res.Events)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "no time blocks")
}

func TestValidateAndNormalize_UnparsableTimeIsError(t *testing.T) {
	res := ValidateAndNormalize([]contract.TimeBlock{
		tb("whenever", "Deep work"),
		tb("9:00-10:00", "Real work"),
	}, nil, nil, Options{})

	assert.Equal(t, contract.StatusError, res.Status)
	assert.Empty(t, res.Events)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "invalid time format")
}

func TestValidateAndNormalize_DuplicateTitleIsWarningNotError(t *testing.T) {
	busyEvents := []domain.BusyEvent{busy("Standup", 540, 600)}
	res := ValidateAndNormalize([]contract.TimeBlock{
		tb("9:00-9:30", "Standup"),
	}, busyEvents, ComputeFreeWindows(busyEvents, 480, 1200), Options{})

	assert.Equal(t, contract.StatusOK, res.Status)
	assert.Empty(t, res.Events)
	assert.Empty(t, res.Errors)
	require.NotEmpty(t, res.Warnings)
	assert.Contains(t, res.Warnings[0], "already on the calendar as 'Standup'")
}

func TestValidateAndNormalize_SubstringTitlesCountAsDuplicates(t *testing.T) {
	busyEvents := []domain.BusyEvent{busy("Weekly team standup", 540, 600)}
	res := ValidateAndNormalize([]contract.TimeBlock{
		tb("9:00-10:00", "Standup"),
	}, busyEvents, nil, Options{})

	assert.Equal(t, contract.StatusOK, res.Status)
	assert.Empty(t, res.Events)
	assert.Empty(t, res.Errors)
}

func TestValidateAndNormalize_ConflictWithDissimilarTitle(t *testing.T) {
	busyEvents := []domain.BusyEvent{busy("Dentist", 540, 600)}
	res := ValidateAndNormalize([]contract.TimeBlock{
		tb("9:00-10:00", "Deep work"),
		tb("10:00-11:00", "Email triage"),
	}, busyEvents, ComputeFreeWindows(busyEvents, 480, 1200), Options{})

	// The second block survives, so the conflict stays an error.
	assert.Equal(t, contract.StatusError, res.Status)
	assert.Empty(t, res.Events)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "conflicts with existing event 'Dentist'")
}

func TestValidateAndNormalize_AllConflictsDemotedToWarnings(t *testing.T) {
	busyEvents := []domain.BusyEvent{
		busy("Dentist", 540, 600),
		busy("Board call", 840, 900),
	}
	res := ValidateAndNormalize([]contract.TimeBlock{
		tb("9:00-10:00", "Deep work"),
		tb("14:00-15:00", "Customer calls"),
	}, busyEvents, ComputeFreeWindows(busyEvents, 480, 1200), Options{})

	assert.Equal(t, contract.StatusOK, res.Status)
	assert.Empty(t, res.Events)
	assert.Empty(t, res.Errors)
	assert.GreaterOrEqual(t, len(res.Warnings), 2)
	assert.Contains(t, res.Warnings[0], "conflicts with existing event")
}

func TestValidateAndNormalize_SequencingViolation(t *testing.T) {
	res := ValidateAndNormalize([]contract.TimeBlock{
		tb("10:00-11:00", "Deep work"),
		tb("10:30-11:30", "Overlapping item"),
	}, nil, nil, Options{})

	assert.Equal(t, contract.StatusError, res.Status)
	assert.Empty(t, res.Events)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "overlaps with an earlier scheduled item")
}

func TestValidateAndNormalize_GapWarning(t *testing.T) {
	res := ValidateAndNormalize([]contract.TimeBlock{
		tb("8:00-9:00", "Deep work"),
		tb("10:30-11:30", "Late start"),
	}, nil, nil, Options{})

	require.Equal(t, contract.StatusOK, res.Status)
	require.Len(t, res.Events, 2)

	var gapSeen bool
	for _, w := range res.Warnings {
		if strings.Contains(w, "gap of 90 minutes") && strings.Contains(w, "Late start") {
			gapSeen = true
		}
	}
	assert.True(t, gapSeen, "expected a 90-minute gap warning, got %v", res.Warnings)
}

func TestValidateAndNormalize_FreeWindowContainment(t *testing.T) {
	free := []domain.TimeInterval{iv(480, 540), iv(600, 1200)}
	res := ValidateAndNormalize([]contract.TimeBlock{
		tb("8:00-8:30", "Fits"),
		tb("8:30-9:30", "Spans two windows"),
	}, nil, free, Options{})

	// One accepted event blocks the demotion path.
	assert.Equal(t, contract.StatusError, res.Status)
	assert.Empty(t, res.Events)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "does not fit within any available free window")
}

func TestValidateAndNormalize_ContainmentDemotedWhenNothingSurvives(t *testing.T) {
	free := []domain.TimeInterval{iv(480, 510)}
	res := ValidateAndNormalize([]contract.TimeBlock{
		tb("8:00-9:00", "Too long for the window"),
	}, nil, free, Options{})

	assert.Equal(t, contract.StatusOK, res.Status)
	assert.Empty(t, res.Events)
	assert.Empty(t, res.Errors)
	require.NotEmpty(t, res.Warnings)
	assert.Contains(t, res.Warnings[0], "does not fit within any available free window")
}

func TestValidateAndNormalize_NoFreeContextSkipsContainment(t *testing.T) {
	res := ValidateAndNormalize([]contract.TimeBlock{
		tb("9:00-10:00", "Deep work"),
	}, nil, nil, Options{})

	assert.Equal(t, contract.StatusOK, res.Status)
	require.Len(t, res.Events, 1)
}

func TestValidateAndNormalize_OutsideWorkingHoursWarning(t *testing.T) {
	res := ValidateAndNormalize([]contract.TimeBlock{
		tb("20:00-21:00", "Evening reading"),
	}, nil, nil, Options{})

	require.Equal(t, contract.StatusOK, res.Status)
	require.Len(t, res.Events, 1)
	assert.Contains(t, res.Warnings[0], "falls outside working hours 08:00-20:00")
}

func TestValidateAndNormalize_CalendarTitleAndDescription(t *testing.T) {
	res := ValidateAndNormalize([]contract.TimeBlock{
		{
			Time:              "9:00-10:00",
			Activity:          "Work through internship applications",
			CalendarTitle:     "Internship sprint",
			Notes:             "start with the two referrals",
			SourceActionItems: []string{"internship applications"},
		},
	}, nil, nil, Options{})

	require.Equal(t, contract.StatusOK, res.Status)
	require.Len(t, res.Events, 1)
	ev := res.Events[0]
	assert.Equal(t, "Internship sprint", ev.Title)
	assert.Contains(t, ev.Description, "Work through internship applications")
	assert.Contains(t, ev.Description, "Notes: start with the two referrals")
	assert.Contains(t, ev.Description, "Action items: internship applications")
}

func TestValidateAndNormalize_UnmatchedActionItems(t *testing.T) {
	res := ValidateAndNormalize([]contract.TimeBlock{
		tb("9:00-10:00", "Internship applications and follow-ups"),
	}, nil, nil, Options{
		ExpectedActionItems: []string{"internship applications", "water the plants"},
	})

	require.Equal(t, contract.StatusOK, res.Status)
	assert.Equal(t, []string{"water the plants"}, res.UnmatchedActionItems)
}

func TestValidateAndNormalize_RevalidatingNormalizedOutputIsStable(t *testing.T) {
	busyEvents := []domain.BusyEvent{busy("Standup", 600, 630)}
	free := ComputeFreeWindows(busyEvents, 480, 1200)
	first := ValidateAndNormalize([]contract.TimeBlock{
		tb("8:30-9:30", "Deep work"),
	}, busyEvents, free, Options{})
	require.Equal(t, contract.StatusOK, first.Status)
	require.Len(t, first.Events, 1)

	again := ValidateAndNormalize([]contract.TimeBlock{
		{Time: first.Events[0].Interval.String(), Activity: first.Events[0].Title},
	}, busyEvents, free, Options{})
	require.Equal(t, contract.StatusOK, again.Status)
	require.Len(t, again.Events, 1)
	assert.Equal(t, first.Events[0].Interval, again.Events[0].Interval)
	assert.Equal(t, first.Events[0].Title, again.Events[0].Title)
}

func TestValidateAndNormalize_PreSortReordersBlocks(t *testing.T) {
	blocks := []contract.TimeBlock{
		tb("10:00-11:00", "Second task"),
		tb("8:30-9:30", "First task"),
	}

	// Unsorted input reads the later item first, so the earlier one
	// surfaces as an overlap error.
	res := ValidateAndNormalize(blocks, nil, nil, Options{})
	require.Equal(t, contract.StatusError, res.Status)

	res = ValidateAndNormalize(blocks, nil, nil, Options{PreSort: true})
	require.Equal(t, contract.StatusOK, res.Status)
	require.Len(t, res.Events, 2)
	assert.Equal(t, "First task", res.Events[0].Title)
	assert.Equal(t, "Second task", res.Events[1].Title)
}
