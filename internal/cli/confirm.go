package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/alexanderramin/dayplan/internal/contract"
	"github.com/alexanderramin/dayplan/internal/timetext"
)

// confirmEvents shows the reconciled schedule and asks before any calendar
// writes happen.
func confirmEvents(events []contract.NormalizedEvent) (bool, error) {
	lines := make([]string, 0, len(events))
	for _, ev := range events {
		lines = append(lines, fmt.Sprintf("%s-%s  %s",
			timetext.MinutesToClock(ev.Interval.Start),
			timetext.MinutesToClock(ev.Interval.End),
			ev.Title))
	}

	var approve bool
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(fmt.Sprintf("Create %d calendar events?", len(events))).
			Description(strings.Join(lines, "\n")).
			Affirmative("Create").
			Negative("Abort").
			Value(&approve),
	))
	if err := form.Run(); err != nil {
		return false, err
	}
	return approve, nil
}
