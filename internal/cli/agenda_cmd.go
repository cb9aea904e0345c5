package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/dayplan/internal/cli/formatter"
	"github.com/alexanderramin/dayplan/internal/schedule"
	"github.com/alexanderramin/dayplan/internal/timetext"
)

func newAgendaCmd(app *App) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "agenda",
		Short: "Show busy events and free windows for a day",
		RunE: func(cmd *cobra.Command, args []string) error {
			if date == "" {
				date = time.Now().Format("2006-01-02")
			}

			busy, err := app.Calendar.ListEventsForDate(context.Background(), date)
			if err != nil {
				return err
			}
			free := schedule.ComputeFreeWindows(busy, app.WorkStart, app.WorkEnd)

			fmt.Println(formatter.Header("Agenda " + date))
			fmt.Printf("  Working hours %s-%s\n\n",
				timetext.MinutesToClock(app.WorkStart),
				timetext.MinutesToClock(app.WorkEnd))

			if len(busy) > 0 {
				headers := []string{"Time", "Event"}
				rows := make([][]string, 0, len(busy))
				for _, ev := range busy {
					rows = append(rows, []string{ev.Interval.String(), ev.Title})
				}
				fmt.Print(formatter.RenderTable(headers, rows))
				fmt.Println()
			} else {
				fmt.Println(formatter.Dim("  No events on the calendar."))
				fmt.Println()
			}

			fmt.Println(formatter.Header("Free Windows"))
			if len(free) == 0 {
				fmt.Println(formatter.Dim("  The working day is fully booked."))
				return nil
			}
			headers := []string{"Time", "Minutes"}
			rows := make([][]string, 0, len(free))
			for _, w := range free {
				rows = append(rows, []string{w.String(), fmt.Sprintf("%d", w.Duration())})
			}
			fmt.Print(formatter.RenderTable(headers, rows))

			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day to inspect (YYYY-MM-DD, default today)")

	return cmd
}
