package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/dayplan/internal/cli/formatter"
	"github.com/alexanderramin/dayplan/internal/history"
)

func newHistoryCmd(app *App) *cobra.Command {
	var date string
	var limit int

	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "Show recorded pipeline runs",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			if len(args) == 1 {
				return printRunEvents(ctx, app, args[0])
			}

			var runs []*history.Run
			var err error
			if date != "" {
				runs, err = app.History.RunsForDate(ctx, date)
			} else {
				runs, err = app.History.ListRuns(ctx, limit)
			}
			if err != nil {
				return err
			}

			if len(runs) == 0 {
				fmt.Println(formatter.Dim("No recorded runs."))
				return nil
			}

			headers := []string{"Run", "Date", "Source", "Status", "Events", "Warn", "Err"}
			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, []string{
					formatter.Dim(shortID(run.ID)),
					run.Date,
					run.PlanSource,
					formatter.StatusIndicator(run.Status),
					fmt.Sprintf("%d", run.EventsCreated),
					fmt.Sprintf("%d", len(run.Warnings)),
					fmt.Sprintf("%d", len(run.Errors)),
				})
			}
			fmt.Print(formatter.RenderTable(headers, rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Only runs that planned this date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to show")

	return cmd
}

func printRunEvents(ctx context.Context, app *App, runID string) error {
	events, err := app.History.EventsForRun(ctx, runID)
	if err != nil {
		return err
	}

	fmt.Println(formatter.Header("Run " + shortID(runID)))
	if len(events) == 0 {
		fmt.Println(formatter.Dim("  No events were created in this run."))
		return nil
	}

	headers := []string{"Time", "Title", "Backend ID"}
	rows := make([][]string, 0, len(events))
	for _, ev := range events {
		rows = append(rows, []string{
			ev.StartTime + "-" + ev.EndTime,
			ev.Title,
			formatter.Dim(ev.BackendEventID),
		})
	}
	fmt.Print(formatter.RenderTable(headers, rows))
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
