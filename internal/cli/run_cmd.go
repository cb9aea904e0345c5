package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/dayplan/internal/cli/formatter"
	"github.com/alexanderramin/dayplan/internal/contract"
	"github.com/alexanderramin/dayplan/internal/pipeline"
	"github.com/alexanderramin/dayplan/internal/timetext"
)

func newRunCmd(app *App) *cobra.Command {
	var planDate string
	var journalDate string
	var dryRun bool
	var yes bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Plan a day from a journal entry and create calendar events",
		RunE: func(cmd *cobra.Command, args []string) error {
			if planDate == "" {
				planDate = time.Now().Format("2006-01-02")
			}
			if journalDate == "" {
				d, err := previousDay(planDate)
				if err != nil {
					return err
				}
				journalDate = d
			}

			opts := pipeline.RunOptions{
				JournalDate: journalDate,
				PlanDate:    planDate,
				DryRun:      dryRun,
			}
			if app.Interactive && !yes && !dryRun {
				opts.Confirm = confirmEvents
			}

			result, err := app.Pipeline.Run(context.Background(), opts)
			if err != nil {
				return err
			}

			printRunResult(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&planDate, "date", "", "Day to plan (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&journalDate, "journal-date", "", "Journal entry to read (default the day before --date)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate and report without creating events")
	cmd.Flags().BoolVar(&yes, "yes", false, "Skip the confirmation prompt")

	return cmd
}

// previousDay returns the calendar day before a YYYY-MM-DD date.
func previousDay(date string) (string, error) {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", date, err)
	}
	return t.AddDate(0, 0, -1).Format("2006-01-02"), nil
}

func printRunResult(result *pipeline.RunResult) {
	fmt.Println(formatter.Header("Plan for " + result.PlanDate))
	fmt.Printf("  Journal entry: %s\n", result.JournalDate)
	fmt.Printf("  Plan source:   %s\n", string(result.PlanSource))
	fmt.Printf("  Status:        %s\n", formatter.StatusIndicator(result.Validation.Status))
	fmt.Println()

	printValidation(result.Validation)

	if result.Aborted {
		fmt.Println(formatter.Dim("  Aborted. No events were created."))
		return
	}

	if len(result.Created) > 0 {
		fmt.Println(formatter.Header("Created Events"))
		headers := []string{"Time", "Title", "Event ID"}
		rows := make([][]string, 0, len(result.Created))
		for _, ev := range result.Created {
			rows = append(rows, []string{
				ev.Start + "-" + ev.End,
				ev.Title,
				formatter.Dim(ev.EventID),
			})
		}
		fmt.Print(formatter.RenderTable(headers, rows))
	}

	for _, e := range result.CreateErrors {
		fmt.Println("  " + formatter.Errorf(e))
	}

	if result.RunID != "" {
		fmt.Println()
		fmt.Println(formatter.Dim("  Run recorded as " + result.RunID))
	}
}

func printValidation(v contract.ValidationResult) {
	if len(v.Events) > 0 {
		fmt.Println(formatter.Header("Schedule"))
		headers := []string{"Time", "Title", "Minutes"}
		rows := make([][]string, 0, len(v.Events))
		for _, ev := range v.Events {
			rows = append(rows, []string{
				timetext.MinutesToClock(ev.Interval.Start) + "-" + timetext.MinutesToClock(ev.Interval.End),
				ev.Title,
				fmt.Sprintf("%d", ev.Interval.Duration()),
			})
		}
		fmt.Print(formatter.RenderTable(headers, rows))
		fmt.Println()
	}

	for _, w := range v.Warnings {
		fmt.Println("  " + formatter.Warning(w))
	}
	for _, e := range v.Errors {
		fmt.Println("  " + formatter.Errorf(e))
	}
	if len(v.UnmatchedActionItems) > 0 {
		fmt.Println(formatter.Dim("  Not scheduled:"))
		for _, item := range v.UnmatchedActionItems {
			fmt.Println(formatter.Dim("    - " + item))
		}
	}
	if len(v.Warnings)+len(v.Errors)+len(v.UnmatchedActionItems) > 0 {
		fmt.Println()
	}
}
