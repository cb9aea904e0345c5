package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/dayplan/internal/cli/formatter"
	"github.com/alexanderramin/dayplan/internal/contract"
	"github.com/alexanderramin/dayplan/internal/schedule"
)

func newValidateCmd(app *App) *cobra.Command {
	var date string
	var preSort bool

	cmd := &cobra.Command{
		Use:   "validate <plan.json>",
		Short: "Check a plan file against the calendar without creating events",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if date == "" {
				date = time.Now().Format("2006-01-02")
			}

			plan, err := loadPlanFile(args[0])
			if err != nil {
				return err
			}

			busy, err := app.Calendar.ListEventsForDate(context.Background(), date)
			if err != nil {
				return err
			}
			free := schedule.ComputeFreeWindows(busy, app.WorkStart, app.WorkEnd)

			result := schedule.ValidateAndNormalize(plan.TimeBlocks, busy, free, schedule.Options{
				WorkStart: app.WorkStart,
				WorkEnd:   app.WorkEnd,
				PreSort:   preSort,
			})

			fmt.Println(formatter.Header("Validation " + date))
			fmt.Printf("  Status: %s\n\n", formatter.StatusIndicator(result.Status))
			printValidation(result)

			if result.Status != contract.StatusOK {
				return fmt.Errorf("plan failed validation with %d errors", len(result.Errors))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day to validate against (YYYY-MM-DD, default today)")
	cmd.Flags().BoolVar(&preSort, "sort", false, "Sort time blocks chronologically before validating")

	return cmd
}

// loadPlanFile reads a structured plan from a JSON file. Shape problems are
// accumulated so one pass reports everything wrong with the file.
func loadPlanFile(path string) (contract.GeneratedPlan, error) {
	var plan contract.GeneratedPlan

	data, err := os.ReadFile(path)
	if err != nil {
		return plan, fmt.Errorf("reading plan file: %w", err)
	}
	if err := json.Unmarshal(data, &plan); err != nil {
		return plan, fmt.Errorf("parsing plan file: %w", err)
	}

	var problems []string
	if len(plan.TimeBlocks) == 0 {
		problems = append(problems, "time_blocks is empty")
	}
	for i, b := range plan.TimeBlocks {
		if strings.TrimSpace(b.Time) == "" {
			problems = append(problems, fmt.Sprintf("time block %d has no time", i+1))
		}
		if strings.TrimSpace(b.Activity) == "" && strings.TrimSpace(b.CalendarTitle) == "" {
			problems = append(problems, fmt.Sprintf("time block %d has no activity", i+1))
		}
	}
	if len(problems) > 0 {
		return plan, fmt.Errorf("invalid plan file: %s", strings.Join(problems, "; "))
	}

	return plan, nil
}
