package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/dayplan/internal/cli/formatter"
	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/alexanderramin/dayplan/internal/extract"
)

func newExtractCmd(app *App) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Show what the planner would read from a journal entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			if date == "" {
				date = time.Now().Format("2006-01-02")
			}

			entry, err := app.Journal.EntryForDate(context.Background(), date)
			if err != nil {
				return err
			}

			sections := extract.ClassifySections(entry.Blocks)
			explicit := extract.ExtractExplicitPlan(entry.Blocks)
			items := extract.CollectActionItems(sections, date)

			fmt.Println(formatter.Header("Journal " + date))
			fmt.Printf("  %d blocks, %d sections with content\n\n", len(entry.Blocks), len(sections))

			for _, section := range domain.Sections() {
				texts := sections[section]
				if len(texts) == 0 {
					continue
				}
				fmt.Println(formatter.Bold(domain.SectionLabel(section)))
				for _, text := range texts {
					fmt.Println("  " + text)
				}
				fmt.Println()
			}

			if len(explicit) > 0 {
				fmt.Println(formatter.Header("Explicit Plan"))
				headers := []string{"Time", "Task"}
				rows := make([][]string, 0, len(explicit))
				for _, item := range explicit {
					rows = append(rows, []string{item.Interval.String(), item.Task})
				}
				fmt.Print(formatter.RenderTable(headers, rows))
				fmt.Println()
			} else {
				fmt.Println(formatter.Dim("  No explicit plan found. A run would generate one."))
				fmt.Println()
			}

			if len(items) > 0 {
				fmt.Println(formatter.Header("Action Items"))
				headers := []string{"Item", "Section", "Est. Min"}
				rows := make([][]string, 0, len(items))
				for _, item := range items {
					rows = append(rows, []string{
						item.Title,
						formatter.Dim(item.SourceSection),
						fmt.Sprintf("%d", item.EstimatedMinutes),
					})
				}
				fmt.Print(formatter.RenderTable(headers, rows))
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Journal entry date (YYYY-MM-DD, default today)")

	return cmd
}
