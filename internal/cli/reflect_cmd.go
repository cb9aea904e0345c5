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

func newReflectCmd(app *App) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "reflect",
		Short: "Generate a short reflection over a journal entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			if date == "" {
				date = time.Now().Format("2006-01-02")
			}

			entry, err := app.Journal.EntryForDate(context.Background(), date)
			if err != nil {
				return err
			}

			sections := extract.ClassifySections(entry.Blocks)
			labeled := make(map[string][]string, len(sections))
			for section, texts := range sections {
				labeled[domain.SectionLabel(section)] = texts
			}

			text, err := app.Reflector.Reflect(context.Background(), labeled)
			if err != nil {
				return err
			}

			fmt.Println(formatter.Header("Reflection " + date))
			fmt.Println(text)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Journal entry date (YYYY-MM-DD, default today)")

	return cmd
}
