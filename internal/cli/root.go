// Package cli defines the dayplan command tree.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/dayplan/internal/calendar"
	"github.com/alexanderramin/dayplan/internal/history"
	"github.com/alexanderramin/dayplan/internal/pipeline"
)

// Runner executes one full planning pipeline invocation.
type Runner interface {
	Run(ctx context.Context, opts pipeline.RunOptions) (*pipeline.RunResult, error)
}

// Reflector produces a free-text reflection over labeled journal sections.
type Reflector interface {
	Reflect(ctx context.Context, sections map[string][]string) (string, error)
}

// HistoryReader reads recorded pipeline runs.
type HistoryReader interface {
	ListRuns(ctx context.Context, limit int) ([]*history.Run, error)
	RunsForDate(ctx context.Context, date string) ([]*history.Run, error)
	EventsForRun(ctx context.Context, runID string) ([]history.RunEvent, error)
}

// App holds references to all collaborators used by CLI commands.
type App struct {
	Pipeline  Runner
	Journal   pipeline.JournalStore
	Calendar  calendar.Backend
	History   HistoryReader
	Reflector Reflector

	WorkStart int
	WorkEnd   int

	// Interactive enables confirmation prompts; false when stdout is not
	// a terminal or --yes was given.
	Interactive bool
}

// NewRootCmd creates the top-level "dayplan" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "dayplan",
		Short: "Plan tomorrow from today's journal entry",
	}

	root.AddCommand(
		newRunCmd(app),
		newExtractCmd(app),
		newAgendaCmd(app),
		newValidateCmd(app),
		newReflectCmd(app),
		newHistoryCmd(app),
	)

	return root
}
