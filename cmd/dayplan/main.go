package main

import (
	"fmt"
	"os"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/alexanderramin/dayplan/internal/calendar"
	"github.com/alexanderramin/dayplan/internal/cli"
	"github.com/alexanderramin/dayplan/internal/config"
	"github.com/alexanderramin/dayplan/internal/db"
	"github.com/alexanderramin/dayplan/internal/history"
	"github.com/alexanderramin/dayplan/internal/journal"
	"github.com/alexanderramin/dayplan/internal/llm"
	"github.com/alexanderramin/dayplan/internal/pipeline"
	"github.com/alexanderramin/dayplan/internal/planner"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := os.Getenv("DAYPLAN_CONFIG")
	if cfgPath == "" {
		cfgPath = config.DefaultPath()
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	workStart, workEnd, err := cfg.WorkWindow()
	if err != nil {
		return err
	}

	loc := time.Local
	if cfg.Timezone != "" && cfg.Timezone != "Local" {
		loc, err = time.LoadLocation(cfg.Timezone)
		if err != nil {
			return fmt.Errorf("loading timezone %q: %w", cfg.Timezone, err)
		}
	}

	database, err := db.OpenDB(cfg.HistoryDB)
	if err != nil {
		return fmt.Errorf("opening history database: %w", err)
	}
	defer database.Close()
	runs := history.NewRepo(database)

	journalStore := journal.NewStore(cfg.Journal.Token, cfg.Journal.DatabaseID)

	var backend calendar.Backend
	switch cfg.Calendar.Backend {
	case config.BackendICS:
		backend = calendar.NewICSBackend(cfg.Calendar.ICSPath, loc)
	default:
		backend = calendar.NewRESTBackend(cfg.Calendar.BaseURL, cfg.Calendar.Token)
	}

	llmCfg := llm.LoadConfig()
	var observer llm.Observer = llm.NoopObserver{}
	if llmCfg.LogCalls {
		observer = llm.NewLogObserver(os.Stderr)
	}
	client := llm.NewClient(llmCfg, observer)
	plannerSvc := planner.NewService(client, workStart, workEnd)

	svc := &pipeline.Service{
		Journal:   journalStore,
		Planner:   plannerSvc,
		Calendar:  backend,
		History:   runs,
		WorkStart: workStart,
		WorkEnd:   workEnd,
	}

	app := &cli.App{
		Pipeline:    svc,
		Journal:     journalStore,
		Calendar:    backend,
		History:     runs,
		Reflector:   plannerSvc,
		WorkStart:   workStart,
		WorkEnd:     workEnd,
		Interactive: isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()),
	}

	return cli.NewRootCmd(app).Execute()
}
