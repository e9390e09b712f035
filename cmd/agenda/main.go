package main

import (
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/agenda/internal/cli"
	"github.com/julianstephens/agenda/internal/constants"
	"github.com/julianstephens/agenda/internal/errors"
	"github.com/julianstephens/agenda/internal/logger"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Storage file path. A .json suffix selects the JSON file store; ':memory:' keeps everything in memory." type:"path" default:"${default_config}"`
	Debug   bool   `help:"Enable debug logging."`
	Today   string `help:"Reference date for commands (YYYY-MM-DD, today, tomorrow, yesterday)." default:"today"`

	Init     cli.InitCmd     `cmd:"" help:"Initialize agenda storage."`
	Tui      cli.TuiCmd      `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Day      cli.DayCmd      `cmd:"" help:"Show the timeline of a day."`
	Week     cli.WeekCmd     `cmd:"" help:"Show the weekly rollup."`
	Calendar cli.CalendarCmd `cmd:"" help:"Show a month with the days that have entries."`
	Slot     cli.SlotCmd     `cmd:"" help:"Edit time slots."`
	QuickAdd cli.QuickAddCmd `cmd:"" name:"quickadd" help:"Add an entry at a time, optionally moving it from another."`
	Task     cli.TaskCmd     `cmd:"" help:"Manage day and week task lists."`
	Meal     cli.MealCmd     `cmd:"" help:"Manage meals."`
	Notes    cli.NotesCmd    `cmd:"" help:"Manage day and week notes."`
	Settings cli.SettingsCmd `cmd:"" help:"Show or change settings."`
	Backup   cli.BackupCmd   `cmd:"" help:"Manage backups."`
	Export   cli.ExportCmd   `cmd:"" help:"Export all stored data as JSON or YAML."`
	Import   cli.ImportCmd   `cmd:"" help:"Import a snapshot produced by export."`
	Doctor   cli.DoctorCmd   `cmd:"" help:"Run health checks."`
	Validate cli.ValidateCmd `cmd:"" help:"Check stored data for problems."`
	DebugCmd cli.DebugCmd    `cmd:"" name:"debug" help:"Inspect raw storage."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Daily agenda: time slots, tasks, meals and notes"),
		kong.UsageOnError(),
		kong.Vars{
			"version":        constants.Version,
			"default_config": constants.DefaultConfigPath,
		},
	)

	// The path mapper makes ":memory:" absolute; undo that.
	path := CLI.Config
	if filepath.Base(path) == constants.MemoryStorePath {
		path = constants.MemoryStorePath
	}

	logCfg := logger.Config{Debug: CLI.Debug}
	if path != constants.MemoryStorePath {
		logCfg.ConfigDir = filepath.Dir(path)
	}
	if err := logger.Init(logCfg); err != nil {
		errors.Fatalf("failed to initialize logger: %v", err)
	}

	date, err := cli.ParseDate(CLI.Today, time.Now())
	if err != nil {
		errors.Fatal(err)
	}

	store := cli.OpenStore(path)
	defer store.Close()

	if ctx.Command() != "init" {
		if path == constants.MemoryStorePath {
			// nothing persists between runs
			errors.Fatal(store.Init())
		} else {
			errors.Fatal(store.Load())
		}
	}

	errors.Fatal(ctx.Run(cli.NewContext(store, date)))
}
