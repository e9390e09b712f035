package cli

import (
	"fmt"
	"time"

	"github.com/julianstephens/agenda/internal/backup"
	"github.com/julianstephens/agenda/internal/storage/sqlite"
	"github.com/julianstephens/agenda/internal/validation"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	ctx.println("Running diagnostics...")
	ctx.println()

	hasError := false
	check := func(name string, err error) {
		if err != nil {
			ctx.printf("%s %s: FAIL\n", red("❌"), name)
			ctx.printf("   Error: %v\n", err)
			hasError = true
			return
		}
		ctx.printf("%s %s: OK\n", green("✓"), name)
	}

	storeErr := checkStoreReachable(ctx)
	check("Storage reachable", storeErr)
	check("Schema version", checkSchemaVersion(ctx))

	// Backups are a warning only
	if err := checkBackupsPresent(ctx); err != nil {
		ctx.printf("%s Backups present: WARNING\n", yellow("⚠"))
		ctx.printf("   %v\n", err)
	} else {
		ctx.printf("%s Backups present: OK\n", green("✓"))
	}

	if storeErr == nil {
		check("Data validation", checkValidation(ctx))
	} else {
		ctx.printf("%s Data validation: SKIPPED (storage not reachable)\n", gray("⊘"))
	}

	check("Clock/timezone", checkClockTimezone(ctx))

	ctx.println()
	if hasError {
		ctx.println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	ctx.println("All diagnostics passed!")
	return nil
}

func checkStoreReachable(ctx *Context) error {
	if _, err := ctx.Store.Keys(""); err != nil {
		return fmt.Errorf("failed to list keys: %w", err)
	}
	if v, ok := ctx.Store.(interface{ Verify() error }); ok {
		if err := v.Verify(); err != nil {
			return err
		}
	}
	if s, ok := ctx.Store.(*sqlite.Store); ok {
		db := s.GetDB()
		if db == nil {
			return fmt.Errorf("database connection is nil")
		}
		var result int
		if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}
	return nil
}

func checkSchemaVersion(ctx *Context) error {
	s, ok := ctx.Store.(*sqlite.Store)
	if !ok {
		// file and memory stores have no schema
		return nil
	}
	status, err := s.MigrationStatus()
	if err != nil {
		return err
	}
	if !status.UpToDate() {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d", status.Current, status.Latest)
	}
	return nil
}

func checkBackupsPresent(ctx *Context) error {
	mgr, err := backup.NewManager(ctx.Store.GetConfigPath())
	if err != nil {
		return err
	}
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'agenda backup create'")
	}
	return nil
}

func checkValidation(ctx *Context) error {
	report, err := validation.CheckStore(ctx.Store)
	if err != nil {
		return err
	}
	if report.HasConflicts() {
		return fmt.Errorf("%d problems found, run 'agenda validate' for details", len(report.Conflicts))
	}
	return nil
}

func checkClockTimezone(ctx *Context) error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	if now.Location() == time.UTC {
		// Day keys use local calendar fields, so note it
		ctx.printf("   Note: timezone is UTC\n")
	}
	return nil
}
