package cli

import (
	"fmt"

	"github.com/julianstephens/agenda/internal/validation"
)

type ValidateCmd struct {
	Fix bool `help:"Repair what can be repaired: normalize task lists, clamp settings and drop malformed values."`
}

func (cmd *ValidateCmd) Run(ctx *Context) error {
	report, err := validation.CheckStore(ctx.Store)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	if !report.HasConflicts() {
		ctx.println(report.FormatReport())
		return nil
	}
	ctx.printf("%s", report.FormatReport())

	if !cmd.Fix {
		ctx.println("\nRun with --fix to repair these problems.")
		return fmt.Errorf("validation found %d problems", len(report.Conflicts))
	}

	ctx.PerformAutomaticBackup()
	actions, err := validation.Fix(ctx.Store, report)
	for _, a := range actions {
		ctx.printf("%s %s\n", green("✓"), a.Action)
	}
	if err != nil {
		return err
	}

	after, err := validation.CheckStore(ctx.Store)
	if err != nil {
		return err
	}
	if after.HasConflicts() {
		ctx.printf("\n%s", after.FormatReport())
		return fmt.Errorf("%d problems need manual attention", len(after.Conflicts))
	}
	return nil
}
