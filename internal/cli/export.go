package cli

import (
	"fmt"
	"os"

	"github.com/julianstephens/agenda/internal/export"
)

type ExportCmd struct {
	Output string `short:"o" type:"path" help:"Write to this file instead of stdout. The extension picks the format unless --format is given."`
	Format string `short:"f" help:"Output format: json or yaml."`
}

func (c *ExportCmd) Run(ctx *Context) error {
	format := export.FormatJSON
	if c.Output != "" {
		format = export.FormatForPath(c.Output)
	}
	if c.Format != "" {
		f, err := export.ParseFormat(c.Format)
		if err != nil {
			return err
		}
		format = f
	}

	data, err := export.Dump(ctx.Store, format)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	if c.Output == "" {
		_, err := ctx.Out.Write(data)
		return err
	}
	if err := os.WriteFile(c.Output, data, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", c.Output, err)
	}
	ctx.printf("%s Exported to %s\n", green("✓"), c.Output)
	return nil
}

type ImportCmd struct {
	File   string `arg:"" type:"existingfile" help:"Snapshot file produced by 'agenda export'."`
	Format string `short:"f" help:"Input format: json or yaml. Defaults to the file extension."`
}

func (c *ImportCmd) Run(ctx *Context) error {
	format := export.FormatForPath(c.File)
	if c.Format != "" {
		f, err := export.ParseFormat(c.Format)
		if err != nil {
			return err
		}
		format = f
	}

	data, err := os.ReadFile(c.File)
	if err != nil {
		return err
	}

	ctx.PerformAutomaticBackup()
	n, err := export.Load(ctx.Store, data, format)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	ctx.printf("%s Imported %d keys\n", green("✓"), n)
	return nil
}
