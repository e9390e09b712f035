package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/agenda/internal/logger"
	"github.com/julianstephens/agenda/internal/tui"
	"github.com/julianstephens/agenda/internal/validation"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	// Perform automatic backup on TUI startup (after successful load)
	ctx.PerformAutomaticBackup()

	model := tui.NewModel(ctx.Router())
	if report, err := validation.CheckStore(ctx.Store); err != nil {
		logger.Warn("Startup validation failed", "error", err)
	} else if report.HasConflicts() {
		model = model.WithWarning(fmt.Sprintf("⚠ %d stored value(s) need attention, run 'agenda validate'", len(report.Conflicts)))
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui exited with error: %w", err)
	}
	return nil
}
