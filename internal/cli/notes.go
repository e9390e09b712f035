package cli

import (
	"io"
	"os"
	"strings"

	"github.com/julianstephens/agenda/internal/keys"
	"github.com/julianstephens/agenda/internal/router"
)

type NotesCmd struct {
	Set  NotesSetCmd  `cmd:"" help:"Replace the notes of a day or week."`
	Show NotesShowCmd `cmd:"" help:"Show the notes of a day or week."`
}

type NotesSetCmd struct {
	Scope `embed:""`
	Text  []string `arg:"" optional:"" help:"Notes text. Use '-' to read from stdin; omit to clear."`
}

func (c *NotesSetCmd) Run(ctx *Context) error {
	day, err := ctx.dayKey(c.Date)
	if err != nil {
		return err
	}
	text := strings.Join(c.Text, " ")
	if text == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return err
		}
		text = strings.TrimRight(string(data), "\n")
	}
	if _, err := ctx.Router().Dispatch(router.SetNotes{Day: day, Week: c.Week, Text: text}); err != nil {
		return err
	}
	return c.Scope.showNotes(ctx)
}

type NotesShowCmd struct {
	Scope `embed:""`
}

func (c *NotesShowCmd) Run(ctx *Context) error {
	return c.Scope.showNotes(ctx)
}

func (s Scope) showNotes(ctx *Context) error {
	date, err := ParseDate(s.Date, ctx.Date)
	if err != nil {
		return err
	}
	if s.Week {
		week := keys.WeekKey(date)
		ctx.printNotes("Notes for week "+week, ctx.Repo().ReadNotes(keys.WeekNotesKey(week)))
		return nil
	}
	day := keys.DayKey(date)
	ctx.printNotes("Notes for "+day, ctx.Repo().ReadNotes(keys.NotesKey(day)))
	return nil
}
