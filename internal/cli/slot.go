package cli

import (
	"errors"
	"fmt"
	"strings"

	apperrors "github.com/julianstephens/agenda/internal/errors"
	"github.com/julianstephens/agenda/internal/router"
)

type SlotCmd struct {
	Edit   SlotEditCmd   `cmd:"" help:"Set the text of a time slot."`
	Star   SlotStarCmd   `cmd:"" help:"Toggle the important flag of a time slot."`
	Done   SlotDoneCmd   `cmd:"" help:"Toggle the completed flag of a time slot."`
	Delete SlotDeleteCmd `cmd:"" help:"Clear a time slot, or remove it when already empty."`
}

// SlotTarget addresses one time slot.
type SlotTarget struct {
	Date  string `short:"d" help:"Day of the slot (YYYY-MM-DD, today, tomorrow, yesterday)."`
	Label string `arg:"" help:"Time label of the slot (HH:MM)."`
}

func (t SlotTarget) resolve(ctx *Context) (string, error) {
	return ctx.dayKey(t.Date)
}

func (c *Context) printSlot(day, label string) {
	c.printf("%s %s\n", day, formatEntry(label, c.Repo().ReadSlot(day, label))[2:])
}

type SlotEditCmd struct {
	SlotTarget `embed:""`
	Text       []string `arg:"" optional:"" help:"New text. Omit to clear the text."`
}

func (c *SlotEditCmd) Run(ctx *Context) error {
	day, err := c.resolve(ctx)
	if err != nil {
		return err
	}
	if _, err := ctx.Router().Dispatch(router.EditText{Day: day, Label: c.Label, Text: strings.Join(c.Text, " ")}); err != nil {
		return err
	}
	ctx.printSlot(day, c.Label)
	return nil
}

type SlotStarCmd struct {
	SlotTarget `embed:""`
}

func (c *SlotStarCmd) Run(ctx *Context) error {
	day, err := c.resolve(ctx)
	if err != nil {
		return err
	}
	if _, err := ctx.Router().Dispatch(router.ToggleImportant{Day: day, Label: c.Label}); err != nil {
		return err
	}
	ctx.printSlot(day, c.Label)
	return nil
}

type SlotDoneCmd struct {
	SlotTarget `embed:""`
}

func (c *SlotDoneCmd) Run(ctx *Context) error {
	day, err := c.resolve(ctx)
	if err != nil {
		return err
	}
	if _, err := ctx.Router().Dispatch(router.ToggleCompleted{Day: day, Label: c.Label}); err != nil {
		return err
	}
	ctx.printSlot(day, c.Label)
	return nil
}

type SlotDeleteCmd struct {
	SlotTarget `embed:""`
	Yes        bool `short:"y" help:"Remove an empty slot without asking."`
}

func (c *SlotDeleteCmd) Run(ctx *Context) error {
	day, err := c.resolve(ctx)
	if err != nil {
		return err
	}

	cmd := router.DeleteSlot{Day: day, Label: c.Label, Confirm: c.Yes}
	_, err = ctx.Router().Dispatch(cmd)
	if errors.Is(err, apperrors.ErrConfirmationRequired) {
		err = ctx.confirm(
			fmt.Sprintf("Remove slot %s on %s?", c.Label, day),
			"The slot is already empty. Removing it also drops its star.",
		)
		if errors.Is(err, apperrors.ErrConfirmationDeclined) {
			ctx.println("Delete cancelled.")
			return nil
		}
		if err == nil {
			cmd.Confirm = true
			_, err = ctx.Router().Dispatch(cmd)
		}
	}
	if err != nil {
		return err
	}

	if ctx.Repo().ReadSlot(day, c.Label).Deleted {
		ctx.printf("Removed slot %s on %s\n", c.Label, day)
	} else {
		ctx.printf("Cleared slot %s on %s\n", c.Label, day)
	}
	return nil
}

type QuickAddCmd struct {
	Date string   `arg:"" help:"Day of the entry (YYYY-MM-DD, today, tomorrow, yesterday)."`
	Time string   `arg:"" help:"Time label (HH:MM)."`
	Text []string `arg:"" help:"Entry text."`
	From string   `help:"Time label the entry is moving from; it is removed."`
}

func (c *QuickAddCmd) Run(ctx *Context) error {
	day, err := ctx.dayKey(c.Date)
	if err != nil {
		return err
	}
	cmd := router.QuickAdd{Day: day, Time: c.Time, Text: strings.Join(c.Text, " "), From: c.From}
	if _, err := ctx.Router().Dispatch(cmd); err != nil {
		return err
	}
	ctx.printSlot(day, c.Time)
	return nil
}
