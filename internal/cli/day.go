package cli

import (
	"fmt"
	"time"

	"github.com/julianstephens/agenda/internal/constants"
)

type DayCmd struct {
	Date string `arg:"" optional:"" help:"Date to show (YYYY-MM-DD, today, tomorrow, yesterday)."`
}

func (c *DayCmd) Run(ctx *Context) error {
	date, err := ParseDate(c.Date, ctx.Date)
	if err != nil {
		return err
	}
	proj := ctx.Router().Projector()
	v := proj.Daily(date, ctx.Router().Session().Settings)
	ctx.printDaily(&v)
	return nil
}

type WeekCmd struct {
	Date string `arg:"" optional:"" help:"Any date within the week to show."`
}

func (c *WeekCmd) Run(ctx *Context) error {
	date, err := ParseDate(c.Date, ctx.Date)
	if err != nil {
		return err
	}
	v := ctx.Router().Projector().Weekly(date)
	ctx.printWeekly(&v)
	return nil
}

type CalendarCmd struct {
	Month string `arg:"" optional:"" help:"Month to show (YYYY-MM). Defaults to the current month."`
}

func (c *CalendarCmd) Run(ctx *Context) error {
	year, month := ctx.Date.Year(), ctx.Date.Month()
	if c.Month != "" {
		m, err := time.Parse(constants.MonthFormat, c.Month)
		if err != nil {
			return fmt.Errorf("invalid month %q, use YYYY-MM", c.Month)
		}
		year, month = m.Year(), m.Month()
	}
	ctx.printMonth(ctx.Router().Projector().MonthActivity(year, month, ctx.Date))
	return nil
}
