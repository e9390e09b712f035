package cli

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/julianstephens/agenda/internal/constants"
	"github.com/julianstephens/agenda/internal/models"
	"github.com/julianstephens/agenda/internal/projector"
)

var (
	bold    = color.New(color.Bold).SprintFunc()
	cyan    = color.New(color.FgCyan, color.Bold).SprintFunc()
	yellow  = color.New(color.FgYellow).SprintFunc()
	green   = color.New(color.FgGreen).SprintFunc()
	gray    = color.New(color.FgHiBlack).SprintFunc()
	red     = color.New(color.FgRed).SprintFunc()
	inverse = color.New(color.ReverseVideo).SprintFunc()
)

// formatEntry renders one slot line: label, completion box, star and text.
func formatEntry(label string, e models.TimeSlotEntry) string {
	box := "[ ]"
	if e.Completed {
		box = green("[x]")
	}
	star := " "
	if e.Important {
		star = yellow("★")
	}
	text := e.Text
	switch {
	case text == "":
		text = gray("·")
	case e.Completed:
		text = gray(text)
	case e.Important:
		text = bold(text)
	}
	return fmt.Sprintf("  %s %s %s %s", cyan(label), box, star, text)
}

func (c *Context) printTasks(title string, list models.TaskList) {
	c.printf("\n%s\n", bold(title))
	items := list.Items()
	if len(items) == 0 {
		c.printf("  %s\n", gray("(none)"))
		return
	}
	for i, item := range items {
		c.printf("  %d. %s\n", i+1, item)
	}
}

func (c *Context) printNotes(title, notes string) {
	c.printf("\n%s\n", bold(title))
	if strings.TrimSpace(notes) == "" {
		c.printf("  %s\n", gray("(empty)"))
		return
	}
	for _, line := range strings.Split(notes, "\n") {
		c.printf("  %s\n", line)
	}
}

func (c *Context) printDaily(v *projector.DailyView) {
	c.printf("%s\n\n", bold(v.Date.Format("Monday, January 2 2006")))
	for _, row := range v.Rows {
		c.println(formatEntry(row.Label, row.Entry))
	}
	c.printTasks("Tasks", v.Tasks)

	c.printf("\n%s\n", bold("Meals"))
	for _, label := range constants.MealLabels {
		text := v.Meals.Get(label)
		if text == "" {
			text = gray("-")
		}
		c.printf("  %-10s %s\n", label, text)
	}
	c.printNotes("Notes", v.Notes)
}

func (c *Context) printWeekly(v *projector.WeeklyView) {
	c.printf("%s\n", bold("Week "+v.WeekKey))
	for _, day := range v.Days {
		c.printf("\n%s\n", cyan(day.Date.Format("Monday, January 2")))
		if day.Empty {
			c.printf("  %s\n", gray("No entries"))
			continue
		}
		for _, row := range day.Rows {
			c.println(formatEntry(row.Label, row.Entry))
		}
	}
	c.printTasks("Weekly tasks", v.Tasks)
	c.printNotes("Weekly notes", v.Notes)
}

func (c *Context) printMonth(v projector.MonthView) {
	c.printf("%s\n", bold(fmt.Sprintf("%s %d", v.Month, v.Year)))
	c.println("Mo Tu We Th Fr Sa Su")

	col := 0
	for i := 0; i < v.Leading; i++ {
		c.printf("   ")
		col++
	}
	for _, d := range v.Days {
		cell := fmt.Sprintf("%2d", d.Date.Day())
		if d.HasData {
			cell = yellow(cell)
		}
		if d.IsToday {
			cell = inverse(cell)
		}
		c.printf("%s", cell)
		col++
		if col%7 == 0 {
			c.println()
		} else {
			c.printf(" ")
		}
	}
	if col%7 != 0 {
		c.println()
	}
}
