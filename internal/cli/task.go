package cli

import (
	"fmt"
	"strings"

	"github.com/julianstephens/agenda/internal/keys"
	"github.com/julianstephens/agenda/internal/router"
)

type TaskCmd struct {
	Add  TaskAddCmd  `cmd:"" help:"Add a task to a day or week list."`
	Edit TaskEditCmd `cmd:"" help:"Replace a task; empty text removes it."`
	List TaskListCmd `cmd:"" help:"Show a day or week task list."`
}

// Scope selects the day list or the week list of the day's ISO week.
type Scope struct {
	Date string `short:"d" help:"Day of the list (YYYY-MM-DD, today, tomorrow, yesterday)."`
	Week bool   `short:"w" help:"Use the weekly list of the day's week."`
}

func (s Scope) listKey(ctx *Context) (string, string, error) {
	date, err := ParseDate(s.Date, ctx.Date)
	if err != nil {
		return "", "", err
	}
	if s.Week {
		week := keys.WeekKey(date)
		return keys.DayKey(date), keys.WeekTasksKey(week), nil
	}
	day := keys.DayKey(date)
	return day, keys.TasksKey(day), nil
}

type TaskAddCmd struct {
	Scope `embed:""`
	Text  []string `arg:"" help:"Task text."`
}

func (c *TaskAddCmd) Run(ctx *Context) error {
	day, listKey, err := c.listKey(ctx)
	if err != nil {
		return err
	}
	value := strings.Join(c.Text, " ")
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("task text must not be empty")
	}
	// The placeholder is always the last slot of a normalized list.
	index := len(ctx.Repo().ReadTasks(listKey)) - 1
	if _, err := ctx.Router().Dispatch(router.CommitTask{Day: day, Week: c.Week, Index: index, Value: value}); err != nil {
		return err
	}
	ctx.printTaskList(listKey)
	return nil
}

type TaskEditCmd struct {
	Scope  `embed:""`
	Number int      `arg:"" help:"Task number as shown by 'task list'."`
	Text   []string `arg:"" optional:"" help:"New text. Omit to remove the task."`
}

func (c *TaskEditCmd) Run(ctx *Context) error {
	day, listKey, err := c.listKey(ctx)
	if err != nil {
		return err
	}
	items := ctx.Repo().ReadTasks(listKey).Items()
	if c.Number < 1 || c.Number > len(items) {
		return fmt.Errorf("no task number %d (list has %d)", c.Number, len(items))
	}
	cmd := router.EditTask{Day: day, Week: c.Week, Index: c.Number - 1, Value: strings.Join(c.Text, " ")}
	if _, err := ctx.Router().Dispatch(cmd); err != nil {
		return err
	}
	ctx.printTaskList(listKey)
	return nil
}

type TaskListCmd struct {
	Scope `embed:""`
}

func (c *TaskListCmd) Run(ctx *Context) error {
	_, listKey, err := c.listKey(ctx)
	if err != nil {
		return err
	}
	ctx.printTaskList(listKey)
	return nil
}

func (c *Context) printTaskList(listKey string) {
	title := "Tasks for " + strings.TrimPrefix(listKey, "tasks_")
	if strings.HasPrefix(listKey, "tasks_w_") {
		title = "Tasks for week " + strings.TrimPrefix(listKey, "tasks_w_")
	}
	c.printTasks(title, c.Repo().ReadTasks(listKey))
}
