package cli

import (
	"fmt"
	"strings"

	"github.com/julianstephens/agenda/internal/constants"
	"github.com/julianstephens/agenda/internal/router"
)

type MealCmd struct {
	Set  MealSetCmd  `cmd:"" help:"Set the text of a meal."`
	List MealListCmd `cmd:"" help:"Show the meals of a day."`
}

type MealSetCmd struct {
	Date string   `short:"d" help:"Day of the meal (YYYY-MM-DD, today, tomorrow, yesterday)."`
	Meal string   `arg:"" help:"Meal: breakfast, lunch or dinner."`
	Text []string `arg:"" optional:"" help:"Meal text. Omit to clear it."`
}

// mealLabel matches a meal name case-insensitively against the known labels.
func mealLabel(s string) (string, error) {
	for _, label := range constants.MealLabels {
		if strings.EqualFold(label, strings.TrimSpace(s)) {
			return label, nil
		}
	}
	return "", fmt.Errorf("unknown meal %q, use one of %s", s, strings.Join(constants.MealLabels, ", "))
}

func (c *MealSetCmd) Run(ctx *Context) error {
	day, err := ctx.dayKey(c.Date)
	if err != nil {
		return err
	}
	label, err := mealLabel(c.Meal)
	if err != nil {
		return err
	}
	if _, err := ctx.Router().Dispatch(router.SetMeal{Day: day, Label: label, Value: strings.Join(c.Text, " ")}); err != nil {
		return err
	}
	return ctx.printMeals(day)
}

type MealListCmd struct {
	Date string `arg:"" optional:"" help:"Day to show."`
}

func (c *MealListCmd) Run(ctx *Context) error {
	day, err := ctx.dayKey(c.Date)
	if err != nil {
		return err
	}
	return ctx.printMeals(day)
}

func (c *Context) printMeals(day string) error {
	meals := c.Repo().ReadMeals(day)
	c.printf("%s\n", bold("Meals for "+day))
	for _, label := range constants.MealLabels {
		text := meals.Get(label)
		if text == "" {
			text = gray("-")
		}
		c.printf("  %-10s %s\n", label, text)
	}
	return nil
}
