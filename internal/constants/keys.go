package constants

// Storage key namespace. Every persisted value lives under one of these
// prefixes in a flat string-keyed table.
const (
	DataKeyPrefix      = "data_"
	TasksKeyPrefix     = "tasks_"
	WeekTasksKeyPrefix = "tasks_w_"
	MealsKeyPrefix     = "meals_"
	NotesKeyPrefix     = "notes_"
	WeekNotesKeyPrefix = "notes_w_"
	SettingsKey        = "agendaSettings"
)

// Meal labels, in display order.
const (
	MealBreakfast = "Breakfast"
	MealLunch     = "Lunch"
	MealDinner    = "Dinner"
)

var MealLabels = []string{MealBreakfast, MealLunch, MealDinner}
