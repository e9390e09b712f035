package constants

const (
	// Setting field names, as accepted by the settings command and router
	SettingStartHour = "startHour"
	SettingEndHour   = "endHour"
	SettingInterval  = "interval"
	SettingColor     = "color"
	SettingFont      = "font"
	SettingLayout    = "layout"
	SettingViewMode  = "viewMode"

	// Default Settings Values
	DefaultStartHour = 6
	DefaultEndHour   = 20
	DefaultInterval  = 60
	DefaultColor     = "#007aff"
	DefaultFont      = "system-ui"
	DefaultLayout    = "layout-stack"
	DefaultViewMode  = "day"

	MinHour = 0
	MaxHour = 24

	ViewModeDay  = "day"
	ViewModeWeek = "week"
)

// AllowedIntervals lists the slot granularities in minutes.
var AllowedIntervals = []int{15, 30, 60}
