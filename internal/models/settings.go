package models

import "github.com/julianstephens/agenda/internal/constants"

// Settings represents application-wide settings
type Settings struct {
	StartHour int    `json:"startHour" yaml:"startHour"` // first hour shown in the daily timeline (0-24)
	EndHour   int    `json:"endHour" yaml:"endHour"`     // last hour shown, inclusive (0-24, >= StartHour)
	Interval  int    `json:"interval" yaml:"interval"`   // slot granularity in minutes: 15, 30 or 60
	Color     string `json:"color" yaml:"color"`         // display accent
	Font      string `json:"font" yaml:"font"`           // display font family
	Layout    string `json:"layout" yaml:"layout"`       // display layout name
	ViewMode  string `json:"viewMode" yaml:"viewMode"`   // "day" or "week"
}

// DefaultSettings returns the hardcoded defaults persisted values are overlaid onto.
func DefaultSettings() Settings {
	return Settings{
		StartHour: constants.DefaultStartHour,
		EndHour:   constants.DefaultEndHour,
		Interval:  constants.DefaultInterval,
		Color:     constants.DefaultColor,
		Font:      constants.DefaultFont,
		Layout:    constants.DefaultLayout,
		ViewMode:  constants.DefaultViewMode,
	}
}

// Normalize clamps settings into their allowed ranges. Hours are clamped to
// [0,24], EndHour is raised to StartHour when it is lower, the interval is
// coerced to the nearest allowed value and an unknown view mode falls back to day.
func (s Settings) Normalize() Settings {
	s.StartHour = clamp(s.StartHour, constants.MinHour, constants.MaxHour)
	s.EndHour = clamp(s.EndHour, constants.MinHour, constants.MaxHour)
	if s.EndHour < s.StartHour {
		s.EndHour = s.StartHour
	}
	s.Interval = NearestInterval(s.Interval)
	if s.ViewMode != constants.ViewModeDay && s.ViewMode != constants.ViewModeWeek {
		s.ViewMode = constants.ViewModeDay
	}
	if s.Color == "" {
		s.Color = constants.DefaultColor
	}
	if s.Font == "" {
		s.Font = constants.DefaultFont
	}
	if s.Layout == "" {
		s.Layout = constants.DefaultLayout
	}
	return s
}

// NearestInterval returns the allowed interval closest to minutes.
// Ties resolve to the smaller interval.
func NearestInterval(minutes int) int {
	best := constants.AllowedIntervals[0]
	for _, iv := range constants.AllowedIntervals[1:] {
		if abs(minutes-iv) < abs(minutes-best) {
			best = iv
		}
	}
	return best
}

// IsWeekView reports whether the weekly rollup is the active view.
func (s Settings) IsWeekView() bool {
	return s.ViewMode == constants.ViewModeWeek
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
