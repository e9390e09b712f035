// Package validation checks user input at the settings boundary and scans a
// store for values the repository would silently treat as absent.
package validation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/julianstephens/agenda/internal/constants"
	apperrors "github.com/julianstephens/agenda/internal/errors"
	"github.com/julianstephens/agenda/internal/models"
)

// ValidateSettings returns one ValidationError per field outside its allowed range.
func ValidateSettings(s models.Settings) []error {
	var errs []error
	if s.StartHour < constants.MinHour || s.StartHour > constants.MaxHour {
		errs = append(errs, hourError(constants.SettingStartHour, s.StartHour))
	}
	if s.EndHour < constants.MinHour || s.EndHour > constants.MaxHour {
		errs = append(errs, hourError(constants.SettingEndHour, s.EndHour))
	}
	if s.EndHour < s.StartHour {
		errs = append(errs, &apperrors.ValidationError{
			Field:  constants.SettingEndHour,
			Value:  s.EndHour,
			Reason: fmt.Sprintf("must not be before %s (%d)", constants.SettingStartHour, s.StartHour),
		})
	}
	if !isAllowedInterval(s.Interval) {
		errs = append(errs, &apperrors.ValidationError{
			Field:  constants.SettingInterval,
			Value:  s.Interval,
			Reason: "must be one of 15, 30, 60",
		})
	}
	if s.ViewMode != constants.ViewModeDay && s.ViewMode != constants.ViewModeWeek {
		errs = append(errs, &apperrors.ValidationError{
			Field:  constants.SettingViewMode,
			Value:  s.ViewMode,
			Reason: "must be day or week",
		})
	}
	return errs
}

func hourError(field string, v int) error {
	return &apperrors.ValidationError{
		Field:  field,
		Value:  v,
		Reason: fmt.Sprintf("must be between %d and %d", constants.MinHour, constants.MaxHour),
	}
}

func isAllowedInterval(v int) bool {
	for _, iv := range constants.AllowedIntervals {
		if v == iv {
			return true
		}
	}
	return false
}

// ApplySetting parses value for the named field and returns s with the field
// replaced. The result is validated as a whole so that, for example, an end
// hour before the start hour is rejected.
func ApplySetting(s models.Settings, field, value string) (models.Settings, error) {
	value = strings.TrimSpace(value)
	switch field {
	case constants.SettingStartHour, constants.SettingEndHour, constants.SettingInterval:
		n, err := strconv.Atoi(value)
		if err != nil {
			return s, &apperrors.ValidationError{Field: field, Value: value, Reason: "must be a whole number"}
		}
		switch field {
		case constants.SettingStartHour:
			s.StartHour = n
		case constants.SettingEndHour:
			s.EndHour = n
		default:
			s.Interval = n
		}
	case constants.SettingColor:
		s.Color = value
	case constants.SettingFont:
		s.Font = value
	case constants.SettingLayout:
		s.Layout = value
	case constants.SettingViewMode:
		s.ViewMode = value
	default:
		return s, &apperrors.ValidationError{Field: "setting", Value: field, Reason: "unknown setting"}
	}
	if errs := ValidateSettings(s); len(errs) > 0 {
		return s, errs[0]
	}
	return s, nil
}

// IsValidTimeLabel reports whether label is a zero-padded HH:MM slot label.
// "24:00" is accepted as the end-of-day label of the timeline.
func IsValidTimeLabel(label string) bool {
	if len(label) != 5 || label[2] != ':' {
		return false
	}
	for _, i := range []int{0, 1, 3, 4} {
		if label[i] < '0' || label[i] > '9' {
			return false
		}
	}
	h, err := strconv.Atoi(label[:2])
	if err != nil || h < 0 || h > 24 {
		return false
	}
	m, err := strconv.Atoi(label[3:])
	if err != nil || m < 0 || m > 59 {
		return false
	}
	return h < 24 || m == 0
}
