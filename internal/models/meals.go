package models

import "github.com/julianstephens/agenda/internal/constants"

// MealMap holds free text for each meal label of a day.
type MealMap map[string]string

// Get returns the text for label, or "" when unset.
func (m MealMap) Get(label string) string {
	if m == nil {
		return ""
	}
	return m[label]
}

// Complete returns a copy that has every known meal label present.
func (m MealMap) Complete() MealMap {
	out := make(MealMap, len(constants.MealLabels))
	for k, v := range m {
		out[k] = v
	}
	for _, label := range constants.MealLabels {
		if _, ok := out[label]; !ok {
			out[label] = ""
		}
	}
	return out
}

// IsMealLabel reports whether label is one of the fixed meal labels.
func IsMealLabel(label string) bool {
	for _, l := range constants.MealLabels {
		if l == label {
			return true
		}
	}
	return false
}
