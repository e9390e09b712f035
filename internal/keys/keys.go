// Package keys maps calendar dates to the canonical day and ISO week keys
// and builds the namespaced storage keys derived from them.
package keys

import (
	"fmt"
	"strconv"
	"time"

	"github.com/julianstephens/agenda/internal/constants"
)

// DayKey formats date as YYYY-MM-DD using the date's own calendar fields.
//
// The fields are read in the location carried by date, so callers must pass
// a local time for user-facing day boundaries. Formatting date.UTC() instead
// shifts the key by one day near midnight in any non-UTC zone.
func DayKey(date time.Time) string {
	return fmt.Sprintf("%04d-%02d-%02d", date.Year(), int(date.Month()), date.Day())
}

// WeekKey returns the ISO-8601 week identifier YYYY-Www for date.
// The year is the ISO week-numbering year, which differs from the calendar
// year for some dates between Dec 29 and Jan 3.
func WeekKey(date time.Time) string {
	year, week := date.ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}

// ParseDayKey parses a YYYY-MM-DD key into midnight of that day in loc.
func ParseDayKey(dayKey string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(constants.DateFormat, dayKey, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day key %q: %w", dayKey, err)
	}
	return t, nil
}

// ValidDayKey reports whether s is a well-formed day key.
func ValidDayKey(s string) bool {
	_, err := time.Parse(constants.DateFormat, s)
	return err == nil
}

// ValidWeekKey reports whether s is a well-formed YYYY-Www key naming a
// week that exists in that ISO year.
func ValidWeekKey(s string) bool {
	if len(s) != 8 || s[4:6] != "-W" {
		return false
	}
	year, err := strconv.Atoi(s[:4])
	if err != nil || year < 1 {
		return false
	}
	week, err := strconv.Atoi(s[6:])
	if err != nil || week < 1 || week > 53 {
		return false
	}
	// Dec 28 always falls in the last ISO week of its year.
	_, last := time.Date(year, time.December, 28, 12, 0, 0, 0, time.UTC).ISOWeek()
	return week <= last
}

// WeekDays returns the seven days of the ISO week containing date, Monday first.
// Each returned time is noon of its day so that day arithmetic is not
// disturbed by DST transitions.
func WeekDays(date time.Time) [7]time.Time {
	offset := (int(date.Weekday()) + 6) % 7
	var days [7]time.Time
	for i := range days {
		days[i] = time.Date(date.Year(), date.Month(), date.Day()-offset+i, 12, 0, 0, 0, date.Location())
	}
	return days
}

// AddDays moves date by n calendar days, keeping the wall-clock fields.
func AddDays(date time.Time, n int) time.Time {
	return date.AddDate(0, 0, n)
}

func DataKey(dayKey string) string { return constants.DataKeyPrefix + dayKey }
func TasksKey(dayKey string) string { return constants.TasksKeyPrefix + dayKey }
func WeekTasksKey(weekKey string) string { return constants.WeekTasksKeyPrefix + weekKey }
func MealsKey(dayKey string) string { return constants.MealsKeyPrefix + dayKey }
func NotesKey(dayKey string) string { return constants.NotesKeyPrefix + dayKey }
func WeekNotesKey(weekKey string) string { return constants.WeekNotesKeyPrefix + weekKey }
