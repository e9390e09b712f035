package keys

import (
	"testing"
	"time"
)

func TestDayKey(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want string
	}{
		{
			name: "zero padded month and day",
			date: time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC),
			want: "2024-03-05",
		},
		{
			name: "end of year",
			date: time.Date(2018, time.December, 31, 23, 59, 0, 0, time.UTC),
			want: "2018-12-31",
		},
		{
			name: "just after local midnight east of UTC",
			date: time.Date(2024, time.June, 10, 0, 30, 0, 0, time.FixedZone("CEST", 2*60*60)),
			want: "2024-06-10",
		},
		{
			name: "just before local midnight west of UTC",
			date: time.Date(2024, time.June, 10, 23, 30, 0, 0, time.FixedZone("EDT", -4*60*60)),
			want: "2024-06-10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DayKey(tt.date)
			if got != tt.want {
				t.Errorf("DayKey() = %q, want %q", got, tt.want)
			}
			if again := DayKey(tt.date); again != got {
				t.Errorf("DayKey() not stable: %q then %q", got, again)
			}
		})
	}
}

func TestDayKeyUsesLocalFields(t *testing.T) {
	date := time.Date(2024, time.June, 10, 0, 30, 0, 0, time.FixedZone("CEST", 2*60*60))
	if got := DayKey(date.UTC()); got != "2024-06-09" {
		t.Fatalf("DayKey(UTC) = %q, want the previous day", got)
	}
	if got := DayKey(date); got != "2024-06-10" {
		t.Fatalf("DayKey(local) = %q, want 2024-06-10", got)
	}
}

func TestWeekKey(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want string
	}{
		{"monday of week 24", time.Date(2024, time.June, 10, 9, 0, 0, 0, time.UTC), "2024-W24"},
		{"sunday closes week 24", time.Date(2024, time.June, 16, 22, 0, 0, 0, time.UTC), "2024-W24"},
		{"dec 31 2018 belongs to next iso year", time.Date(2018, time.December, 31, 12, 0, 0, 0, time.UTC), "2019-W01"},
		{"dec 29 2014 belongs to next iso year", time.Date(2014, time.December, 29, 12, 0, 0, 0, time.UTC), "2015-W01"},
		{"jan 1 2021 belongs to previous iso year", time.Date(2021, time.January, 1, 12, 0, 0, 0, time.UTC), "2020-W53"},
		{"jan 3 2010 belongs to previous iso year", time.Date(2010, time.January, 3, 12, 0, 0, 0, time.UTC), "2009-W53"},
		{"jan 4 is always week 1", time.Date(2027, time.January, 4, 12, 0, 0, 0, time.UTC), "2027-W01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WeekKey(tt.date); got != tt.want {
				t.Errorf("WeekKey(%s) = %q, want %q", tt.date.Format("2006-01-02"), got, tt.want)
			}
		})
	}
}

func TestWeekDays(t *testing.T) {
	for _, ref := range []time.Time{
		time.Date(2024, time.June, 10, 8, 0, 0, 0, time.UTC),
		time.Date(2024, time.June, 13, 8, 0, 0, 0, time.UTC),
		time.Date(2024, time.June, 16, 23, 0, 0, 0, time.UTC),
	} {
		days := WeekDays(ref)
		if got := DayKey(days[0]); got != "2024-06-10" {
			t.Errorf("WeekDays(%s)[0] = %s, want 2024-06-10", DayKey(ref), got)
		}
		if got := DayKey(days[6]); got != "2024-06-16" {
			t.Errorf("WeekDays(%s)[6] = %s, want 2024-06-16", DayKey(ref), got)
		}
		for i, d := range days {
			if WeekKey(d) != WeekKey(ref) {
				t.Errorf("day %d (%s) is outside week %s", i, DayKey(d), WeekKey(ref))
			}
		}
	}
}

func TestWeekDaysAcrossYearBoundary(t *testing.T) {
	days := WeekDays(time.Date(2019, time.January, 2, 12, 0, 0, 0, time.UTC))
	if got := DayKey(days[0]); got != "2018-12-31" {
		t.Errorf("first day = %s, want 2018-12-31", got)
	}
	if got := DayKey(days[6]); got != "2019-01-06" {
		t.Errorf("last day = %s, want 2019-01-06", got)
	}
}

func TestParseDayKey(t *testing.T) {
	got, err := ParseDayKey("2024-06-10", time.UTC)
	if err != nil {
		t.Fatalf("ParseDayKey() error = %v", err)
	}
	if DayKey(got) != "2024-06-10" {
		t.Errorf("round trip = %s", DayKey(got))
	}

	if _, err := ParseDayKey("2024-6-10", time.UTC); err == nil {
		t.Error("expected error for unpadded key")
	}
	if ValidDayKey("not-a-date") {
		t.Error("ValidDayKey accepted garbage")
	}
}

func TestNamespacedKeys(t *testing.T) {
	tests := []struct {
		got  string
		want string
	}{
		{DataKey("2024-06-10"), "data_2024-06-10"},
		{TasksKey("2024-06-10"), "tasks_2024-06-10"},
		{WeekTasksKey("2024-W24"), "tasks_w_2024-W24"},
		{MealsKey("2024-06-10"), "meals_2024-06-10"},
		{NotesKey("2024-06-10"), "notes_2024-06-10"},
		{WeekNotesKey("2024-W24"), "notes_w_2024-W24"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("got %q, want %q", tt.got, tt.want)
		}
	}
}

func TestValidWeekKey(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"2024-W24", true},
		{"2020-W53", true},
		{"2019-W53", false},
		{"2024-W00", false},
		{"2024-W7", false},
		{"2024W24", false},
		{"abcd-W01", false},
	}
	for _, tt := range tests {
		if got := ValidWeekKey(tt.key); got != tt.want {
			t.Errorf("ValidWeekKey(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}
