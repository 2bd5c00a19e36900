// Package dates holds the ISO-date and week-window helpers the schedule
// views are built around.
package dates

import "time"

// ISO is the wire format for schedule dates.
const ISO = "2006-01-02"

// DaysShort are abbreviated weekday names indexed by time.Weekday.
var DaysShort = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// ToISO formats t as YYYY-MM-DD.
func ToISO(t time.Time) string {
	return t.Format(ISO)
}

// ParseISO parses a YYYY-MM-DD string.
func ParseISO(s string) (time.Time, error) {
	return time.Parse(ISO, s)
}

// AddDays shifts an ISO date by n days. An unparseable date is returned
// unchanged; the checker treats it as a never-matching key.
func AddDays(iso string, n int) string {
	t, err := ParseISO(iso)
	if err != nil {
		return iso
	}
	return ToISO(t.AddDate(0, 0, n))
}

// WeekDates returns the Monday-based week containing ref, as seven days.
func WeekDates(ref time.Time) []time.Time {
	offset := int(ref.Weekday()) - 1
	if ref.Weekday() == time.Sunday {
		offset = 6
	}
	monday := ref.AddDate(0, 0, -offset)
	week := make([]time.Time, 7)
	for i := range week {
		week[i] = monday.AddDate(0, 0, i)
	}
	return week
}

// WeekISO returns the Monday-based week containing ref as ISO dates.
func WeekISO(ref time.Time) []string {
	days := WeekDates(ref)
	out := make([]string, len(days))
	for i, d := range days {
		out[i] = ToISO(d)
	}
	return out
}

// WeekLabel renders a week range as "Mar 2 – Mar 8, 2026".
func WeekLabel(days []time.Time) string {
	if len(days) == 0 {
		return ""
	}
	start := days[0]
	end := days[len(days)-1]
	return start.Format("Jan 2") + " – " + end.Format("Jan 2") + ", " + end.Format("2006")
}
