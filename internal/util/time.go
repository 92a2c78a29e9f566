package util

import "time"

var loc = time.UTC

// SetLocation changes the zone used by Now and DayRange.
func SetLocation(l *time.Location) {
	if l != nil {
		loc = l
	}
}

func Location() *time.Location {
	return loc
}

func Now() time.Time {
	return time.Now().In(loc)
}

// DayRange returns the [start, end) bounds of the calendar day containing t.
func DayRange(t time.Time) (start, end time.Time) {
	y, m, d := t.In(loc).Date()
	start = time.Date(y, m, d, 0, 0, 0, 0, loc)
	end = start.Add(24 * time.Hour)
	return
}

// TruncateDay strips the clock part, keeping the date in the configured zone.
func TruncateDay(t time.Time) time.Time {
	start, _ := DayRange(t)
	return start
}
