package utils

import "time"

const DateLayout = "2006-01-02"

// DayStart is local midnight of t's calendar date in loc.
func DayStart(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	tt := t.In(loc)
	return time.Date(tt.Year(), tt.Month(), tt.Day(), 0, 0, 0, 0, loc)
}

// DayWindow returns the half-open range [start, next midnight) holding t.
func DayWindow(t time.Time, loc *time.Location) (time.Time, time.Time) {
	start := DayStart(t, loc)
	return start, start.AddDate(0, 0, 1)
}

// DayLabel names the calendar day holding day relative to now. Dates outside
// now's year carry the year so two dates never share a label. Days are
// compared as calendar dates since midnight may not exist under DST.
func DayLabel(day, now time.Time) string {
	loc := now.Location()
	d := DayStart(day, loc)
	dy, dm, dd := day.In(loc).Date()
	ny, nm, nd := now.Date()
	yy, ym, yd := time.Date(ny, nm, nd-1, 12, 0, 0, 0, loc).Date()
	switch {
	case dy == ny && dm == nm && dd == nd:
		return "Today"
	case dy == yy && dm == ym && dd == yd:
		return "Yesterday"
	case dy == ny:
		return d.Format("Jan 2")
	default:
		return d.Format("Jan 2, 2006")
	}
}

func StartOfWeek(t time.Time) time.Time {
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7
	}
	tt := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return tt.AddDate(0, 0, -(wd - 1)) // Monday
}
