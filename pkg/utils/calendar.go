package utils

import "time"

// DayStart truncates t to midnight of its calendar day, keeping the location
func DayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// NextDayStart returns midnight of the day after t
func NextDayStart(t time.Time) time.Time {
	return DayStart(t).AddDate(0, 0, 1)
}

// MonthStart returns the first day of t's month
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// WeekStart returns the Monday on or before t (ISO week start)
func WeekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return DayStart(t).AddDate(0, 0, -offset)
}

// SameDay reports whether a and b fall on the same calendar day
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// SameMonth reports whether a and b fall in the same calendar month of the same year
func SameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// SameISOWeek reports whether a and b share ISO year and week number
func SameISOWeek(a, b time.Time) bool {
	ay, aw := a.ISOWeek()
	by, bw := b.ISOWeek()
	return ay == by && aw == bw
}

// WholeHours truncates d to whole hours
func WholeHours(d time.Duration) int64 {
	return int64(d / time.Hour)
}
