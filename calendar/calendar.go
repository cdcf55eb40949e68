// Package calendar provides TARGET business-day arithmetic for aligning
// valuation dates with the euro-area publication calendar.
package calendar

import "time"

// CalendarID identifies a holiday calendar.
type CalendarID string

const (
	// TARGET is the euro-area interbank settlement calendar, which the Dutch
	// regulatory curve publications follow.
	TARGET CalendarID = "TARGET"
)

// easterSunday returns Easter Sunday for a year (Gauss algorithm, Gregorian).
func easterSunday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// isHoliday reports TARGET closing days: New Year, Good Friday, Easter
// Monday, Labour Day, Christmas, and Boxing Day.
func isHoliday(cal CalendarID, t time.Time) bool {
	if cal != TARGET {
		return false
	}
	m, d := t.Month(), t.Day()
	switch {
	case m == time.January && d == 1:
		return true
	case m == time.May && d == 1:
		return true
	case m == time.December && (d == 25 || d == 26):
		return true
	}
	easter := easterSunday(t.Year())
	if t.Equal(easter.AddDate(0, 0, -2)) || t.Equal(easter.AddDate(0, 0, 1)) {
		return true
	}
	return false
}

// IsBusinessDay checks weekends and holiday sets.
func IsBusinessDay(cal CalendarID, t time.Time) bool {
	if t.Weekday() == time.Saturday || t.Weekday() == time.Sunday {
		return false
	}
	return !isHoliday(cal, t)
}

// Adjust applies Modified Following.
func Adjust(cal CalendarID, t time.Time) time.Time {
	origMonth := t.Month()
	for !IsBusinessDay(cal, t) {
		t = t.AddDate(0, 0, 1)
	}
	if t.Month() != origMonth {
		t = t.AddDate(0, 0, -1)
		for !IsBusinessDay(cal, t) {
			t = t.AddDate(0, 0, -1)
		}
	}
	return t
}

// AdjustFollowing applies a simple Following convention (no month preservation).
func AdjustFollowing(cal CalendarID, t time.Time) time.Time {
	for !IsBusinessDay(cal, t) {
		t = t.AddDate(0, 0, 1)
	}
	return t
}

// AddBusinessDays advances n business days (n can be negative).
func AddBusinessDays(cal CalendarID, t time.Time, n int) time.Time {
	step := 1
	if n < 0 {
		step = -1
	}
	for n != 0 {
		t = t.AddDate(0, 0, step)
		if IsBusinessDay(cal, t) {
			n -= step
		}
	}
	return t
}
