package utils

import (
	"fmt"
	"math"
	"time"
)

// ParseDate converts YYYY-MM-DD to time.Time.
func ParseDate(s string) (time.Time, error) {
	const layout = "2006-01-02"
	t, err := time.Parse(layout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

// ParseCompactDate converts the YYYYMMDD form used in market-data file names
// and lookup keys.
func ParseCompactDate(s string) (time.Time, error) {
	const layout = "20060102"
	t, err := time.Parse(layout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

// CompactDate renders a date in the YYYYMMDD file-name form.
func CompactDate(t time.Time) string {
	return t.Format("20060102")
}

// Days returns the day count fraction in days between two dates.
func Days(start, end time.Time) float64 {
	return end.Sub(start).Hours() / 24
}

// RoundTo rounds a float to the specified decimal places.
func RoundTo(val float64, decimals uint32) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(val*pow) / pow
}
