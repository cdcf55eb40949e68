package curve

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseTenor converts tenor strings like "1W", "3M", "10Y" to year fractions.
func ParseTenor(tenor string) (float64, error) {
	s := strings.TrimSpace(strings.ToUpper(tenor))
	if s == "" {
		return 0, fmt.Errorf("empty tenor")
	}
	suffix := s[len(s)-1]
	body := s[:len(s)-1]
	switch suffix {
	case 'D':
		v, err := strconv.Atoi(body)
		if err != nil {
			return 0, fmt.Errorf("invalid tenor %q", tenor)
		}
		return float64(v) / 365.0, nil
	case 'W':
		v, err := strconv.Atoi(body)
		if err != nil {
			return 0, fmt.Errorf("invalid tenor %q", tenor)
		}
		return float64(v) * 7.0 / 365.0, nil
	case 'M':
		v, err := strconv.Atoi(body)
		if err != nil {
			return 0, fmt.Errorf("invalid tenor %q", tenor)
		}
		return float64(v) / 12.0, nil
	case 'Y':
		v, err := strconv.Atoi(body)
		if err != nil {
			return 0, fmt.Errorf("invalid tenor %q", tenor)
		}
		return float64(v), nil
	}
	// Bare numbers parse as years.
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v, nil
	}
	return 0, fmt.Errorf("invalid tenor %q", tenor)
}

// FormatTenor renders a year fraction back to the conventional label.
func FormatTenor(years float64) string {
	if years >= 1 && years == float64(int(years)) {
		return fmt.Sprintf("%dY", int(years))
	}
	months := years * 12
	if months == float64(int(months)) {
		return fmt.Sprintf("%dM", int(months))
	}
	return strconv.FormatFloat(years, 'g', -1, 64)
}
