// Package marketdata reads flat delimited-text market inputs: par swap
// quotes, historical fixings, liability schedules, and independently sourced
// reference zero rates, keyed by a YYYYMMDD valuation date.
package marketdata

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/meenmo/ftklib/calendar"
	"github.com/meenmo/ftklib/curve"
	"github.com/meenmo/ftklib/pricer"
	"github.com/meenmo/ftklib/utils"
)

// curveDayCount is the time axis used to convert dated records to year
// fractions.
const curveDayCount = "ACT/365F"

// AdjustValuationDate rolls a requested date onto the TARGET publication
// calendar (Modified Following). Curve files exist only for business days.
func AdjustValuationDate(date time.Time) time.Time {
	return calendar.Adjust(calendar.TARGET, date)
}

// PreviousBusinessDay steps one TARGET business day back, for walking the
// recent publication history.
func PreviousBusinessDay(date time.Time) time.Time {
	return calendar.AddBusinessDays(calendar.TARGET, date, -1)
}

// QuoteFileName returns the conventional file name for a valuation date.
func QuoteFileName(date time.Time) string {
	return fmt.Sprintf("quotes_%s.csv", utils.CompactDate(date))
}

// LoadQuotes reads the par quote file for a valuation date from dir.
func LoadQuotes(dir string, date time.Time) (*curve.QuoteSet, error) {
	path := filepath.Join(dir, QuoteFileName(AdjustValuationDate(date)))
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load quotes: %w", err)
	}
	defer f.Close()
	qs, err := ReadQuotes(f)
	if err != nil {
		return nil, fmt.Errorf("load quotes %s: %w", path, err)
	}
	return qs, nil
}

// ReadQuotes parses tenor,rate records into an ordered quote set. Rates are
// decimal-parsed exactly before conversion to float64, so "0.015" never
// arrives as a longer binary artifact of string formatting.
func ReadQuotes(r io.Reader) (*curve.QuoteSet, error) {
	rows, err := readRows(r, 2, tenorKey)
	if err != nil {
		return nil, err
	}
	qs := curve.NewQuoteSet()
	for _, row := range rows {
		rate, err := parseRate(row[1])
		if err != nil {
			return nil, fmt.Errorf("tenor %s: %w", row[0], err)
		}
		if err := qs.Add(row[0], rate); err != nil {
			return nil, err
		}
	}
	return qs, nil
}

// Fixing is a historical short-rate observation.
type Fixing struct {
	Date time.Time
	Rate float64
}

// ReadFixings parses date,rate records (dates as YYYY-MM-DD).
func ReadFixings(r io.Reader) ([]Fixing, error) {
	rows, err := readRows(r, 2, dateKey)
	if err != nil {
		return nil, err
	}
	out := make([]Fixing, 0, len(rows))
	for _, row := range rows {
		d, err := utils.ParseDate(row[0])
		if err != nil {
			return nil, err
		}
		rate, err := parseRate(row[1])
		if err != nil {
			return nil, fmt.Errorf("fixing %s: %w", row[0], err)
		}
		out = append(out, Fixing{Date: d, Rate: rate})
	}
	return out, nil
}

// ReadLiabilities parses date,amount records into cash flows with times as
// ACT/365F year fractions from the valuation date. Flows on or before the
// valuation date are rejected.
func ReadLiabilities(r io.Reader, valuationDate time.Time) ([]pricer.Cashflow, error) {
	rows, err := readRows(r, 2, dateKey)
	if err != nil {
		return nil, err
	}
	out := make([]pricer.Cashflow, 0, len(rows))
	for _, row := range rows {
		d, err := utils.ParseDate(row[0])
		if err != nil {
			return nil, err
		}
		if !d.After(valuationDate) {
			return nil, fmt.Errorf("liability on %s not after valuation date %s",
				row[0], valuationDate.Format("2006-01-02"))
		}
		amount, err := parseRate(row[1])
		if err != nil {
			return nil, fmt.Errorf("liability %s: %w", row[0], err)
		}
		out = append(out, pricer.Cashflow{
			Time:   utils.YearFraction(valuationDate, d, curveDayCount),
			Amount: amount,
		})
	}
	return out, nil
}

// ReferenceZero is a published zero rate used for validation.
type ReferenceZero struct {
	Tenor string
	Years float64
	Rate  float64
}

// ReadReferenceZeros parses tenor,rate records of independently published
// zero rates.
func ReadReferenceZeros(r io.Reader) ([]ReferenceZero, error) {
	rows, err := readRows(r, 2, tenorKey)
	if err != nil {
		return nil, err
	}
	out := make([]ReferenceZero, 0, len(rows))
	for _, row := range rows {
		years, err := curve.ParseTenor(row[0])
		if err != nil {
			return nil, err
		}
		rate, err := parseRate(row[1])
		if err != nil {
			return nil, fmt.Errorf("reference %s: %w", row[0], err)
		}
		out = append(out, ReferenceZero{Tenor: row[0], Years: years, Rate: rate})
	}
	return out, nil
}

// readRows consumes a delimited file, skipping blank lines and an optional
// header row.
//
// The first row counts as a header only when every column fails its parse:
// the key column (tenor or date, per keyOK) and the numeric column both. A
// row with a valid key and a malformed number is a damaged record, and
// dropping it would silently lose a pillar, so it stays in and fails in the
// caller's parse.
func readRows(r io.Reader, fields int, keyOK func(string) bool) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = fields
	cr.TrimLeadingSpace = true
	all, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read records: %w", err)
	}
	if len(all) > 0 && !keyOK(all[0][0]) {
		if _, err := decimal.NewFromString(strings.TrimSpace(all[0][fields-1])); err != nil {
			all = all[1:] // header
		}
	}
	return all, nil
}

func tenorKey(s string) bool {
	_, err := curve.ParseTenor(s)
	return err == nil
}

func dateKey(s string) bool {
	_, err := utils.ParseDate(strings.TrimSpace(s))
	return err == nil
}

func parseRate(s string) (float64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("parse rate %q: %w", s, err)
	}
	v, _ := d.Float64()
	return v, nil
}
