// Package curve bootstraps discount curves from par market quotes under a
// pluggable interpolation policy.
package curve

import (
	"errors"
	"fmt"
)

var (
	// ErrNonPositiveTenor is returned when a quote tenor is zero or negative.
	ErrNonPositiveTenor = errors.New("quote tenor must be positive")
	// ErrTenorOrder is returned when quotes are not supplied in strictly
	// increasing tenor order.
	ErrTenorOrder = errors.New("quotes must be in strictly increasing tenor order")
	// ErrQuoteIndex is returned for an out-of-bounds quote index.
	ErrQuoteIndex = errors.New("quote index out of range")
)

// DuplicateNodeError reports two quotes sharing a tenor.
type DuplicateNodeError struct {
	Tenor string
}

func (e *DuplicateNodeError) Error() string {
	return fmt.Sprintf("duplicate quote tenor %q", e.Tenor)
}

// Quote is a single (tenor, rate) market observation. Rate is a decimal
// (0.015 == 1.5%).
type Quote struct {
	Tenor string
	Years float64
	Rate  float64
}

// QuoteSet is an ordered collection of market quotes with bump-and-reprice
// support. Tenors are strictly increasing and unique.
//
// A QuoteSet is the only mutable object in the pipeline; every derived curve
// must be rebuilt after any bump. Bumps are applied one at a time and fully
// reverted via Restore, never stacked.
type QuoteSet struct {
	quotes []Quote
	// prev holds the pre-bump rate for each quote so Restore can revert it.
	prev []float64
}

// NewQuoteSet returns an empty quote set.
func NewQuoteSet() *QuoteSet {
	return &QuoteSet{}
}

// Add appends a quote, parsing tenor strings like "6M", "1Y", "25Y".
//
// Quotes must arrive in strictly increasing tenor order; a repeated tenor is
// a *DuplicateNodeError.
func (qs *QuoteSet) Add(tenor string, rate float64) error {
	years, err := ParseTenor(tenor)
	if err != nil {
		return err
	}
	if years <= 0 {
		return fmt.Errorf("%w: %q", ErrNonPositiveTenor, tenor)
	}
	if n := len(qs.quotes); n > 0 {
		last := qs.quotes[n-1].Years
		if years == last {
			return &DuplicateNodeError{Tenor: tenor}
		}
		if years < last {
			return fmt.Errorf("%w: %q after %q", ErrTenorOrder, tenor, qs.quotes[n-1].Tenor)
		}
	}
	qs.quotes = append(qs.quotes, Quote{Tenor: tenor, Years: years, Rate: rate})
	qs.prev = append(qs.prev, rate)
	return nil
}

// Len returns the number of quotes.
func (qs *QuoteSet) Len() int {
	return len(qs.quotes)
}

// At returns the quote at index i.
func (qs *QuoteSet) At(i int) Quote {
	return qs.quotes[i]
}

// Bump shifts quote i by eps, remembering the previous value for Restore.
func (qs *QuoteSet) Bump(i int, eps float64) error {
	if i < 0 || i >= len(qs.quotes) {
		return fmt.Errorf("%w: %d", ErrQuoteIndex, i)
	}
	qs.prev[i] = qs.quotes[i].Rate
	qs.quotes[i].Rate += eps
	return nil
}

// Restore reverts quote i to its value before the last Bump.
func (qs *QuoteSet) Restore(i int) error {
	if i < 0 || i >= len(qs.quotes) {
		return fmt.Errorf("%w: %d", ErrQuoteIndex, i)
	}
	qs.quotes[i].Rate = qs.prev[i]
	return nil
}

// Clone returns an independent copy, e.g. for parallel sensitivity runs where
// sharing a mutable quote set would race.
func (qs *QuoteSet) Clone() *QuoteSet {
	cp := &QuoteSet{
		quotes: make([]Quote, len(qs.quotes)),
		prev:   make([]float64, len(qs.prev)),
	}
	copy(cp.quotes, qs.quotes)
	copy(cp.prev, qs.prev)
	return cp
}

// Tenors returns the tenor labels in order.
func (qs *QuoteSet) Tenors() []string {
	out := make([]string, len(qs.quotes))
	for i, q := range qs.quotes {
		out[i] = q.Tenor
	}
	return out
}

// Rates returns the current quote rates in order.
func (qs *QuoteSet) Rates() []float64 {
	out := make([]float64, len(qs.quotes))
	for i, q := range qs.quotes {
		out[i] = q.Rate
	}
	return out
}
