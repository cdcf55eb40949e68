package ufr

import (
	"fmt"
	"time"

	"github.com/meenmo/ftklib/curve"
	"github.com/meenmo/ftklib/term"
)

// EstimateLLFR computes the last-liquid-forward-rate on a single curve:
// omega * sum(w_h * f_c(FSP, h)) over the vintage's horizon weights, with
// continuously-compounded forwards.
func EstimateLLFR(ts term.Structure, p Params) (float64, error) {
	if ts == nil {
		return 0, term.ErrNilStructure
	}
	if len(p.LLFRWeights) == 0 {
		return 0, ErrNoWeights
	}
	if ts.MaxTime() < p.FirstSmoothingPoint {
		return 0, fmt.Errorf("%w: max time %.2f < FSP %.2f", ErrCurveTooShort, ts.MaxTime(), p.FirstSmoothingPoint)
	}
	sum := 0.0
	for _, hw := range p.LLFRWeights {
		f, err := ts.ForwardRate(p.FirstSmoothingPoint, hw.Horizon, term.Continuous)
		if err != nil {
			return 0, fmt.Errorf("llfr forward f(%.2f,%.2f): %w", p.FirstSmoothingPoint, hw.Horizon, err)
		}
		sum += hw.Weight * f
	}
	return p.Omega * sum, nil
}

// DatedQuotes pairs a valuation date with that date's own market quotes.
type DatedQuotes struct {
	Date   time.Time
	Quotes *curve.QuoteSet
}

// HistoricalCurves independently bootstraps one curve per historical quote
// set with the given builder.
//
// All curves are pinned to the single reference date rather than each date's
// own evaluation date. This replicates the source methodology's deliberate
// "every day is a business day" simplification; the per-date quotes still
// differ, which is what the historical mean is after.
func HistoricalCurves(referenceDate time.Time, history []DatedQuotes, b curve.Builder) ([]term.Structure, error) {
	curves := make([]term.Structure, 0, len(history))
	for _, dq := range history {
		c, err := b.Build(referenceDate, dq.Quotes)
		if err != nil {
			return nil, fmt.Errorf("historical curve %s: %w", dq.Date.Format("2006-01-02"), err)
		}
		curves = append(curves, c)
	}
	return curves, nil
}

// EstimateHistoricalLLFR arithmetically averages the single-curve LLFR over
// independently bootstrapped curves for the last N valuation dates. The
// averaging is first-class: each curve must come from that date's own quotes,
// not from re-weighting one curve.
func EstimateHistoricalLLFR(curves []term.Structure, p Params) (float64, error) {
	if len(curves) == 0 {
		return 0, ErrNoCurves
	}
	if p.HistoryLength > 0 && len(curves) != p.HistoryLength {
		return 0, fmt.Errorf("vintage %s averages over %d dates, got %d curves", p.Vintage, p.HistoryLength, len(curves))
	}
	sum := 0.0
	for _, ts := range curves {
		llfr, err := EstimateLLFR(ts, p)
		if err != nil {
			return 0, err
		}
		sum += llfr
	}
	return sum / float64(len(curves)), nil
}
