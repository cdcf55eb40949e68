package curve

import (
	"github.com/meenmo/ftklib/term"
	"github.com/meenmo/ftklib/utils"
)

// SamplePoint is one row of a reporting grid.
type SamplePoint struct {
	Time    float64 `json:"time"`
	DF      float64 `json:"df"`
	Zero    float64 `json:"zero"`
	Forward float64 `json:"forward"`
}

// reportDecimals fixes the rounding applied to every reported column, so a
// grid diffs cleanly across runs and platforms.
const reportDecimals = 12

// Sample evaluates a term structure on the given times, reporting the
// zero rate and the forward over each consecutive interval (the last row
// repeats its zero rate as the forward). All columns are rounded to the same
// reporting precision.
func Sample(ts term.Structure, times []float64, comp Compounding) ([]SamplePoint, error) {
	out := make([]SamplePoint, len(times))
	for i, t := range times {
		df, err := ts.DF(t)
		if err != nil {
			return nil, err
		}
		z, err := ts.ZeroRate(t, comp)
		if err != nil {
			return nil, err
		}
		z = utils.RoundTo(z, reportDecimals)
		out[i] = SamplePoint{Time: t, DF: utils.RoundTo(df, reportDecimals), Zero: z, Forward: z}
	}
	for i := 0; i < len(times)-1; i++ {
		f, err := ts.ForwardRate(times[i], times[i+1], comp)
		if err != nil {
			return nil, err
		}
		out[i].Forward = utils.RoundTo(f, reportDecimals)
	}
	return out, nil
}

// ParRate recovers the par swap rate (annual fixed coupons) implied by any
// term structure at the given maturity. Used to validate bootstrapped curves
// against independently published rates.
func ParRate(ts term.Structure, maturity float64) (float64, error) {
	annuity := 0.0
	prev := 0.0
	var dfT float64
	for _, tc := range couponTimes(maturity) {
		df, err := ts.DF(tc)
		if err != nil {
			return 0, err
		}
		annuity += (tc - prev) * df
		prev = tc
		dfT = df
	}
	return (1.0 - dfT) / annuity, nil
}
