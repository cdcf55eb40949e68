package curve

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/meenmo/ftklib/curve/config"
	"github.com/meenmo/ftklib/term"
)

var (
	// ErrNoQuotes is returned when a build is attempted with an empty quote set.
	ErrNoQuotes = errors.New("quote set is empty")
)

// BootstrapConvergenceError reports a pillar whose root-find failed within
// the iteration budget. The build fails as a whole; there is no partial
// success.
type BootstrapConvergenceError struct {
	Tenor      string
	Iterations int
}

func (e *BootstrapConvergenceError) Error() string {
	return fmt.Sprintf("bootstrap failed to converge at tenor %s after %d iterations", e.Tenor, e.Iterations)
}

// Instrument selects the par instrument implied by each quote.
type Instrument int

const (
	// InstrumentZeroCoupon treats the quote as a continuously-compounded zero
	// yield: fair value is zero when DF(T)*e^{rT} = 1. A single cashflow per
	// node.
	InstrumentZeroCoupon Instrument = iota
	// InstrumentParSwap treats the quote as a par swap rate with annual fixed
	// coupons: 1 = r*sum(alpha_i*DF(t_i)) + DF(T). Coupon discount factors
	// are read through the active interpolation policy over the node set
	// including the unknown pillar, so cubic policies make distant pillars
	// interact.
	InstrumentParSwap
)

func (ins Instrument) String() string {
	switch ins {
	case InstrumentZeroCoupon:
		return "zero-coupon"
	case InstrumentParSwap:
		return "par-swap"
	default:
		return fmt.Sprintf("Instrument(%d)", int(ins))
	}
}

// ParseInstrument maps an instrument name to an Instrument.
func ParseInstrument(s string) (Instrument, error) {
	switch s {
	case "zero-coupon", "zc":
		return InstrumentZeroCoupon, nil
	case "par-swap", "swap":
		return InstrumentParSwap, nil
	}
	return 0, fmt.Errorf("unknown instrument %q", s)
}

// Builder bootstraps a discount curve from a quote set.
type Builder struct {
	Policy     Policy
	Instrument Instrument
}

// Node is a bootstrapped (time, discount factor) pair.
type Node struct {
	Time float64 `json:"time"`
	DF   float64 `json:"df"`
}

// Bootstrapped is an interpolated node curve. It implements term.Structure
// and is immutable once built: any quote change requires a full rebuild.
type Bootstrapped struct {
	valuedAt time.Time
	policy   Policy
	times    []float64 // strictly increasing, times[0] == 0
	dfs      []float64 // dfs[0] == 1
	tenors   []string  // quote labels aligned to times[1:]
}

// Build bootstraps the curve node by node in increasing maturity order.
//
// Each pillar's discount factor is solved so the quote's par instrument
// reprices to zero given all previously solved nodes and the interpolation
// policy between them. A non-converging pillar fails the whole build with a
// *BootstrapConvergenceError naming the tenor; the solver never extrapolates
// backward to paper over bad input.
func (b Builder) Build(valuationDate time.Time, qs *QuoteSet) (*Bootstrapped, error) {
	if qs == nil || qs.Len() == 0 {
		return nil, ErrNoQuotes
	}
	cfg := config.GetConfig()

	n := qs.Len()
	times := make([]float64, 1, n+1)
	dfs := make([]float64, 1, n+1)
	times[0] = 0
	dfs[0] = 1.0
	tenors := make([]string, 0, n)

	for i := 0; i < n; i++ {
		q := qs.At(i)
		candTimes := append(times, q.Years)
		fair := func(x float64) float64 {
			candDFs := append(dfs, x)
			return b.fairValue(q, candTimes, candDFs)
		}
		df, ok := bisect(fair, cfg.MinDiscountFactor, cfg.MaxDiscountFactor,
			cfg.ConvergenceTolerance, cfg.MaxBootstrapIterations)
		if !ok {
			return nil, &BootstrapConvergenceError{Tenor: q.Tenor, Iterations: cfg.MaxBootstrapIterations}
		}
		times = append(times, q.Years)
		dfs = append(dfs, df)
		tenors = append(tenors, q.Tenor)
	}

	return &Bootstrapped{
		valuedAt: valuationDate,
		policy:   b.Policy,
		times:    times,
		dfs:      dfs,
		tenors:   tenors,
	}, nil
}

// fairValue prices quote q's instrument over the candidate grid, whose last
// entry is the unknown pillar. Zero means the instrument is exactly at par.
func (b Builder) fairValue(q Quote, times, dfs []float64) float64 {
	x := dfs[len(dfs)-1]
	switch b.Instrument {
	case InstrumentParSwap:
		pv := 0.0
		prev := 0.0
		for _, tc := range couponTimes(q.Years) {
			alpha := tc - prev
			var df float64
			if tc == q.Years {
				df = x
			} else {
				df = b.Policy.discountFactor(times, dfs, tc)
			}
			pv += q.Rate * alpha * df
			prev = tc
		}
		return pv + x - 1.0
	default: // InstrumentZeroCoupon
		return x*math.Exp(q.Rate*q.Years) - 1.0
	}
}

// couponTimes rolls annual coupon dates backward from maturity, producing a
// front stub when the maturity is not a whole number of years.
func couponTimes(maturity float64) []float64 {
	var ts []float64
	for t := maturity; t > 1e-9; t -= 1.0 {
		ts = append(ts, t)
	}
	sort.Float64s(ts)
	return ts
}

// bisect finds the root of f, assumed monotonically increasing in the
// discount factor, within [lo, hi]. It returns false once the iteration
// budget is exhausted without meeting the tolerance.
func bisect(f func(float64) float64, lo, hi, tol float64, maxIter int) (float64, bool) {
	flo := f(lo)
	fhi := f(hi)
	if flo > 0 || fhi < 0 {
		// No sign change in the admissible DF range: the quote implies an
		// impossible discount factor.
		return 0, false
	}
	for i := 0; i < maxIter; i++ {
		x := 0.5 * (lo + hi)
		fx := f(x)
		if math.Abs(fx) < tol || hi-lo < 1e-15 {
			return x, true
		}
		if fx < 0 {
			lo = x
		} else {
			hi = x
		}
	}
	return 0, false
}

// ValuationDate returns the curve's valuation date.
func (c *Bootstrapped) ValuationDate() time.Time {
	return c.valuedAt
}

// MaxTime returns the last bootstrapped node time.
func (c *Bootstrapped) MaxTime() float64 {
	return c.times[len(c.times)-1]
}

// Policy returns the interpolation policy the curve was built with.
func (c *Bootstrapped) Policy() Policy {
	return c.policy
}

// Nodes returns the bootstrapped (time, discount factor) pairs, including the
// definitional node at time zero.
func (c *Bootstrapped) Nodes() []Node {
	out := make([]Node, len(c.times))
	for i := range c.times {
		out[i] = Node{Time: c.times[i], DF: c.dfs[i]}
	}
	return out
}

// Tenors returns the quote labels aligned to the non-zero nodes.
func (c *Bootstrapped) Tenors() []string {
	out := make([]string, len(c.tenors))
	copy(out, c.tenors)
	return out
}

// DF returns the discount factor at year fraction t. Queries beyond the last
// node fail: a bootstrapped curve does not extrapolate.
func (c *Bootstrapped) DF(t float64) (float64, error) {
	if err := term.CheckTime(t, c.MaxTime()); err != nil {
		return 0, err
	}
	return c.policy.discountFactor(c.times, c.dfs, t), nil
}

// ZeroRate returns the zero rate at t under the requested compounding. At
// t == 0 it reports the first node's level (the curve's short-end limit).
func (c *Bootstrapped) ZeroRate(t float64, comp Compounding) (float64, error) {
	if err := term.CheckTime(t, c.MaxTime()); err != nil {
		return 0, err
	}
	if t == 0 {
		zc := -math.Log(c.dfs[1]) / c.times[1]
		if comp == term.Continuous {
			return zc, nil
		}
		return term.ZeroFromDF(math.Exp(-zc), 1.0, comp), nil
	}
	df := c.policy.discountFactor(c.times, c.dfs, t)
	return term.ZeroFromDF(df, t, comp), nil
}

// ForwardRate returns the forward rate over [t1, t2].
func (c *Bootstrapped) ForwardRate(t1, t2 float64, comp Compounding) (float64, error) {
	if t2 <= t1 {
		return 0, term.ErrBadInterval
	}
	df1, err := c.DF(t1)
	if err != nil {
		return 0, err
	}
	df2, err := c.DF(t2)
	if err != nil {
		return 0, err
	}
	return term.ForwardFromDFs(df1, df2, t1, t2, comp)
}

// Compounding aliases the term package convention for call sites that only
// import curve.
type Compounding = term.Compounding
