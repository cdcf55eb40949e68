package term

import (
	"fmt"
	"math"
	"time"
)

// InvalidWeightError reports composite weights that do not form a convex
// combination.
type InvalidWeightError struct {
	WeightA float64
	WeightB float64
}

func (e *InvalidWeightError) Error() string {
	return fmt.Sprintf("composite weights (%.6f, %.6f) must lie in [0,1] and sum to 1", e.WeightA, e.WeightB)
}

// Composite blends the zero rates of two underlying structures.
//
// Blending happens in rate space under the compounding fixed at construction:
// zero(t) = wa*A.zero(t) + wb*B.zero(t). Discount factors are derived from the
// blended zero rate, never by mixing discount factors directly.
type Composite struct {
	a, b     Structure
	wa, wb   float64
	comp     Compounding
	maxTime  float64
	valuedAt time.Time
}

const weightSumTolerance = 1e-12

// Blend combines two structures with the given weights.
//
// The weights must lie in [0,1] and sum to 1, and both structures must share
// a valuation date. Constituents are held by reference: rebuilding either
// requires rebuilding the composite.
func Blend(a, b Structure, wa, wb float64, comp Compounding) (*Composite, error) {
	if a == nil || b == nil {
		return nil, ErrNilStructure
	}
	if wa < 0 || wa > 1 || wb < 0 || wb > 1 || math.Abs(wa+wb-1.0) > weightSumTolerance {
		return nil, &InvalidWeightError{WeightA: wa, WeightB: wb}
	}
	if !a.ValuationDate().Equal(b.ValuationDate()) {
		return nil, fmt.Errorf("blend: %w: %s vs %s", ErrValuationDateMismatch,
			a.ValuationDate().Format("2006-01-02"), b.ValuationDate().Format("2006-01-02"))
	}
	return &Composite{
		a:        a,
		b:        b,
		wa:       wa,
		wb:       wb,
		comp:     comp,
		maxTime:  math.Min(a.MaxTime(), b.MaxTime()),
		valuedAt: a.ValuationDate(),
	}, nil
}

// ValuationDate returns the shared valuation date of the constituents.
func (c *Composite) ValuationDate() time.Time {
	return c.valuedAt
}

// MaxTime returns the shorter of the two constituent domains.
func (c *Composite) MaxTime() float64 {
	return c.maxTime
}

// blendedZero returns the weighted zero rate under the blend compounding.
func (c *Composite) blendedZero(t float64) (float64, error) {
	za, err := c.a.ZeroRate(t, c.comp)
	if err != nil {
		return 0, err
	}
	zb, err := c.b.ZeroRate(t, c.comp)
	if err != nil {
		return 0, err
	}
	return c.wa*za + c.wb*zb, nil
}

// DF returns the discount factor derived from the blended zero rate.
func (c *Composite) DF(t float64) (float64, error) {
	if err := CheckTime(t, c.maxTime); err != nil {
		return 0, err
	}
	if t == 0 {
		return 1.0, nil
	}
	z, err := c.blendedZero(t)
	if err != nil {
		return 0, err
	}
	return DFFromZero(z, t, c.comp), nil
}

// ZeroRate returns the blended zero rate, converted to the requested
// compounding when it differs from the blend convention.
func (c *Composite) ZeroRate(t float64, comp Compounding) (float64, error) {
	if err := CheckTime(t, c.maxTime); err != nil {
		return 0, err
	}
	z, err := c.blendedZero(t)
	if err != nil {
		return 0, err
	}
	if comp == c.comp || t == 0 {
		return z, nil
	}
	return ZeroFromDF(DFFromZero(z, t, c.comp), t, comp), nil
}

// ForwardRate returns the forward rate over [t1,t2] implied by the blended
// discount factors.
func (c *Composite) ForwardRate(t1, t2 float64, comp Compounding) (float64, error) {
	if t2 <= t1 {
		return 0, ErrBadInterval
	}
	df1, err := c.DF(t1)
	if err != nil {
		return 0, err
	}
	df2, err := c.DF(t2)
	if err != nil {
		return 0, err
	}
	return ForwardFromDFs(df1, df2, t1, t2, comp)
}
