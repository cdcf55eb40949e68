// Package term defines the term-structure abstraction shared by bootstrapped,
// extrapolated, and composite curves.
//
// All times are year fractions measured from a fixed valuation date. Rates are
// plain decimals (0.025 == 2.5%).
package term

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	// ErrNilStructure is returned when a required term structure argument is nil.
	ErrNilStructure = errors.New("nil term structure")
	// ErrBadInterval is returned when a forward rate is requested over an
	// empty or inverted interval.
	ErrBadInterval = errors.New("forward interval must have t2 > t1")
	// ErrValuationDateMismatch is returned when two structures with different
	// valuation dates are combined.
	ErrValuationDateMismatch = errors.New("valuation date mismatch")
)

// Compounding selects the rate quotation convention.
type Compounding int

const (
	// Continuous compounding: DF = exp(-z*t).
	Continuous Compounding = iota
	// Annual compounding: DF = (1+z)^-t.
	Annual
	// Simple interest: DF = 1/(1+z*t).
	Simple
)

func (c Compounding) String() string {
	switch c {
	case Continuous:
		return "Continuous"
	case Annual:
		return "Annual"
	case Simple:
		return "Simple"
	default:
		return fmt.Sprintf("Compounding(%d)", int(c))
	}
}

// Structure exposes discount factors and rates for a fixed valuation date.
//
// Implementations are immutable once built. A query at a negative time, or
// beyond the last node of a structure that does not extrapolate, returns
// *OutOfRangeQueryError.
type Structure interface {
	ValuationDate() time.Time

	// MaxTime is the largest queryable year fraction. Structures that
	// extrapolate indefinitely report math.Inf(1).
	MaxTime() float64

	DF(t float64) (float64, error)
	ZeroRate(t float64, comp Compounding) (float64, error)
	ForwardRate(t1, t2 float64, comp Compounding) (float64, error)
}

// OutOfRangeQueryError reports a query time outside a structure's domain.
type OutOfRangeQueryError struct {
	Time    float64
	MaxTime float64
}

func (e *OutOfRangeQueryError) Error() string {
	if e.Time < 0 {
		return fmt.Sprintf("query time %.6f is negative", e.Time)
	}
	return fmt.Sprintf("query time %.6f beyond last node %.6f (extrapolation disabled)", e.Time, e.MaxTime)
}

// CheckTime validates a query time against [0, maxTime].
func CheckTime(t, maxTime float64) error {
	if t < 0 || t > maxTime {
		return &OutOfRangeQueryError{Time: t, MaxTime: maxTime}
	}
	return nil
}

// AnnualToContinuous converts an annually-compounded per-annum rate to its
// continuously-compounded equivalent: z_c = ln(1+z).
func AnnualToContinuous(z float64) float64 {
	return math.Log1p(z)
}

// ContinuousToAnnual converts a continuously-compounded per-annum rate to its
// annually-compounded equivalent: z = e^{z_c}-1.
func ContinuousToAnnual(zc float64) float64 {
	return math.Expm1(zc)
}

// DFFromZero returns the discount factor implied by zero rate z over [0,t]
// under the given compounding.
func DFFromZero(z, t float64, comp Compounding) float64 {
	if t == 0 {
		return 1.0
	}
	switch comp {
	case Annual:
		return math.Pow(1.0+z, -t)
	case Simple:
		return 1.0 / (1.0 + z*t)
	default:
		return math.Exp(-z * t)
	}
}

// ZeroFromDF returns the zero rate over [0,t] implied by a discount factor
// under the given compounding. t must be positive.
func ZeroFromDF(df, t float64, comp Compounding) float64 {
	switch comp {
	case Annual:
		return math.Pow(df, -1.0/t) - 1.0
	case Simple:
		return (1.0/df - 1.0) / t
	default:
		return -math.Log(df) / t
	}
}

// ForwardFromDFs returns the forward rate over [t1,t2] implied by the two
// discount factors under the given compounding.
func ForwardFromDFs(df1, df2, t1, t2 float64, comp Compounding) (float64, error) {
	if t2 <= t1 {
		return 0, ErrBadInterval
	}
	tau := t2 - t1
	switch comp {
	case Annual:
		return math.Pow(df1/df2, 1.0/tau) - 1.0, nil
	case Simple:
		return (df1/df2 - 1.0) / tau, nil
	default:
		return math.Log(df1/df2) / tau, nil
	}
}
