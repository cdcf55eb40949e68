package ufr

import (
	"fmt"
	"math"
	"time"

	"github.com/meenmo/ftklib/term"
)

// Extrapolated behaves identically to its base curve up to the first
// smoothing point and applies the UFR convergence law beyond it.
//
// For horizon h past the FSP the continuously-compounded forward is
//
//	f_c(FSP, FSP+h) = UFR_c + (LLFR - UFR_c) * B(h),  B(h) = (1 - e^{-ah}) / (ah)
//
// and the extrapolated continuous zero rate is the time-weighted blend of the
// zero to the FSP and that forward.
type Extrapolated struct {
	base    term.Structure
	llfr    float64
	p       Params
	fspZero float64 // continuous zero at the FSP, fixed at construction
}

// Extrapolate wraps base with the convergence-law extension. The base curve
// must reach the first smoothing point.
func Extrapolate(base term.Structure, llfr float64, p Params) (*Extrapolated, error) {
	if base == nil {
		return nil, term.ErrNilStructure
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	if base.MaxTime() < p.FirstSmoothingPoint {
		return nil, fmt.Errorf("%w: max time %.2f < FSP %.2f", ErrCurveTooShort, base.MaxTime(), p.FirstSmoothingPoint)
	}
	fspZero, err := base.ZeroRate(p.FirstSmoothingPoint, term.Continuous)
	if err != nil {
		return nil, err
	}
	return &Extrapolated{base: base, llfr: llfr, p: p, fspZero: fspZero}, nil
}

// LLFR returns the last-liquid-forward-rate the structure was built with.
func (e *Extrapolated) LLFR() float64 {
	return e.llfr
}

// Params returns the parameter vintage.
func (e *Extrapolated) Params() Params {
	return e.p
}

// ConvergenceFactor is B(h) = (1 - e^{-ah})/(ah), with B(0) = 1 by limit.
func ConvergenceFactor(alpha, h float64) float64 {
	x := alpha * h
	if x < 1e-8 {
		// Series expansion avoids 0/0 near the smoothing point.
		return 1.0 - x/2.0
	}
	return (1.0 - math.Exp(-x)) / x
}

// ConvergedForward is the continuously-compounded forward f_c(FSP, FSP+h).
func (e *Extrapolated) ConvergedForward(h float64) float64 {
	ufr := e.p.UltimateForwardRate
	return ufr + (e.llfr-ufr)*ConvergenceFactor(e.p.Alpha, h)
}

// continuousZero extrapolates the continuous zero rate at t > FSP.
func (e *Extrapolated) continuousZero(t float64) float64 {
	fsp := e.p.FirstSmoothingPoint
	h := t - fsp
	return (fsp*e.fspZero + h*e.ConvergedForward(h)) / t
}

// ValuationDate returns the base curve's valuation date.
func (e *Extrapolated) ValuationDate() time.Time {
	return e.base.ValuationDate()
}

// MaxTime is unbounded: the convergence law extends indefinitely.
func (e *Extrapolated) MaxTime() float64 {
	return math.Inf(1)
}

// DF returns the discount factor at t, delegating to the base curve up to
// the first smoothing point.
func (e *Extrapolated) DF(t float64) (float64, error) {
	if t < 0 {
		return 0, &term.OutOfRangeQueryError{Time: t, MaxTime: math.Inf(1)}
	}
	if t <= e.p.FirstSmoothingPoint {
		return e.base.DF(t)
	}
	return math.Exp(-e.continuousZero(t) * t), nil
}

// ZeroRate returns the zero rate at t under the requested compounding.
func (e *Extrapolated) ZeroRate(t float64, comp term.Compounding) (float64, error) {
	if t < 0 {
		return 0, &term.OutOfRangeQueryError{Time: t, MaxTime: math.Inf(1)}
	}
	if t <= e.p.FirstSmoothingPoint {
		return e.base.ZeroRate(t, comp)
	}
	zc := e.continuousZero(t)
	if comp == term.Continuous {
		return zc, nil
	}
	return term.ZeroFromDF(math.Exp(-zc*t), t, comp), nil
}

// ForwardRate returns the forward over [t1,t2], which may straddle the first
// smoothing point.
func (e *Extrapolated) ForwardRate(t1, t2 float64, comp term.Compounding) (float64, error) {
	if t2 <= t1 {
		return 0, term.ErrBadInterval
	}
	df1, err := e.DF(t1)
	if err != nil {
		return 0, err
	}
	df2, err := e.DF(t2)
	if err != nil {
		return 0, err
	}
	return term.ForwardFromDFs(df1, df2, t1, t2, comp)
}
