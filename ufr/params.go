// Package ufr extrapolates a bootstrapped curve beyond its last liquid point
// using an Ultimate-Forward-Rate convergence model, in the Dutch regulatory
// (FTK) vintages.
package ufr

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/meenmo/ftklib/term"
)

var (
	// ErrNoWeights is returned when an LLFR estimate is requested without
	// horizon weights.
	ErrNoWeights = errors.New("no LLFR horizon weights")
	// ErrNoCurves is returned when a historical-mean LLFR is requested with
	// an empty curve set.
	ErrNoCurves = errors.New("no curves for historical LLFR mean")
	// ErrCurveTooShort is returned when a base curve does not reach the first
	// smoothing point.
	ErrCurveTooShort = errors.New("base curve does not reach the first smoothing point")
)

// HorizonWeight weights the forward rate from the first smoothing point to
// Horizon (an absolute year fraction, e.g. 30 means f(FSP, 30)).
type HorizonWeight struct {
	Horizon float64 `yaml:"horizon" validate:"gt=0"`
	Weight  float64 `yaml:"weight" validate:"gt=0"`
}

// Params is one regulatory parameter vintage.
//
// UltimateForwardRate is continuously compounded; published UFRs are annually
// compounded and go through NewParams for exact conversion (and optional
// rounding) first.
type Params struct {
	Vintage             string
	FirstSmoothingPoint float64
	Alpha               float64
	UltimateForwardRate float64
	LLFRWeights         []HorizonWeight
	Omega               float64

	// HistoryLength is the number of recent valuation dates the
	// historical-mean LLFR estimator averages over (0 for single-curve
	// vintages).
	HistoryLength int
}

func (p Params) validate() error {
	if p.FirstSmoothingPoint <= 0 {
		return fmt.Errorf("vintage %s: first smoothing point must be positive", p.Vintage)
	}
	if p.Alpha <= 0 {
		return fmt.Errorf("vintage %s: alpha must be positive", p.Vintage)
	}
	if len(p.LLFRWeights) == 0 {
		return fmt.Errorf("vintage %s: %w", p.Vintage, ErrNoWeights)
	}
	for _, hw := range p.LLFRWeights {
		if hw.Horizon <= p.FirstSmoothingPoint {
			return fmt.Errorf("vintage %s: LLFR horizon %.2f not beyond FSP %.2f",
				p.Vintage, hw.Horizon, p.FirstSmoothingPoint)
		}
	}
	if p.Omega <= 0 {
		return fmt.Errorf("vintage %s: omega must be positive", p.Vintage)
	}
	return nil
}

// RoundingPolicy optionally rounds a published annually-compounded UFR to a
// fixed number of decimals before use. The regulation mentions rounding but
// the reference material applies it inconsistently, so it is a policy here,
// not a hardcoded truncation.
type RoundingPolicy struct {
	Enabled  bool
	Decimals int32
}

// NoRounding leaves the published rate untouched.
var NoRounding = RoundingPolicy{}

// RoundTo rounds to the given number of decimal places.
func RoundTo(decimals int32) RoundingPolicy {
	return RoundingPolicy{Enabled: true, Decimals: decimals}
}

// Apply applies the policy to an annually-compounded rate. Rounding is done
// in decimal arithmetic so 0.0185 at 3 decimals is exactly 0.019, not a
// binary-float neighbour.
func (rp RoundingPolicy) Apply(rate float64) float64 {
	if !rp.Enabled {
		return rate
	}
	v, _ := decimal.NewFromFloat(rate).Round(rp.Decimals).Float64()
	return v
}

// NewParams assembles a Params from an annually-compounded published UFR,
// applying the rounding policy and then the exact compounding conversion.
func NewParams(vintage string, fsp, alpha, ufrAnnual float64, rounding RoundingPolicy, weights []HorizonWeight, omega float64, historyLength int) (Params, error) {
	p := Params{
		Vintage:             vintage,
		FirstSmoothingPoint: fsp,
		Alpha:               alpha,
		UltimateForwardRate: term.AnnualToContinuous(rounding.Apply(ufrAnnual)),
		LLFRWeights:         weights,
		Omega:               omega,
		HistoryLength:       historyLength,
	}
	if err := p.validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}
