package ufr

import (
	"fmt"

	"github.com/meenmo/ftklib/term"
)

// Parameter vintages for the Dutch regulatory (FTK) curve.
//
// The published UFRs are annually compounded and stored here already
// converted to continuous compounding; rounding of the published value is a
// caller policy, so the presets take the rate as published.
var (
	// Vintage2015 is the original FTK smoothing method: LLFR as a single
	// weighted sum of forwards from the FSP out to 25/30/40 years, with the
	// weights summing below 1 and rescaled by omega.
	Vintage2015 = Params{
		Vintage:             "2015",
		FirstSmoothingPoint: 20,
		Alpha:               0.10,
		UltimateForwardRate: term.AnnualToContinuous(0.042),
		LLFRWeights: []HorizonWeight{
			{Horizon: 25, Weight: 0.500},
			{Horizon: 30, Weight: 0.250},
			{Horizon: 40, Weight: 0.125},
		},
		Omega: 8.0 / 7.0,
	}

	// Vintage2024 is the revised method: fewer horizons, omega 1, and the
	// LLFR averaged over the last five valuation dates' independently
	// bootstrapped curves.
	Vintage2024 = Params{
		Vintage:             "2024",
		FirstSmoothingPoint: 20,
		Alpha:               0.10,
		UltimateForwardRate: term.AnnualToContinuous(0.018),
		LLFRWeights: []HorizonWeight{
			{Horizon: 30, Weight: 0.75},
			{Horizon: 50, Weight: 0.25},
		},
		Omega:         1.0,
		HistoryLength: 5,
	}
)

// VintageParams returns a preset by name ("2015" or "2024"). The "2021"
// structure is not a parameter set; see TransitionCurve.
func VintageParams(vintage string) (Params, error) {
	switch vintage {
	case "2015":
		return Vintage2015, nil
	case "2024":
		return Vintage2024, nil
	}
	return Params{}, fmt.Errorf("unknown UFR vintage %q", vintage)
}

// TransitionWeight returns the 2024-method weight for a transition year of
// the four-year phase-in from the 2015 to the 2024 method.
func TransitionWeight(year int) (float64, error) {
	if year < 2021 || year > 2024 {
		return 0, fmt.Errorf("transition year %d outside 2021-2024", year)
	}
	return float64(year-2020) * 0.25, nil
}

// TransitionCurve blends the 2015- and 2024-method extrapolated curves for a
// transition year. Blending happens in annually-compounded zero-rate space,
// matching how the regulator publishes the transitional curve.
func TransitionCurve(c2015, c2024 term.Structure, year int) (*term.Composite, error) {
	w, err := TransitionWeight(year)
	if err != nil {
		return nil, err
	}
	return term.Blend(c2015, c2024, 1.0-w, w, term.Annual)
}
