package curve_test

import (
	"errors"
	"math"
	"testing"

	"github.com/meenmo/ftklib/curve"
	"github.com/meenmo/ftklib/term"
)

func TestBootstrapZeroCouponScenario(t *testing.T) {
	t.Parallel()

	crv := buildZC(t, curve.LinearLogDF, [][2]interface{}{
		{"1Y", 0.01},
		{"5Y", 0.015},
		{"10Y", 0.02},
	})

	// Single-cashflow instruments: the 5Y node discount factor is exactly
	// exp(-0.015*5) up to solver tolerance.
	df5, err := crv.DF(5)
	if err != nil {
		t.Fatalf("DF(5) error: %v", err)
	}
	if math.Abs(df5-math.Exp(-0.015*5)) > 1e-10 {
		t.Fatalf("DF(5) = %.14f, want exp(-0.075) = %.14f", df5, math.Exp(-0.015*5))
	}

	// Staircase property between the 5Y and 10Y nodes.
	ref, err := crv.ForwardRate(5, 10, term.Annual)
	if err != nil {
		t.Fatalf("ForwardRate(5,10) error: %v", err)
	}
	for _, iv := range [][2]float64{{5, 7}, {7, 8.5}, {9.9, 10}} {
		f, err := crv.ForwardRate(iv[0], iv[1], term.Annual)
		if err != nil {
			t.Fatalf("ForwardRate(%v,%v) error: %v", iv[0], iv[1], err)
		}
		if math.Abs(f-ref) > 1e-10 {
			t.Fatalf("forward over [%v,%v] = %.14f, want constant %.14f", iv[0], iv[1], f, ref)
		}
	}
}

func TestBootstrapParSwapReprices(t *testing.T) {
	t.Parallel()

	qs := curve.NewQuoteSet()
	for _, q := range []struct {
		tenor string
		rate  float64
	}{{"1Y", 0.010}, {"2Y", 0.012}, {"5Y", 0.015}, {"10Y", 0.020}, {"20Y", 0.022}} {
		if err := qs.Add(q.tenor, q.rate); err != nil {
			t.Fatalf("Add %s: %v", q.tenor, err)
		}
	}

	for _, policy := range allPolicies {
		b := curve.Builder{Policy: policy, Instrument: curve.InstrumentParSwap}
		crv, err := b.Build(valuationDate, qs)
		if err != nil {
			t.Fatalf("%s: Build: %v", policy, err)
		}
		// Input quotes must be recovered as par rates of the final curve.
		// The bootstrap is sequential, so non-local (cubic) policies reshape
		// the interpolant between earlier nodes once later pillars land;
		// their earlier instruments reprice only approximately, which is the
		// documented trade-off, not a defect.
		for i := 0; i < qs.Len(); i++ {
			q := qs.At(i)
			par, err := curve.ParRate(crv, q.Years)
			if err != nil {
				t.Fatalf("%s: ParRate(%v): %v", policy, q.Years, err)
			}
			tol := 1e-9
			if (policy == curve.CubicZero || policy == curve.CubicLogDF) && i < qs.Len()-1 {
				tol = 5e-4
			}
			if math.Abs(par-q.Rate) > tol {
				t.Fatalf("%s: par rate at %s = %.12f, quote %.12f", policy, q.Tenor, par, q.Rate)
			}
		}
	}
}

func TestBootstrapConvergenceFailureNamesTenor(t *testing.T) {
	t.Parallel()

	qs := curve.NewQuoteSet()
	if err := qs.Add("1Y", 0.01); err != nil {
		t.Fatalf("Add: %v", err)
	}
	// A massively negative zero yield implies DF(5) = e^{2.5}, outside any
	// admissible discount factor range.
	if err := qs.Add("5Y", -0.5); err != nil {
		t.Fatalf("Add: %v", err)
	}

	b := curve.Builder{Policy: curve.LinearLogDF, Instrument: curve.InstrumentZeroCoupon}
	_, err := b.Build(valuationDate, qs)
	var conv *curve.BootstrapConvergenceError
	if !errors.As(err, &conv) {
		t.Fatalf("error = %v, want *BootstrapConvergenceError", err)
	}
	if conv.Tenor != "5Y" {
		t.Fatalf("failing tenor = %q, want 5Y", conv.Tenor)
	}
}

func TestBootstrapEmptyQuoteSet(t *testing.T) {
	t.Parallel()

	b := curve.Builder{Policy: curve.LinearLogDF, Instrument: curve.InstrumentZeroCoupon}
	if _, err := b.Build(valuationDate, curve.NewQuoteSet()); !errors.Is(err, curve.ErrNoQuotes) {
		t.Fatalf("error = %v, want ErrNoQuotes", err)
	}
}

func TestBootstrappedQueryDomain(t *testing.T) {
	t.Parallel()

	crv := buildZC(t, curve.LinearLogDF, testQuotes)

	var oor *term.OutOfRangeQueryError
	if _, err := crv.DF(-0.5); !errors.As(err, &oor) {
		t.Fatalf("negative time error = %v, want *OutOfRangeQueryError", err)
	}
	if _, err := crv.DF(crv.MaxTime() + 0.01); !errors.As(err, &oor) {
		t.Fatalf("beyond-last-node error = %v, want *OutOfRangeQueryError", err)
	}
	if df, err := crv.DF(0); err != nil || df != 1.0 {
		t.Fatalf("DF(0) = %v, %v; want 1, nil", df, err)
	}
	if df, err := crv.DF(crv.MaxTime()); err != nil || df <= 0 {
		t.Fatalf("DF at last node = %v, %v", df, err)
	}
}

func TestCubicLogDFNonLocalSensitivity(t *testing.T) {
	t.Parallel()

	build := func(policy curve.Policy, bump10Y float64) *curve.Bootstrapped {
		qs := curve.NewQuoteSet()
		for _, q := range []struct {
			tenor string
			rate  float64
		}{{"1Y", 0.010}, {"2Y", 0.012}, {"5Y", 0.015}, {"10Y", 0.020 + bump10Y}, {"20Y", 0.022}} {
			if err := qs.Add(q.tenor, q.rate); err != nil {
				t.Fatalf("Add %s: %v", q.tenor, err)
			}
		}
		b := curve.Builder{Policy: policy, Instrument: curve.InstrumentParSwap}
		crv, err := b.Build(valuationDate, qs)
		if err != nil {
			t.Fatalf("Build: %v", err)
		}
		return crv
	}

	// Bumping the 10Y quote must move the 1.5Y discount factor under the
	// cubic log-discount policy (non-local by construction) while the
	// log-linear policy keeps the short end pinned.
	const bump = 1e-3
	cubicBase, _ := build(curve.CubicLogDF, 0).DF(1.5)
	cubicBumped, _ := build(curve.CubicLogDF, bump).DF(1.5)
	if math.Abs(cubicBumped-cubicBase) < 1e-12 {
		t.Fatalf("cubic-logdf: 10Y bump left DF(1.5) unchanged (%.16f); non-locality lost", cubicBase)
	}

	linBase, _ := build(curve.LinearLogDF, 0).DF(1.5)
	linBumped, _ := build(curve.LinearLogDF, bump).DF(1.5)
	if math.Abs(linBumped-linBase) > 1e-12 {
		t.Fatalf("linear-logdf: 10Y bump moved DF(1.5) by %.3e; should be local", linBumped-linBase)
	}
}
