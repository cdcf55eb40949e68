package curve_test

import (
	"math"
	"testing"
	"time"

	"github.com/meenmo/ftklib/curve"
	"github.com/meenmo/ftklib/term"
)

var valuationDate = time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

func buildZC(t *testing.T, policy curve.Policy, quotes [][2]interface{}) *curve.Bootstrapped {
	t.Helper()
	qs := curve.NewQuoteSet()
	for _, q := range quotes {
		if err := qs.Add(q[0].(string), q[1].(float64)); err != nil {
			t.Fatalf("Add %v: %v", q[0], err)
		}
	}
	b := curve.Builder{Policy: policy, Instrument: curve.InstrumentZeroCoupon}
	crv, err := b.Build(valuationDate, qs)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return crv
}

var testQuotes = [][2]interface{}{
	{"1Y", 0.010},
	{"2Y", 0.012},
	{"5Y", 0.015},
	{"10Y", 0.020},
	{"20Y", 0.022},
}

var allPolicies = []curve.Policy{
	curve.LinearZero,
	curve.CubicZero,
	curve.LinearLogDF,
	curve.CubicLogDF,
}

func TestNodeExactnessAllPolicies(t *testing.T) {
	t.Parallel()

	for _, policy := range allPolicies {
		crv := buildZC(t, policy, testQuotes)
		for _, node := range crv.Nodes() {
			got, err := crv.DF(node.Time)
			if err != nil {
				t.Fatalf("%s: DF(%v) error: %v", policy, node.Time, err)
			}
			if math.Abs(got-node.DF) > 1e-10 {
				t.Fatalf("%s: DF(%v) = %.14f, node value %.14f", policy, node.Time, got, node.DF)
			}
		}
	}
}

func TestLinearLogDFMatchesFlatForwardIdentity(t *testing.T) {
	t.Parallel()

	crv := buildZC(t, curve.LinearLogDF, testQuotes)
	nodes := crv.Nodes()

	// Between any two nodes, linear interpolation in log-discount space must
	// equal P(Ti) * (P(Ti)/P(Ti+1))^((Ti-T)/(Ti+1-Ti)).
	for i := 0; i < len(nodes)-1; i++ {
		t0, t1 := nodes[i].Time, nodes[i+1].Time
		p0, p1 := nodes[i].DF, nodes[i+1].DF
		for _, frac := range []float64{0.1, 0.5, 0.9} {
			tt := t0 + frac*(t1-t0)
			want := p0 * math.Pow(p0/p1, (t0-tt)/(t1-t0))
			got, err := crv.DF(tt)
			if err != nil {
				t.Fatalf("DF(%v) error: %v", tt, err)
			}
			if math.Abs(got-want)/want > 1e-12 {
				t.Fatalf("DF(%v) = %.16f, identity gives %.16f", tt, got, want)
			}
		}
	}
}

func TestLinearLogDFStaircaseForwards(t *testing.T) {
	t.Parallel()

	crv := buildZC(t, curve.LinearLogDF, testQuotes)

	// The annually-compounded forward is constant over any sub-interval
	// between consecutive nodes.
	ref, err := crv.ForwardRate(5, 10, term.Annual)
	if err != nil {
		t.Fatalf("ForwardRate(5,10) error: %v", err)
	}
	for _, iv := range [][2]float64{{5, 6}, {6.5, 7.25}, {9, 10}, {5.1, 9.9}} {
		f, err := crv.ForwardRate(iv[0], iv[1], term.Annual)
		if err != nil {
			t.Fatalf("ForwardRate(%v,%v) error: %v", iv[0], iv[1], err)
		}
		if math.Abs(f-ref) > 1e-10 {
			t.Fatalf("forward over [%v,%v] = %.14f, differs from [5,10] forward %.14f", iv[0], iv[1], f, ref)
		}
	}
}

func TestLinearZeroSawToothForwards(t *testing.T) {
	t.Parallel()

	crv := buildZC(t, curve.LinearZero, testQuotes)

	// Zero rates are piecewise linear with different slopes on [1,2] and
	// [2,5], so instantaneous forwards jump across the 2Y node.
	const eps = 1e-4
	left, err := crv.ForwardRate(2-2*eps, 2-eps, term.Continuous)
	if err != nil {
		t.Fatalf("left forward error: %v", err)
	}
	right, err := crv.ForwardRate(2+eps, 2+2*eps, term.Continuous)
	if err != nil {
		t.Fatalf("right forward error: %v", err)
	}
	if math.Abs(left-right) < 1e-6 {
		t.Fatalf("forwards continuous across node (%.10f vs %.10f); linear-on-zero should kink", left, right)
	}
}

func TestCubicPoliciesAreSmoothBetweenNodes(t *testing.T) {
	t.Parallel()

	for _, policy := range []curve.Policy{curve.CubicZero, curve.CubicLogDF} {
		crv := buildZC(t, policy, testQuotes)
		// A cubic interpolant has continuous value across nodes; sample
		// tightly around an interior node.
		const eps = 1e-9
		lo, err := crv.DF(5 - eps)
		if err != nil {
			t.Fatalf("%s: DF error: %v", policy, err)
		}
		hi, err := crv.DF(5 + eps)
		if err != nil {
			t.Fatalf("%s: DF error: %v", policy, err)
		}
		if math.Abs(hi-lo) > 1e-7 {
			t.Fatalf("%s: DF jumps across node: %.14f vs %.14f", policy, lo, hi)
		}
	}
}

func TestParsePolicyRoundTrip(t *testing.T) {
	t.Parallel()

	for _, policy := range allPolicies {
		got, err := curve.ParsePolicy(policy.String())
		if err != nil {
			t.Fatalf("ParsePolicy(%q) error: %v", policy.String(), err)
		}
		if got != policy {
			t.Fatalf("ParsePolicy(%q) = %v", policy.String(), got)
		}
	}
	if _, err := curve.ParsePolicy("quartic"); err == nil {
		t.Fatal("expected error for unknown policy")
	}
}
