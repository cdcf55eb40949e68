package curve

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Policy selects how discount factors are obtained between bootstrap nodes.
//
// The four policies differ in the transformed space (continuous zero rate vs
// log discount factor) and the interpolant order (linear vs natural cubic
// spline). All of them reproduce node values exactly.
//
// Shape trade-offs, preserved deliberately:
//   - LinearZero: saw-tooth forward curve (slope kinks at every node).
//   - CubicZero: smoother, but forwards still unstable between distant nodes.
//   - LinearLogDF: flat annually-compounded forward between consecutive nodes
//     (staircase forwards).
//   - CubicLogDF: smooth forwards with non-local sensitivity: bumping one
//     quote moves deltas at distant tenors.
type Policy int

const (
	LinearZero Policy = iota
	CubicZero
	LinearLogDF
	CubicLogDF
)

func (p Policy) String() string {
	switch p {
	case LinearZero:
		return "linear-zero"
	case CubicZero:
		return "cubic-zero"
	case LinearLogDF:
		return "linear-logdf"
	case CubicLogDF:
		return "cubic-logdf"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy maps a policy name (as accepted on the command line and in
// config files) back to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "linear-zero", "linearzero":
		return LinearZero, nil
	case "cubic-zero", "cubiczero":
		return CubicZero, nil
	case "linear-logdf", "linearlogdf", "loglinear":
		return LinearLogDF, nil
	case "cubic-logdf", "cubiclogdf":
		return CubicLogDF, nil
	}
	return 0, fmt.Errorf("unknown interpolation policy %q", s)
}

func (p Policy) cubic() bool {
	return p == CubicZero || p == CubicLogDF
}

func (p Policy) logSpace() bool {
	return p == LinearLogDF || p == CubicLogDF
}

// transform maps node discount factors into the policy's interpolation space.
// times[0] must be 0 with dfs[0] == 1.
func (p Policy) transform(times, dfs []float64) []float64 {
	ys := make([]float64, len(dfs))
	if p.logSpace() {
		for i, df := range dfs {
			ys[i] = math.Log(df)
		}
		return ys
	}
	for i, df := range dfs {
		if times[i] == 0 {
			continue // patched below
		}
		ys[i] = -math.Log(df) / times[i]
	}
	// The zero rate has no value at t=0; extend the first node's level flat
	// to the origin so the interpolant is defined on the whole grid.
	if len(ys) > 1 {
		ys[0] = ys[1]
	}
	return ys
}

func (p Policy) untransform(y, t float64) float64 {
	if p.logSpace() {
		return math.Exp(y)
	}
	return math.Exp(-y * t)
}

// discountFactor evaluates the policy over the node grid at time t.
// The grid must be strictly increasing with times[0] == 0, and t must lie in
// [times[0], times[last]].
func (p Policy) discountFactor(times, dfs []float64, t float64) float64 {
	// Exact node values bypass the interpolant entirely.
	idx := sort.SearchFloat64s(times, t)
	if idx < len(times) && times[idx] == t {
		return dfs[idx]
	}

	ys := p.transform(times, dfs)
	var y float64
	if p.cubic() {
		m := splineSecondDerivs(times, ys)
		y = splineEval(times, ys, m, t)
	} else {
		// idx > 0 here since t != times[0].
		x0, x1 := times[idx-1], times[idx]
		y0, y1 := ys[idx-1], ys[idx]
		y = y0 + (y1-y0)*(t-x0)/(x1-x0)
	}
	return p.untransform(y, t)
}

// splineSecondDerivs computes natural cubic spline second derivatives at the
// nodes via the Thomas tridiagonal algorithm.
func splineSecondDerivs(xs, ys []float64) []float64 {
	n := len(xs)
	m := make([]float64, n)
	if n < 3 {
		return m // degenerates to linear
	}

	// Interior equations:
	// h_{i-1}m_{i-1} + 2(h_{i-1}+h_i)m_i + h_i m_{i+1} = 6(d_i - d_{i-1})
	// with natural boundaries m_0 = m_{n-1} = 0.
	sub := make([]float64, n)
	diag := make([]float64, n)
	sup := make([]float64, n)
	rhs := make([]float64, n)
	for i := 1; i < n-1; i++ {
		h0 := xs[i] - xs[i-1]
		h1 := xs[i+1] - xs[i]
		sub[i] = h0
		diag[i] = 2.0 * (h0 + h1)
		sup[i] = h1
		rhs[i] = 6.0 * ((ys[i+1]-ys[i])/h1 - (ys[i]-ys[i-1])/h0)
	}

	// Forward elimination over the interior band.
	for i := 2; i < n-1; i++ {
		w := sub[i] / diag[i-1]
		diag[i] -= w * sup[i-1]
		rhs[i] -= w * rhs[i-1]
	}
	// Back substitution.
	m[n-2] = rhs[n-2] / diag[n-2]
	for i := n - 3; i >= 1; i-- {
		m[i] = (rhs[i] - sup[i]*m[i+1]) / diag[i]
	}
	return m
}

// splineEval evaluates the natural cubic spline at x given node second
// derivatives m.
func splineEval(xs, ys, m []float64, x float64) float64 {
	n := len(xs)
	idx := sort.SearchFloat64s(xs, x)
	if idx <= 0 {
		idx = 1
	}
	if idx >= n {
		idx = n - 1
	}
	x0, x1 := xs[idx-1], xs[idx]
	h := x1 - x0
	a := (x1 - x) / h
	b := (x - x0) / h
	return a*ys[idx-1] + b*ys[idx] +
		((a*a*a-a)*m[idx-1]+(b*b*b-b)*m[idx])*h*h/6.0
}
