package algebra

import (
	"fmt"
	"slices"
)

// ParamPair holds the parameters S on the first curve and T on the second curve of an intersection point.
type ParamPair struct {
	S, T Algebraic
}

func (pp ParamPair) String() string {
	return fmt.Sprintf("(%v,%v)", pp.S, pp.T)
}

// Kernel solves the polynomial systems of Bezier curves exactly. It has no state.
type Kernel struct{}

// VerticalTangencies returns the sorted parameters in the open interval (0,1) where dX/dt vanishes. A constant X has no isolated tangencies.
func (Kernel) VerticalTangencies(x Polynomial) []Algebraic {
	return openRoots(x.Derivative())
}

// Intersections returns the parameter pairs (s,t) in [0,1]x[0,1] where the curves (x1(s),y1(s)) and (x2(t),y2(t)) meet. If the resultants vanish identically, the curves share a component and overlap is true, the parameter pairs are not computed in that case.
func (Kernel) Intersections(x1, y1, x2, y2 Polynomial) ([]ParamPair, bool) {
	f := FromS(x1).Sub(FromT(x2))
	g := FromS(y1).Sub(FromT(y2))
	return solve(f, g, x1, y1, x2, y2, false)
}

// SelfIntersections returns the parameter pairs (s,t) with s < t in [0,1] where the curve (x(t),y(t)) passes twice through the same point. Overlap is true if the system is degenerate, which happens when the curve runs over itself or lies on a line.
func (Kernel) SelfIntersections(x, y Polynomial) ([]ParamPair, bool) {
	f := DividedDifference(x)
	g := DividedDifference(y)
	if f.DegreeS() < 0 || g.DegreeS() < 0 {
		// constant coordinate, the curve lies on a line
		return nil, true
	}
	return solve(f, g, x, y, x, y, true)
}

func solve(f, g Poly2, x1, y1, x2, y2 Polynomial, self bool) ([]ParamPair, bool) {
	rs := Resultant(f, g)
	if rs.IsZero() {
		return nil, true
	}
	rt := Resultant(f.Swap(), g.Swap())
	if rt.IsZero() {
		return nil, true
	}

	zero, one := Int(0), Int(1)
	ss := IsolateRoots(rs, zero, one)
	ts := IsolateRoots(rt, zero, one)
	if len(ss) == 0 || len(ts) == 0 {
		return nil, false
	}

	xs := make([]Algebraic, len(ss))
	ys := make([]Algebraic, len(ss))
	for i, s := range ss {
		xs[i] = EvalAt(x1, s)
		ys[i] = EvalAt(y1, s)
	}
	pairs := []ParamPair{}
	for _, t := range ts {
		x := EvalAt(x2, t)
		y := EvalAt(y2, t)
		for i, s := range ss {
			if self && Compare(s, t) >= 0 {
				continue
			} else if Compare(xs[i], x) == 0 && Compare(ys[i], y) == 0 {
				pairs = append(pairs, ParamPair{S: s, T: t})
			}
		}
	}
	slices.SortStableFunc(pairs, func(a, b ParamPair) int {
		if c := Compare(a.S, b.S); c != 0 {
			return c
		}
		return Compare(a.T, b.T)
	})
	return pairs, false
}

// openRoots returns the distinct roots of p in (0,1).
func openRoots(p Polynomial) []Algebraic {
	zero, one := Int(0), Int(1)
	roots := IsolateRoots(p, zero, one)
	return slices.DeleteFunc(roots, func(a Algebraic) bool {
		return a.CmpRat(zero) == 0 || a.CmpRat(one) == 0
	})
}
