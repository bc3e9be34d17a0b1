package bezier

import (
	"fmt"
	"math/big"

	"github.com/golang/geo/r2"
	"github.com/tdewolff/bezier/algebra"
)

// XMonotoneCurve is a part of a Bezier curve between the parameters lo < hi on which X(t) is strictly monotone, or Y(t) for vertical curves. It is directed from source to target, which may be opposite to the parameter direction.
type XMonotoneCurve struct {
	curve      *Curve
	lo, hi     Param
	pLo, pHi   *Point
	increasing bool // X(t), or Y(t) when vertical, increases with t
	vertical   bool
	reversed   bool // source is at hi
	bbox       r2.Rect
}

// newXMonotone returns the sub-curve of c between lo and hi directed along increasing t.
func (tr Traits) newXMonotone(c *Curve, lo, hi Param, pLo, pHi *Point) XMonotoneCurve {
	cv := XMonotoneCurve{
		curve:    c,
		lo:       lo,
		hi:       hi,
		pLo:      pLo,
		pHi:      pHi,
		vertical: c.IsVertical(),
	}
	cv.increasing = tr.increasing(c, lo, hi)
	cv.bbox = cv.boundingBox()
	return cv
}

// withRange returns the sub-curve over another parameter range with the same direction.
func (cv XMonotoneCurve) withRange(lo, hi Param, pLo, pHi *Point) XMonotoneCurve {
	cv.lo, cv.hi = lo, hi
	cv.pLo, cv.pHi = pLo, pHi
	cv.bbox = cv.boundingBox()
	return cv
}

// increasing returns true if the monotone coordinate increases with t on (lo,hi). It evaluates the sign of the derivative at a rational parameter strictly between both, resolving pending parameters only when their bounds touch.
func (tr Traits) increasing(c *Curve, lo, hi Param) bool {
	deriv := c.splitPolynomial().Derivative()
	a, b := lo.upper(), hi.lower()
	if cmp := a.Cmp(b); cmp < 0 {
		probe := algebra.Between(algebra.NewRational(a), algebra.NewRational(b))
		return 0 < deriv.Sign(probe)
	} else if cmp == 0 && lo.strict() && hi.strict() {
		if s := deriv.Sign(a); s != 0 {
			return 0 < s
		}
	}
	tlo, thi := tr.cache.resolve(c, lo), tr.cache.resolve(c, hi)
	return 0 < deriv.Sign(algebra.Between(tlo, thi))
}

// boundingBox returns a conservative bounding box using the control polygon of a parameter range containing [lo,hi].
func (cv XMonotoneCurve) boundingBox() r2.Rect {
	a, b := cv.lo.lower(), cv.hi.upper()
	if a.Sign() < 0 {
		a = new(big.Rat)
	}
	if 0 < b.Cmp(big.NewRat(1, 1)) {
		b = big.NewRat(1, 1)
	}
	bbox := algebra.ControlBox(algebra.SubdivideRange(cv.curve.cps, a, b))
	return bbox.Union(cv.pLo.bbox).Union(cv.pHi.bbox)
}

// Curve returns the backing Bezier curve.
func (cv XMonotoneCurve) Curve() *Curve {
	return cv.curve
}

// Source returns the start point.
func (cv XMonotoneCurve) Source() *Point {
	if cv.reversed {
		return cv.pHi
	}
	return cv.pLo
}

// Target returns the end point.
func (cv XMonotoneCurve) Target() *Point {
	if cv.reversed {
		return cv.pLo
	}
	return cv.pHi
}

// SourceParam returns the parameter of the start point on the backing curve.
func (cv XMonotoneCurve) SourceParam() Param {
	if cv.reversed {
		return cv.hi
	}
	return cv.lo
}

// TargetParam returns the parameter of the end point on the backing curve.
func (cv XMonotoneCurve) TargetParam() Param {
	if cv.reversed {
		return cv.lo
	}
	return cv.hi
}

// left returns the xy-smallest endpoint.
func (cv XMonotoneCurve) left() *Point {
	if cv.increasing {
		return cv.pLo
	}
	return cv.pHi
}

// right returns the xy-largest endpoint.
func (cv XMonotoneCurve) right() *Point {
	if cv.increasing {
		return cv.pHi
	}
	return cv.pLo
}

// IsDirectedRight returns true if the source is the xy-smallest endpoint.
func (cv XMonotoneCurve) IsDirectedRight() bool {
	return cv.reversed != cv.increasing
}

// IsVertical returns true if the backing curve is a vertical curve.
func (cv XMonotoneCurve) IsVertical() bool {
	return cv.vertical
}

// BBox returns a conservative bounding box.
func (cv XMonotoneCurve) BBox() r2.Rect {
	return cv.bbox
}

// Flip returns the curve with source and target swapped.
func (cv XMonotoneCurve) Flip() XMonotoneCurve {
	cv.reversed = !cv.reversed
	return cv
}

// approxParams returns float parameters of both ends.
func (cv XMonotoneCurve) approxParams() (float64, float64) {
	return approxParam(cv.lo), approxParam(cv.hi)
}

func approxParam(p Param) float64 {
	if t, ok := p.Exact(); ok {
		return t.Float64()
	}
	mid := new(big.Rat).Add(p.lower(), p.upper())
	f, _ := mid.Mul(mid, big.NewRat(1, 2)).Float64()
	return f
}

// ratParam returns a rational approximation of the parameter.
func ratParam(p Param) *big.Rat {
	if t, ok := p.Exact(); ok {
		if r, ok := t.Rat(); ok {
			return r
		}
		t = t.RefineTo(big.NewRat(1, 1<<30))
		lo, hi := t.Interval()
		return algebra.Between(algebra.NewRational(lo), algebra.NewRational(hi))
	}
	return algebra.Between(algebra.NewRational(p.lower()), algebra.NewRational(p.upper()))
}

// ControlPoints returns the approximate control points of the sub-curve from source to target.
func (cv XMonotoneCurve) ControlPoints() []r2.Point {
	a, b := ratParam(cv.lo), ratParam(cv.hi)
	if b.Cmp(a) <= 0 {
		x0, y0 := cv.pLo.Pos()
		x1, y1 := cv.pHi.Pos()
		return []r2.Point{{X: x0, Y: y0}, {X: x1, Y: y1}}
	}
	cps := algebra.SubdivideRange(cv.curve.cps, a, b)
	ps := make([]r2.Point, len(cps))
	for i, cp := range cps {
		ps[i].X, ps[i].Y = cp.Float64()
	}
	if cv.reversed {
		for i, j := 0, len(ps)-1; i < j; i, j = i+1, j-1 {
			ps[i], ps[j] = ps[j], ps[i]
		}
	}
	return ps
}

// Flatten returns n+1 approximate points along the sub-curve from source to target.
func (cv XMonotoneCurve) Flatten(n int) []r2.Point {
	if n < 1 {
		n = 1
	}
	t0, t1 := cv.approxParams()
	if cv.reversed {
		t0, t1 = t1, t0
	}
	ps := make([]r2.Point, n+1)
	for i := 0; i <= n; i++ {
		t := t0 + (t1-t0)*float64(i)/float64(n)
		ps[i].X, ps[i].Y = cv.curve.Pos(t)
	}
	ps[0].X, ps[0].Y = cv.Source().Pos()
	ps[n].X, ps[n].Y = cv.Target().Pos()
	return ps
}

func (cv XMonotoneCurve) String() string {
	return fmt.Sprintf("C%d[%v→%v]", cv.curve.id, cv.SourceParam(), cv.TargetParam())
}

////////////////////////////////////////////////////////////////

// ObjectKind is the kind of an Object.
type ObjectKind int

// see ObjectKind
const (
	PointObject ObjectKind = iota
	CurveObject
)

// Object is the result of curve decomposition, which is either an isolated point or an x-monotone curve.
type Object struct {
	Kind  ObjectKind
	Point *Point
	Curve XMonotoneCurve
}

func (obj Object) String() string {
	if obj.Kind == PointObject {
		return obj.Point.String()
	}
	return obj.Curve.String()
}

// IntersectionKind is the kind of an Intersection.
type IntersectionKind int

// see IntersectionKind
const (
	Crossing IntersectionKind = iota
	Overlap
)

// Intersection is an intersection of two x-monotone curves, which is either a point or an overlapping sub-curve.
type Intersection struct {
	Kind    IntersectionKind
	Point   *Point
	Overlap XMonotoneCurve
}

// key returns the xy-smallest point of the intersection.
func (ix Intersection) key() *Point {
	if ix.Kind == Overlap {
		return ix.Overlap.left()
	}
	return ix.Point
}

func (ix Intersection) String() string {
	if ix.Kind == Overlap {
		return "overlap " + ix.Overlap.String()
	}
	return "crossing " + ix.Point.String()
}
