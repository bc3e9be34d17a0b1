package bezier

import (
	"fmt"
	"math/big"
	"strings"
	"sync/atomic"

	"github.com/golang/geo/r1"
	"github.com/golang/geo/r2"
	"github.com/tdewolff/bezier/algebra"
	"github.com/tdewolff/bezier/bounding"
)

// Param is a parameter on a curve. It is either exact or pending, in which case it is the unique vertical tangency inside the open interval of a tangency bound.
type Param struct {
	t     algebra.Algebraic
	bound *bounding.Bound
}

// ExactParam returns an exact parameter.
func ExactParam(t algebra.Algebraic) Param {
	return Param{t: t}
}

// PendingParam returns a parameter that is resolved later from the tangency bound.
func PendingParam(bound bounding.Bound) Param {
	return Param{bound: &bound}
}

// IsPending returns true if the parameter is not known exactly.
func (p Param) IsPending() bool {
	return p.bound != nil
}

// Exact returns the exact parameter.
func (p Param) Exact() (algebra.Algebraic, bool) {
	if p.bound != nil {
		return algebra.Algebraic{}, false
	}
	return p.t, true
}

// Bound returns the tangency bound of a pending parameter.
func (p Param) Bound() (bounding.Bound, bool) {
	if p.bound == nil {
		return bounding.Bound{}, false
	}
	return *p.bound, true
}

// lower returns a rational number smaller than or equal to the parameter.
func (p Param) lower() *big.Rat {
	if p.bound != nil {
		return p.bound.TMin
	}
	lo, _ := p.t.Interval()
	return lo
}

// upper returns a rational number larger than or equal to the parameter.
func (p Param) upper() *big.Rat {
	if p.bound != nil {
		return p.bound.TMax
	}
	_, hi := p.t.Interval()
	return hi
}

// strict returns true if the parameter lies strictly between lower and upper.
func (p Param) strict() bool {
	return p.bound != nil || !p.t.IsRational()
}

// identical returns true if both parameters are known to be equal without resolving them.
func (p Param) identical(q Param) bool {
	if p.bound != nil && q.bound != nil {
		return p.bound.TMin.Cmp(q.bound.TMin) == 0 && p.bound.TMax.Cmp(q.bound.TMax) == 0
	} else if p.bound == nil && q.bound == nil {
		return algebra.Compare(p.t, q.t) == 0
	}
	return false
}

// cmpFast compares the parameters using their rational bounds only, ok is false if that is not enough.
func (p Param) cmpFast(q Param) (int, bool) {
	if p.identical(q) {
		return 0, true
	} else if p.bound == nil && q.bound == nil {
		return algebra.Compare(p.t, q.t), true
	}
	// pending parameters lie strictly inside their bound
	if c := p.upper().Cmp(q.lower()); c < 0 || c == 0 && (p.bound != nil || q.bound != nil) {
		return -1, true
	} else if c := q.upper().Cmp(p.lower()); c < 0 || c == 0 && (p.bound != nil || q.bound != nil) {
		return 1, true
	}
	return 0, false
}

func (p Param) String() string {
	if p.bound != nil {
		return fmt.Sprintf("~(%v,%v)", p.bound.TMin.RatString(), p.bound.TMax.RatString())
	}
	return p.t.String()
}

// Originator is a curve and a parameter on it that generates a point.
type Originator struct {
	Curve *Curve
	Param Param
}

func (o Originator) String() string {
	return fmt.Sprintf("C%d@%v", o.Curve.id, o.Param)
}

type coords struct {
	x, y algebra.Algebraic
}

// Point is a point on one or more curves. It is given by its originators, and is pending when any originator has a pending parameter. Its exact coordinates are computed lazily and memoized.
type Point struct {
	orig []Originator
	bbox r2.Rect

	resolved atomic.Pointer[Point]
	coords   atomic.Pointer[coords]
}

// NewPoint returns the point on curve c at the exact parameter t.
func NewPoint(c *Curve, t algebra.Algebraic) *Point {
	return &Point{
		orig: []Originator{{c, ExactParam(t)}},
		bbox: paramBox(c, t),
	}
}

// NewPointXY returns a point with exact coordinates that does not lie on any curve.
func NewPointXY(x, y *big.Rat) *Point {
	p := &Point{
		bbox: r2.Rect{
			X: r1.Interval{Lo: algebra.FloorFloat(x), Hi: algebra.CeilFloat(x)},
			Y: r1.Interval{Lo: algebra.FloorFloat(y), Hi: algebra.CeilFloat(y)},
		},
	}
	p.coords.Store(&coords{algebra.NewRational(x), algebra.NewRational(y)})
	return p
}

// newPendingPoint returns the point at the vertical tangency inside the bound.
func newPendingPoint(c *Curve, bound bounding.Bound) *Point {
	return &Point{
		orig: []Originator{{c, PendingParam(bound)}},
		bbox: bound.BBox,
	}
}

// paramBox returns a bounding box of the curve at t.
func paramBox(c *Curve, t algebra.Algebraic) r2.Rect {
	if r, ok := t.Rat(); ok {
		return c.intervalBox(r, r)
	}
	t = t.RefineTo(big.NewRat(1, 1<<20))
	lo, hi := t.Interval()
	return c.intervalBox(lo, hi)
}

// Originators returns the curves and parameters that generate the point.
func (p *Point) Originators() []Originator {
	return p.orig
}

// BBox returns a conservative bounding box of the point.
func (p *Point) BBox() r2.Rect {
	return p.bbox
}

// IsPending returns true if any originator has a pending parameter.
func (p *Point) IsPending() bool {
	for _, o := range p.orig {
		if o.Param.IsPending() {
			return true
		}
	}
	return false
}

// Resolve returns the point with all pending parameters replaced by the exact tangencies from the cache.
func (p *Point) Resolve(cache *Cache) *Point {
	if !p.IsPending() {
		return p
	} else if q := p.resolved.Load(); q != nil {
		return q
	}
	q := &Point{
		orig: make([]Originator, len(p.orig)),
		bbox: p.bbox,
	}
	for i, o := range p.orig {
		q.orig[i] = Originator{o.Curve, ExactParam(cache.resolve(o.Curve, o.Param))}
	}
	if c := p.coords.Load(); c != nil {
		q.coords.Store(c)
	}
	p.resolved.CompareAndSwap(nil, q)
	return p.resolved.Load()
}

// Coordinates returns the exact coordinates of the point.
func (p *Point) Coordinates(cache *Cache) (algebra.Algebraic, algebra.Algebraic) {
	if c := p.coords.Load(); c != nil {
		return c.x, c.y
	}
	o := p.Resolve(cache).orig[0]
	x, y := o.Curve.PointAt(o.Param.t)
	p.coords.CompareAndSwap(nil, &coords{x, y})
	c := p.coords.Load()
	return c.x, c.y
}

// Pos returns the approximate coordinates of the point.
func (p *Point) Pos() (float64, float64) {
	if c := p.coords.Load(); c != nil {
		return c.x.Float64(), c.y.Float64()
	}
	o := p.orig[0]
	var t float64
	if bound, ok := o.Param.Bound(); ok {
		mid := new(big.Rat).Add(bound.TMin, bound.TMax)
		t, _ = mid.Mul(mid, big.NewRat(1, 2)).Float64()
	} else {
		t = o.Param.t.Float64()
	}
	return o.Curve.Pos(t)
}

// paramsOn returns the parameters of the point on curve c. A point can pass several times through the same curve.
func (p *Point) paramsOn(c *Curve) []Param {
	var params []Param
	for _, o := range p.orig {
		if o.Curve == c {
			params = append(params, o.Param)
		}
	}
	return params
}

// sharesOriginator returns true if both points are generated by the same parameter on the same curve, which proves they are equal. A false result proves nothing.
func (p *Point) sharesOriginator(q *Point) bool {
	for _, o := range p.orig {
		for _, o2 := range q.orig {
			if o.Curve == o2.Curve && o.Param.identical(o2.Param) {
				return true
			}
		}
	}
	return false
}

// withOriginator returns the point with an additional originator, or the point itself if it already has it.
func (p *Point) withOriginator(o Originator) *Point {
	for _, o2 := range p.orig {
		if o.Curve == o2.Curve && o.Param.identical(o2.Param) {
			return p
		}
	}
	q := &Point{
		orig: append(append([]Originator{}, p.orig...), o),
		bbox: p.bbox,
	}
	if c := p.coords.Load(); c != nil {
		q.coords.Store(c)
	}
	return q
}

func (p *Point) String() string {
	sb := strings.Builder{}
	x, y := p.Pos()
	fmt.Fprintf(&sb, "(%g,%g", x, y)
	for _, o := range p.orig {
		fmt.Fprintf(&sb, " %v", o)
	}
	sb.WriteString(")")
	return sb.String()
}
