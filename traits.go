package bezier

import (
	"errors"
	"fmt"
	"math/big"
	"slices"

	"github.com/tdewolff/bezier/algebra"
	"github.com/tdewolff/bezier/bounding"
)

// ErrPrecondition is returned when the arguments of a predicate or construction violate its precondition.
var ErrPrecondition = errors.New("precondition violated")

// Comparison is the result of a three-way comparison.
type Comparison int

// see Comparison
const (
	Smaller Comparison = -1
	Equal   Comparison = 0
	Larger  Comparison = 1
)

func (c Comparison) String() string {
	switch c {
	case Smaller:
		return "Smaller"
	case Equal:
		return "Equal"
	case Larger:
		return "Larger"
	}
	return fmt.Sprintf("Comparison(%d)", int(c))
}

// NumberTraits solves the polynomial systems of curves exactly.
type NumberTraits interface {
	// VerticalTangencies returns the sorted roots of dx/dt in (0,1).
	VerticalTangencies(x algebra.Polynomial) []algebra.Algebraic
	// Intersections returns the parameter pairs in [0,1]x[0,1] where both curves meet, or overlap is true when they share a component.
	Intersections(x1, y1, x2, y2 algebra.Polynomial) ([]algebra.ParamPair, bool)
	// SelfIntersections returns the parameter pairs s < t in [0,1] where the curve meets itself.
	SelfIntersections(x, y algebra.Polynomial) ([]algebra.ParamPair, bool)
}

// BoundingTraits bounds vertical tangencies approximately.
type BoundingTraits interface {
	VerticalTangencyPoints(cps []algebra.RatPoint, tmin, tmax *big.Rat) []bounding.Bound
}

// Traits are the geometric traits of Bezier curves for building arrangements. Copies of a Traits share the same cache and intersection map.
type Traits struct {
	nt    NumberTraits
	bt    BoundingTraits
	cache *Cache
	imap  *IntersectionMap
}

// Option sets an option of the traits.
type Option func(*Traits)

// WithNumberTraits sets the exact solver.
func WithNumberTraits(nt NumberTraits) Option {
	return func(tr *Traits) {
		tr.nt = nt
	}
}

// WithBoundingTraits sets the approximate tangency bounding.
func WithBoundingTraits(bt BoundingTraits) Option {
	return func(tr *Traits) {
		tr.bt = bt
	}
}

// New returns traits with an empty cache. By default the exact solver is algebra.Kernel and the bounding uses bounding.DefaultOptions.
func New(opts ...Option) Traits {
	tr := Traits{
		nt: algebra.Kernel{},
		bt: bounding.New(bounding.DefaultOptions),
	}
	for _, opt := range opts {
		opt(&tr)
	}
	tr.cache = NewCache(tr.nt)
	tr.imap = NewIntersectionMap()
	return tr
}

// Cache returns the shared tangency and intersection cache.
func (tr Traits) Cache() *Cache {
	return tr.cache
}

// IntersectionMap returns the shared map of intersection points.
func (tr Traits) IntersectionMap() *IntersectionMap {
	return tr.imap
}

// MakeXMonotone splits the curve at its vertical tangencies into x-monotone curves ordered by parameter. Tangencies are bounded approximately and only resolved when needed, unless the bounding cannot separate them in which case they are computed exactly. Vertical curves are split where they change vertical direction.
func (tr Traits) MakeXMonotone(c *Curve) []Object {
	zero, one := algebra.NewRational(algebra.Int(0)), algebra.NewRational(algebra.Int(1))
	params := []Param{ExactParam(zero)}
	points := []*Point{NewPoint(c, zero)}

	exact := c.IsVertical()
	if !exact {
		bounds := tr.bt.VerticalTangencyPoints(c.cps, algebra.Int(0), algebra.Int(1))
		sortBounds(bounds)
		for _, bound := range bounds {
			if !bound.CanRefine {
				exact = true
				break
			} else if bound.Type == bounding.Rational || bound.TMin.Cmp(bound.TMax) == 0 {
				t := algebra.NewRational(bound.TMin)
				if t.CmpRat(algebra.Int(0)) <= 0 || 0 <= t.CmpRat(algebra.Int(1)) || params[len(params)-1].identical(ExactParam(t)) {
					continue
				}
				params = append(params, ExactParam(t))
				points = append(points, NewPoint(c, t))
			} else {
				params = append(params, PendingParam(bound))
				points = append(points, newPendingPoint(c, bound))
			}
		}
	}
	if exact {
		params, points = params[:1], points[:1]
		for _, t := range tr.cache.VerticalTangencies(c.id, c.splitPolynomial()) {
			params = append(params, ExactParam(t))
			points = append(points, NewPoint(c, t))
		}
	}
	params = append(params, ExactParam(one))
	points = append(points, NewPoint(c, one))

	objs := make([]Object, 0, len(params)-1)
	for i := 1; i < len(params); i++ {
		cv := tr.newXMonotone(c, params[i-1], params[i], points[i-1], points[i])
		objs = append(objs, Object{Kind: CurveObject, Curve: cv})
	}
	return objs
}

// sortBounds orders tangency bounds by TMin, then by TMax, keeping the order of the bounding traits otherwise.
func sortBounds(bounds []bounding.Bound) {
	slices.SortStableFunc(bounds, func(a, b bounding.Bound) int {
		if cmp := a.TMin.Cmp(b.TMin); cmp != 0 {
			return cmp
		}
		return a.TMax.Cmp(b.TMax)
	})
}

////////////////////////////////////////////////////////////////

// cmpParam compares two parameters on curve c, resolving them only when their bounds overlap.
func (tr Traits) cmpParam(c *Curve, a, b Param) int {
	if cmp, ok := a.cmpFast(b); ok {
		return cmp
	}
	return algebra.Compare(tr.cache.resolve(c, a), tr.cache.resolve(c, b))
}

// inRange returns true if the parameter is in the closed parameter range of cv.
func (tr Traits) inRange(cv XMonotoneCurve, t Param) bool {
	return tr.cmpParam(cv.curve, cv.lo, t) <= 0 && tr.cmpParam(cv.curve, t, cv.hi) <= 0
}

// paramAtValue returns the parameter in the range of cv where the monotone coordinate, which is y for vertical curves, equals v.
func (tr Traits) paramAtValue(cv XMonotoneCurve, v algebra.Algebraic) (algebra.Algebraic, bool) {
	poly := cv.curve.splitPolynomial()
	q := v.Polynomial().Compose(poly)
	for _, t := range algebra.IsolateRoots(q, cv.lo.lower(), cv.hi.upper()) {
		if tr.inRange(cv, ExactParam(t)) && algebra.Compare(algebra.EvalAt(poly, t), v) == 0 {
			return t, true
		}
	}
	return algebra.Algebraic{}, false
}

// paramOf returns the parameter of p on cv.
func (tr Traits) paramOf(cv XMonotoneCurve, p *Point) (Param, error) {
	for _, t := range p.paramsOn(cv.curve) {
		if tr.inRange(cv, t) {
			return t, nil
		}
	}

	x, y := p.Coordinates(tr.cache)
	v, w, other := x, y, cv.curve.y
	if cv.vertical {
		v, w, other = y, x, cv.curve.x
	}
	t, ok := tr.paramAtValue(cv, v)
	if !ok {
		return Param{}, fmt.Errorf("%w: point %v outside range of %v", ErrPrecondition, p, cv)
	} else if algebra.Compare(algebra.EvalAt(other, t), w) != 0 {
		return Param{}, fmt.Errorf("%w: point %v not on %v", ErrPrecondition, p, cv)
	}
	return ExactParam(t), nil
}

////////////////////////////////////////////////////////////////

// CompareX compares the x-coordinates of two points.
func (tr Traits) CompareX(p, q *Point) Comparison {
	if p == q || p.sharesOriginator(q) {
		return Equal
	} else if p.bbox.X.Hi < q.bbox.X.Lo {
		return Smaller
	} else if q.bbox.X.Hi < p.bbox.X.Lo {
		return Larger
	}
	px, _ := p.Coordinates(tr.cache)
	qx, _ := q.Coordinates(tr.cache)
	return Comparison(algebra.Compare(px, qx))
}

func (tr Traits) compareY(p, q *Point) Comparison {
	if p == q || p.sharesOriginator(q) {
		return Equal
	} else if p.bbox.Y.Hi < q.bbox.Y.Lo {
		return Smaller
	} else if q.bbox.Y.Hi < p.bbox.Y.Lo {
		return Larger
	}
	_, py := p.Coordinates(tr.cache)
	_, qy := q.Coordinates(tr.cache)
	return Comparison(algebra.Compare(py, qy))
}

// CompareXY compares two points lexicographically by x and then by y.
func (tr Traits) CompareXY(p, q *Point) Comparison {
	if cmp := tr.CompareX(p, q); cmp != Equal {
		return cmp
	}
	return tr.compareY(p, q)
}

// EqualPoints returns true if both points are the same.
func (tr Traits) EqualPoints(p, q *Point) bool {
	return tr.CompareXY(p, q) == Equal
}

// CompareYAtX returns whether p is below, on, or above cv at the x-coordinate of p. The x-coordinate of p must be in the x-range of cv. For vertical curves it returns Equal when p is within its y-range.
func (tr Traits) CompareYAtX(p *Point, cv XMonotoneCurve) (Comparison, error) {
	left, right := cv.left(), cv.right()
	if tr.CompareX(p, left) == Smaller || tr.CompareX(p, right) == Larger {
		return Equal, fmt.Errorf("%w: point %v outside x-range of %v", ErrPrecondition, p, cv)
	}

	if cv.vertical {
		if tr.compareY(p, left) == Smaller {
			return Smaller, nil
		} else if tr.compareY(p, right) == Larger {
			return Larger, nil
		}
		return Equal, nil
	}

	for _, t := range p.paramsOn(cv.curve) {
		if tr.inRange(cv, t) {
			return Equal, nil
		}
	}
	if tr.CompareX(p, left) == Equal {
		return tr.compareY(p, left), nil
	} else if tr.CompareX(p, right) == Equal {
		return tr.compareY(p, right), nil
	} else if p.bbox.Y.Hi < cv.bbox.Y.Lo {
		return Smaller, nil
	} else if cv.bbox.Y.Hi < p.bbox.Y.Lo {
		return Larger, nil
	}

	x, y := p.Coordinates(tr.cache)
	t, ok := tr.paramAtValue(cv, x)
	if !ok {
		panic("bug: no parameter at x-coordinate inside x-range")
	}
	return Comparison(algebra.Compare(y, algebra.EvalAt(cv.curve.y, t))), nil
}

// CompareYAtXLeft compares the y-order of both curves immediately to the left of p, where both must be defined. It returns Equal if the curves overlap there.
func (tr Traits) CompareYAtXLeft(cv1, cv2 XMonotoneCurve, p *Point) (Comparison, error) {
	return tr.compareYAtXSide(cv1, cv2, p, false)
}

// CompareYAtXRight compares the y-order of both curves immediately to the right of p, where both must be defined. It returns Equal if the curves overlap there.
func (tr Traits) CompareYAtXRight(cv1, cv2 XMonotoneCurve, p *Point) (Comparison, error) {
	return tr.compareYAtXSide(cv1, cv2, p, true)
}

func (tr Traits) compareYAtXSide(cv1, cv2 XMonotoneCurve, p *Point, right bool) (Comparison, error) {
	side := "left"
	if right {
		side = "right"
	}
	for _, cv := range []XMonotoneCurve{cv1, cv2} {
		if cv.vertical {
			return Equal, fmt.Errorf("%w: %v is vertical", ErrPrecondition, cv)
		} else if right && (tr.CompareX(p, cv.left()) == Smaller || tr.CompareX(p, cv.right()) != Smaller) ||
			!right && (tr.CompareX(p, cv.right()) == Larger || tr.CompareX(p, cv.left()) != Larger) {
			return Equal, fmt.Errorf("%w: %v not defined %s of %v", ErrPrecondition, cv, side, p)
		}
	}

	// find the nearest event on that side, which is an endpoint or an intersection
	events := []*Point{}
	if right {
		events = append(events, cv1.right(), cv2.right())
	} else {
		events = append(events, cv1.left(), cv2.left())
	}
	for _, ix := range tr.Intersect(cv1, cv2) {
		if ix.Kind == Crossing {
			events = append(events, ix.Point)
		} else {
			events = append(events, ix.Overlap.left(), ix.Overlap.right())
		}
	}
	var nearest *Point
	for _, e := range events {
		if cmp := tr.CompareX(e, p); right && cmp != Larger || !right && cmp != Smaller {
			continue
		} else if nearest == nil || right && tr.CompareX(e, nearest) == Smaller || !right && tr.CompareX(e, nearest) == Larger {
			nearest = e
		}
	}

	px, _ := p.Coordinates(tr.cache)
	ex, _ := nearest.Coordinates(tr.cache)
	var r *big.Rat
	if right {
		r = algebra.Between(px, ex)
	} else {
		r = algebra.Between(ex, px)
	}
	x := algebra.NewRational(r)
	t1, ok1 := tr.paramAtValue(cv1, x)
	t2, ok2 := tr.paramAtValue(cv2, x)
	if !ok1 || !ok2 {
		panic("bug: no parameter at x-coordinate inside x-range")
	}
	y1 := algebra.EvalAt(cv1.curve.y, t1)
	y2 := algebra.EvalAt(cv2.curve.y, t2)
	return Comparison(algebra.Compare(y1, y2)), nil
}

// EqualCurves returns true if both curves are the same part of the same Bezier curve, regardless of direction.
func (tr Traits) EqualCurves(cv1, cv2 XMonotoneCurve) bool {
	if !cv1.curve.sameGeometry(cv2.curve) {
		return false
	}
	equal := func(a, b Param) bool {
		if a.identical(b) {
			return true
		} else if cv1.curve == cv2.curve {
			return tr.cmpParam(cv1.curve, a, b) == 0
		}
		return algebra.Compare(tr.cache.resolve(cv1.curve, a), tr.cache.resolve(cv2.curve, b)) == 0
	}
	return equal(cv1.lo, cv2.lo) && equal(cv1.hi, cv2.hi)
}

////////////////////////////////////////////////////////////////

// Split splits cv at p into a left and a right part, both with the direction of cv. The point p must be on cv and strictly between its endpoints.
func (tr Traits) Split(cv XMonotoneCurve, p *Point) (XMonotoneCurve, XMonotoneCurve, error) {
	if tr.CompareXY(p, cv.left()) != Larger || tr.CompareXY(p, cv.right()) != Smaller {
		return XMonotoneCurve{}, XMonotoneCurve{}, fmt.Errorf("%w: split point %v not interior to %v", ErrPrecondition, p, cv)
	}
	t, err := tr.paramOf(cv, p)
	if err != nil {
		return XMonotoneCurve{}, XMonotoneCurve{}, err
	}
	p = p.withOriginator(Originator{cv.curve, t})
	a := cv.withRange(cv.lo, t, cv.pLo, p)
	b := cv.withRange(t, cv.hi, p, cv.pHi)
	if cv.increasing {
		return a, b, nil
	}
	return b, a, nil
}

// AreMergeable returns true if both curves are adjacent parts of the same Bezier curve that together are x-monotone.
func (tr Traits) AreMergeable(cv1, cv2 XMonotoneCurve) bool {
	if cv1.curve != cv2.curve || cv1.increasing != cv2.increasing {
		return false
	}
	return tr.cmpParam(cv1.curve, cv1.hi, cv2.lo) == 0 || tr.cmpParam(cv1.curve, cv2.hi, cv1.lo) == 0
}

// Merge returns the union of two mergeable curves with the direction of cv1.
func (tr Traits) Merge(cv1, cv2 XMonotoneCurve) (XMonotoneCurve, error) {
	if !tr.AreMergeable(cv1, cv2) {
		return XMonotoneCurve{}, fmt.Errorf("%w: %v and %v are not mergeable", ErrPrecondition, cv1, cv2)
	} else if tr.cmpParam(cv1.curve, cv1.hi, cv2.lo) == 0 {
		return cv1.withRange(cv1.lo, cv2.hi, cv1.pLo, cv2.pHi), nil
	}
	return cv1.withRange(cv2.lo, cv1.hi, cv2.pLo, cv1.pHi), nil
}

// ConstructOpposite returns the curve with opposite direction.
func (tr Traits) ConstructOpposite(cv XMonotoneCurve) XMonotoneCurve {
	return cv.Flip()
}

// MinVertex returns the xy-smallest endpoint.
func (tr Traits) MinVertex(cv XMonotoneCurve) *Point {
	return cv.left()
}

// MaxVertex returns the xy-largest endpoint.
func (tr Traits) MaxVertex(cv XMonotoneCurve) *Point {
	return cv.right()
}

// IsVertical returns true for vertical curves.
func (tr Traits) IsVertical(cv XMonotoneCurve) bool {
	return cv.vertical
}

// CompareEndpointsXY returns Smaller if the curve is directed from left to right, and Larger otherwise.
func (tr Traits) CompareEndpointsXY(cv XMonotoneCurve) Comparison {
	if cv.IsDirectedRight() {
		return Smaller
	}
	return Larger
}
