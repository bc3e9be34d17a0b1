// Package bezier provides the geometric traits to build planar arrangements of Bezier curves with rational control points. Curves are decomposed into x-monotone sub-curves using approximate vertical tangency bounds that are only resolved exactly when a predicate needs it, and all exact tangencies and intersections are memoized per pair of curves.
package bezier

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync/atomic"

	"github.com/golang/geo/r1"
	"github.com/golang/geo/r2"
	"github.com/tdewolff/bezier/algebra"
)

// ErrDegenerateCurve is returned for curves with fewer than two control points or with all control points coinciding.
var ErrDegenerateCurve = errors.New("degenerate curve")

var curveIDs atomic.Int64

// Curve is a Bezier curve with rational control points over the parameter range [0,1]. It is immutable and identified by a unique ID.
type Curve struct {
	id   int64
	cps  []algebra.RatPoint
	x, y algebra.Polynomial
	bbox r2.Rect
}

// NewCurve returns a Bezier curve through the given control points. The degree of the curve is one less than the number of control points.
func NewCurve(cps ...algebra.RatPoint) (*Curve, error) {
	if len(cps) < 2 {
		return nil, fmt.Errorf("%w: %d control points", ErrDegenerateCurve, len(cps))
	}
	coincide := true
	for _, cp := range cps[1:] {
		if !cp.Equals(cps[0]) {
			coincide = false
			break
		}
	}
	if coincide {
		return nil, fmt.Errorf("%w: control points coincide", ErrDegenerateCurve)
	}

	c := &Curve{
		id:  curveIDs.Add(1),
		cps: make([]algebra.RatPoint, len(cps)),
	}
	for i, cp := range cps {
		c.cps[i] = algebra.RatPoint{X: new(big.Rat).Set(cp.X), Y: new(big.Rat).Set(cp.Y)}
	}
	c.x, c.y = algebra.BezierPolynomials(c.cps)
	c.bbox = algebra.ControlBox(c.cps)
	return c, nil
}

// ParseCurve returns a Bezier curve through the control points given as x,y coordinate pairs.
func ParseCurve(coords ...float64) (*Curve, error) {
	if len(coords)%2 != 0 {
		return nil, fmt.Errorf("%w: odd number of coordinates", ErrDegenerateCurve)
	}
	cps := make([]algebra.RatPoint, 0, len(coords)/2)
	for i := 0; i < len(coords); i += 2 {
		cps = append(cps, algebra.Pt(coords[i], coords[i+1]))
	}
	return NewCurve(cps...)
}

// MustParseCurve is like ParseCurve but panics on error.
func MustParseCurve(coords ...float64) *Curve {
	c, err := ParseCurve(coords...)
	if err != nil {
		panic(err)
	}
	return c
}

// ID returns the unique identifier of the curve.
func (c *Curve) ID() int64 {
	return c.id
}

// ControlPoints returns the control points. They must not be modified.
func (c *Curve) ControlPoints() []algebra.RatPoint {
	return c.cps
}

// Degree returns the degree of the Bezier curve.
func (c *Curve) Degree() int {
	return len(c.cps) - 1
}

// XPolynomial returns X(t) in the power basis.
func (c *Curve) XPolynomial() algebra.Polynomial {
	return c.x
}

// YPolynomial returns Y(t) in the power basis.
func (c *Curve) YPolynomial() algebra.Polynomial {
	return c.y
}

// BBox returns the bounding box of the control points.
func (c *Curve) BBox() r2.Rect {
	return c.bbox
}

// IsVertical returns true if X(t) is constant.
func (c *Curve) IsVertical() bool {
	return c.x.Degree() <= 0
}

// splitPolynomial is the polynomial whose critical points split the curve into monotone pieces, which is Y(t) for vertical curves.
func (c *Curve) splitPolynomial() algebra.Polynomial {
	if c.IsVertical() {
		return c.y
	}
	return c.x
}

// PointAt returns the exact coordinates at t.
func (c *Curve) PointAt(t algebra.Algebraic) (algebra.Algebraic, algebra.Algebraic) {
	return algebra.EvalAt(c.x, t), algebra.EvalAt(c.y, t)
}

// Pos returns the approximate coordinates at t.
func (c *Curve) Pos(t float64) (float64, float64) {
	return c.x.EvalFloat(t), c.y.EvalFloat(t)
}

// sameGeometry returns true if both curves have identical control points.
func (c *Curve) sameGeometry(o *Curve) bool {
	if c == o {
		return true
	} else if len(c.cps) != len(o.cps) {
		return false
	}
	for i := range c.cps {
		if !c.cps[i].Equals(o.cps[i]) {
			return false
		}
	}
	return true
}

func (c *Curve) String() string {
	sb := strings.Builder{}
	fmt.Fprintf(&sb, "C%d[", c.id)
	for i, cp := range c.cps {
		if i != 0 {
			sb.WriteString(" ")
		}
		x, y := cp.Float64()
		fmt.Fprintf(&sb, "%g,%g", x, y)
	}
	sb.WriteString("]")
	return sb.String()
}

// intervalBox returns a bounding box of the curve over parameters in [lo,hi].
func (c *Curve) intervalBox(lo, hi *big.Rat) r2.Rect {
	xlo, xhi := c.x.EvalInterval(lo, hi)
	ylo, yhi := c.y.EvalInterval(lo, hi)
	return r2.Rect{
		X: r1.Interval{Lo: algebra.FloorFloat(xlo), Hi: algebra.CeilFloat(xhi)},
		Y: r1.Interval{Lo: algebra.FloorFloat(ylo), Hi: algebra.CeilFloat(yhi)},
	}
}
