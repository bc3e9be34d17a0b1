// Package bounding finds approximate bounds on the vertical tangencies of Bezier curves by recursive subdivision of the rational control polygon.
package bounding

import (
	"fmt"
	"math/big"

	"github.com/golang/geo/r2"
	"github.com/tdewolff/bezier/algebra"
)

// PointType is the type of a tangency bound.
type PointType int

// see PointType
const (
	Rational PointType = iota
	Approximate
)

func (typ PointType) String() string {
	switch typ {
	case Rational:
		return "Rational"
	case Approximate:
		return "Approximate"
	}
	return fmt.Sprintf("PointType(%d)", int(typ))
}

// Bound bounds the parameter of a vertical tangency. For Rational bounds TMin == TMax is the exact parameter, otherwise the open interval (TMin,TMax) contains exactly one tangency unless CanRefine is false. BBox contains the curve over the parameter interval.
type Bound struct {
	TMin, TMax *big.Rat
	CanRefine  bool
	Type       PointType
	BBox       r2.Rect
}

func (b Bound) String() string {
	refine := ""
	if !b.CanRefine {
		refine = " final"
	}
	return fmt.Sprintf("%v[%v,%v]%s", b.Type, b.TMin.RatString(), b.TMax.RatString(), refine)
}

// Options are the subdivision parameters.
type Options struct {
	// MaxDepth is the maximum number of subdivisions, after which a bound that may contain several tangencies is reported as not refinable.
	MaxDepth int

	// Tolerance is the largest parameter width of an approximate bound.
	Tolerance *big.Rat
}

// DefaultOptions are the default subdivision parameters.
var DefaultOptions = Options{
	MaxDepth:  20,
	Tolerance: big.NewRat(1, 1024),
}

// Traits bounds vertical tangencies using the Bernstein form of dX/dt.
type Traits struct {
	Options
}

// New returns bounding traits with the given options. A missing or non-positive tolerance is replaced by the default.
func New(opts Options) *Traits {
	if opts.Tolerance == nil || opts.Tolerance.Sign() <= 0 {
		opts.Tolerance = DefaultOptions.Tolerance
	}
	return &Traits{opts}
}

// VerticalTangencyPoints returns the bounds on the parameters in (tmin,tmax) where dX/dt vanishes, in increasing order. Tangencies at tmin and tmax are not reported. A curve with constant X has no bounds.
func (traits *Traits) VerticalTangencyPoints(cps []algebra.RatPoint, tmin, tmax *big.Rat) []Bound {
	if len(cps) < 3 || tmax.Cmp(tmin) <= 0 {
		// lines have constant dX/dt
		return nil
	}
	sub := cps
	if tmin.Sign() != 0 || tmax.Cmp(big.NewRat(1, 1)) != 0 {
		sub = algebra.SubdivideRange(cps, tmin, tmax)
	}
	bounds := []Bound{}
	traits.bound(&bounds, sub, tmin, tmax, 0)
	return bounds
}

func (traits *Traits) bound(bounds *[]Bound, cps []algebra.RatPoint, tmin, tmax *big.Rat, depth int) {
	n := signVariations(cps)
	if n == 0 {
		return
	} else if n == 1 && new(big.Rat).Sub(tmax, tmin).Cmp(traits.Tolerance) <= 0 {
		*bounds = append(*bounds, Bound{
			TMin:      tmin,
			TMax:      tmax,
			CanRefine: true,
			Type:      Approximate,
			BBox:      algebra.ControlBox(cps),
		})
		return
	} else if 1 < n && traits.MaxDepth <= depth {
		*bounds = append(*bounds, Bound{
			TMin:      tmin,
			TMax:      tmax,
			CanRefine: false,
			Type:      Approximate,
			BBox:      algebra.ControlBox(cps),
		})
		return
	}

	half := big.NewRat(1, 2)
	tmid := new(big.Rat).Add(tmin, tmax)
	tmid.Mul(tmid, half)
	left, right := algebra.Subdivide(cps, half)
	traits.bound(bounds, left, tmin, tmid, depth+1)
	if right[1].X.Cmp(right[0].X) == 0 {
		// the hodograph vanishes exactly at the split point
		*bounds = append(*bounds, Bound{
			TMin:      tmid,
			TMax:      new(big.Rat).Set(tmid),
			CanRefine: true,
			Type:      Rational,
			BBox:      algebra.ControlBox(right[:1]),
		})
	}
	traits.bound(bounds, right, tmid, tmax, depth+1)
}

// signVariations returns the number of sign changes of the Bernstein coefficients of dX/dt, which bounds the number of its roots in the open interval.
func signVariations(cps []algebra.RatPoint) int {
	n, prev := 0, 0
	for i := 1; i < len(cps); i++ {
		s := new(big.Rat).Sub(cps[i].X, cps[i-1].X).Sign()
		if s == 0 {
			continue
		} else if prev != 0 && s != prev {
			n++
		}
		prev = s
	}
	return n
}
