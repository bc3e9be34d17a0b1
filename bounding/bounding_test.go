package bounding

import (
	"fmt"
	"math"
	"math/big"
	"testing"

	"github.com/tdewolff/bezier/algebra"
	"github.com/tdewolff/test"
)

func pts(coords ...float64) []algebra.RatPoint {
	cps := []algebra.RatPoint{}
	for i := 0; i+1 < len(coords); i += 2 {
		cps = append(cps, algebra.Pt(coords[i], coords[i+1]))
	}
	return cps
}

func ratFloat(r *big.Rat) float64 {
	f, _ := r.Float64()
	return f
}

func TestVerticalTangencyPoints(t *testing.T) {
	var tts = []struct {
		cps   []algebra.RatPoint
		roots []float64
		types []PointType
	}{
		{pts(0, 0, 1, 1), nil, nil},
		{pts(0, 0, 1, 1, 2, 0), nil, nil},
		{pts(0, 0, 1, 1, 0, 2), []float64{0.5}, []PointType{Rational}},
		{pts(0, 0, 3, 1, -1, 2, 0, 3), []float64{(7 - math.Sqrt(13)) / 12, (7 + math.Sqrt(13)) / 12}, []PointType{Approximate, Approximate}},
		{pts(0, 0, 2, 1, -2, 2, 0, 3), []float64{0.5 - math.Sqrt(1.0/12.0), 0.5 + math.Sqrt(1.0/12.0)}, []PointType{Approximate, Approximate}},
	}
	traits := New(DefaultOptions)
	for i, tt := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			bounds := traits.VerticalTangencyPoints(tt.cps, algebra.Int(0), algebra.Int(1))
			test.T(t, len(bounds), len(tt.roots))
			for j, bound := range bounds {
				test.T(t, bound.Type, tt.types[j])
				test.That(t, bound.CanRefine)
				test.That(t, ratFloat(bound.TMin) <= tt.roots[j] && tt.roots[j] <= ratFloat(bound.TMax), "root not in bound", bound)
				if bound.Type == Approximate {
					test.That(t, new(big.Rat).Sub(bound.TMax, bound.TMin).Cmp(DefaultOptions.Tolerance) <= 0)
				}
			}
		})
	}
}

func TestVerticalTangencyPointsOrder(t *testing.T) {
	traits := New(DefaultOptions)
	bounds := traits.VerticalTangencyPoints(pts(0, 0, 3, 1, -1, 2, 0, 3), algebra.Int(0), algebra.Int(1))
	for j := 1; j < len(bounds); j++ {
		test.That(t, bounds[j-1].TMax.Cmp(bounds[j].TMin) <= 0)
	}
}

func TestVerticalTangencyPointsRange(t *testing.T) {
	traits := New(DefaultOptions)
	cps := pts(0, 0, 3, 1, -1, 2, 0, 3)

	bounds := traits.VerticalTangencyPoints(cps, algebra.Int(0), algebra.Rat(1, 2))
	test.T(t, len(bounds), 1)
	test.That(t, bounds[0].TMax.Cmp(algebra.Rat(1, 2)) <= 0)

	bounds = traits.VerticalTangencyPoints(cps, algebra.Rat(1, 2), algebra.Int(1))
	test.T(t, len(bounds), 1)
	test.That(t, algebra.Rat(1, 2).Cmp(bounds[0].TMin) <= 0)
}

func TestVerticalTangencyPointsDoubleRoot(t *testing.T) {
	// dX/dt = (3t-1)^2
	cps := []algebra.RatPoint{
		{X: algebra.Int(0), Y: algebra.Int(0)},
		{X: algebra.Rat(1, 3), Y: algebra.Int(1)},
		{X: algebra.Rat(-1, 3), Y: algebra.Int(2)},
		{X: algebra.Int(1), Y: algebra.Int(3)},
	}
	traits := New(Options{MaxDepth: 8})
	bounds := traits.VerticalTangencyPoints(cps, algebra.Int(0), algebra.Int(1))
	test.T(t, len(bounds), 1)
	test.That(t, !bounds[0].CanRefine)
	test.That(t, ratFloat(bounds[0].TMin) < 1.0/3.0 && 1.0/3.0 < ratFloat(bounds[0].TMax))
}

func TestBoundBBox(t *testing.T) {
	traits := New(DefaultOptions)
	bounds := traits.VerticalTangencyPoints(pts(0, 0, 1, 1, 0, 2), algebra.Int(0), algebra.Int(1))
	test.T(t, len(bounds), 1)
	test.Float(t, bounds[0].BBox.X.Lo, 0.5)
	test.Float(t, bounds[0].BBox.Y.Lo, 1.0)
	test.T(t, bounds[0].String(), "Rational[1/2,1/2]")

	bounds = traits.VerticalTangencyPoints(pts(0, 0, 3, 1, -1, 2, 0, 3), algebra.Int(0), algebra.Int(1))
	for _, bound := range bounds {
		x0, y0 := 0.0, 0.0
		for _, r := range []*big.Rat{bound.TMin, bound.TMax} {
			tf := ratFloat(r)
			x0 = 9*tf*(1-tf)*(1-tf) - 3*tf*tf*(1-tf)
			y0 = 3 * tf
			test.That(t, bound.BBox.X.Lo <= x0+1e-9 && x0-1e-9 <= bound.BBox.X.Hi, "x outside bbox")
			test.That(t, bound.BBox.Y.Lo <= y0+1e-9 && y0-1e-9 <= bound.BBox.Y.Hi, "y outside bbox")
		}
	}
}

func TestNonPositiveTolerance(t *testing.T) {
	for _, tol := range []*big.Rat{nil, big.NewRat(0, 1), big.NewRat(-1, 8)} {
		traits := New(Options{MaxDepth: 20, Tolerance: tol})
		test.That(t, traits.Tolerance.Cmp(DefaultOptions.Tolerance) == 0, tol)

		// irrational tangencies terminate at the default width
		bounds := traits.VerticalTangencyPoints(pts(0, 0, 3, 1, -1, 2, 0, 3), algebra.Int(0), algebra.Int(1))
		test.T(t, len(bounds), 2)
	}
}
