package algebra

import (
	"fmt"
	"math"
	"math/big"
	"testing"

	"github.com/tdewolff/test"
)

func TestResultant(t *testing.T) {
	// f = s - t, g = s - t^2
	f := FromS(IntPolynomial(0, 1)).Sub(FromT(IntPolynomial(0, 1)))
	g := FromS(IntPolynomial(0, 1)).Sub(FromT(IntPolynomial(0, 0, 1)))
	r := Resultant(f, g)
	test.T(t, r.Degree(), 2)
	test.String(t, r.Monic().String(), "t^2 - t")

	// g does not depend on t
	g = FromS(IntPolynomial(-1, 2))
	r = Resultant(f, g)
	test.String(t, r.Monic().String(), "t - 1/2")

	// common factor
	test.That(t, Resultant(f, f).IsZero())
}

func TestDividedDifference(t *testing.T) {
	// (s^3 - t^3)/(s - t) = s^2 + st + t^2
	d := DividedDifference(IntPolynomial(0, 0, 0, 1))
	test.T(t, d.DegreeS(), 2)
	test.T(t, d.DegreeT(), 2)
	test.That(t, d.Eval(Int(2), Int(3)).Cmp(Int(19)) == 0)
	test.That(t, d.Swap().Eval(Int(3), Int(2)).Cmp(Int(19)) == 0)
	test.T(t, DividedDifference(IntPolynomial(4)).DegreeS(), -1)
}

func TestInterpolate(t *testing.T) {
	p := IntPolynomial(3, -1, 0, 2)
	xs := []*big.Rat{Int(0), Int(1), Int(2), Int(3)}
	ys := []*big.Rat{}
	for _, x := range xs {
		ys = append(ys, p.Eval(x))
	}
	test.That(t, interpolate(xs, ys).Equals(p))
}

func TestKernelVerticalTangencies(t *testing.T) {
	var tts = []struct {
		cps   []RatPoint
		roots []float64
	}{
		{[]RatPoint{Pt(0, 0), Pt(1, 1)}, nil},
		{[]RatPoint{Pt(0, 0), Pt(1, 1), Pt(0, 2)}, []float64{0.5}},
		{[]RatPoint{Pt(0, 0), Pt(3, 1), Pt(-1, 2), Pt(0, 3)}, []float64{(7 - math.Sqrt(13)) / 12, (7 + math.Sqrt(13)) / 12}},
		{[]RatPoint{Pt(0, 0), Pt(0, 1), Pt(0, 2)}, nil},
		{[]RatPoint{Pt(0, 0), Pt(1, 1), Pt(2, 2), Pt(0, 0)}, []float64{1.0 / math.Sqrt(3.0)}},
	}
	for i, tt := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			x, _ := BezierPolynomials(tt.cps)
			roots := Kernel{}.VerticalTangencies(x)
			test.T(t, len(roots), len(tt.roots))
			for j, root := range roots {
				test.Float(t, root.Float64(), tt.roots[j])
			}
		})
	}
}

func TestKernelIntersections(t *testing.T) {
	var tts = []struct {
		cps1, cps2 []RatPoint
		params     [][2]float64
		overlap    bool
	}{
		{[]RatPoint{Pt(0, 0), Pt(1, 1)}, []RatPoint{Pt(0, 1), Pt(0.5, -1), Pt(1, 1)}, [][2]float64{{0.25, 0.25}, {1.0, 1.0}}, false},
		{[]RatPoint{Pt(0, 0), Pt(1, 1)}, []RatPoint{Pt(0, 1), Pt(1, 0)}, [][2]float64{{0.5, 0.5}}, false},
		{[]RatPoint{Pt(0, 0), Pt(1, 1)}, []RatPoint{Pt(0, 1), Pt(1, 2)}, nil, false},
		{[]RatPoint{Pt(0, 0), Pt(1, 0)}, []RatPoint{Pt(2, 0), Pt(3, 1)}, nil, false},
		{[]RatPoint{Pt(0, 0), Pt(2, 0), Pt(0, 2)}, []RatPoint{Pt(0, 1), Pt(2, 1)}, [][2]float64{{math.Sqrt(0.5), math.Sqrt2 - 1.0}}, false},
		{[]RatPoint{Pt(0, 0), Pt(1, 1)}, []RatPoint{Pt(0.5, 0.5), Pt(2, 2)}, nil, true},
		{[]RatPoint{Pt(0, 0), Pt(0, 1)}, []RatPoint{Pt(0, 0.5), Pt(0, 2)}, nil, true},
	}
	for i, tt := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			x1, y1 := BezierPolynomials(tt.cps1)
			x2, y2 := BezierPolynomials(tt.cps2)
			pairs, overlap := Kernel{}.Intersections(x1, y1, x2, y2)
			test.T(t, overlap, tt.overlap)
			test.T(t, len(pairs), len(tt.params))
			for j, pair := range pairs {
				test.Float(t, pair.S.Float64(), tt.params[j][0])
				test.Float(t, pair.T.Float64(), tt.params[j][1])
			}
		})
	}
}

func TestKernelSelfIntersections(t *testing.T) {
	// symmetric loop, crossing at x = 1/2 where 10t^2 - 10t + 1 = 0
	x, y := BezierPolynomials([]RatPoint{Pt(0, 0), Pt(2, 1), Pt(-1, 1), Pt(1, 0)})
	pairs, overlap := Kernel{}.SelfIntersections(x, y)
	test.That(t, !overlap)
	test.T(t, len(pairs), 1)
	test.Float(t, pairs[0].S.Float64(), 0.5-math.Sqrt(60)/20)
	test.Float(t, pairs[0].T.Float64(), 0.5+math.Sqrt(60)/20)
	test.Float(t, EvalAt(x, pairs[0].S).Float64(), 0.5)

	// simple arc
	x, y = BezierPolynomials([]RatPoint{Pt(0, 0), Pt(1, 1), Pt(2, 0)})
	pairs, overlap = Kernel{}.SelfIntersections(x, y)
	test.That(t, !overlap)
	test.T(t, len(pairs), 0)

	// vertical line
	x, y = BezierPolynomials([]RatPoint{Pt(0, 0), Pt(0, 1)})
	_, overlap = Kernel{}.SelfIntersections(x, y)
	test.That(t, overlap)
}
