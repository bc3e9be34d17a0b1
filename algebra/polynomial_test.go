package algebra

import (
	"fmt"
	"math/big"
	"testing"

	"github.com/tdewolff/test"
)

func TestPolynomialString(t *testing.T) {
	var tts = []struct {
		p        Polynomial
		expected string
	}{
		{IntPolynomial(), "0"},
		{IntPolynomial(0, 0), "0"},
		{IntPolynomial(5), "5"},
		{IntPolynomial(-2, 0, 1), "t^2 - 2"},
		{IntPolynomial(1, -1), "-t + 1"},
		{IntPolynomial(0, 3, 0, -2), "-2*t^3 + 3*t"},
		{NewPolynomial(Rat(1, 2), Int(1)), "t + 1/2"},
	}
	for i, tt := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			test.String(t, tt.p.String(), tt.expected)
		})
	}
}

func TestPolynomialArithmetic(t *testing.T) {
	p := IntPolynomial(1, -3, 0, 1) // t^3 - 3t + 1
	q := IntPolynomial(-1, 1)       // t - 1

	test.T(t, p.Degree(), 3)
	test.T(t, IntPolynomial().Degree(), -1)
	test.That(t, p.Derivative().Equals(IntPolynomial(-3, 0, 3)))
	test.That(t, p.Add(q).Equals(IntPolynomial(0, -2, 0, 1)))
	test.That(t, p.Sub(p).IsZero())
	test.That(t, q.Mul(q).Equals(IntPolynomial(1, -2, 1)))
	test.That(t, q.Scale(Rat(1, 2)).Equals(NewPolynomial(Rat(-1, 2), Rat(1, 2))))
	test.That(t, IntPolynomial(0, 0, 1).Compose(IntPolynomial(1, 1)).Equals(IntPolynomial(1, 2, 1)))
	test.That(t, IntPolynomial(2, 4).Monic().Equals(NewPolynomial(Rat(1, 2), Int(1))))

	quo, rem := IntPolynomial(-1, 0, 1).DivMod(q)
	test.That(t, quo.Equals(IntPolynomial(1, 1)))
	test.That(t, rem.IsZero())

	quo, rem = p.DivMod(q)
	test.That(t, quo.Mul(q).Add(rem).Equals(p))
	test.T(t, rem.Degree(), 0)
	test.That(t, rem.Coeff(0).Cmp(Int(-1)) == 0)
}

func TestPolynomialEval(t *testing.T) {
	p := IntPolynomial(1, -3, 0, 1)
	test.That(t, p.Eval(Int(2)).Cmp(Int(3)) == 0)
	test.That(t, p.Eval(Rat(1, 2)).Cmp(Rat(-3, 8)) == 0)
	test.T(t, p.Sign(Int(0)), 1)
	test.T(t, p.Sign(Int(1)), -1)
	test.Float(t, p.EvalFloat(2.0), 3.0)

	lo, hi := IntPolynomial(0, 0, 1).EvalInterval(Int(-1), Int(2))
	test.That(t, lo.Cmp(Int(0)) <= 0)
	test.That(t, Int(4).Cmp(hi) <= 0)

	lo, hi = p.EvalInterval(Rat(1, 2), Rat(1, 2))
	test.That(t, lo.Cmp(hi) == 0)
}

func TestGCD(t *testing.T) {
	var tts = []struct {
		p, q     Polynomial
		expected Polynomial
	}{
		{IntPolynomial(-1, 0, 1), IntPolynomial(2, -3, 1), IntPolynomial(-1, 1)},
		{IntPolynomial(-2, 0, 1), IntPolynomial(-3, 0, 1), IntPolynomial(1)},
		{IntPolynomial(-2, 0, 2), IntPolynomial(), IntPolynomial(-1, 0, 1)},
		{IntPolynomial(), IntPolynomial(), IntPolynomial()},
	}
	for i, tt := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			test.String(t, GCD(tt.p, tt.q).String(), tt.expected.String())
		})
	}
}

func TestSquareFree(t *testing.T) {
	// (t-1)^2 (t+2)
	p := IntPolynomial(-1, 1).Mul(IntPolynomial(-1, 1)).Mul(IntPolynomial(2, 1))
	test.String(t, p.SquareFree().String(), "t^2 + t - 2")
	test.String(t, IntPolynomial(4).SquareFree().String(), "1")
}

func TestBezierPolynomials(t *testing.T) {
	cps := []RatPoint{Pt(0, 1), Pt(0.5, -1), Pt(1, 1)}
	x, y := BezierPolynomials(cps)
	test.String(t, x.String(), "t")
	test.String(t, y.String(), "4*t^2 - 4*t + 1")

	cps = []RatPoint{Pt(0, 0), Pt(2, 1), Pt(-1, 1), Pt(1, 0)}
	x, y = BezierPolynomials(cps)
	test.String(t, x.String(), "10*t^3 - 15*t^2 + 6*t")
	test.String(t, y.String(), "-3*t^2 + 3*t")
}

func TestSubdivide(t *testing.T) {
	cps := []RatPoint{Pt(0, 0), Pt(2, 1), Pt(-1, 1), Pt(1, 0)}
	x, y := BezierPolynomials(cps)
	half := Rat(1, 2)

	left, right := Subdivide(cps, half)
	test.That(t, left[0].Equals(cps[0]))
	test.That(t, right[3].Equals(cps[3]))
	test.That(t, left[3].Equals(right[0]))
	test.That(t, left[3].X.Cmp(x.Eval(half)) == 0)
	test.That(t, left[3].Y.Cmp(y.Eval(half)) == 0)

	sub := SubdivideRange(cps, Rat(1, 4), Rat(3, 4))
	test.That(t, sub[0].X.Cmp(x.Eval(Rat(1, 4))) == 0)
	test.That(t, sub[3].X.Cmp(x.Eval(Rat(3, 4))) == 0)
	test.That(t, sub[3].Y.Cmp(y.Eval(Rat(3, 4))) == 0)

	sx, _ := BezierPolynomials(sub)
	// sx(u) = x(1/4 + u/2)
	test.That(t, sx.Equals(x.Compose(NewPolynomial(Rat(1, 4), Rat(1, 2)))))
}

func TestFloorCeilFloat(t *testing.T) {
	third := Rat(1, 3)
	lo, hi := FloorFloat(third), CeilFloat(third)
	test.That(t, lo < hi)
	test.That(t, new(big.Rat).SetFloat64(lo).Cmp(third) < 0)
	test.That(t, third.Cmp(new(big.Rat).SetFloat64(hi)) < 0)
	test.Float(t, FloorFloat(Rat(1, 2)), 0.5)
	test.Float(t, CeilFloat(Rat(1, 2)), 0.5)
}
