// Package algebra implements the exact arithmetic used by the Bezier traits: polynomials with rational coefficients, real root isolation with Sturm sequences, real algebraic numbers and resultants of bivariate polynomials.
package algebra

import (
	"fmt"
	"math"
	"math/big"

	"github.com/golang/geo/r1"
	"github.com/golang/geo/r2"
)

// Rat returns the rational number n/d.
func Rat(n, d int64) *big.Rat {
	if d == 0 {
		panic("division by zero")
	}
	return big.NewRat(n, d)
}

// Int returns the rational number n.
func Int(n int64) *big.Rat {
	return new(big.Rat).SetInt64(n)
}

// Float returns the exact rational value of f, which must be finite.
func Float(f float64) *big.Rat {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		panic("non-finite float")
	}
	return new(big.Rat).SetFloat64(f)
}

// FloorFloat returns the largest float64 that is smaller than or equal to r.
func FloorFloat(r *big.Rat) float64 {
	f, exact := r.Float64()
	if !exact && !math.IsInf(f, 0) && new(big.Rat).SetFloat64(f).Cmp(r) > 0 {
		f = math.Nextafter(f, math.Inf(-1))
	}
	return f
}

// CeilFloat returns the smallest float64 that is larger than or equal to r.
func CeilFloat(r *big.Rat) float64 {
	f, exact := r.Float64()
	if !exact && !math.IsInf(f, 0) && new(big.Rat).SetFloat64(f).Cmp(r) < 0 {
		f = math.Nextafter(f, math.Inf(1))
	}
	return f
}

func ratMin(a, b *big.Rat) *big.Rat {
	if a.Cmp(b) <= 0 {
		return a
	}
	return b
}

func ratMax(a, b *big.Rat) *big.Rat {
	if a.Cmp(b) >= 0 {
		return a
	}
	return b
}

func midpoint(a, b *big.Rat) *big.Rat {
	m := new(big.Rat).Add(a, b)
	return m.Quo(m, big.NewRat(2, 1))
}

func copyRat(r *big.Rat) *big.Rat {
	return new(big.Rat).Set(r)
}

////////////////////////////////////////////////////////////////

// RatPoint is a point with exact rational coordinates, used for control points.
type RatPoint struct {
	X, Y *big.Rat
}

// Pt returns the rational point with the exact values of x and y.
func Pt(x, y float64) RatPoint {
	return RatPoint{Float(x), Float(y)}
}

// Equals returns true if both coordinates are exactly equal.
func (p RatPoint) Equals(q RatPoint) bool {
	return p.X.Cmp(q.X) == 0 && p.Y.Cmp(q.Y) == 0
}

// Interpolate returns the point (1-t)*P + t*Q.
func (p RatPoint) Interpolate(q RatPoint, t *big.Rat) RatPoint {
	return RatPoint{lerp(p.X, q.X, t), lerp(p.Y, q.Y, t)}
}

// Float64 returns the nearest float64 coordinates.
func (p RatPoint) Float64() (float64, float64) {
	x, _ := p.X.Float64()
	y, _ := p.Y.Float64()
	return x, y
}

func (p RatPoint) String() string {
	return fmt.Sprintf("(%v,%v)", p.X.RatString(), p.Y.RatString())
}

// ControlBox returns the bounding box of the control points rounded outwards to float64. It contains the Bezier curve.
func ControlBox(cps []RatPoint) r2.Rect {
	xmin, xmax := cps[0].X, cps[0].X
	ymin, ymax := cps[0].Y, cps[0].Y
	for _, cp := range cps[1:] {
		if cp.X.Cmp(xmin) < 0 {
			xmin = cp.X
		} else if xmax.Cmp(cp.X) < 0 {
			xmax = cp.X
		}
		if cp.Y.Cmp(ymin) < 0 {
			ymin = cp.Y
		} else if ymax.Cmp(cp.Y) < 0 {
			ymax = cp.Y
		}
	}
	return r2.Rect{
		X: r1.Interval{Lo: FloorFloat(xmin), Hi: CeilFloat(xmax)},
		Y: r1.Interval{Lo: FloorFloat(ymin), Hi: CeilFloat(ymax)},
	}
}

func lerp(a, b, t *big.Rat) *big.Rat {
	d := new(big.Rat).Sub(b, a)
	d.Mul(d, t)
	return d.Add(d, a)
}

// Subdivide splits the Bezier curve with control points cps at parameter t using de Casteljau's algorithm, and returns the control points of both halves.
func Subdivide(cps []RatPoint, t *big.Rat) ([]RatPoint, []RatPoint) {
	n := len(cps)
	left := make([]RatPoint, n)
	right := make([]RatPoint, n)
	tmp := make([]RatPoint, n)
	copy(tmp, cps)
	for k := 0; k < n; k++ {
		left[k] = tmp[0]
		right[n-1-k] = tmp[n-1-k]
		for i := 0; i < n-1-k; i++ {
			tmp[i] = tmp[i].Interpolate(tmp[i+1], t)
		}
	}
	return left, right
}

// SubdivideRange returns the control points of the Bezier curve restricted to the parameter range [t0,t1], with 0 <= t0 < t1 <= 1.
func SubdivideRange(cps []RatPoint, t0, t1 *big.Rat) []RatPoint {
	if t0.Sign() < 0 || t0.Cmp(t1) >= 0 || 0 < t1.Cmp(Int(1)) {
		panic("bug: invalid parameter range")
	}
	_, right := Subdivide(cps, t0)
	// reparametrize t1 into the right half [t0,1]
	s := new(big.Rat).Sub(t1, t0)
	s.Quo(s, new(big.Rat).Sub(Int(1), t0))
	left, _ := Subdivide(right, s)
	return left
}

// BezierPolynomials returns the polynomials X(t) and Y(t) in the power basis for the Bezier curve with control points cps.
func BezierPolynomials(cps []RatPoint) (Polynomial, Polynomial) {
	n := len(cps) - 1
	x := make(Polynomial, n+1)
	y := make(Polynomial, n+1)
	for k := 0; k <= n; k++ {
		// coefficient of t^k is C(n,k) * sum_{i=0}^{k} (-1)^(k-i) C(k,i) p_i
		sx, sy := new(big.Rat), new(big.Rat)
		for i := 0; i <= k; i++ {
			c := new(big.Rat).SetInt(binomial(k, i))
			if (k-i)%2 == 1 {
				c.Neg(c)
			}
			sx.Add(sx, new(big.Rat).Mul(c, cps[i].X))
			sy.Add(sy, new(big.Rat).Mul(c, cps[i].Y))
		}
		c := new(big.Rat).SetInt(binomial(n, k))
		x[k] = sx.Mul(sx, c)
		y[k] = sy.Mul(sy, c)
	}
	return x.trim(), y.trim()
}

func binomial(n, k int) *big.Int {
	return new(big.Int).Binomial(int64(n), int64(k))
}
