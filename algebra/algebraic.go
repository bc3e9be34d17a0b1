package algebra

import (
	"fmt"
	"math/big"

	"github.com/golang/geo/r1"
)

// MaxRefinements bounds the number of interval bisections done when comparing or approximating algebraic numbers. Two distinct numbers are always separated well before this bound, reaching it means an invariant is broken.
var MaxRefinements = 10000

// Algebraic is a real algebraic number. It is represented by a monic square-free polynomial with rational coefficients together with an isolating interval. For rational numbers the interval is collapsed, i.e. lo == hi. Otherwise the open interval (lo,hi) contains exactly one root of the polynomial and neither endpoint is a root.
type Algebraic struct {
	poly   Polynomial
	lo, hi *big.Rat
}

// NewRational returns the algebraic number equal to r.
func NewRational(r *big.Rat) Algebraic {
	return Algebraic{
		poly: Polynomial{new(big.Rat).Neg(r), Int(1)},
		lo:   copyRat(r),
		hi:   copyRat(r),
	}
}

// NewAlgebraic returns the unique root of p in the closed interval [lo,hi]. It returns false if there is not exactly one root in the interval.
func NewAlgebraic(p Polynomial, lo, hi *big.Rat) (Algebraic, bool) {
	roots := IsolateRoots(p, lo, hi)
	if len(roots) != 1 {
		return Algebraic{}, false
	}
	return roots[0], true
}

// IsZero returns true for the uninitialized value, which does not represent a number.
func (a Algebraic) IsZero() bool {
	return a.lo == nil
}

// IsRational returns true if the number is known to be rational.
func (a Algebraic) IsRational() bool {
	return a.lo.Cmp(a.hi) == 0
}

// Rat returns the rational value of the number, ok is false if the number is not known to be rational.
func (a Algebraic) Rat() (*big.Rat, bool) {
	if !a.IsRational() {
		return nil, false
	}
	return copyRat(a.lo), true
}

// Polynomial returns the defining polynomial.
func (a Algebraic) Polynomial() Polynomial {
	return a.poly
}

// Interval returns the rational bounds of the number.
func (a Algebraic) Interval() (*big.Rat, *big.Rat) {
	return copyRat(a.lo), copyRat(a.hi)
}

// Sign returns the sign of the number.
func (a Algebraic) Sign() int {
	return Compare(a, NewRational(new(big.Rat)))
}

// Refine halves the isolating interval.
func (a Algebraic) Refine() Algebraic {
	if a.IsRational() {
		return a
	}
	m := midpoint(a.lo, a.hi)
	s := a.poly.Sign(m)
	if s == 0 {
		return Algebraic{poly: Polynomial{new(big.Rat).Neg(m), Int(1)}, lo: m, hi: copyRat(m)}
	} else if s == a.poly.Sign(a.lo) {
		return Algebraic{poly: a.poly, lo: m, hi: a.hi}
	}
	return Algebraic{poly: a.poly, lo: a.lo, hi: m}
}

// RefineTo refines the isolating interval until its width is at most w.
func (a Algebraic) RefineTo(w *big.Rat) Algebraic {
	for i := 0; new(big.Rat).Sub(a.hi, a.lo).Cmp(w) > 0; i++ {
		if i == MaxRefinements {
			panic("bug: maximum refinements reached")
		}
		a = a.Refine()
	}
	return a
}

// Approx returns a float interval that contains the number.
func (a Algebraic) Approx() r1.Interval {
	return r1.Interval{Lo: FloorFloat(a.lo), Hi: CeilFloat(a.hi)}
}

// Float64 returns an approximation of the number.
func (a Algebraic) Float64() float64 {
	if r, ok := a.Rat(); ok {
		f, _ := r.Float64()
		return f
	}
	w := new(big.Rat).Sub(a.hi, a.lo)
	w.Mul(w, new(big.Rat).SetFrac(big.NewInt(1), new(big.Int).Lsh(big.NewInt(1), 60)))
	if scale := new(big.Rat).Abs(a.lo); scale.Cmp(Int(1)) > 0 {
		w.Mul(w, scale)
	}
	a = a.RefineTo(w)
	f, _ := midpoint(a.lo, a.hi).Float64()
	return f
}

// Cmp compares a and b and returns -1, 0, or +1.
func (a Algebraic) Cmp(b Algebraic) int {
	return Compare(a, b)
}

// CmpRat compares a and r and returns -1, 0, or +1.
func (a Algebraic) CmpRat(r *big.Rat) int {
	if a.IsRational() {
		return a.lo.Cmp(r)
	} else if r.Cmp(a.lo) <= 0 {
		return 1
	} else if a.hi.Cmp(r) <= 0 {
		return -1
	} else if a.poly.Sign(r) == 0 {
		// r is a root inside the isolating interval
		return 0
	}
	for i := 0; ; i++ {
		if i == MaxRefinements {
			panic("bug: maximum refinements reached")
		}
		a = a.Refine()
		if a.IsRational() {
			return a.lo.Cmp(r)
		} else if r.Cmp(a.lo) <= 0 {
			return 1
		} else if a.hi.Cmp(r) <= 0 {
			return -1
		}
	}
}

// Equals returns true if a and b are the same number.
func (a Algebraic) Equals(b Algebraic) bool {
	return Compare(a, b) == 0
}

// Compare compares two algebraic numbers exactly and returns -1, 0, or +1. Equality is decided by checking whether the GCD of both defining polynomials has a root in the intersection of the isolating intervals.
func Compare(a, b Algebraic) int {
	if a.IsRational() {
		return -b.CmpRat(a.lo)
	} else if b.IsRational() {
		return a.CmpRat(b.lo)
	}

	if a.lo.Cmp(b.hi) < 0 && b.lo.Cmp(a.hi) < 0 {
		// overlapping open intervals, check for a common root
		lo, hi := ratMax(a.lo, b.lo), ratMin(a.hi, b.hi)
		if g := GCD(a.poly, b.poly); 0 < g.Degree() {
			if newSturmSequence(g).countOpen(lo, hi) != 0 {
				return 0
			}
		}
	}

	for i := 0; ; i++ {
		if a.hi.Cmp(b.lo) <= 0 {
			return -1
		} else if b.hi.Cmp(a.lo) <= 0 {
			return 1
		} else if i == MaxRefinements {
			panic("bug: maximum refinements reached")
		}

		wa := new(big.Rat).Sub(a.hi, a.lo)
		wb := new(big.Rat).Sub(b.hi, b.lo)
		if wb.Cmp(wa) <= 0 {
			a = a.Refine()
			if a.IsRational() {
				return -b.CmpRat(a.lo)
			}
		} else {
			b = b.Refine()
			if b.IsRational() {
				return a.CmpRat(b.lo)
			}
		}
	}
}

// Between returns a rational number strictly between a and b, where a < b.
func Between(a, b Algebraic) *big.Rat {
	for i := 0; ; i++ {
		if a.hi.Cmp(b.lo) < 0 {
			return midpoint(a.hi, b.lo)
		} else if i == MaxRefinements {
			panic("bug: maximum refinements reached or a >= b")
		}

		wa := new(big.Rat).Sub(a.hi, a.lo)
		wb := new(big.Rat).Sub(b.hi, b.lo)
		if wb.Cmp(wa) <= 0 {
			a = a.Refine()
		} else {
			b = b.Refine()
		}
	}
}

// EvalAt returns the algebraic number p(t). The defining polynomial is obtained from the characteristic polynomial of the multiplication-by-p map in Q[t]/(q), where q is the defining polynomial of t.
func EvalAt(p Polynomial, t Algebraic) Algebraic {
	if r, ok := t.Rat(); ok {
		return NewRational(p.Eval(r))
	} else if p.Degree() <= 0 {
		return NewRational(p.Coeff(0))
	}

	chi := characteristicPolynomial(multiplicationMatrix(p, t.poly)).SquareFree()
	if chi.Degree() == 1 {
		return NewRational(new(big.Rat).Neg(chi[0]))
	}
	seq := newSturmSequence(chi)
	for i := 0; ; i++ {
		if i == MaxRefinements {
			panic("bug: maximum refinements reached")
		}
		lo, hi := p.EvalInterval(t.lo, t.hi)
		if lo.Cmp(hi) < 0 && chi.Sign(lo) != 0 && chi.Sign(hi) != 0 && seq.countOpen(lo, hi) == 1 {
			return Algebraic{poly: chi, lo: lo, hi: hi}
		}
		t = t.Refine()
		if r, ok := t.Rat(); ok {
			return NewRational(p.Eval(r))
		}
	}
}

func (a Algebraic) String() string {
	if a.IsZero() {
		return "<nil>"
	} else if a.IsRational() {
		return a.lo.RatString()
	}
	return fmt.Sprintf("root(%v, [%v,%v])", a.poly, a.lo.RatString(), a.hi.RatString())
}

////////////////////////////////////////////////////////////////

type matrix [][]*big.Rat

func newMatrix(n int) matrix {
	m := make(matrix, n)
	for i := range m {
		m[i] = make([]*big.Rat, n)
		for j := range m[i] {
			m[i][j] = new(big.Rat)
		}
	}
	return m
}

func (m matrix) mul(o matrix) matrix {
	n := len(m)
	r := newMatrix(n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			for k := 0; k < n; k++ {
				r[i][j].Add(r[i][j], new(big.Rat).Mul(m[i][k], o[k][j]))
			}
		}
	}
	return r
}

func (m matrix) trace() *big.Rat {
	t := new(big.Rat)
	for i := range m {
		t.Add(t, m[i][i])
	}
	return t
}

// multiplicationMatrix returns the matrix of the linear map f -> p*f in Q[t]/(q) with basis 1, t, ..., t^(n-1).
func multiplicationMatrix(p, q Polynomial) matrix {
	n := q.Degree()
	m := newMatrix(n)
	col := p.Mod(q)
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			m[i][j] = col.Coeff(i)
		}
		col = col.Mul(Polynomial{new(big.Rat), Int(1)}).Mod(q)
	}
	return m
}

// characteristicPolynomial returns det(x*I - m) using the Faddeev-LeVerrier algorithm.
func characteristicPolynomial(a matrix) Polynomial {
	n := len(a)
	c := zeroPolynomial(n + 1)
	c[n] = Int(1)
	mk := newMatrix(n)
	for k := 1; k <= n; k++ {
		mk = a.mul(mk)
		for i := 0; i < n; i++ {
			mk[i][i].Add(mk[i][i], c[n-k+1])
		}
		tr := a.mul(mk).trace()
		c[n-k] = tr.Quo(tr, Int(int64(-k)))
	}
	return c.trim()
}
