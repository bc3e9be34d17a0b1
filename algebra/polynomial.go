package algebra

import (
	"fmt"
	"math/big"
	"strings"
)

// Polynomial is a univariate polynomial with rational coefficients, where p[i] is the coefficient of t^i. The zero polynomial has no coefficients. Polynomials are treated as immutable values.
type Polynomial []*big.Rat

// NewPolynomial returns the polynomial with the given coefficients in increasing order of degree.
func NewPolynomial(coeffs ...*big.Rat) Polynomial {
	p := make(Polynomial, len(coeffs))
	for i, c := range coeffs {
		p[i] = copyRat(c)
	}
	return p.trim()
}

// IntPolynomial returns the polynomial with the given integer coefficients in increasing order of degree.
func IntPolynomial(coeffs ...int64) Polynomial {
	p := make(Polynomial, len(coeffs))
	for i, c := range coeffs {
		p[i] = Int(c)
	}
	return p.trim()
}

func zeroPolynomial(n int) Polynomial {
	p := make(Polynomial, n)
	for i := range p {
		p[i] = new(big.Rat)
	}
	return p
}

func (p Polynomial) trim() Polynomial {
	n := len(p)
	for 0 < n && p[n-1].Sign() == 0 {
		n--
	}
	return p[:n]
}

// Degree returns the degree of p, or -1 for the zero polynomial.
func (p Polynomial) Degree() int {
	return len(p.trim()) - 1
}

// IsZero returns true if p is the zero polynomial.
func (p Polynomial) IsZero() bool {
	return len(p.trim()) == 0
}

// Coeff returns the coefficient of t^i.
func (p Polynomial) Coeff(i int) *big.Rat {
	if i < 0 || len(p) <= i {
		return new(big.Rat)
	}
	return copyRat(p[i])
}

// Lead returns the leading coefficient, zero for the zero polynomial.
func (p Polynomial) Lead() *big.Rat {
	p = p.trim()
	if len(p) == 0 {
		return new(big.Rat)
	}
	return copyRat(p[len(p)-1])
}

// Eval evaluates p at t using Horner's method.
func (p Polynomial) Eval(t *big.Rat) *big.Rat {
	v := new(big.Rat)
	for i := len(p) - 1; 0 <= i; i-- {
		v.Mul(v, t)
		v.Add(v, p[i])
	}
	return v
}

// Sign returns the sign of p(t).
func (p Polynomial) Sign(t *big.Rat) int {
	return p.Eval(t).Sign()
}

// EvalFloat evaluates p approximately at t.
func (p Polynomial) EvalFloat(t float64) float64 {
	v := 0.0
	for i := len(p) - 1; 0 <= i; i-- {
		c, _ := p[i].Float64()
		v = v*t + c
	}
	return v
}

// EvalInterval returns bounds on p(t) for all t in [lo,hi] using interval arithmetic. The bounds converge to p(t) as the interval shrinks.
func (p Polynomial) EvalInterval(lo, hi *big.Rat) (*big.Rat, *big.Rat) {
	if lo.Cmp(hi) == 0 {
		v := p.Eval(lo)
		return v, copyRat(v)
	}
	vlo, vhi := new(big.Rat), new(big.Rat)
	for i := len(p) - 1; 0 <= i; i-- {
		a := new(big.Rat).Mul(vlo, lo)
		b := new(big.Rat).Mul(vlo, hi)
		c := new(big.Rat).Mul(vhi, lo)
		d := new(big.Rat).Mul(vhi, hi)
		vlo = copyRat(ratMin(ratMin(a, b), ratMin(c, d)))
		vhi = copyRat(ratMax(ratMax(a, b), ratMax(c, d)))
		vlo.Add(vlo, p[i])
		vhi.Add(vhi, p[i])
	}
	return vlo, vhi
}

// Derivative returns dp/dt.
func (p Polynomial) Derivative() Polynomial {
	p = p.trim()
	if len(p) <= 1 {
		return Polynomial{}
	}
	d := make(Polynomial, len(p)-1)
	for i := 1; i < len(p); i++ {
		d[i-1] = new(big.Rat).Mul(p[i], Int(int64(i)))
	}
	return d
}

// Neg returns -p.
func (p Polynomial) Neg() Polynomial {
	q := make(Polynomial, len(p))
	for i, c := range p {
		q[i] = new(big.Rat).Neg(c)
	}
	return q
}

// Add returns p+q.
func (p Polynomial) Add(q Polynomial) Polynomial {
	n := max(len(p), len(q))
	r := zeroPolynomial(n)
	for i := range r {
		if i < len(p) {
			r[i].Add(r[i], p[i])
		}
		if i < len(q) {
			r[i].Add(r[i], q[i])
		}
	}
	return r.trim()
}

// Sub returns p-q.
func (p Polynomial) Sub(q Polynomial) Polynomial {
	return p.Add(q.Neg())
}

// Mul returns p*q.
func (p Polynomial) Mul(q Polynomial) Polynomial {
	p, q = p.trim(), q.trim()
	if len(p) == 0 || len(q) == 0 {
		return Polynomial{}
	}
	r := zeroPolynomial(len(p) + len(q) - 1)
	for i, a := range p {
		for j, b := range q {
			r[i+j].Add(r[i+j], new(big.Rat).Mul(a, b))
		}
	}
	return r.trim()
}

// Scale returns f*p.
func (p Polynomial) Scale(f *big.Rat) Polynomial {
	q := make(Polynomial, len(p))
	for i, c := range p {
		q[i] = new(big.Rat).Mul(c, f)
	}
	return q.trim()
}

// DivMod returns the quotient and remainder of the division of p by q.
func (p Polynomial) DivMod(q Polynomial) (Polynomial, Polynomial) {
	q = q.trim()
	if len(q) == 0 {
		panic("division by zero polynomial")
	}
	r := p.Scale(Int(1))
	if len(r) < len(q) {
		return Polynomial{}, r
	}
	quo := zeroPolynomial(len(r) - len(q) + 1)
	lead := q[len(q)-1]
	for len(q) <= len(r) {
		k := len(r) - len(q)
		f := new(big.Rat).Quo(r[len(r)-1], lead)
		quo[k] = f
		for i, c := range q {
			r[i+k].Sub(r[i+k], new(big.Rat).Mul(f, c))
		}
		r = r[:len(r)-1].trim()
	}
	return quo.trim(), r
}

// Mod returns the remainder of the division of p by q.
func (p Polynomial) Mod(q Polynomial) Polynomial {
	_, r := p.DivMod(q)
	return r
}

// Monic returns p divided by its leading coefficient.
func (p Polynomial) Monic() Polynomial {
	p = p.trim()
	if len(p) == 0 {
		return p
	}
	return p.Scale(new(big.Rat).Inv(p[len(p)-1]))
}

// Compose returns p(q(t)).
func (p Polynomial) Compose(q Polynomial) Polynomial {
	r := Polynomial{}
	for i := len(p) - 1; 0 <= i; i-- {
		r = r.Mul(q).Add(Polynomial{p[i]})
	}
	return r.trim()
}

// GCD returns the monic greatest common divisor of p and q. The GCD of two zero polynomials is zero.
func GCD(p, q Polynomial) Polynomial {
	p, q = p.trim(), q.trim()
	for len(q) != 0 {
		p, q = q, p.Mod(q)
		// keep coefficients small
		q = q.Monic()
	}
	return p.Monic()
}

// SquareFree returns the monic square-free part of p, which has the same distinct roots as p with multiplicity one.
func (p Polynomial) SquareFree() Polynomial {
	p = p.trim()
	if len(p) <= 1 {
		return p.Monic()
	}
	g := GCD(p, p.Derivative())
	q, _ := p.DivMod(g)
	return q.Monic()
}

// Equals returns true if p and q have equal coefficients.
func (p Polynomial) Equals(q Polynomial) bool {
	p, q = p.trim(), q.trim()
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if p[i].Cmp(q[i]) != 0 {
			return false
		}
	}
	return true
}

func (p Polynomial) String() string {
	p = p.trim()
	if len(p) == 0 {
		return "0"
	}
	sb := strings.Builder{}
	for i := len(p) - 1; 0 <= i; i-- {
		if p[i].Sign() == 0 {
			continue
		}
		c := p[i].RatString()
		if sb.Len() != 0 {
			if p[i].Sign() < 0 {
				sb.WriteString(" - ")
				c = c[1:]
			} else {
				sb.WriteString(" + ")
			}
		}
		if i == 0 {
			sb.WriteString(c)
		} else {
			if c == "-1" {
				sb.WriteString("-")
			} else if c != "1" {
				sb.WriteString(c)
				sb.WriteString("*")
			}
			sb.WriteString("t")
			if 1 < i {
				fmt.Fprintf(&sb, "^%d", i)
			}
		}
	}
	return sb.String()
}
