package algebra

import (
	"math/big"
)

// Poly2 is a bivariate polynomial with rational coefficients, where p[i][j] is the coefficient of s^i t^j.
type Poly2 [][]*big.Rat

// FromS returns the bivariate polynomial p(s).
func FromS(p Polynomial) Poly2 {
	q := make(Poly2, len(p))
	for i, c := range p {
		q[i] = []*big.Rat{copyRat(c)}
	}
	return q
}

// FromT returns the bivariate polynomial p(t).
func FromT(p Polynomial) Poly2 {
	if len(p) == 0 {
		return Poly2{}
	}
	row := make([]*big.Rat, len(p))
	for j, c := range p {
		row[j] = copyRat(c)
	}
	return Poly2{row}
}

// DividedDifference returns (p(s)-p(t))/(s-t), which is a polynomial in s and t.
func DividedDifference(p Polynomial) Poly2 {
	n := len(p) - 1
	if n < 1 {
		return Poly2{}
	}
	q := make(Poly2, n)
	for i := range q {
		q[i] = make([]*big.Rat, n)
		for j := range q[i] {
			q[i][j] = new(big.Rat)
		}
	}
	// (s^k - t^k)/(s-t) = sum_{i+j=k-1} s^i t^j
	for k := 1; k <= n; k++ {
		for i := 0; i < k; i++ {
			q[i][k-1-i].Add(q[i][k-1-i], p[k])
		}
	}
	return q
}

func (p Poly2) coeff(i, j int) *big.Rat {
	if i < len(p) && j < len(p[i]) && p[i][j] != nil {
		return p[i][j]
	}
	return new(big.Rat)
}

// Sub returns p-q.
func (p Poly2) Sub(q Poly2) Poly2 {
	r := make(Poly2, max(len(p), len(q)))
	for i := range r {
		n := 0
		if i < len(p) {
			n = len(p[i])
		}
		if i < len(q) {
			n = max(n, len(q[i]))
		}
		r[i] = make([]*big.Rat, n)
		for j := range r[i] {
			r[i][j] = new(big.Rat).Sub(p.coeff(i, j), q.coeff(i, j))
		}
	}
	return r
}

// DegreeS returns the degree in s, or -1 for the zero polynomial.
func (p Poly2) DegreeS() int {
	for i := len(p) - 1; 0 <= i; i-- {
		for _, c := range p[i] {
			if c != nil && c.Sign() != 0 {
				return i
			}
		}
	}
	return -1
}

// DegreeT returns the degree in t, or -1 for the zero polynomial.
func (p Poly2) DegreeT() int {
	d := -1
	for _, row := range p {
		for j := len(row) - 1; d < j; j-- {
			if row[j] != nil && row[j].Sign() != 0 {
				d = j
				break
			}
		}
	}
	return d
}

// Swap exchanges the variables s and t.
func (p Poly2) Swap() Poly2 {
	n := 0
	for _, row := range p {
		n = max(n, len(row))
	}
	q := make(Poly2, n)
	for j := range q {
		q[j] = make([]*big.Rat, len(p))
		for i := range p {
			q[j][i] = copyRat(p.coeff(i, j))
		}
	}
	return q
}

// AtS returns the polynomial in t obtained by substituting s.
func (p Poly2) AtS(s *big.Rat) Polynomial {
	n := 0
	for _, row := range p {
		n = max(n, len(row))
	}
	q := zeroPolynomial(n)
	pow := Int(1)
	for i := range p {
		for j := range p[i] {
			q[j].Add(q[j], new(big.Rat).Mul(pow, p.coeff(i, j)))
		}
		pow = new(big.Rat).Mul(pow, s)
	}
	return q
}

// Eval returns p(s,t).
func (p Poly2) Eval(s, t *big.Rat) *big.Rat {
	return p.AtS(s).Eval(t)
}

// Resultant returns the resultant of p and q with respect to t, which is a polynomial in s whose roots contain the s-coordinates of the common roots of p and q. If both p and q do not depend on t, the GCD of both is returned instead.
func Resultant(p, q Poly2) Polynomial {
	m, n := p.DegreeT(), q.DegreeT()
	if m < 0 || n < 0 {
		// p or q is zero
		return Polynomial{}
	} else if m == 0 && n == 0 {
		return GCD(p.AtT0(), q.AtT0())
	}

	// evaluate at D+1 points and interpolate, D bounds the degree of the resultant in s
	D := max(p.DegreeS(), 0)*n + max(q.DegreeS(), 0)*m
	xs := make([]*big.Rat, D+1)
	ys := make([]*big.Rat, D+1)
	for k := 0; k <= D; k++ {
		xs[k] = Int(int64(k))
		ys[k] = sylvester(p.AtS(xs[k]), q.AtS(xs[k]), m, n).determinant()
	}
	return interpolate(xs, ys)
}

// AtT0 returns p(s,0) as a polynomial in s.
func (p Poly2) AtT0() Polynomial {
	q := make(Polynomial, len(p))
	for i := range p {
		q[i] = copyRat(p.coeff(i, 0))
	}
	return q.trim()
}

// sylvester returns the Sylvester matrix of p and q using the formal degrees m and n.
func sylvester(p, q Polynomial, m, n int) matrix {
	N := m + n
	a := newMatrix(N)
	for i := 0; i < n; i++ {
		for k := 0; k <= m; k++ {
			a[i][i+k] = p.Coeff(m - k)
		}
	}
	for i := 0; i < m; i++ {
		for k := 0; k <= n; k++ {
			a[n+i][i+k] = q.Coeff(n - k)
		}
	}
	return a
}

// determinant returns the determinant using Gaussian elimination. The matrix is modified.
func (a matrix) determinant() *big.Rat {
	n := len(a)
	det := Int(1)
	for c := 0; c < n; c++ {
		pivot := -1
		for r := c; r < n; r++ {
			if a[r][c].Sign() != 0 {
				pivot = r
				break
			}
		}
		if pivot == -1 {
			return new(big.Rat)
		} else if pivot != c {
			a[c], a[pivot] = a[pivot], a[c]
			det.Neg(det)
		}
		det.Mul(det, a[c][c])
		for r := c + 1; r < n; r++ {
			if a[r][c].Sign() == 0 {
				continue
			}
			f := new(big.Rat).Quo(a[r][c], a[c][c])
			for k := c; k < n; k++ {
				a[r][k] = new(big.Rat).Sub(a[r][k], new(big.Rat).Mul(f, a[c][k]))
			}
		}
	}
	return det
}

// interpolate returns the polynomial of degree at most len(xs)-1 through the given points using Newton's divided differences.
func interpolate(xs, ys []*big.Rat) Polynomial {
	n := len(xs)
	d := make([]*big.Rat, n)
	for i := range ys {
		d[i] = copyRat(ys[i])
	}
	for k := 1; k < n; k++ {
		for i := n - 1; k <= i; i-- {
			d[i].Sub(d[i], d[i-1])
			d[i].Quo(d[i], new(big.Rat).Sub(xs[i], xs[i-k]))
		}
	}

	p := Polynomial{copyRat(d[n-1])}
	for i := n - 2; 0 <= i; i-- {
		// p = p*(t - xs[i]) + d[i]
		p = p.Mul(Polynomial{new(big.Rat).Neg(xs[i]), Int(1)}).Add(Polynomial{d[i]})
	}
	return p.trim()
}
