package algebra

import (
	"math/big"
)

// sturmSequence is the Sturm sequence of a square-free polynomial: p, p', and then the negated remainders of the previous two.
type sturmSequence []Polynomial

func newSturmSequence(p Polynomial) sturmSequence {
	p = p.trim()
	seq := sturmSequence{p}
	if len(p) <= 1 {
		return seq
	}
	seq = append(seq, p.Derivative())
	for {
		r := seq[len(seq)-2].Mod(seq[len(seq)-1])
		if r.IsZero() {
			break
		}
		seq = append(seq, r.Neg())
	}
	return seq
}

// variations counts the sign changes of the sequence evaluated at t, skipping zeros.
func (seq sturmSequence) variations(t *big.Rat) int {
	n, prev := 0, 0
	for _, p := range seq {
		s := p.Sign(t)
		if s == 0 {
			continue
		} else if prev != 0 && s != prev {
			n++
		}
		prev = s
	}
	return n
}

// count returns the number of distinct roots in the half-open interval (a,b].
func (seq sturmSequence) count(a, b *big.Rat) int {
	return seq.variations(a) - seq.variations(b)
}

// countOpen returns the number of distinct roots in the open interval (a,b).
func (seq sturmSequence) countOpen(a, b *big.Rat) int {
	n := seq.count(a, b)
	if seq[0].Sign(b) == 0 {
		n--
	}
	return n
}

// CountRoots returns the number of distinct real roots of p in the closed interval [a,b].
func CountRoots(p Polynomial, a, b *big.Rat) int {
	p = p.SquareFree()
	if p.Degree() <= 0 || b.Cmp(a) < 0 {
		return 0
	}
	n := newSturmSequence(p).count(a, b)
	if p.Sign(a) == 0 {
		n++
	}
	return n
}

// IsolateRoots returns the distinct real roots of p in the closed interval [lo,hi] in increasing order. Rational roots that are found along the way are returned exactly. The zero polynomial has no isolated roots and returns nil.
func IsolateRoots(p Polynomial, lo, hi *big.Rat) []Algebraic {
	p = p.SquareFree()
	if p.Degree() <= 0 || hi.Cmp(lo) < 0 {
		return nil
	} else if p.Degree() == 1 {
		r := new(big.Rat).Quo(p[0], p[1])
		r.Neg(r)
		if r.Cmp(lo) < 0 || hi.Cmp(r) < 0 {
			return nil
		}
		return []Algebraic{NewRational(r)}
	}

	seq := newSturmSequence(p)
	roots := []Algebraic{}
	if p.Sign(lo) == 0 {
		roots = append(roots, NewRational(lo))
	}
	if lo.Cmp(hi) == 0 {
		return roots
	}

	var isolate func(a, b *big.Rat)
	isolate = func(a, b *big.Rat) {
		n := seq.countOpen(a, b)
		if n == 0 {
			return
		} else if n == 1 && p.Sign(a) != 0 && p.Sign(b) != 0 {
			roots = append(roots, Algebraic{poly: p, lo: copyRat(a), hi: copyRat(b)})
			return
		}
		m := midpoint(a, b)
		isolate(a, m)
		if p.Sign(m) == 0 {
			roots = append(roots, NewRational(m))
		}
		isolate(m, b)
	}
	isolate(lo, hi)

	if p.Sign(hi) == 0 {
		roots = append(roots, NewRational(hi))
	}
	return roots
}
