package bezier

import (
	"slices"
)

// Intersect returns the intersections of both curves in xy-order. Curves with disjoint bounding boxes are rejected early, otherwise the intersection points of the backing curves are taken from the intersection map, computing and recording them on first use.
func (tr Traits) Intersect(cv1, cv2 XMonotoneCurve) []Intersection {
	if !cv1.bbox.Intersects(cv2.bbox) {
		return nil
	}

	ixs := []Intersection{}
	points, overlap := tr.intersectionPoints(cv1.curve, cv2.curve)
	for _, p := range points {
		if tr.onBoth(cv1, cv2, p) {
			ixs = append(ixs, Intersection{Kind: Crossing, Point: p})
		}
	}
	if cv1.curve == cv2.curve {
		if ix, ok := tr.intersectPieces(cv1, cv2); ok {
			ixs = append(ixs, ix)
		}
	}
	if overlap {
		if ix, ok := tr.intersectOverlapping(cv1, cv2); ok {
			ixs = append(ixs, ix)
		}
	}
	return tr.normalize(ixs)
}

// intersectionPoints returns the materialized intersection points of two curves, or the self-intersections when c1 == c2.
func (tr Traits) intersectionPoints(c1, c2 *Curve) ([]*Point, bool) {
	if points, overlap, ok := tr.imap.Get(c1, c2); ok {
		return points, overlap
	}
	pairs, overlap := tr.cache.Intersections(c1, c2)
	points := make([]*Point, 0, len(pairs))
	for _, pair := range pairs {
		p := NewPoint(c1, pair.S).withOriginator(Originator{c2, ExactParam(pair.T)})
		points = append(points, p)
	}
	return tr.imap.Record(c1, c2, points, overlap)
}

// onBoth returns true if the point has a parameter in the range of cv1 and another in the range of cv2.
func (tr Traits) onBoth(cv1, cv2 XMonotoneCurve, p *Point) bool {
	ts1 := p.paramsOn(cv1.curve)
	ts2 := p.paramsOn(cv2.curve)
	for i, t1 := range ts1 {
		if !tr.inRange(cv1, t1) {
			continue
		}
		for j, t2 := range ts2 {
			if cv1.curve == cv2.curve && i == j {
				// self-intersections need two distinct parameters
				continue
			} else if tr.inRange(cv2, t2) {
				return true
			}
		}
	}
	return false
}

// intersectPieces intersects the parameter ranges of two parts of the same curve.
func (tr Traits) intersectPieces(cv1, cv2 XMonotoneCurve) (Intersection, bool) {
	c := cv1.curve
	lo, pLo := cv1.lo, cv1.pLo
	if tr.cmpParam(c, cv1.lo, cv2.lo) < 0 {
		lo, pLo = cv2.lo, cv2.pLo
	}
	hi, pHi := cv1.hi, cv1.pHi
	if tr.cmpParam(c, cv2.hi, cv1.hi) < 0 {
		hi, pHi = cv2.hi, cv2.pHi
	}

	if cmp := tr.cmpParam(c, lo, hi); cmp < 0 {
		return Intersection{Kind: Overlap, Overlap: cv1.withRange(lo, hi, pLo, pHi)}, true
	} else if cmp == 0 {
		return Intersection{Kind: Crossing, Point: pLo}, true
	}
	return Intersection{}, false
}

// intersectOverlapping intersects two curves that share a component, using the endpoints of each that lie on the other. Two or more such points give the overlapping part of cv1, a single point is a touching point.
func (tr Traits) intersectOverlapping(cv1, cv2 XMonotoneCurve) (Intersection, bool) {
	points := []*Point{}
	for _, p := range []*Point{cv1.pLo, cv1.pHi} {
		if tr.liesOn(cv2, p) {
			points = append(points, p)
		}
	}
	for _, p := range []*Point{cv2.pLo, cv2.pHi} {
		if tr.liesOn(cv1, p) {
			points = append(points, p)
		}
	}
	slices.SortStableFunc(points, func(a, b *Point) int {
		return int(tr.CompareXY(a, b))
	})
	points = slices.CompactFunc(points, tr.EqualPoints)

	if len(points) == 0 {
		return Intersection{}, false
	} else if len(points) == 1 {
		return Intersection{Kind: Crossing, Point: points[0]}, true
	}

	first, last := points[0], points[len(points)-1]
	t1, err := tr.paramOf(cv1, first)
	if err != nil {
		panic("bug: overlap point not on curve")
	}
	t2, err := tr.paramOf(cv1, last)
	if err != nil {
		panic("bug: overlap point not on curve")
	}
	first = first.withOriginator(Originator{cv1.curve, t1})
	last = last.withOriginator(Originator{cv1.curve, t2})
	if tr.cmpParam(cv1.curve, t2, t1) < 0 {
		t1, t2 = t2, t1
		first, last = last, first
	}
	return Intersection{Kind: Overlap, Overlap: cv1.withRange(t1, t2, first, last)}, true
}

// liesOn returns true if p is on cv.
func (tr Traits) liesOn(cv XMonotoneCurve, p *Point) bool {
	if tr.CompareX(p, cv.left()) == Smaller || tr.CompareX(p, cv.right()) == Larger {
		return false
	}
	cmp, err := tr.CompareYAtX(p, cv)
	return err == nil && cmp == Equal
}

// normalize sorts the intersections in xy-order and removes duplicate points and points that are endpoints of an overlap.
func (tr Traits) normalize(ixs []Intersection) []Intersection {
	overlaps := []XMonotoneCurve{}
	for _, ix := range ixs {
		if ix.Kind == Overlap {
			overlaps = append(overlaps, ix.Overlap)
		}
	}

	res := ixs[:0:0]
	for _, ix := range ixs {
		duplicate := false
		if ix.Kind == Crossing {
			for _, o := range overlaps {
				if tr.EqualPoints(ix.Point, o.pLo) || tr.EqualPoints(ix.Point, o.pHi) {
					duplicate = true
					break
				}
			}
		}
		for _, ix2 := range res {
			if ix.Kind == Crossing && ix2.Kind == Crossing && tr.EqualPoints(ix.Point, ix2.Point) ||
				ix.Kind == Overlap && ix2.Kind == Overlap && tr.EqualCurves(ix.Overlap, ix2.Overlap) {
				duplicate = true
				break
			}
		}
		if !duplicate {
			res = append(res, ix)
		}
	}
	slices.SortStableFunc(res, func(a, b Intersection) int {
		return int(tr.CompareXY(a.key(), b.key()))
	})
	return res
}
