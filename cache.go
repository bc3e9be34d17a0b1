package bezier

import (
	"sync"

	"github.com/tdewolff/bezier/algebra"
)

// pairKey is an unordered pair of curve IDs with lo <= hi.
type pairKey struct {
	lo, hi int64
}

func keyOf(c1, c2 *Curve) pairKey {
	if c2.id < c1.id {
		return pairKey{c2.id, c1.id}
	}
	return pairKey{c1.id, c2.id}
}

type tangencyEntry struct {
	once  sync.Once
	roots []algebra.Algebraic
}

type intersectionEntry struct {
	once    sync.Once
	pairs   []algebra.ParamPair // S on the curve with the lower ID
	overlap bool
}

// Cache memoizes the exact vertical tangencies of curves and the exact intersection parameters of pairs of curves. Each entry is computed at most once and never invalidated. It is safe for concurrent use.
type Cache struct {
	nt NumberTraits

	mu            sync.Mutex
	tangencies    map[int64]*tangencyEntry
	intersections map[pairKey]*intersectionEntry
}

// NewCache returns an empty cache that computes entries using nt.
func NewCache(nt NumberTraits) *Cache {
	return &Cache{
		nt:            nt,
		tangencies:    map[int64]*tangencyEntry{},
		intersections: map[pairKey]*intersectionEntry{},
	}
}

// VerticalTangencies returns the sorted exact parameters in (0,1) of the curve with the given ID where the derivative of x vanishes. It is computed on the first call for the ID.
func (c *Cache) VerticalTangencies(id int64, x algebra.Polynomial) []algebra.Algebraic {
	c.mu.Lock()
	entry, ok := c.tangencies[id]
	if !ok {
		entry = &tangencyEntry{}
		c.tangencies[id] = entry
	}
	c.mu.Unlock()

	entry.once.Do(func() {
		entry.roots = c.nt.VerticalTangencies(x)
	})
	return entry.roots
}

// Intersections returns the exact intersection parameters of both curves, with S on c1 and T on c2. For c1 == c2 it returns the self-intersections with S < T. Overlap is true if the curves share a component, in which case the parameters are not computed.
func (c *Cache) Intersections(c1, c2 *Curve) ([]algebra.ParamPair, bool) {
	key := keyOf(c1, c2)
	c.mu.Lock()
	entry, ok := c.intersections[key]
	if !ok {
		entry = &intersectionEntry{}
		c.intersections[key] = entry
	}
	c.mu.Unlock()

	entry.once.Do(func() {
		if c1 == c2 {
			entry.pairs, entry.overlap = c.nt.SelfIntersections(c1.x, c1.y)
		} else if c1.id == key.lo {
			entry.pairs, entry.overlap = c.nt.Intersections(c1.x, c1.y, c2.x, c2.y)
		} else {
			entry.pairs, entry.overlap = c.nt.Intersections(c2.x, c2.y, c1.x, c1.y)
		}
	})
	if c1 != c2 && c1.id != key.lo {
		pairs := make([]algebra.ParamPair, len(entry.pairs))
		for i, pair := range entry.pairs {
			pairs[i] = algebra.ParamPair{S: pair.T, T: pair.S}
		}
		return pairs, entry.overlap
	}
	return entry.pairs, entry.overlap
}

// Len returns the number of tangency and intersection entries.
func (c *Cache) Len() (int, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.tangencies), len(c.intersections)
}

// resolve returns the exact value of a parameter on curve cv.
func (c *Cache) resolve(cv *Curve, p Param) algebra.Algebraic {
	if t, ok := p.Exact(); ok {
		return t
	}
	bound, _ := p.Bound()
	for _, t := range c.VerticalTangencies(cv.id, cv.splitPolynomial()) {
		if 0 < t.CmpRat(bound.TMin) && t.CmpRat(bound.TMax) < 0 {
			return t
		}
	}
	panic("bug: no vertical tangency inside bound")
}

////////////////////////////////////////////////////////////////

type mapEntry struct {
	points  []*Point
	overlap bool
}

// IntersectionMap holds the materialized intersection points of pairs of curves. Entries are never replaced once recorded. It is safe for concurrent use.
type IntersectionMap struct {
	mu sync.Mutex
	m  map[pairKey]mapEntry
}

// NewIntersectionMap returns an empty intersection map.
func NewIntersectionMap() *IntersectionMap {
	return &IntersectionMap{
		m: map[pairKey]mapEntry{},
	}
}

// Get returns the intersection points of both curves and whether they overlap, ok is false if no entry was recorded.
func (m *IntersectionMap) Get(c1, c2 *Curve) ([]*Point, bool, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.m[keyOf(c1, c2)]
	return entry.points, entry.overlap, ok
}

// Record stores the intersection points of both curves unless an entry exists already. It returns the stored entry.
func (m *IntersectionMap) Record(c1, c2 *Curve, points []*Point, overlap bool) ([]*Point, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := keyOf(c1, c2)
	if entry, ok := m.m[key]; ok {
		return entry.points, entry.overlap
	}
	m.m[key] = mapEntry{points, overlap}
	return points, overlap
}

// Len returns the number of recorded pairs.
func (m *IntersectionMap) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.m)
}
