// Package arrangement builds the arrangement of a set of Bezier curves, which is their subdivision into vertices and x-monotone edges that only meet at vertices.
package arrangement

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"slices"
	"strings"

	"github.com/dhconnelly/rtreego"
	"github.com/golang/geo/r2"
	"github.com/tdewolff/bezier"
	"golang.org/x/sync/errgroup"
)

// Options are the options for building an arrangement.
type Options struct {
	Workers int // number of goroutines intersecting pairs of sub-curves, GOMAXPROCS if zero
}

// DefaultOptions are the default options.
var DefaultOptions = Options{
	Workers: 0,
}

// Vertex is a vertex of the arrangement.
type Vertex struct {
	Point *bezier.Point
	Edges []int // incident edges
}

// Degree returns the number of incident edges.
func (v Vertex) Degree() int {
	return len(v.Edges)
}

// Edge is an x-monotone curve between two vertices that does not intersect other edges except at its endpoints.
type Edge struct {
	Curve          bezier.XMonotoneCurve
	Source, Target int   // vertex indices
	Inputs         []int // indices of the input curves that cover the edge
}

// Stats are counts of the intermediate results of building an arrangement.
type Stats struct {
	SubCurves     int
	Candidates    int // pairs of sub-curves with overlapping bounding boxes
	Intersections int
}

// Arrangement is the arrangement of a set of curves.
type Arrangement struct {
	Vertices []Vertex
	Edges    []Edge
	Stats    Stats
}

func (a *Arrangement) String() string {
	sb := strings.Builder{}
	fmt.Fprintf(&sb, "%d vertices, %d edges\n", len(a.Vertices), len(a.Edges))
	for i, v := range a.Vertices {
		fmt.Fprintf(&sb, "V%d %v degree=%d\n", i, v.Point, v.Degree())
	}
	for i, e := range a.Edges {
		fmt.Fprintf(&sb, "E%d V%d→V%d %v inputs=%v\n", i, e.Source, e.Target, e.Curve, e.Inputs)
	}
	return sb.String()
}

type segment struct {
	cv     bezier.XMonotoneCurve
	input  int
	index  int
	splits []*bezier.Point
	rect   rtreego.Rect
}

func (s *segment) Bounds() rtreego.Rect {
	return s.rect
}

// bboxRect returns the bounding box slightly enlarged so that touching boxes intersect.
func bboxRect(bbox r2.Rect) rtreego.Rect {
	pad := 1e-9 * (1.0 + math.Max(math.Max(math.Abs(bbox.X.Lo), math.Abs(bbox.X.Hi)), math.Max(math.Abs(bbox.Y.Lo), math.Abs(bbox.Y.Hi))))
	p := rtreego.Point{bbox.X.Lo - pad, bbox.Y.Lo - pad}
	r, err := rtreego.NewRect(p, []float64{bbox.X.Length() + 2.0*pad, bbox.Y.Length() + 2.0*pad})
	if err != nil {
		panic("bug: " + err.Error())
	}
	return r
}

type pair struct {
	i, j int
}

// Build returns the arrangement of the curves. Curves are split into x-monotone curves, all pairs with overlapping bounding boxes are intersected concurrently, and the x-monotone curves are split at the intersection points. Endpoints are merged into vertices in xy-order, and overlapping parts of different curves become a single edge.
func Build(ctx context.Context, tr bezier.Traits, curves []*bezier.Curve, opts Options) (*Arrangement, error) {
	arr := &Arrangement{}

	// decompose
	segs := []*segment{}
	for i, c := range curves {
		for _, obj := range tr.MakeXMonotone(c) {
			if obj.Kind != bezier.CurveObject {
				continue
			}
			segs = append(segs, &segment{
				cv:    obj.Curve,
				input: i,
				index: len(segs),
				rect:  bboxRect(obj.Curve.BBox()),
			})
		}
	}
	arr.Stats.SubCurves = len(segs)

	// find candidate pairs
	tree := rtreego.NewTree(2, 25, 50)
	for _, seg := range segs {
		tree.Insert(seg)
	}
	pairs := []pair{}
	for _, seg := range segs {
		for _, obj := range tree.SearchIntersect(seg.rect) {
			if other := obj.(*segment); seg.index < other.index {
				pairs = append(pairs, pair{seg.index, other.index})
			}
		}
	}
	slices.SortFunc(pairs, func(a, b pair) int {
		if a.i != b.i {
			return a.i - b.i
		}
		return a.j - b.j
	})
	arr.Stats.Candidates = len(pairs)

	// intersect
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	results := make([][]bezier.Intersection, len(pairs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for k, pr := range pairs {
		k, pr := k, pr
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[k] = tr.Intersect(segs[pr.i].cv, segs[pr.j].cv)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	for k, pr := range pairs {
		a, b := segs[pr.i], segs[pr.j]
		for _, ix := range results[k] {
			if ix.Kind == bezier.Crossing {
				a.splits = append(a.splits, ix.Point)
				b.splits = append(b.splits, ix.Point)
			} else {
				lo, hi := tr.MinVertex(ix.Overlap), tr.MaxVertex(ix.Overlap)
				a.splits = append(a.splits, lo, hi)
				b.splits = append(b.splits, lo, hi)
			}
			arr.Stats.Intersections++
		}
	}

	// split
	for _, seg := range segs {
		parts, err := splitAll(tr, seg.cv, seg.splits)
		if err != nil {
			return nil, fmt.Errorf("split %v: %w", seg.cv, err)
		}
		for _, part := range parts {
			arr.Edges = append(arr.Edges, Edge{
				Curve:  part,
				Inputs: []int{seg.input},
			})
		}
	}

	// merge endpoints into vertices in xy-order
	q := &events{tr: tr}
	for i, e := range arr.Edges {
		q.AddEdge(i, e)
	}
	q.Init()
	for 0 < q.Len() {
		e := q.Pop()
		n := len(arr.Vertices)
		if n == 0 || !tr.EqualPoints(arr.Vertices[n-1].Point, e.point) {
			arr.Vertices = append(arr.Vertices, Vertex{Point: e.point})
			n++
		}
		if e.source {
			arr.Edges[e.edge].Source = n - 1
		} else {
			arr.Edges[e.edge].Target = n - 1
		}
	}

	arr.Edges = mergeOverlaps(tr, arr.Edges)
	for i, e := range arr.Edges {
		arr.Vertices[e.Source].Edges = append(arr.Vertices[e.Source].Edges, i)
		arr.Vertices[e.Target].Edges = append(arr.Vertices[e.Target].Edges, i)
	}
	return arr, nil
}

// splitAll splits the curve at all points in its interior and returns the parts in xy-order.
func splitAll(tr bezier.Traits, cv bezier.XMonotoneCurve, points []*bezier.Point) ([]bezier.XMonotoneCurve, error) {
	lo, hi := tr.MinVertex(cv), tr.MaxVertex(cv)
	interior := points[:0:0]
	for _, p := range points {
		if tr.CompareXY(lo, p) == bezier.Smaller && tr.CompareXY(p, hi) == bezier.Smaller {
			interior = append(interior, p)
		}
	}
	slices.SortStableFunc(interior, func(a, b *bezier.Point) int {
		return int(tr.CompareXY(a, b))
	})
	interior = slices.CompactFunc(interior, tr.EqualPoints)

	parts := []bezier.XMonotoneCurve{}
	for _, p := range interior {
		left, right, err := tr.Split(cv, p)
		if err != nil {
			return nil, err
		}
		parts = append(parts, left)
		cv = right
	}
	return append(parts, cv), nil
}

// mergeOverlaps replaces edges between the same vertices that overlap by a single edge covering all their inputs.
func mergeOverlaps(tr bezier.Traits, edges []Edge) []Edge {
	merged := edges[:0:0]
	byVertices := map[pair][]int{}
	for _, e := range edges {
		key := pair{min(e.Source, e.Target), max(e.Source, e.Target)}
		duplicate := false
		for _, k := range byVertices[key] {
			for _, ix := range tr.Intersect(merged[k].Curve, e.Curve) {
				if ix.Kind == bezier.Overlap {
					merged[k].Inputs = append(merged[k].Inputs, e.Inputs...)
					duplicate = true
					break
				}
			}
			if duplicate {
				break
			}
		}
		if !duplicate {
			byVertices[key] = append(byVertices[key], len(merged))
			merged = append(merged, e)
		}
	}
	for i := range merged {
		slices.Sort(merged[i].Inputs)
		merged[i].Inputs = slices.Compact(merged[i].Inputs)
	}
	return merged
}
