package arrangement

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/tdewolff/bezier"
	"github.com/tdewolff/test"
)

func TestEvents(t *testing.T) {
	tr := bezier.New()
	c := bezier.MustParseCurve(0, 0, 3, 1, -1, 2, 0, 3)
	h := bezier.MustParseCurve(-1, 1.5, 3, 1.5)

	q := &events{tr: tr}
	for _, obj := range tr.MakeXMonotone(c) {
		q.AddEdge(0, Edge{Curve: obj.Curve})
	}
	for _, obj := range tr.MakeXMonotone(h) {
		q.AddEdge(1, Edge{Curve: obj.Curve})
	}
	q.Init()
	test.T(t, q.Len(), 8)

	prev := q.Pop()
	for 0 < q.Len() {
		e := q.Pop()
		test.That(t, tr.CompareXY(prev.point, e.point) != bezier.Larger, prev, "after", e)
		prev = e
	}
}

func TestBuild(t *testing.T) {
	var tts = []struct {
		paths    []string
		vertices int
		edges    int
		degrees  map[[2]float64]int
	}{
		{[]string{"M0 0L2 2", "M0 2L2 0"}, 5, 4, map[[2]float64]int{{1, 1}: 4, {0, 0}: 1}},
		{[]string{"M0 0L2 0L1 2Z"}, 3, 3, map[[2]float64]int{{0, 0}: 2, {2, 0}: 2, {1, 2}: 2}},
		{[]string{"M0 0L2 2", "M1 1L3 3"}, 4, 3, map[[2]float64]int{{1, 1}: 2, {2, 2}: 2, {3, 3}: 1}},
		{[]string{"M0 0C3 1 -1 2 0 3", "M-1 1.5L3 1.5"}, 7, 6, map[[2]float64]int{{0.75, 1.5}: 4}},
		{[]string{"M0 0C2 1 -1 1 1 0"}, 5, 5, map[[2]float64]int{{0.5, 0.3}: 4, {0, 0}: 1}},
		{[]string{"M0 0L1 0", "M0 1L1 1"}, 4, 2, nil},
		{[]string{"M0 0L2 0", "M1 0L1 1"}, 4, 3, map[[2]float64]int{{1, 0}: 3}},
	}
	for i, tt := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			curves := []*bezier.Curve{}
			for _, path := range tt.paths {
				curves = append(curves, bezier.MustParseSVGPath(path)...)
			}
			tr := bezier.New()
			arr, err := Build(context.Background(), tr, curves, DefaultOptions)
			test.Error(t, err)
			test.T(t, len(arr.Vertices), tt.vertices)
			test.T(t, len(arr.Edges), tt.edges)

			for pos, degree := range tt.degrees {
				found := false
				for _, v := range arr.Vertices {
					if x, y := v.Point.Pos(); math.Abs(x-pos[0]) < 1e-9 && math.Abs(y-pos[1]) < 1e-9 {
						test.T(t, v.Degree(), degree, "degree of", v.Point)
						found = true
					}
				}
				test.That(t, found, "no vertex at", pos)
			}

			// vertices are distinct and in xy-order
			for j := 1; j < len(arr.Vertices); j++ {
				test.T(t, tr.CompareXY(arr.Vertices[j-1].Point, arr.Vertices[j].Point), bezier.Smaller)
			}

			// edges only meet at their endpoints
			for j, e := range arr.Edges {
				test.That(t, tr.EqualPoints(arr.Vertices[e.Source].Point, e.Curve.Source()))
				test.That(t, tr.EqualPoints(arr.Vertices[e.Target].Point, e.Curve.Target()))
				for k := j + 1; k < len(arr.Edges); k++ {
					for _, ix := range tr.Intersect(e.Curve, arr.Edges[k].Curve) {
						test.T(t, ix.Kind, bezier.Crossing)
						test.That(t, tr.EqualPoints(ix.Point, tr.MinVertex(e.Curve)) || tr.EqualPoints(ix.Point, tr.MaxVertex(e.Curve)), "edges cross in interior")
					}
				}
			}
		})
	}
}

func TestBuildOverlapInputs(t *testing.T) {
	tr := bezier.New()
	curves := []*bezier.Curve{
		bezier.MustParseCurve(0, 0, 2, 2),
		bezier.MustParseCurve(1, 1, 3, 3),
	}
	arr, err := Build(context.Background(), tr, curves, Options{Workers: 1})
	test.Error(t, err)
	test.T(t, len(arr.Edges), 3)
	test.T(t, arr.Edges[0].Inputs, []int{0})
	test.T(t, arr.Edges[1].Inputs, []int{0, 1})
	test.T(t, arr.Edges[2].Inputs, []int{1})
	test.T(t, arr.Stats.SubCurves, 2)
	test.T(t, arr.Stats.Candidates, 1)
}

func TestBuildCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	curves := bezier.MustParseSVGPath("M0 0L2 2M0 2L2 0")
	_, err := Build(ctx, bezier.New(), curves, DefaultOptions)
	test.That(t, errors.Is(err, context.Canceled))
}
