// Package render draws x-monotone curves and points for inspection. It writes SVG, PNG, GeoJSON and plots.
package render

import (
	"math"
	"strconv"

	"github.com/golang/geo/r2"
	"github.com/tdewolff/bezier"
	"github.com/tdewolff/bezier/arrangement"
	"github.com/tdewolff/minify/v2"
)

// Precision is the number of significant digits of coordinates in text output.
var Precision = 8

// Options are the drawing options. Sizes are in pixels.
type Options struct {
	Width       float64 // output width, the height follows from the aspect ratio
	Margin      float64
	StrokeWidth float64
	PointRadius float64
	Segments    int  // number of line segments per curve when flattening
	Labels      bool // label points by their index
}

// DefaultOptions are the default drawing options.
var DefaultOptions = Options{
	Width:       512.0,
	Margin:      16.0,
	StrokeWidth: 2.0,
	PointRadius: 3.0,
	Segments:    32,
}

// Scene is a set of x-monotone curves and points to draw.
type Scene struct {
	Curves []bezier.XMonotoneCurve
	Points []*bezier.Point
}

// FromObjects returns the scene of a curve decomposition, with the endpoints of each sub-curve.
func FromObjects(objs []bezier.Object) Scene {
	scene := Scene{}
	for _, obj := range objs {
		if obj.Kind == bezier.PointObject {
			scene.Points = append(scene.Points, obj.Point)
		} else {
			scene.Curves = append(scene.Curves, obj.Curve)
			scene.Points = append(scene.Points, obj.Curve.Source(), obj.Curve.Target())
		}
	}
	return scene
}

// FromIntersections returns the scene of intersections, with the overlapping parts as curves.
func FromIntersections(ixs []bezier.Intersection) Scene {
	scene := Scene{}
	for _, ix := range ixs {
		if ix.Kind == bezier.Crossing {
			scene.Points = append(scene.Points, ix.Point)
		} else {
			scene.Curves = append(scene.Curves, ix.Overlap)
		}
	}
	return scene
}

// FromArrangement returns the scene of the edges and vertices of an arrangement.
func FromArrangement(arr *arrangement.Arrangement) Scene {
	scene := Scene{}
	for _, e := range arr.Edges {
		scene.Curves = append(scene.Curves, e.Curve)
	}
	for _, v := range arr.Vertices {
		scene.Points = append(scene.Points, v.Point)
	}
	return scene
}

// Add appends the curves and points of another scene.
func (s *Scene) Add(other Scene) {
	s.Curves = append(s.Curves, other.Curves...)
	s.Points = append(s.Points, other.Points...)
}

// Bounds returns the approximate bounding box of all curves and points.
func (s Scene) Bounds() r2.Rect {
	bounds := r2.EmptyRect()
	for _, cv := range s.Curves {
		for _, p := range cv.ControlPoints() {
			bounds = bounds.AddPoint(p)
		}
	}
	for _, p := range s.Points {
		x, y := p.Pos()
		bounds = bounds.AddPoint(r2.Point{X: x, Y: y})
	}
	return bounds
}

// viewport maps scene coordinates to pixels with the y-axis pointing down.
type viewport struct {
	bounds r2.Rect
	scale  float64
	margin float64
	W, H   float64
}

func newViewport(bounds r2.Rect, opts Options) viewport {
	if bounds.IsEmpty() {
		bounds = r2.RectFromPoints(r2.Point{X: 0.0, Y: 0.0}, r2.Point{X: 1.0, Y: 1.0})
	}
	size := bounds.Size()
	extent := math.Max(size.X, size.Y)
	if extent == 0.0 {
		extent = 1.0
	}
	scale := (opts.Width - 2.0*opts.Margin) / extent
	if scale <= 0.0 {
		scale = 1.0
	}
	return viewport{
		bounds: bounds,
		scale:  scale,
		margin: opts.Margin,
		W:      math.Ceil(size.X*scale + 2.0*opts.Margin),
		H:      math.Ceil(size.Y*scale + 2.0*opts.Margin),
	}
}

func (vp viewport) Pos(p r2.Point) r2.Point {
	return r2.Point{
		X: vp.margin + (p.X-vp.bounds.X.Lo)*vp.scale,
		Y: vp.margin + (vp.bounds.Y.Hi-p.Y)*vp.scale,
	}
}

func pointPos(p *bezier.Point) r2.Point {
	x, y := p.Pos()
	return r2.Point{X: x, Y: y}
}

////////////////////////////////////////////////////////////////

// num formats a coordinate with Precision significant digits and without redundant zeros.
type num float64

func (f num) String() string {
	b := strconv.AppendFloat(nil, float64(f), 'g', Precision, 64)
	return string(minify.Number(b, Precision))
}
