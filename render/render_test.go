package render

import (
	"bytes"
	"context"
	"fmt"
	"image/color"
	"strings"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/paulmach/orb"
	"github.com/tdewolff/bezier"
	"github.com/tdewolff/bezier/arrangement"
	"github.com/tdewolff/test"
)

func decompose(tr bezier.Traits, path string) Scene {
	scene := Scene{}
	for _, c := range bezier.MustParseSVGPath(path) {
		scene.Add(FromObjects(tr.MakeXMonotone(c)))
	}
	return scene
}

func TestNum(t *testing.T) {
	var tts = []struct {
		f        float64
		expected string
	}{
		{1.0, "1"},
		{0.5, ".5"},
		{-0.25, "-.25"},
		{100.0, "100"},
		{1.0 / 3.0, ".33333333"},
		{-2.0 / 3.0, "-.66666667"},
		{12345.678, "12345.678"},
	}
	for i, tt := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			test.String(t, num(tt.f).String(), tt.expected)
		})
	}
}

func TestViewport(t *testing.T) {
	bounds := r2.RectFromPoints(r2.Point{X: 0.0, Y: 0.0}, r2.Point{X: 2.0, Y: 1.0})
	vp := newViewport(bounds, Options{Width: 100.0, Margin: 10.0})
	test.Float(t, vp.W, 100.0)
	test.Float(t, vp.H, 60.0)
	test.T(t, vp.Pos(r2.Point{X: 0.0, Y: 0.0}), r2.Point{X: 10.0, Y: 50.0})
	test.T(t, vp.Pos(r2.Point{X: 2.0, Y: 1.0}), r2.Point{X: 90.0, Y: 10.0})

	// empty scene
	vp = newViewport(r2.EmptyRect(), Options{Width: 100.0, Margin: 10.0})
	test.Float(t, vp.W, 100.0)
}

func TestPathData(t *testing.T) {
	tr := bezier.New()
	scene := decompose(tr, "M0 0L2 1")
	vp := newViewport(scene.Bounds(), Options{Width: 100.0, Margin: 10.0})
	test.String(t, pathData(vp, scene.Curves[0], 8), "M10 50L90 10")

	scene = decompose(tr, "M0 0Q1 1 2 0")
	vp = newViewport(scene.Bounds(), Options{Width: 100.0, Margin: 10.0})
	test.String(t, pathData(vp, scene.Curves[0], 8), "M10 50Q50 10 90 50")
}

func TestSVG(t *testing.T) {
	tr := bezier.New()
	scene := decompose(tr, "M0 0L2 1M0 2C3 3 -1 4 0 5")

	w := &bytes.Buffer{}
	opts := DefaultOptions
	opts.Labels = true
	test.Error(t, SVG(w, scene, opts))
	s := w.String()
	test.That(t, strings.Contains(s, "<svg"), "no svg element")
	test.T(t, strings.Count(s, "<path"), len(scene.Curves))
	test.T(t, strings.Count(s, "<circle"), len(scene.Points))
	test.T(t, strings.Count(s, "<text"), len(scene.Points))
	test.That(t, strings.Contains(s, "C"), "no cubic path data")
}

func TestImage(t *testing.T) {
	tr := bezier.New()
	scene := decompose(tr, "M0 0L2 0")
	img := Image(scene, Options{Width: 100.0, Margin: 10.0, StrokeWidth: 2.0, PointRadius: 3.0, Segments: 8})
	test.T(t, img.Bounds().Dx(), 100)
	test.T(t, img.Bounds().Dy(), 20)
	test.T(t, img.RGBAAt(0, 0), color.RGBA{0xff, 0xff, 0xff, 0xff})
	test.That(t, img.RGBAAt(50, 10) != color.RGBA{0xff, 0xff, 0xff, 0xff}, "curve not drawn")
	test.That(t, img.RGBAAt(10, 10) != color.RGBA{0xff, 0xff, 0xff, 0xff}, "point not drawn")

	w := &bytes.Buffer{}
	test.Error(t, PNG(w, scene, DefaultOptions))
	test.That(t, bytes.HasPrefix(w.Bytes(), []byte("\x89PNG")))
}

func TestGeoJSON(t *testing.T) {
	tr := bezier.New()
	scene := decompose(tr, "M0 0Q1 1 0 2")
	fc := GeoJSON(scene, Options{Segments: 4})
	test.T(t, len(fc.Features), len(scene.Curves)+len(scene.Points))

	ls, ok := fc.Features[0].Geometry.(orb.LineString)
	test.That(t, ok, "not a line string")
	test.T(t, len(ls), 5)
	test.T(t, ls[0], orb.Point{0.0, 0.0})
	test.T(t, ls[4], orb.Point{0.5, 1.0})
	test.T(t, fc.Features[0].Properties["directed_right"], true)
	test.T(t, fc.Features[1].Properties["directed_right"], false)

	_, ok = fc.Features[len(fc.Features)-1].Geometry.(orb.Point)
	test.That(t, ok, "not a point")

	w := &bytes.Buffer{}
	test.Error(t, WriteGeoJSON(w, scene, DefaultOptions))
	test.That(t, strings.Contains(w.String(), `"FeatureCollection"`))
}

func TestPlot(t *testing.T) {
	tr := bezier.New()
	curves := bezier.MustParseSVGPath("M0 0L2 2M0 2L2 0")
	arr, err := arrangement.Build(context.Background(), tr, curves, arrangement.DefaultOptions)
	test.Error(t, err)
	scene := FromArrangement(arr)
	test.T(t, len(scene.Curves), 4)
	test.T(t, len(scene.Points), 5)

	p, err := Plot(scene, DefaultOptions)
	test.Error(t, err)
	test.T(t, p.X.Label.Text, "x")

	w := &bytes.Buffer{}
	test.Error(t, WritePlot(w, "svg", scene, DefaultOptions))
	test.That(t, strings.Contains(w.String(), "<svg"))
}

func TestFromIntersections(t *testing.T) {
	tr := bezier.New()
	cv1 := tr.MakeXMonotone(bezier.MustParseCurve(0, 0, 2, 2))[0].Curve
	cv2 := tr.MakeXMonotone(bezier.MustParseCurve(1, 1, 3, 3))[0].Curve
	cv3 := tr.MakeXMonotone(bezier.MustParseCurve(0, 2, 2, 0))[0].Curve

	scene := FromIntersections(tr.Intersect(cv1, cv2))
	test.T(t, len(scene.Curves), 1)
	test.T(t, len(scene.Points), 0)
	scene = FromIntersections(tr.Intersect(cv1, cv3))
	test.T(t, len(scene.Curves), 0)
	test.T(t, len(scene.Points), 1)
}

func TestHex(t *testing.T) {
	var tts = []struct {
		s        string
		expected color.RGBA
	}{
		{"#ff0000", color.RGBA{0xff, 0x00, 0x00, 0xff}},
		{"F00", color.RGBA{0xff, 0x00, 0x00, 0xff}},
		{"#1f77b4", color.RGBA{0x1f, 0x77, 0xb4, 0xff}},
		{"#ff000000", color.RGBA{0x00, 0x00, 0x00, 0x00}},
		{"#f008", color.RGBA{0x88, 0x00, 0x00, 0x88}},
	}
	for i, tt := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			c, err := Hex(tt.s)
			test.Error(t, err)
			test.T(t, c, tt.expected)
		})
	}

	test.String(t, hexColor(color.RGBA{0x1f, 0x77, 0xb4, 0xff}), "#1f77b4")

	_, err := Hex("#ff00")
	test.That(t, err == nil)
	_, err = Hex("#ff0")
	test.Error(t, err)
	_, err = Hex("#ggg")
	test.That(t, err != nil)
	_, err = Hex("#12345")
	test.That(t, err != nil)
}
