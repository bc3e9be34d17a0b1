package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"github.com/golang/geo/r2"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

func toFixed(p r2.Point) fixed.Point26_6 {
	return fixed.Point26_6{
		X: fixed.Int26_6(math.Round(p.X * 64.0)),
		Y: fixed.Int26_6(math.Round(p.Y * 64.0)),
	}
}

// Image draws the scene on a white image. Curves are stroked and points are drawn as discs.
func Image(scene Scene, opts Options) *image.RGBA {
	vp := newViewport(scene.Bounds(), opts)
	w, h := int(vp.W), int(vp.H)
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	stroker := rasterx.NewStroker(w, h, scanner)
	stroker.SetStroke(fixed.Int26_6(opts.StrokeWidth*64.0), 4<<6, rasterx.RoundCap, rasterx.RoundCap, rasterx.RoundGap, rasterx.Round)
	for i, cv := range scene.Curves {
		stroker.Clear()
		scanner.SetColor(Palette[i%len(Palette)])

		cps := cv.ControlPoints()
		stroker.Start(toFixed(vp.Pos(cps[0])))
		switch len(cps) {
		case 2:
			stroker.Line(toFixed(vp.Pos(cps[1])))
		case 3:
			stroker.QuadBezier(toFixed(vp.Pos(cps[1])), toFixed(vp.Pos(cps[2])))
		case 4:
			stroker.CubeBezier(toFixed(vp.Pos(cps[1])), toFixed(vp.Pos(cps[2])), toFixed(vp.Pos(cps[3])))
		default:
			for _, p := range cv.Flatten(opts.Segments)[1:] {
				stroker.Line(toFixed(vp.Pos(p)))
			}
		}
		stroker.Stop(false)
		stroker.Draw()
	}

	black := image.NewUniform(color.Black)
	ras := vector.NewRasterizer(w, h)
	for _, p := range scene.Points {
		addDisc(ras, vp.Pos(pointPos(p)), opts.PointRadius)
	}
	ras.Draw(img, img.Bounds(), black, image.Point{})

	if opts.Labels {
		d := font.Drawer{
			Dst:  img,
			Src:  black,
			Face: basicfont.Face7x13,
		}
		for i, p := range scene.Points {
			q := vp.Pos(pointPos(p))
			d.Dot = fixed.P(int(q.X+opts.PointRadius+1.0), int(q.Y-opts.PointRadius-1.0))
			d.DrawString(fmt.Sprint(i))
		}
	}
	return img
}

// addDisc adds a disc approximated by four cubic Beziers.
func addDisc(ras *vector.Rasterizer, c r2.Point, r float64) {
	const k = 0.5522847498 // 4/3*(sqrt(2)-1)
	x, y, rk := float32(c.X), float32(c.Y), float32(r*k)
	f := float32(r)
	ras.MoveTo(x+f, y)
	ras.CubeTo(x+f, y+rk, x+rk, y+f, x, y+f)
	ras.CubeTo(x-rk, y+f, x-f, y+rk, x-f, y)
	ras.CubeTo(x-f, y-rk, x-rk, y-f, x, y-f)
	ras.CubeTo(x+rk, y-f, x+f, y-rk, x+f, y)
	ras.ClosePath()
}

// PNG writes the scene as a PNG image.
func PNG(w io.Writer, scene Scene, opts Options) error {
	return png.Encode(w, Image(scene, opts))
}
