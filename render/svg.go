package render

import (
	"fmt"
	"io"
	"strings"

	svg "github.com/ajstarks/svgo/float"
	"github.com/golang/geo/r2"
	"github.com/tdewolff/bezier"
)

// errWriter keeps the first write error.
type errWriter struct {
	w   io.Writer
	err error
}

func (w *errWriter) Write(b []byte) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	n, err := w.w.Write(b)
	w.err = err
	return n, err
}

// pathData returns the SVG path data of the curve in pixel coordinates. Curves up to cubic degree are written exactly, higher degrees are flattened.
func pathData(vp viewport, cv bezier.XMonotoneCurve, segments int) string {
	var ps []r2.Point
	var cmd string
	if cps := cv.ControlPoints(); len(cps) <= 4 {
		ps = cps
		cmd = [...]string{"", "", "L", "Q", "C"}[len(cps)]
	} else {
		ps = cv.Flatten(segments)
		cmd = "L"
	}

	sb := strings.Builder{}
	p := vp.Pos(ps[0])
	fmt.Fprintf(&sb, "M%v %v%s", num(p.X), num(p.Y), cmd)
	for i, q := range ps[1:] {
		if i != 0 {
			sb.WriteString(" ")
		}
		p = vp.Pos(q)
		fmt.Fprintf(&sb, "%v %v", num(p.X), num(p.Y))
	}
	return sb.String()
}

// SVG writes the scene as an SVG image.
func SVG(w io.Writer, scene Scene, opts Options) error {
	ew := &errWriter{w: w}
	vp := newViewport(scene.Bounds(), opts)
	canvas := svg.New(ew)
	canvas.Start(vp.W, vp.H)

	canvas.Gstyle(fmt.Sprintf("fill:none;stroke-width:%v;stroke-linecap:round", num(opts.StrokeWidth)))
	for i, cv := range scene.Curves {
		canvas.Path(pathData(vp, cv, opts.Segments), "stroke:"+hexColor(Palette[i%len(Palette)]))
	}
	canvas.Gend()

	canvas.Gstyle("fill:black")
	for _, p := range scene.Points {
		q := vp.Pos(pointPos(p))
		canvas.Circle(q.X, q.Y, opts.PointRadius)
	}
	canvas.Gend()

	if opts.Labels {
		canvas.Gstyle("font-family:sans-serif;font-size:10px")
		for i, p := range scene.Points {
			q := vp.Pos(pointPos(p))
			canvas.Text(q.X+opts.PointRadius+1.0, q.Y-opts.PointRadius-1.0, fmt.Sprint(i))
		}
		canvas.Gend()
	}
	canvas.End()
	return ew.err
}
