package render

import (
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Plot returns a plot of the scene with axes in scene coordinates.
func Plot(scene Scene, opts Options) (*plot.Plot, error) {
	p := plot.New()
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	p.Add(plotter.NewGrid())

	for i, cv := range scene.Curves {
		xys := plotter.XYs{}
		for _, q := range cv.Flatten(opts.Segments) {
			xys = append(xys, plotter.XY{X: q.X, Y: q.Y})
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return nil, err
		}
		line.Color = Palette[i%len(Palette)]
		line.Width = vg.Points(opts.StrokeWidth)
		p.Add(line)
	}

	if 0 < len(scene.Points) {
		xys := plotter.XYs{}
		for _, q := range scene.Points {
			x, y := q.Pos()
			xys = append(xys, plotter.XY{X: x, Y: y})
		}
		scatter, err := plotter.NewScatter(xys)
		if err != nil {
			return nil, err
		}
		scatter.GlyphStyle.Shape = draw.CircleGlyph{}
		scatter.GlyphStyle.Radius = vg.Points(opts.PointRadius)
		p.Add(scatter)
	}
	return p, nil
}

// WritePlot writes a plot of the scene in the given format, such as png, svg, pdf or eps.
func WritePlot(w io.Writer, format string, scene Scene, opts Options) error {
	p, err := Plot(scene, opts)
	if err != nil {
		return err
	}
	size := vg.Points(opts.Width)
	wt, err := p.WriterTo(size, size, format)
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}
