package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/browser"
	"github.com/tdewolff/argp"
	"github.com/tdewolff/bezier"
	"github.com/tdewolff/bezier/arrangement"
	"github.com/tdewolff/bezier/bounding"
	"github.com/tdewolff/bezier/render"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// flags are the options shared by all commands.
type flags struct {
	Output  string `short:"o" desc:"Output file, format is derived from the extension unless set"`
	Format  string `short:"f" desc:"Output format: svg, png, geojson, pdf, eps, tif or jpg"`
	Width   int    `short:"w" default:"512" desc:"Output width in pixels"`
	Labels  bool   `short:"l" desc:"Label points by their index"`
	Open    bool   `desc:"Open the output file"`
	Workers int    `short:"j" default:"0" desc:"Number of arrangement workers, all processors if zero"`
	Config  string `short:"c" desc:"Configuration file"`
	Verbose bool   `short:"v" desc:"Verbose"`
	Input   string `index:"0" desc:"Input SVG file, path data file, or path data"`
}

type Decompose flags
type Intersect flags
type Arrange flags

func main() {
	root := argp.NewCmd(&Decompose{}, "Bezier curve decomposition, intersection and arrangement toolkit")
	root.AddCmd(&Intersect{}, "intersect", "Intersect all pairs of x-monotone sub-curves")
	root.AddCmd(&Arrange{}, "arrange", "Build the arrangement of the curves")
	root.Parse()
	root.PrintHelp()
}

func (cmd *Decompose) Run() error {
	if cmd.Input == "" {
		return argp.ShowUsage
	}
	tr, opts, curves, err := (*flags)(cmd).setup()
	if err != nil {
		return err
	}

	scene := render.Scene{}
	for _, c := range curves {
		objs := tr.MakeXMonotone(c)
		if cmd.Verbose {
			log.Printf("curve %d: %d objects\n", c.ID(), len(objs))
		}
		if cmd.Output == "" {
			fmt.Println(c)
			for _, obj := range objs {
				fmt.Println("  ", obj)
			}
		}
		scene.Add(render.FromObjects(objs))
	}
	if cmd.Output == "" {
		return nil
	}
	return (*flags)(cmd).write(scene, opts.render)
}

func (cmd *Intersect) Run() error {
	if cmd.Input == "" {
		return argp.ShowUsage
	}
	tr, opts, curves, err := (*flags)(cmd).setup()
	if err != nil {
		return err
	}

	cvs := []bezier.XMonotoneCurve{}
	for _, c := range curves {
		for _, obj := range tr.MakeXMonotone(c) {
			if obj.Kind == bezier.CurveObject {
				cvs = append(cvs, obj.Curve)
			}
		}
	}

	scene := render.Scene{Curves: cvs}
	for i := range cvs {
		for j := i + 1; j < len(cvs); j++ {
			ixs := tr.Intersect(cvs[i], cvs[j])
			if cmd.Output == "" {
				for _, ix := range ixs {
					fmt.Printf("%d %d: %v\n", i, j, ix)
				}
			}
			scene.Add(render.FromIntersections(ixs))
		}
	}
	if cmd.Verbose {
		tangencies, intersections := tr.Cache().Len()
		log.Printf("%d sub-curves, %d tangency and %d intersection cache entries\n", len(cvs), tangencies, intersections)
	}
	if cmd.Output == "" {
		return nil
	}
	return (*flags)(cmd).write(scene, opts.render)
}

func (cmd *Arrange) Run() error {
	if cmd.Input == "" {
		return argp.ShowUsage
	}
	tr, opts, curves, err := (*flags)(cmd).setup()
	if err != nil {
		return err
	}

	arr, err := arrangement.Build(context.Background(), tr, curves, opts.arrangement)
	if err != nil {
		return err
	}
	if cmd.Verbose {
		log.Printf("%d sub-curves, %d candidate pairs, %d intersections\n", arr.Stats.SubCurves, arr.Stats.Candidates, arr.Stats.Intersections)
	}
	if cmd.Output == "" {
		fmt.Print(arr)
		return nil
	}
	return (*flags)(cmd).write(render.FromArrangement(arr), opts.render)
}

////////////////////////////////////////////////////////////////

// setup loads the configuration, applies the flags and reads the input curves.
func (f *flags) setup() (bezier.Traits, options, []*bezier.Curve, error) {
	opts := defaultOptions()
	if f.Config != "" {
		if err := loadConfig(f.Config, &opts); err != nil {
			return bezier.Traits{}, opts, nil, fmt.Errorf("%s: %w", f.Config, err)
		}
	}
	if f.Workers != 0 {
		opts.arrangement.Workers = f.Workers
	}
	opts.render.Width = float64(f.Width)
	opts.render.Labels = f.Labels
	tr := bezier.New(bezier.WithBoundingTraits(bounding.New(opts.bounding)))

	curves, err := readInput(f.Input)
	if err != nil {
		return tr, opts, nil, err
	}
	if f.Verbose {
		log.Printf("read %d curves\n", len(curves))
	}
	return tr, opts, curves, nil
}

// readInput reads curves from an SVG file, from a file of path data, or from path data passed as the argument.
func readInput(input string) ([]*bezier.Curve, error) {
	f, err := os.Open(input)
	if os.IsNotExist(err) {
		return bezier.ParseSVGPath(input)
	} else if err != nil {
		return nil, err
	}
	defer f.Close()

	// strip a byte order mark and convert UTF-16 to UTF-8
	r := transform.NewReader(f, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	if strings.EqualFold(filepath.Ext(input), ".svg") {
		return bezier.ReadSVG(r)
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return bezier.ParseSVGPath(string(bytes.TrimSpace(b)))
}

func outputFormat(filename, format string) string {
	if format != "" {
		return strings.ToLower(format)
	}
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
}

// write writes the scene to the output file and optionally opens it.
func (f *flags) write(scene render.Scene, opts render.Options) error {
	w, err := os.Create(f.Output)
	if err != nil {
		return err
	}

	switch format := outputFormat(f.Output, f.Format); format {
	case "svg":
		err = render.SVG(w, scene, opts)
	case "png":
		err = render.PNG(w, scene, opts)
	case "geojson", "json":
		err = render.WriteGeoJSON(w, scene, opts)
	case "pdf", "eps", "tif", "tiff", "jpg", "jpeg":
		err = render.WritePlot(w, format, scene, opts)
	default:
		err = fmt.Errorf("unknown output format: %s", format)
	}
	if err != nil {
		w.Close()
		return err
	} else if err := w.Close(); err != nil {
		return err
	}

	if f.Open {
		return browser.OpenFile(f.Output)
	}
	return nil
}
