package main

import (
	"image/color"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tdewolff/bezier/render"
	"github.com/tdewolff/test"
)

func TestLoadConfig(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "bezarr.toml")
	err := os.WriteFile(filename, []byte(`[bounding]
max_depth = 10
tolerance = "1/64"

[arrangement]
workers = 2

[render]
margin = 8.0
`), 0644)
	test.Error(t, err)

	opts := defaultOptions()
	test.Error(t, loadConfig(filename, &opts))
	test.T(t, opts.bounding.MaxDepth, 10)
	test.That(t, opts.bounding.Tolerance.Cmp(big.NewRat(1, 64)) == 0)
	test.T(t, opts.arrangement.Workers, 2)
	test.Float(t, opts.render.Margin, 8.0)
	test.Float(t, opts.render.StrokeWidth, render.DefaultOptions.StrokeWidth)

	err = os.WriteFile(filename, []byte("[bounding]\ntolerance = \"-1\"\n"), 0644)
	test.Error(t, err)
	test.That(t, loadConfig(filename, &opts) != nil)
}

func TestParsePalette(t *testing.T) {
	palette, err := parsePalette([]string{"#ff0000", "00f"})
	test.Error(t, err)
	test.T(t, palette, []color.RGBA{{0xff, 0x00, 0x00, 0xff}, {0x00, 0x00, 0xff, 0xff}})

	_, err = parsePalette([]string{"#ff0000", "blue"})
	test.That(t, err != nil)
}

func TestReadInput(t *testing.T) {
	curves, err := readInput("M0 0L1 1Q2 2 3 0")
	test.Error(t, err)
	test.T(t, len(curves), 2)

	dir := t.TempDir()
	filename := filepath.Join(dir, "path.txt")
	test.Error(t, os.WriteFile(filename, []byte("\xef\xbb\xbfM0 0C1 1 2 1 3 0\n"), 0644))
	curves, err = readInput(filename)
	test.Error(t, err)
	test.T(t, len(curves), 1)
	test.T(t, curves[0].Degree(), 3)

	filename = filepath.Join(dir, "image.svg")
	test.Error(t, os.WriteFile(filename, []byte(`<svg xmlns="http://www.w3.org/2000/svg"><line x1="0" y1="0" x2="1" y2="1"/><path d="M0 1L1 0"/></svg>`), 0644))
	curves, err = readInput(filename)
	test.Error(t, err)
	test.T(t, len(curves), 2)
}

func TestOutputFormat(t *testing.T) {
	test.String(t, outputFormat("out.SVG", ""), "svg")
	test.String(t, outputFormat("out.json", ""), "json")
	test.String(t, outputFormat("out", "PDF"), "pdf")
}

func TestFlags(t *testing.T) {
	f := &flags{Input: "M0 0L2 2M0 2L2 0", Width: 100, Workers: 3, Labels: true}
	_, opts, curves, err := f.setup()
	test.Error(t, err)
	test.T(t, len(curves), 2)
	test.T(t, opts.arrangement.Workers, 3)
	test.Float(t, opts.render.Width, 100.0)
	test.That(t, opts.render.Labels)

	cmd := (*Arrange)(f)
	cmd.Output = filepath.Join(t.TempDir(), "out.svg")
	test.Error(t, cmd.Run())
	b, err := os.ReadFile(cmd.Output)
	test.Error(t, err)
	test.That(t, strings.Contains(string(b), "<svg"))

	f.Format = "bmp"
	test.That(t, f.write(render.Scene{}, opts.render) != nil)
}
