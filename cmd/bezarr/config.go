package main

import (
	"fmt"
	"image/color"
	"math/big"

	"github.com/BurntSushi/toml"
	"github.com/tdewolff/bezier/arrangement"
	"github.com/tdewolff/bezier/bounding"
	"github.com/tdewolff/bezier/render"
)

// Config is the configuration file format.
type Config struct {
	Bounding struct {
		MaxDepth  int    `toml:"max_depth"`
		Tolerance string `toml:"tolerance"` // rational such as 1/1024
	} `toml:"bounding"`
	Arrangement struct {
		Workers int `toml:"workers"`
	} `toml:"arrangement"`
	Render struct {
		Margin      float64  `toml:"margin"`
		StrokeWidth float64  `toml:"stroke_width"`
		PointRadius float64  `toml:"point_radius"`
		Precision   int      `toml:"precision"`
		Palette     []string `toml:"palette"` // colors as #rrggbb
	} `toml:"render"`
}

// options are the options of all packages after applying the configuration file.
type options struct {
	bounding    bounding.Options
	arrangement arrangement.Options
	render      render.Options
}

func defaultOptions() options {
	return options{
		bounding:    bounding.DefaultOptions,
		arrangement: arrangement.DefaultOptions,
		render:      render.DefaultOptions,
	}
}

// loadConfig applies the configuration file to the options.
func loadConfig(filename string, opts *options) error {
	cfg := Config{}
	if _, err := toml.DecodeFile(filename, &cfg); err != nil {
		return err
	}

	if cfg.Bounding.MaxDepth != 0 {
		opts.bounding.MaxDepth = cfg.Bounding.MaxDepth
	}
	if cfg.Bounding.Tolerance != "" {
		tol, ok := new(big.Rat).SetString(cfg.Bounding.Tolerance)
		if !ok || tol.Sign() <= 0 {
			return fmt.Errorf("bad bounding tolerance: %s", cfg.Bounding.Tolerance)
		}
		opts.bounding.Tolerance = tol
	}
	if cfg.Arrangement.Workers != 0 {
		opts.arrangement.Workers = cfg.Arrangement.Workers
	}
	if cfg.Render.Margin != 0.0 {
		opts.render.Margin = cfg.Render.Margin
	}
	if cfg.Render.StrokeWidth != 0.0 {
		opts.render.StrokeWidth = cfg.Render.StrokeWidth
	}
	if cfg.Render.PointRadius != 0.0 {
		opts.render.PointRadius = cfg.Render.PointRadius
	}
	if cfg.Render.Precision != 0 {
		render.Precision = cfg.Render.Precision
	}
	if 0 < len(cfg.Render.Palette) {
		palette, err := parsePalette(cfg.Render.Palette)
		if err != nil {
			return err
		}
		render.Palette = palette
	}
	return nil
}

func parsePalette(colors []string) ([]color.RGBA, error) {
	palette := make([]color.RGBA, 0, len(colors))
	for _, s := range colors {
		c, err := render.Hex(s)
		if err != nil {
			return nil, fmt.Errorf("palette: %w", err)
		}
		palette = append(palette, c)
	}
	return palette, nil
}
