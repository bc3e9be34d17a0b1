package render

import (
	"io"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// GeoJSON returns the scene as a feature collection in scene coordinates. Curves are flattened into line strings.
func GeoJSON(scene Scene, opts Options) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for i, cv := range scene.Curves {
		ls := orb.LineString{}
		for _, p := range cv.Flatten(opts.Segments) {
			ls = append(ls, orb.Point{p.X, p.Y})
		}
		f := geojson.NewFeature(ls)
		f.Properties["index"] = i
		f.Properties["curve"] = cv.Curve().ID()
		f.Properties["degree"] = cv.Curve().Degree()
		f.Properties["directed_right"] = cv.IsDirectedRight()
		f.Properties["vertical"] = cv.IsVertical()
		f.Properties["stroke"] = hexColor(Palette[i%len(Palette)])
		fc.Append(f)
	}
	for i, p := range scene.Points {
		x, y := p.Pos()
		f := geojson.NewFeature(orb.Point{x, y})
		f.Properties["index"] = i
		f.Properties["pending"] = p.IsPending()
		fc.Append(f)
	}
	return fc
}

// WriteGeoJSON writes the scene as GeoJSON.
func WriteGeoJSON(w io.Writer, scene Scene, opts Options) error {
	b, err := GeoJSON(scene, opts).MarshalJSON()
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}
