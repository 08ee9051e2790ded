package tangential

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// ReadGeoJSON reads the polygons of a GeoJSON geometry, feature or feature collection. Multi polygons are split into their polygons and other geometries are skipped.
func ReadGeoJSON(r io.Reader) ([]orb.Polygon, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("geojson: %w", err)
	}

	geoms := []orb.Geometry{}
	switch head.Type {
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return nil, fmt.Errorf("geojson: %w", err)
		}
		for _, f := range fc.Features {
			geoms = append(geoms, f.Geometry)
		}
	case "Feature":
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return nil, fmt.Errorf("geojson: %w", err)
		}
		geoms = append(geoms, f.Geometry)
	default:
		g, err := geojson.UnmarshalGeometry(data)
		if err != nil {
			return nil, fmt.Errorf("geojson: %w", err)
		}
		geoms = append(geoms, g.Geometry())
	}

	polys := []orb.Polygon{}
	var collect func(orb.Geometry)
	collect = func(g orb.Geometry) {
		switch g := g.(type) {
		case orb.Polygon:
			if 0 < len(g) {
				polys = append(polys, g)
			}
		case orb.MultiPolygon:
			for _, poly := range g {
				collect(poly)
			}
		case orb.Collection:
			for _, h := range g {
				collect(h)
			}
		}
	}
	for _, g := range geoms {
		collect(g)
	}
	if len(polys) == 0 {
		return nil, fmt.Errorf("geojson: no polygons")
	}
	return polys, nil
}

// GeoJSON returns the path as a LineString feature. The origin of every point is stored in the properties.
func (r *Result) GeoJSON() *geojson.Feature {
	f := geojson.NewFeature(r.LineString())
	kinds := make([]string, len(r.Origins))
	nodes := make([]int, len(r.Origins))
	levels := make([]int, len(r.Origins))
	for i, o := range r.Origins {
		kinds[i] = o.Kind.String()
		nodes[i] = int(o.Node)
		levels[i] = o.Level
	}
	f.Properties["origins"] = kinds
	f.Properties["nodes"] = nodes
	f.Properties["levels"] = levels
	f.Properties["length"] = r.Length()
	if r.Tree != nil {
		f.Properties["rings"] = r.Tree.Len()
	}
	return f
}
