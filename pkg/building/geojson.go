package building

import (
	"fmt"
	"os"
	"strconv"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/StefanVerhoef/solarroof/pkg/geom"
)

// Property names looked up on ingested features. The height key list
// covers the BAG3D export alias used by the Amsterdam dataset.
var (
	idKeys     = []string{"id", "building_id", "identificatie"}
	heightKeys = []string{"height", "building_height_m", "h_dak_max"}
)

// LoadGeoJSON reads a GeoJSON FeatureCollection of building footprints.
// Malformed features are isolated: good records are returned together
// with the per-feature errors, so one bad footprint never aborts the
// batch.
func LoadGeoJSON(path string) ([]*Building, []error, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading footprints: %w", err)
	}
	return ParseGeoJSON(data)
}

// ParseGeoJSON parses a GeoJSON FeatureCollection into building records.
func ParseGeoJSON(data []byte) ([]*Building, []error, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing footprints: %w", err)
	}

	buildings := make([]*Building, 0, len(fc.Features))
	var skipped []error
	for i, f := range fc.Features {
		b, err := fromFeature(f, i)
		if err != nil {
			skipped = append(skipped, err)
			continue
		}
		buildings = append(buildings, b)
	}
	return buildings, skipped, nil
}

func fromFeature(f *geojson.Feature, index int) (*Building, error) {
	id := featureID(f, index)

	fp, err := footprintFromOrb(f.Geometry)
	if err != nil {
		return nil, fmt.Errorf("feature %s: %w", id, err)
	}

	b := &Building{ID: id, Footprint: fp}
	if h, ok := heightProperty(f.Properties); ok {
		b.Height = &h
	}

	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// featureID resolves the record id from the feature id or a known
// property, falling back to the feature's position in the collection.
func featureID(f *geojson.Feature, index int) string {
	if f.ID != nil {
		return fmt.Sprint(f.ID)
	}
	for _, key := range idKeys {
		if v, ok := f.Properties[key]; ok {
			return fmt.Sprint(v)
		}
	}
	return strconv.Itoa(index)
}

func heightProperty(props geojson.Properties) (float64, bool) {
	for _, key := range heightKeys {
		v, ok := props[key]
		if !ok {
			continue
		}
		switch h := v.(type) {
		case float64:
			return h, true
		case int:
			return float64(h), true
		case string:
			if parsed, err := strconv.ParseFloat(h, 64); err == nil {
				return parsed, true
			}
		}
	}
	return 0, false
}

// footprintFromOrb maps an orb geometry onto the explicit footprint
// variant. Only the exterior ring of each polygon part is kept; holes
// do not contribute roof surface in this model.
func footprintFromOrb(g orb.Geometry) (geom.Footprint, error) {
	switch geo := g.(type) {
	case orb.Polygon:
		if len(geo) == 0 {
			return geom.Footprint{}, &geom.InvalidGeometryError{Reason: "polygon has no rings"}
		}
		return geom.SinglePart(ringFromOrb(geo[0])), nil
	case orb.MultiPolygon:
		if len(geo) == 0 {
			return geom.Footprint{}, &geom.InvalidGeometryError{Reason: "multipolygon has no parts"}
		}
		rings := make([]geom.Ring, 0, len(geo))
		for _, part := range geo {
			if len(part) == 0 {
				continue
			}
			rings = append(rings, ringFromOrb(part[0]))
		}
		if len(rings) == 0 {
			return geom.Footprint{}, &geom.InvalidGeometryError{Reason: "multipolygon has no exterior rings"}
		}
		return geom.MultiPart(rings...), nil
	default:
		return geom.Footprint{}, &geom.InvalidGeometryError{
			Reason: fmt.Sprintf("unsupported geometry type %q", g.GeoJSONType()),
		}
	}
}

func ringFromOrb(r orb.Ring) geom.Ring {
	pts := make([]geom.Point2D, len(r))
	for i, p := range r {
		pts[i] = geom.Pt(p[0], p[1])
	}
	return geom.NewRing(pts...)
}
