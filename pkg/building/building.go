// Package building defines the building record consumed by the analysis
// engine and its ingestion from GeoJSON footprints.
package building

import (
	"fmt"

	"github.com/StefanVerhoef/solarroof/pkg/geom"
)

// DefaultHeight is the documented fallback for records without a height
// attribute, in meters.
const DefaultHeight = 10.0

// MissingFieldError reports a requested attribute that is absent from a
// building record and has no documented fallback.
type MissingFieldError struct {
	ID    string
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("building %s: missing field %q", e.ID, e.Field)
}

// Building is one ingested building footprint. Height is optional;
// HeightOrDefault applies the documented fallback.
type Building struct {
	ID        string
	Footprint geom.Footprint
	Height    *float64
}

// RoofArea returns the total footprint area in m².
func (b *Building) RoofArea() float64 {
	return b.Footprint.Area()
}

// OrientationDeg returns the longest-edge azimuth in degrees [0, 360).
func (b *Building) OrientationDeg() float64 {
	return b.Footprint.Orientation()
}

// VertexCount returns the vertex count of the footprint's largest part.
func (b *Building) VertexCount() int {
	return b.Footprint.VertexCount()
}

// Centroid returns the footprint centroid used for spatial indexing.
func (b *Building) Centroid() geom.Point2D {
	return b.Footprint.Centroid()
}

// HeightOrDefault returns the building height, falling back to
// DefaultHeight when none was ingested.
func (b *Building) HeightOrDefault() float64 {
	if b.Height == nil {
		return DefaultHeight
	}
	return *b.Height
}

// Validate checks the record's geometry and identity.
func (b *Building) Validate() error {
	if b.ID == "" {
		return &MissingFieldError{ID: "(unknown)", Field: "id"}
	}
	if err := b.Footprint.Validate(); err != nil {
		return fmt.Errorf("building %s: %w", b.ID, err)
	}
	return nil
}
