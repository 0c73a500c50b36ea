package geom

import "fmt"

// InvalidGeometryError reports a malformed footprint ring.
type InvalidGeometryError struct {
	Reason string
}

func (e *InvalidGeometryError) Error() string {
	return fmt.Sprintf("invalid geometry: %s", e.Reason)
}

// Footprint is a building footprint: either a single ring or several
// disjoint parts. The variant is explicit so callers never branch on
// runtime types.
type Footprint struct {
	parts []Ring
}

// SinglePart creates a footprint from one ring.
func SinglePart(r Ring) Footprint {
	return Footprint{parts: []Ring{r.Normalize()}}
}

// MultiPart creates a footprint from several rings.
func MultiPart(rings ...Ring) Footprint {
	parts := make([]Ring, len(rings))
	for i, r := range rings {
		parts[i] = r.Normalize()
	}
	return Footprint{parts: parts}
}

// Parts returns the footprint's rings in input order.
func (f Footprint) Parts() []Ring {
	return f.parts
}

// IsMulti returns true if the footprint has more than one part.
func (f Footprint) IsMulti() bool {
	return len(f.parts) > 1
}

// Area returns the total footprint area, summed over all parts.
func (f Footprint) Area() float64 {
	total := 0.0
	for _, r := range f.parts {
		total += r.Area()
	}
	return total
}

// Largest resolves a multi-part footprint to its largest part by area.
// Single-part footprints return their only ring. This is the canonical
// resolution used for orientation, vertex and centroid derivation.
func (f Footprint) Largest() Ring {
	if len(f.parts) == 0 {
		return Ring{}
	}
	best := f.parts[0]
	bestArea := best.Area()
	for _, r := range f.parts[1:] {
		if a := r.Area(); a > bestArea {
			best = r
			bestArea = a
		}
	}
	return best
}

// Centroid returns the arithmetic centroid of the largest part.
func (f Footprint) Centroid() Point2D {
	return f.Largest().Centroid()
}

// Orientation returns the longest-edge azimuth of the largest part,
// in degrees [0, 360).
func (f Footprint) Orientation() float64 {
	return f.Largest().LongestEdgeOrientation()
}

// VertexCount returns the number of vertices of the largest part,
// excluding any closing vertex.
func (f Footprint) VertexCount() int {
	return f.Largest().Len()
}

// Validate checks every part of the footprint.
func (f Footprint) Validate() error {
	if len(f.parts) == 0 {
		return &InvalidGeometryError{Reason: "footprint has no parts"}
	}
	for i, r := range f.parts {
		if err := r.Validate(); err != nil {
			if len(f.parts) > 1 {
				return &InvalidGeometryError{
					Reason: fmt.Sprintf("part %d: %v", i, err),
				}
			}
			return err
		}
	}
	return nil
}
