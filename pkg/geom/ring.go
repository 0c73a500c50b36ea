package geom

import "math"

// Ring is a closed polygon ring defined by its vertices in order.
// The closing vertex is implicit: a ring whose last vertex repeats the
// first is normalized on validation, not required.
type Ring struct {
	Vertices []Point2D
}

// NewRing creates a ring from a list of vertices.
func NewRing(pts ...Point2D) Ring {
	return Ring{Vertices: pts}
}

// Len returns the number of vertices.
func (r Ring) Len() int {
	return len(r.Vertices)
}

// IsEmpty returns true if the ring has fewer than 3 vertices.
func (r Ring) IsEmpty() bool {
	return len(r.Vertices) < 3
}

// SignedArea returns the signed area using the shoelace formula.
// Positive for counterclockwise winding, negative for clockwise.
func (r Ring) SignedArea() float64 {
	n := len(r.Vertices)
	if n < 3 {
		return 0
	}
	area := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += r.Vertices[i].X * r.Vertices[j].Y
		area -= r.Vertices[j].X * r.Vertices[i].Y
	}
	return area / 2
}

// Area returns the unsigned area of the ring in m². Zero-area rings
// (collinear vertices) are legal and simply return 0.
func (r Ring) Area() float64 {
	return math.Abs(r.SignedArea())
}

// Centroid returns the arithmetic mean of the ring's vertices.
func (r Ring) Centroid() Point2D {
	n := len(r.Vertices)
	if n == 0 {
		return Point2D{}
	}
	sum := Point2D{}
	for _, v := range r.Vertices {
		sum = sum.Add(v)
	}
	return sum.Scale(1.0 / float64(n))
}

// LongestEdgeOrientation returns the azimuth of the ring's longest edge
// in degrees [0, 360), where 0 is north and 90 is east. Degenerate
// rings return 0.
func (r Ring) LongestEdgeOrientation() float64 {
	n := len(r.Vertices)
	if n < 2 {
		return 0
	}
	maxLen := 0.0
	var longest Point2D
	found := false
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		edge := r.Vertices[j].Sub(r.Vertices[i])
		if l := edge.Length(); l > maxLen {
			maxLen = l
			longest = edge
			found = true
		}
	}
	if !found {
		return 0
	}
	return longest.Azimuth()
}

// Perimeter returns the total perimeter length.
func (r Ring) Perimeter() float64 {
	n := len(r.Vertices)
	if n < 2 {
		return 0
	}
	total := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		total += r.Vertices[i].Distance(r.Vertices[j])
	}
	return total
}

// BoundingBox returns the axis-aligned bounding box as (min, max).
func (r Ring) BoundingBox() (Point2D, Point2D) {
	if len(r.Vertices) == 0 {
		return Point2D{}, Point2D{}
	}
	minP := r.Vertices[0]
	maxP := r.Vertices[0]
	for _, v := range r.Vertices[1:] {
		if v.X < minP.X {
			minP.X = v.X
		}
		if v.Y < minP.Y {
			minP.Y = v.Y
		}
		if v.X > maxP.X {
			maxP.X = v.X
		}
		if v.Y > maxP.Y {
			maxP.Y = v.Y
		}
	}
	return minP, maxP
}

// Normalize returns the ring with an explicit closing vertex removed,
// so downstream vertex counts do not double-count it.
func (r Ring) Normalize() Ring {
	n := len(r.Vertices)
	if n >= 2 && r.Vertices[0] == r.Vertices[n-1] {
		return Ring{Vertices: r.Vertices[:n-1]}
	}
	return r
}

// Validate checks that the ring describes a usable footprint part.
// Zero-area rings are accepted; rings with fewer than 3 distinct
// vertices are not.
func (r Ring) Validate() error {
	norm := r.Normalize()
	distinct := make(map[Point2D]struct{}, len(norm.Vertices))
	for _, v := range norm.Vertices {
		distinct[v] = struct{}{}
	}
	if len(distinct) < 3 {
		return &InvalidGeometryError{
			Reason: "ring needs at least 3 distinct vertices",
		}
	}
	return nil
}
