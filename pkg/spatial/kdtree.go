// Package spatial provides a static 2D point index over building
// centroids. The index is an immutable snapshot: it is built once per
// analysis run and rebuilt from scratch whenever the building set
// changes. Concurrent readers need no synchronization.
package spatial

import (
	"container/heap"
	"fmt"
	"sort"

	"github.com/StefanVerhoef/solarroof/pkg/building"
	"github.com/StefanVerhoef/solarroof/pkg/geom"
)

// SelfMatchEpsilon is the distance below which a range-query result is
// considered a self-match of the query centroid and excluded.
const SelfMatchEpsilon = 1.0

// OutOfRangeQueryError reports a query parameter outside its legal range.
type OutOfRangeQueryError struct {
	Param string
	Value float64
}

func (e *OutOfRangeQueryError) Error() string {
	return fmt.Sprintf("query parameter %s out of range: %g", e.Param, e.Value)
}

// Match pairs a building with its centroid distance to the query point.
type Match struct {
	Building *building.Building
	Distance float64
}

// node is one k-d tree node. Children partition the point set around
// the node's coordinate on the axis for its depth (x at even depths,
// y at odd).
type node struct {
	idx         int // position in the coordinate array
	left, right *node
}

// Index is a balanced point-partitioning tree (k-d tree) over building
// centroids. Construction is O(N log N); nearest and range queries are
// O(log N + m) for m results.
type Index struct {
	buildings []*building.Building
	coords    []geom.Point2D
	root      *node
}

// Build computes each building's centroid and constructs the index.
func Build(buildings []*building.Building) *Index {
	ix := &Index{
		buildings: buildings,
		coords:    make([]geom.Point2D, len(buildings)),
	}
	order := make([]int, len(buildings))
	for i, b := range buildings {
		ix.coords[i] = b.Centroid()
		order[i] = i
	}
	ix.root = ix.build(order, 0)
	return ix
}

// Len returns the number of indexed buildings.
func (ix *Index) Len() int {
	return len(ix.buildings)
}

// build recursively median-splits the point set, alternating axes.
// The median is found by in-place quickselect so construction stays
// O(N log N) overall.
func (ix *Index) build(order []int, depth int) *node {
	if len(order) == 0 {
		return nil
	}
	axis := depth % 2
	mid := len(order) / 2
	ix.selectNth(order, mid, axis)
	return &node{
		idx:   order[mid],
		left:  ix.build(order[:mid], depth+1),
		right: ix.build(order[mid+1:], depth+1),
	}
}

// selectNth partially orders the slice so that element n is in its
// sorted position along the given axis.
func (ix *Index) selectNth(order []int, n, axis int) {
	lo, hi := 0, len(order)-1
	for lo < hi {
		p := ix.partition(order, lo, hi, (lo+hi)/2, axis)
		switch {
		case p == n:
			return
		case n < p:
			hi = p - 1
		default:
			lo = p + 1
		}
	}
}

func (ix *Index) partition(order []int, lo, hi, pivot, axis int) int {
	pv := ix.axisValue(order[pivot], axis)
	order[pivot], order[hi] = order[hi], order[pivot]
	i := lo
	for j := lo; j < hi; j++ {
		if ix.axisValue(order[j], axis) < pv {
			order[i], order[j] = order[j], order[i]
			i++
		}
	}
	order[i], order[hi] = order[hi], order[i]
	return i
}

func (ix *Index) axisValue(idx, axis int) float64 {
	if axis == 0 {
		return ix.coords[idx].X
	}
	return ix.coords[idx].Y
}

// Nearest returns the k buildings closest to the point, ascending by
// distance. Ties are broken by original insertion order. k larger than
// the population is clamped; k <= 0 is an OutOfRangeQueryError. An
// empty index answers any query with an empty result.
func (ix *Index) Nearest(p geom.Point2D, k int) ([]Match, error) {
	if ix.Len() == 0 {
		return nil, nil
	}
	if k <= 0 {
		return nil, &OutOfRangeQueryError{Param: "k", Value: float64(k)}
	}
	if k > ix.Len() {
		k = ix.Len()
	}

	best := &candidateHeap{}
	ix.nearest(ix.root, p, k, 0, best)
	return ix.toMatches(*best), nil
}

// nearest walks the tree keeping the k best candidates in a bounded
// max-heap, pruning subtrees whose splitting plane is farther than the
// current worst candidate.
func (ix *Index) nearest(n *node, p geom.Point2D, k, depth int, best *candidateHeap) {
	if n == nil {
		return
	}
	d := p.Distance(ix.coords[n.idx])
	cand := candidate{idx: n.idx, dist: d}
	if best.Len() < k {
		heap.Push(best, cand)
	} else if cand.closer((*best)[0]) {
		(*best)[0] = cand
		heap.Fix(best, 0)
	}

	axis := depth % 2
	var key, split float64
	if axis == 0 {
		key, split = p.X, ix.coords[n.idx].X
	} else {
		key, split = p.Y, ix.coords[n.idx].Y
	}

	first, second := n.left, n.right
	if key > split {
		first, second = n.right, n.left
	}
	ix.nearest(first, p, k, depth+1, best)

	planeDist := key - split
	if planeDist < 0 {
		planeDist = -planeDist
	}
	if best.Len() < k || planeDist <= (*best)[0].dist {
		ix.nearest(second, p, k, depth+1, best)
	}
}

// Within returns all buildings whose centroid lies within radius of
// the point, ascending by distance. Results closer than
// SelfMatchEpsilon are treated as the query building itself and
// excluded. A negative radius is an OutOfRangeQueryError.
func (ix *Index) Within(p geom.Point2D, radius float64) ([]Match, error) {
	if ix.Len() == 0 {
		return nil, nil
	}
	if radius < 0 {
		return nil, &OutOfRangeQueryError{Param: "radius", Value: radius}
	}

	var found []candidate
	ix.within(ix.root, p, radius, 0, &found)
	return ix.toMatches(found), nil
}

func (ix *Index) within(n *node, p geom.Point2D, radius float64, depth int, out *[]candidate) {
	if n == nil {
		return
	}
	d := p.Distance(ix.coords[n.idx])
	if d <= radius && d >= SelfMatchEpsilon {
		*out = append(*out, candidate{idx: n.idx, dist: d})
	}

	axis := depth % 2
	var key, split float64
	if axis == 0 {
		key, split = p.X, ix.coords[n.idx].X
	} else {
		key, split = p.Y, ix.coords[n.idx].Y
	}

	if key-radius <= split {
		ix.within(n.left, p, radius, depth+1, out)
	}
	if key+radius >= split {
		ix.within(n.right, p, radius, depth+1, out)
	}
}

// toMatches orders candidates ascending by distance, ties by insertion
// order, and resolves them to building records.
func (ix *Index) toMatches(found []candidate) []Match {
	sort.Slice(found, func(i, j int) bool {
		return found[i].closer(found[j])
	})
	matches := make([]Match, len(found))
	for i, c := range found {
		matches[i] = Match{Building: ix.buildings[c.idx], Distance: c.dist}
	}
	return matches
}

// candidate is a heap entry during nearest-neighbor search.
type candidate struct {
	idx  int
	dist float64
}

// closer reports whether c should replace o among the k best, using
// insertion order to break distance ties.
func (c candidate) closer(o candidate) bool {
	if c.dist != o.dist {
		return c.dist < o.dist
	}
	return c.idx < o.idx
}

// candidateHeap is a max-heap on (distance, insertion order) so the
// worst retained candidate sits at the root.
type candidateHeap []candidate

func (h candidateHeap) Len() int           { return len(h) }
func (h candidateHeap) Less(i, j int) bool { return h[j].closer(h[i]) }
func (h candidateHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *candidateHeap) Push(x any)        { *h = append(*h, x.(candidate)) }

func (h *candidateHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
