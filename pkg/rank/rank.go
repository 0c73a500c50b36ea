package rank

import (
	"container/heap"
	"math"
	"sort"
)

// Scored pairs a building with its computed suitability score.
type Scored struct {
	BuildingID string  `json:"building_id"`
	Score      float64 `json:"suitability_score"`
}

// Record is one ranked suitability result.
type Record struct {
	BuildingID string   `json:"building_id"`
	Score      float64  `json:"suitability_score"`
	Category   Category `json:"category"`
	Rank       int      `json:"rank"`
}

// Rank orders buildings by score descending and assigns dense ranks
// 1..N. The sort is stable: equal scores keep their original relative
// order. The input slice is not modified.
func Rank(scored []Scored) []Record {
	ordered := make([]Scored, len(scored))
	copy(ordered, scored)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Score > ordered[j].Score
	})

	records := make([]Record, len(ordered))
	for i, s := range ordered {
		records[i] = Record{
			BuildingID: s.BuildingID,
			Score:      s.Score,
			Category:   Classify(s.Score),
			Rank:       i + 1,
		}
	}
	return records
}

// TopK returns the k highest-scoring entries in descending order,
// equivalent to Rank(scored)[:k] by score multiset. A bounded min-heap
// keeps the selection O(N log k) instead of sorting everything.
// k <= 0 or empty input yields an empty result; k > N returns all N.
func TopK(scored []Scored, k int) []Record {
	if k <= 0 || len(scored) == 0 {
		return nil
	}
	if k > len(scored) {
		k = len(scored)
	}

	// Min-heap of the k best seen so far; the weakest retained entry
	// sits at the root. Position breaks score ties so the selection
	// matches the stable full sort.
	h := &boundedHeap{}
	for pos, s := range scored {
		e := entry{Scored: s, pos: pos}
		if h.Len() < k {
			heap.Push(h, e)
		} else if (*h)[0].weaker(e) {
			(*h)[0] = e
			heap.Fix(h, 0)
		}
	}

	entries := make([]entry, h.Len())
	copy(entries, *h)
	sort.Slice(entries, func(i, j int) bool {
		return entries[j].weaker(entries[i])
	})

	records := make([]Record, len(entries))
	for i, e := range entries {
		records[i] = Record{
			BuildingID: e.BuildingID,
			Score:      e.Score,
			Category:   Classify(e.Score),
			Rank:       i + 1,
		}
	}
	return records
}

// ClosestToTarget finds the entry whose score is nearest the target in
// a slice sorted ascending by score. It binary-searches the slice,
// tracking the minimum absolute difference seen while narrowing, and
// short-circuits on an exact match. ok is false for empty input.
func ClosestToTarget(sortedByScore []Scored, target float64) (Scored, bool) {
	if len(sortedByScore) == 0 {
		return Scored{}, false
	}

	left, right := 0, len(sortedByScore)-1
	closest := 0
	minDiff := math.Inf(1)

	for left <= right {
		mid := (left + right) / 2
		diff := math.Abs(sortedByScore[mid].Score - target)
		if diff < minDiff {
			minDiff = diff
			closest = mid
		}
		switch {
		case sortedByScore[mid].Score < target:
			left = mid + 1
		case sortedByScore[mid].Score > target:
			right = mid - 1
		default:
			return sortedByScore[mid], true
		}
	}
	return sortedByScore[closest], true
}

// entry is a heap element carrying the original position for stable
// tie-breaking.
type entry struct {
	Scored
	pos int
}

// weaker reports whether e loses to o: lower score, or equal score but
// later original position.
func (e entry) weaker(o entry) bool {
	if e.Score != o.Score {
		return e.Score < o.Score
	}
	return e.pos > o.pos
}

// boundedHeap is a min-heap on (score, reversed position).
type boundedHeap []entry

func (h boundedHeap) Len() int           { return len(h) }
func (h boundedHeap) Less(i, j int) bool { return h[i].weaker(h[j]) }
func (h boundedHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *boundedHeap) Push(x any)        { *h = append(*h, x.(entry)) }

func (h *boundedHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
