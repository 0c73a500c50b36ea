package spatial

import (
	"errors"
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/StefanVerhoef/solarroof/pkg/building"
	"github.com/StefanVerhoef/solarroof/pkg/geom"
)

const tolerance = 0.01

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) < tol
}

// squareAt returns a 1x1 building whose centroid is (x+0.5, y+0.5).
func squareAt(id string, x, y float64) *building.Building {
	return &building.Building{
		ID: id,
		Footprint: geom.SinglePart(geom.NewRing(
			geom.Pt(x, y), geom.Pt(x+1, y), geom.Pt(x+1, y+1), geom.Pt(x, y+1),
		)),
	}
}

func grid(n int) []*building.Building {
	var bs []*building.Building
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			bs = append(bs, squareAt(
				string(rune('a'+i))+string(rune('a'+j)),
				float64(i*10), float64(j*10),
			))
		}
	}
	return bs
}

func TestNearestOrdering(t *testing.T) {
	ix := Build(grid(4))
	query := geom.Pt(0, 0)

	matches, err := ix.Nearest(query, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 5 {
		t.Fatalf("expected 5 matches, got %d", len(matches))
	}
	for i := 1; i < len(matches); i++ {
		if matches[i].Distance < matches[i-1].Distance {
			t.Errorf("matches not ascending at %d: %f < %f",
				i, matches[i].Distance, matches[i-1].Distance)
		}
	}
	if matches[0].Building.ID != "aa" {
		t.Errorf("expected nearest building aa, got %s", matches[0].Building.ID)
	}
}

func TestNearestMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	var bs []*building.Building
	for i := 0; i < 200; i++ {
		bs = append(bs, squareAt(
			"b"+string(rune('0'+i/100))+string(rune('0'+(i/10)%10))+string(rune('0'+i%10)),
			rng.Float64()*1000, rng.Float64()*1000,
		))
	}
	ix := Build(bs)
	query := geom.Pt(500, 500)

	matches, err := ix.Nearest(query, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	type pair struct {
		id   string
		dist float64
	}
	brute := make([]pair, len(bs))
	for i, b := range bs {
		brute[i] = pair{b.ID, query.Distance(b.Centroid())}
	}
	sort.Slice(brute, func(i, j int) bool { return brute[i].dist < brute[j].dist })

	for i, m := range matches {
		if m.Building.ID != brute[i].id {
			t.Errorf("rank %d: expected %s (%.3f), got %s (%.3f)",
				i, brute[i].id, brute[i].dist, m.Building.ID, m.Distance)
		}
	}
}

func TestNearestClampsK(t *testing.T) {
	ix := Build(grid(2))
	matches, err := ix.Nearest(geom.Pt(0, 0), 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 4 {
		t.Errorf("expected k clamped to 4, got %d", len(matches))
	}
}

func TestNearestRejectsNonPositiveK(t *testing.T) {
	ix := Build(grid(2))
	var oerr *OutOfRangeQueryError
	if _, err := ix.Nearest(geom.Pt(0, 0), 0); !errors.As(err, &oerr) {
		t.Errorf("expected OutOfRangeQueryError for k=0, got %v", err)
	}
	if _, err := ix.Nearest(geom.Pt(0, 0), -3); !errors.As(err, &oerr) {
		t.Errorf("expected OutOfRangeQueryError for k=-3, got %v", err)
	}
}

func TestWithinExactSubset(t *testing.T) {
	bs := grid(5)
	ix := Build(bs)
	query := geom.Pt(-10, -10)

	for _, radius := range []float64{5, 25, 40, 80} {
		matches, err := ix.Within(query, radius)
		if err != nil {
			t.Fatalf("radius %f: unexpected error: %v", radius, err)
		}
		want := 0
		for _, b := range bs {
			d := query.Distance(b.Centroid())
			if d <= radius && d >= SelfMatchEpsilon {
				want++
			}
		}
		if len(matches) != want {
			t.Errorf("radius %f: expected %d matches, got %d", radius, want, len(matches))
		}
		for _, m := range matches {
			if m.Distance > radius {
				t.Errorf("radius %f: match at distance %f outside radius", radius, m.Distance)
			}
		}
	}
}

func TestWithinMonotoneInRadius(t *testing.T) {
	ix := Build(grid(5))
	query := geom.Pt(17, 23)

	small, _ := ix.Within(query, 20)
	large, _ := ix.Within(query, 45)
	if len(small) > len(large) {
		t.Fatalf("result for r=20 (%d) larger than for r=45 (%d)", len(small), len(large))
	}
	ids := make(map[string]bool)
	for _, m := range large {
		ids[m.Building.ID] = true
	}
	for _, m := range small {
		if !ids[m.Building.ID] {
			t.Errorf("building %s in r=20 result but not r=45", m.Building.ID)
		}
	}
}

func TestWithinExcludesSelfMatch(t *testing.T) {
	bs := []*building.Building{
		squareAt("self", 0, 0),
		squareAt("near", 20, 0),
	}
	ix := Build(bs)

	matches, err := ix.Within(bs[0].Centroid(), 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 1 || matches[0].Building.ID != "near" {
		t.Fatalf("expected only the neighbor, got %d matches", len(matches))
	}
	if !approxEqual(matches[0].Distance, 20, tolerance) {
		t.Errorf("expected neighbor distance 20, got %f", matches[0].Distance)
	}
}

func TestWithinRejectsNegativeRadius(t *testing.T) {
	ix := Build(grid(2))
	var oerr *OutOfRangeQueryError
	if _, err := ix.Within(geom.Pt(0, 0), -1); !errors.As(err, &oerr) {
		t.Errorf("expected OutOfRangeQueryError, got %v", err)
	}
}

func TestEmptyIndexNeverErrors(t *testing.T) {
	ix := Build(nil)

	matches, err := ix.Nearest(geom.Pt(0, 0), -5)
	if err != nil || len(matches) != 0 {
		t.Errorf("empty index Nearest: expected empty result and nil error, got %v, %v", matches, err)
	}
	matches, err = ix.Within(geom.Pt(0, 0), -5)
	if err != nil || len(matches) != 0 {
		t.Errorf("empty index Within: expected empty result and nil error, got %v, %v", matches, err)
	}
}
