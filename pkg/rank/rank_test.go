package rank

import (
	"errors"
	"math"
	"sort"
	"testing"
)

const tolerance = 0.01

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) < tol
}

// --- Score tests ---

func TestScoreModerateScenario(t *testing.T) {
	// 100 m² roof, 18000 kWh, unshaded, due south:
	// (0.2*0.2 + 0.4*0.36 + 0.2*1 + 0.2*1) * 100 = 58.4
	got, err := Score(100, 18000, 0.0, 180, DefaultWeights())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !approxEqual(got, 58.4, tolerance) {
		t.Errorf("expected score 58.4, got %f", got)
	}
	if Classify(got) != Moderate {
		t.Errorf("expected Moderate, got %s", Classify(got))
	}
}

func TestScorePerfectBuilding(t *testing.T) {
	got, err := Score(500, 50000, 0, 180, DefaultWeights())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !approxEqual(got, 100, tolerance) {
		t.Errorf("expected score 100, got %f", got)
	}
}

func TestScoreSaturation(t *testing.T) {
	base, _ := Score(500, 50000, 0, 180, DefaultWeights())
	over, _ := Score(5000, 500000, 0, 180, DefaultWeights())
	if !approxEqual(base, over, tolerance) {
		t.Errorf("area/energy should saturate: %f vs %f", base, over)
	}
}

func TestScoreOrientationFalloff(t *testing.T) {
	south, _ := Score(100, 18000, 0, 180, DefaultWeights())
	east, _ := Score(100, 18000, 0, 90, DefaultWeights())
	north, _ := Score(100, 18000, 0, 0, DefaultWeights())
	if !(south > east && east > north) {
		t.Errorf("expected south > east > north, got %f, %f, %f", south, east, north)
	}
	// Due north loses the entire orientation contribution.
	if !approxEqual(south-north, 20, tolerance) {
		t.Errorf("expected 20-point orientation spread, got %f", south-north)
	}
}

func TestScoreRejectsInvalidShading(t *testing.T) {
	var perr *InvalidParameterError
	for _, bad := range []float64{-0.1, 1.1, math.NaN()} {
		if _, err := Score(100, 18000, bad, 180, DefaultWeights()); !errors.As(err, &perr) {
			t.Errorf("shading %f: expected InvalidParameterError, got %v", bad, err)
		}
	}
}

func TestScoreRejectsPartialWeights(t *testing.T) {
	partial := Weights{Area: 0.5, Energy: 0.5}
	var perr *InvalidParameterError
	if _, err := Score(100, 18000, 0, 180, partial); !errors.As(err, &perr) {
		t.Errorf("expected InvalidParameterError for partial weights, got %v", err)
	}
}

func TestClassifyBoundaries(t *testing.T) {
	cases := []struct {
		score float64
		want  Category
	}{
		{80.0, Excellent},
		{79.999, Good},
		{60.0, Good},
		{59.999, Moderate},
		{40.0, Moderate},
		{39.999, Poor},
		{20.0, Poor},
		{19.999, Unsuitable},
		{0, Unsuitable},
		{100, Excellent},
	}
	for _, c := range cases {
		if got := Classify(c.score); got != c.want {
			t.Errorf("Classify(%f): expected %s, got %s", c.score, c.want, got)
		}
	}
}

// --- Rank tests ---

func TestRankDenseContiguous(t *testing.T) {
	scored := []Scored{
		{"a", 42}, {"b", 90}, {"c", 17}, {"d", 66}, {"e", 66},
	}
	records := Rank(scored)

	if len(records) != len(scored) {
		t.Fatalf("rank changed length: %d", len(records))
	}
	for i, r := range records {
		if r.Rank != i+1 {
			t.Errorf("position %d: expected rank %d, got %d", i, i+1, r.Rank)
		}
		if i > 0 && records[i-1].Score < r.Score {
			t.Errorf("position %d: scores not descending", i)
		}
	}
	// Stable: d before e on tied score.
	if records[1].BuildingID != "d" || records[2].BuildingID != "e" {
		t.Errorf("tie order not preserved: %s, %s", records[1].BuildingID, records[2].BuildingID)
	}
}

func TestRankInputUntouched(t *testing.T) {
	scored := []Scored{{"a", 1}, {"b", 99}}
	Rank(scored)
	if scored[0].BuildingID != "a" {
		t.Error("Rank mutated its input")
	}
}

func TestTopKMatchesRankPrefix(t *testing.T) {
	scored := []Scored{
		{"a", 55}, {"b", 91}, {"c", 13}, {"d", 77}, {"e", 77},
		{"f", 2}, {"g", 100}, {"h", 55},
	}
	full := Rank(scored)

	for k := 1; k < len(scored); k++ {
		top := TopK(scored, k)
		if len(top) != k {
			t.Fatalf("k=%d: expected %d records, got %d", k, k, len(top))
		}
		for i := range top {
			if top[i].BuildingID != full[i].BuildingID || top[i].Rank != full[i].Rank {
				t.Errorf("k=%d position %d: TopK %v != Rank %v", k, i, top[i], full[i])
			}
		}
	}
}

func TestTopKEdgeCases(t *testing.T) {
	scored := []Scored{{"a", 10}, {"b", 20}}
	if got := TopK(scored, 0); len(got) != 0 {
		t.Errorf("k=0: expected empty, got %d", len(got))
	}
	if got := TopK(scored, -1); len(got) != 0 {
		t.Errorf("k=-1: expected empty, got %d", len(got))
	}
	if got := TopK(nil, 3); len(got) != 0 {
		t.Errorf("empty input: expected empty, got %d", len(got))
	}
	if got := TopK(scored, 10); len(got) != 2 {
		t.Errorf("k>N: expected all 2, got %d", len(got))
	}
}

// --- ClosestToTarget tests ---

func TestClosestToTarget(t *testing.T) {
	scored := []Scored{
		{"a", 10}, {"b", 25}, {"c", 40}, {"d", 60}, {"e", 85},
	}
	sort.Slice(scored, func(i, j int) bool { return scored[i].Score < scored[j].Score })

	cases := []struct {
		target float64
		want   string
	}{
		{40, "c"},  // exact match
		{12, "a"},  // below midpoint
		{55, "d"},  // nearest above
		{-10, "a"}, // below all
		{200, "e"}, // above all
	}
	for _, c := range cases {
		got, ok := ClosestToTarget(scored, c.target)
		if !ok {
			t.Fatalf("target %f: expected a result", c.target)
		}
		if got.BuildingID != c.want {
			t.Errorf("target %f: expected %s, got %s", c.target, c.want, got.BuildingID)
		}
	}
}

func TestClosestToTargetEmpty(t *testing.T) {
	if _, ok := ClosestToTarget(nil, 50); ok {
		t.Error("expected no result for empty input")
	}
}
