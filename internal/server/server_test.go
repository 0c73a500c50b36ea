package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/StefanVerhoef/solarroof/pkg/analysis"
	"github.com/StefanVerhoef/solarroof/pkg/building"
	"github.com/StefanVerhoef/solarroof/pkg/config"
	"github.com/StefanVerhoef/solarroof/pkg/geom"
)

func testServer(t *testing.T) *Server {
	t.Helper()

	h := 10.0
	buildings := []*building.Building{}
	for i, id := range []string{"a", "b", "c"} {
		x := float64(i) * 1000
		buildings = append(buildings, &building.Building{
			ID: id,
			Footprint: geom.SinglePart(geom.NewRing(
				geom.Pt(x, 0),
				geom.Pt(x+20, 0),
				geom.Pt(x+20, 20),
				geom.Pt(x, 20),
			)),
			Height: &h,
		})
	}
	energy := building.EnergyPotentials{"a": 18000, "b": 9000, "c": 30000}

	snap, report, err := analysis.Run(buildings, energy, config.Default())
	if err != nil {
		t.Fatalf("analysis.Run: %v", err)
	}
	return New(snap, report, 0)
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decoding response %q: %v", rec.Body.String(), err)
	}
}

func TestHealth(t *testing.T) {
	s := testServer(t)
	rec := get(t, s, "/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var body map[string]any
	decode(t, rec, &body)
	if body["status"] != "ok" {
		t.Errorf("status field = %v", body["status"])
	}
	if body["buildings"].(float64) != 3 {
		t.Errorf("buildings = %v, want 3", body["buildings"])
	}
}

func TestBuildingsList(t *testing.T) {
	s := testServer(t)

	var body struct {
		Count     int               `json:"count"`
		Buildings []analysis.Detail `json:"buildings"`
	}

	rec := get(t, s, "/buildings")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	decode(t, rec, &body)
	if body.Count != 3 {
		t.Fatalf("count = %d, want 3", body.Count)
	}
	for i := 1; i < len(body.Buildings); i++ {
		if body.Buildings[i-1].Score < body.Buildings[i].Score {
			t.Errorf("list not in rank order at %d", i)
		}
	}

	rec = get(t, s, "/buildings?min_energy=10000")
	decode(t, rec, &body)
	if body.Count != 2 {
		t.Errorf("min_energy filter count = %d, want 2", body.Count)
	}

	rec = get(t, s, "/buildings?limit=1&offset=1")
	decode(t, rec, &body)
	if body.Count != 1 {
		t.Errorf("paginated count = %d, want 1", body.Count)
	}

	rec = get(t, s, "/buildings?min_score=abc")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad filter status = %d, want 400", rec.Code)
	}
}

func TestBuildingByID(t *testing.T) {
	s := testServer(t)

	rec := get(t, s, "/buildings/a")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var d analysis.Detail
	decode(t, rec, &d)
	if d.BuildingID != "a" {
		t.Errorf("building_id = %q", d.BuildingID)
	}

	rec = get(t, s, "/buildings/missing")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing building status = %d, want 404", rec.Code)
	}
	var errBody map[string]string
	decode(t, rec, &errBody)
	if errBody["error"] == "" {
		t.Error("expected JSON error body")
	}
}

func TestSuitability(t *testing.T) {
	s := testServer(t)

	rec := get(t, s, "/buildings/c/suitability")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]any
	decode(t, rec, &body)
	if body["building_id"] != "c" {
		t.Errorf("building_id = %v", body["building_id"])
	}
	if _, ok := body["score"]; !ok {
		t.Error("missing score field")
	}

	rec = get(t, s, "/buildings/missing/suitability")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestPriority(t *testing.T) {
	s := testServer(t)

	var body struct {
		TopN      int               `json:"top_n"`
		Buildings []analysis.Detail `json:"buildings"`
	}

	rec := get(t, s, "/priority?top_n=2")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	decode(t, rec, &body)
	if len(body.Buildings) != 2 {
		t.Fatalf("got %d buildings, want 2", len(body.Buildings))
	}
	if body.Buildings[0].Rank != 1 {
		t.Errorf("first priority rank = %d", body.Buildings[0].Rank)
	}

	rec = get(t, s, "/priority?top_n=-1")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("negative top_n status = %d, want 400", rec.Code)
	}
}

func TestStats(t *testing.T) {
	s := testServer(t)

	rec := get(t, s, "/stats")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var st analysis.Stats
	decode(t, rec, &st)
	if st.Count != 3 {
		t.Errorf("count = %d, want 3", st.Count)
	}
	if st.MinScore > st.MaxScore {
		t.Errorf("min %v > max %v", st.MinScore, st.MaxScore)
	}
}

func TestValidationEndpoint(t *testing.T) {
	s := testServer(t)

	rec := get(t, s, "/validation")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]any
	decode(t, rec, &body)
	if body["valid"] != true {
		t.Errorf("valid = %v", body["valid"])
	}
}
