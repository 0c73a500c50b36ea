package analysis

import (
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/StefanVerhoef/solarroof/pkg/geom"
	"github.com/StefanVerhoef/solarroof/pkg/rank"
	"github.com/StefanVerhoef/solarroof/pkg/shading"
)

// Detail holds everything the analysis derived for one building.
type Detail struct {
	BuildingID       string        `json:"building_id"`
	RoofAreaM2       float64       `json:"roof_area_m2"`
	OrientationDeg   float64       `json:"orientation_deg"`
	VertexCount      int           `json:"vertex_count"`
	HeightM          float64       `json:"height_m"`
	Centroid         geom.Point2D  `json:"centroid"`
	EnergyPotential  float64       `json:"energy_potential_kwh"`
	ShadingFactor    float64       `json:"shading_factor"`
	Score            float64       `json:"score"`
	Category         rank.Category `json:"category"`
	Rank             int           `json:"rank"`
	PaybackYears     float64       `json:"payback_years"`
	AnnualSavingsEUR float64       `json:"annual_savings_eur"`
}

// Snapshot is the immutable result of one analysis run.
type Snapshot struct {
	ID              string         `json:"id"`
	GeneratedAt     time.Time      `json:"generated_at"`
	SunElevationDeg float64        `json:"sun_elevation_deg"`
	Records         []rank.Record  `json:"records"`
	Shading         shading.Result `json:"-"`

	details map[string]*Detail
	scored  []rank.Scored
}

// Get returns the detail for one building by ID.
func (s *Snapshot) Get(id string) (*Detail, bool) {
	d, ok := s.details[id]
	return d, ok
}

// Filter narrows a listing. Nil pointer fields are not applied.
type Filter struct {
	MinScore  *float64
	MaxScore  *float64
	MinArea   *float64
	MinEnergy *float64
	Category  rank.Category
	Limit     int
	Offset    int
}

func (f Filter) matches(d *Detail) bool {
	if f.MinScore != nil && d.Score < *f.MinScore {
		return false
	}
	if f.MaxScore != nil && d.Score > *f.MaxScore {
		return false
	}
	if f.MinArea != nil && d.RoofAreaM2 < *f.MinArea {
		return false
	}
	if f.MinEnergy != nil && d.EnergyPotential < *f.MinEnergy {
		return false
	}
	if f.Category != "" && d.Category != f.Category {
		return false
	}
	return true
}

// List returns details in rank order, filtered then paginated.
func (s *Snapshot) List(f Filter) []*Detail {
	out := make([]*Detail, 0, len(s.Records))
	for _, r := range s.Records {
		d := s.details[r.BuildingID]
		if f.matches(d) {
			out = append(out, d)
		}
	}
	if f.Offset > 0 {
		if f.Offset >= len(out) {
			return []*Detail{}
		}
		out = out[f.Offset:]
	}
	if f.Limit > 0 && f.Limit < len(out) {
		out = out[:f.Limit]
	}
	return out
}

// Top returns the n best-ranked buildings without re-sorting the
// whole set.
func (s *Snapshot) Top(n int) []*Detail {
	records := rank.TopK(s.scored, n)
	out := make([]*Detail, len(records))
	for i, r := range records {
		out[i] = s.details[r.BuildingID]
	}
	return out
}

// ClosestToScore returns the building whose score is nearest the
// target, or false on an empty snapshot.
func (s *Snapshot) ClosestToScore(target float64) (*Detail, bool) {
	asc := make([]rank.Scored, len(s.scored))
	copy(asc, s.scored)
	sort.Slice(asc, func(i, j int) bool { return asc[i].Score < asc[j].Score })
	hit, ok := rank.ClosestToTarget(asc, target)
	if !ok {
		return nil, false
	}
	return s.details[hit.BuildingID], true
}

// Stats summarises score distribution over a snapshot.
type Stats struct {
	Count      int                   `json:"count"`
	MeanScore  float64               `json:"mean_score"`
	Median     float64               `json:"median_score"`
	StdDev     float64               `json:"stddev_score"`
	MinScore   float64               `json:"min_score"`
	MaxScore   float64               `json:"max_score"`
	Categories map[rank.Category]int `json:"categories"`
}

// Stats computes distribution statistics over all ranked buildings.
func (s *Snapshot) Stats() Stats {
	out := Stats{Categories: make(map[rank.Category]int)}
	if len(s.Records) == 0 {
		return out
	}

	scores := make([]float64, len(s.Records))
	for i, r := range s.Records {
		scores[i] = r.Score
		out.Categories[r.Category]++
	}
	sort.Float64s(scores)

	out.Count = len(scores)
	out.MeanScore = stat.Mean(scores, nil)
	out.Median = stat.Quantile(0.5, stat.Empirical, scores, nil)
	if len(scores) > 1 {
		out.StdDev = stat.StdDev(scores, nil)
	}
	out.MinScore = scores[0]
	out.MaxScore = scores[len(scores)-1]
	return out
}
