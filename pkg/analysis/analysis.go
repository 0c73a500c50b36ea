// Package analysis runs the full suitability pipeline: geometry
// properties, spatial index, shading, scoring, ranking. The result is
// an immutable snapshot passed explicitly to every consumer; there is
// no process-wide dataset.
package analysis

import (
	"time"

	"github.com/google/uuid"

	"github.com/StefanVerhoef/solarroof/pkg/building"
	"github.com/StefanVerhoef/solarroof/pkg/config"
	"github.com/StefanVerhoef/solarroof/pkg/rank"
	"github.com/StefanVerhoef/solarroof/pkg/shading"
	"github.com/StefanVerhoef/solarroof/pkg/solar"
	"github.com/StefanVerhoef/solarroof/pkg/spatial"
	"github.com/StefanVerhoef/solarroof/pkg/sun"
	"github.com/StefanVerhoef/solarroof/pkg/validation"
)

// Run executes one analysis over the full building set. Malformed
// records are skipped and reported; they never abort the batch. The
// returned snapshot is complete and read-only.
func Run(buildings []*building.Building, energy building.EnergyPotentials, cfg config.Config) (*Snapshot, *validation.Report, error) {
	report := validation.NewReport()

	valid := make([]*building.Building, 0, len(buildings))
	for _, b := range buildings {
		if err := b.Validate(); err != nil {
			report.AddError(validation.Result{
				Level:      validation.LevelGeometry,
				Message:    err.Error(),
				BuildingID: b.ID,
			})
			continue
		}
		valid = append(valid, b)
	}

	index := spatial.Build(valid)
	model := shading.NewModel(index, cfg.Shading)

	elevation := cfg.Shading.SunElevationDeg
	if cfg.Sun != nil {
		elevation = sun.Elevation(cfg.Sun.Time, cfg.Sun.Latitude, cfg.Sun.Longitude)
	}

	factors, err := model.AnalyzeAll(valid, elevation, cfg.Workers)
	if err != nil {
		return nil, report, err
	}

	scored := make([]rank.Scored, 0, len(valid))
	details := make(map[string]*Detail, len(valid))
	for _, b := range valid {
		potential, ok := energy[b.ID]
		if !ok {
			// Documented fallback: score the energy factor as zero
			// rather than dropping the building.
			report.AddWarning(validation.Result{
				Level:      validation.LevelRecord,
				Message:    "no energy potential supplied; energy factor scored as 0",
				BuildingID: b.ID,
			})
		}

		factor := factors[b.ID]
		score, err := rank.Score(b.RoofArea(), potential, factor, b.OrientationDeg(), cfg.Weights)
		if err != nil {
			return nil, report, err
		}

		scored = append(scored, rank.Scored{BuildingID: b.ID, Score: score})
		details[b.ID] = &Detail{
			BuildingID:      b.ID,
			RoofAreaM2:      b.RoofArea(),
			OrientationDeg:  b.OrientationDeg(),
			VertexCount:     b.VertexCount(),
			HeightM:         b.HeightOrDefault(),
			Centroid:        b.Centroid(),
			EnergyPotential: potential,
			ShadingFactor:   factor,
			PaybackYears: solar.PaybackYears(potential,
				solar.DefaultEnergyPriceEUR, solar.DefaultInstallCostPerM2, b.RoofArea()),
			AnnualSavingsEUR: potential * solar.DefaultEnergyPriceEUR,
		}
	}

	records := rank.Rank(scored)
	for _, r := range records {
		d := details[r.BuildingID]
		d.Score = r.Score
		d.Category = r.Category
		d.Rank = r.Rank
	}

	return &Snapshot{
		ID:              uuid.New().String(),
		GeneratedAt:     time.Now().UTC(),
		SunElevationDeg: elevation,
		Records:         records,
		Shading:         factors,
		details:         details,
		scored:          scored,
	}, report, nil
}
