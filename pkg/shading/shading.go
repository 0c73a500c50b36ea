// Package shading computes per-building shading factors from nearby
// taller obstructions, using the spatial index for candidate retrieval.
package shading

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/StefanVerhoef/solarroof/pkg/building"
	"github.com/StefanVerhoef/solarroof/pkg/spatial"
)

// Config holds the shading heuristics. HeightDiffNormalizer and
// SizeFactorCap are uncalibrated empirical constants carried over from
// the original analysis; they are configuration, not physics.
type Config struct {
	// SearchRadius is the neighbor retrieval radius in meters.
	SearchRadius float64 `yaml:"search_radius_m"`
	// SunElevationDeg is the sun elevation used when no observation
	// time is supplied.
	SunElevationDeg float64 `yaml:"sun_elevation_deg"`
	// HeightDiffNormalizer divides the neighbor/target height
	// difference when deriving shadow intensity.
	HeightDiffNormalizer float64 `yaml:"height_diff_normalizer"`
	// SizeFactorCap bounds the neighbor/target area ratio.
	SizeFactorCap float64 `yaml:"size_factor_cap"`
	// SelfMatchEpsilon is the centroid distance below which a
	// candidate is treated as the target itself.
	SelfMatchEpsilon float64 `yaml:"self_match_epsilon_m"`
}

// DefaultConfig returns the heuristics used by the original analysis.
func DefaultConfig() Config {
	return Config{
		SearchRadius:         100.0,
		SunElevationDeg:      45.0,
		HeightDiffNormalizer: 50.0,
		SizeFactorCap:        2.0,
		SelfMatchEpsilon:     spatial.SelfMatchEpsilon,
	}
}

// ShadowLength returns the lateral shadow length in meters cast by an
// obstruction of the given height. At or beyond the horizon (0°) and at
// zenith (90°) there is no lateral shadow.
func ShadowLength(height, sunElevationDeg float64) float64 {
	if sunElevationDeg <= 0 || sunElevationDeg >= 90 {
		return 0
	}
	return height / math.Tan(sunElevationDeg*math.Pi/180)
}

// Model evaluates shading over an immutable spatial index snapshot.
type Model struct {
	index *spatial.Index
	cfg   Config
}

// NewModel creates a shading model over the given index.
func NewModel(index *spatial.Index, cfg Config) *Model {
	return &Model{index: index, cfg: cfg}
}

// Nearby returns the buildings within the configured search radius of
// the target's centroid, sorted ascending by distance. The target's own
// self-match is excluded by the index.
func (m *Model) Nearby(target *building.Building) ([]spatial.Match, error) {
	return m.index.Within(target.Centroid(), m.cfg.SearchRadius)
}

// Factor computes the target's shading factor in [0,1] from candidate
// obstructions at the given sun elevation. Zero qualifying candidates
// yield 0.
func (m *Model) Factor(target *building.Building, candidates []spatial.Match, sunElevationDeg float64) float64 {
	if len(candidates) == 0 {
		return 0
	}

	targetHeight := target.HeightOrDefault()
	targetArea := target.RoofArea()

	var intensities []float64
	for _, c := range candidates {
		// Candidates this close are duplicates of the target itself.
		if c.Distance < m.cfg.SelfMatchEpsilon {
			continue
		}

		heightDiff := c.Building.HeightOrDefault() - targetHeight
		if heightDiff <= 0 {
			continue
		}

		shadowLen := ShadowLength(c.Building.HeightOrDefault(), sunElevationDeg)
		if c.Distance > shadowLen {
			continue
		}

		intensity := (heightDiff / m.cfg.HeightDiffNormalizer) * (1 - c.Distance/shadowLen)
		intensity = clamp(intensity, 0, 1)

		// Larger obstructions cast proportionally larger shadows.
		sizeFactor := m.cfg.SizeFactorCap
		if targetArea > 0 {
			sizeFactor = math.Min(c.Building.RoofArea()/targetArea, m.cfg.SizeFactorCap)
		}
		intensity *= 0.5 + 0.5*math.Min(sizeFactor, 1.0)

		intensities = append(intensities, intensity)
	}

	if len(intensities) == 0 {
		return 0
	}

	// Root mean square penalizes a dominant obstruction more than the
	// arithmetic mean would, without the double counting of a sum over
	// overlapping shadows.
	squares := make([]float64, len(intensities))
	for i, v := range intensities {
		squares[i] = v * v
	}
	rms := math.Sqrt(stat.Mean(squares, nil))
	return clamp(rms, 0, 1)
}

// FactorAt is Factor with candidate retrieval included, using the
// configured default sun elevation.
func (m *Model) FactorAt(target *building.Building) (float64, error) {
	candidates, err := m.Nearby(target)
	if err != nil {
		return 0, err
	}
	return m.Factor(target, candidates, m.cfg.SunElevationDeg), nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
