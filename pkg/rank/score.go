// Package rank scores rooftops for solar suitability and orders them.
package rank

import (
	"fmt"
	"math"
)

// Normalization anchors. A roof at or above IdealRoofArea scores full
// marks on area; likewise for energy.
const (
	IdealRoofArea         = 500.0   // m²
	IdealEnergyPotential  = 50000.0 // kWh/year
	OptimalOrientationDeg = 180.0   // due south
)

// InvalidParameterError reports a scoring input outside its legal
// range. Values are never silently clamped.
type InvalidParameterError struct {
	Param string
	Value float64
	Range string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("parameter %s = %g outside %s", e.Param, e.Value, e.Range)
}

// Weights assigns the relative importance of each scoring factor.
// A weight set must cover all four factors; partial overrides are
// rejected by Validate.
type Weights struct {
	Area        float64 `yaml:"area" json:"area"`
	Energy      float64 `yaml:"energy" json:"energy"`
	Shading     float64 `yaml:"shading" json:"shading"`
	Orientation float64 `yaml:"orientation" json:"orientation"`
}

// DefaultWeights returns the standard factor weighting.
func DefaultWeights() Weights {
	return Weights{Area: 0.2, Energy: 0.4, Shading: 0.2, Orientation: 0.2}
}

// Validate checks that every factor carries a usable weight.
func (w Weights) Validate() error {
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"area", w.Area},
		{"energy", w.Energy},
		{"shading", w.Shading},
		{"orientation", w.Orientation},
	} {
		if math.IsNaN(f.value) || f.value < 0 {
			return &InvalidParameterError{Param: "weights." + f.name, Value: f.value, Range: "[0,inf)"}
		}
		if f.value == 0 {
			return &InvalidParameterError{Param: "weights." + f.name, Value: 0, Range: "(0,inf): all four factors must be weighted"}
		}
	}
	return nil
}

// Score combines roof area, energy potential, shading and orientation
// into a suitability score in [0,100]. South-facing roofs (180°) score
// best on orientation, falling off linearly to due north.
func Score(roofArea, energyPotential, shadingFactor, orientationDeg float64, w Weights) (float64, error) {
	if err := w.Validate(); err != nil {
		return 0, err
	}
	if shadingFactor < 0 || shadingFactor > 1 || math.IsNaN(shadingFactor) {
		return 0, &InvalidParameterError{Param: "shading_factor", Value: shadingFactor, Range: "[0,1]"}
	}

	areaScore := math.Min(roofArea/IdealRoofArea, 1.0)
	energyScore := math.Min(energyPotential/IdealEnergyPotential, 1.0)
	shadingScore := 1 - shadingFactor
	orientationScore := 1 - math.Abs(orientationDeg-OptimalOrientationDeg)/180.0

	total := areaScore*w.Area +
		energyScore*w.Energy +
		shadingScore*w.Shading +
		orientationScore*w.Orientation

	return total * 100, nil
}

// Category is a suitability classification band.
type Category string

const (
	Excellent  Category = "Excellent"
	Good       Category = "Good"
	Moderate   Category = "Moderate"
	Poor       Category = "Poor"
	Unsuitable Category = "Unsuitable"
)

// Classify maps a suitability score to its category. Bands are
// inclusive on their lower bound.
func Classify(score float64) Category {
	switch {
	case score >= 80:
		return Excellent
	case score >= 60:
		return Good
	case score >= 40:
		return Moderate
	case score >= 20:
		return Poor
	default:
		return Unsuitable
	}
}
