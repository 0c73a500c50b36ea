// Package solar estimates annual energy production and the economics
// of a rooftop installation.
package solar

import (
	"math"

	"github.com/StefanVerhoef/solarroof/pkg/rank"
)

// Potential returns the annual energy production in kWh for a roof:
// E = area × irradiance × efficiency × (1 − shading). Non-positive
// area or irradiance yields 0. A shading factor outside [0,1] is an
// InvalidParameterError, consistent with the scoring layer.
func Potential(areaM2, irradiance, efficiency, shadingFactor float64) (float64, error) {
	if areaM2 <= 0 || irradiance <= 0 {
		return 0, nil
	}
	if shadingFactor < 0 || shadingFactor > 1 || math.IsNaN(shadingFactor) {
		return 0, &rank.InvalidParameterError{Param: "shading_factor", Value: shadingFactor, Range: "[0,1]"}
	}
	return areaM2 * irradiance * efficiency * (1 - shadingFactor), nil
}

// ROI returns the first-year return on investment as a percentage:
// (annual revenue − cost) / cost × 100. Zero area yields 0.
func ROI(energyKWh, energyPrice, installCostPerM2, areaM2 float64) float64 {
	if areaM2 <= 0 {
		return 0
	}
	cost := areaM2 * installCostPerM2
	if cost == 0 {
		return 0
	}
	revenue := energyKWh * energyPrice
	return (revenue - cost) / cost * 100
}

// PaybackYears returns the installation payback period in years.
// Roofs producing nothing never pay back and return +Inf.
func PaybackYears(energyKWh, energyPrice, installCostPerM2, areaM2 float64) float64 {
	if areaM2 <= 0 || energyKWh <= 0 {
		return math.Inf(1)
	}
	revenue := energyKWh * energyPrice
	if revenue == 0 {
		return math.Inf(1)
	}
	return areaM2 * installCostPerM2 / revenue
}
