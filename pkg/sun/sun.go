// Package sun derives sun elevation angles from an observation time
// and location, for callers that want a real ephemeris instead of the
// fixed default elevation.
package sun

import (
	"math"
	"time"

	"github.com/sixdouglas/suncalc"
)

// Elevation returns the sun's elevation above the horizon in degrees
// at the given time and location. Latitude and longitude are in
// degrees. Negative values mean the sun is below the horizon; feeding
// them to the shading model yields zero shadow length, matching the
// horizon rule.
func Elevation(t time.Time, latitude, longitude float64) float64 {
	p := suncalc.GetPosition(t, latitude, longitude)
	// suncalc returns the altitude in radians even though it takes the
	// location in degrees.
	return p.Altitude * 180 / math.Pi
}

// MaxElevation returns the highest elevation reached during the given
// day, sampled at minute resolution. It is a whole-day stand-in when a
// single representative elevation is needed.
func MaxElevation(day time.Time, latitude, longitude float64) float64 {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	max := -90.0
	for m := 0; m < 24*60; m += 10 {
		if e := Elevation(start.Add(time.Duration(m)*time.Minute), latitude, longitude); e > max {
			max = e
		}
	}
	return max
}
