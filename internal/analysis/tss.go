package analysis

import (
	"math"

	"ridecoach/internal/store"
)

// Training Stress Score estimation constants. A nominal moderate hour of
// riding is worth 50 points, and every 300m of climbing adds another 10.
const (
	tssPointsPerHour   = 50.0
	climbMetersPerStep = 300.0
	climbPointsPerStep = 10.0
)

// EstimateTSS returns the Training Stress Score for a ride. A positive
// stored score from the device or upload is trusted as-is; otherwise the
// score is estimated from duration and elevation gain.
func EstimateTSS(r store.Ride) int {
	if r.TrainingStress != nil && *r.TrainingStress > 0 {
		return int(math.Round(*r.TrainingStress))
	}

	duration := float64(r.MovingTime)
	if duration <= 0 || math.IsNaN(duration) {
		duration = 3600 // assume a 1-hour ride when duration is missing
	}
	elevation := r.ElevationGain
	if elevation < 0 || math.IsNaN(elevation) {
		elevation = 0
	}

	base := (duration / 3600.0) * tssPointsPerHour
	climb := (elevation / climbMetersPerStep) * climbPointsPerStep
	return int(math.Round(base + climb))
}
