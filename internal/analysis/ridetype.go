package analysis

import "ridecoach/internal/store"

// rideTypeLadder maps the ratio of ride power to FTP onto an intensity
// label. Checked in order; the first breakpoint the ratio falls under wins.
var rideTypeLadder = []struct {
	below float64
	label string
}{
	{0.55, "easy"},
	{0.75, "endurance"},
	{0.87, "tempo"},
	{0.95, "threshold"},
	{1.05, "vo2max"},
}

// ClassifyRide labels a ride's intensity relative to FTP. Rides without
// power data are assumed to be endurance riding.
func ClassifyRide(r store.Ride, ftp float64) string {
	power := r.PowerReading()
	if power == nil || ftp <= 0 {
		return "endurance"
	}
	ratio := *power / ftp
	for _, step := range rideTypeLadder {
		if ratio < step.below {
			return step.label
		}
	}
	return "race"
}
