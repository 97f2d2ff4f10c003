package store

import "time"

// Auth represents OAuth tokens for Strava API access
type Auth struct {
	AthleteID    int64
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// Ride represents a single ride summary. Rows are immutable once written;
// re-syncing the same ride replaces the row wholesale.
type Ride struct {
	ID             int64
	AthleteID      int64
	Name           string
	StartDate      time.Time
	MovingTime     int     // seconds
	ElapsedTime    int     // seconds
	Distance       float64 // meters
	ElevationGain  float64 // meters
	AveragePower   *float64 // watts, nullable
	WeightedPower  *float64 // watts, normalized/weighted average, nullable
	TrainingStress *float64 // stored TSS from the provider, nullable
	AverageHR      *float64 // bpm, nullable
	Source         string   // "strava" or "fit"
}

// Hours returns the ride's moving time in hours.
func (r Ride) Hours() float64 {
	return float64(r.MovingTime) / 3600.0
}

// PowerReading returns the best available power figure for the ride:
// weighted (normalized) power when present, otherwise average power.
// Returns nil when the ride carries no usable power data.
func (r Ride) PowerReading() *float64 {
	if r.WeightedPower != nil && *r.WeightedPower > 0 {
		return r.WeightedPower
	}
	if r.AveragePower != nil && *r.AveragePower > 0 {
		return r.AveragePower
	}
	return nil
}
