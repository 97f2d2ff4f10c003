package coach

import (
	"context"
	"time"

	"ridecoach/internal/analysis"
	"ridecoach/internal/store"
)

// RideSource is the ride history the coaching context is built from.
// The store satisfies this interface.
type RideSource interface {
	RidesSince(ctx context.Context, cutoff time.Time) ([]store.Ride, error)
	RecentRides(ctx context.Context, limit int) ([]store.Ride, error)
	BestWeightedPower(ctx context.Context, cutoff time.Time, minSeconds int) (*float64, error)
}

// Profile describes the athlete and their current training goal.
type Profile struct {
	FTPWatts          float64
	RestingHR         float64
	MaxHR             float64
	WeeklyHoursTarget float64
	GoalType          string
}

// ProfileSource resolves the athlete profile and active plan. A nil
// profile with a nil error means nothing is configured; the builder
// falls back to defaults.
type ProfileSource interface {
	Profile(ctx context.Context) (*Profile, error)
}

// LoadSnapshot holds the training load picture: per-week totals plus the
// current chronic/acute balance.
type LoadSnapshot struct {
	WeeklyTSS   []int
	WeeklyHours []float64
	CTL         int
	ATL         int
	TSB         int
	Trend       analysis.LoadTrend
}

// Performance holds the power picture over the recent window.
type Performance struct {
	AvgWeightedPower *float64
	Best20MinPower   *float64
	Trend            analysis.PowerTrend
}

// Patterns holds the behavioral riding patterns.
type Patterns struct {
	AvgRidesPerWeek   float64
	AvgRideMinutes    float64
	PreferredDays     []string
	DaysSinceLastRide int
	DaysSinceRestDay  int
	ConsistencyScore  int
}

// RideSummary is a compact view of a single recent ride.
type RideSummary struct {
	Name       string
	Date       time.Time
	Hours      float64
	DistanceKm float64
	ElevationM float64
	Power      *float64
	TSS        int
	Type       string
}

// CoachingContext is the assembled training summary. It is a computed
// view: built fresh on every request and never mutated afterward.
type CoachingContext struct {
	Profile     Profile
	Load        LoadSnapshot
	Performance Performance
	Patterns    Patterns
	RecentRides []RideSummary
	Today       time.Time
	DayOfWeek   string
}
