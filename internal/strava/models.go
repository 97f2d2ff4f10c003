package strava

import "time"

// Activity represents a Strava activity from the API, with the cycling
// power surface included.
type Activity struct {
	ID                 int64     `json:"id"`
	Athlete            Athlete   `json:"athlete"`
	Name               string    `json:"name"`
	Type               string    `json:"type"`
	SportType          string    `json:"sport_type"`
	StartDate          time.Time `json:"start_date"`
	StartDateLocal     time.Time `json:"start_date_local"`
	Timezone           string    `json:"timezone"`
	Distance           float64   `json:"distance"`             // meters
	MovingTime         int       `json:"moving_time"`          // seconds
	ElapsedTime        int       `json:"elapsed_time"`         // seconds
	TotalElevationGain float64   `json:"total_elevation_gain"` // meters
	AverageSpeed       float64   `json:"average_speed"`        // m/s
	MaxSpeed           float64   `json:"max_speed"`            // m/s
	AverageWatts       float64   `json:"average_watts"`
	WeightedAvgWatts   float64   `json:"weighted_average_watts"`
	DeviceWatts        bool      `json:"device_watts"` // true for power-meter data
	Kilojoules         float64   `json:"kilojoules"`
	AverageHeartrate   float64   `json:"average_heartrate"` // bpm
	MaxHeartrate       float64   `json:"max_heartrate"`     // bpm
	AverageCadence     float64   `json:"average_cadence"`   // rpm
	SufferScore        float64   `json:"suffer_score"`
	HasHeartrate       bool      `json:"has_heartrate"`
	Trainer            bool      `json:"trainer"`
}

// Athlete represents a Strava athlete (minimal info in activity response)
type Athlete struct {
	ID int64 `json:"id"`
}

// IsRide reports whether the activity is a human-powered bike ride.
// E-bike rides are excluded; their power numbers don't reflect the rider.
func (a Activity) IsRide() bool {
	switch a.SportType {
	case "Ride", "VirtualRide", "GravelRide", "MountainBikeRide":
		return true
	}
	// Older uploads only carry the legacy type field.
	switch a.Type {
	case "Ride", "VirtualRide":
		return true
	}
	return false
}
