package analysis

import (
	"testing"
	"time"

	"ridecoach/internal/store"
)

func floatPtr(f float64) *float64 { return &f }

func makeRide(start time.Time, movingSeconds int) store.Ride {
	return store.Ride{
		ID:          start.UnixNano(),
		Name:        "Ride",
		StartDate:   start,
		MovingTime:  movingSeconds,
		ElapsedTime: movingSeconds,
	}
}

func TestEstimateTSS(t *testing.T) {
	base := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		ride     store.Ride
		expected int
	}{
		{
			name: "stored score passes through unchanged",
			ride: func() store.Ride {
				r := makeRide(base, 7200)
				r.TrainingStress = floatPtr(123)
				return r
			}(),
			expected: 123,
		},
		{
			name: "zero stored score falls back to estimate",
			ride: func() store.Ride {
				r := makeRide(base, 3600)
				r.TrainingStress = floatPtr(0)
				return r
			}(),
			expected: 50,
		},
		{
			name:     "one flat hour is 50 points",
			ride:     makeRide(base, 3600),
			expected: 50,
		},
		{
			name: "two hours with 600m climbing",
			ride: func() store.Ride {
				r := makeRide(base, 7200)
				r.ElevationGain = 600
				return r
			}(),
			// 2h * 50 + (600/300) * 10
			expected: 120,
		},
		{
			name:     "missing duration assumes one hour",
			ride:     makeRide(base, 0),
			expected: 50,
		},
		{
			name: "negative elevation treated as zero",
			ride: func() store.Ride {
				r := makeRide(base, 3600)
				r.ElevationGain = -100
				return r
			}(),
			expected: 50,
		},
		{
			name:     "half hour rounds to nearest point",
			ride:     makeRide(base, 1800),
			expected: 25,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := EstimateTSS(tt.ride)
			if result != tt.expected {
				t.Errorf("EstimateTSS() = %d, want %d", result, tt.expected)
			}
			if result < 0 {
				t.Errorf("EstimateTSS() = %d, must never be negative", result)
			}
		})
	}
}
