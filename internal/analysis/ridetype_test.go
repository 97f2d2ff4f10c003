package analysis

import (
	"testing"
	"time"

	"ridecoach/internal/store"
)

func TestClassifyRide(t *testing.T) {
	base := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

	rideWithPower := func(weighted *float64, average *float64) store.Ride {
		r := makeRide(base, 3600)
		r.WeightedPower = weighted
		r.AveragePower = average
		return r
	}

	tests := []struct {
		name     string
		ride     store.Ride
		ftp      float64
		expected string
	}{
		{
			name:     "no power data assumes endurance",
			ride:     makeRide(base, 3600),
			ftp:      250,
			expected: "endurance",
		},
		{
			name:     "zero FTP assumes endurance",
			ride:     rideWithPower(floatPtr(200), nil),
			ftp:      0,
			expected: "endurance",
		},
		{
			name:     "recovery spin is easy",
			ride:     rideWithPower(floatPtr(120), nil),
			ftp:      250,
			expected: "easy",
		},
		{
			name:     "steady aerobic ride is endurance",
			ride:     rideWithPower(floatPtr(170), nil),
			ftp:      250,
			expected: "endurance",
		},
		{
			name:     "sweetspot ride is tempo",
			ride:     rideWithPower(floatPtr(210), nil),
			ftp:      250,
			expected: "tempo",
		},
		{
			name:     "just under FTP is threshold",
			ride:     rideWithPower(floatPtr(230), nil),
			ftp:      250,
			expected: "threshold",
		},
		{
			name:     "just over FTP is vo2max",
			ride:     rideWithPower(floatPtr(255), nil),
			ftp:      250,
			expected: "vo2max",
		},
		{
			name:     "well over FTP is race",
			ride:     rideWithPower(floatPtr(280), nil),
			ftp:      250,
			expected: "race",
		},
		{
			name:     "weighted power preferred over average",
			ride:     rideWithPower(floatPtr(230), floatPtr(120)),
			ftp:      250,
			expected: "threshold",
		},
		{
			name:     "falls back to average power",
			ride:     rideWithPower(nil, floatPtr(120)),
			ftp:      250,
			expected: "easy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyRide(tt.ride, tt.ftp); got != tt.expected {
				t.Errorf("ClassifyRide() = %q, want %q", got, tt.expected)
			}
		})
	}
}
