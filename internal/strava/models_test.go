package strava

import "testing"

func TestIsRide(t *testing.T) {
	tests := []struct {
		name     string
		activity Activity
		expected bool
	}{
		{"road ride", Activity{SportType: "Ride"}, true},
		{"virtual ride", Activity{SportType: "VirtualRide"}, true},
		{"gravel ride", Activity{SportType: "GravelRide"}, true},
		{"mountain bike ride", Activity{SportType: "MountainBikeRide"}, true},
		{"e-bike ride excluded", Activity{SportType: "EBikeRide"}, false},
		{"run excluded", Activity{SportType: "Run"}, false},
		{"legacy type field", Activity{Type: "Ride"}, true},
		{"legacy virtual ride", Activity{Type: "VirtualRide"}, true},
		{"empty activity", Activity{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.activity.IsRide(); got != tt.expected {
				t.Errorf("IsRide() = %v, want %v", got, tt.expected)
			}
		})
	}
}
