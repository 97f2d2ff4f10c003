package analysis

import (
	"testing"
	"time"

	"ridecoach/internal/store"
)

func TestComputeLoad(t *testing.T) {
	now := time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		rides   []store.Ride
		checkFn func(t *testing.T, m LoadMetrics)
	}{
		{
			name:  "empty history is all zeros",
			rides: nil,
			checkFn: func(t *testing.T, m LoadMetrics) {
				if m.CTL != 0 || m.ATL != 0 || m.TSB != 0 {
					t.Errorf("got CTL=%d ATL=%d TSB=%d, want zeros", m.CTL, m.ATL, m.TSB)
				}
			},
		},
		{
			name: "steady 100 TSS per day saturates toward 100",
			rides: func() []store.Ride {
				rides := make([]store.Ride, 90)
				for i := range rides {
					r := makeRide(now.AddDate(0, 0, -i), 3600)
					r.TrainingStress = floatPtr(100)
					rides[i] = r
				}
				return rides
			}(),
			checkFn: func(t *testing.T, m LoadMetrics) {
				// ATL (7-day constant) has fully converged after 90 days;
				// CTL (42-day constant) is still climbing.
				if m.ATL != 100 {
					t.Errorf("ATL = %d, want 100", m.ATL)
				}
				if m.CTL != 89 {
					t.Errorf("CTL = %d, want 89", m.CTL)
				}
				if m.TSB != m.CTL-m.ATL {
					t.Errorf("TSB = %d, want CTL-ATL = %d", m.TSB, m.CTL-m.ATL)
				}
			},
		},
		{
			name: "single hard day spikes fatigue more than fitness",
			rides: func() []store.Ride {
				r := makeRide(now, 3600)
				r.TrainingStress = floatPtr(200)
				return []store.Ride{r}
			}(),
			checkFn: func(t *testing.T, m LoadMetrics) {
				// One day of 200: ATL jumps 200/7 = ~29, CTL only 200/42 = ~5
				if m.ATL != 29 {
					t.Errorf("ATL = %d, want 29", m.ATL)
				}
				if m.CTL != 5 {
					t.Errorf("CTL = %d, want 5", m.CTL)
				}
				if m.TSB >= 0 {
					t.Errorf("TSB = %d, want negative after a hard day", m.TSB)
				}
			},
		},
		{
			name: "multiple rides on one day sum into that day's load",
			rides: func() []store.Ride {
				a := makeRide(now, 3600)
				a.TrainingStress = floatPtr(100)
				b := makeRide(now.Add(4*time.Hour), 3600)
				b.TrainingStress = floatPtr(100)
				b.ID = a.ID + 1
				return []store.Ride{a, b}
			}(),
			checkFn: func(t *testing.T, m LoadMetrics) {
				single := makeRide(now, 3600)
				single.TrainingStress = floatPtr(200)
				want := ComputeLoad([]store.Ride{single}, now)
				if m != want {
					t.Errorf("split loads = %+v, want same as combined %+v", m, want)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.checkFn(t, ComputeLoad(tt.rides, now))
		})
	}
}

func TestComputeLoadMonotonic(t *testing.T) {
	now := time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC)

	// Extending a constant daily stream keeps raising CTL without ever
	// overshooting the daily value.
	prev := 0
	for days := 10; days <= 90; days += 20 {
		rides := make([]store.Ride, days)
		for i := range rides {
			r := makeRide(now.AddDate(0, 0, -i), 3600)
			r.TrainingStress = floatPtr(80)
			rides[i] = r
		}
		m := ComputeLoad(rides, now)
		if m.CTL < prev {
			t.Errorf("%d days: CTL = %d dropped below %d", days, m.CTL, prev)
		}
		if m.CTL > 80 {
			t.Errorf("%d days: CTL = %d exceeds the constant daily load", days, m.CTL)
		}
		prev = m.CTL
	}
}

func TestFormDescriptionLoad(t *testing.T) {
	tests := []struct {
		tsb      int
		expected string
	}{
		{30, "Very fresh (possibly detrained)"},
		{15, "Fresh and ready to race"},
		{5, "Neutral - good for training"},
		{-5, "Slightly fatigued"},
		{-15, "Tired but building fitness"},
		{-30, "Very fatigued - rest needed"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := FormDescription(tt.tsb); got != tt.expected {
				t.Errorf("FormDescription(%d) = %q, want %q", tt.tsb, got, tt.expected)
			}
		})
	}
}
