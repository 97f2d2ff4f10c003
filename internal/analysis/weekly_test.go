package analysis

import (
	"math"
	"testing"
	"time"

	"ridecoach/internal/store"
)

func TestWeeklySummaries(t *testing.T) {
	now := time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		rides     []store.Ride
		weeksBack int
		checkFn   func(t *testing.T, weeks []WeeklySummary)
	}{
		{
			name:      "no rides still yields full window",
			rides:     nil,
			weeksBack: 6,
			checkFn: func(t *testing.T, weeks []WeeklySummary) {
				if len(weeks) != 6 {
					t.Fatalf("expected 6 weeks, got %d", len(weeks))
				}
				for i, w := range weeks {
					if w.WeekOffset != i {
						t.Errorf("week %d offset = %d", i, w.WeekOffset)
					}
					if w.TotalTSS != 0 || w.Hours != 0 || w.RideCount != 0 {
						t.Errorf("week %d not zero-filled: %+v", i, w)
					}
					if w.AvgPower != nil {
						t.Errorf("week %d AvgPower = %v, want nil", i, *w.AvgPower)
					}
				}
			},
		},
		{
			name: "rides land in the right buckets",
			rides: []store.Ride{
				makeRide(now.AddDate(0, 0, -1), 3600),  // offset 0
				makeRide(now.AddDate(0, 0, -8), 3600),  // offset 1
				makeRide(now.AddDate(0, 0, -9), 7200),  // offset 1
				makeRide(now.AddDate(0, 0, -22), 3600), // offset 3
			},
			weeksBack: 4,
			checkFn: func(t *testing.T, weeks []WeeklySummary) {
				if weeks[0].RideCount != 1 || weeks[1].RideCount != 2 ||
					weeks[2].RideCount != 0 || weeks[3].RideCount != 1 {
					t.Errorf("ride counts = [%d %d %d %d], want [1 2 0 1]",
						weeks[0].RideCount, weeks[1].RideCount,
						weeks[2].RideCount, weeks[3].RideCount)
				}
				if weeks[1].TotalTSS != 150 {
					t.Errorf("week 1 TotalTSS = %d, want 150", weeks[1].TotalTSS)
				}
				if weeks[1].Hours != 3.0 {
					t.Errorf("week 1 Hours = %v, want 3.0", weeks[1].Hours)
				}
			},
		},
		{
			name: "rides beyond the window are excluded",
			rides: []store.Ride{
				makeRide(now.AddDate(0, 0, -1), 3600),
				makeRide(now.AddDate(0, 0, -100), 3600),
			},
			weeksBack: 4,
			checkFn: func(t *testing.T, weeks []WeeklySummary) {
				var total int
				for _, w := range weeks {
					total += w.RideCount
				}
				if total != 1 {
					t.Errorf("total ride count = %d, want 1", total)
				}
			},
		},
		{
			name: "exact week boundary goes to the older bucket",
			rides: []store.Ride{
				makeRide(now.AddDate(0, 0, -7), 3600),
			},
			weeksBack: 3,
			checkFn: func(t *testing.T, weeks []WeeklySummary) {
				if weeks[0].RideCount != 0 || weeks[1].RideCount != 1 {
					t.Errorf("boundary ride in wrong bucket: offsets 0=%d 1=%d",
						weeks[0].RideCount, weeks[1].RideCount)
				}
			},
		},
		{
			name: "power mean skips rides without power",
			rides: []store.Ride{
				func() store.Ride {
					r := makeRide(now.AddDate(0, 0, -1), 3600)
					r.WeightedPower = floatPtr(200)
					return r
				}(),
				func() store.Ride {
					r := makeRide(now.AddDate(0, 0, -2), 3600)
					r.AveragePower = floatPtr(160)
					return r
				}(),
				makeRide(now.AddDate(0, 0, -3), 3600), // no power at all
			},
			weeksBack: 1,
			checkFn: func(t *testing.T, weeks []WeeklySummary) {
				if weeks[0].AvgPower == nil {
					t.Fatal("AvgPower = nil, want 180")
				}
				if math.Abs(*weeks[0].AvgPower-180) > 0.01 {
					t.Errorf("AvgPower = %v, want 180", *weeks[0].AvgPower)
				}
			},
		},
		{
			name: "hours rounded to one decimal",
			rides: []store.Ride{
				makeRide(now.AddDate(0, 0, -1), 5000), // 1.3888 hours
			},
			weeksBack: 1,
			checkFn: func(t *testing.T, weeks []WeeklySummary) {
				if weeks[0].Hours != 1.4 {
					t.Errorf("Hours = %v, want 1.4", weeks[0].Hours)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := WeeklySummaries(tt.rides, tt.weeksBack, now)
			if len(result) != tt.weeksBack {
				t.Fatalf("len = %d, want %d", len(result), tt.weeksBack)
			}
			tt.checkFn(t, result)
		})
	}
}
