package analysis

import (
	"math"
	"time"

	"ridecoach/internal/store"
)

// WeeklySummary aggregates rides within a single week bucket. WeekOffset 0
// is the current week, 1 the week before, and so on.
type WeeklySummary struct {
	WeekOffset int
	TotalTSS   int
	Hours      float64
	RideCount  int
	AvgPower   *float64
}

// WeeklySummaries buckets rides into week offsets relative to now and
// returns exactly weeksBack summaries, offset 0 first. Weeks without rides
// are zero-filled. The power average only counts rides that report power;
// a week where nothing reports power has a nil AvgPower.
func WeeklySummaries(rides []store.Ride, weeksBack int, now time.Time) []WeeklySummary {
	if weeksBack <= 0 {
		return nil
	}

	type bucket struct {
		tss        int
		seconds    int
		count      int
		powerSum   float64
		powerCount int
	}
	buckets := make([]bucket, weeksBack)

	for _, r := range rides {
		offset := int(now.Sub(r.StartDate).Hours() / (24 * 7))
		if offset < 0 || offset >= weeksBack {
			continue
		}
		b := &buckets[offset]
		b.tss += EstimateTSS(r)
		b.seconds += r.MovingTime
		b.count++
		if p := r.PowerReading(); p != nil {
			b.powerSum += *p
			b.powerCount++
		}
	}

	summaries := make([]WeeklySummary, weeksBack)
	for i, b := range buckets {
		s := WeeklySummary{
			WeekOffset: i,
			TotalTSS:   b.tss,
			Hours:      math.Round(float64(b.seconds)/3600.0*10) / 10,
			RideCount:  b.count,
		}
		if b.powerCount > 0 {
			avg := b.powerSum / float64(b.powerCount)
			s.AvgPower = &avg
		}
		summaries[i] = s
	}
	return summaries
}
