package analysis

import (
	"math"
	"time"

	"ridecoach/internal/store"
)

const (
	// NoRecentRide is reported by DaysSinceLastRide when the athlete has
	// no rides at all, keeping downstream comparisons numeric.
	NoRecentRide = 999

	// restDayLookback caps the backward scan for a rest day.
	restDayLookback = 14

	preferredDaysWindow = 12 * 7 // days
)

// ConsistencyScore rates how closely weekly hours track the target, 0-100.
// No target or no weeks with riding yields a neutral 50. Overshooting the
// target is penalized the same as undershooting it.
func ConsistencyScore(weeks []WeeklySummary, targetHours float64) int {
	if targetHours <= 0 {
		return 50
	}

	var sum float64
	var count int
	for _, w := range weeks {
		if w.Hours <= 0 {
			continue
		}
		ratio := w.Hours / targetHours
		if ratio > 1.5 {
			ratio = 1.5
		}
		score := ratio * 100
		if ratio > 1 {
			score = (2 - ratio) * 100
		}
		if score < 0 {
			score = 0
		}
		if score > 100 {
			score = 100
		}
		sum += score
		count++
	}
	if count == 0 {
		return 50
	}
	return int(math.Round(sum / float64(count)))
}

// PreferredDays returns the athlete's two most-ridden weekdays over the
// trailing 12 weeks, most popular first. Ties resolve in Sunday-to-Saturday
// order so identical histories always produce identical answers.
func PreferredDays(rides []store.Ride, now time.Time) []string {
	cutoff := now.AddDate(0, 0, -preferredDaysWindow)

	var counts [7]int
	for _, r := range rides {
		if r.StartDate.Before(cutoff) || r.StartDate.After(now) {
			continue
		}
		counts[r.StartDate.Weekday()]++
	}

	var days []string
	for len(days) < 2 {
		best := -1
		for d := 0; d < 7; d++ {
			if counts[d] > 0 && (best == -1 || counts[d] > counts[best]) {
				best = d
			}
		}
		if best == -1 {
			break
		}
		days = append(days, time.Weekday(best).String())
		counts[best] = 0
	}
	return days
}

// DaysSinceLastRide returns whole days since the most recent ride, or
// NoRecentRide when the athlete has never ridden.
func DaysSinceLastRide(rides []store.Ride, now time.Time) int {
	var last time.Time
	for _, r := range rides {
		if r.StartDate.After(last) {
			last = r.StartDate
		}
	}
	if last.IsZero() {
		return NoRecentRide
	}
	days := int(now.Sub(last).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// DaysSinceRestDay counts the current streak of consecutive ride days,
// scanning backward up to 14 days. Today only joins the streak once it has
// a ride on it; an unridden today does not end a streak that is still
// alive from yesterday.
func DaysSinceRestDay(rides []store.Ride, now time.Time) int {
	ridden := make(map[string]bool)
	for _, r := range rides {
		ridden[r.StartDate.UTC().Format("2006-01-02")] = true
	}

	streak := 0
	for d := 0; d < restDayLookback; d++ {
		key := now.UTC().AddDate(0, 0, -d).Format("2006-01-02")
		if ridden[key] {
			streak++
			continue
		}
		if d == 0 {
			continue // today isn't over yet
		}
		break
	}
	return streak
}

// AvgRidesPerWeek is the mean ride count across weeks that had any riding.
func AvgRidesPerWeek(weeks []WeeklySummary) float64 {
	var sum, count int
	for _, w := range weeks {
		if w.RideCount > 0 {
			sum += w.RideCount
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return float64(sum) / float64(count)
}

// AvgRideMinutes is the mean moving time of the given rides, in minutes.
func AvgRideMinutes(rides []store.Ride) float64 {
	if len(rides) == 0 {
		return 0
	}
	var seconds int
	for _, r := range rides {
		seconds += r.MovingTime
	}
	return float64(seconds) / float64(len(rides)) / 60.0
}
