package coach

import (
	"fmt"
	"strings"
)

// FormatContext renders a coaching context as a plain text block. It does
// no computation of its own; every number comes straight from the context.
func FormatContext(cc *CoachingContext) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Training Summary - %s, %s\n\n", cc.DayOfWeek, cc.Today.Format("2006-01-02"))

	fmt.Fprintf(&b, "Athlete\n")
	fmt.Fprintf(&b, "  FTP: %.0f W\n", cc.Profile.FTPWatts)
	fmt.Fprintf(&b, "  Weekly target: %.1f h\n", cc.Profile.WeeklyHoursTarget)
	if cc.Profile.GoalType != "" {
		fmt.Fprintf(&b, "  Goal: %s\n", cc.Profile.GoalType)
	}

	fmt.Fprintf(&b, "\nLoad\n")
	fmt.Fprintf(&b, "  CTL (fitness): %d   ATL (fatigue): %d   TSB (form): %d\n",
		cc.Load.CTL, cc.Load.ATL, cc.Load.TSB)
	fmt.Fprintf(&b, "  Trend: %s\n", cc.Load.Trend)
	fmt.Fprintf(&b, "  Weekly TSS (current week first): %s\n", joinInts(cc.Load.WeeklyTSS))
	fmt.Fprintf(&b, "  Weekly hours: %s\n", joinFloats(cc.Load.WeeklyHours))

	fmt.Fprintf(&b, "\nPerformance\n")
	fmt.Fprintf(&b, "  Avg power: %s\n", formatPower(cc.Performance.AvgWeightedPower))
	fmt.Fprintf(&b, "  Best 20-min power: %s\n", formatPower(cc.Performance.Best20MinPower))
	fmt.Fprintf(&b, "  Power trend: %s\n", cc.Performance.Trend)

	fmt.Fprintf(&b, "\nPatterns\n")
	fmt.Fprintf(&b, "  Rides/week: %.1f   Avg ride: %.0f min\n",
		cc.Patterns.AvgRidesPerWeek, cc.Patterns.AvgRideMinutes)
	if len(cc.Patterns.PreferredDays) > 0 {
		fmt.Fprintf(&b, "  Preferred days: %s\n", strings.Join(cc.Patterns.PreferredDays, ", "))
	}
	fmt.Fprintf(&b, "  Days since last ride: %d   Ride streak: %d days\n",
		cc.Patterns.DaysSinceLastRide, cc.Patterns.DaysSinceRestDay)
	fmt.Fprintf(&b, "  Consistency: %d/100\n", cc.Patterns.ConsistencyScore)

	if len(cc.RecentRides) > 0 {
		fmt.Fprintf(&b, "\nRecent rides\n")
		for _, r := range cc.RecentRides {
			fmt.Fprintf(&b, "  %s  %s  %.1fh  %.1fkm  %.0fm  %s (TSS %d, %s)\n",
				r.Date.Format("2006-01-02"), r.Name, r.Hours, r.DistanceKm,
				r.ElevationM, r.Type, r.TSS, formatPower(r.Power))
		}
	}

	return b.String()
}

func formatPower(p *float64) string {
	if p == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.0f W", *p)
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return strings.Join(parts, ", ")
}

func joinFloats(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%.1f", v)
	}
	return strings.Join(parts, ", ")
}
