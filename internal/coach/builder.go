package coach

import (
	"context"
	"fmt"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"ridecoach/internal/analysis"
	"ridecoach/internal/store"
)

// Fallback constants used when no profile or plan is configured.
const (
	DefaultFTPWatts    = 250.0
	DefaultTargetHours = 8.0
)

const (
	defaultWeeksBack   = 6
	defaultRecentRides = 5
	loadWindowDays     = 90
	patternWindowDays  = 12 * 7
	best20MinCutoff    = 90 // days
	best20MinSeconds   = 20 * 60
)

// Options tune the context build. Zero values take the defaults.
type Options struct {
	WeeksBack   int
	RecentRides int
}

// Builder assembles coaching contexts from a ride history and an
// athlete profile.
type Builder struct {
	rides   RideSource
	profile ProfileSource
}

func NewBuilder(rides RideSource, profile ProfileSource) *Builder {
	return &Builder{rides: rides, profile: profile}
}

// Build fetches everything the context needs, runs the analysis, and
// returns the assembled summary. The store reads are independent and run
// concurrently; if any of them fails the whole build fails. There is no
// partial context.
func (b *Builder) Build(ctx context.Context, now time.Time, opts Options) (*CoachingContext, error) {
	weeksBack := opts.WeeksBack
	if weeksBack <= 0 {
		weeksBack = defaultWeeksBack
	}
	recentCount := opts.RecentRides
	if recentCount <= 0 {
		recentCount = defaultRecentRides
	}

	var (
		windowRides  []store.Ride
		loadRides    []store.Ride
		patternRides []store.Ride
		recentRides  []store.Ride
		bestPower    *float64
		profile      *Profile
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		windowRides, err = b.rides.RidesSince(gctx, now.AddDate(0, 0, -weeksBack*7))
		return err
	})
	g.Go(func() (err error) {
		loadRides, err = b.rides.RidesSince(gctx, now.AddDate(0, 0, -loadWindowDays))
		return err
	})
	g.Go(func() (err error) {
		patternRides, err = b.rides.RidesSince(gctx, now.AddDate(0, 0, -patternWindowDays))
		return err
	})
	g.Go(func() (err error) {
		recentRides, err = b.rides.RecentRides(gctx, recentCount)
		return err
	})
	g.Go(func() (err error) {
		bestPower, err = b.rides.BestWeightedPower(gctx, now.AddDate(0, 0, -best20MinCutoff), best20MinSeconds)
		return err
	})
	g.Go(func() (err error) {
		profile, err = b.profile.Profile(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("building coaching context: %w", err)
	}

	resolved := resolveProfile(profile)
	weeks := analysis.WeeklySummaries(windowRides, weeksBack, now)
	load := analysis.ComputeLoad(loadRides, now)

	cc := &CoachingContext{
		Profile: resolved,
		Load: LoadSnapshot{
			WeeklyTSS:   weeklyTSS(weeks),
			WeeklyHours: weeklyHours(weeks),
			CTL:         load.CTL,
			ATL:         load.ATL,
			TSB:         load.TSB,
			Trend:       analysis.ClassifyLoadTrend(weeks),
		},
		Performance: Performance{
			AvgWeightedPower: avgPower(windowRides),
			Best20MinPower:   bestPower,
			Trend:            analysis.ClassifyPowerTrend(weeks),
		},
		Patterns: Patterns{
			AvgRidesPerWeek:   analysis.AvgRidesPerWeek(weeks),
			AvgRideMinutes:    analysis.AvgRideMinutes(recentRides),
			PreferredDays:     analysis.PreferredDays(patternRides, now),
			DaysSinceLastRide: analysis.DaysSinceLastRide(patternRides, now),
			DaysSinceRestDay:  analysis.DaysSinceRestDay(patternRides, now),
			ConsistencyScore:  analysis.ConsistencyScore(weeks, resolved.WeeklyHoursTarget),
		},
		RecentRides: summarizeRides(recentRides, resolved.FTPWatts),
		Today:       now,
		DayOfWeek:   now.Weekday().String(),
	}
	return cc, nil
}

// resolveProfile fills missing profile fields with explicit fallbacks so
// downstream math never runs on silent zeros.
func resolveProfile(p *Profile) Profile {
	var resolved Profile
	if p != nil {
		resolved = *p
	}
	if resolved.FTPWatts <= 0 {
		resolved.FTPWatts = DefaultFTPWatts
	}
	if resolved.WeeklyHoursTarget <= 0 {
		resolved.WeeklyHoursTarget = DefaultTargetHours
	}
	return resolved
}

func weeklyTSS(weeks []analysis.WeeklySummary) []int {
	out := make([]int, len(weeks))
	for i, w := range weeks {
		out[i] = w.TotalTSS
	}
	return out
}

func weeklyHours(weeks []analysis.WeeklySummary) []float64 {
	out := make([]float64, len(weeks))
	for i, w := range weeks {
		out[i] = w.Hours
	}
	return out
}

func avgPower(rides []store.Ride) *float64 {
	var sum float64
	var count int
	for _, r := range rides {
		if p := r.PowerReading(); p != nil {
			sum += *p
			count++
		}
	}
	if count == 0 {
		return nil
	}
	avg := sum / float64(count)
	return &avg
}

func summarizeRides(rides []store.Ride, ftp float64) []RideSummary {
	summaries := make([]RideSummary, 0, len(rides))
	for _, r := range rides {
		summaries = append(summaries, RideSummary{
			Name:       r.Name,
			Date:       r.StartDate,
			Hours:      math.Round(r.Hours()*10) / 10,
			DistanceKm: math.Round(r.Distance/1000*10) / 10,
			ElevationM: math.Round(r.ElevationGain),
			Power:      r.PowerReading(),
			TSS:        analysis.EstimateTSS(r),
			Type:       analysis.ClassifyRide(r, ftp),
		})
	}
	return summaries
}
