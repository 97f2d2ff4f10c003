package fitimport

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tormoder/fit"

	"ridecoach/internal/store"
)

// ErrNotCycling is returned for FIT files whose session is not a bike
// ride. Directory imports skip these instead of failing.
var ErrNotCycling = errors.New("not a cycling activity")

// Importer decodes ride FIT files and stores them as rides.
type Importer struct {
	store *store.Store
}

func NewImporter(s *store.Store) *Importer {
	return &Importer{store: s}
}

// ImportResult summarizes a directory import.
type ImportResult struct {
	Imported int
	Skipped  int
	Errors   []error
}

// ImportFile decodes a single FIT file and upserts the ride.
func (im *Importer) ImportFile(path string) (*store.Ride, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening FIT file: %w", err)
	}
	defer f.Close()

	decoded, err := fit.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", filepath.Base(path), err)
	}

	ride, err := rideFromFit(decoded, path)
	if err != nil {
		return nil, err
	}

	if err := im.store.UpsertRide(ride); err != nil {
		return nil, fmt.Errorf("storing ride from %s: %w", filepath.Base(path), err)
	}
	return ride, nil
}

// ImportDir imports every .fit file in a directory. Non-cycling files are
// skipped; decode failures are collected but don't stop the import.
func (im *Importer) ImportDir(dir string) (*ImportResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading import directory: %w", err)
	}

	result := &ImportResult{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".fit") {
			continue
		}
		_, err := im.ImportFile(filepath.Join(dir, entry.Name()))
		if errors.Is(err, ErrNotCycling) {
			result.Skipped++
			continue
		}
		if err != nil {
			result.Errors = append(result.Errors, err)
			continue
		}
		result.Imported++
	}
	return result, nil
}

// rideFromFit maps the first session of an activity file onto a ride.
func rideFromFit(decoded *fit.File, path string) (*store.Ride, error) {
	activity, err := decoded.Activity()
	if err != nil {
		return nil, fmt.Errorf("activity FIT expected: %w", err)
	}
	if len(activity.Sessions) == 0 {
		return nil, fmt.Errorf("%s has no session message", filepath.Base(path))
	}

	session := activity.Sessions[0]
	if session.Sport != fit.SportCycling {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), ErrNotCycling)
	}

	start := validTime(session.StartTime)
	if start.IsZero() {
		start = validTime(session.Timestamp)
	}
	if start.IsZero() {
		return nil, fmt.Errorf("%s has no usable start time", filepath.Base(path))
	}

	moving := int(safePositive(session.GetTotalMovingTimeScaled()))
	elapsed := int(safePositive(session.GetTotalElapsedTimeScaled()))
	if elapsed == 0 {
		elapsed = int(safePositive(session.GetTotalTimerTimeScaled()))
	}
	if moving == 0 {
		moving = elapsed
	}

	// Negative IDs keyed on the start time keep file imports from ever
	// colliding with Strava activity IDs.
	ride := &store.Ride{
		ID:            -start.Unix(),
		Name:          rideName(path),
		StartDate:     start,
		MovingTime:    moving,
		ElapsedTime:   elapsed,
		Distance:      safePositive(session.GetTotalDistanceScaled()),
		ElevationGain: float64(validUint16(session.TotalAscent)),
		Source:        "fit",
	}

	if p := float64(validUint16(session.AvgPower)); p > 0 {
		ride.AveragePower = &p
	}
	if np := float64(validUint16(session.NormalizedPower)); np > 0 {
		ride.WeightedPower = &np
	}
	if hr := float64(validUint8(session.AvgHeartRate)); hr > 0 {
		ride.AverageHR = &hr
	}

	return ride, nil
}

func rideName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func validTime(t time.Time) time.Time {
	if t.IsZero() || fit.IsBaseTime(t) {
		return time.Time{}
	}
	return t
}

func validUint8(v uint8) uint8 {
	if v == math.MaxUint8 {
		return 0
	}
	return v
}

func validUint16(v uint16) uint16 {
	if v == math.MaxUint16 {
		return 0
	}
	return v
}

func safePositive(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0
	}
	return v
}
