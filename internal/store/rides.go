package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// UpsertRide inserts or replaces a ride summary.
func (s *Store) UpsertRide(r *Ride) error {
	_, err := s.db.Exec(`
		INSERT INTO rides (
			id, athlete_id, name, start_date, moving_time, elapsed_time,
			distance, elevation_gain, average_power, weighted_power,
			training_stress, average_hr, source
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			athlete_id = excluded.athlete_id,
			name = excluded.name,
			start_date = excluded.start_date,
			moving_time = excluded.moving_time,
			elapsed_time = excluded.elapsed_time,
			distance = excluded.distance,
			elevation_gain = excluded.elevation_gain,
			average_power = excluded.average_power,
			weighted_power = excluded.weighted_power,
			training_stress = excluded.training_stress,
			average_hr = excluded.average_hr,
			source = excluded.source,
			updated_at = CURRENT_TIMESTAMP`,
		r.ID, r.AthleteID, r.Name, r.StartDate.UTC().Format(time.RFC3339),
		r.MovingTime, r.ElapsedTime, r.Distance, r.ElevationGain,
		r.AveragePower, r.WeightedPower, r.TrainingStress, r.AverageHR, r.Source)
	return err
}

// GetRide retrieves a ride by ID.
func (s *Store) GetRide(ctx context.Context, id int64) (*Ride, error) {
	rows, err := s.queryRides(ctx, `WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrRideNotFound
	}
	return &rows[0], nil
}

// RidesSince returns rides with start_date >= cutoff, newest first.
func (s *Store) RidesSince(ctx context.Context, cutoff time.Time) ([]Ride, error) {
	return s.queryRides(ctx,
		`WHERE start_date >= ? ORDER BY start_date DESC`,
		cutoff.UTC().Format(time.RFC3339))
}

// RecentRides returns the most recent rides, newest first.
func (s *Store) RecentRides(ctx context.Context, limit int) ([]Ride, error) {
	return s.queryRides(ctx, `ORDER BY start_date DESC LIMIT ?`, int64(limit))
}

// BestWeightedPower returns the highest weighted (or average) power among
// rides at or after cutoff that lasted at least minSeconds. Returns nil when
// no qualifying ride reports power.
func (s *Store) BestWeightedPower(ctx context.Context, cutoff time.Time, minSeconds int) (*float64, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT MAX(COALESCE(weighted_power, average_power))
		FROM rides
		WHERE start_date >= ? AND moving_time >= ?
			AND COALESCE(weighted_power, average_power) > 0`,
		cutoff.UTC().Format(time.RFC3339), minSeconds)

	var best sql.NullFloat64
	if err := row.Scan(&best); err != nil {
		return nil, err
	}
	if !best.Valid {
		return nil, nil
	}
	return &best.Float64, nil
}

// CountRides returns the total number of stored rides.
func (s *Store) CountRides(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM rides`).Scan(&count)
	return count, err
}

// queryRides runs a SELECT over the rides table with the given tail clause.
func (s *Store) queryRides(ctx context.Context, tail string, args ...interface{}) ([]Ride, error) {
	query := `
		SELECT id, athlete_id, name, start_date, moving_time, elapsed_time,
			distance, elevation_gain, average_power, weighted_power,
			training_stress, average_hr, source
		FROM rides ` + tail

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rides []Ride
	for rows.Next() {
		r, err := scanRide(rows)
		if err != nil {
			return nil, err
		}
		rides = append(rides, *r)
	}
	return rides, rows.Err()
}

func scanRide(rows *sql.Rows) (*Ride, error) {
	var r Ride
	var startDate string
	var avgPower, weightedPower, stress, avgHR sql.NullFloat64

	err := rows.Scan(
		&r.ID, &r.AthleteID, &r.Name, &startDate, &r.MovingTime, &r.ElapsedTime,
		&r.Distance, &r.ElevationGain, &avgPower, &weightedPower, &stress, &avgHR,
		&r.Source,
	)
	if err != nil {
		return nil, err
	}

	r.StartDate, err = time.Parse(time.RFC3339, startDate)
	if err != nil {
		return nil, fmt.Errorf("parsing start_date %q: %w", startDate, err)
	}

	r.AveragePower = nullFloat64ToPtr(avgPower)
	r.WeightedPower = nullFloat64ToPtr(weightedPower)
	r.TrainingStress = nullFloat64ToPtr(stress)
	r.AverageHR = nullFloat64ToPtr(avgHR)
	return &r, nil
}

func nullFloat64ToPtr(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	return &n.Float64
}
