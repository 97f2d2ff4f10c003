package plan

import (
	"context"
	"errors"

	"ridecoach/internal/coach"
	"ridecoach/internal/config"
)

// ProfileSource combines the config athlete section with the active
// training plan. The plan file is re-read on every call so edits take
// effect without restarting.
type ProfileSource struct {
	athlete config.AthleteConfig
}

func NewProfileSource(athlete config.AthleteConfig) *ProfileSource {
	return &ProfileSource{athlete: athlete}
}

// Profile resolves the athlete profile. Plan values layer on top of the
// config: the plan's FTP wins when set, goal and hours target only come
// from the plan. No plan file is not an error.
func (s *ProfileSource) Profile(ctx context.Context) (*coach.Profile, error) {
	profile := &coach.Profile{
		FTPWatts:  s.athlete.FTPWatts,
		RestingHR: s.athlete.RestingHR,
		MaxHR:     s.athlete.MaxHR,
	}

	p, err := Load()
	if errors.Is(err, ErrNoPlan) {
		return profile, nil
	}
	if err != nil {
		return nil, err
	}

	profile.WeeklyHoursTarget = p.WeeklyHoursTarget
	profile.GoalType = p.GoalType
	if p.FTPWatts > 0 {
		profile.FTPWatts = p.FTPWatts
	}
	return profile, nil
}
