package plan

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Plan is the athlete's current training plan, read from
// ~/.ridecoach/plan.yaml.
type Plan struct {
	WeeklyHoursTarget float64 `yaml:"weekly_hours_target"`
	GoalType          string  `yaml:"goal_type"`
	FTPWatts          float64 `yaml:"ftp_watts"`
	Active            bool    `yaml:"active"`
}

// ErrNoPlan is returned when no plan file exists or the stored plan is
// not active.
var ErrNoPlan = errors.New("no active training plan")

// Load reads the plan file. A missing file or an inactive plan yields
// ErrNoPlan; callers fall back to their defaults.
func Load() (*Plan, error) {
	path, err := planPath()
	if err != nil {
		return nil, err
	}
	return loadPath(path)
}

func loadPath(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, ErrNoPlan
	}
	if err != nil {
		return nil, fmt.Errorf("reading plan file: %w", err)
	}

	var p Plan
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing plan file: %w", err)
	}
	if !p.Active {
		return nil, ErrNoPlan
	}
	if p.WeeklyHoursTarget < 0 {
		return nil, fmt.Errorf("plan weekly_hours_target must not be negative, got %v", p.WeeklyHoursTarget)
	}
	return &p, nil
}

// Save writes the plan to ~/.ridecoach/plan.yaml.
func Save(p *Plan) error {
	path, err := planPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating plan directory: %w", err)
	}

	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("encoding plan: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing plan file: %w", err)
	}
	return nil
}

func planPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".ridecoach", "plan.yaml"), nil
}
