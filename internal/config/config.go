package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config represents the application configuration
type Config struct {
	Strava  StravaConfig  `json:"strava"`
	Athlete AthleteConfig `json:"athlete"`
}

// StravaConfig holds Strava API credentials
type StravaConfig struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

// AthleteConfig holds athlete-specific settings
type AthleteConfig struct {
	FTPWatts  float64 `json:"ftp_watts"`
	RestingHR float64 `json:"resting_hr"`
	MaxHR     float64 `json:"max_hr"`
}

// ErrNoConfig is returned when the config file doesn't exist
var ErrNoConfig = errors.New("config file not found")

// Environment variables that override the stored credentials. They can be
// set directly or placed in ~/.ridecoach/.env.
const (
	envClientID     = "RIDECOACH_CLIENT_ID"
	envClientSecret = "RIDECOACH_CLIENT_SECRET"
)

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Athlete: AthleteConfig{
			FTPWatts:  250,
			RestingHR: 50,
			MaxHR:     185,
		},
	}
}

// Load reads the configuration from ~/.ridecoach/config.json, then applies
// any credential overrides found in the environment or ~/.ridecoach/.env.
func Load() (*Config, error) {
	path, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, ErrNoConfig
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Apply defaults for missing values
	defaults := DefaultConfig()
	if cfg.Athlete.FTPWatts == 0 {
		cfg.Athlete.FTPWatts = defaults.Athlete.FTPWatts
	}
	if cfg.Athlete.RestingHR == 0 {
		cfg.Athlete.RestingHR = defaults.Athlete.RestingHR
	}
	if cfg.Athlete.MaxHR == 0 {
		cfg.Athlete.MaxHR = defaults.Athlete.MaxHR
	}

	cfg.applyEnvOverrides()
	return &cfg, nil
}

// applyEnvOverrides lets RIDECOACH_CLIENT_ID/RIDECOACH_CLIENT_SECRET take
// precedence over the stored credentials. A ~/.ridecoach/.env file is
// loaded first without clobbering variables already set in the shell.
func (c *Config) applyEnvOverrides() {
	if dir, err := GetConfigDir(); err == nil {
		// Best effort; a missing .env file is the normal case.
		_ = godotenv.Load(filepath.Join(dir, ".env"))
	}
	if id := os.Getenv(envClientID); id != "" {
		c.Strava.ClientID = id
	}
	if secret := os.Getenv(envClientSecret); secret != "" {
		c.Strava.ClientSecret = secret
	}
}

// Save writes the configuration to ~/.ridecoach/config.json
func Save(cfg *Config) error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// CreateExample creates an example config file if none exists
func CreateExample() error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}

	// Check if config already exists
	if _, err := os.Stat(path); err == nil {
		return nil // Config exists, don't overwrite
	}

	example := Config{
		Strava: StravaConfig{
			ClientID:     "YOUR_CLIENT_ID",
			ClientSecret: "YOUR_CLIENT_SECRET",
		},
		Athlete: AthleteConfig{
			FTPWatts:  250,
			RestingHR: 50,
			MaxHR:     185,
		},
	}

	return Save(&example)
}

// Validate checks if the config has required fields
func (c *Config) Validate() error {
	if c.Strava.ClientID == "" || c.Strava.ClientID == "YOUR_CLIENT_ID" {
		return errors.New("strava.client_id is required - get it from https://www.strava.com/settings/api")
	}
	if c.Strava.ClientSecret == "" || c.Strava.ClientSecret == "YOUR_CLIENT_SECRET" {
		return errors.New("strava.client_secret is required - get it from https://www.strava.com/settings/api")
	}

	if c.Athlete.FTPWatts < 0 {
		return fmt.Errorf("athlete.ftp_watts must be positive, got %v", c.Athlete.FTPWatts)
	}

	// Validate resting_hr < max_hr when both are set
	if c.Athlete.RestingHR > 0 && c.Athlete.MaxHR > 0 && c.Athlete.RestingHR >= c.Athlete.MaxHR {
		return fmt.Errorf("athlete.resting_hr (%v) must be less than athlete.max_hr (%v)", c.Athlete.RestingHR, c.Athlete.MaxHR)
	}

	return nil
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".ridecoach", "config.json"), nil
}

// GetConfigDir returns the path to the config directory
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".ridecoach"), nil
}
