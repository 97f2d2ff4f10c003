package plan

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writePlanFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plan.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("writing plan file: %v", err)
	}
	return path
}

func TestLoadPath(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		expectError bool
		sentinel    error
		checkFn     func(t *testing.T, p *Plan)
	}{
		{
			name: "full plan",
			content: `weekly_hours_target: 10
goal_type: gran fondo
ftp_watts: 275
active: true
`,
			checkFn: func(t *testing.T, p *Plan) {
				if p.WeeklyHoursTarget != 10 {
					t.Errorf("WeeklyHoursTarget = %v, want 10", p.WeeklyHoursTarget)
				}
				if p.GoalType != "gran fondo" {
					t.Errorf("GoalType = %q, want gran fondo", p.GoalType)
				}
				if p.FTPWatts != 275 {
					t.Errorf("FTPWatts = %v, want 275", p.FTPWatts)
				}
			},
		},
		{
			name: "inactive plan is treated as absent",
			content: `weekly_hours_target: 10
active: false
`,
			expectError: true,
			sentinel:    ErrNoPlan,
		},
		{
			name: "plan without FTP override",
			content: `weekly_hours_target: 6
active: true
`,
			checkFn: func(t *testing.T, p *Plan) {
				if p.FTPWatts != 0 {
					t.Errorf("FTPWatts = %v, want 0 when not set", p.FTPWatts)
				}
			},
		},
		{
			name:        "negative hours target rejected",
			content:     "weekly_hours_target: -2\nactive: true\n",
			expectError: true,
		},
		{
			name:        "malformed yaml",
			content:     "weekly_hours_target: [not a number\n",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := loadPath(writePlanFile(t, tt.content))
			if tt.expectError {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if tt.sentinel != nil && !errors.Is(err, tt.sentinel) {
					t.Fatalf("loadPath() error = %v, want %v", err, tt.sentinel)
				}
				return
			}
			if err != nil {
				t.Fatalf("loadPath() error: %v", err)
			}
			tt.checkFn(t, p)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := loadPath(filepath.Join(t.TempDir(), "plan.yaml"))
	if !errors.Is(err, ErrNoPlan) {
		t.Errorf("loadPath() on missing file error = %v, want ErrNoPlan", err)
	}
}
