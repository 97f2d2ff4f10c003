package strava

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"
)

func TestWaitRecordsUsage(t *testing.T) {
	rl := NewRateLimiter()

	if err := rl.Wait(context.Background()); err != nil {
		t.Fatalf("Wait() error: %v", err)
	}

	short, daily := rl.Status()
	if short != shortRequestLimit-1 {
		t.Errorf("short remaining = %d, want %d", short, shortRequestLimit-1)
	}
	if daily != dailyRequestLimit-1 {
		t.Errorf("daily remaining = %d, want %d", daily, dailyRequestLimit-1)
	}
}

func TestWaitCancelledWhileExhausted(t *testing.T) {
	rl := NewRateLimiter()
	rl.shortUsage = rl.shortLimit

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := rl.Wait(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Wait() error = %v, want context.Canceled", err)
	}
}

func TestWaitResetsExpiredWindow(t *testing.T) {
	rl := NewRateLimiter()
	rl.shortUsage = rl.shortLimit
	rl.shortResetsAt = time.Now().Add(-time.Second)

	if err := rl.Wait(context.Background()); err != nil {
		t.Fatalf("Wait() error: %v", err)
	}

	short, _ := rl.Status()
	if short != shortRequestLimit-1 {
		t.Errorf("short remaining after reset = %d, want %d", short, shortRequestLimit-1)
	}
}

func TestUpdateFromHeaders(t *testing.T) {
	tests := []struct {
		name      string
		usage     string
		limit     string
		wantShort int
		wantDaily int
	}{
		{
			name:      "usage and limit",
			usage:     "34,512",
			limit:     "200,2000",
			wantShort: 200 - 34,
			wantDaily: 2000 - 512,
		},
		{
			name:      "usage only",
			usage:     "10,100",
			wantShort: shortRequestLimit - 10,
			wantDaily: dailyRequestLimit - 100,
		},
		{
			name:      "malformed usage ignored",
			usage:     "lots",
			wantShort: shortRequestLimit,
			wantDaily: dailyRequestLimit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rl := NewRateLimiter()

			h := http.Header{}
			if tt.usage != "" {
				h.Set("X-RateLimit-Usage", tt.usage)
			}
			if tt.limit != "" {
				h.Set("X-RateLimit-Limit", tt.limit)
			}
			rl.UpdateFromHeaders(h)

			short, daily := rl.Status()
			if short != tt.wantShort {
				t.Errorf("short remaining = %d, want %d", short, tt.wantShort)
			}
			if daily != tt.wantDaily {
				t.Errorf("daily remaining = %d, want %d", daily, tt.wantDaily)
			}
		})
	}
}
