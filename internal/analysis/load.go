package analysis

import (
	"math"
	"time"

	"ridecoach/internal/store"
)

// LoadMetrics holds the current chronic/acute load balance.
type LoadMetrics struct {
	CTL int // Chronic Training Load (42-day EWMA) - "Fitness"
	ATL int // Acute Training Load (7-day EWMA) - "Fatigue"
	TSB int // Training Stress Balance (CTL - ATL) - "Form"
}

const (
	ctlTimeConstant = 42.0
	atlTimeConstant = 7.0
	loadWindowDays  = 90
)

// ComputeLoad integrates daily TSS over the trailing 90 days into CTL, ATL
// and TSB. Days with no rides contribute zero load; an empty ride history
// yields all zeros.
func ComputeLoad(rides []store.Ride, now time.Time) LoadMetrics {
	daily := make(map[string]float64)
	for _, r := range rides {
		key := r.StartDate.UTC().Format("2006-01-02")
		daily[key] += float64(EstimateTSS(r))
	}

	// Walk the window oldest to newest so the averages weight recent
	// training most heavily.
	var ctl, atl float64
	for i := loadWindowDays - 1; i >= 0; i-- {
		tss := daily[now.UTC().AddDate(0, 0, -i).Format("2006-01-02")]
		ctl += (tss - ctl) / ctlTimeConstant
		atl += (tss - atl) / atlTimeConstant
	}

	ctlOut := int(math.Round(ctl))
	atlOut := int(math.Round(atl))
	return LoadMetrics{
		CTL: ctlOut,
		ATL: atlOut,
		TSB: ctlOut - atlOut,
	}
}

// FormDescription returns a human-readable description of TSB.
func FormDescription(tsb int) string {
	switch {
	case tsb > 25:
		return "Very fresh (possibly detrained)"
	case tsb > 10:
		return "Fresh and ready to race"
	case tsb > 0:
		return "Neutral - good for training"
	case tsb > -10:
		return "Slightly fatigued"
	case tsb > -25:
		return "Tired but building fitness"
	default:
		return "Very fatigued - rest needed"
	}
}
