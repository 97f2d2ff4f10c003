package analysis

// LoadTrend describes how weekly training volume is moving.
type LoadTrend string

const (
	LoadBuilding    LoadTrend = "building"
	LoadMaintaining LoadTrend = "maintaining"
	LoadDeclining   LoadTrend = "declining"
	LoadRecovering  LoadTrend = "recovering"
)

// PowerTrend describes how average weekly power is moving.
type PowerTrend string

const (
	PowerImproving PowerTrend = "improving"
	PowerDeclining PowerTrend = "declining"
	PowerStable    PowerTrend = "stable"
)

// ClassifyLoadTrend compares the mean TSS of the two most recent weeks
// against the two before them. With fewer than 3 weeks of data there is
// nothing to compare, so the answer is maintaining.
func ClassifyLoadTrend(weeks []WeeklySummary) LoadTrend {
	if len(weeks) < 3 {
		return LoadMaintaining
	}

	recent := meanTSS(weeks[0:2])
	prior := meanTSS(weeks[2:min(4, len(weeks))])

	if prior == 0 {
		// Any load starting from nothing is growth.
		return LoadBuilding
	}

	change := (recent - prior) / prior
	switch {
	case change > 0.15:
		return LoadBuilding
	case change < -0.30:
		return LoadDeclining
	case change < -0.15:
		return LoadRecovering
	default:
		return LoadMaintaining
	}
}

// ClassifyPowerTrend compares average power across the two most recent
// weeks against the two before them, using only weeks that report power.
// Either group being empty means stable.
func ClassifyPowerTrend(weeks []WeeklySummary) PowerTrend {
	recent := meanPower(weeks, 0, 2)
	prior := meanPower(weeks, 2, 4)
	if recent == nil || prior == nil || *prior == 0 {
		return PowerStable
	}

	change := (*recent - *prior) / *prior
	switch {
	case change > 0.05:
		return PowerImproving
	case change < -0.05:
		return PowerDeclining
	default:
		return PowerStable
	}
}

func meanTSS(weeks []WeeklySummary) float64 {
	if len(weeks) == 0 {
		return 0
	}
	var sum float64
	for _, w := range weeks {
		sum += float64(w.TotalTSS)
	}
	return sum / float64(len(weeks))
}

func meanPower(weeks []WeeklySummary, lo, hi int) *float64 {
	if lo > len(weeks) {
		lo = len(weeks)
	}
	if hi > len(weeks) {
		hi = len(weeks)
	}
	var sum float64
	var count int
	for _, w := range weeks[lo:hi] {
		if w.AvgPower != nil {
			sum += *w.AvgPower
			count++
		}
	}
	if count == 0 {
		return nil
	}
	avg := sum / float64(count)
	return &avg
}
