package scoring

import (
	"sort"

	"CreditSentinel/internal/model"
)

const (
	maWindow        = 50
	smoothingWindow = 30
	maxTrendMonths  = 8

	// Per-day sentiment proxy used when blending the trend: above the moving
	// average reads optimistic, below pessimistic.
	proxyAbove = 80.0
	proxyBelow = 60.0

	momentumWeight = 0.7
	proxyWeight    = 0.3
)

// BuildTrend computes the smoothed monthly score history from daily bars.
// Fewer than 50 observations disqualify the series outright since the moving
// average is undefined. The per-day momentum score is blended with the
// price-position proxy, smoothed with a 30-day trailing mean, resampled to
// calendar months (last value per month), and truncated to the most recent
// eight months.
func BuildTrend(bars []model.Bar) []model.TrendPoint {
	if len(bars) < maWindow {
		return nil
	}

	sorted := make([]model.Bar, len(bars))
	copy(sorted, bars)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })

	closes := make([]float64, len(sorted))
	for i, b := range sorted {
		closes[i] = b.Close
	}

	ma := RollingMean(closes, maWindow)

	// Blended per-day score, aligned so combined[i] belongs to day i+maWindow-1.
	combined := make([]float64, len(ma))
	for i, m := range ma {
		c := closes[i+maWindow-1]
		proxy := proxyBelow
		if c > m {
			proxy = proxyAbove
		}
		combined[i] = MomentumScore(c, m)*momentumWeight + proxy*proxyWeight
	}

	smoothed := RollingMean(combined, smoothingWindow)
	if smoothed == nil {
		return nil
	}

	// Resample to calendar months, keeping the last smoothed value per month.
	offset := maWindow + smoothingWindow - 2
	type monthScore struct {
		key   int
		month string
		score float64
	}
	var months []monthScore
	for i, s := range smoothed {
		d := sorted[i+offset].Date
		key := d.Year()*100 + int(d.Month())
		if n := len(months); n > 0 && months[n-1].key == key {
			months[n-1].score = s
			continue
		}
		months = append(months, monthScore{key: key, month: d.Format("Jan"), score: s})
	}
	if len(months) > maxTrendMonths {
		months = months[len(months)-maxTrendMonths:]
	}

	trend := make([]model.TrendPoint, len(months))
	for i, m := range months {
		trend[i] = model.TrendPoint{Month: m.month, Score: m.score}
	}
	return trend
}
