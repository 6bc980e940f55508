package scoring

// NeutralScore is returned when the moving average is unusable.
const NeutralScore = 70.0

// MomentumScore maps a close price and its 50-day moving average to a 0-100
// score centered at 70: price above the average pushes the score up, below
// pushes it down. A zero moving average yields the neutral score.
func MomentumScore(close, ma float64) float64 {
	if ma == 0 {
		return NeutralScore
	}
	score := NeutralScore + (close-ma)/ma*100
	return Clamp(score, 0, 100)
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
