package scoring

import "errors"

// SMA computes the simple moving average of the last `period` values.
func SMA(values []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(values) < period {
		return 0, errors.New("not enough data for SMA calculation")
	}
	sum := 0.0
	for i := len(values) - period; i < len(values); i++ {
		sum += values[i]
	}
	return sum / float64(period), nil
}

// RollingMean computes a trailing rolling mean over the series. The result
// has len(values)-window+1 entries; result[i] is the mean of
// values[i : i+window]. Returns nil when the series is shorter than the
// window, mirroring how the first window-1 positions are undefined.
func RollingMean(values []float64, window int) []float64 {
	if window <= 0 || len(values) < window {
		return nil
	}
	out := make([]float64, 0, len(values)-window+1)
	sum := 0.0
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		if i >= window-1 {
			out = append(out, sum/float64(window))
		}
	}
	return out
}
