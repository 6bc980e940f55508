package scoring

import "fmt"

// FormatNumber renders a magnitude as a short human-readable string, scaling
// by thousand/million/billion/trillion. A nil value renders as "N/A". The
// currency flag prefixes a dollar sign.
func FormatNumber(n *float64, currency bool) string {
	if n == nil {
		return "N/A"
	}
	v := *n
	abs := v
	if abs < 0 {
		abs = -abs
	}

	var s string
	switch {
	case abs >= 1e12:
		s = fmt.Sprintf("%.2fT", v/1e12)
	case abs >= 1e9:
		s = fmt.Sprintf("%.2fB", v/1e9)
	case abs >= 1e6:
		s = fmt.Sprintf("%.2fM", v/1e6)
	case abs >= 1e3:
		s = fmt.Sprintf("%.2fK", v/1e3)
	default:
		s = fmt.Sprintf("%.2f", v)
	}
	if currency {
		return "$" + s
	}
	return s
}

// FormatPercent renders a fractional ratio as a percentage with two decimals.
func FormatPercent(n *float64) string {
	if n == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.2f%%", *n*100)
}

// FormatRatio renders a plain ratio with two decimals.
func FormatRatio(n *float64) string {
	if n == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", *n)
}
