// Package util holds small formatting helpers for command line output.
package util

import (
	"fmt"
	"time"
)

// FormatBytes prints sizes in binary units, e.g. "512 B" or "2.0 KB".
func FormatBytes(n int64) string {
	const step = 1024
	if n < step {
		return fmt.Sprintf("%d B", n)
	}

	value := float64(n) / step
	prefix := 0
	for value >= step && prefix < len(binaryPrefixes)-1 {
		value /= step
		prefix++
	}

	return fmt.Sprintf("%.1f %cB", value, binaryPrefixes[prefix])
}

const binaryPrefixes = "KMGTPE"

// FormatDuration prints "0.4s", "45s", "2m30s" or "1h30m". Whole seconds are
// rounded, only sub-second durations keep a decimal.
func FormatDuration(d time.Duration) string {
	if d > 0 && d < time.Second {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}

	total := int(d.Round(time.Second) / time.Second)
	hours, minutes, seconds := total/3600, total/60%60, total%60

	switch {
	case hours > 0:
		return fmt.Sprintf("%dh%dm", hours, minutes)
	case minutes > 0:
		return fmt.Sprintf("%dm%ds", minutes, seconds)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}

// FormatDistance formats kilometres, switching to metres below one kilometre.
func FormatDistance(km float64) string {
	if km < 1 {
		return fmt.Sprintf("%d m", int(km*1000+0.5))
	}
	if km < 100 {
		return fmt.Sprintf("%.1f km", km)
	}

	return fmt.Sprintf("%.0f km", km)
}
