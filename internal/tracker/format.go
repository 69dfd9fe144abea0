package tracker

import (
	"fmt"
	"strings"
	"time"
)

// FormatDuration renders d as "1d 2h 3m 4s", starting from the largest unit d
// reaches. Seconds are always shown; negative durations render as "0s".
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	seconds := int64(d / time.Second)

	var builder strings.Builder
	if d >= 24*time.Hour {
		fmt.Fprintf(&builder, "%dd ", seconds/86400)
	}
	if d >= time.Hour {
		fmt.Fprintf(&builder, "%dh ", seconds/3600%24)
	}
	if d >= time.Minute {
		fmt.Fprintf(&builder, "%dm ", seconds/60%60)
	}
	fmt.Fprintf(&builder, "%ds", seconds%60)
	return builder.String()
}

// Hours converts d to fractional hours, as used by exports.
func Hours(d time.Duration) float64 {
	return float64(d/time.Second) / 3600
}
