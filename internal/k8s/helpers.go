package k8s

import (
	"fmt"
	"time"
)

// FormatAge formats a duration in kubectl style ("45s", "5m", "2h", "3d").
func FormatAge(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	}
}

// FormatTimestamp renders a creation timestamp relative to now, "<none>" if unset.
func FormatTimestamp(t time.Time, now time.Time) string {
	if t.IsZero() {
		return "<none>"
	}
	return FormatAge(now.Sub(t))
}
