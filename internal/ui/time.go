package ui

import (
	"fmt"
	"time"
)

// FormatTimeAgo returns a compact age string like "2m ago".
func FormatTimeAgo(then time.Time, now time.Time) string {
	age := FormatTimeAgeShort(then, now)
	if age == "-" {
		return age
	}
	return age + " ago"
}

// FormatTimeAgeShort returns a compact age string like "2m".
func FormatTimeAgeShort(then time.Time, now time.Time) string {
	if then.IsZero() || now.IsZero() {
		return "-"
	}
	return FormatDurationShort(now.Sub(then))
}

// FormatDurationShort formats a duration using short units (s/m/h/d).
func FormatDurationShort(duration time.Duration) string {
	if duration < 0 {
		duration = 0
	}

	duration = duration.Truncate(time.Second)
	seconds := int64(duration.Seconds())
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}

	minutes := seconds / 60
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}

	hours := minutes / 60
	if hours < 24 {
		return fmt.Sprintf("%dh", hours)
	}

	days := hours / 24
	return fmt.Sprintf("%dd", days)
}

// FormatTimestamp renders an absolute timestamp in local time.
func FormatTimestamp(value time.Time) string {
	if value.IsZero() {
		return "-"
	}
	return value.Local().Format("2006-01-02 15:04:05")
}
