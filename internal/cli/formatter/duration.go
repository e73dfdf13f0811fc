package formatter

import (
	"fmt"
	"math"
	"strings"
)

// FormatDurationHuman renders seconds as prose, e.g. "2 hrs 30 mins",
// "45 mins", "30 secs". Seconds only appear for sub-minute totals or right
// after the first minute, where they still carry information.
func FormatDurationHuman(totalSeconds int) string {
	if totalSeconds <= 0 {
		return "0 mins"
	}

	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60

	var parts []string
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%d hr%s", hours, plural(hours)))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%d min%s", minutes, plural(minutes)))
	}
	if (hours == 0 && minutes == 0) || (hours == 0 && minutes < 2 && seconds > 0) {
		parts = append(parts, fmt.Sprintf("%d sec%s", seconds, plural(seconds)))
	}
	return strings.Join(parts, " ")
}

// FormatHoursHuman renders decimal hours the same way, e.g. 2.5 becomes
// "2 hrs 30 mins".
func FormatHoursHuman(hours float64) string {
	if hours <= 0 {
		return "0 mins"
	}
	return FormatDurationHuman(int(math.Round(hours * 3600)))
}

// FormatTimerDisplay renders seconds as HH:MM:SS for the live timer, where
// second precision matters.
func FormatTimerDisplay(totalSeconds int) string {
	if totalSeconds < 0 {
		totalSeconds = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", totalSeconds/3600, (totalSeconds%3600)/60, totalSeconds%60)
}

// FormatDurationCompact renders seconds tersely for dense layouts, e.g.
// "2h 30m", "45m", "30s".
func FormatDurationCompact(totalSeconds int) string {
	if totalSeconds <= 0 {
		return "0m"
	}

	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60

	var parts []string
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	if hours == 0 && minutes == 0 {
		parts = append(parts, fmt.Sprintf("%ds", seconds))
	}
	return strings.Join(parts, " ")
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
