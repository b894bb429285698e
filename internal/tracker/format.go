package tracker

import (
	"fmt"
	"math"
	"time"

	"timetracker/internal/timelog"
)

// FormatDateTime renders t as "DD-MM-YYYY HH:MM" in local time.
// A nil time renders as an empty string.
func FormatDateTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Local().Format("02-01-2006 15:04")
}

// TotalTime sums the entries' durations as "HH:MM" with minutes rounded.
func TotalTime(entries []timelog.TimeEntry) string {
	var total float64
	for _, e := range entries {
		total += e.DurationHours
	}

	hours := int(math.Floor(total))
	minutes := int(math.Round((total - float64(hours)) * 60))
	if minutes == 60 {
		hours++
		minutes = 0
	}
	return fmt.Sprintf("%02d:%02d", hours, minutes)
}
