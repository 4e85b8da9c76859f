package utils

import (
	"fmt"
	"time"
)

func FormatRoundedUnit(seconds int64) string {
	if seconds < 0 {
		seconds = -seconds
	}
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}
	if seconds > 3600 {
		return fmt.Sprintf("%dh", int64(seconds/3600))
	}
	return fmt.Sprintf("%dm", int64(seconds/60))
}

// FormatTimestamp renders a time the way it appears in the daemon log
func FormatTimestamp(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}
