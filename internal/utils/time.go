package utils

import (
	"strings"
	"time"
)

const layoutDate = "2006-01-02"

// ParseDate parses YYYY-MM-DD in local timezone.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(layoutDate, strings.TrimSpace(s), time.Local)
}

// DayBounds returns the inclusive start and end instants of the calendar
// day containing t, local time (00:00:00.000 through 23:59:59.999).
func DayBounds(t time.Time) (time.Time, time.Time) {
	local := t.In(time.Local)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.Local)
	end := start.Add(24*time.Hour - time.Millisecond)
	return start, end
}

// FormatPt renders a timestamp the way pt-PT tickets show it: "02/01/2006, 15:04".
func FormatPt(t time.Time) string {
	return t.In(time.Local).Format("02/01/2006, 15:04")
}

// FormatPtDate renders only the date portion.
func FormatPtDate(t time.Time) string {
	return t.In(time.Local).Format("02/01/2006")
}
