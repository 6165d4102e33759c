package utils

import (
	"testing"
	"time"
)

func TestDayBoundsCoverWholeDay(t *testing.T) {
	day, err := ParseDate("2026-09-12")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}

	start, end := DayBounds(day)
	if start.Hour() != 0 || start.Minute() != 0 || start.Second() != 0 {
		t.Fatalf("start = %v", start)
	}
	if end.Hour() != 23 || end.Minute() != 59 || end.Second() != 59 {
		t.Fatalf("end = %v", end)
	}
	if !end.After(start) || end.Sub(start) >= 24*time.Hour {
		t.Fatalf("bounds wrong: %v .. %v", start, end)
	}
	if start.Day() != 12 || end.Day() != 12 {
		t.Fatalf("bounds left the day: %v .. %v", start, end)
	}
}

func TestParseDateRejectsOtherLayouts(t *testing.T) {
	for _, in := range []string{"12/09/2026", "2026-9-12", "amanhã", ""} {
		if _, err := ParseDate(in); err == nil {
			t.Fatalf("ParseDate(%q) should fail", in)
		}
	}
}

func TestFormatPt(t *testing.T) {
	ts := time.Date(2026, 9, 12, 8, 5, 0, 0, time.Local)
	if got := FormatPt(ts); got != "12/09/2026, 08:05" {
		t.Fatalf("FormatPt = %q", got)
	}
	if got := FormatPtDate(ts); got != "12/09/2026" {
		t.Fatalf("FormatPtDate = %q", got)
	}
}
