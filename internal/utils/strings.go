package utils

import (
	"sort"
	"strconv"
	"strings"
)

// TrimOrEmpty normalizes user input without turning nil into "nil".
func TrimOrEmpty(s string) string {
	return strings.TrimSpace(s)
}

// SplitFullName breaks a full name on the first whitespace token:
// "Maria Silva" -> ("Maria", "Silva"); a single token keeps the last
// name empty.
func SplitFullName(full string) (first, last string) {
	parts := strings.Fields(full)
	if len(parts) == 0 {
		return "", ""
	}
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

// JoinSeatNumbers renders a sorted comma-joined seat list, the format the
// tickets table stores ("3,4").
func JoinSeatNumbers(seats []int) string {
	sorted := append([]int(nil), seats...)
	sort.Ints(sorted)
	parts := make([]string, 0, len(sorted))
	for _, s := range sorted {
		parts = append(parts, strconv.Itoa(s))
	}
	return strings.Join(parts, ",")
}

// SplitSeatNumbers parses a stored comma-joined seat list; malformed
// fragments are skipped.
func SplitSeatNumbers(raw string) []int {
	out := []int{}
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			continue
		}
		out = append(out, n)
	}
	return out
}

// DisplayTicketNumber strips the fixed 9-character issue prefix for
// display; shorter values pass through unchanged.
func DisplayTicketNumber(stored string) string {
	if len(stored) > 9 {
		return stored[9:]
	}
	return stored
}

// SafeFilenamePart sanitizes a value for use inside a download filename.
func SafeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}
