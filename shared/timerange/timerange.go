// Package timerange provides wall-clock time helpers for booking intervals.
// Times are minute-granular "HH:mm" strings and intervals are half-open,
// so a range ending at 10:00 does not collide with one starting at 10:00.
package timerange

import (
	"regexp"

	"ruang/shared/failure"
)

var pattern = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)

var ErrInvalidFormat = failure.BadRequestFromString("time must be in HH:mm format")

// IsValid reports whether s is a well-formed HH:mm time.
func IsValid(s string) bool {
	return pattern.MatchString(s)
}

// ToMinutes converts an HH:mm time to minutes since midnight.
func ToMinutes(s string) (int, error) {
	if !IsValid(s) {
		return 0, ErrInvalidFormat
	}

	sep := len(s) - 3
	hours := atoi(s[:sep])
	minutes := atoi(s[sep+1:])

	return hours*60 + minutes, nil
}

// OverlapsMinutes reports whether [startA, endA) and [startB, endB) intersect.
func OverlapsMinutes(startA, endA, startB, endB int) bool {
	return startA < endB && startB < endA
}

// Overlaps reports whether two HH:mm ranges intersect.
func Overlaps(startA, endA, startB, endB string) (bool, error) {
	sa, err := ToMinutes(startA)
	if err != nil {
		return false, err
	}

	ea, err := ToMinutes(endA)
	if err != nil {
		return false, err
	}

	sb, err := ToMinutes(startB)
	if err != nil {
		return false, err
	}

	eb, err := ToMinutes(endB)
	if err != nil {
		return false, err
	}

	return OverlapsMinutes(sa, ea, sb, eb), nil
}

// atoi is a minimal digit parser; inputs are already pattern-checked.
func atoi(s string) int {
	n := 0
	for _, c := range s {
		n = n*10 + int(c-'0')
	}

	return n
}
