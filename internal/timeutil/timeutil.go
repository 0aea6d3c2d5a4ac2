package timeutil

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidFormat is returned for time strings that are not "HH:MM".
var ErrInvalidFormat = errors.New("invalid time format")

// ToMinutes converts a "HH:MM" string to minutes since midnight.
func ToMinutes(t string) (int, error) {
	parts := strings.Split(t, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, t)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("%w: bad hour in %q", ErrInvalidFormat, t)
	}

	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("%w: bad minute in %q", ErrInvalidFormat, t)
	}

	return hour*60 + minute, nil
}

// Diff returns the minutes from a to b. Negative when b precedes a;
// callers that need an ordered interval must check that themselves.
func Diff(a, b string) (int, error) {
	am, err := ToMinutes(a)
	if err != nil {
		return 0, err
	}
	bm, err := ToMinutes(b)
	if err != nil {
		return 0, err
	}
	return bm - am, nil
}

// FormatDuration renders a minute count as "2h 15m", "2h" or "45m".
func FormatDuration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	h := minutes / 60
	m := minutes % 60
	if m > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dh", h)
}
