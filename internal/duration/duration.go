// Package duration parses short human-readable ages such as "3d" or "2w".
package duration

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalid is returned for strings that are not a count followed by a unit.
var ErrInvalid = errors.New("invalid duration")

const day = 24 * time.Hour

var units = map[string]time.Duration{
	"m": time.Minute, "min": time.Minute, "mins": time.Minute,
	"h": time.Hour, "hr": time.Hour, "hrs": time.Hour, "hour": time.Hour, "hours": time.Hour,
	"d": day, "day": day, "days": day,
	"w": 7 * day, "wk": 7 * day, "wks": 7 * day, "week": 7 * day, "weeks": 7 * day,
	"mo": 30 * day, "month": 30 * day, "months": 30 * day,
	"y": 365 * day, "yr": 365 * day, "yrs": 365 * day, "year": 365 * day, "years": 365 * day,
}

// Parse converts strings like "1w", "30d" or "6mo" to a duration.
func Parse(s string) (time.Duration, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	i := strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' })
	if i <= 0 {
		return 0, fmt.Errorf("%w: %q (use e.g. 1w, 30d, 6mo)", ErrInvalid, s)
	}

	n, err := strconv.Atoi(s[:i])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalid, s)
	}
	unit, ok := units[s[i:]]
	if !ok {
		return 0, fmt.Errorf("%w: unknown unit %q", ErrInvalid, s[i:])
	}
	return time.Duration(n) * unit, nil
}

// Since returns the instant the parsed duration before now.
func Since(s string, now time.Time) (time.Time, error) {
	d, err := Parse(s)
	if err != nil {
		return time.Time{}, err
	}
	return now.Add(-d), nil
}
