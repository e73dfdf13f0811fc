package domain

import (
	"errors"
	"math"
	"time"
)

// ErrNegativeInterval is returned when an interval's end precedes its start.
var ErrNegativeInterval = errors.New("end time precedes start time")

// DurationSeconds derives the stored duration for an interval. Every write
// path routes through this function so a persisted duration can never drift
// from its endpoints. Zero-length intervals are valid; inverted ones are not.
func DurationSeconds(start, end time.Time) (int, error) {
	if end.Before(start) {
		return 0, ErrNegativeInterval
	}
	return int(math.Round(end.Sub(start).Seconds())), nil
}

// EndFromDuration is the inverse derivation: start plus a seconds-exact offset.
func EndFromDuration(start time.Time, seconds int) time.Time {
	return start.Add(time.Duration(seconds) * time.Second)
}
