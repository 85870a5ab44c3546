package domain

import (
	"sync"
	"time"
)

// EpochStart is the fixed start of every fetch window. The Plano Real
// introduction date, the earliest point where all tracked series exist.
var EpochStart = time.Date(1994, time.July, 1, 0, 0, 0, 0, time.UTC)

// DateRange is an inclusive fetch window. Start is never after End.
type DateRange struct {
	Start time.Time
	End   time.Time
}

var (
	brasiliaOnce sync.Once
	brasiliaLoc  *time.Location
)

// Brasilia returns the America/Sao_Paulo location, falling back to a fixed
// UTC-3 offset when tzdata is not available on the host.
func Brasilia() *time.Location {
	brasiliaOnce.Do(func() {
		loc, err := time.LoadLocation("America/Sao_Paulo")
		if err != nil {
			loc = time.FixedZone("BRT", -3*60*60)
		}
		brasiliaLoc = loc
	})
	return brasiliaLoc
}

// DefaultRange builds the standard fetch window: EpochStart through tomorrow
// in Brasília civil time. The one-day overshoot tolerates provider timezone
// skew around midnight.
func DefaultRange(now time.Time) DateRange {
	end := civilDate(now.In(Brasilia()).AddDate(0, 0, 1))
	return DateRange{Start: EpochStart, End: end}
}

// Contains reports whether the civil date of t falls within the range.
func (r DateRange) Contains(t time.Time) bool {
	d := civilDate(t)
	return !d.Before(civilDate(r.Start)) && !d.After(civilDate(r.End))
}

// Valid reports whether Start <= End.
func (r DateRange) Valid() bool {
	return !r.Start.After(r.End)
}

// civilDate truncates t to its calendar date in UTC.
func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
