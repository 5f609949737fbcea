// Package services provides repository interfaces and SQLite implementations
// for per-user state: the garden with its watering log, the plant history,
// and the wishlist. Plant data itself lives in the catalog; repositories
// store plant ids and the display snapshot taken when an entry is created.
package services

import (
	"errors"
	"time"
)

// Sentinel errors returned by repositories.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrInvalidReason = errors.New("invalid stop reason")
)

// DayLayout is the calendar-day format of watering log entries (UTC).
const DayLayout = "2006-01-02"

// Clock is the time source repositories use for timestamps and for deciding
// what "today" is.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func clockOrSystem(c Clock) Clock {
	if c == nil {
		return systemClock{}
	}
	return c
}

func day(t time.Time) string {
	return t.UTC().Format(DayLayout)
}
