package clock

import "time"

// Clock is the source of "now" for every lifecycle operation.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// New returns the wall clock.
func New() Clock {
	return systemClock{}
}

type fixedClock struct {
	t time.Time
}

func (f fixedClock) Now() time.Time {
	return f.t
}

// Fixed returns a clock that always reports t. Used by tests and replays.
func Fixed(t time.Time) Clock {
	return fixedClock{t: t}
}
