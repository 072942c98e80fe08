package clock

import "time"

// Clock supplies wall-clock time. Receipts and bills are stamped in local time.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// New returns the process clock.
func New() Clock {
	return SystemClock{}
}
