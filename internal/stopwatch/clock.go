package stopwatch

import "time"

// Clock supplies the current time. The engine only does arithmetic on
// instants obtained from here, so tests can substitute a fake.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock backed by time.Now.
type SystemClock struct{}

// Now returns the current time.
func (SystemClock) Now() time.Time {
	return time.Now()
}
