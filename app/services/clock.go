package services

import "time"

// Clock returns the current time. Services default to UTC wall time; tests
// inject fixed clocks.
type Clock func() time.Time

func utcNow() time.Time { return time.Now().UTC() }

func clockOrDefault(c Clock) Clock {
	if c == nil {
		return utcNow
	}
	return func() time.Time { return c().UTC() }
}
