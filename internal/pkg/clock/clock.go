// Package clock abstracts "now" so past-time validation and the reminder
// sweep window stay testable.
package clock

import "time"

type Clock interface {
	Now() time.Time
}

// System reads the wall clock.
type System struct{}

func (System) Now() time.Time { return time.Now() }

// Fixed always returns the same instant; intended for tests.
type Fixed struct {
	T time.Time
}

func (f Fixed) Now() time.Time { return f.T }
