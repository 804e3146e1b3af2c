// Package clock provides time utilities for the application
package clock

import "time"

//go:generate mockgen -destination=mock/mock.go -package=mockclock github.com/KirkDiggler/cobblemon-transporter/internal/pkg/clock Clock

// DateLayout is the calendar date format used in creature records
const DateLayout = "2006-01-02"

// Clock provides time functionality
type Clock interface {
	Now() time.Time
}

// Real implements Clock using actual system time
type Real struct{}

// Now returns the current time
func (c *Real) Now() time.Time {
	return time.Now()
}

// New returns a new real clock
func New() Clock {
	return &Real{}
}

// Today formats the clock's current date as a record date
func Today(c Clock) string {
	return c.Now().Format(DateLayout)
}
