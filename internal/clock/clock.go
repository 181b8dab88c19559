// Package clock abstracts the wall clock so month boundaries can be tested.
package clock

import "time"

type Clock interface {
	Now() time.Time
}

type Real struct{}

func (Real) Now() time.Time { return time.Now() }

// Fake is a manually driven clock for tests.
type Fake struct {
	now time.Time
}

func NewFake(t time.Time) *Fake {
	return &Fake{now: t}
}

func (c *Fake) Now() time.Time { return c.now }

func (c *Fake) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}
