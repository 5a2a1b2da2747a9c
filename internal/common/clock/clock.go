// Package clock abstracts "the current moment" so that date and time
// comparisons against user input are pinned to a single civil time zone
// instead of the host's local zone.
package clock

import "time"

// Clock supplies the current time in a fixed location.
type Clock interface {
	Now() time.Time
	Location() *time.Location
}

type fixedOffsetClock struct {
	loc *time.Location
}

// NewFixedOffset returns a Clock pinned to a UTC offset expressed in hours.
// The Eastern-time deployments this workflow targets use -4.
func NewFixedOffset(offsetHours int) Clock {
	return &fixedOffsetClock{loc: time.FixedZone("fixed", offsetHours*3600)}
}

func (c *fixedOffsetClock) Now() time.Time {
	return time.Now().In(c.loc)
}

func (c *fixedOffsetClock) Location() *time.Location {
	return c.loc
}

// Frozen is a Clock stuck at a single instant, for tests.
type Frozen struct {
	Instant time.Time
}

func (f *Frozen) Now() time.Time {
	return f.Instant
}

func (f *Frozen) Location() *time.Location {
	return f.Instant.Location()
}
