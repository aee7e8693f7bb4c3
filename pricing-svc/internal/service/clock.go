package service

import "time"

// LocalClock reports the current time in the restaurant's zone so offer
// windows are matched against local wall-clock time.
type LocalClock struct {
	Location *time.Location
}

func NewLocalClock(loc *time.Location) LocalClock {
	return LocalClock{Location: loc}
}

func (c LocalClock) Now() time.Time {
	if c.Location == nil {
		return time.Now()
	}
	return time.Now().In(c.Location)
}
