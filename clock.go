package gbce

import "time"

// Clock abstracts the time source so that trade timestamps and window cutoffs
// can be controlled.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock samples the wall clock.
var SystemClock Clock = systemClock{}
