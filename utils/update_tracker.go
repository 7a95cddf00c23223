package utils

import (
	"time"

	m "github.com/veloxuav/flightd/math"
)

// UpdateTracker measures the cadence of an input stream with a moving
// average of inter-arrival times.
type UpdateTracker struct {
	LastTime time.Time
	Time     time.Time
	DiffMA   m.MovingAverage
}

func (u *UpdateTracker) Init(maLength int) {
	u.LastTime = time.Now()
	u.Time = time.Now()
	u.DiffMA.Init(maLength)
}

func (u *UpdateTracker) Update() {
	u.LastTime = u.Time
	u.Time = time.Now()
	u.DiffMA.Update(u.Time.Sub(u.LastTime).Seconds())
}

// Stale reports whether no update arrived within maxAge.
func (u *UpdateTracker) Stale(maxAge time.Duration) bool {
	return time.Since(u.Time) > maxAge
}
