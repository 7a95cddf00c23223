package utils

import (
	"time"
)

// TrackedState remembers the previous value of a signal and when it last
// changed, so callers can act on edges instead of levels.
type TrackedState[T comparable] struct {
	LastValue   T
	Value       T
	UpdatedTime time.Time
}

func (t *TrackedState[T]) Update(val T) (changed bool) {
	if t.Value != val {
		t.LastValue = t.Value
		t.Value = val
		t.UpdatedTime = time.Now()
		return true
	}
	return false
}
