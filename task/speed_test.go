package task

import (
	"testing"

	"github.com/stretchr/testify/assert"

	m "github.com/veloxuav/flightd/math"
)

func testConfig() Config {
	return Config{
		HorizontalAccel:    3,
		HorizontalVelMax:   12,
		VerticalAccelUp:    4,
		VerticalAccelDown:  3,
		VerticalVelMaxUp:   3,
		VerticalVelMaxDown: 1,
		MaxJerk:            8,
		CruiseSpeed:        5,
		HorizontalTrajGain: 0.5,
		VerticalTrajGain:   0.3,
		AltitudeAcceptance: 0.8,
	}
}

func TestMaxSpeedFromDistanceZero(t *testing.T) {
	assert.InDelta(t, 0, maxSpeedFromDistance(testConfig(), 0), 1e-12)
}

func TestMaxSpeedFromDistanceMonotonic(t *testing.T) {
	cfg := testConfig()
	prev := 0.0
	for d := 0.5; d < 100; d += 0.5 {
		s := maxSpeedFromDistance(cfg, d)
		assert.GreaterOrEqual(t, s, prev)
		assert.LessOrEqual(t, s, d*cfg.HorizontalTrajGain+1e-9)
		prev = s
	}
}

func cornerInput(prev, target, next m.Vector3) Input {
	return Input{
		PrevWaypoint:     prev,
		Waypoint:         target,
		NextWaypoint:     next,
		AcceptanceRadius: 1,
		CruiseSpeed:      5,
		Config:           testConfig(),
	}
}

func TestSpeedAtTargetCollinear(t *testing.T) {
	in := cornerInput(
		m.Vector3{},
		m.Vector3{X: 10},
		m.Vector3{X: 20},
	)
	// straight through at cruise speed
	assert.InDelta(t, 5, speedAtTarget(in), 1e-9)
}

func TestSpeedAtTargetReversal(t *testing.T) {
	in := cornerInput(
		m.Vector3{},
		m.Vector3{X: 10},
		m.Vector3{},
	)
	// turning back requires a full stop
	assert.InDelta(t, 0, speedAtTarget(in), 1e-9)
}

func TestSpeedAtTargetRightAngleSlowsDown(t *testing.T) {
	in := cornerInput(
		m.Vector3{},
		m.Vector3{X: 10},
		m.Vector3{X: 10, Y: 10},
	)
	s := speedAtTarget(in)
	assert.Greater(t, s, 0.0)
	assert.Less(t, s, 5.0)
}

func TestSpeedAtTargetNextCoincides(t *testing.T) {
	in := cornerInput(
		m.Vector3{},
		m.Vector3{X: 10},
		m.Vector3{X: 10},
	)
	assert.Equal(t, 0.0, speedAtTarget(in))
}

func TestSpeedAtTargetWaypointOverlap(t *testing.T) {
	in := cornerInput(
		m.Vector3{X: 9.5},
		m.Vector3{X: 10},
		m.Vector3{X: 20},
	)
	assert.Equal(t, 0.0, speedAtTarget(in))
}

func TestSpeedAtTargetWaitsForYawAlignment(t *testing.T) {
	in := cornerInput(
		m.Vector3{},
		m.Vector3{X: 10},
		m.Vector3{X: 20},
	)
	in.Config.WaitForYawAligned = true
	in.YawAligned = false
	assert.Equal(t, 0.0, speedAtTarget(in))

	in.YawAligned = true
	assert.InDelta(t, 5, speedAtTarget(in), 1e-9)
}
