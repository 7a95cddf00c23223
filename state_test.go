package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veloxuav/flightd/msgs"
	ms "github.com/veloxuav/flightd/settings"
	"github.com/veloxuav/flightd/task"
	"github.com/veloxuav/flightd/utils"
)

func f(v float64) *float64 { return &v }

func TestSetpointFromTripletSparse(t *testing.T) {
	tp := msgs.TripletSetpoint{
		Position: [3]*float64{f(1), f(2), nil},
		Velocity: [3]*float64{nil, nil, f(-0.5)},
		Yaw:      f(0.3),
	}

	sp := setpointFromTriplet(tp)

	v, ok := sp.Position[0].Get()
	require.True(t, ok)
	assert.Equal(t, 1.0, v)
	assert.False(t, sp.Position[2].Valid())
	assert.False(t, sp.Velocity[0].Valid())
	v, ok = sp.Velocity[2].Get()
	require.True(t, ok)
	assert.Equal(t, -0.5, v)
	assert.True(t, sp.Yaw.Valid())
	assert.False(t, sp.YawRate.Valid())
}

func TestBuildInputWaypointFallbacks(t *testing.T) {
	s := State{}
	s.LocalPosition.Position = msgs.Point3{X: 1, Y: 2, Z: -3}
	s.Triplet = msgs.TripletSetpoint{
		Waypoint: &msgs.Point3{X: 10},
	}

	var cfg task.Config
	cfg.CruiseSpeed = 5
	in := s.BuildInput(0.02, cfg)

	// missing prev falls back to the vehicle, missing next to the target
	assert.Equal(t, 1.0, in.PrevWaypoint.X)
	assert.Equal(t, 10.0, in.NextWaypoint.X)
	assert.Equal(t, 10.0, in.Waypoint.X)
	assert.Equal(t, 5.0, in.CruiseSpeed)
}

func TestBuildInputCruiseOverride(t *testing.T) {
	s := State{}
	s.Triplet.CruiseSpeed = f(3)

	var cfg task.Config
	cfg.CruiseSpeed = 5
	assert.Equal(t, 3.0, s.BuildInput(0.02, cfg).CruiseSpeed)

	s.Triplet.CruiseSpeed = f(0)
	assert.Equal(t, 5.0, s.BuildInput(0.02, cfg).CruiseSpeed)
}

func TestToMessageSkipsSparseOutput(t *testing.T) {
	s := State{}
	var out task.Output
	_, ok := s.ToMessage(out)
	assert.False(t, ok)
}

func TestToMessageDenseOutput(t *testing.T) {
	s := State{}
	var out task.Output
	for i := range 3 {
		out.Setpoint.Position[i].Set(float64(i))
		out.Setpoint.Velocity[i].Set(float64(i) * 2)
		out.Setpoint.Acceleration[i].Set(0)
		out.Jerk[i] = utils.Some(0.5)
	}
	out.Setpoint.Yaw.Set(1.1)
	out.WantsTakeoff = true

	msg, ok := s.ToMessage(out)
	require.True(t, ok)
	assert.Equal(t, 2.0, msg.Position.Z)
	assert.Equal(t, 4.0, msg.Velocity.Z)
	assert.Equal(t, 0.5, msg.Jerk.X)
	assert.Equal(t, 1.1, msg.Yaw)
	assert.True(t, msg.WantsTakeoff)
}

func TestConfigFromSettingsMirrorsFields(t *testing.T) {
	s := ms.FlightdSettings{}
	s.Default()
	cfg := configFromSettings(s)

	assert.Equal(t, s.HorizontalAccel, cfg.HorizontalAccel)
	assert.Equal(t, s.VerticalVelMaxDown, cfg.VerticalVelMaxDown)
	assert.Equal(t, s.MaxJerk, cfg.MaxJerk)
	assert.Equal(t, s.WaitForYawAligned, cfg.WaitForYawAligned)
}

func TestSetpointFromTrajectoryMsgDense(t *testing.T) {
	msg := msgs.TrajectorySetpoint{
		Position: msgs.Point3{X: 1, Y: 2, Z: 3},
		Velocity: msgs.Point3{X: 4},
		Yaw:      0.7,
	}
	sp := setpointFromTrajectoryMsg(msg)

	for i := range 3 {
		assert.True(t, sp.Position[i].Valid())
		assert.True(t, sp.Velocity[i].Valid())
		assert.True(t, sp.Acceleration[i].Valid())
	}
	v, _ := sp.Velocity[0].Get()
	assert.Equal(t, 4.0, v)
	assert.True(t, sp.Yaw.Valid())
}
