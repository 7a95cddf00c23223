package task

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/veloxuav/flightd/math"
)

const dt = 0.02

func activatedTask(t *testing.T, st State) *FlightTask {
	t.Helper()
	ft := &FlightTask{}
	require.NoError(t, ft.Activate(Setpoint{}, st, testConfig()))
	return ft
}

// missionInput builds a cycle input flying from prev toward target.
func missionInput(st State, target m.Vector3) Input {
	var sp Setpoint
	sp.Position[0].Set(target.X)
	sp.Position[1].Set(target.Y)
	sp.Position[2].Set(target.Z)

	return Input{
		DeltaTime:        dt,
		State:            st,
		Setpoint:         sp,
		PrevWaypoint:     m.Vector3{},
		Waypoint:         target,
		NextWaypoint:     target,
		AcceptanceRadius: 1,
		CruiseSpeed:      5,
		Config:           testConfig(),
	}
}

// track runs cycles with the vehicle perfectly following the trajectory.
func track(ft *FlightTask, st State, target m.Vector3, seconds float64) (State, Output) {
	var out Output
	steps := int(seconds / dt)
	for range steps {
		out = ft.Update(missionInput(st, target))
		st.Position = m.Vector3{
			X: out.Setpoint.Position[0].Or(st.Position.X),
			Y: out.Setpoint.Position[1].Or(st.Position.Y),
			Z: out.Setpoint.Position[2].Or(st.Position.Z),
		}
		st.Velocity = m.Vector3{
			X: out.Setpoint.Velocity[0].Or(0),
			Y: out.Setpoint.Velocity[1].Or(0),
			Z: out.Setpoint.Velocity[2].Or(0),
		}
	}
	return st, out
}

func TestActivateRejectsNonFiniteState(t *testing.T) {
	ft := &FlightTask{}
	st := State{Position: m.Vector3{X: math.NaN()}}
	assert.Error(t, ft.Activate(Setpoint{}, st, testConfig()))

	st = State{Velocity: m.Vector3{Z: math.Inf(1)}}
	assert.Error(t, ft.Activate(Setpoint{}, st, testConfig()))
}

func TestActivateFillsFromEstimate(t *testing.T) {
	st := State{
		Position: m.Vector3{X: 1, Y: 2, Z: -3},
		Velocity: m.Vector3{X: 0.5},
		Yaw:      0.3,
	}
	ft := activatedTask(t, st)

	assert.Equal(t, 1.0, ft.Trajectory(0).Position())
	assert.Equal(t, 2.0, ft.Trajectory(1).Position())
	assert.Equal(t, -3.0, ft.Trajectory(2).Position())
	assert.Equal(t, 0.5, ft.Trajectory(0).Velocity())
	assert.Equal(t, 0.0, ft.Trajectory(0).Acceleration())
}

func TestCheckSetpointsKeepsProvidedFields(t *testing.T) {
	var sp Setpoint
	sp.Position[0].Set(7)
	sp.Yaw.Set(1.2)

	checkSetpoints(&sp, State{Position: m.Vector3{X: 1, Y: 2, Z: 3}, Yaw: 0.4})

	v, _ := sp.Position[0].Get()
	assert.Equal(t, 7.0, v)
	v, _ = sp.Position[1].Get()
	assert.Equal(t, 2.0, v)
	v, _ = sp.Yaw.Get()
	assert.Equal(t, 1.2, v)
	v, _ = sp.Acceleration[2].Get()
	assert.Equal(t, 0.0, v)
}

func TestReActivatePrimesTakeoff(t *testing.T) {
	ft := &FlightTask{}
	ft.ReActivate(State{Position: m.Vector3{X: 1, Y: -1, Z: -2}})

	assert.Equal(t, 0.0, ft.Trajectory(0).Velocity())
	assert.Equal(t, 0.0, ft.Trajectory(1).Velocity())
	assert.Equal(t, 1.0, ft.Trajectory(0).Position())
	assert.Equal(t, -1.0, ft.Trajectory(1).Position())
	assert.Equal(t, 0.7, ft.Trajectory(2).Velocity())
	assert.Equal(t, -2.0, ft.Trajectory(2).Position())
	assert.Equal(t, 0.0, ft.Trajectory(2).Acceleration())
}

func TestFliesStraightTowardTarget(t *testing.T) {
	ft := activatedTask(t, State{})
	st, out := track(ft, State{}, m.Vector3{X: 10}, 1.5)

	assert.Greater(t, st.Velocity.X, 1.0)
	assert.InDelta(t, 0, st.Velocity.Y, 1e-9)
	assert.InDelta(t, 0, st.Velocity.Z, 1e-6)
	assert.Greater(t, st.Position.X, 0.5)
	// heading points along the motion
	yaw, ok := out.Setpoint.Yaw.Get()
	require.True(t, ok)
	assert.InDelta(t, 0, yaw, 1e-9)
}

func TestArrivesAndStops(t *testing.T) {
	ft := activatedTask(t, State{})
	st, _ := track(ft, State{}, m.Vector3{X: 10}, 20)

	assert.InDelta(t, 10, st.Position.X, 0.1)
	assert.InDelta(t, 0, st.Velocity.Length(), 0.05)
}

func TestCruiseSpeedRespected(t *testing.T) {
	ft := activatedTask(t, State{})
	st := State{}
	maxSpeed := 0.0
	for range int(20 / dt) {
		out := ft.Update(missionInput(st, m.Vector3{X: 100}))
		st.Position.X = out.Setpoint.Position[0].Or(st.Position.X)
		st.Velocity.X = out.Setpoint.Velocity[0].Or(0)
		maxSpeed = math.Max(maxSpeed, st.Velocity.Length())
	}
	assert.LessOrEqual(t, maxSpeed, 5+1e-6)
	assert.InDelta(t, 5, maxSpeed, 0.1)
}

func TestWantsTakeoffOnClimbDemand(t *testing.T) {
	ft := activatedTask(t, State{})
	out := ft.Update(missionInput(State{}, m.Vector3{Z: -5}))

	assert.True(t, out.WantsTakeoff)
	assert.True(t, ft.WantsTakeoff())
}

func TestNoTakeoffWhenHoldingAltitude(t *testing.T) {
	ft := activatedTask(t, State{})
	out := ft.Update(missionInput(State{}, m.Vector3{X: 5}))

	assert.False(t, out.WantsTakeoff)
}

func TestResetCounterAbsorbsPositionJump(t *testing.T) {
	st := State{}
	ft := activatedTask(t, st)
	st, _ = track(ft, st, m.Vector3{X: 10}, 1)
	velBefore := ft.Trajectory(0).Velocity()

	st.Position = m.Vector3{X: st.Position.X + 3, Y: 1}
	st.ResetCounters.Xy++
	ft.checkResetCounters(missionInput(st, m.Vector3{X: 10}))

	// both horizontal positions follow the estimate exactly
	assert.Equal(t, st.Position.X, ft.Trajectory(0).Position())
	assert.Equal(t, st.Position.Y, ft.Trajectory(1).Position())
	// velocity stays continuous
	assert.Equal(t, velBefore, ft.Trajectory(0).Velocity())
}

func TestResetCounterVelocityOnly(t *testing.T) {
	st := State{}
	ft := activatedTask(t, st)
	st, _ = track(ft, st, m.Vector3{X: 10}, 1)
	posBefore := ft.Trajectory(0).Position()

	st.Velocity = m.Vector3{X: st.Velocity.X + 1}
	st.ResetCounters.Vxy++
	in := missionInput(st, m.Vector3{X: 10})
	in.DeltaTime = 0
	ft.checkResetCounters(in)

	assert.Equal(t, posBefore, ft.Trajectory(0).Position())
	assert.Equal(t, st.Velocity.X, ft.Trajectory(0).Velocity())
}

func TestSkipsGenerationWithoutTargets(t *testing.T) {
	ft := activatedTask(t, State{})
	in := missionInput(State{}, m.Vector3{})
	in.Setpoint = Setpoint{}

	out := ft.Update(in)

	assert.False(t, out.Setpoint.Velocity[0].Valid())
	assert.False(t, out.Jerk[0].Valid())
	// heading still falls back to the previous one
	assert.True(t, out.Setpoint.Yaw.Valid())
}

func TestYawHeldNearTarget(t *testing.T) {
	st := State{Yaw: 0.9}
	ft := activatedTask(t, st)
	out := ft.Update(missionInput(st, m.Vector3{X: 0.2}))

	// inside the acceptance radius the previous yaw stands
	yaw, ok := out.Setpoint.Yaw.Get()
	require.True(t, ok)
	assert.Equal(t, 0.9, yaw)
}

func TestExplicitYawPassesThrough(t *testing.T) {
	ft := activatedTask(t, State{})
	in := missionInput(State{}, m.Vector3{X: 10})
	in.Setpoint.Yaw.Set(2.5)

	out := ft.Update(in)

	yaw, ok := out.Setpoint.Yaw.Get()
	require.True(t, ok)
	assert.Equal(t, 2.5, yaw)
}

func TestYawHoldFollowsLastCommandedYaw(t *testing.T) {
	// The hold target tracks the last commanded yaw, including one supplied
	// explicitly by the mission layer, not just the yaw at activation.
	ft := activatedTask(t, State{Yaw: 0.1})
	in := missionInput(State{}, m.Vector3{X: 10})
	in.Setpoint.Yaw.Set(2.5)
	ft.Update(in)

	// next cycle: inside the acceptance radius, no explicit yaw
	out := ft.Update(missionInput(State{}, m.Vector3{X: 0.2}))

	yaw, ok := out.Setpoint.Yaw.Get()
	require.True(t, ok)
	assert.Equal(t, 2.5, yaw)
}

func TestVelocityLimiterConstrainsDescent(t *testing.T) {
	st := State{}
	ft := activatedTask(t, st)
	in := missionInput(st, m.Vector3{Z: 20})
	in.Setpoint.Velocity[2].Set(0.4)

	out := ft.Update(in)

	vz, ok := out.Setpoint.Velocity[2].Get()
	require.True(t, ok)
	assert.LessOrEqual(t, vz, 0.4+1e-9)
	assert.GreaterOrEqual(t, vz, 0.0)
}

func TestYawAlignmentGateHoldsPosition(t *testing.T) {
	ft := activatedTask(t, State{})
	in := missionInput(State{}, m.Vector3{X: 10})
	in.Config.WaitForYawAligned = true
	in.YawAligned = false

	out := ft.Update(in)

	for i := range 3 {
		v, ok := out.Setpoint.Velocity[i].Get()
		require.True(t, ok)
		assert.InDelta(t, 0, v, 1e-9)
	}
}

func TestVerticalSharesHorizontalStretch(t *testing.T) {
	// A large horizontal tracking error slows all three axes, including the
	// vertical one. The vehicle is held 3 m behind the trajectory.
	st := State{}
	ft := activatedTask(t, st)
	target := m.Vector3{X: 20, Z: -10}

	for range int(1 / dt) {
		ft.Update(missionInput(st, target))
	}
	posBehind := ft.Trajectory(2).Position()

	st2 := State{}
	ft2 := activatedTask(t, st2)
	for range int(1 / dt) {
		out := ft2.Update(missionInput(st2, target))
		st2.Position = m.Vector3{
			X: out.Setpoint.Position[0].Or(0),
			Y: out.Setpoint.Position[1].Or(0),
			Z: out.Setpoint.Position[2].Or(0),
		}
		st2.Velocity = m.Vector3{
			X: out.Setpoint.Velocity[0].Or(0),
			Y: out.Setpoint.Velocity[1].Or(0),
			Z: out.Setpoint.Velocity[2].Or(0),
		}
	}
	posTracked := ft2.Trajectory(2).Position()

	// the lagging run must have made less vertical progress
	assert.Greater(t, posBehind, posTracked)
}
