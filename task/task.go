// Package task synthesizes smooth, jerk-limited trajectory setpoints for
// line segments between waypoints. Once per control cycle it resolves a
// sparse setpoint into a dense, time-synchronized 3-axis trajectory plus a
// yaw setpoint, absorbing estimator resets along the way.
//
// Axis convention is NED: Z points down, climbing is negative vertical
// velocity.
package task

import (
	"math"

	"github.com/pkg/errors"

	m "github.com/veloxuav/flightd/math"
	"github.com/veloxuav/flightd/smoothing"
)

// FlightTask owns the three per-axis trajectory generators and the state
// that has to survive between cycles. All methods run on one goroutine.
type FlightTask struct {
	trajectory    [3]smoothing.VelocitySmoothing
	yawSpPrev     float64
	resetCounters ResetCounters
	wantsTakeoff  bool
}

// Activate installs the previous commanded setpoint as the initial
// trajectory state. Absent fields of last are filled from the current
// estimate first, so a partially known setpoint still yields a fully
// defined start.
func (t *FlightTask) Activate(last Setpoint, st State, cfg Config) error {
	if !finiteVector(st.Position) || !finiteVector(st.Velocity) {
		return errors.New("position or velocity estimate not finite")
	}

	checkSetpoints(&last, st)
	for i := range 3 {
		accel, _ := last.Acceleration[i].Get()
		vel, _ := last.Velocity[i].Get()
		pos, _ := last.Position[i].Get()
		t.trajectory[i].Reset(accel, vel, pos)
	}

	t.yawSpPrev = last.Yaw.Or(st.Yaw)
	velSpZ, _ := last.Velocity[2].Get()
	t.updateTrajConstraints(cfg, velSpZ)
	t.resetCounters = st.ResetCounters

	return nil
}

// ReActivate resets the trajectory for a vehicle standing on ground:
// horizontal axes to rest at the current position, the vertical axis with a
// small initial rate to prime a smooth takeoff.
func (t *FlightTask) ReActivate(st State) {
	for i := range 2 {
		t.trajectory[i].Reset(0, 0, st.Position.Array()[i])
	}
	t.trajectory[2].Reset(0, 0.7, st.Position.Z)
	t.resetCounters = st.ResetCounters
}

// Update runs one cycle and returns the dense setpoint record.
func (t *FlightTask) Update(in Input) Output {
	sp := in.Setpoint

	t.checkResetCounters(in)
	t.wantsTakeoff = false

	t.prepareSetpoints(in, &sp)
	jerk := t.generateTrajectory(in, &sp)

	if !sp.Yaw.Valid() && !sp.YawRate.Valid() {
		// no valid heading from the mission layer, generate one here
		t.generateHeading(in, &sp)
	}
	if yaw, ok := sp.Yaw.Get(); ok {
		t.yawSpPrev = yaw
	}

	return Output{
		Setpoint:     sp,
		Jerk:         jerk,
		WantsTakeoff: t.wantsTakeoff,
	}
}

// WantsTakeoff reports whether the last cycle demanded an ascent strong
// enough for external takeoff detection.
func (t *FlightTask) WantsTakeoff() bool { return t.wantsTakeoff }

// Trajectory exposes the axis generator for one axis. Used by tests and
// introspection, never for external mutation during flight.
func (t *FlightTask) Trajectory(axis int) *smoothing.VelocitySmoothing {
	return &t.trajectory[axis]
}

func finiteVector(v m.Vector3) bool {
	for _, c := range v.Array() {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}
