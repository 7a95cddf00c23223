package task

import (
	m "github.com/veloxuav/flightd/math"
	"github.com/veloxuav/flightd/smoothing"
	"github.com/veloxuav/flightd/utils"
)

// generateTrajectory integrates the three axis generators and overwrites the
// setpoint record with the smoothed jerk-limited result. When any velocity
// setpoint component is still absent here, generation is skipped for the
// cycle and the record is left as prepared; that is a defined degraded
// branch, not an error.
func (t *FlightTask) generateTrajectory(in Input, sp *Setpoint) [3]utils.Option[float64] {
	var jerk [3]utils.Option[float64]

	velSpX, okX := sp.Velocity[0].Get()
	velSpY, okY := sp.Velocity[1].Get()
	velSpZ, okZ := sp.Velocity[2].Get()
	if !okX || !okY || !okZ {
		return jerk
	}

	// Slow the trajectory down by decreasing the integration time based on
	// the position error, but only while the vehicle lags behind the
	// trajectory. Time dilation never speeds the trajectory up.
	posTrajXY := m.Vector2{X: t.trajectory[0].Position(), Y: t.trajectory[1].Position()}
	velTrajXY := m.Vector2{X: t.trajectory[0].Velocity(), Y: t.trajectory[1].Velocity()}
	droneToTrajXY := posTrajXY.Sub(in.Position.XY())
	positionError := droneToTrajXY.Length()

	timeStretch := 1 - m.Constrain(positionError*0.5, 0.0, 1.0)
	if droneToTrajXY.Dot(velTrajXY) < 0 {
		// Already ahead of or passing the trajectory point.
		timeStretch = 1
	}

	var accelSmooth, velSmooth, posSmooth, jerkSmooth [3]float64
	for i := range 3 {
		accelSmooth[i], velSmooth[i], posSmooth[i] = t.trajectory[i].Integrate(in.DeltaTime, timeStretch)
		jerkSmooth[i] = t.trajectory[i].Jerk()
	}

	t.updateTrajConstraints(in.Config, velSpZ)

	// With a small velocity demand and nearly settled states, relax the
	// horizontal jerk limit so the generator converges to an exact stop
	// instead of creeping toward it.
	velSpXY := m.Vector2{X: velSpX, Y: velSpY}
	accelSmoothXY := m.Vector2{X: accelSmooth[0], Y: accelSmooth[1]}
	velSmoothXY := m.Vector2{X: velSmooth[0], Y: velSmooth[1]}
	if velSpXY.Length() < 0.01*in.Config.HorizontalTrajGain &&
		accelSmoothXY.Length() < 0.2 &&
		velSmoothXY.Length() < 0.1 {
		t.trajectory[0].SetMaxJerk(1)
		t.trajectory[1].SetMaxJerk(1)
	}

	velSp := [3]float64{velSpX, velSpY, velSpZ}
	for i := range 3 {
		t.trajectory[i].UpdateDurations(in.DeltaTime, velSp[i])
	}

	// Synchronize x and y only, so that a diagonal stop stays on a line.
	smoothing.TimeSynchronization([]*smoothing.VelocitySmoothing{
		&t.trajectory[0], &t.trajectory[1], &t.trajectory[2],
	}, 2)

	for i := range 3 {
		sp.Position[i].Set(posSmooth[i])
		sp.Velocity[i].Set(velSmooth[i])
		sp.Acceleration[i].Set(accelSmooth[i])
		jerk[i].Set(jerkSmooth[i])
	}

	return jerk
}

// updateTrajConstraints reapplies the axis limits. The vertical limits are
// asymmetric and reselected every cycle from the sign of the vertical
// velocity setpoint: ascending (negative, NED) and descending use different
// ceilings.
func (t *FlightTask) updateTrajConstraints(cfg Config, velSpZ float64) {
	t.trajectory[0].SetMaxAccel(cfg.HorizontalAccel)
	t.trajectory[1].SetMaxAccel(cfg.HorizontalAccel)
	t.trajectory[0].SetMaxVel(cfg.HorizontalVelMax)
	t.trajectory[1].SetMaxVel(cfg.HorizontalVelMax)
	t.trajectory[0].SetMaxJerk(cfg.MaxJerk)
	t.trajectory[1].SetMaxJerk(cfg.MaxJerk)
	t.trajectory[2].SetMaxJerk(cfg.MaxJerk)

	if velSpZ < 0 { // up
		t.trajectory[2].SetMaxAccel(cfg.VerticalAccelUp)
		t.trajectory[2].SetMaxVel(cfg.VerticalVelMaxUp)
	} else { // down
		t.trajectory[2].SetMaxAccel(cfg.VerticalAccelDown)
		t.trajectory[2].SetMaxVel(cfg.VerticalVelMaxDown)
	}
}
