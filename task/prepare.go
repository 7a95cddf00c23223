package task

import (
	m "github.com/veloxuav/flightd/math"
)

// prepareSetpoints turns the sparse setpoint into a fully specified velocity
// setpoint. A set position component generates a velocity target toward it;
// a velocity component set next to it acts as a one-sided limiter instead of
// a target. Components that carry only a velocity are left untouched.
func (t *FlightTask) prepareSetpoints(in Input, sp *Setpoint) {
	if in.Config.WaitForYawAligned && !in.YawAligned {
		// Hold position until the heading aligns with the segment.
		for i := range 3 {
			sp.Velocity[i].Set(0)
		}
		return
	}

	posTraj := m.Vector3{
		X: t.trajectory[0].Position(),
		Y: t.trajectory[1].Position(),
		Z: t.trajectory[2].Position(),
	}

	px, okX := sp.Position[0].Get()
	py, okY := sp.Position[1].Get()
	if okX && okY {
		trajToDest := m.Vector2{X: px, Y: py}.Sub(posTraj.XY())
		uTrajToDest := trajToDest.Unit()

		hasReachedAltitude := false
		if pz, ok := sp.Position[2].Get(); ok {
			hasReachedAltitude = m.Abs(pz-posTraj.Z) < in.Config.AltitudeAcceptance
		}

		speedSpTrack := maxSpeedFromDistance(in.Config, trajToDest.Length())
		if hasReachedAltitude {
			speedSpTrack = m.Constrain(speedSpTrack, speedAtTarget(in), in.CruiseSpeed)
		} else {
			// Full horizontal speed while still changing altitude, the
			// corner slowdown only applies once on the target altitude.
			speedSpTrack = m.Constrain(speedSpTrack, 0, in.CruiseSpeed)
		}

		velSpXY := uTrajToDest.Scale(speedSpTrack)
		for i, computed := range [2]float64{velSpXY.X, velSpXY.Y} {
			if limiter, ok := sp.Velocity[i].Get(); ok {
				sp.Velocity[i].Set(m.ConstrainOneSide(computed, limiter))
			} else {
				sp.Velocity[i].Set(computed)
			}
		}
	}

	if pz, ok := sp.Position[2].Get(); ok {
		// Simple P loop generating the vertical velocity target.
		velSpZ := (pz - posTraj.Z) * in.Config.VerticalTrajGain
		if limiter, ok := sp.Velocity[2].Get(); ok {
			velSpZ = m.ConstrainOneSide(velSpZ, limiter)
		}
		sp.Velocity[2].Set(velSpZ)

		t.wantsTakeoff = velSpZ < -0.3
	}
}
