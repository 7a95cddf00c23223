package task

import (
	m "github.com/veloxuav/flightd/math"
)

// generateHeading points the yaw setpoint along the trajectory when there is
// enough speed and distance to do so, otherwise it holds the previously
// commanded yaw. The thresholds prevent yaw oscillation at low speed and
// near the waypoint.
func (t *FlightTask) generateHeading(in Input, sp *Setpoint) {
	if !t.generateHeadingAlongTraj(in, sp) {
		sp.Yaw.Set(t.yawSpPrev)
	}
}

func (t *FlightTask) generateHeadingAlongTraj(in Input, sp *Setpoint) bool {
	velSpXY := m.Vector2{
		X: sp.Velocity[0].Or(0),
		Y: sp.Velocity[1].Or(0),
	}
	trajToTarget := in.Waypoint.XY().Sub(in.Position.XY())

	if velSpXY.Length() > 0.1 && trajToTarget.Length() > in.AcceptanceRadius {
		sp.Yaw.Set(velSpXY.Heading())
		return true
	}

	return false
}
