package task

import (
	"math"

	m "github.com/veloxuav/flightd/math"
)

// maxSpeedFromDistance returns the highest speed from which the vehicle can
// still stop within brakingDistance, assuming a constant deceleration
// profile with a delay of 2*accel/jerk (the time to swing from one
// acceleration extreme to the other under the jerk limit).
//
// Equation solved: 0 = vel^2 - 2*accel*(dist - vel*2*accel/jerk).
// Near zero distance the square root has a diverging slope, so the result
// is additionally capped at a straight slope of the trajectory gain.
func maxSpeedFromDistance(cfg Config, brakingDistance float64) float64 {
	b := 4 * cfg.HorizontalAccel * cfg.HorizontalAccel / cfg.MaxJerk
	c := -2 * cfg.HorizontalAccel * brakingDistance
	maxSpeed := 0.5 * (-b + math.Sqrt(b*b-4*c))

	return math.Min(maxSpeed, brakingDistance*cfg.HorizontalTrajGain)
}

// speedAtTarget returns the maximum speed at which the current waypoint may
// be passed such that a tangent arc of half the acceptance radius can still
// connect the incoming and outgoing segments at a centripetal acceleration
// of half the horizontal limit. The halved radius tolerates tracking error
// before the waypoint switches; the halved acceleration leaves headroom for
// the jerk-limited transition from line to arc.
//
// The result is zero, forcing a full stop at the waypoint, when the next
// waypoint coincides with the target, when the previous waypoint lies inside
// the acceptance radius, or while waiting for yaw alignment.
func speedAtTarget(in Input) float64 {
	distanceTargetNext := in.Waypoint.XY().Sub(in.NextWaypoint.XY()).Length()
	waypointOverlap := in.Waypoint.XY().Sub(in.PrevWaypoint.XY()).Length() < in.AcceptanceRadius
	yawAlignCheckPass := !in.Config.WaitForYawAligned || in.YawAligned

	if distanceTargetNext < 0.001 || waypointOverlap || !yawAlignCheckPass {
		return 0
	}

	// Speed at which the next waypoint can still be stopped at.
	maxSpeedCurrentNext := maxSpeedFromDistance(in.Config, distanceTargetNext)

	// Half the angle between the two segments seen from the target.
	toPrev := in.Waypoint.XY().Sub(in.PrevWaypoint.XY()).Unit()
	toNext := in.Waypoint.XY().Sub(in.NextWaypoint.XY()).Unit()
	alpha := math.Acos(m.Constrain(toPrev.Dot(toNext), -1, 1)) / 2

	arcSpeed := math.Sqrt(in.Config.HorizontalAccel / 2 * in.AcceptanceRadius / 2 * math.Tan(alpha))

	return math.Min(math.Min(arcSpeed, maxSpeedCurrentNext), in.CruiseSpeed)
}
