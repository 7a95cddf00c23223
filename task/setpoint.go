package task

import (
	m "github.com/veloxuav/flightd/math"
	"github.com/veloxuav/flightd/utils"
)

// Setpoint is a sparse setpoint record. Each field is either absent, a
// target, or (for velocity components next to a set position component) a
// one-sided directional speed limiter.
type Setpoint struct {
	Position     [3]utils.Option[float64]
	Velocity     [3]utils.Option[float64]
	Acceleration [3]utils.Option[float64]
	Yaw          utils.Option[float64]
	YawRate      utils.Option[float64]
}

// checkSetpoints fills every absent field from the current state: position
// and velocity from the estimate, acceleration with zero, yaw from the
// current heading. Used once at activation on the previous setpoint.
func checkSetpoints(sp *Setpoint, st State) {
	pos := st.Position.Array()
	vel := st.Velocity.Array()
	for i := range 3 {
		if !sp.Position[i].Valid() {
			sp.Position[i].Set(pos[i])
		}
		if !sp.Velocity[i].Valid() {
			sp.Velocity[i].Set(vel[i])
		}
		// No acceleration estimate available
		if !sp.Acceleration[i].Valid() {
			sp.Acceleration[i].Set(0)
		}
	}
	if !sp.Yaw.Valid() {
		sp.Yaw.Set(st.Yaw)
	}
}

// State is the per-cycle estimator output.
type State struct {
	Position      m.Vector3
	Velocity      m.Vector3
	Yaw           float64
	ResetCounters ResetCounters
}

// ResetCounters are the monotonically increasing estimator reset counters.
// Horizontal position and velocity share one counter each across both axes.
type ResetCounters struct {
	Xy  uint32
	Vxy uint32
	Z   uint32
	Vz  uint32
}

// Config are the kinematic limits and gains for one cycle. The caller builds
// it once per cycle; the task never reads global settings.
type Config struct {
	HorizontalAccel    float64
	HorizontalVelMax   float64
	VerticalAccelUp    float64
	VerticalAccelDown  float64
	VerticalVelMaxUp   float64
	VerticalVelMaxDown float64
	MaxJerk            float64
	CruiseSpeed        float64
	HorizontalTrajGain float64
	VerticalTrajGain   float64
	AltitudeAcceptance float64
	WaitForYawAligned  bool
}

// Input carries everything one Update cycle consumes.
type Input struct {
	DeltaTime float64

	State
	Setpoint Setpoint

	PrevWaypoint     m.Vector3
	Waypoint         m.Vector3
	NextWaypoint     m.Vector3
	AcceptanceRadius float64

	CruiseSpeed float64
	YawAligned  bool

	Config Config
}

// Output is the dense setpoint record of one cycle. When trajectory
// generation was skipped (an axis had neither a position nor a velocity
// target) the affected fields stay absent and Jerk is not set.
type Output struct {
	Setpoint     Setpoint
	Jerk         [3]utils.Option[float64]
	WantsTakeoff bool
}
