// Package msgs defines the message types flightd exchanges over msgq and
// generic JSON publishers/subscribers for them.
package msgs

// Channel names.
const (
	LocalPositionChannel      = "localPosition"
	TripletSetpointChannel    = "tripletSetpoint"
	TrajectorySetpointChannel = "trajectorySetpoint"
	FlightdInChannel          = "flightdIn"
	FlightdExtendedOutChannel = "flightdExtendedOut"
)

type Point3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// LocalPosition is the estimator output consumed every cycle. The reset
// counters increase monotonically whenever the estimator applies a
// discontinuous correction to the corresponding channel.
type LocalPosition struct {
	TimestampNs int64 `json:"timestamp_ns"`

	Position Point3  `json:"position"`
	Velocity Point3  `json:"velocity"`
	Yaw      float64 `json:"yaw"`

	XyResetCounter  uint32 `json:"xy_reset_counter"`
	VxyResetCounter uint32 `json:"vxy_reset_counter"`
	ZResetCounter   uint32 `json:"z_reset_counter"`
	VzResetCounter  uint32 `json:"vz_reset_counter"`

	Landed bool `json:"landed"`
}

// TripletSetpoint carries the local waypoint triplet and the sparse setpoint
// from the mission layer. Nil fields are unspecified: a nil velocity
// component next to a set position component acts as a one-sided speed
// limiter downstream, see the task package.
type TripletSetpoint struct {
	TimestampNs int64 `json:"timestamp_ns"`

	PrevWaypoint *Point3 `json:"prev_waypoint"`
	Waypoint     *Point3 `json:"waypoint"`
	NextWaypoint *Point3 `json:"next_waypoint"`

	AcceptanceRadius float64  `json:"acceptance_radius"`
	CruiseSpeed      *float64 `json:"cruise_speed"`

	Position     [3]*float64 `json:"position"`
	Velocity     [3]*float64 `json:"velocity"`
	Acceleration [3]*float64 `json:"acceleration"`
	Yaw          *float64    `json:"yaw"`
	YawRate      *float64    `json:"yaw_rate"`

	YawAligned bool `json:"yaw_aligned"`
}

// TrajectorySetpoint is the dense per-cycle output: no unspecified fields
// remain for axes that had a target.
type TrajectorySetpoint struct {
	TimestampNs int64 `json:"timestamp_ns"`

	Position     Point3  `json:"position"`
	Velocity     Point3  `json:"velocity"`
	Acceleration Point3  `json:"acceleration"`
	Jerk         Point3  `json:"jerk"`
	Yaw          float64 `json:"yaw"`

	WantsTakeoff bool `json:"wants_takeoff"`
}

// FlightdIn carries runtime commands from the CLI to an active daemon.
type FlightdIn struct {
	Type InputType `json:"type"`
	Str  string    `json:"str,omitempty"`
	// Settings carries a partial FlightdSettings JSON document for
	// applySettings; unmentioned fields keep their current values.
	Settings string `json:"settings,omitempty"`
}

type InputType string

const (
	InputReloadSettings      InputType = "reloadSettings"
	InputSaveSettings        InputType = "saveSettings"
	InputApplySettings       InputType = "applySettings"
	InputLoadDefaultSettings InputType = "loadDefaultSettings"
	InputSetLogLevel         InputType = "setLogLevel"
)

// FlightdExtendedOut mirrors daemon internals for the interactive TUI.
// Published at a low rate next to the main output channel.
type FlightdExtendedOut struct {
	TimestampNs int64   `json:"timestamp_ns"`
	Settings    string  `json:"settings"`
	Active      bool    `json:"active"`
	CycleRateHz float64 `json:"cycle_rate_hz"`

	LastSetpoint TrajectorySetpoint `json:"last_setpoint"`
}
