package main

import (
	"encoding/json"
	"time"

	m "github.com/veloxuav/flightd/math"
	"github.com/veloxuav/flightd/msgs"
	"github.com/veloxuav/flightd/params"
	ms "github.com/veloxuav/flightd/settings"
	"github.com/veloxuav/flightd/task"
	"github.com/veloxuav/flightd/utils"
)

// State is the daemon side of the flight task: the task itself plus the last
// messages seen on each input channel and edge trackers for activation.
type State struct {
	Task   task.FlightTask
	Active bool

	LocalPosition msgs.LocalPosition
	Triplet       msgs.TripletSetpoint

	Landed          utils.TrackedState[bool]
	PositionTracker utils.UpdateTracker
	TripletTracker  utils.UpdateTracker

	LastSetpoint     msgs.TrajectorySetpoint
	LastSetpointSent bool

	lastCycle   time.Time
	lastPersist time.Time
}

func configFromSettings(s ms.FlightdSettings) task.Config {
	return task.Config{
		HorizontalAccel:    s.HorizontalAccel,
		HorizontalVelMax:   s.HorizontalVelMax,
		VerticalAccelUp:    s.VerticalAccelUp,
		VerticalAccelDown:  s.VerticalAccelDown,
		VerticalVelMaxUp:   s.VerticalVelMaxUp,
		VerticalVelMaxDown: s.VerticalVelMaxDown,
		MaxJerk:            s.MaxJerk,
		CruiseSpeed:        s.CruiseSpeed,
		HorizontalTrajGain: s.HorizontalTrajGain,
		VerticalTrajGain:   s.VerticalTrajGain,
		AltitudeAcceptance: s.AltitudeAcceptance,
		WaitForYawAligned:  s.WaitForYawAligned,
	}
}

func point3ToVector(p msgs.Point3) m.Vector3 {
	return m.Vector3{X: p.X, Y: p.Y, Z: p.Z}
}

func stateFromLocalPosition(lp msgs.LocalPosition) task.State {
	return task.State{
		Position: point3ToVector(lp.Position),
		Velocity: point3ToVector(lp.Velocity),
		Yaw:      lp.Yaw,
		ResetCounters: task.ResetCounters{
			Xy:  lp.XyResetCounter,
			Vxy: lp.VxyResetCounter,
			Z:   lp.ZResetCounter,
			Vz:  lp.VzResetCounter,
		},
	}
}

func setpointFromTriplet(tp msgs.TripletSetpoint) task.Setpoint {
	var sp task.Setpoint
	for i := range 3 {
		sp.Position[i] = utils.FromPtr(tp.Position[i])
		sp.Velocity[i] = utils.FromPtr(tp.Velocity[i])
		sp.Acceleration[i] = utils.FromPtr(tp.Acceleration[i])
	}
	sp.Yaw = utils.FromPtr(tp.Yaw)
	sp.YawRate = utils.FromPtr(tp.YawRate)
	return sp
}

// setpointFromTrajectoryMsg rebuilds a dense setpoint from a previously
// published record, for seamless activation after a restart.
func setpointFromTrajectoryMsg(t msgs.TrajectorySetpoint) task.Setpoint {
	var sp task.Setpoint
	pos := [3]float64{t.Position.X, t.Position.Y, t.Position.Z}
	vel := [3]float64{t.Velocity.X, t.Velocity.Y, t.Velocity.Z}
	accel := [3]float64{t.Acceleration.X, t.Acceleration.Y, t.Acceleration.Z}
	for i := range 3 {
		sp.Position[i].Set(pos[i])
		sp.Velocity[i].Set(vel[i])
		sp.Acceleration[i].Set(accel[i])
	}
	sp.Yaw.Set(t.Yaw)
	return sp
}

// BuildInput assembles the per-cycle task input from the latest messages and
// a settings snapshot. The waypoint triplet degrades gracefully: a missing
// target falls back to the current position, a missing previous waypoint to
// the current position and a missing next waypoint to the target, which makes
// the corner speed logic demand a full stop there.
func (s *State) BuildInput(deltaTime float64, cfg task.Config) task.Input {
	st := stateFromLocalPosition(s.LocalPosition)

	waypoint := st.Position
	if s.Triplet.Waypoint != nil {
		waypoint = point3ToVector(*s.Triplet.Waypoint)
	}
	prev := st.Position
	if s.Triplet.PrevWaypoint != nil {
		prev = point3ToVector(*s.Triplet.PrevWaypoint)
	}
	next := waypoint
	if s.Triplet.NextWaypoint != nil {
		next = point3ToVector(*s.Triplet.NextWaypoint)
	}

	cruise := cfg.CruiseSpeed
	if s.Triplet.CruiseSpeed != nil && *s.Triplet.CruiseSpeed > 0 {
		cruise = *s.Triplet.CruiseSpeed
	}

	return task.Input{
		DeltaTime:        deltaTime,
		State:            st,
		Setpoint:         setpointFromTriplet(s.Triplet),
		PrevWaypoint:     prev,
		Waypoint:         waypoint,
		NextWaypoint:     next,
		AcceptanceRadius: s.Triplet.AcceptanceRadius,
		CruiseSpeed:      cruise,
		YawAligned:       s.Triplet.YawAligned,
		Config:           cfg,
	}
}

// ToMessage converts one cycle output to the wire record. ok is false when
// trajectory generation was skipped this cycle; nothing should be published
// then and the previous record stands.
func (s *State) ToMessage(out task.Output) (msg msgs.TrajectorySetpoint, ok bool) {
	for i := range 3 {
		if !out.Setpoint.Velocity[i].Valid() || !out.Setpoint.Position[i].Valid() {
			return msg, false
		}
	}

	msg.TimestampNs = time.Now().UnixNano()
	msg.Position = msgs.Point3{
		X: out.Setpoint.Position[0].Or(0),
		Y: out.Setpoint.Position[1].Or(0),
		Z: out.Setpoint.Position[2].Or(0),
	}
	msg.Velocity = msgs.Point3{
		X: out.Setpoint.Velocity[0].Or(0),
		Y: out.Setpoint.Velocity[1].Or(0),
		Z: out.Setpoint.Velocity[2].Or(0),
	}
	msg.Acceleration = msgs.Point3{
		X: out.Setpoint.Acceleration[0].Or(0),
		Y: out.Setpoint.Acceleration[1].Or(0),
		Z: out.Setpoint.Acceleration[2].Or(0),
	}
	msg.Jerk = msgs.Point3{
		X: out.Jerk[0].Or(0),
		Y: out.Jerk[1].Or(0),
		Z: out.Jerk[2].Or(0),
	}
	msg.Yaw = out.Setpoint.Yaw.Or(s.LocalPosition.Yaw)
	msg.WantsTakeoff = out.WantsTakeoff

	return msg, true
}

// PersistLastSetpoint writes the last published record to the param store at
// a low rate, so a restarted daemon can activate from it.
func (s *State) PersistLastSetpoint() {
	if !s.LastSetpointSent || time.Since(s.lastPersist) < time.Second {
		return
	}
	s.lastPersist = time.Now()

	data, err := json.Marshal(s.LastSetpoint)
	if err != nil {
		utils.Loge(err)
		return
	}
	utils.Loge(params.PutParam(params.LAST_SETPOINT, data))
}

// LoadLastSetpoint reads the persisted record back. ok is false on a fresh
// param store or an unreadable record.
func LoadLastSetpoint() (msg msgs.TrajectorySetpoint, ok bool) {
	data, err := params.GetParam(params.LAST_SETPOINT)
	if err != nil {
		return msg, false
	}
	if err := json.Unmarshal(data, &msg); err != nil {
		utils.Logwe(err)
		return msg, false
	}
	return msg, true
}
