package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pkg/errors"

	m "github.com/veloxuav/flightd/math"
	"github.com/veloxuav/flightd/msgs"
	ms "github.com/veloxuav/flightd/settings"
	"github.com/veloxuav/flightd/task"
)

type simulationSettings struct {
	TargetX          float64
	TargetY          float64
	TargetZ          float64
	AcceptanceRadius float64
	CruiseSpeed      float64
	Rate             float64
	Duration         float64
}

// simulate runs the flight task offline, feeding the generated setpoint back
// as a perfectly tracked state. One JSON record per cycle goes to stdout.
func simulate(sim simulationSettings) error {
	if sim.Rate <= 0 || sim.Duration <= 0 {
		return errors.New("rate and duration must be positive")
	}

	ms.Settings.Default()
	cfg := taskConfig(ms.Settings)
	if sim.CruiseSpeed > 0 {
		cfg.CruiseSpeed = sim.CruiseSpeed
	}

	ft := task.FlightTask{}
	st := task.State{}
	var sp task.Setpoint
	if err := ft.Activate(sp, st, cfg); err != nil {
		return errors.Wrap(err, "could not activate flight task")
	}

	target := m.Vector3{X: sim.TargetX, Y: sim.TargetY, Z: sim.TargetZ}
	deltaTime := 1 / sim.Rate
	steps := int(sim.Duration * sim.Rate)
	enc := json.NewEncoder(os.Stdout)

	for i := 0; i < steps; i++ {
		var setpoint task.Setpoint
		setpoint.Position[0].Set(target.X)
		setpoint.Position[1].Set(target.Y)
		setpoint.Position[2].Set(target.Z)

		out := ft.Update(task.Input{
			DeltaTime:        deltaTime,
			State:            st,
			Setpoint:         setpoint,
			PrevWaypoint:     st.Position,
			Waypoint:         target,
			NextWaypoint:     target,
			AcceptanceRadius: sim.AcceptanceRadius,
			CruiseSpeed:      cfg.CruiseSpeed,
			Config:           cfg,
		})

		record := msgs.TrajectorySetpoint{
			TimestampNs: int64(float64(i) * deltaTime * 1e9),
			Position: msgs.Point3{
				X: out.Setpoint.Position[0].Or(st.Position.X),
				Y: out.Setpoint.Position[1].Or(st.Position.Y),
				Z: out.Setpoint.Position[2].Or(st.Position.Z),
			},
			Velocity: msgs.Point3{
				X: out.Setpoint.Velocity[0].Or(0),
				Y: out.Setpoint.Velocity[1].Or(0),
				Z: out.Setpoint.Velocity[2].Or(0),
			},
			Acceleration: msgs.Point3{
				X: out.Setpoint.Acceleration[0].Or(0),
				Y: out.Setpoint.Acceleration[1].Or(0),
				Z: out.Setpoint.Acceleration[2].Or(0),
			},
			Jerk: msgs.Point3{
				X: out.Jerk[0].Or(0),
				Y: out.Jerk[1].Or(0),
				Z: out.Jerk[2].Or(0),
			},
			Yaw:          out.Setpoint.Yaw.Or(st.Yaw),
			WantsTakeoff: out.WantsTakeoff,
		}
		if err := enc.Encode(record); err != nil {
			return errors.Wrap(err, "could not encode setpoint record")
		}

		// Feed the trajectory back as a perfectly tracked vehicle.
		st.Position = m.Vector3{X: record.Position.X, Y: record.Position.Y, Z: record.Position.Z}
		st.Velocity = m.Vector3{X: record.Velocity.X, Y: record.Velocity.Y, Z: record.Velocity.Z}
		st.Yaw = record.Yaw

		if st.Position.Sub(target).Length() < sim.AcceptanceRadius &&
			st.Velocity.Length() < 0.05 {
			fmt.Fprintf(os.Stderr, "reached target after %.2fs\n", float64(i)*deltaTime)
			break
		}
	}

	return nil
}

func taskConfig(s ms.FlightdSettings) task.Config {
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
