package main

import (
	"log/slog"
	"time"

	"github.com/pkg/errors"

	"github.com/veloxuav/flightd/cli"
	"github.com/veloxuav/flightd/msgs"
	"github.com/veloxuav/flightd/params"
	ms "github.com/veloxuav/flightd/settings"
	"github.com/veloxuav/flightd/utils"
)

// maxDeltaTime caps the integration step after stalls, so a hiccup in the
// position stream does not make the trajectory jump.
const maxDeltaTime = 0.1

func main() {
	params.EnsureParamDirectories()
	ms.Settings.LoadWithRetries(5)
	cli.Handle()

	state := State{}

	positionSub := msgs.NewSubscriber[msgs.LocalPosition](msgs.LocalPositionChannel, true)
	defer positionSub.Sub.Msgq.Close()
	tripletSub := msgs.NewSubscriber[msgs.TripletSetpoint](msgs.TripletSetpointChannel, true)
	defer tripletSub.Sub.Msgq.Close()
	inputSub := msgs.NewSubscriber[msgs.FlightdIn](msgs.FlightdInChannel, false)
	defer inputSub.Sub.Msgq.Close()

	pub := msgs.NewPublisher[msgs.TrajectorySetpoint](msgs.TrajectorySetpointChannel)
	extended := ExtendedState{
		Pub:   msgs.NewPublisher[msgs.FlightdExtendedOut](msgs.FlightdExtendedOutChannel),
		state: &state,
	}

	state.PositionTracker.Init(10)
	state.TripletTracker.Init(10)
	wantsTakeoff := utils.TrackedState[bool]{}

	for {
		time.Sleep(ms.LOOP_DELAY)

		for {
			input, success := inputSub.Read()
			if !success {
				break
			}
			ms.Settings.Handle(input)
		}

		if triplet, success := tripletSub.Read(); success {
			state.Triplet = triplet
			state.TripletTracker.Update()
		}

		location, success := positionSub.Read()
		if !success {
			if state.PositionTracker.Stale(ms.INPUT_TIMEOUT) && state.Active {
				slog.Warn("position stream stale, deactivating")
				state.Active = false
			}
			utils.Loge(extended.Send())
			continue
		}
		state.LocalPosition = location
		state.PositionTracker.Update()

		cfg := configFromSettings(ms.Settings)
		now := time.Now()
		deltaTime := now.Sub(state.lastCycle).Seconds()
		state.lastCycle = now
		if deltaTime <= 0 || deltaTime > maxDeltaTime {
			deltaTime = ms.LOOP_DELAY.Seconds()
		}

		if !state.Active {
			last := state.LastSetpoint
			ok := state.LastSetpointSent
			if !ok {
				last, ok = LoadLastSetpoint()
			}
			sp := setpointFromTrajectoryMsg(last)
			if !ok {
				// nothing to resume from, start at the current state
				sp = setpointFromTriplet(msgs.TripletSetpoint{})
			}
			err := state.Task.Activate(sp, stateFromLocalPosition(location), cfg)
			if err != nil {
				utils.Loge(errors.Wrap(err, "could not activate flight task"))
				utils.Loge(extended.Send())
				continue
			}
			state.Active = true
			state.Landed.Update(location.Landed)
			slog.Info("flight task activated")
		}

		// Re-prime the trajectory on the landed edge, so a new takeoff does
		// not inherit the touchdown descent.
		if state.Landed.Update(location.Landed) && location.Landed {
			state.Task.ReActivate(stateFromLocalPosition(location))
			slog.Info("flight task reactivated on ground")
		}

		out := state.Task.Update(state.BuildInput(deltaTime, cfg))

		if wantsTakeoff.Update(out.WantsTakeoff) && out.WantsTakeoff {
			slog.Debug("takeoff demanded", "vertical_vel_setpoint", out.Setpoint.Velocity[2].Or(0))
		}

		if msg, ok := state.ToMessage(out); ok {
			utils.Loge(pub.Send(&msg))
			state.LastSetpoint = msg
			state.LastSetpointSent = true
		}

		state.PersistLastSetpoint()
		utils.Loge(extended.Send())
	}
}
