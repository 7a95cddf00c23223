package main

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/veloxuav/flightd/msgs"
	ms "github.com/veloxuav/flightd/settings"
)

// ExtendedState publishes daemon internals for the interactive TUI at a low
// rate next to the main output channel.
type ExtendedState struct {
	Pub      msgs.Publisher[msgs.FlightdExtendedOut]
	lastSend time.Time
	state    *State
}

func (s *ExtendedState) Send() error {
	if time.Since(s.lastSend) < ms.EXTENDED_OUT_DELAY {
		return nil
	}
	s.lastSend = time.Now()

	out := msgs.FlightdExtendedOut{
		TimestampNs:  time.Now().UnixNano(),
		Settings:     s.marshalSettings(),
		Active:       s.state.Active,
		LastSetpoint: s.state.LastSetpoint,
	}
	if rate := s.state.PositionTracker.DiffMA.Estimate; rate > 0 {
		out.CycleRateHz = 1 / rate
	}

	return s.Pub.Send(&out)
}

func (s *ExtendedState) marshalSettings() string {
	b, err := json.Marshal(ms.Settings)
	if err != nil {
		slog.Warn("failed to marshal settings for extended state")
		return ""
	}
	return string(b)
}
