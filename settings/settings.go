// Package settings holds the runtime configuration of flightd, persisted as
// a JSON param file.
package settings

import (
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/veloxuav/flightd/msgs"
	"github.com/veloxuav/flightd/params"
	"github.com/veloxuav/flightd/utils"
)

var (
	Settings = FlightdSettings{}
)

type FlightdSettings struct {
	LogLevel string `json:"log_level"`

	// Kinematic limits. Vertical limits are asymmetric: ascent and descent
	// use different ceilings (NED, climb is negative vertical velocity).
	HorizontalAccel    float64 `json:"horizontal_accel"`
	HorizontalVelMax   float64 `json:"horizontal_vel_max"`
	VerticalAccelUp    float64 `json:"vertical_accel_up"`
	VerticalAccelDown  float64 `json:"vertical_accel_down"`
	VerticalVelMaxUp   float64 `json:"vertical_vel_max_up"`
	VerticalVelMaxDown float64 `json:"vertical_vel_max_down"`
	MaxJerk            float64 `json:"max_jerk"`

	// Default cruise speed, used when the triplet does not carry one.
	CruiseSpeed float64 `json:"cruise_speed"`

	// Proportional gains turning position error into velocity demand.
	HorizontalTrajGain float64 `json:"horizontal_traj_gain"`
	VerticalTrajGain   float64 `json:"vertical_traj_gain"`

	// Altitude tolerance below which a vertical setpoint counts as reached.
	AltitudeAcceptance float64 `json:"altitude_acceptance"`

	// When set, horizontal motion waits for the heading to align with the
	// upcoming segment before accelerating.
	WaitForYawAligned bool `json:"wait_for_yaw_aligned"`
}

func (s *FlightdSettings) Default() {
	s.LogLevel = "error"
	s.HorizontalAccel = 3.0
	s.HorizontalVelMax = 12.0
	s.VerticalAccelUp = 4.0
	s.VerticalAccelDown = 3.0
	s.VerticalVelMaxUp = 3.0
	s.VerticalVelMaxDown = 1.0
	s.MaxJerk = 8.0
	s.CruiseSpeed = 5.0
	s.HorizontalTrajGain = 0.5
	s.VerticalTrajGain = 0.3
	s.AltitudeAcceptance = 0.8
	s.WaitForYawAligned = false
}

func (s *FlightdSettings) Load() (success bool) {
	s.Default() // set defaults so settings not already in param are defaulted
	data, err := params.GetParam(params.FLIGHTD_SETTINGS)
	if err != nil {
		utils.Loge(err)
		return false
	}

	err = json.Unmarshal(data, s)
	if err != nil {
		utils.Loge(err)
		return false
	}

	s.SetLogLevel()

	return true
}

func (s *FlightdSettings) LoadWithRetries(tries int) {
	for range tries {
		if s.Load() {
			break
		}
		time.Sleep(1 * time.Second)
	}
	s.Save()
}

func (s *FlightdSettings) Save() {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		utils.Loge(err)
		return
	}
	err = params.PutParam(params.FLIGHTD_SETTINGS, data)
	if err != nil {
		utils.Loge(err)
		return
	}
}

func (s *FlightdSettings) Unmarshal(data []byte) {
	err := json.Unmarshal(data, s)
	if err != nil {
		utils.Loge(err)
	}
}

// Handle applies one runtime command from the CLI.
func (s *FlightdSettings) Handle(input msgs.FlightdIn) {
	switch input.Type {
	case msgs.InputReloadSettings:
		s.Load()
	case msgs.InputSaveSettings:
		go s.Save()
	case msgs.InputApplySettings:
		s.Unmarshal([]byte(input.Settings))
		s.SetLogLevel()
	case msgs.InputLoadDefaultSettings:
		s.Default()
	case msgs.InputSetLogLevel:
		s.LogLevel = input.Str
		s.SetLogLevel()
	}
}

func (s *FlightdSettings) SetLogLevel() {
	switch strings.ToLower(s.LogLevel) {
	case "debug":
		slog.SetLogLoggerLevel(slog.LevelDebug)
	case "info":
		slog.SetLogLoggerLevel(slog.LevelInfo)
	case "warn":
		slog.SetLogLoggerLevel(slog.LevelWarn)
	case "error":
		slog.SetLogLoggerLevel(slog.LevelError)
	default:
		slog.SetLogLoggerLevel(slog.LevelError)
	}
}
