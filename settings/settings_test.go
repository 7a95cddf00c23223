package settings

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veloxuav/flightd/msgs"
	"github.com/veloxuav/flightd/params"
)

func useTempParams(t *testing.T) {
	t.Helper()
	oldPath := params.ParamsPath
	oldSettings := params.FLIGHTD_SETTINGS
	params.ParamsPath = filepath.Join(t.TempDir(), "d")
	params.FLIGHTD_SETTINGS = params.ParamPath("FlightdSettings")
	t.Cleanup(func() {
		params.ParamsPath = oldPath
		params.FLIGHTD_SETTINGS = oldSettings
	})
	params.EnsureParamDirectories()
}

func TestDefaults(t *testing.T) {
	s := FlightdSettings{}
	s.Default()

	assert.Equal(t, 5.0, s.CruiseSpeed)
	assert.Equal(t, 8.0, s.MaxJerk)
	assert.Equal(t, 3.0, s.VerticalVelMaxUp)
	assert.Equal(t, 1.0, s.VerticalVelMaxDown)
	assert.False(t, s.WaitForYawAligned)
}

func TestSaveLoadRoundtrip(t *testing.T) {
	useTempParams(t)

	s := FlightdSettings{}
	s.Default()
	s.CruiseSpeed = 7.5
	s.WaitForYawAligned = true
	s.Save()

	loaded := FlightdSettings{}
	require.True(t, loaded.Load())
	assert.Equal(t, 7.5, loaded.CruiseSpeed)
	assert.True(t, loaded.WaitForYawAligned)
	// untouched fields keep their defaults
	assert.Equal(t, 8.0, loaded.MaxJerk)
}

func TestLoadMissingFileFails(t *testing.T) {
	useTempParams(t)

	s := FlightdSettings{}
	assert.False(t, s.Load())
	// defaults are still applied
	assert.Equal(t, 5.0, s.CruiseSpeed)
}

func TestHandleApplySettings(t *testing.T) {
	s := FlightdSettings{}
	s.Default()

	s.Handle(msgs.FlightdIn{
		Type:     msgs.InputApplySettings,
		Settings: `{"max_jerk": 4.5}`,
	})

	assert.Equal(t, 4.5, s.MaxJerk)
	// other fields survive a partial apply
	assert.Equal(t, 5.0, s.CruiseSpeed)
}

func TestHandleLoadDefaults(t *testing.T) {
	s := FlightdSettings{}
	s.Default()
	s.CruiseSpeed = 9

	s.Handle(msgs.FlightdIn{Type: msgs.InputLoadDefaultSettings})

	assert.Equal(t, 5.0, s.CruiseSpeed)
}

func TestHandleSetLogLevel(t *testing.T) {
	s := FlightdSettings{}
	s.Default()

	s.Handle(msgs.FlightdIn{Type: msgs.InputSetLogLevel, Str: "debug"})

	assert.Equal(t, "debug", s.LogLevel)
}
