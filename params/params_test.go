package params

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useTempParams(t *testing.T) {
	t.Helper()
	old := ParamsPath
	ParamsPath = filepath.Join(t.TempDir(), "d")
	t.Cleanup(func() { ParamsPath = old })
	EnsureParamDirectories()
}

func TestPutGetRoundtrip(t *testing.T) {
	useTempParams(t)

	path := ParamPath("TestValue")
	require.NoError(t, PutParam(path, []byte("hello")))

	data, err := GetParam(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), data)
}

func TestPutOverwrites(t *testing.T) {
	useTempParams(t)

	path := ParamPath("TestValue")
	require.NoError(t, PutParam(path, []byte("one")))
	require.NoError(t, PutParam(path, []byte("two")))

	data, err := GetParam(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("two"), data)
}

func TestPutLeavesNoTempFiles(t *testing.T) {
	useTempParams(t)

	require.NoError(t, PutParam(ParamPath("TestValue"), []byte("x")))

	files, err := GetParams()
	require.NoError(t, err)
	assert.Equal(t, []string{"TestValue"}, files)
}

func TestRemoveParam(t *testing.T) {
	useTempParams(t)

	path := ParamPath("TestValue")
	require.NoError(t, PutParam(path, []byte("x")))
	require.NoError(t, RemoveParam(path))

	_, err := GetParam(path)
	assert.True(t, os.IsNotExist(err))
}

func TestExists(t *testing.T) {
	useTempParams(t)

	exists, err := Exists(ParamsPath)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = Exists(ParamPath("Nope"))
	require.NoError(t, err)
	assert.False(t, exists)
}
