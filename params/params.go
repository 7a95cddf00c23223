// Package params is a flock guarded file store for persistent daemon state.
// Writes are atomic: data lands in a temp file that is fsynced and renamed
// into place while the directory lock is held.
package params

import (
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/gofrs/flock"
	"github.com/pkg/errors"
)

var (
	ParamsPath string = defaultParamsPath()
)

// Params
var (
	FLIGHTD_SETTINGS = ParamPath("FlightdSettings")
	LAST_SETPOINT    = ParamPath("LastTrajectorySetpoint")
)

func defaultParamsPath() string {
	exists, err := Exists("/data/params/d")
	if err != nil {
		slog.Warn("could not check if /data/params/d exists", "error", err)
	}
	if exists {
		return "/data/params/d"
	}
	return "params/d"
}

// Exists returns whether the given file or directory exists
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, errors.Wrap(err, "could not check param file stats")
}

func EnsureParamDirectories() {
	err := os.MkdirAll(ParamsPath, 0o775)
	if err != nil {
		slog.Warn("could not make params directory", "error", err, "directory", ParamsPath)
	}
}

func GetParams() ([]string, error) {
	files, err := os.ReadDir(ParamsPath)
	if err != nil {
		return nil, errors.Wrap(err, "could not read params directory")
	}

	paramFiles := []string{}
	for _, file := range files {
		name := file.Name()
		if file.Type().IsRegular() && name[0] != '.' {
			paramFiles = append(paramFiles, name)
		}
	}
	sort.Strings(paramFiles)

	return paramFiles, nil
}

func ParamPath(name string) string {
	return filepath.Join(ParamsPath, name)
}

func GetParam(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func PutParam(path string, data []byte) error {
	dir := filepath.Dir(path)
	lockDir := filepath.Dir(dir)
	file, err := os.CreateTemp(dir, ".tmp_value_"+filepath.Base(path))
	if err != nil {
		return errors.Wrap(err, "could not create temp param file")
	}
	tmpName := file.Name()
	defer os.Remove(tmpName)

	_, err = file.Write(data)
	if err != nil {
		return errors.Wrap(err, "could not write data to temp param file")
	}

	err = file.Sync()
	if err != nil {
		return errors.Wrap(err, "could not fsync temp param file")
	}

	unlock, err := lockParams(lockDir)
	if err != nil {
		return err
	}
	defer unlock()

	err = os.Rename(tmpName, path)
	if err != nil {
		return errors.Wrap(err, "could not move temp param file to persistent location")
	}

	directory, err := os.Open(dir)
	if err != nil {
		return errors.Wrap(err, "could not open params directory")
	}
	defer directory.Close()

	err = directory.Sync()
	if err != nil {
		return errors.Wrap(err, "could not fsync params directory")
	}

	return nil
}

func RemoveParam(path string) error {
	lockDir := filepath.Dir(filepath.Dir(path))

	unlock, err := lockParams(lockDir)
	if err != nil {
		return err
	}
	defer unlock()

	if err := os.Remove(path); err != nil {
		return errors.Wrap(err, "could not remove param file")
	}
	return nil
}

func lockParams(lockDir string) (unlock func(), err error) {
	lockPath := filepath.Join(lockDir, ".lock")
	fileLock := flock.New(lockPath)

	retries := 0
	for {
		locked, err := fileLock.TryLock()
		if err != nil {
			return nil, errors.Wrap(err, "could not try locking param directory")
		}
		if locked {
			break
		}
		retries += 1
		if retries > 30 {
			// try to force the lock to be removed
			if err := os.Remove(lockPath); err != nil {
				slog.Debug("failed to force delete params lock", "error", err)
			}
		}
		if retries > 50 {
			return nil, errors.New("could not obtain lock")
		}
		// if we didn't obtain the lock let's try again after a short delay
		time.Sleep(1 * time.Millisecond)
	}

	return func() {
		if err := fileLock.Unlock(); err != nil {
			slog.Error("could not unlock params directory", "error", err)
		}
		if err := os.Remove(lockPath); err != nil {
			slog.Error("could not remove params lock file", "error", err)
		}
	}, nil
}
