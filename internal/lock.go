package internal

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrRunInProgress means another process holds the run lock
var ErrRunInProgress = errors.New("another run is already in progress")

// RunLock keeps a second invocation from racing on temp and output paths
type RunLock struct {
	fl *flock.Flock
}

// AcquireRunLock takes the lock file in dir without blocking
func AcquireRunLock(dir string) (*RunLock, error) {
	if err := EnsureDirs(dir); err != nil {
		return nil, fmt.Errorf("creating lock directory: %w", err)
	}

	fl := flock.New(filepath.Join(dir, "run.lock"))
	locked, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquiring run lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("%w (lock: %s)", ErrRunInProgress, fl.Path())
	}
	return &RunLock{fl: fl}, nil
}

// Release drops the lock
func (l *RunLock) Release() error {
	if l == nil || l.fl == nil {
		return nil
	}
	return l.fl.Unlock()
}
