// SPDX-License-Identifier: Apache-2.0

// Package plock provides the process run lock that keeps two instances
// from mutating /boot and the package database at the same time.
package plock

import (
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/joomcode/errorx"
	"github.com/rs/zerolog"
)

var nolog = zerolog.Nop()

// Lock is an exclusive, non-blocking process lock.
type Lock interface {
	// Acquire takes the lock or fails immediately when another process
	// holds it. It never blocks waiting for a holder to exit.
	Acquire() error

	// Release releases the lock. Safe to call when not held.
	Release() error
}

type fileLock struct {
	fl     *flock.Flock
	logger *zerolog.Logger
}

// LockOption allows setting various options for the file lock.
type LockOption = func(l *fileLock)

// WithLogger allows injecting a logger instance.
func WithLogger(logger *zerolog.Logger) LockOption {
	return func(l *fileLock) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// New returns a Lock backed by an advisory flock on the given path.
func New(path string, opts ...LockOption) Lock {
	l := &fileLock{
		fl:     flock.New(path),
		logger: &nolog,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

func (l *fileLock) Acquire() error {
	if err := os.MkdirAll(filepath.Dir(l.fl.Path()), 0o755); err != nil {
		return errorx.IllegalState.Wrap(err, "failed to create lock directory")
	}

	locked, err := l.fl.TryLock()
	if err != nil {
		return errorx.IllegalState.Wrap(err, "failed to acquire run lock %q", l.fl.Path())
	}

	if !locked {
		return errorx.IllegalState.New("another instance holds the run lock %q", l.fl.Path())
	}

	l.logger.Debug().Str("lock", l.fl.Path()).Msg("Run lock acquired")
	return nil
}

func (l *fileLock) Release() error {
	if !l.fl.Locked() {
		return nil
	}

	if err := l.fl.Unlock(); err != nil {
		return errorx.IllegalState.Wrap(err, "failed to release run lock %q", l.fl.Path())
	}

	l.logger.Debug().Str("lock", l.fl.Path()).Msg("Run lock released")
	return nil
}
