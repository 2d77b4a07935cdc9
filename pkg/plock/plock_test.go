// SPDX-License-Identifier: Apache-2.0

package plock

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAcquireRelease(t *testing.T) {
	req := require.New(t)

	path := filepath.Join(t.TempDir(), "bootprune.lock")
	l := New(path)

	req.NoError(l.Acquire())
	req.NoError(l.Release())
}

func TestSecondHolderIsRejected(t *testing.T) {
	req := require.New(t)

	path := filepath.Join(t.TempDir(), "bootprune.lock")
	first := New(path)
	second := New(path)

	req.NoError(first.Acquire())
	defer func() { req.NoError(first.Release()) }()

	req.Error(second.Acquire())
}

func TestReleaseWithoutAcquireIsNoop(t *testing.T) {
	req := require.New(t)

	l := New(filepath.Join(t.TempDir(), "bootprune.lock"))
	req.NoError(l.Release())
}

func TestReacquireAfterRelease(t *testing.T) {
	req := require.New(t)

	path := filepath.Join(t.TempDir(), "bootprune.lock")
	l := New(path)

	req.NoError(l.Acquire())
	req.NoError(l.Release())
	req.NoError(l.Acquire())
	req.NoError(l.Release())
}
