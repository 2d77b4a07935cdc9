//go:build linux

// SPDX-License-Identifier: Apache-2.0

package host

import (
	"github.com/joomcode/errorx"
	"golang.org/x/sys/unix"
)

// Usage reports the used bytes of the filesystem holding path, in the
// unit the filesystem itself reports. The before/after delta of this
// value is the space-reclaimed summary figure.
func Usage(path string) (used uint64, total uint64, err error) {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return 0, 0, errorx.IllegalState.Wrap(err, "failed to stat filesystem %q", path)
	}

	bsize := uint64(st.Bsize)
	total = st.Blocks * bsize
	used = (st.Blocks - st.Bfree) * bsize
	return used, total, nil
}
