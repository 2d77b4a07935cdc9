// SPDX-License-Identifier: Apache-2.0

package host

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zcalusic/sysinfo"
)

func TestIsRedHatFamily(t *testing.T) {
	req := require.New(t)

	for _, vendor := range []string{"ol", "rhel", "centos", "rocky", "almalinux", "fedora"} {
		si := sysinfo.SysInfo{}
		si.OS.Vendor = vendor
		req.True(IsRedHatFamily(si), "vendor %q should be recognized", vendor)
	}

	for _, vendor := range []string{"debian", "ubuntu", "opensuse", ""} {
		si := sysinfo.SysInfo{}
		si.OS.Vendor = vendor
		req.False(IsRedHatFamily(si), "vendor %q should not be recognized", vendor)
	}
}
