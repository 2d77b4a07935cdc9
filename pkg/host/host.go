// SPDX-License-Identifier: Apache-2.0

// Package host gathers the host facts the cleanup pipeline needs: the
// OS family guard, the block device backing the boot partition, and the
// boot partition's space usage.
package host

import (
	"log"
	"os"
	"sync"

	"github.com/jaypipes/ghw"
	"github.com/zcalusic/sysinfo"
)

var once sync.Once

func suppressGHWWarnings() {
	once.Do(func() {
		os.Setenv("GHW_DISABLE_WARNINGS", "1")
	})
}

// redHatFamilyVendors are the /etc/os-release vendor ids recognized as
// Red Hat family. Kernel package naming and the grub2 toolchain are
// only meaningful on these.
var redHatFamilyVendors = map[string]bool{
	"rhel":       true,
	"redhat":     true,
	"centos":     true,
	"ol":         true,
	"oracle":     true,
	"fedora":     true,
	"rocky":      true,
	"almalinux":  true,
	"scientific": true,
	"amzn":       true,
}

// Facts gathers system information once per call.
func Facts() sysinfo.SysInfo {
	var si sysinfo.SysInfo
	si.GetSysInfo()
	return si
}

// IsRedHatFamily reports whether the host's OS vendor belongs to the
// Red Hat family.
func IsRedHatFamily(si sysinfo.SysInfo) bool {
	return redHatFamilyVendors[si.OS.Vendor]
}

// BootDevice returns the device name of the partition mounted at
// bootDir, or an empty string when no dedicated partition backs it.
func BootDevice(bootDir string) string {
	suppressGHWWarnings()

	block, err := ghw.Block()
	if err != nil {
		log.Printf("Error getting block info from ghw: %v", err)
		return ""
	}

	for _, disk := range block.Disks {
		for _, part := range disk.Partitions {
			if part.MountPoint == bootDir {
				return part.Name
			}
		}
	}

	return ""
}
