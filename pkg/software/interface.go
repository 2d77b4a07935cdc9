// SPDX-License-Identifier: Apache-2.0

// Package software manages system packages through the host's native
// package manager. It is used to remove the plain kernel package that
// distributions pull in as a dependency next to kernel-uek.
package software

import "github.com/bluet/syspkg"

type Package interface {
	Name() string
	Uninstall() (*syspkg.PackageInfo, error)
	Info() (*syspkg.PackageInfo, error)
	IsInstalled() bool
}
