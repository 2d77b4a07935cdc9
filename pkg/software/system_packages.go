// SPDX-License-Identifier: Apache-2.0

package software

import "github.com/bluet/syspkg/manager"

// NewKernelPackage manages the plain "kernel" package. On UEK hosts it is pulled
// in as a dependency of other packages and shadows kernel-uek in /boot.
func NewKernelPackage(opts ...option) (Package, error) {
	base := []option{
		WithPackageName("kernel"),
		WithPackageOptions(manager.Options{AssumeYes: true}),
	}

	return NewPackageInstaller(append(base, opts...)...)
}
