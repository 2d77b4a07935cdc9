// SPDX-License-Identifier: Apache-2.0

package software

import (
	"github.com/joomcode/errorx"
)

var (
	ErrorsNamespace = errorx.NewNamespace("software")
	PackageError    = ErrorsNamespace.NewType("package_error")
	PackageNotFound = ErrorsNamespace.NewType("package_not_found", errorx.NotFound())
	packageProperty = errorx.RegisterPrintableProperty("package_name")
)

const (
	packageErrorMsg    = "package manager operation failed for package '%s'"
	packageNotFoundMsg = "package '%s' not found"
)

func NewPackageError(cause error, pkgName string) *errorx.Error {
	err := PackageError.New(packageErrorMsg, pkgName).
		WithProperty(packageProperty, pkgName)

	if cause != nil {
		err = err.WithUnderlyingErrors(cause)
	}

	return err
}

func NewPackageNotFoundError(pkgName string) *errorx.Error {
	return PackageNotFound.New(packageNotFoundMsg, pkgName).
		WithProperty(packageProperty, pkgName)
}
