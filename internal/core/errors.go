// SPDX-License-Identifier: Apache-2.0

package core

import "github.com/joomcode/errorx"

var (
	ErrNamespace = errorx.NewNamespace("bootprune")

	// NotSuperuser indicates the process is missing root privilege.
	NotSuperuser = ErrNamespace.NewType("not_superuser")

	// NoKernelFound indicates that neither recognized kernel package name
	// has any installed version. Nothing downstream is meaningful without
	// a kernel package identity, so this is always fatal.
	NoKernelFound = ErrNamespace.NewType("no_kernel_found", errorx.NotFound())

	// NoRescueImage indicates zero rescue initramfs images were found on
	// disk before reconciliation. A rescue image should always exist, so
	// this is treated as a misconfiguration rather than skipped.
	NoRescueImage = ErrNamespace.NewType("no_rescue_image")

	// RemovalIneffective indicates the package manager reported success
	// for a non-empty removal plan but the installed count did not drop.
	RemovalIneffective = ErrNamespace.NewType("removal_ineffective")

	// ConfirmationDeclined indicates the operator answered anything other
	// than an affirmative token at a confirmation gate.
	ConfirmationDeclined = ErrNamespace.NewType("confirmation_declined")

	// ExternalTool wraps a non-zero exit from the package manager or
	// bootloader tools. Surfaced as-is, never retried.
	ExternalTool = ErrNamespace.NewType("external_tool")

	// UnsupportedHost indicates the host is not a Red Hat family system.
	UnsupportedHost = ErrNamespace.NewType("unsupported_host")
)
