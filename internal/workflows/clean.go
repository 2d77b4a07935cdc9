// SPDX-License-Identifier: Apache-2.0

// Package workflows composes the step builders into the saga workflows
// the commands execute.
package workflows

import (
	"github.com/automa-saga/automa"
	"github.com/platformops/bootprune/internal/workflows/steps"
)

// NewCleanBootWorkflow builds the full cleanup run: remove kernel
// packages outside the retention window, drop the shadowing kernel
// dependency on UEK hosts, prune stale initramfs images, make sure the
// bootloader default still points at an existing entry and summarize the
// reclaimed space.
//
// Destructive steps run behind the confirmation gate; declining any
// prompt aborts the run.
func NewCleanBootWorkflow(opts ...steps.BootPruneOption) automa.Builder {
	p := steps.NewBootPrune(opts...)

	return automa.NewWorkflowBuilder().WithId("clean-boot").Steps(
		NewPreflightWorkflow(),
		p.AcquireRunLock(),
		p.MeasureBootUsage(),
		p.ResolveInventory(),
		p.RemoveOldKernels(),
		p.RemoveKernelDependency(),
		p.PruneRescueImages(),
		p.PruneVersionedImages(),
		p.EnsureBootDefault(),
		p.SummarizeReclaimed(),
		p.ReleaseRunLock(),
	)
}

// NewCheckBootWorkflow builds the read-only variant: it reports what a
// clean run would do and validates the default boot entry, without
// modifying packages, images or bootloader state.
func NewCheckBootWorkflow(opts ...steps.BootPruneOption) automa.Builder {
	p := steps.NewBootPrune(opts...)

	return automa.NewWorkflowBuilder().WithId("check-boot").Steps(
		NewPreflightWorkflow(),
		p.MeasureBootUsage(),
		p.ResolveInventory(),
		p.PreviewCleanup(),
		p.CheckBootDefault(),
	)
}
