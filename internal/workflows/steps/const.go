// SPDX-License-Identifier: Apache-2.0

package steps

const (
	AcquireRunLockStepId         = "acquire-run-lock"
	ReleaseRunLockStepId         = "release-run-lock"
	MeasureBootUsageStepId       = "measure-boot-usage"
	ResolveInventoryStepId       = "resolve-kernel-inventory"
	RemoveOldKernelsStepId       = "remove-old-kernels"
	RemoveKernelDependencyStepId = "remove-kernel-dependency"
	PruneRescueImagesStepId      = "prune-rescue-images"
	PruneVersionedImagesStepId   = "prune-versioned-images"
	CheckBootDefaultStepId       = "check-boot-default"
	EnsureBootDefaultStepId      = "ensure-boot-default"
	PreviewCleanupStepId         = "preview-cleanup"
	SummarizeStepId              = "summarize-reclaimed"
)

// step report metadata keys
const (
	NothingToDo      = "nothingToDo"
	KernelPackage    = "kernelPackage"
	InstalledKernels = "installedKernels"
	RemovedPackages  = "removedPackages"
	RemovedFiles     = "removedFiles"
	FreedBytes       = "freedBytes"
	ReclaimedBytes   = "reclaimedBytes"
	BootDevice       = "bootDevice"
	SavedEntry       = "savedEntry"
	RepairedDefault  = "repairedDefault"
)
