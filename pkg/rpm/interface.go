// SPDX-License-Identifier: Apache-2.0

package rpm

import "context"

// PackageName identifies a recognized kernel package flavor.
type PackageName string

const (
	PackageKernelUEK PackageName = "kernel-uek"
	PackageKernel    PackageName = "kernel"
)

// Candidates returns the recognized kernel package names in probe
// priority order. kernel-uek takes priority when both are present.
func Candidates() []PackageName {
	return []PackageName{PackageKernelUEK, PackageKernel}
}

// Inventory is an immutable snapshot of the installed versions of one
// kernel package name, sorted newest-first by the package manager's own
// ordering. Re-resolving after a removal produces a new snapshot; an
// existing one is never mutated.
type Inventory struct {
	Name     PackageName
	Versions []string
}

func (i Inventory) Count() int {
	return len(i.Versions)
}

// Newest returns up to n of the newest versions.
func (i Inventory) Newest(n int) []string {
	if n > len(i.Versions) {
		n = len(i.Versions)
	}
	return i.Versions[:n]
}

// RemovalPlan is the set of package identifiers the package manager
// proposes to remove when asked to keep only the newest N installed-only
// packages. The identifiers are opaque beyond being passed back to the
// removal command.
type RemovalPlan struct {
	Name     PackageName
	Packages []string
}

func (p RemovalPlan) IsEmpty() bool {
	return len(p.Packages) == 0
}

// Manager queries and mutates installed kernel packages.
type Manager interface {
	// Resolve probes the candidate package names in priority order and
	// returns the inventory of the first one with a nonzero installed
	// count. Returns core.NoKernelFound when none has any.
	Resolve(ctx context.Context) (*Inventory, error)

	// Inventory returns the installed versions of the given package name,
	// newest first. An empty inventory is not an error.
	Inventory(ctx context.Context, name PackageName) (*Inventory, error)

	// PlanRemoval asks the package manager for the installed-only
	// packages of the given name outside the newest keep versions.
	PlanRemoval(ctx context.Context, name PackageName, keep int) (*RemovalPlan, error)

	// Remove removes every package in the plan. No-op for an empty plan.
	Remove(ctx context.Context, plan *RemovalPlan) error
}

// toolOps defines the low-level package manager invocations.
// This interface can be easily substituted for testing.
type toolOps interface {
	installedPackages(ctx context.Context, name PackageName) ([]string, error)
	oldInstallOnly(ctx context.Context, name PackageName, keep int) ([]string, error)
	remove(ctx context.Context, pkgs []string) error
}
