// SPDX-License-Identifier: Apache-2.0

package steps

import (
	"context"
	"strconv"
	"strings"

	"github.com/automa-saga/automa"
	"github.com/automa-saga/logx"
	"github.com/joomcode/errorx"
	"github.com/platformops/bootprune/internal/core"
	"github.com/platformops/bootprune/internal/workflows/notify"
	"github.com/platformops/bootprune/pkg/confirm"
	"github.com/platformops/bootprune/pkg/rpm"
	"github.com/platformops/bootprune/pkg/software"
)

// ResolveInventory probes the recognized kernel package names and takes
// the snapshot every later step works from.
func (p *BootPrune) ResolveInventory() automa.Builder {
	return automa.NewStepBuilder().WithId(ResolveInventoryStepId).
		WithExecute(func(ctx context.Context, stp automa.Step) *automa.Report {
			inv, err := p.packages.Resolve(ctx)
			if err != nil {
				return automa.FailureReport(stp, automa.WithError(err))
			}

			p.inventory = inv
			logx.As().Info().
				Str("package", string(inv.Name)).
				Int("installed", inv.Count()).
				Strs("versions", inv.Versions).
				Msg("Kernel inventory resolved")

			return automa.SuccessReport(stp, automa.WithMetadata(map[string]string{
				KernelPackage:    string(inv.Name),
				InstalledKernels: strconv.Itoa(inv.Count()),
			}))
		}).
		WithPrepare(func(ctx context.Context, stp automa.Step) (context.Context, error) {
			notify.As().StepStart(ctx, stp, "Resolving installed kernel packages")
			return ctx, nil
		}).
		WithOnFailure(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepFailure(ctx, stp, rpt, "Failed to resolve kernel inventory")
		}).
		WithOnCompletion(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepCompletion(ctx, stp, rpt, "Kernel inventory resolved")
		})
}

// RemoveOldKernels removes every installed kernel package outside the
// newest retained ones. The removal is gated on operator confirmation
// and verified against a fresh inventory afterwards.
func (p *BootPrune) RemoveOldKernels() automa.Builder {
	return automa.NewStepBuilder().WithId(RemoveOldKernelsStepId).
		WithExecute(func(ctx context.Context, stp automa.Step) *automa.Report {
			inv := p.inventory
			if inv == nil {
				return automa.FailureReport(stp,
					automa.WithError(errorx.IllegalState.New("kernel inventory has not been resolved")))
			}

			keep := p.retention.KeepKernels
			if inv.Count() <= keep {
				notify.As().StepSkip(ctx, stp, "Only %d kernel package(s) installed, nothing to remove", inv.Count())
				return automa.SuccessReport(stp, automa.WithMetadata(map[string]string{
					NothingToDo: "true",
				}))
			}

			plan, err := p.packages.PlanRemoval(ctx, inv.Name, keep)
			if err != nil {
				return automa.FailureReport(stp, automa.WithError(err))
			}

			if plan.IsEmpty() {
				notify.As().StepSkip(ctx, stp, "Package manager proposed no removals")
				return automa.SuccessReport(stp, automa.WithMetadata(map[string]string{
					NothingToDo: "true",
				}))
			}

			err = p.gate.Confirm(ctx,
				confirm.Section{
					Label: "Kernel packages to keep (newest first)",
					Preview: func() string {
						return strings.Join(inv.Newest(keep), "\n")
					},
				},
				confirm.Section{
					Label: "Packages to remove",
					Preview: func() string {
						return strings.Join(plan.Packages, "\n")
					},
				},
			)
			if err != nil {
				return automa.FailureReport(stp, automa.WithError(err))
			}

			if err := p.packages.Remove(ctx, plan); err != nil {
				return automa.FailureReport(stp, automa.WithError(err))
			}

			after, err := p.packages.Inventory(ctx, inv.Name)
			if err != nil {
				return automa.FailureReport(stp, automa.WithError(err))
			}

			if after.Count() >= inv.Count() {
				return automa.FailureReport(stp,
					automa.WithError(core.RemovalIneffective.New(
						"removal left %d of %d kernel package(s) installed", after.Count(), inv.Count())))
			}

			p.current = after
			p.removed = inv.Count() - after.Count()

			return automa.SuccessReport(stp, automa.WithMetadata(map[string]string{
				RemovedPackages:  strconv.Itoa(p.removed),
				InstalledKernels: strconv.Itoa(after.Count()),
			}))
		}).
		WithPrepare(func(ctx context.Context, stp automa.Step) (context.Context, error) {
			notify.As().StepStart(ctx, stp, "Removing old kernel packages")
			return ctx, nil
		}).
		WithOnFailure(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepFailure(ctx, stp, rpt, "Failed to remove old kernel packages")
		}).
		WithOnCompletion(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepCompletion(ctx, stp, rpt, "Old kernel packages removed")
		})
}

// RemoveKernelDependency removes the plain kernel package that gets
// pulled in as a dependency next to kernel-uek. On non-UEK hosts this
// step is a no-op.
func (p *BootPrune) RemoveKernelDependency() automa.Builder {
	return automa.NewStepBuilder().WithId(RemoveKernelDependencyStepId).
		WithExecute(func(ctx context.Context, stp automa.Step) *automa.Report {
			inv := p.inventory
			if inv == nil {
				return automa.FailureReport(stp,
					automa.WithError(errorx.IllegalState.New("kernel inventory has not been resolved")))
			}

			if inv.Name != rpm.PackageKernelUEK {
				notify.As().StepSkip(ctx, stp, "Host does not boot %s, no dependency cleanup needed", rpm.PackageKernelUEK)
				return automa.SuccessReport(stp, automa.WithMetadata(map[string]string{
					NothingToDo: "true",
				}))
			}

			pkg := p.kernelPkg
			if pkg == nil {
				var err error
				pkg, err = software.NewKernelPackage()
				if err != nil {
					return automa.FailureReport(stp, automa.WithError(err))
				}
			}

			if !pkg.IsInstalled() {
				notify.As().StepSkip(ctx, stp, "Package %q is not installed", pkg.Name())
				return automa.SuccessReport(stp, automa.WithMetadata(map[string]string{
					NothingToDo: "true",
				}))
			}

			err := p.gate.Confirm(ctx, confirm.Section{
				Label: "Dependency packages to remove",
				Preview: func() string {
					return pkg.Name()
				},
			})
			if err != nil {
				return automa.FailureReport(stp, automa.WithError(err))
			}

			// a not-found after deletion means the package manager no
			// longer lists it, which is the outcome we want
			if _, err := pkg.Uninstall(); err != nil && !errorx.IsOfType(err, software.PackageNotFound) {
				return automa.FailureReport(stp, automa.WithError(err))
			}

			return automa.SuccessReport(stp, automa.WithMetadata(map[string]string{
				RemovedPackages: pkg.Name(),
			}))
		}).
		WithPrepare(func(ctx context.Context, stp automa.Step) (context.Context, error) {
			notify.As().StepStart(ctx, stp, "Checking for shadowing kernel dependency")
			return ctx, nil
		}).
		WithOnFailure(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepFailure(ctx, stp, rpt, "Failed to remove kernel dependency package")
		}).
		WithOnCompletion(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepCompletion(ctx, stp, rpt, "Kernel dependency cleanup completed")
		})
}
