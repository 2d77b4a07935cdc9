// SPDX-License-Identifier: Apache-2.0

package steps

import (
	"context"
	"strconv"

	"github.com/automa-saga/automa"
	"github.com/automa-saga/logx"
	"github.com/joomcode/errorx"
	"github.com/platformops/bootprune/internal/workflows/notify"
	"github.com/platformops/bootprune/pkg/initramfs"
)

// PreviewCleanup reports what a clean run would remove without touching
// anything. The check command composes it after ResolveInventory.
func (p *BootPrune) PreviewCleanup() automa.Builder {
	return automa.NewStepBuilder().WithId(PreviewCleanupStepId).
		WithExecute(func(ctx context.Context, stp automa.Step) *automa.Report {
			inv := p.inventory
			if inv == nil {
				return automa.FailureReport(stp,
					automa.WithError(errorx.IllegalState.New("kernel inventory has not been resolved")))
			}

			meta := map[string]string{
				KernelPackage:    string(inv.Name),
				InstalledKernels: strconv.Itoa(inv.Count()),
			}

			if inv.Count() > p.retention.KeepKernels {
				plan, err := p.packages.PlanRemoval(ctx, inv.Name, p.retention.KeepKernels)
				if err != nil {
					return automa.FailureReport(stp, automa.WithError(err))
				}

				meta[RemovedPackages] = strconv.Itoa(len(plan.Packages))
				logx.As().Info().
					Strs("packages", plan.Packages).
					Msg("Kernel packages a clean run would remove")
			} else {
				logx.As().Info().Msg("Kernel retention is already satisfied")
			}

			listing, err := initramfs.List(p.fsys, p.retention.BootDir)
			if err != nil {
				return automa.FailureReport(stp, automa.WithError(err))
			}

			rescue, err := initramfs.ReconcileRescue(listing.Rescue)
			if err != nil {
				return automa.FailureReport(stp, automa.WithError(err))
			}

			versioned := initramfs.ReconcileVersioned(listing.Other, inv.Versions)
			stale := append(rescue.Delete, versioned.Delete...)
			meta[RemovedFiles] = strconv.Itoa(len(stale))

			if len(stale) > 0 {
				logx.As().Info().
					Str("stale_images", previewFiles(stale)).
					Msg("Initramfs images a clean run would delete")
			} else {
				logx.As().Info().Msg("No stale initramfs images found")
			}

			return automa.SuccessReport(stp, automa.WithMetadata(meta))
		}).
		WithPrepare(func(ctx context.Context, stp automa.Step) (context.Context, error) {
			notify.As().StepStart(ctx, stp, "Previewing cleanup actions")
			return ctx, nil
		}).
		WithOnFailure(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepFailure(ctx, stp, rpt, "Failed to preview cleanup actions")
		}).
		WithOnCompletion(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepCompletion(ctx, stp, rpt, "Cleanup preview completed")
		})
}
