// SPDX-License-Identifier: Apache-2.0

package steps

import (
	"context"
	"path"
	"strconv"
	"strings"

	"github.com/automa-saga/automa"
	"github.com/dustin/go-humanize"
	"github.com/platformops/bootprune/internal/workflows/notify"
	"github.com/platformops/bootprune/pkg/confirm"
	"github.com/platformops/bootprune/pkg/initramfs"
)

func previewFiles(files []initramfs.File) string {
	lines := make([]string, 0, len(files))
	for _, f := range files {
		lines = append(lines, path.Base(f.Path)+" ("+humanize.IBytes(uint64(f.Size))+")")
	}

	return strings.Join(lines, "\n")
}

// PruneRescueImages keeps the newest rescue initramfs image and deletes
// the rest. A host without any rescue image fails the run.
func (p *BootPrune) PruneRescueImages() automa.Builder {
	return automa.NewStepBuilder().WithId(PruneRescueImagesStepId).
		WithExecute(func(ctx context.Context, stp automa.Step) *automa.Report {
			listing, err := initramfs.List(p.fsys, p.retention.BootDir)
			if err != nil {
				return automa.FailureReport(stp, automa.WithError(err))
			}

			rec, err := initramfs.ReconcileRescue(listing.Rescue)
			if err != nil {
				return automa.FailureReport(stp, automa.WithError(err))
			}

			if len(rec.Delete) == 0 {
				notify.As().StepSkip(ctx, stp, "Single rescue image present, nothing to prune")
				return automa.SuccessReport(stp, automa.WithMetadata(map[string]string{
					NothingToDo: "true",
				}))
			}

			err = p.gate.Confirm(ctx, confirm.Section{
				Label: "Stale rescue images to delete",
				Preview: func() string {
					return previewFiles(rec.Delete)
				},
			})
			if err != nil {
				return automa.FailureReport(stp, automa.WithError(err))
			}

			freed, err := initramfs.Remove(p.fsys, rec.Delete)
			p.freedBytes += freed
			if err != nil {
				return automa.FailureReport(stp, automa.WithError(err))
			}

			return automa.SuccessReport(stp, automa.WithMetadata(map[string]string{
				RemovedFiles: strconv.Itoa(len(rec.Delete)),
				FreedBytes:   strconv.FormatInt(freed, 10),
			}))
		}).
		WithPrepare(func(ctx context.Context, stp automa.Step) (context.Context, error) {
			notify.As().StepStart(ctx, stp, "Pruning stale rescue images")
			return ctx, nil
		}).
		WithOnFailure(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepFailure(ctx, stp, rpt, "Failed to prune rescue images")
		}).
		WithOnCompletion(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepCompletion(ctx, stp, rpt, "Rescue image pruning completed")
		})
}

// PruneVersionedImages deletes initramfs images that no longer pair
// with any installed kernel version. It runs after the kernel removal so
// the comparison uses the surviving versions.
func (p *BootPrune) PruneVersionedImages() automa.Builder {
	return automa.NewStepBuilder().WithId(PruneVersionedImagesStepId).
		WithExecute(func(ctx context.Context, stp automa.Step) *automa.Report {
			listing, err := initramfs.List(p.fsys, p.retention.BootDir)
			if err != nil {
				return automa.FailureReport(stp, automa.WithError(err))
			}

			rec := initramfs.ReconcileVersioned(listing.Other, p.currentVersions())
			if len(rec.Delete) == 0 {
				notify.As().StepSkip(ctx, stp, "No orphaned initramfs images found")
				return automa.SuccessReport(stp, automa.WithMetadata(map[string]string{
					NothingToDo: "true",
				}))
			}

			err = p.gate.Confirm(ctx, confirm.Section{
				Label: "Orphaned initramfs images to delete",
				Preview: func() string {
					return previewFiles(rec.Delete)
				},
			})
			if err != nil {
				return automa.FailureReport(stp, automa.WithError(err))
			}

			freed, err := initramfs.Remove(p.fsys, rec.Delete)
			p.freedBytes += freed
			if err != nil {
				return automa.FailureReport(stp, automa.WithError(err))
			}

			return automa.SuccessReport(stp, automa.WithMetadata(map[string]string{
				RemovedFiles: strconv.Itoa(len(rec.Delete)),
				FreedBytes:   strconv.FormatInt(freed, 10),
			}))
		}).
		WithPrepare(func(ctx context.Context, stp automa.Step) (context.Context, error) {
			notify.As().StepStart(ctx, stp, "Pruning orphaned initramfs images")
			return ctx, nil
		}).
		WithOnFailure(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepFailure(ctx, stp, rpt, "Failed to prune orphaned initramfs images")
		}).
		WithOnCompletion(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepCompletion(ctx, stp, rpt, "Orphaned initramfs pruning completed")
		})
}
