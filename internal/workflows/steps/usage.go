// SPDX-License-Identifier: Apache-2.0

package steps

import (
	"context"
	"strconv"

	"github.com/automa-saga/automa"
	"github.com/automa-saga/logx"
	"github.com/dustin/go-humanize"
	"github.com/platformops/bootprune/internal/workflows/notify"
)

// MeasureBootUsage records the boot filesystem usage before any
// destructive step runs so the summary can report the reclaimed delta.
func (p *BootPrune) MeasureBootUsage() automa.Builder {
	return automa.NewStepBuilder().WithId(MeasureBootUsageStepId).
		WithExecute(func(ctx context.Context, stp automa.Step) *automa.Report {
			used, total, err := bootUsage(p.retention.BootDir)
			if err != nil {
				return automa.FailureReport(stp, automa.WithError(err))
			}

			p.usedBefore = used
			logx.As().Info().
				Str("boot_dir", p.retention.BootDir).
				Str("used", humanize.IBytes(used)).
				Str("total", humanize.IBytes(total)).
				Msg("Boot filesystem usage measured")

			return automa.SuccessReport(stp)
		}).
		WithOnFailure(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepFailure(ctx, stp, rpt, "Failed to measure boot filesystem usage")
		})
}

// SummarizeReclaimed reports what the run changed: kernel packages
// removed, image files deleted and the boot filesystem space that came
// back.
func (p *BootPrune) SummarizeReclaimed() automa.Builder {
	return automa.NewStepBuilder().WithId(SummarizeStepId).
		WithExecute(func(ctx context.Context, stp automa.Step) *automa.Report {
			usedAfter, _, err := bootUsage(p.retention.BootDir)
			if err != nil {
				return automa.FailureReport(stp, automa.WithError(err))
			}

			reclaimed := int64(p.usedBefore) - int64(usedAfter)
			if reclaimed < 0 {
				// another writer grew the filesystem mid-run
				reclaimed = 0
			}

			kernelsBefore, kernelsAfter := 0, 0
			if p.inventory != nil {
				kernelsBefore = p.inventory.Count()
				kernelsAfter = kernelsBefore
			}
			if p.current != nil {
				kernelsAfter = p.current.Count()
			}

			device := bootDevice(p.retention.BootDir)
			logx.As().Info().
				Str("boot_device", device).
				Int("kernels_before", kernelsBefore).
				Int("kernels_after", kernelsAfter).
				Int("removed_kernels", p.removed).
				Str("freed_images", humanize.IBytes(uint64(p.freedBytes))).
				Str("reclaimed", humanize.IBytes(uint64(reclaimed))).
				Msg("Cleanup summary")

			return automa.SuccessReport(stp, automa.WithMetadata(map[string]string{
				BootDevice:      device,
				RemovedPackages: strconv.Itoa(p.removed),
				FreedBytes:      strconv.FormatInt(p.freedBytes, 10),
				ReclaimedBytes:  strconv.FormatInt(reclaimed, 10),
			}))
		}).
		WithPrepare(func(ctx context.Context, stp automa.Step) (context.Context, error) {
			notify.As().StepStart(ctx, stp, "Summarizing reclaimed space")
			return ctx, nil
		}).
		WithOnFailure(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepFailure(ctx, stp, rpt, "Failed to summarize reclaimed space")
		}).
		WithOnCompletion(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepCompletion(ctx, stp, rpt, "Cleanup summary completed")
		})
}
