// SPDX-License-Identifier: Apache-2.0

package steps

import (
	"context"

	"github.com/automa-saga/automa"
	"github.com/platformops/bootprune/internal/workflows/notify"
)

// AcquireRunLock takes the process-wide run lock so that two cleanup
// runs cannot race over the package database and /boot.
func (p *BootPrune) AcquireRunLock() automa.Builder {
	return automa.NewStepBuilder().WithId(AcquireRunLockStepId).
		WithExecute(func(ctx context.Context, stp automa.Step) *automa.Report {
			if err := p.lock.Acquire(); err != nil {
				return automa.FailureReport(stp, automa.WithError(err))
			}

			return automa.SuccessReport(stp)
		}).
		WithRollback(func(ctx context.Context, stp automa.Step) *automa.Report {
			if err := p.lock.Release(); err != nil {
				return automa.FailureReport(stp, automa.WithError(err))
			}

			return automa.SuccessReport(stp)
		}).
		WithPrepare(func(ctx context.Context, stp automa.Step) (context.Context, error) {
			notify.As().StepStart(ctx, stp, "Acquiring run lock")
			return ctx, nil
		}).
		WithOnFailure(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepFailure(ctx, stp, rpt, "Another run appears to be in progress")
		}).
		WithOnCompletion(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepCompletion(ctx, stp, rpt, "Run lock acquired")
		})
}

// ReleaseRunLock releases the run lock at the end of the workflow.
func (p *BootPrune) ReleaseRunLock() automa.Builder {
	return automa.NewStepBuilder().WithId(ReleaseRunLockStepId).
		WithExecute(func(ctx context.Context, stp automa.Step) *automa.Report {
			if err := p.lock.Release(); err != nil {
				return automa.FailureReport(stp, automa.WithError(err))
			}

			return automa.SuccessReport(stp)
		}).
		WithOnFailure(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepFailure(ctx, stp, rpt, "Failed to release run lock")
		}).
		WithOnCompletion(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepCompletion(ctx, stp, rpt, "Run lock released")
		})
}
