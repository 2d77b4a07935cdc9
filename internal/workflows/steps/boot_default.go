// SPDX-License-Identifier: Apache-2.0

package steps

import (
	"context"
	"fmt"

	"github.com/automa-saga/automa"
	"github.com/automa-saga/logx"
	"github.com/joomcode/errorx"
	"github.com/platformops/bootprune/internal/doctor"
	"github.com/platformops/bootprune/internal/workflows/notify"
	"github.com/platformops/bootprune/pkg/confirm"
)

// CheckBootDefault validates that the persisted default boot entry
// still exists among the boot entries. It never modifies anything; the
// clean workflow uses EnsureBootDefault instead.
func (p *BootPrune) CheckBootDefault() automa.Builder {
	return automa.NewStepBuilder().WithId(CheckBootDefaultStepId).
		WithExecute(func(ctx context.Context, stp automa.Step) *automa.Report {
			saved, err := p.boot.SavedDefault(ctx)
			if err != nil {
				return automa.FailureReport(stp, automa.WithError(err))
			}

			entries, err := p.boot.Entries(ctx)
			if err != nil {
				return automa.FailureReport(stp, automa.WithError(err))
			}

			if !entries.ContainsSavedId(saved) {
				return automa.FailureReport(stp,
					automa.WithError(
						errorx.IllegalState.New("saved default entry %q does not match any boot entry", saved).
							WithProperty(doctor.ErrPropertyResolution,
								fmt.Sprintf("Run `%s clean` to repair the default boot entry", "bootprune"))))
			}

			return automa.SuccessReport(stp, automa.WithMetadata(map[string]string{
				SavedEntry: saved,
			}))
		}).
		WithPrepare(func(ctx context.Context, stp automa.Step) (context.Context, error) {
			notify.As().StepStart(ctx, stp, "Validating default boot entry")
			return ctx, nil
		}).
		WithOnFailure(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepFailure(ctx, stp, rpt, "Default boot entry validation failed")
		}).
		WithOnCompletion(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepCompletion(ctx, stp, rpt, "Default boot entry is valid")
		})
}

// EnsureBootDefault repairs a dangling default boot entry by pointing
// the bootloader at the first listed entry and regenerating its
// configuration. A valid default is left untouched.
func (p *BootPrune) EnsureBootDefault() automa.Builder {
	return automa.NewStepBuilder().WithId(EnsureBootDefaultStepId).
		WithExecute(func(ctx context.Context, stp automa.Step) *automa.Report {
			saved, err := p.boot.SavedDefault(ctx)
			if err != nil {
				return automa.FailureReport(stp, automa.WithError(err))
			}

			entries, err := p.boot.Entries(ctx)
			if err != nil {
				return automa.FailureReport(stp, automa.WithError(err))
			}

			if entries.ContainsSavedId(saved) {
				notify.As().StepSkip(ctx, stp, "Default boot entry %q is valid", saved)
				return automa.SuccessReport(stp, automa.WithMetadata(map[string]string{
					NothingToDo: "true",
					SavedEntry:  saved,
				}))
			}

			if len(entries.Entries) == 0 {
				return automa.FailureReport(stp,
					automa.WithError(errorx.IllegalState.New("no boot entries found, cannot repair default")))
			}

			target := entries.Entries[0]
			logx.As().Warn().
				Str("saved", saved).
				Str("target", target.Title).
				Msg("Default boot entry is dangling, repairing")

			err = p.gate.Confirm(ctx, confirm.Section{
				Label: "Default boot entry repair",
				Preview: func() string {
					return fmt.Sprintf("saved entry:  %s\nnew default:  [%d] %s", saved, target.Index, target.Title)
				},
			})
			if err != nil {
				return automa.FailureReport(stp, automa.WithError(err))
			}

			if err := p.boot.SetDefaultIndex(ctx, target.Index); err != nil {
				return automa.FailureReport(stp, automa.WithError(err))
			}

			if err := p.boot.Regenerate(ctx); err != nil {
				return automa.FailureReport(stp, automa.WithError(err))
			}

			return automa.SuccessReport(stp, automa.WithMetadata(map[string]string{
				RepairedDefault: "true",
				SavedEntry:      target.Id,
			}))
		}).
		WithPrepare(func(ctx context.Context, stp automa.Step) (context.Context, error) {
			notify.As().StepStart(ctx, stp, "Checking default boot entry")
			return ctx, nil
		}).
		WithOnFailure(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepFailure(ctx, stp, rpt, "Failed to ensure a valid default boot entry")
		}).
		WithOnCompletion(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepCompletion(ctx, stp, rpt, "Default boot entry check completed")
		})
}
