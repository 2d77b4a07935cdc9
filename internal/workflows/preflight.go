// SPDX-License-Identifier: Apache-2.0

package workflows

import (
	"context"
	"fmt"
	"os"
	"os/user"
	"strings"

	"github.com/automa-saga/automa"
	"github.com/automa-saga/logx"
	"github.com/platformops/bootprune/internal/core"
	"github.com/platformops/bootprune/internal/doctor"
	"github.com/platformops/bootprune/internal/workflows/notify"
	"github.com/platformops/bootprune/pkg/host"
)

// seams for unit tests
var (
	gatherFacts = host.Facts
	currentUser = user.Current
)

// CheckPrivilegesStep validates that the current user has superuser privileges.
// Package removal and bootloader repair both require root.
func CheckPrivilegesStep() automa.Builder {
	return automa.NewStepBuilder().WithId("validate-privileges").
		WithExecute(func(ctx context.Context, stp automa.Step) *automa.Report {
			current, err := currentUser()
			if err != nil {
				return automa.FailureReport(stp,
					automa.WithError(core.NotSuperuser.Wrap(err, "failed to get current user")))
			}

			if current.Uid != "0" {
				return automa.FailureReport(stp,
					automa.WithError(
						core.NotSuperuser.New("requires superuser privilege").
							WithProperty(doctor.ErrPropertyResolution,
								fmt.Sprintf("Run the command with 'sudo' or as root user: `sudo %s`",
									strings.Join(os.Args, " ")))))
			}

			logx.As().Info().Msg("Superuser privilege validated")
			return automa.SuccessReport(stp)
		}).
		WithPrepare(func(ctx context.Context, stp automa.Step) (context.Context, error) {
			notify.As().StepStart(ctx, stp, "Starting privilege validation")
			return ctx, nil
		}).
		WithOnFailure(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepFailure(ctx, stp, rpt, "Privilege validation failed")
		}).
		WithOnCompletion(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepCompletion(ctx, stp, rpt, "Privilege validation step completed successfully")
		})
}

// CheckHostStep validates that the host runs a Red Hat family
// distribution. Kernel package naming and the grub2 toolchain are not
// portable beyond that family.
func CheckHostStep() automa.Builder {
	return automa.NewStepBuilder().WithId("validate-host").
		WithExecute(func(ctx context.Context, stp automa.Step) *automa.Report {
			si := gatherFacts()
			if !host.IsRedHatFamily(si) {
				return automa.FailureReport(stp,
					automa.WithError(
						core.UnsupportedHost.New("unsupported distribution %q, requires a Red Hat family host",
							si.OS.Vendor).
							WithProperty(doctor.ErrPropertyResolution,
								"This tool manages rpm kernel packages and grub2 boot entries. "+
									"Run it on RHEL, Oracle Linux, CentOS, Rocky, AlmaLinux or Fedora.")))
			}

			logx.As().Info().
				Str("vendor", si.OS.Vendor).
				Str("release", si.OS.Release).
				Str("kernel", si.Kernel.Release).
				Msg("Host distribution validated")
			return automa.SuccessReport(stp)
		}).
		WithPrepare(func(ctx context.Context, stp automa.Step) (context.Context, error) {
			notify.As().StepStart(ctx, stp, "Starting host validation")
			return ctx, nil
		}).
		WithOnFailure(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepFailure(ctx, stp, rpt, "Host validation failed")
		}).
		WithOnCompletion(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepCompletion(ctx, stp, rpt, "Host validation step completed successfully")
		})
}

// NewPreflightWorkflow bundles the checks every command runs first.
func NewPreflightWorkflow() automa.Builder {
	return automa.NewWorkflowBuilder().WithId("preflight").Steps(
		CheckPrivilegesStep(),
		CheckHostStep(),
	)
}
