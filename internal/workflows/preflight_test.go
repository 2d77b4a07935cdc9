// SPDX-License-Identifier: Apache-2.0

package workflows

import (
	"context"
	"os"
	"testing"

	"github.com/joomcode/errorx"
	"github.com/platformops/bootprune/internal/core"
	"github.com/stretchr/testify/require"
	"github.com/zcalusic/sysinfo"
)

func TestCheckHostStepRedHatFamily(t *testing.T) {
	req := require.New(t)

	orig := gatherFacts
	defer func() { gatherFacts = orig }()

	gatherFacts = func() sysinfo.SysInfo {
		si := sysinfo.SysInfo{}
		si.OS.Vendor = "ol"
		si.OS.Release = "9.4"
		si.Kernel.Release = "5.15.0-200.el9uek.x86_64"
		return si
	}

	step, err := CheckHostStep().Build()
	req.NoError(err)

	report := step.Execute(context.Background())
	req.NoError(report.Error)
}

func TestCheckHostStepUnsupported(t *testing.T) {
	req := require.New(t)

	orig := gatherFacts
	defer func() { gatherFacts = orig }()

	gatherFacts = func() sysinfo.SysInfo {
		si := sysinfo.SysInfo{}
		si.OS.Vendor = "debian"
		return si
	}

	step, err := CheckHostStep().Build()
	req.NoError(err)

	report := step.Execute(context.Background())
	req.Error(report.Error)
	req.True(errorx.IsOfType(report.Error, core.UnsupportedHost))
}

func TestCheckPrivilegesStep(t *testing.T) {
	req := require.New(t)

	step, err := CheckPrivilegesStep().Build()
	req.NoError(err)

	report := step.Execute(context.Background())
	if os.Geteuid() == 0 {
		req.NoError(report.Error)
	} else {
		req.Error(report.Error)
		req.True(errorx.IsOfType(report.Error, core.NotSuperuser))
	}
}

func TestWorkflowsBuild(t *testing.T) {
	req := require.New(t)

	wf, err := NewCleanBootWorkflow().Build()
	req.NoError(err)
	req.NotNil(wf)

	wf, err = NewCheckBootWorkflow().Build()
	req.NoError(err)
	req.NotNil(wf)

	wf, err = NewPreflightWorkflow().Build()
	req.NoError(err)
	req.NotNil(wf)
}
