// SPDX-License-Identifier: Apache-2.0

package steps

import (
	"os"
	"path"

	"github.com/automa-saga/automa"
	"github.com/automa-saga/logx"
	"github.com/platformops/bootprune/internal/core"
	"gopkg.in/yaml.v3"
)

// PrintWorkflowReport saves the workflow execution report as YAML at
// the given path.
var PrintWorkflowReport = func(report *automa.Report, reportPath string) {
	b, err := yaml.Marshal(report)
	if err != nil {
		logx.As().Error().Err(err).Msg("Failed to marshal workflow report")
		return
	}

	if err := os.MkdirAll(path.Dir(reportPath), core.DefaultDirOrExecPerm); err != nil {
		logx.As().Error().Err(err).Str("path", reportPath).Msg("Failed to create report directory")
		return
	}

	if err := os.WriteFile(reportPath, b, 0o644); err != nil {
		logx.As().Error().Err(err).Str("path", reportPath).Msg("Failed to write workflow report")
	}
}
