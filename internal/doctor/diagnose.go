// SPDX-License-Identifier: Apache-2.0

package doctor

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/automa-saga/automa"
	"github.com/automa-saga/logx"
	"github.com/joomcode/errorx"
	"github.com/platformops/bootprune/internal/config"
	"github.com/platformops/bootprune/internal/core"
	"github.com/platformops/bootprune/internal/version"
)

// ErrPropertyResolution carries an operator-facing resolution hint on an error.
var ErrPropertyResolution = errorx.RegisterProperty("resolution")

// ANSI codes for the diagnostics box on stderr
const (
	ansiRed    = "\033[31m"
	ansiYellow = "\033[33m"
	ansiCyan   = "\033[36m"
	ansiWhite  = "\033[37m"
	ansiGray   = "\033[90m"
	ansiReset  = "\033[0m"
	ansiBold   = "\033[1m"
)

type ErrorDiagnosis struct {
	Error      error    `yaml:"error" json:"error"`
	Message    string   `yaml:"message" json:"message"`
	Cause      string   `yaml:"cause" json:"cause"`
	ErrorType  string   `yaml:"errorType" json:"errorType"`
	TraceId    string   `yaml:"traceId" json:"traceId"`
	Commit     string   `yaml:"commit" json:"commit"`
	Version    string   `yaml:"version" json:"version"`
	Pid        int      `yaml:"pid" json:"pid"`
	Code       int      `yaml:"code" json:"code"`
	Logfile    string   `yaml:"log" json:"log"`
	Resolution []string `yaml:"steps" json:"steps"`
}

func toErrorCode(err error) int {
	switch {
	case errorx.IsOfType(err, core.NotSuperuser):
		return 10401
	case errorx.IsOfType(err, core.ConfirmationDeclined):
		return 10409
	case errorx.IsOfType(err, errorx.IllegalArgument):
		return 10400
	default:
		if errorx.HasTrait(err, errorx.NotFound()) {
			return 10404
		}
		return 10500
	}
}

func toErrorMessage(err error) (string, string) {
	e := errorx.Cast(err)
	if e == nil {
		return err.Error(), ""
	}

	return e.Message(), fmt.Sprintf("%s", e.Cause())
}

func findResolution(err error) []string {
	if hint, ok := errorx.ExtractProperty(err, ErrPropertyResolution); ok {
		return []string{hint.(string)}
	}

	switch {
	case errorx.IsOfType(err, core.NotSuperuser):
		return []string{fmt.Sprintf("Run the command with 'sudo' or as root user: `sudo %s`",
			strings.Join(os.Args, " "))}
	case errorx.IsOfType(err, core.NoKernelFound):
		return []string{"Ensure a 'kernel' or 'kernel-uek' package is installed before running cleanup."}
	case errorx.IsOfType(err, core.NoRescueImage):
		return []string{"No rescue initramfs image exists under /boot.",
			"Recreate one (e.g. via `dracut --regenerate-all`) before pruning initramfs images."}
	case errorx.IsOfType(err, core.RemovalIneffective):
		return []string{"The package manager reported success but removed nothing.",
			"Inspect the package manager logs and re-run the cleanup."}
	case errorx.IsOfType(err, core.ConfirmationDeclined):
		return []string{"Re-run and confirm the prompt, or pass --yes for unattended runs."}
	case errorx.IsOfType(err, errorx.IllegalArgument):
		return []string{"Ensure all required arguments are provided."}
	case errorx.IsOfType(err, config.NotFoundError):
		if arg, ok := errorx.ExtractProperty(err, errorx.PropertyPayload()); ok {
			return []string{fmt.Sprintf("Ensure configuration file %q exists, is correctly formatted and accessible", arg.(string))}
		}
		return []string{"Ensure configuration file exists and is accessible."}
	default:
		return []string{"Check error message for details or contact support"}
	}
}

// Diagnose attempts to find a resolution and provide a human friendly error response
func Diagnose(ctx context.Context, ex error) *ErrorDiagnosis {
	var traceId string
	if ctx.Value("traceId") != nil {
		traceId = ctx.Value("traceId").(string)
	}

	logfile := ""
	if config.Get().Log.FileLogging {
		logfile = config.Get().Log.Filename
	}

	msg, cause := toErrorMessage(ex)
	return &ErrorDiagnosis{
		Error:      ex,
		ErrorType:  errorx.GetTypeName(ex),
		Message:    msg,
		Cause:      cause,
		TraceId:    traceId,
		Code:       toErrorCode(ex),
		Commit:     version.Commit(),
		Version:    version.Number(),
		Pid:        os.Getpid(),
		Logfile:    logfile,
		Resolution: findResolution(ex),
	}
}

// CheckErr prints diagnosis and exits with error code 1.
// Optional instructions can be provided to give additional context to the user.
func CheckErr(ctx context.Context, err error, instructions ...string) {
	logx.As().Error().Err(err).Msg("error occurred")
	resp := Diagnose(ctx, err)

	fmt.Fprintf(os.Stderr, "\n%s%s********************************** Error Diagnostics **********************************%s\n", ansiBold, ansiRed, ansiReset)
	fmt.Fprintf(os.Stderr, "%s*%s\t%sError:%s %s\n", ansiRed, ansiReset, ansiBold+ansiWhite, ansiReset, resp.Message)
	if resp.Cause != "" && resp.Cause != "<nil>" {
		fmt.Fprintf(os.Stderr, "%s*%s\t%sCause:%s %s\n", ansiRed, ansiReset, ansiBold+ansiWhite, ansiReset, resp.Cause)
	}
	fmt.Fprintf(os.Stderr, "%s*%s\t%sError Type:%s %s\n", ansiRed, ansiReset, ansiBold+ansiWhite, ansiReset, resp.ErrorType)
	fmt.Fprintf(os.Stderr, "%s*%s\t%sError Code:%s %d\n", ansiRed, ansiReset, ansiBold+ansiWhite, ansiReset, resp.Code)
	fmt.Fprintf(os.Stderr, "%s*%s\t%sCommit:%s %s\n", ansiRed, ansiReset, ansiGray, ansiReset, resp.Commit)
	fmt.Fprintf(os.Stderr, "%s*%s\t%sPid:%s %d\n", ansiRed, ansiReset, ansiGray, ansiReset, resp.Pid)
	fmt.Fprintf(os.Stderr, "%s*%s\t%sTraceId:%s %s\n", ansiRed, ansiReset, ansiGray, ansiReset, resp.TraceId)
	fmt.Fprintf(os.Stderr, "%s*%s\t%sVersion:%s %s\n", ansiRed, ansiReset, ansiGray, ansiReset, resp.Version)
	if resp.Logfile != "" {
		fmt.Fprintf(os.Stderr, "%s*%s\t%sLogfile:%s %s\n", ansiRed, ansiReset, ansiCyan, ansiReset, resp.Logfile)
	}
	fmt.Fprintf(os.Stderr, "%s%s****************************************************************************************%s\n", ansiBold, ansiRed, ansiReset)
	fmt.Fprintf(os.Stderr, "\n%s%s************************************** Resolution **************************************%s\n", ansiBold, ansiYellow, ansiReset)

	// Print custom instructions first if provided
	if len(instructions) > 0 && instructions[0] != "" {
		for _, line := range strings.Split(instructions[0], "\n") {
			if line == "" {
				fmt.Fprintf(os.Stderr, "%s*%s\n", ansiYellow, ansiReset)
			} else {
				fmt.Fprintf(os.Stderr, "%s*%s\t%s\n", ansiYellow, ansiReset, ansiBold+ansiWhite+line+ansiReset)
			}
		}
		if len(resp.Resolution) > 0 {
			fmt.Fprintf(os.Stderr, "%s*%s\n", ansiYellow, ansiReset)
		}
	}

	for _, r := range resp.Resolution {
		fmt.Fprintf(os.Stderr, "%s*%s\t%s\n", ansiYellow, ansiReset, ansiWhite+r+ansiReset)
	}

	fmt.Fprintf(os.Stderr, "%s%s****************************************************************************************%s\n", ansiBold, ansiYellow, ansiReset)

	os.Exit(1)
}

// CheckReportErr prints diagnosis for a failed workflow report and exits non-zero.
func CheckReportErr(ctx context.Context, report *automa.Report) {
	if report == nil || report.Error == nil {
		return
	}

	CheckErr(ctx, report.Error, GetInstructionsFromReport(report))
}

// GetInstructionsFromReport recursively searches for instructions in report metadata.
// Returns the first non-empty instructions found in the report tree, or an empty string if none exist.
func GetInstructionsFromReport(report *automa.Report) string {
	if report == nil {
		return ""
	}

	if instructions, ok := report.Metadata["instructions"]; ok {
		return instructions
	}

	for _, stepReport := range report.StepReports {
		if instructions := GetInstructionsFromReport(stepReport); instructions != "" {
			return instructions
		}
	}

	return ""
}
