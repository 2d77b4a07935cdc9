// SPDX-License-Identifier: Apache-2.0

package exc

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"syscall"

	"github.com/platformops/bootprune/internal/core"
	"github.com/rs/zerolog"
)

var logFields = struct {
	execCmd string
	execPid string
}{
	execCmd: "exec_cmd",
	execPid: "exec_pid",
}

// CmdExecution executes a command and manages its lifecycle.
// It forcefully terminates the child process group if ctx.Done() signal is received.
type CmdExecution struct {
	done   chan bool
	cmd    *exec.Cmd
	logger *zerolog.Logger
}

func NewCmdExecution(cmd *exec.Cmd, logger *zerolog.Logger) *CmdExecution {
	return &CmdExecution{
		done:   make(chan bool),
		cmd:    cmd,
		logger: logger,
	}
}

// RunCmd starts running the command while monitoring any ctx.Done() signal.
func (sc *CmdExecution) RunCmd(ctx context.Context) error {
	defer close(sc.done)

	sc.logger.Debug().
		Str(logFields.execCmd, sc.cmd.String()).
		Msg("Executing command")

	sc.cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	if err := sc.cmd.Start(); err != nil {
		return err
	}

	go func() {
		select {
		case <-ctx.Done():
			sc.logger.Debug().
				Str(logFields.execCmd, sc.cmd.String()).
				Int(logFields.execPid, sc.cmd.Process.Pid).
				Msg("Force terminating command")

			if err := syscall.Kill(-sc.cmd.Process.Pid, syscall.SIGKILL); err != nil {
				sc.logger.Warn().
					Int(logFields.execPid, sc.cmd.Process.Pid).
					Err(err).
					Msg("Error occurred while terminating the process")
			}
		case <-sc.done:
		}
	}()

	return sc.cmd.Wait()
}

// Output runs the named tool and returns its trimmed stdout. A non-zero
// exit is wrapped as core.ExternalTool with the captured stderr attached;
// stdout is still returned so callers can inspect diagnostics that tools
// such as rpm print there on failure.
func Output(ctx context.Context, logger *zerolog.Logger, name string, args ...string) (string, error) {
	var stdout, stderr bytes.Buffer

	cmd := exec.Command(name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	sc := NewCmdExecution(cmd, logger)
	if err := sc.RunCmd(ctx); err != nil {
		return strings.TrimSpace(stdout.String()),
			core.ExternalTool.Wrap(err, "%s failed: %s", name, strings.TrimSpace(stderr.String()))
	}

	return strings.TrimSpace(stdout.String()), nil
}

// Run runs the named tool discarding stdout. A non-zero exit is wrapped
// as core.ExternalTool with the captured stderr attached.
func Run(ctx context.Context, logger *zerolog.Logger, name string, args ...string) error {
	var stderr bytes.Buffer

	cmd := exec.Command(name, args...)
	cmd.Stderr = &stderr

	sc := NewCmdExecution(cmd, logger)
	if err := sc.RunCmd(ctx); err != nil {
		return core.ExternalTool.Wrap(err, "%s failed: %s", name, strings.TrimSpace(stderr.String()))
	}

	return nil
}
