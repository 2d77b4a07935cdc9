// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

// captureOutput points the root command's output at a buffer.
func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()

	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	return out
}

func TestRootHelp(t *testing.T) {
	req := require.New(t)

	out := captureOutput(t)
	rootCmd.SetArgs([]string{"--help"})

	err := rootCmd.Execute()
	req.NoError(err)
	req.Contains(out.String(), "clean")
	req.Contains(out.String(), "check")
	req.Contains(out.String(), "version")
}

func TestRootUnknownFlag(t *testing.T) {
	req := require.New(t)

	rootCmd.SetOut(io.Discard)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs([]string{"--definitely-not-a-flag"})

	err := rootCmd.Execute()
	req.Error(err)
}

func TestVersionCommand(t *testing.T) {
	req := require.New(t)

	out := captureOutput(t)
	rootCmd.SetArgs([]string{"version"})

	err := rootCmd.Execute()
	req.NoError(err)
	req.Contains(out.String(), "version:")
}
