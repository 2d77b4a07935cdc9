// SPDX-License-Identifier: Apache-2.0

package confirm

import (
	"bytes"
	"context"
	"testing"

	"github.com/joomcode/errorx"
	"github.com/platformops/bootprune/internal/core"
	"github.com/stretchr/testify/require"
)

func TestAutoGateNeverInvokesPreviews(t *testing.T) {
	req := require.New(t)

	invoked := false
	gate := NewAutoGate(nil)
	err := gate.Confirm(context.Background(), Section{
		Label: "kernels to remove",
		Preview: func() string {
			invoked = true
			return "preview"
		},
	})

	req.NoError(err)
	req.False(invoked)
}

func TestInteractiveGateRendersSections(t *testing.T) {
	req := require.New(t)

	out := &bytes.Buffer{}
	gate := NewGate(
		WithOutput(out),
		WithPrompt(func(string) (bool, error) { return true, nil }),
	)

	err := gate.Confirm(context.Background(),
		Section{Label: "kernels to remove", Preview: func() string { return "kernel-uek-5.15.0-6" }},
		Section{Label: "kernels installed", Preview: func() string { return "kernel-uek-5.15.0-8" }},
	)

	req.NoError(err)
	req.Contains(out.String(), "kernels to remove")
	req.Contains(out.String(), "kernel-uek-5.15.0-6")
	req.Contains(out.String(), "kernels installed")
}

func TestInteractiveGateDecline(t *testing.T) {
	req := require.New(t)

	gate := NewGate(
		WithOutput(&bytes.Buffer{}),
		WithPrompt(func(string) (bool, error) { return false, nil }),
	)

	err := gate.Confirm(context.Background(), Section{Label: "files to delete"})
	req.Error(err)
	req.True(errorx.IsOfType(err, core.ConfirmationDeclined))
}

func TestInteractiveGatePromptFailureIsDecline(t *testing.T) {
	req := require.New(t)

	gate := NewGate(
		WithOutput(&bytes.Buffer{}),
		WithPrompt(func(string) (bool, error) {
			return false, errorx.IllegalState.New("no tty")
		}),
	)

	err := gate.Confirm(context.Background(), Section{Label: "files to delete"})
	req.Error(err)
	req.True(errorx.IsOfType(err, core.ConfirmationDeclined))
}
