// SPDX-License-Identifier: Apache-2.0

// Package confirm implements the operator confirmation gate placed in
// front of every destructive action. The gate is injected into each
// component so tests can substitute a double instead of manipulating
// process-global state.
package confirm

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/platformops/bootprune/internal/core"
	"github.com/rs/zerolog"
)

var nolog = zerolog.Nop()

// Section is one labeled before/after preview shown to the operator.
// The preview function is only invoked when an interactive gate renders
// it; auto-confirmed runs skip the work entirely.
type Section struct {
	Label   string
	Preview func() string
}

// Gate asks the operator to approve a destructive action. A nil return
// means proceed; core.ConfirmationDeclined means the whole run must
// abort without executing further destructive steps.
type Gate interface {
	Confirm(ctx context.Context, sections ...Section) error
}

// autoGate always proceeds without rendering previews.
type autoGate struct {
	logger *zerolog.Logger
}

func (g *autoGate) Confirm(_ context.Context, sections ...Section) error {
	g.logger.Debug().Int("sections", len(sections)).Msg("Auto-confirm active, skipping prompt")
	return nil
}

// NewAutoGate returns a gate that approves everything. Used for --yes
// and silent runs where no operator is present.
func NewAutoGate(logger *zerolog.Logger) Gate {
	if logger == nil {
		logger = &nolog
	}
	return &autoGate{logger: logger}
}

var (
	labelStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	previewStyle = lipgloss.NewStyle().PaddingLeft(2)
)

// interactiveGate renders each section then blocks for one yes/no answer.
type interactiveGate struct {
	out    io.Writer
	logger *zerolog.Logger
	prompt func(title string) (bool, error)
}

// GateOption allows setting various options for the interactive gate.
type GateOption = func(g *interactiveGate)

// WithOutput allows redirecting preview rendering, mainly for tests.
func WithOutput(out io.Writer) GateOption {
	return func(g *interactiveGate) {
		if out != nil {
			g.out = out
		}
	}
}

// WithLogger allows injecting a logger instance.
func WithLogger(logger *zerolog.Logger) GateOption {
	return func(g *interactiveGate) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithPrompt allows substituting the terminal prompt, mainly for tests.
func WithPrompt(prompt func(title string) (bool, error)) GateOption {
	return func(g *interactiveGate) {
		if prompt != nil {
			g.prompt = prompt
		}
	}
}

// NewGate returns an interactive gate writing previews to stdout and
// prompting on the terminal.
func NewGate(opts ...GateOption) Gate {
	g := &interactiveGate{
		out:    os.Stdout,
		logger: &nolog,
		prompt: terminalPrompt,
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

func (g *interactiveGate) Confirm(ctx context.Context, sections ...Section) error {
	for _, section := range sections {
		fmt.Fprintln(g.out, labelStyle.Render(section.Label))
		if section.Preview != nil {
			fmt.Fprintln(g.out, previewStyle.Render(section.Preview()))
		}
	}

	proceed, err := g.prompt("Proceed with the changes above?")
	if err != nil {
		// an unanswerable prompt (closed stdin, no tty) is a decline, not
		// a silent proceed
		return core.ConfirmationDeclined.Wrap(err, "confirmation prompt failed")
	}

	if !proceed {
		g.logger.Warn().Msg("Operator declined confirmation, aborting")
		return core.ConfirmationDeclined.New("operator declined confirmation")
	}

	return nil
}

func terminalPrompt(title string) (bool, error) {
	proceed := false
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(title).
			Affirmative("Yes").
			Negative("No").
			Value(&proceed),
	))

	if err := form.Run(); err != nil {
		return false, err
	}

	return proceed, nil
}
