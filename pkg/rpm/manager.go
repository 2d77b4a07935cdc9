// SPDX-License-Identifier: Apache-2.0

package rpm

import (
	"context"
	"strconv"
	"strings"

	"github.com/joomcode/errorx"
	"github.com/platformops/bootprune/internal/core"
	"github.com/platformops/bootprune/internal/exc"
	"github.com/rs/zerolog"
)

var nolog = zerolog.Nop()

type manager struct {
	logger *zerolog.Logger
	ops    toolOps
}

// ManagerOption allows setting various options for the rpm manager.
type ManagerOption = func(m *manager)

// WithLogger allows injecting a logger instance.
func WithLogger(logger *zerolog.Logger) ManagerOption {
	return func(m *manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithToolOps allows injecting the low-level tool operations, mainly for tests.
func WithToolOps(ops toolOps) ManagerOption {
	return func(m *manager) {
		if ops != nil {
			m.ops = ops
		}
	}
}

// NewManager returns a Manager backed by the rpm and dnf command line tools.
func NewManager(opts ...ManagerOption) Manager {
	m := &manager{logger: &nolog}
	for _, opt := range opts {
		opt(m)
	}

	if m.ops == nil {
		m.ops = &dnfOps{logger: m.logger}
	}

	return m
}

func (m *manager) Resolve(ctx context.Context) (*Inventory, error) {
	for _, name := range Candidates() {
		inv, err := m.Inventory(ctx, name)
		if err != nil {
			return nil, err
		}

		if inv.Count() > 0 {
			m.logger.Debug().
				Str("package", string(name)).
				Int("count", inv.Count()).
				Msg("Resolved kernel package name")
			return inv, nil
		}
	}

	return nil, core.NoKernelFound.New("no installed kernel package found, probed %v", Candidates())
}

func (m *manager) Inventory(ctx context.Context, name PackageName) (*Inventory, error) {
	versions, err := m.ops.installedPackages(ctx, name)
	if err != nil {
		return nil, err
	}

	return &Inventory{Name: name, Versions: versions}, nil
}

func (m *manager) PlanRemoval(ctx context.Context, name PackageName, keep int) (*RemovalPlan, error) {
	if keep < 1 {
		return nil, errorx.IllegalArgument.New("keep must be at least 1, got %d", keep)
	}

	pkgs, err := m.ops.oldInstallOnly(ctx, name, keep)
	if err != nil {
		return nil, err
	}

	return &RemovalPlan{Name: name, Packages: pkgs}, nil
}

func (m *manager) Remove(ctx context.Context, plan *RemovalPlan) error {
	if plan == nil || plan.IsEmpty() {
		return nil
	}

	return m.ops.remove(ctx, plan.Packages)
}

// dnfOps implements toolOps on top of rpm and dnf.
type dnfOps struct {
	logger *zerolog.Logger
}

// installedPackages lists installed version-release.arch strings newest
// first. `rpm -q --last` orders by install time, newest first, which is
// the ordering the package manager itself uses for install-only limits.
func (o *dnfOps) installedPackages(ctx context.Context, name PackageName) ([]string, error) {
	out, err := exc.Output(ctx, o.logger, "rpm", "-q", "--last", string(name))
	if err != nil {
		// rpm reports a missing package on stdout with exit status 1.
		if strings.Contains(out, "is not installed") {
			return nil, nil
		}
		return nil, err
	}

	var versions []string
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		// first column is the NEVRA, e.g. kernel-uek-5.15.0-8.91.4.1.el9uek.x86_64
		versions = append(versions, strings.TrimPrefix(fields[0], string(name)+"-"))
	}

	return versions, nil
}

func (o *dnfOps) oldInstallOnly(ctx context.Context, name PackageName, keep int) ([]string, error) {
	out, err := exc.Output(ctx, o.logger, "dnf", "repoquery", "-q",
		"--installonly", "--latest-limit=-"+strconv.Itoa(keep), string(name))
	if err != nil {
		return nil, err
	}

	if out == "" {
		return nil, nil
	}

	return strings.Split(out, "\n"), nil
}

func (o *dnfOps) remove(ctx context.Context, pkgs []string) error {
	args := append([]string{"-y", "remove"}, pkgs...)
	return exc.Run(ctx, o.logger, "dnf", args...)
}
