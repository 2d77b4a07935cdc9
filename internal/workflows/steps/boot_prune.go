// SPDX-License-Identifier: Apache-2.0

package steps

import (
	"github.com/automa-saga/logx"
	"github.com/platformops/bootprune/internal/config"
	"github.com/platformops/bootprune/internal/core"
	"github.com/platformops/bootprune/pkg/confirm"
	"github.com/platformops/bootprune/pkg/grub"
	"github.com/platformops/bootprune/pkg/host"
	"github.com/platformops/bootprune/pkg/plock"
	"github.com/platformops/bootprune/pkg/rpm"
	"github.com/platformops/bootprune/pkg/software"
	"github.com/spf13/afero"
)

// seams for unit tests
var (
	bootUsage  = host.Usage
	bootDevice = host.BootDevice
)

// BootPrune carries a single cleanup run through its steps. The step
// builders are methods so that the inventory snapshot, the space counter
// and the post-removal state flow from one step to the next without a
// shared state bag.
//
// A BootPrune value is good for one workflow execution; build a fresh
// one per run.
type BootPrune struct {
	retention config.RetentionConfig
	packages  rpm.Manager
	boot      grub.Manager
	fsys      afero.Fs
	gate      confirm.Gate
	kernelPkg software.Package
	lock      plock.Lock

	// run state, populated as steps execute
	inventory  *rpm.Inventory
	current    *rpm.Inventory
	removed    int
	freedBytes int64
	usedBefore uint64
}

type BootPruneOption func(*BootPrune)

func WithRetention(retention config.RetentionConfig) BootPruneOption {
	return func(p *BootPrune) {
		p.retention = retention
	}
}

func WithPackageManager(m rpm.Manager) BootPruneOption {
	return func(p *BootPrune) {
		p.packages = m
	}
}

func WithBootManager(m grub.Manager) BootPruneOption {
	return func(p *BootPrune) {
		p.boot = m
	}
}

func WithFs(fsys afero.Fs) BootPruneOption {
	return func(p *BootPrune) {
		p.fsys = fsys
	}
}

func WithGate(g confirm.Gate) BootPruneOption {
	return func(p *BootPrune) {
		p.gate = g
	}
}

func WithKernelPackage(pkg software.Package) BootPruneOption {
	return func(p *BootPrune) {
		p.kernelPkg = pkg
	}
}

func WithLock(l plock.Lock) BootPruneOption {
	return func(p *BootPrune) {
		p.lock = l
	}
}

func NewBootPrune(opts ...BootPruneOption) *BootPrune {
	cfg := config.Get()

	p := &BootPrune{
		retention: cfg.Retention,
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.packages == nil {
		p.packages = rpm.NewManager(rpm.WithLogger(logx.As()))
	}

	if p.boot == nil {
		p.boot = grub.NewManager(grub.WithLogger(logx.As()))
	}

	if p.fsys == nil {
		p.fsys = afero.NewOsFs()
	}

	if p.gate == nil {
		if cfg.AutoConfirm {
			p.gate = confirm.NewAutoGate(logx.As())
		} else {
			p.gate = confirm.NewGate(confirm.WithLogger(logx.As()))
		}
	}

	if p.lock == nil {
		p.lock = plock.New(core.Paths().LockFile, plock.WithLogger(logx.As()))
	}

	return p
}

// currentVersions returns the installed kernel versions after any
// removal this run performed, falling back to the initial snapshot.
func (p *BootPrune) currentVersions() []string {
	if p.current != nil {
		return p.current.Versions
	}

	if p.inventory != nil {
		return p.inventory.Versions
	}

	return nil
}
