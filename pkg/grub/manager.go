// SPDX-License-Identifier: Apache-2.0

package grub

import (
	"context"
	"strconv"
	"strings"

	"github.com/platformops/bootprune/internal/exc"
	"github.com/rs/zerolog"
)

const (
	// GrubConfigPath is where grub2-mkconfig writes the regenerated
	// configuration on BIOS and UEFI Red Hat family systems alike (the
	// UEFI grub.cfg chains to it since el8).
	GrubConfigPath = "/boot/grub2/grub.cfg"

	savedEntryKey = "saved_entry"
)

var nolog = zerolog.Nop()

func contains(dump, token string) bool {
	return strings.Contains(dump, token)
}

type manager struct {
	logger *zerolog.Logger
	ops    bootOps
}

// ManagerOption allows setting various options for the grub manager.
type ManagerOption = func(m *manager)

// WithLogger allows injecting a logger instance.
func WithLogger(logger *zerolog.Logger) ManagerOption {
	return func(m *manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithBootOps allows injecting the low-level tool operations, mainly for tests.
func WithBootOps(ops bootOps) ManagerOption {
	return func(m *manager) {
		if ops != nil {
			m.ops = ops
		}
	}
}

// NewManager returns a Manager backed by grubby, grub2-editenv and grub2-mkconfig.
func NewManager(opts ...ManagerOption) Manager {
	m := &manager{logger: &nolog}
	for _, opt := range opts {
		opt(m)
	}

	if m.ops == nil {
		m.ops = &grubbyOps{logger: m.logger}
	}

	return m
}

func (m *manager) SavedDefault(ctx context.Context) (string, error) {
	dump, err := m.ops.envDump(ctx)
	if err != nil {
		return "", err
	}

	for _, line := range strings.Split(dump, "\n") {
		if strings.HasPrefix(line, savedEntryKey+"=") {
			return strings.TrimSpace(strings.TrimPrefix(line, savedEntryKey+"=")), nil
		}
	}

	return "", nil
}

func (m *manager) Entries(ctx context.Context) (*EntryList, error) {
	dump, err := m.ops.infoAll(ctx)
	if err != nil {
		return nil, err
	}

	return ParseEntries(dump), nil
}

func (m *manager) SetDefaultIndex(ctx context.Context, index int) error {
	return m.ops.setDefaultIndex(ctx, index)
}

func (m *manager) Regenerate(ctx context.Context) error {
	return m.ops.mkconfig(ctx, GrubConfigPath)
}

// ParseEntries parses `grubby --info=ALL` output. Entries are blocks of
// key=value lines starting with an index= line; values may be quoted.
func ParseEntries(dump string) *EntryList {
	list := &EntryList{Dump: dump}

	var cur *Entry
	flush := func() {
		if cur != nil {
			list.Entries = append(list.Entries, *cur)
			cur = nil
		}
	}

	for _, line := range strings.Split(dump, "\n") {
		line = strings.TrimSpace(line)
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		value = strings.Trim(value, `"`)

		switch key {
		case "index":
			flush()
			idx, err := strconv.Atoi(value)
			if err != nil {
				continue
			}
			cur = &Entry{Index: idx}
		case "id":
			if cur != nil {
				cur.Id = value
			}
		case "kernel":
			if cur != nil {
				cur.Kernel = value
			}
		case "title":
			if cur != nil {
				cur.Title = value
			}
		}
	}
	flush()

	return list
}

// grubbyOps implements bootOps on top of the grub command line tools.
type grubbyOps struct {
	logger *zerolog.Logger
}

func (o *grubbyOps) envDump(ctx context.Context) (string, error) {
	return exc.Output(ctx, o.logger, "grub2-editenv", "list")
}

func (o *grubbyOps) infoAll(ctx context.Context) (string, error) {
	return exc.Output(ctx, o.logger, "grubby", "--info=ALL")
}

func (o *grubbyOps) setDefaultIndex(ctx context.Context, index int) error {
	return exc.Run(ctx, o.logger, "grubby", "--set-default-index="+strconv.Itoa(index))
}

func (o *grubbyOps) mkconfig(ctx context.Context, out string) error {
	return exc.Run(ctx, o.logger, "grub2-mkconfig", "-o", out)
}
