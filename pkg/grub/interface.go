// SPDX-License-Identifier: Apache-2.0

package grub

import "context"

// Entry is one bootloader menu entry as reported by grubby.
type Entry struct {
	Index  int
	Id     string
	Kernel string
	Title  string
}

// EntryList is the parsed entry listing plus the raw dump it came from.
// The raw dump is kept because default-entry validation is a textual
// containment test against it, not a structured lookup.
type EntryList struct {
	Entries []Entry
	Dump    string
}

// ContainsSavedId reports whether the saved default entry id appears
// verbatim anywhere in the entry dump. An empty saved id never matches.
func (l EntryList) ContainsSavedId(saved string) bool {
	if saved == "" {
		return false
	}
	return contains(l.Dump, saved)
}

// Manager wraps the bootloader command line tools.
type Manager interface {
	// SavedDefault returns the persisted default entry id from the
	// bootloader environment, or an empty string when none is saved.
	SavedDefault(ctx context.Context) (string, error)

	// Entries lists all boot entries. The listing's own ordering is
	// trusted to place the newest kernel first.
	Entries(ctx context.Context) (*EntryList, error)

	// SetDefaultIndex commits the entry at the given listing index as the
	// new persisted default.
	SetDefaultIndex(ctx context.Context, index int) error

	// Regenerate rewrites the bootloader configuration file.
	Regenerate(ctx context.Context) error
}

// bootOps defines the low-level bootloader tool invocations.
// This interface can be easily substituted for testing.
type bootOps interface {
	envDump(ctx context.Context) (string, error)
	infoAll(ctx context.Context) (string, error)
	setDefaultIndex(ctx context.Context, index int) error
	mkconfig(ctx context.Context, out string) error
}
