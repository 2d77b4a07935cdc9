// SPDX-License-Identifier: Apache-2.0

// Package initramfs decides which initial RAM filesystem images under
// the boot directory are still paired with an installed kernel and which
// are stale. It only classifies and deletes; querying installed kernels
// is the rpm package's job.
package initramfs

import (
	"path"
	"sort"
	"strings"
	"time"

	"github.com/platformops/bootprune/internal/core"
	"github.com/spf13/afero"
)

const (
	filePrefix = "initramfs-"

	// rescuePrefix marks generic fallback images not tied to a kernel version.
	rescuePrefix = "initramfs-0-rescue-"

	// zeroPrefix marks kdump and other leftover artifacts that also use
	// the zero pseudo-version. They are never deleted by the versioned
	// classifier; only the rescue sub-policy inspects rescue files.
	zeroPrefix = "initramfs-0-"
)

// File is one on-disk initramfs image.
type File struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// Listing partitions the boot directory's initramfs images into rescue
// images and everything else.
type Listing struct {
	Rescue []File
	Other  []File
}

// List scans bootDir for initramfs images. Rescue images are split out
// since they follow their own retention sub-policy.
func List(fsys afero.Fs, bootDir string) (*Listing, error) {
	infos, err := afero.ReadDir(fsys, bootDir)
	if err != nil {
		return nil, err
	}

	listing := &Listing{}
	for _, info := range infos {
		if info.IsDir() || !strings.HasPrefix(info.Name(), filePrefix) {
			continue
		}

		f := File{
			Path:    path.Join(bootDir, info.Name()),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		}

		if strings.HasPrefix(info.Name(), rescuePrefix) {
			listing.Rescue = append(listing.Rescue, f)
		} else {
			listing.Other = append(listing.Other, f)
		}
	}

	return listing, nil
}

// Reconciliation is a partition of a file set into files to keep and
// files to delete. Keep and Delete are disjoint and together cover the
// input set.
type Reconciliation struct {
	Keep   []File
	Delete []File
}

// ReconcileRescue applies the rescue retention sub-policy: zero rescue
// images is a fatal misconfiguration, one is left alone, and with more
// than one only the newest by modification time survives.
func ReconcileRescue(rescue []File) (*Reconciliation, error) {
	if len(rescue) == 0 {
		return nil, core.NoRescueImage.New("no rescue initramfs image found")
	}

	sorted := make([]File, len(rescue))
	copy(sorted, rescue)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].ModTime.After(sorted[j].ModTime)
	})

	return &Reconciliation{
		Keep:   sorted[:1],
		Delete: sorted[1:],
	}, nil
}

// ReconcileVersioned classifies non-rescue images against the currently
// installed kernel versions. A file is kept when its name contains any
// of the given versions as a substring, or when it uses the zero
// pseudo-version prefix (kdump and similar artifacts are out of scope
// and always kept). Everything else is orphaned and marked for deletion.
//
// Substring containment rather than exact equality is deliberate:
// initramfs filenames embed the kernel version as a suffix but may carry
// additional decoration, and under-deletion is the safe failure mode.
func ReconcileVersioned(files []File, currentVersions []string) *Reconciliation {
	rec := &Reconciliation{}

	for _, f := range files {
		name := path.Base(f.Path)
		if strings.HasPrefix(name, zeroPrefix) {
			rec.Keep = append(rec.Keep, f)
			continue
		}

		matched := false
		for _, version := range currentVersions {
			if version != "" && strings.Contains(name, version) {
				matched = true
				break
			}
		}

		if matched {
			rec.Keep = append(rec.Keep, f)
		} else {
			rec.Delete = append(rec.Delete, f)
		}
	}

	return rec
}

// Remove deletes the given files and returns the total bytes removed.
// It stops at the first failure; files already deleted stay deleted.
func Remove(fsys afero.Fs, files []File) (int64, error) {
	var freed int64
	for _, f := range files {
		if err := fsys.Remove(f.Path); err != nil {
			return freed, err
		}
		freed += f.Size
	}

	return freed, nil
}
