// SPDX-License-Identifier: Apache-2.0

package rpm

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/joomcode/errorx"
	"github.com/platformops/bootprune/internal/core"
	"github.com/stretchr/testify/require"
)

// installFakeRpm puts a fake rpm tool first on PATH. It reports
// kernel-uek as missing on stdout with exit status 1, the way rpm does,
// and one installed kernel package.
func installFakeRpm(t *testing.T) {
	t.Helper()

	script := `#!/bin/sh
case "$3" in
kernel-uek)
	echo "package kernel-uek is not installed"
	exit 1
	;;
kernel)
	echo "kernel-5.14.0-362.el9.x86_64                   Mon 01 Apr 2024 10:00:00 AM UTC"
	;;
esac
`

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "rpm"), []byte(script), 0o755))
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
}

// fakeOps is a toolOps double driven by canned responses.
type fakeOps struct {
	installed map[PackageName][]string
	old       []string
	removed   [][]string
	err       error
}

func (f *fakeOps) installedPackages(_ context.Context, name PackageName) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.installed[name], nil
}

func (f *fakeOps) oldInstallOnly(_ context.Context, _ PackageName, _ int) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.old, nil
}

func (f *fakeOps) remove(_ context.Context, pkgs []string) error {
	if f.err != nil {
		return f.err
	}
	f.removed = append(f.removed, pkgs)
	return nil
}

func TestResolvePrefersUEK(t *testing.T) {
	req := require.New(t)

	ops := &fakeOps{installed: map[PackageName][]string{
		PackageKernelUEK: {"5.15.0-8.91.4.1.el9uek.x86_64", "5.15.0-7.86.6.1.el9uek.x86_64"},
		PackageKernel:    {"5.14.0-362.el9.x86_64"},
	}}
	m := NewManager(WithToolOps(ops))

	inv, err := m.Resolve(context.Background())
	req.NoError(err)
	req.Equal(PackageKernelUEK, inv.Name)
	req.Equal(2, inv.Count())
}

func TestResolveFallsBackToKernel(t *testing.T) {
	req := require.New(t)

	ops := &fakeOps{installed: map[PackageName][]string{
		PackageKernel: {"5.14.0-362.el9.x86_64"},
	}}
	m := NewManager(WithToolOps(ops))

	inv, err := m.Resolve(context.Background())
	req.NoError(err)
	req.Equal(PackageKernel, inv.Name)
	req.Equal(1, inv.Count())
}

func TestInstalledPackagesNotInstalled(t *testing.T) {
	req := require.New(t)
	installFakeRpm(t)

	ops := &dnfOps{logger: &nolog}

	versions, err := ops.installedPackages(context.Background(), PackageKernelUEK)
	req.NoError(err)
	req.Empty(versions)

	versions, err = ops.installedPackages(context.Background(), PackageKernel)
	req.NoError(err)
	req.Equal([]string{"5.14.0-362.el9.x86_64"}, versions)
}

func TestResolveFallsThroughMissingUEK(t *testing.T) {
	req := require.New(t)
	installFakeRpm(t)

	m := NewManager()

	inv, err := m.Resolve(context.Background())
	req.NoError(err)
	req.Equal(PackageKernel, inv.Name)
	req.Equal(1, inv.Count())
}

func TestResolveNoKernelFound(t *testing.T) {
	req := require.New(t)

	m := NewManager(WithToolOps(&fakeOps{}))

	_, err := m.Resolve(context.Background())
	req.Error(err)
	req.True(errorx.IsOfType(err, core.NoKernelFound))
}

func TestNewestCapsAtCount(t *testing.T) {
	req := require.New(t)

	inv := Inventory{Name: PackageKernel, Versions: []string{"b", "a"}}
	req.Equal([]string{"b", "a"}, inv.Newest(2))
	req.Equal([]string{"b", "a"}, inv.Newest(5))
	req.Equal([]string{"b"}, inv.Newest(1))
}

func TestPlanRemoval(t *testing.T) {
	req := require.New(t)

	ops := &fakeOps{old: []string{
		"kernel-uek-5.15.0-6.80.3.1.el9uek.x86_64",
		"kernel-uek-5.15.0-5.76.5.1.el9uek.x86_64",
		"kernel-uek-5.15.0-4.70.5.1.el9uek.x86_64",
	}}
	m := NewManager(WithToolOps(ops))

	plan, err := m.PlanRemoval(context.Background(), PackageKernelUEK, 2)
	req.NoError(err)
	req.False(plan.IsEmpty())
	req.Len(plan.Packages, 3)
}

func TestPlanRemovalRejectsZeroKeep(t *testing.T) {
	req := require.New(t)

	m := NewManager(WithToolOps(&fakeOps{}))

	_, err := m.PlanRemoval(context.Background(), PackageKernel, 0)
	req.Error(err)
	req.True(errorx.IsOfType(err, errorx.IllegalArgument))
}

func TestRemoveSkipsEmptyPlan(t *testing.T) {
	req := require.New(t)

	ops := &fakeOps{}
	m := NewManager(WithToolOps(ops))

	req.NoError(m.Remove(context.Background(), nil))
	req.NoError(m.Remove(context.Background(), &RemovalPlan{Name: PackageKernel}))
	req.Empty(ops.removed)

	plan := &RemovalPlan{Name: PackageKernel, Packages: []string{"kernel-5.14.0-70.el9.x86_64"}}
	req.NoError(m.Remove(context.Background(), plan))
	req.Len(ops.removed, 1)
}
