// SPDX-License-Identifier: Apache-2.0

package software

import (
	"testing"

	"github.com/bluet/syspkg"
	"github.com/bluet/syspkg/manager"
	"github.com/joomcode/errorx"
	"github.com/stretchr/testify/require"
)

// fakePackageManager implements only the syspkg.PackageManager methods the
// installer exercises; anything else panics via the embedded nil interface.
type fakePackageManager struct {
	syspkg.PackageManager

	installed map[string]bool
	deleted   []string
	findErr   error
	deleteErr error
}

func (f *fakePackageManager) Find(keywords []string, _ *manager.Options) ([]manager.PackageInfo, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}

	var out []manager.PackageInfo
	for _, name := range keywords {
		status, known := f.installed[name]
		if !known {
			continue
		}

		info := manager.PackageInfo{Name: name, Status: manager.PackageStatusAvailable}
		if status {
			info.Status = manager.PackageStatusInstalled
		}
		out = append(out, info)
	}

	return out, nil
}

func (f *fakePackageManager) Delete(pkgs []string, _ *manager.Options) ([]manager.PackageInfo, error) {
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}

	f.deleted = append(f.deleted, pkgs...)
	for _, name := range pkgs {
		f.installed[name] = false
	}

	return nil, nil
}

func TestKernelPackageName(t *testing.T) {
	req := require.New(t)

	fake := &fakePackageManager{installed: map[string]bool{"kernel": true}}
	pkg, err := NewKernelPackage(WithPackageManager(fake))
	req.NoError(err)
	req.Equal("kernel", pkg.Name())
}

func TestIsInstalled(t *testing.T) {
	req := require.New(t)

	fake := &fakePackageManager{installed: map[string]bool{"kernel": true}}
	pkg, err := NewKernelPackage(WithPackageManager(fake))
	req.NoError(err)
	req.True(pkg.IsInstalled())

	fake.installed["kernel"] = false
	req.False(pkg.IsInstalled())
}

func TestIsInstalledUnknownPackage(t *testing.T) {
	req := require.New(t)

	fake := &fakePackageManager{installed: map[string]bool{}}
	pkg, err := NewPackageInstaller(WithPackageName("kernel"), WithPackageManager(fake))
	req.NoError(err)
	req.False(pkg.IsInstalled())
}

func TestUninstall(t *testing.T) {
	req := require.New(t)

	fake := &fakePackageManager{installed: map[string]bool{"kernel": true}}
	pkg, err := NewKernelPackage(WithPackageManager(fake))
	req.NoError(err)

	info, err := pkg.Uninstall()
	req.NoError(err)
	req.Equal([]string{"kernel"}, fake.deleted)
	req.Equal(manager.PackageStatusAvailable, info.Status)
}

func TestUninstallPropagatesError(t *testing.T) {
	req := require.New(t)

	fake := &fakePackageManager{
		installed: map[string]bool{"kernel": true},
		deleteErr: NewPackageError(nil, "kernel"),
	}
	pkg, err := NewKernelPackage(WithPackageManager(fake))
	req.NoError(err)

	_, err = pkg.Uninstall()
	req.Error(err)
	req.True(errorx.IsOfType(err, PackageError))
}

func TestInfoNotFound(t *testing.T) {
	req := require.New(t)

	fake := &fakePackageManager{installed: map[string]bool{}}
	pkg, err := NewPackageInstaller(WithPackageName("kernel"), WithPackageManager(fake))
	req.NoError(err)

	_, err = pkg.Info()
	req.Error(err)
	req.True(errorx.IsOfType(err, PackageNotFound))
}
