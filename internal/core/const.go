// SPDX-License-Identifier: Apache-2.0

package core

import "path"

const (
	AppName = "bootprune"

	// DefaultKeepKernels is the retention count: the number of newest
	// kernel packages that are always preserved.
	DefaultKeepKernels = 2

	DefaultBootDir = "/boot"

	DefaultDirOrExecPerm = 0o755
)

var (
	WorkDir  = path.Join("/var/lib", AppName)
	LogsDir  = path.Join("/var/log", AppName)
	LockFile = path.Join("/run", AppName+".lock")
)

// AppPaths groups the writable locations the tool uses at runtime.
type AppPaths struct {
	WorkDir  string
	LogsDir  string
	LockFile string
}

func Paths() AppPaths {
	return AppPaths{
		WorkDir:  WorkDir,
		LogsDir:  LogsDir,
		LockFile: LockFile,
	}
}
