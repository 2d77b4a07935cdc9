// SPDX-License-Identifier: Apache-2.0

package version

import (
	_ "embed"
	"strings"

	"github.com/Masterminds/semver/v3"
)

//go:embed COMMIT
var commit string

//go:embed VERSION
var number string

// buildMode is set at build time via ldflags for release builds
// -ldflags="-X 'github.com/platformops/bootprune/internal/version.buildMode=release'"
var buildMode string

func Commit() string {
	return strings.TrimSpace(commit)
}

func Number() string {
	return strings.TrimSpace(number)
}

// Semver returns the parsed build version. The VERSION file is expected
// to hold a valid semantic version; a broken file is a packaging error
// caught by the version tests.
func Semver() (*semver.Version, error) {
	return semver.NewVersion(Number())
}

// IsReleaseBuild returns true if this is a production release build.
// Release builds are created by the CI/CD pipeline with buildMode="release".
// Local/dev builds will return false.
func IsReleaseBuild() bool {
	return strings.TrimSpace(buildMode) == "release"
}

// BuildMode returns the current build mode ("release" or "dev")
func BuildMode() string {
	if IsReleaseBuild() {
		return "release"
	}
	return "dev"
}
