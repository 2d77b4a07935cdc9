// SPDX-License-Identifier: Apache-2.0

package version

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNumberIsValidSemver(t *testing.T) {
	req := require.New(t)

	v, err := Semver()
	req.NoError(err)
	req.Equal(Number(), v.String())
}

func TestEmbeddedFilesAreTrimmed(t *testing.T) {
	req := require.New(t)

	req.Equal(strings.TrimSpace(Number()), Number())
	req.Equal(strings.TrimSpace(Commit()), Commit())
	req.NotEmpty(Commit())
}

func TestBuildModeDefaultsToDev(t *testing.T) {
	req := require.New(t)

	req.False(IsReleaseBuild())
	req.Equal("dev", BuildMode())
}

func TestInfoFormat(t *testing.T) {
	req := require.New(t)

	info := Get()
	req.Equal(Number(), info.Number)

	out, err := info.Format(FormatYAML)
	req.NoError(err)
	req.Contains(out, "version: "+Number())

	out, err = info.Format(FormatJSON)
	req.NoError(err)
	req.Contains(out, `"version":"`+Number()+`"`)

	_, err = info.Format("toml")
	req.Error(err)
}
