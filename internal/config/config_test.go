// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	req := require.New(t)

	cfg := defaults()
	req.False(cfg.AutoConfirm)
	req.Equal(VerbosityInfo, cfg.Verbosity)
	req.Equal(2, cfg.Retention.KeepKernels)
	req.Equal("/boot", cfg.Retention.BootDir)
	req.NoError(cfg.Validate())
}

func TestSilentImpliesAutoConfirm(t *testing.T) {
	req := require.New(t)

	cfg := defaults()
	cfg.Verbosity = VerbositySilent
	req.NoError(Set(cfg))
	req.True(Get().AutoConfirm)
	req.Equal("disabled", Get().Log.Level)

	// restore defaults for other tests
	req.NoError(Set(defaults()))
}

func TestVerbosityLogLevelMapping(t *testing.T) {
	req := require.New(t)

	req.Equal("debug", VerbosityDebug.logLevel())
	req.Equal("info", VerbosityInfo.logLevel())
	req.Equal("warn", VerbosityPrompts.logLevel())
	req.Equal("disabled", VerbositySilent.logLevel())
}

func TestValidateRejectsUnknownVerbosity(t *testing.T) {
	req := require.New(t)

	cfg := defaults()
	cfg.Verbosity = "chatty"
	req.Error(cfg.Validate())
}

func TestValidateRejectsZeroRetention(t *testing.T) {
	req := require.New(t)

	cfg := defaults()
	cfg.Retention.KeepKernels = 0
	req.Error(cfg.Validate())

	cfg = defaults()
	cfg.Retention.BootDir = ""
	req.Error(cfg.Validate())
}

func TestInitializeFromFile(t *testing.T) {
	req := require.New(t)

	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "bootprune.yaml")
	content := []byte("autoConfirm: true\nretention:\n  keepKernels: 3\n  bootDir: /boot\n")
	req.NoError(os.WriteFile(cfgFile, content, 0o600))

	req.NoError(Initialize(cfgFile))
	req.True(Get().AutoConfirm)
	req.Equal(3, Get().Retention.KeepKernels)

	req.NoError(Set(defaults()))
}

func TestInitializeMissingFile(t *testing.T) {
	req := require.New(t)

	err := Initialize(filepath.Join(t.TempDir(), "nope.yaml"))
	req.Error(err)
}
