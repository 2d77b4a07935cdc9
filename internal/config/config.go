// SPDX-License-Identifier: Apache-2.0

package config

import (
	"strings"

	"github.com/automa-saga/logx"
	"github.com/joomcode/errorx"
	"github.com/platformops/bootprune/internal/core"
	"github.com/spf13/viper"
)

// Verbosity controls console output granularity.
type Verbosity string

const (
	VerbosityDebug   Verbosity = "debug"
	VerbosityInfo    Verbosity = "info"
	VerbosityPrompts Verbosity = "prompts"
	VerbositySilent  Verbosity = "silent"
)

// AllVerbosities lists the recognized verbosity values.
func AllVerbosities() []Verbosity {
	return []Verbosity{VerbosityDebug, VerbosityInfo, VerbosityPrompts, VerbositySilent}
}

// logLevel maps a verbosity onto a zerolog level string understood by logx.
func (v Verbosity) logLevel() string {
	switch v {
	case VerbosityDebug:
		return "debug"
	case VerbosityPrompts:
		return "warn"
	case VerbositySilent:
		return "disabled"
	default:
		return "info"
	}
}

// RetentionConfig holds the kernel/initramfs retention knobs.
type RetentionConfig struct {
	// KeepKernels is the number of newest kernel packages to preserve.
	KeepKernels int `yaml:"keepKernels" json:"keepKernels"`
	// BootDir is the directory holding initramfs images.
	BootDir string `yaml:"bootDir" json:"bootDir"`
}

// Config holds the immutable per-run configuration. It is resolved once
// during Initialize and passed into components at construction; nothing
// mutates it afterwards.
type Config struct {
	// AutoConfirm answers every confirmation gate with "yes".
	AutoConfirm bool `yaml:"autoConfirm" json:"autoConfirm"`
	// Verbosity controls console output granularity. Silent implies
	// AutoConfirm since no operator is present to answer prompts.
	Verbosity Verbosity          `yaml:"verbosity" json:"verbosity"`
	Retention RetentionConfig    `yaml:"retention" json:"retention"`
	Log       logx.LoggingConfig `yaml:"log" json:"log"`
}

// Validate checks all configuration fields.
func (c Config) Validate() error {
	valid := false
	for _, v := range AllVerbosities() {
		if c.Verbosity == v {
			valid = true
			break
		}
	}
	if !valid {
		return errorx.IllegalArgument.New("unsupported verbosity: %q, supported values: %v",
			c.Verbosity, AllVerbosities())
	}

	if c.Retention.KeepKernels < 1 {
		return errorx.IllegalArgument.New("retention.keepKernels must be at least 1, got %d",
			c.Retention.KeepKernels)
	}

	if c.Retention.BootDir == "" {
		return errorx.IllegalArgument.New("retention.bootDir cannot be empty")
	}

	return nil
}

var globalConfig = defaults()

func defaults() Config {
	return Config{
		AutoConfirm: false,
		Verbosity:   VerbosityInfo,
		Retention: RetentionConfig{
			KeepKernels: core.DefaultKeepKernels,
			BootDir:     core.DefaultBootDir,
		},
		Log: logx.LoggingConfig{
			Level:          "info",
			ConsoleLogging: true,
			FileLogging:    false,
			Directory:      core.Paths().LogsDir,
			Filename:       core.AppName + ".log",
			MaxSize:        10,
			MaxBackups:     5,
			MaxAge:         30,
		},
	}
}

// Initialize loads configuration from the optional config file and the
// environment, then normalizes derived fields. It must be called before
// Get.
func Initialize(cfgFile string) error {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(strings.ToUpper(core.AppName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return NotFoundError.Wrap(err, "failed to read config file %q", cfgFile).
				WithProperty(errorx.PropertyPayload(), cfgFile)
		}
	}

	cfg := defaults()
	if err := v.Unmarshal(&cfg); err != nil {
		return errorx.IllegalFormat.Wrap(err, "failed to parse configuration")
	}

	normalize(&cfg)

	if err := cfg.Validate(); err != nil {
		return err
	}

	globalConfig = cfg
	return nil
}

// normalize resolves fields derived from others.
func normalize(cfg *Config) {
	cfg.Verbosity = Verbosity(strings.ToLower(string(cfg.Verbosity)))
	if cfg.Verbosity == VerbositySilent {
		cfg.AutoConfirm = true
	}
	cfg.Log.Level = cfg.Verbosity.logLevel()
}

// Get returns the global configuration snapshot.
func Get() Config {
	return globalConfig
}

// Set replaces the global configuration. Intended for flag overrides
// during command initialization and for tests.
func Set(cfg Config) error {
	normalize(&cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	globalConfig = cfg
	return nil
}
