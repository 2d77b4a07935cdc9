// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"

	"github.com/automa-saga/logx"
	"github.com/joomcode/errorx"
	"github.com/platformops/bootprune/cmd/bootprune/commands/version"
	"github.com/platformops/bootprune/internal/config"
	"github.com/platformops/bootprune/internal/doctor"
	"github.com/spf13/cobra"
)

// examples:
// ./bootprune check
// ./bootprune clean
// ./bootprune clean --yes --loglevel debug
// ./bootprune clean --silent --config ./config.yaml

var (
	// Used for flags.
	flagConfig       string
	flagYes          bool
	flagLogLevel     string
	flagVerbose      bool
	flagSilent       bool
	flagVersion      bool
	flagOutputFormat string

	rootCmd = &cobra.Command{
		Use:   "bootprune",
		Short: "Clean up old kernel packages and stale boot images",
		Long: "bootprune removes kernel packages outside the retention window, prunes stale " +
			"initramfs images and keeps the bootloader default entry valid on Red Hat family hosts",
		RunE: func(cmd *cobra.Command, args []string) error {
			if flagVersion {
				version.PrintVersion(cmd, flagOutputFormat)
				return nil
			}

			return cmd.Help()
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&flagYes, "yes", "y", false, "Answer every confirmation prompt with yes")
	rootCmd.PersistentFlags().StringVarP(&flagLogLevel, "loglevel", "l", "",
		fmt.Sprintf("Console verbosity %v", config.AllVerbosities()))
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Shorthand for --loglevel debug")
	rootCmd.PersistentFlags().BoolVarP(&flagSilent, "silent", "s", false, "Shorthand for --loglevel silent, implies --yes")
	rootCmd.PersistentFlags().StringVarP(&flagOutputFormat, "output", "o", "yaml", "Output format (yaml|json)")

	// support '--version' to show version information
	rootCmd.Flags().BoolVar(&flagVersion, "version", false, "Show version")

	// disable command sorting to keep the order of commands as added
	cobra.EnableCommandSorting = false

	// add subcommands
	rootCmd.AddCommand(GetCleanCmd())
	rootCmd.AddCommand(GetCheckCmd())
	rootCmd.AddCommand(version.GetCmd())
}

// Execute executes the root command.
func Execute(ctx context.Context) error {
	if ctx == nil {
		return errorx.IllegalArgument.New("context is required")
	}

	cobra.OnInitialize(func() {
		initConfig(ctx)
	})

	// execute the root command
	_, err := rootCmd.ExecuteContextC(ctx)
	if err != nil {
		return errorx.IllegalState.Wrap(err, "failed to execute command")
	}

	return nil
}

func initConfig(ctx context.Context) {
	if err := config.Initialize(flagConfig); err != nil {
		doctor.CheckErr(ctx, err)
	}

	// flag overrides, most specific last
	cfg := config.Get()
	if flagLogLevel != "" {
		cfg.Verbosity = config.Verbosity(flagLogLevel)
	}

	if flagVerbose {
		cfg.Verbosity = config.VerbosityDebug
	}

	if flagSilent {
		cfg.Verbosity = config.VerbositySilent
	}

	if flagYes {
		cfg.AutoConfirm = true
	}

	if err := config.Set(cfg); err != nil {
		doctor.CheckErr(ctx, err)
	}

	if err := logx.Initialize(config.Get().Log); err != nil {
		doctor.CheckErr(ctx, err)
	}
}
