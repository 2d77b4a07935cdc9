// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"github.com/platformops/bootprune/cmd/bootprune/commands/common"
	"github.com/platformops/bootprune/internal/workflows"
	"github.com/spf13/cobra"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove old kernels and stale boot images",
	Long: "Remove kernel packages outside the retention window, drop the shadowing kernel " +
		"dependency on UEK hosts, prune stale initramfs images and repair the default boot entry",
	Run: func(cmd *cobra.Command, args []string) {
		common.RunWorkflow(cmd.Context(), workflows.NewCleanBootWorkflow())
	},
}

func GetCleanCmd() *cobra.Command {
	return cleanCmd
}
