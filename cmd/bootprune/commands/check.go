// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"github.com/platformops/bootprune/cmd/bootprune/commands/common"
	"github.com/platformops/bootprune/internal/workflows"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report what a clean run would do",
	Long: "Resolve the kernel inventory, classify initramfs images and validate the default " +
		"boot entry without removing anything",
	Run: func(cmd *cobra.Command, args []string) {
		common.RunWorkflow(cmd.Context(), workflows.NewCheckBootWorkflow())
	},
}

func GetCheckCmd() *cobra.Command {
	return checkCmd
}
