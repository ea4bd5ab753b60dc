package cmd

import (
	"github.com/spf13/cobra"

	"github.com/hmans/rolodex/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse contacts interactively",
	Long:  `Opens an interactive terminal browser over the contact directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return tui.Run(dir)
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
