package cli

import (
	"github.com/spf13/cobra"
)

var scoreCmd = &cobra.Command{
	Use:   "score <symbol>",
	Short: "Score an instrument's bars across the indicator families",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return getApp().Score(cmd.Context(), args[0])
	},
}
