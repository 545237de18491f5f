package cli

import (
	"github.com/spf13/cobra"
)

var predictCmd = &cobra.Command{
	Use:   "predict [symbol...]",
	Short: "Predict next-day direction from learned correlations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return getApp().Predict(args)
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display the learning summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		return getApp().Status()
	},
}
