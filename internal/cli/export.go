package cli

import (
	"github.com/spf13/cobra"

	"market-signals/internal/app"
)

var (
	exportPNGPath   string
	exportCSVPath   string
	exportMaxPoints int
)

var exportCmd = &cobra.Command{
	Use:   "export <symbol>",
	Short: "Export an instrument's recorded history as CSV and/or PNG chart",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := app.ExportOptions{
			Symbol:    args[0],
			PNGPath:   exportPNGPath,
			CSVPath:   exportCSVPath,
			MaxPoints: exportMaxPoints,
		}

		return getApp().Export(opts)
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportPNGPath, "png", "", "Path to write PNG chart")
	exportCmd.Flags().StringVar(&exportCSVPath, "csv", "", "Path to write CSV data")
	exportCmd.Flags().IntVar(&exportMaxPoints, "max-points", 0, "Maximum data points to export (defaults to config)")
}
