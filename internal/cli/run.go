package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"market-signals/internal/storage"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the scheduled learning service",
	RunE: func(cmd *cobra.Command, args []string) error {
		return getApp().Run(cmd.Context())
	},
}

var cycleDay string

var cycleCmd = &cobra.Command{
	Use:   "cycle",
	Short: "Execute one learning cycle and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		day := time.Now().UTC()
		if cycleDay != "" {
			parsed, err := time.Parse(storage.DayFormat, cycleDay)
			if err != nil {
				return fmt.Errorf("invalid --day value: %w", err)
			}
			day = parsed
		}
		return getApp().RunCycle(cmd.Context(), day)
	},
}

func init() {
	cycleCmd.Flags().StringVar(&cycleDay, "day", "", "Trading day to process (YYYY-MM-DD, defaults to today)")
}
