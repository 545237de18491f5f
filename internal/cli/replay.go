package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"market-signals/internal/app"
	"market-signals/internal/storage"
)

var (
	replayFrom string
	replayTo   string
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay historical bars through the engine day by day",
	RunE: func(cmd *cobra.Command, args []string) error {
		var opts app.ReplayOptions

		if replayFrom != "" {
			from, err := time.Parse(storage.DayFormat, replayFrom)
			if err != nil {
				return fmt.Errorf("invalid --from value: %w", err)
			}
			opts.From = &from
		}

		if replayTo != "" {
			to, err := time.Parse(storage.DayFormat, replayTo)
			if err != nil {
				return fmt.Errorf("invalid --to value: %w", err)
			}
			opts.To = &to
		}

		if opts.From != nil && opts.To != nil && !opts.From.Before(*opts.To) {
			return fmt.Errorf("--from must be before --to")
		}

		return getApp().Replay(cmd.Context(), opts)
	},
}

func init() {
	replayCmd.Flags().StringVar(&replayFrom, "from", "", "First day to replay (YYYY-MM-DD, inclusive)")
	replayCmd.Flags().StringVar(&replayTo, "to", "", "Last day to replay (YYYY-MM-DD, exclusive)")
}
