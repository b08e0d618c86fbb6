package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ufoaiorg/ufoai-sub009/internal/application/production/commands"
)

// NewRunCommand creates the run command
func NewRunCommand() *cobra.Command {
	var (
		hours int
		quiet bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Advance the campaign clock",
		Long: `Advance the campaign by a number of hours. Every hour each base works on
its production queue, spends credits for completed units and stores them.

Examples:
  ufoprod run --hours 1
  ufoprod run --hours 72 --quiet`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if hours <= 0 {
				return fmt.Errorf("--hours must be positive")
			}
			return withApp(func(ctx context.Context, a *app) error {
				resp, err := send[*commands.RunHoursResponse](ctx, a, &commands.RunHoursCommand{
					CampaignID: a.campaign(),
					Hours:      hours,
				})
				if err != nil {
					return err
				}

				if !quiet {
					printEvents(resp.Events)
				}
				for _, e := range resp.Errors {
					errorColor.Fprintln(stdout, e)
				}
				printTitle("%s -> %s", formatHour(resp.FromHour), formatHour(resp.ToHour))
				fmt.Fprintf(stdout, "  Units completed: %d\n", resp.UnitsCompleted)
				fmt.Fprintf(stdout, "  Orders finished: %d\n", resp.OrdersFinished)
				fmt.Fprintf(stdout, "  Credits spent:   %d\n", resp.CreditsSpent)
				fmt.Fprintf(stdout, "  Balance:         %d\n", resp.Balance)
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&hours, "hours", "n", 1, "Campaign hours to simulate")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Only print the summary")

	return cmd
}
