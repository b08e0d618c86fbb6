package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ufoaiorg/ufoai-sub009/internal/application/production/queries"
)

// NewBaseCommand creates the base command with subcommands
func NewBaseCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "base",
		Short: "Inspect bases",
	}
	cmd.AddCommand(newBaseShowCommand())
	return cmd
}

func newBaseShowCommand() *cobra.Command {
	var baseID string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show staff, capacities, storage and hangars of a base",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app) error {
				resp, err := send[*queries.GetBaseResponse](ctx, a, &queries.GetBaseQuery{
					CampaignID: a.campaign(),
					BaseID:     baseID,
				})
				if err != nil {
					return err
				}
				renderBase(resp)
				return nil
			})
		},
	}
	baseFlag(cmd, &baseID)
	return cmd
}

func renderBase(b *queries.GetBaseResponse) {
	printTitle("%s (%s) #%d", b.Name, b.ID, b.Index)
	fmt.Fprintf(stdout, "  Command centre:    %s\n", yesNo(b.CommandCentre))
	fmt.Fprintf(stdout, "  Workshops:         %d\n", b.Workshops)
	fmt.Fprintf(stdout, "  Workers:           %d (%d effective)\n", b.Workers, b.EffectiveWorkers)
	fmt.Fprintf(stdout, "  Queued orders:     %d\n", b.QueueLength)
	if b.UnderAttack {
		warnColor.Fprintln(stdout, "  Base is under attack: production halted")
	} else if !b.ProductionAllowed {
		warnColor.Fprintln(stdout, "  Production is not possible in this base")
	}

	fmt.Fprintln(stdout)
	caps := newTable("Capacity", "Used", "Max")
	for _, c := range b.Capacities {
		_ = caps.Append([]string{c.Kind, strconv.Itoa(c.Current), strconv.Itoa(c.Max)})
	}
	_ = caps.Render()

	if len(b.Stock) > 0 {
		fmt.Fprintln(stdout)
		stock := newTable("Item", "Name", "Count")
		for _, s := range b.Stock {
			_ = stock.Append([]string{s.ItemID, s.Name, strconv.Itoa(s.Count)})
		}
		_ = stock.Render()
	}

	if len(b.Aircraft) > 0 {
		fmt.Fprintln(stdout)
		hangar := newTable("Aircraft", "Template", "Size", "ID")
		for _, ac := range b.Aircraft {
			_ = hangar.Append([]string{ac.Name, ac.TemplateID, string(ac.Size), ac.ID})
		}
		_ = hangar.Render()
	}
}
