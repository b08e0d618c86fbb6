package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ufoaiorg/ufoai-sub009/internal/application/production/commands"
	"github.com/ufoaiorg/ufoai-sub009/internal/application/production/queries"
	"github.com/ufoaiorg/ufoai-sub009/internal/domain/production"
)

// NewQueueCommand creates the queue command with subcommands
func NewQueueCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "queue",
		Short: "Inspect and edit base production queues",
		Long: `Inspect and edit the production queue of a base.

Orders are addressed by their position in the queue; position 0 is the
order currently being worked on.

Examples:
  ufoprod queue list --base cheyenne
  ufoprod queue add --base cheyenne --item combat_armour --amount 5
  ufoprod queue add --base cheyenne --aircraft craft_interceptor
  ufoprod queue move --base cheyenne --index 2 --delta -2
  ufoprod queue inc --base cheyenne --index 0 --amount 10
  ufoprod queue cancel --base cheyenne --index 1`,
	}

	cmd.AddCommand(newQueueListCommand())
	cmd.AddCommand(newQueueAddCommand())
	cmd.AddCommand(newQueueDisassembleCommand())
	cmd.AddCommand(newQueueCancelCommand())
	cmd.AddCommand(newQueueMoveCommand())
	cmd.AddCommand(newQueueAmountCommand("inc", "Increase the amount of an order", 1))
	cmd.AddCommand(newQueueAmountCommand("dec", "Decrease the amount of an order", -1))
	cmd.AddCommand(newQueueRollCommand())
	cmd.AddCommand(newQueueEmptyCommand())
	cmd.AddCommand(newQueueUpdateCapacityCommand())

	return cmd
}

func baseFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVarP(target, "base", "b", "", "Base ID [required]")
	_ = cmd.MarkFlagRequired("base")
}

func indexFlag(cmd *cobra.Command, target *int) {
	cmd.Flags().IntVarP(target, "index", "i", 0, "Queue position (0 = head)")
}

func newQueueListCommand() *cobra.Command {
	var baseID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the production queue of a base",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app) error {
				resp, err := send[*queries.ListQueueResponse](ctx, a, &queries.ListQueueQuery{
					CampaignID: a.campaign(),
					BaseID:     baseID,
				})
				if err != nil {
					return err
				}
				renderQueue(resp)
				return nil
			})
		},
	}
	baseFlag(cmd, &baseID)
	return cmd
}

func renderQueue(resp *queries.ListQueueResponse) {
	printTitle("%s (%s), %s, %d credits, %d free slots",
		resp.BaseName, resp.BaseID, formatHour(resp.Hour), resp.Credits, resp.FreeSlots)

	if len(resp.Orders) == 0 {
		fmt.Fprintln(stdout, "Queue is empty.")
		return
	}

	table := newTable("#", "Kind", "Target", "Amount", "Progress", "Hours/Unit", "Cost/Unit", "Status")
	for _, o := range resp.Orders {
		name := o.TargetName
		if name == "" {
			name = o.TargetID
		}
		status := "ok"
		switch {
		case !o.Resolved:
			status = warnColor.Sprint("unknown target")
		case o.CreditBlocked:
			status = warnColor.Sprint("no credits")
		case o.SpaceBlocked:
			status = warnColor.Sprint("no space")
		}
		_ = table.Append([]string{
			strconv.Itoa(o.Index),
			o.Kind,
			name,
			strconv.Itoa(o.Amount),
			percent(o.PercentDone),
			strconv.Itoa(o.HoursPerUnit),
			strconv.Itoa(o.UnitCost),
			status,
		})
	}
	_ = table.Render()
}

func newQueueAddCommand() *cobra.Command {
	var (
		baseID     string
		itemID     string
		aircraftID string
		amount     int
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Queue the manufacture of an item or aircraft",
		RunE: func(cmd *cobra.Command, args []string) error {
			if (itemID == "") == (aircraftID == "") {
				return fmt.Errorf("exactly one of --item or --aircraft is required")
			}
			return enqueue(&commands.EnqueueOrderCommand{
				BaseID:     baseID,
				Kind:       production.OrderKindManufacture,
				ItemID:     itemID,
				AircraftID: aircraftID,
				Amount:     amount,
			})
		},
	}
	baseFlag(cmd, &baseID)
	cmd.Flags().StringVar(&itemID, "item", "", "Item ID to manufacture")
	cmd.Flags().StringVar(&aircraftID, "aircraft", "", "Aircraft template ID to build")
	cmd.Flags().IntVarP(&amount, "amount", "n", 1, "Units to produce")
	return cmd
}

func newQueueDisassembleCommand() *cobra.Command {
	var (
		baseID string
		itemID string
		amount int
	)

	cmd := &cobra.Command{
		Use:   "disassemble",
		Short: "Queue the disassembly of stored items",
		RunE: func(cmd *cobra.Command, args []string) error {
			return enqueue(&commands.EnqueueOrderCommand{
				BaseID: baseID,
				Kind:   production.OrderKindDisassembly,
				ItemID: itemID,
				Amount: amount,
			})
		},
	}
	baseFlag(cmd, &baseID)
	cmd.Flags().StringVar(&itemID, "item", "", "Item ID to take apart [required]")
	cmd.Flags().IntVarP(&amount, "amount", "n", 1, "Units to disassemble")
	_ = cmd.MarkFlagRequired("item")
	return cmd
}

func enqueue(req *commands.EnqueueOrderCommand) error {
	return withApp(func(ctx context.Context, a *app) error {
		req.CampaignID = a.campaign()
		resp, err := send[*commands.EnqueueOrderResponse](ctx, a, req)
		if err != nil {
			return err
		}
		printSuccess("Queued %d at position %d (order %s)", resp.Granted, resp.Index, resp.OrderID)
		if resp.Granted < resp.Requested {
			warnColor.Fprintf(stdout, "  Only %d of %d units could be queued\n", resp.Granted, resp.Requested)
		}
		return nil
	})
}

func newQueueCancelCommand() *cobra.Command {
	var (
		baseID string
		index  int
	)

	cmd := &cobra.Command{
		Use:   "cancel",
		Short: "Remove an order and refund its reserved materials",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app) error {
				resp, err := send[*commands.CancelOrderResponse](ctx, a, &commands.CancelOrderCommand{
					CampaignID: a.campaign(),
					BaseID:     baseID,
					Index:      index,
				})
				if err != nil {
					return err
				}
				printSuccess("Cancelled %d x %s (order %s)", resp.Amount, resp.TargetID, resp.OrderID)
				return nil
			})
		},
	}
	baseFlag(cmd, &baseID)
	indexFlag(cmd, &index)
	return cmd
}

func newQueueMoveCommand() *cobra.Command {
	var (
		baseID string
		index  int
		delta  int
	)

	cmd := &cobra.Command{
		Use:   "move",
		Short: "Move an order up (negative delta) or down the queue",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app) error {
				resp, err := send[*commands.ReorderResponse](ctx, a, &commands.MoveOrderCommand{
					CampaignID: a.campaign(),
					BaseID:     baseID,
					Index:      index,
					Delta:      delta,
				})
				if err != nil {
					return err
				}
				if !resp.Changed {
					fmt.Fprintln(stdout, "Queue unchanged.")
					return nil
				}
				printSuccess("Order moved to position %d", resp.Index)
				return nil
			})
		},
	}
	baseFlag(cmd, &baseID)
	indexFlag(cmd, &index)
	cmd.Flags().IntVarP(&delta, "delta", "d", -1, "Positions to move; negative moves toward the head")
	return cmd
}

func newQueueAmountCommand(use, short string, sign int) *cobra.Command {
	var (
		baseID string
		index  int
		amount int
	)

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			if amount <= 0 {
				return fmt.Errorf("--amount must be positive")
			}
			return withApp(func(ctx context.Context, a *app) error {
				resp, err := send[*commands.ChangeAmountResponse](ctx, a, &commands.ChangeAmountCommand{
					CampaignID: a.campaign(),
					BaseID:     baseID,
					Index:      index,
					Delta:      sign * amount,
				})
				if err != nil {
					return err
				}
				if resp.Removed {
					printSuccess("Order %s removed", resp.OrderID)
					return nil
				}
				printSuccess("Order %s: %d -> %d", resp.OrderID, resp.Before, resp.After)
				return nil
			})
		},
	}
	baseFlag(cmd, &baseID)
	indexFlag(cmd, &index)
	cmd.Flags().IntVarP(&amount, "amount", "n", 1, "Units to add or remove")
	return cmd
}

func newQueueRollCommand() *cobra.Command {
	var baseID string

	cmd := &cobra.Command{
		Use:   "roll",
		Short: "Move the head order to the bottom of the queue",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app) error {
				resp, err := send[*commands.ReorderResponse](ctx, a, &commands.RollQueueCommand{
					CampaignID: a.campaign(),
					BaseID:     baseID,
				})
				if err != nil {
					return err
				}
				if !resp.Changed {
					fmt.Fprintln(stdout, "Queue unchanged.")
					return nil
				}
				printSuccess("Head order rolled to position %d", resp.Index)
				return nil
			})
		},
	}
	baseFlag(cmd, &baseID)
	return cmd
}

func newQueueEmptyCommand() *cobra.Command {
	var baseID string

	cmd := &cobra.Command{
		Use:   "empty",
		Short: "Cancel every order of a base",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app) error {
				resp, err := send[*commands.QueueEventsResponse](ctx, a, &commands.EmptyQueueCommand{
					CampaignID: a.campaign(),
					BaseID:     baseID,
				})
				if err != nil {
					return err
				}
				printEvents(resp.Events)
				return nil
			})
		},
	}
	baseFlag(cmd, &baseID)
	return cmd
}

func newQueueUpdateCapacityCommand() *cobra.Command {
	var baseID string

	cmd := &cobra.Command{
		Use:   "update-capacity",
		Short: "Recompute workshop space after staff changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app) error {
				resp, err := send[*commands.QueueEventsResponse](ctx, a, &commands.UpdateWorkshopCapacityCommand{
					CampaignID: a.campaign(),
					BaseID:     baseID,
				})
				if err != nil {
					return err
				}
				if len(resp.Events) == 0 {
					printSuccess("Workshop capacity of %s updated", baseID)
					return nil
				}
				printEvents(resp.Events)
				return nil
			})
		},
	}
	baseFlag(cmd, &baseID)
	return cmd
}
