package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	ledgerCommands "github.com/ufoaiorg/ufoai-sub009/internal/application/ledger/commands"
	"github.com/ufoaiorg/ufoai-sub009/internal/application/ledger/queries"
)

// NewLedgerCommand creates the ledger command with subcommands
func NewLedgerCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Credit ledger of the campaign",
		Long: `View the credit movements of a campaign.

Every unit charged by a workshop is recorded as a PRODUCTION_COST
transaction with the balance before and after, the base, the order and
the produced target.

Examples:
  ufoprod ledger list --limit 20
  ufoprod ledger list --type PRODUCTION_COST --base cheyenne
  ufoprod ledger spend --since-hour 48
  ufoprod ledger adjust --amount 5000 --description "council funding"`,
	}

	cmd.AddCommand(newLedgerListCommand())
	cmd.AddCommand(newLedgerSpendCommand())
	cmd.AddCommand(newLedgerAdjustCommand())

	return cmd
}

func newLedgerListCommand() *cobra.Command {
	var (
		txType    string
		baseID    string
		sinceHour int64
		limit     int
		offset    int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions, newest first",
		Long: `List credit movements with optional filtering.

Transaction Types:
  INITIAL_FUNDING  - Starting credits of the campaign
  PRODUCTION_COST  - Charge for a completed unit
  ADJUSTMENT       - Manual correction`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app) error {
				query := &queries.GetTransactionsQuery{
					CampaignID: a.campaign(),
					BaseID:     baseID,
					Limit:      limit,
					Offset:     offset,
				}
				if txType != "" {
					query.TransactionType = &txType
				}
				if cmd.Flags().Changed("since-hour") {
					query.SinceHour = &sinceHour
				}

				resp, err := send[*queries.GetTransactionsResponse](ctx, a, query)
				if err != nil {
					return err
				}
				displayTransactionList(resp)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&txType, "type", "", "Filter by transaction type")
	cmd.Flags().StringVar(&baseID, "base", "", "Filter by base")
	cmd.Flags().Int64Var(&sinceHour, "since-hour", 0, "Only transactions at or after this campaign hour")
	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum number of transactions to return")
	cmd.Flags().IntVar(&offset, "offset", 0, "Number of transactions to skip")

	return cmd
}

func displayTransactionList(resp *queries.GetTransactionsResponse) {
	if len(resp.Transactions) == 0 {
		fmt.Fprintln(stdout, "No transactions found.")
		return
	}

	table := newTable("Hour", "Type", "Amount", "Balance", "Base", "Target", "Description")
	for _, tx := range resp.Transactions {
		amount := strconv.Itoa(tx.Amount)
		if tx.Amount < 0 {
			amount = errorColor.Sprint(amount)
		} else {
			amount = successColor.Sprint("+" + amount)
		}
		_ = table.Append([]string{
			strconv.FormatInt(tx.Hour, 10),
			tx.Type,
			amount,
			strconv.Itoa(tx.BalanceAfter),
			tx.BaseID,
			tx.TargetID,
			tx.Description,
		})
	}
	_ = table.Render()
}

func newLedgerSpendCommand() *cobra.Command {
	var sinceHour int64

	cmd := &cobra.Command{
		Use:   "spend",
		Short: "Summarise production spending by base and target",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app) error {
				query := &queries.GetProductionSpendQuery{CampaignID: a.campaign()}
				if cmd.Flags().Changed("since-hour") {
					query.SinceHour = &sinceHour
				}
				resp, err := send[*queries.GetProductionSpendResponse](ctx, a, query)
				if err != nil {
					return err
				}
				displaySpend(resp)
				return nil
			})
		},
	}

	cmd.Flags().Int64Var(&sinceHour, "since-hour", 0, "Only transactions at or after this campaign hour")
	return cmd
}

func displaySpend(resp *queries.GetProductionSpendResponse) {
	printTitle("Production spending (%d transactions)", resp.Transactions)
	fmt.Fprintf(stdout, "  Income: %d\n", resp.TotalIncome)
	fmt.Fprintf(stdout, "  Spent:  %d\n", resp.TotalSpent)

	for _, section := range []struct {
		title string
		lines []*queries.SpendLine
	}{
		{"Base", resp.ByBase},
		{"Target", resp.ByTarget},
	} {
		if len(section.lines) == 0 {
			continue
		}
		fmt.Fprintln(stdout)
		table := newTable(section.title, "Units", "Credits")
		for _, l := range section.lines {
			_ = table.Append([]string{l.Key, strconv.Itoa(l.Units), strconv.Itoa(l.Amount)})
		}
		_ = table.Render()
	}
}

func newLedgerAdjustCommand() *cobra.Command {
	var (
		amount      int
		description string
	)

	cmd := &cobra.Command{
		Use:   "adjust",
		Short: "Grant or withdraw credits",
		RunE: func(cmd *cobra.Command, args []string) error {
			if amount == 0 {
				return fmt.Errorf("--amount must not be zero")
			}
			return withApp(func(ctx context.Context, a *app) error {
				resp, err := send[*ledgerCommands.AdjustCreditsResponse](ctx, a, &ledgerCommands.AdjustCreditsCommand{
					CampaignID:  a.campaign(),
					Amount:      amount,
					Description: description,
				})
				if err != nil {
					return err
				}
				printSuccess("Balance %d -> %d", resp.BalanceBefore, resp.BalanceAfter)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&amount, "amount", 0, "Credits to add (negative to withdraw) [required]")
	cmd.Flags().StringVar(&description, "description", "", "Reason recorded with the transaction")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}
