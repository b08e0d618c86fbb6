package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ufoaiorg/ufoai-sub009/internal/application/production/commands"
	"github.com/ufoaiorg/ufoai-sub009/internal/application/production/queries"
	"github.com/ufoaiorg/ufoai-sub009/internal/infrastructure/catalog"
)

// NewCampaignCommand creates the campaign command with subcommands
func NewCampaignCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "campaign",
		Short: "Create and list campaigns",
	}

	cmd.AddCommand(newCampaignInitCommand())
	cmd.AddCommand(newCampaignListCommand())

	return cmd
}

func newCampaignInitCommand() *cobra.Command {
	var (
		scenarioPath string
		name         string
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Start a campaign from a scenario file",
		Long: `Create a new campaign from a scenario: its bases, staff, storage,
hangars and any pre-queued orders. The campaign ID defaults to the scenario's id.

Examples:
  ufoprod campaign init
  ufoprod campaign init --scenario configs/scenario.yaml --campaign ironman`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app) error {
				path := scenarioPath
				if path == "" {
					path = a.cfg.Production.ScenarioPath
				}
				sc, err := catalog.LoadScenario(path)
				if err != nil {
					return err
				}
				snap, err := sc.Snapshot(a.catalog)
				if err != nil {
					return err
				}

				id := campaignID
				if id == "" {
					id = snap.ID
				}
				if id == "" {
					id = a.cfg.Daemon.CampaignID
				}

				resp, err := send[*commands.InitCampaignResponse](ctx, a, &commands.InitCampaignCommand{
					CampaignID: id,
					Name:       name,
					Scenario:   snap,
				})
				if err != nil {
					return err
				}
				printSuccess("Campaign %s created: %d bases, %d queued orders, %d credits",
					resp.CampaignID, resp.Bases, resp.Orders, resp.Credits)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&scenarioPath, "scenario", "", "Scenario file (default: production.scenario_path)")
	cmd.Flags().StringVar(&name, "name", "", "Campaign name (default: the scenario's name)")

	return cmd
}

func newCampaignListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored campaigns",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app) error {
				resp, err := send[*queries.ListCampaignsResponse](ctx, a, &queries.ListCampaignsQuery{})
				if err != nil {
					return err
				}
				if len(resp.Campaigns) == 0 {
					fmt.Fprintln(stdout, "No campaigns. Create one with 'ufoprod campaign init'.")
					return nil
				}

				table := newTable("ID", "Name", "Date", "Credits", "Bases")
				for _, c := range resp.Campaigns {
					_ = table.Append([]string{
						c.ID,
						c.Name,
						formatHour(c.Hour),
						strconv.Itoa(c.Credits),
						strconv.Itoa(c.BaseCount),
					})
				}
				return table.Render()
			})
		},
	}
}
