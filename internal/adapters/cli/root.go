package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	campaignID string
	verbose    bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ufoprod",
		Short: "ufoprod - Manage the production queues of a campaign",
		Long: `ufoprod manages the workshop and hangar production queues of every base
in a campaign and advances the campaign clock hour by hour.

Campaign state lives in the configured database; the catalog of items and
aircraft is read from production.catalog_path.

Examples:
  ufoprod campaign init --scenario configs/scenario.yaml
  ufoprod queue add --base cheyenne --item assault_rifle --amount 4
  ufoprod queue disassemble --base cheyenne --item craft_ufo_scout
  ufoprod queue list --base cheyenne
  ufoprod run --hours 24
  ufoprod ledger spend
  ufoprod savegame export --out campaign.sav`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config.yaml (default: search ., ./configs, /etc/ufoprod)")
	rootCmd.PersistentFlags().StringVarP(&campaignID, "campaign", "c", "",
		"Campaign ID (default: daemon.campaign_id)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Log every production notice and command")

	rootCmd.AddCommand(NewCampaignCommand())
	rootCmd.AddCommand(NewQueueCommand())
	rootCmd.AddCommand(NewRunCommand())
	rootCmd.AddCommand(NewBaseCommand())
	rootCmd.AddCommand(NewLedgerCommand())
	rootCmd.AddCommand(NewSavegameCommand())
	rootCmd.AddCommand(NewHealthCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
