package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ufoaiorg/ufoai-sub009/internal/application/production/commands"
)

// NewSavegameCommand creates the savegame command with subcommands
func NewSavegameCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "savegame",
		Short: "Export and import campaigns",
		Long: `Write a campaign, including every production queue, to a compressed
savegame file or load one back.

Examples:
  ufoprod savegame export --out campaign.ufp
  ufoprod savegame import --in campaign.ufp`,
	}
	cmd.AddCommand(newSavegameExportCommand())
	cmd.AddCommand(newSavegameImportCommand())
	return cmd
}

func newSavegameExportCommand() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the campaign to a savegame file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app) error {
				resp, err := send[*commands.ExportSavegameResponse](ctx, a, &commands.ExportSavegameCommand{
					CampaignID: a.campaign(),
				})
				if err != nil {
					return err
				}
				if err := os.WriteFile(out, resp.Data, 0o644); err != nil {
					return fmt.Errorf("failed to write savegame: %w", err)
				}
				printSuccess("Saved %d orders to %s (%d bytes)", resp.Orders, out, len(resp.Data))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Savegame file to write [required]")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

func newSavegameImportCommand() *cobra.Command {
	var in string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Load a campaign from a savegame file, replacing a campaign with the same id",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(in)
			if err != nil {
				return fmt.Errorf("failed to read savegame: %w", err)
			}
			return withApp(func(ctx context.Context, a *app) error {
				resp, err := send[*commands.ImportSavegameResponse](ctx, a, &commands.ImportSavegameCommand{Data: data})
				if err != nil {
					return err
				}
				printSuccess("Loaded campaign %s with %d orders", resp.CampaignID, resp.Orders)
				if resp.Unresolved > 0 {
					warnColor.Fprintf(stdout, "  %d orders reference unknown items and cannot progress\n", resp.Unresolved)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&in, "in", "i", "", "Savegame file to read [required]")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}
