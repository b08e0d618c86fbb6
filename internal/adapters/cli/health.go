package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	daemongrpc "github.com/ufoaiorg/ufoai-sub009/internal/adapters/grpc"
	"github.com/ufoaiorg/ufoai-sub009/internal/infrastructure/config"
)

// NewHealthCommand creates the health command
func NewHealthCommand() *cobra.Command {
	var address string

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check daemon health status",
		Long:  `Verify that the production daemon is running and its campaign clock is advancing.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if address == "" {
				address = config.LoadConfigOrDefault(configPath).Daemon.Address
			}

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			status, err := daemongrpc.CheckHealth(ctx, address)
			if err != nil {
				return err
			}
			if status != healthpb.HealthCheckResponse_SERVING {
				warnColor.Fprintf(stdout, "! Daemon at %s is up but not serving\n", address)
				fmt.Fprintf(stdout, "  Status: %s\n", status)
				return fmt.Errorf("daemon not serving")
			}

			printSuccess("Daemon is healthy")
			fmt.Fprintf(stdout, "  Address: %s\n", address)
			fmt.Fprintf(stdout, "  Status:  %s\n", status)
			return nil
		},
	}

	cmd.Flags().StringVar(&address, "address", "", "Daemon address (defaults to daemon.address from config)")
	return cmd
}
