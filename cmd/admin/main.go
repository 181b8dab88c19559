// Command admin bundles operator tasks that do not belong on the HTTP API:
// schema migrations, operator accounts, and inspection of the dashboard and
// the delivery dead letter queue.
package main

import (
	"fmt"
	"os"

	"github.com/juanmzaragoza/billing-dad-project/internal/config"
	"github.com/juanmzaragoza/billing-dad-project/internal/logger"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "admin",
		Short:         "Administrative commands for the billing API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, _ := cmd.Flags().GetString("log-level")
			return logger.Setup(logger.LogConfig{Level: level, Format: "console"})
		},
	}
	root.PersistentFlags().String("log-level", "warn", "log level (trace…panic)")

	root.AddCommand(
		newMigrateCmd(),
		newSeedUserCmd(),
		newHashPasswordCmd(),
		newDashboardCmd(),
		newDLQCmd(),
	)
	return root
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
