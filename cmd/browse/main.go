// Command browse pages through the catalog from a terminal, using the same
// list controllers the service exposes to screens.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/light-bringer/shopcat-service/internal/config"
	"github.com/light-bringer/shopcat-service/internal/logger"
	"github.com/light-bringer/shopcat-service/internal/services"
)

var rootCmd = &cobra.Command{
	Use:           "browse",
	Short:         "Browse products, orders and categories",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().String("mode", "", `Paging mode, "cursor" or "native" (default from PAGING_MODE)`)
	rootCmd.PersistentFlags().Int("page-size", 0, "Items per page (default from PAGE_SIZE)")
	rootCmd.PersistentFlags().Int("page", 0, "Zero-based page to show")

	rootCmd.AddCommand(productsCmd)
	rootCmd.AddCommand(ordersCmd)
	rootCmd.AddCommand(categoriesCmd)
}

// withServices loads configuration, applies flag overrides and runs fn with
// the wired services.
func withServices(cmd *cobra.Command, fn func(ctx context.Context, svc *services.ServiceOptions) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if mode, _ := flags.GetString("mode"); mode != "" {
		cfg.Paging.Mode = mode
	}
	if size, _ := flags.GetInt("page-size"); size > 0 {
		cfg.Paging.PageSize = size
	}
	if debug, _ := flags.GetBool("debug"); debug {
		cfg.Debug = true
	}
	cfg.Metrics.Enabled = false

	l, err := logger.NewLogger(&logger.LoggerConfig{Debug: cfg.Debug})
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = l.Sync() }()

	ctx := cmd.Context()
	svc, err := services.NewServiceOptions(ctx, cfg, l, nil)
	if err != nil {
		return err
	}
	defer svc.Close()

	l.Debug("browsing", zap.String("mode", cfg.Paging.Mode), zap.Int("page_size", cfg.Paging.PageSize))
	return fn(ctx, svc)
}
