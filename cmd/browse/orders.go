package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/light-bringer/shopcat-service/internal/services"
)

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "List orders, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		status, _ := cmd.Flags().GetString("status")
		page, _ := cmd.Flags().GetInt("page")
		orderID, _ := cmd.Flags().GetString("set-status")
		next, _ := cmd.Flags().GetString("to")
		if orderID != "" && next == "" {
			return fmt.Errorf("--set-status needs --to")
		}

		return withServices(cmd, func(ctx context.Context, svc *services.ServiceOptions) error {
			b := svc.NewOrderBrowser()
			defer b.Close()

			if !b.ShowStatus(ctx, status) {
				return errLoadFailed
			}
			if orderID != "" && !b.ChangeStatus(ctx, orderID, next) {
				return fmt.Errorf("order %s was not moved to %s", orderID, next)
			}
			if page > 0 && !b.GoToPage(ctx, page) {
				return fmt.Errorf("page %d: %w", page, errLoadFailed)
			}
			return renderOrders(cmd.OutOrStdout(), b.State())
		})
	},
}

func init() {
	ordersCmd.Flags().String("status", "", "Show only orders in this status")
	ordersCmd.Flags().String("set-status", "", "Order to move before listing")
	ordersCmd.Flags().String("to", "", "Status for --set-status")
}
