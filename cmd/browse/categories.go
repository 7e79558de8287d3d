package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/light-bringer/shopcat-service/internal/services"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the product categories in use",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withServices(cmd, func(ctx context.Context, svc *services.ServiceOptions) error {
			b := svc.NewCategoryBrowser()
			defer b.Close()

			if !b.LoadInitial(ctx) {
				return errLoadFailed
			}
			return renderCategories(cmd.OutOrStdout(), b.State())
		})
	},
}
