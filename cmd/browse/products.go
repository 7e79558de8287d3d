package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/light-bringer/shopcat-service/internal/services"
)

var errLoadFailed = errors.New("list could not be loaded")

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "List products, optionally by category or title prefix",
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")
		keyword, _ := cmd.Flags().GetString("q")
		selectID, _ := cmd.Flags().GetString("select")
		page, _ := cmd.Flags().GetInt("page")
		if category != "" && keyword != "" {
			return errors.New("--category and --q are mutually exclusive")
		}

		return withServices(cmd, func(ctx context.Context, svc *services.ServiceOptions) error {
			b := svc.NewProductBrowser()
			defer b.Close()

			if selectID != "" {
				sel, err := b.Select(ctx, selectID)
				if err != nil {
					return err
				}
				return renderSelection(cmd.OutOrStdout(), sel)
			}

			var ok bool
			switch {
			case category != "":
				ok = b.ShowCategory(ctx, category)
			case keyword != "":
				ok = b.Search(ctx, keyword)
			default:
				ok = b.LoadInitial(ctx)
			}
			if !ok {
				return errLoadFailed
			}
			if page > 0 && !b.GoToPage(ctx, page) {
				return fmt.Errorf("page %d: %w", page, errLoadFailed)
			}
			return renderProducts(cmd.OutOrStdout(), b.State())
		})
	},
}

func init() {
	productsCmd.Flags().String("category", "", "Show one category")
	productsCmd.Flags().String("q", "", "Show titles starting with this text")
	productsCmd.Flags().String("select", "", "Show one product with its rating instead of a list")
}
