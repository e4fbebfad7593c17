package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	ecocatalog "github.com/rl1809/ecoscene/internal/core/catalog"
	"github.com/rl1809/ecoscene/internal/core/domain"
	"github.com/rl1809/ecoscene/internal/core/pricing"
)

func catalogCmd() *cobra.Command {
	var (
		filter   domain.Filter
		sortKey  string
		currency string
	)

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List marketplace products",
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := ecocatalog.ParseSortKey(sortKey)
			if err != nil {
				return err
			}
			c, err := domain.ParseCurrency(currency)
			if err != nil {
				return err
			}

			products, err := catalog.ListProducts(cmd.Context())
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tPRICE\tRATING\tSTOCK")
			for _, p := range ecocatalog.Apply(products, filter, key) {
				price := "n/a"
				if v, ok := p.PriceIn(c); ok {
					price = pricing.FormatAmount(v, c)
				}
				stock := "in stock"
				if !p.InStock {
					stock = "sold out"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.1f\t%s\n", p.ID, p.Name, p.Category, price, p.Rating, stock)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&filter.Search, "search", "", "match name or description")
	cmd.Flags().StringVar(&filter.Category, "category", "", "category name")
	cmd.Flags().StringSliceVar(&filter.Certifications, "certification", nil, "certification label (repeatable)")
	cmd.Flags().StringVar(&sortKey, "sort", "featured", "featured, price-low, price-high, rating or impact")
	cmd.Flags().StringVar(&currency, "currency", "USD", "display currency")
	return cmd
}
