package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rl1809/ecoscene/internal/core/domain"
	"github.com/rl1809/ecoscene/internal/core/pricing"
	"github.com/rl1809/ecoscene/internal/core/store"
)

type quoteLine struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	LineTotal string `json:"line_total"`
}

type quoteOutput struct {
	Lines       []quoteLine           `json:"lines"`
	Totals      domain.PricingResult  `json:"totals"`
	Display     pricing.Display       `json:"display"`
	Impact      pricing.ImpactSummary `json:"impact"`
	Wishlist    []string              `json:"wishlist,omitempty"`
	Actions     int                   `json:"actions"`
	DiscountFor string                `json:"discount_rule"`
}

func quoteCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "quote SESSION.toml",
		Short: "Replay a cart session and print the priced cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSession(args[0])
			if err != nil {
				return err
			}
			out, err := replayAndQuote(cmd.Context(), s)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}
			printQuote(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

func replayAndQuote(ctx context.Context, s session) (quoteOutput, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	actions, err := s.storeActions(ctx, catalog)
	if err != nil {
		return quoteOutput{}, err
	}

	products, err := catalog.ListProducts(ctx)
	if err != nil {
		return quoteOutput{}, err
	}

	st := store.New(store.Initial())
	unsubscribe := st.Subscribe(func(next store.State) {
		logger.Debug().Int("lines", len(next.Cart)).Str("currency", next.Currency.String()).Msg("state updated")
	})
	defer unsubscribe()

	for _, a := range []store.Action{store.FetchProductsStart{}, store.FetchProductsSuccess{Products: products}} {
		if _, err := st.Dispatch(a); err != nil {
			return quoteOutput{}, fmt.Errorf("load catalog (%s): %w", a.ActionType(), err)
		}
	}

	for i, a := range actions {
		if _, err := st.Dispatch(a); err != nil {
			return quoteOutput{}, fmt.Errorf("replay action %d (%s): %w", i, a.ActionType(), err)
		}
	}

	state := st.State()
	totals, err := pricing.ComputeTotals(state.Cart, state.Currency)
	if err != nil {
		return quoteOutput{}, err
	}
	display, err := pricing.Present(totals, state.Currency)
	if err != nil {
		return quoteOutput{}, err
	}

	out := quoteOutput{
		Totals:      totals,
		Display:     display,
		Impact:      pricing.Impact(state.Cart),
		Actions:     len(st.Log()),
		DiscountFor: pricing.DiscountExplanation(),
	}
	for _, item := range state.Cart {
		out.Lines = append(out.Lines, quoteLine{
			ProductID: item.Product.ID,
			Name:      item.Product.Name,
			Quantity:  item.Quantity,
			LineTotal: pricing.FormatAmount(pricing.LineTotal(item, state.Currency), state.Currency),
		})
	}
	for _, p := range state.Wishlist {
		out.Wishlist = append(out.Wishlist, p.ID)
	}
	return out, nil
}

func printQuote(w io.Writer, q quoteOutput) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PRODUCT\tNAME\tQTY\tLINE TOTAL")
	for _, l := range q.Lines {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", l.ProductID, l.Name, l.Quantity, l.LineTotal)
	}
	tw.Flush()

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Subtotal:      %s\n", q.Display.Subtotal)
	fmt.Fprintf(w, "Shipping:      %s\n", q.Display.Shipping)
	fmt.Fprintf(w, "Eco discount:  %s\n", q.Display.EcoDiscount)
	fmt.Fprintf(w, "Total:         %s\n", q.Display.Total)
	if q.Display.FreeShipping.Message != "" {
		fmt.Fprintf(w, "\n%s (%s to go)\n", q.Display.FreeShipping.Message,
			pricing.FormatAmount(q.Display.FreeShipping.Remaining, q.Display.Currency))
	}
	fmt.Fprintf(w, "%s\n", q.DiscountFor)
	fmt.Fprintf(w, "Impact: %d certifications, %.1f kg CO2\n", q.Impact.Certifications, q.Impact.CarbonOffsetKg)
	if len(q.Wishlist) > 0 {
		fmt.Fprintf(w, "Wishlist: %d saved\n", len(q.Wishlist))
	}
}
