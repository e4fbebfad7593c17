package handler

import (
	"github.com/rl1809/ecoscene/internal/core/domain"
	"github.com/rl1809/ecoscene/internal/core/pricing"
	"github.com/rl1809/ecoscene/internal/core/service"
)

type LineRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type QuoteRequest struct {
	Currency string        `json:"currency"`
	Items    []LineRequest `json:"items"`
}

type CartQuoteRequest struct {
	UserID   string `json:"user_id"`
	Currency string `json:"currency"`
}

type QuoteItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	LineTotal float64 `json:"line_total"`
	InStock   bool    `json:"in_stock"`
}

type QuoteResponse struct {
	Currency domain.Currency       `json:"currency"`
	Items    []QuoteItem           `json:"items"`
	Totals   domain.PricingResult  `json:"totals"`
	Display  pricing.Display       `json:"display"`
	Impact   pricing.ImpactSummary `json:"impact"`
	Discount string                `json:"discount_rule"`
}

func newQuoteResponse(q service.Quote) (QuoteResponse, error) {
	display, err := pricing.Present(q.Totals, q.Currency)
	if err != nil {
		return QuoteResponse{}, err
	}

	items := make([]QuoteItem, 0, len(q.Items))
	for _, item := range q.Items {
		items = append(items, QuoteItem{
			ProductID: item.Product.ID,
			Name:      item.Product.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.Product.Price[q.Currency],
			LineTotal: pricing.LineTotal(item, q.Currency),
			InStock:   item.Product.InStock,
		})
	}

	return QuoteResponse{
		Currency: q.Currency,
		Items:    items,
		Totals:   q.Totals,
		Display:  display,
		Impact:   q.Impact,
		Discount: pricing.DiscountExplanation(),
	}, nil
}

func toLines(items []LineRequest) []domain.CartLine {
	lines := make([]domain.CartLine, 0, len(items))
	for _, it := range items {
		lines = append(lines, domain.CartLine{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return lines
}
