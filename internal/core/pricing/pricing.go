// Package pricing computes cart totals: subtotal, tiered shipping,
// certification-based eco-discount and total, in one settlement currency.
//
// Every function here is pure. Results are kept at full float64 precision;
// use Present for display rounding.
package pricing

import (
	"math"

	"github.com/rl1809/ecoscene/internal/core/domain"
)

// ComputeTotals prices cart in currency. Input is validated before any
// arithmetic; on failure no partial result is returned. The cart and its
// products are only read.
func ComputeTotals(cart domain.Cart, currency domain.Currency) (domain.PricingResult, error) {
	policy, err := ShippingFor(currency)
	if err != nil {
		return domain.PricingResult{}, err
	}
	if err := Validate(cart, currency); err != nil {
		return domain.PricingResult{}, err
	}

	var subtotal, ecoDiscount float64
	for _, item := range cart {
		lineTotal := LineTotal(item, currency)
		subtotal += lineTotal
		ecoDiscount += lineTotal * DiscountRate(len(item.Product.Certifications))
	}

	shipping := policy.FeeFor(subtotal)

	return domain.PricingResult{
		Subtotal:    subtotal,
		Shipping:    shipping,
		EcoDiscount: ecoDiscount,
		Total:       subtotal + shipping - ecoDiscount,
	}, nil
}

// Validate checks every line item in order and reports the first failure as
// a *domain.LineItemError wrapping ErrInvalidQuantity or ErrMissingPrice.
func Validate(cart domain.Cart, currency domain.Currency) error {
	for i, item := range cart {
		var productID string
		if item.Product != nil {
			productID = item.Product.ID
		}
		if item.Quantity < 1 {
			return &domain.LineItemError{Index: i, ProductID: productID, Err: domain.ErrInvalidQuantity}
		}
		if item.Product == nil {
			return &domain.LineItemError{Index: i, Err: domain.ErrMissingPrice}
		}
		price, ok := item.Product.PriceIn(currency)
		if !ok || price < 0 || math.IsNaN(price) || math.IsInf(price, 0) {
			return &domain.LineItemError{Index: i, ProductID: productID, Err: domain.ErrMissingPrice}
		}
	}
	return nil
}

// LineTotal is price × quantity for an already validated line item.
func LineTotal(item domain.LineItem, currency domain.Currency) float64 {
	return item.Product.Price[currency] * float64(item.Quantity)
}
