package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rl1809/ecoscene/internal/core/domain"
)

const freeLabel = "FREE"

// FreeShippingHint drives the "add N more for free shipping" message.
type FreeShippingHint struct {
	Threshold float64 `json:"threshold"`
	Remaining float64 `json:"remaining"`
	Qualified bool    `json:"qualified"`
	Message   string  `json:"message,omitempty"`
}

// Display is a PricingResult rounded for humans.
type Display struct {
	Currency     domain.Currency  `json:"currency"`
	Subtotal     string           `json:"subtotal"`
	Shipping     string           `json:"shipping"`
	EcoDiscount  string           `json:"eco_discount"`
	Total        string           `json:"total"`
	FreeShipping FreeShippingHint `json:"free_shipping"`
}

// FormatAmount rounds half away from zero to two decimals.
func FormatAmount(amount float64, c domain.Currency) string {
	return decimal.NewFromFloat(amount).StringFixed(2) + " " + string(c)
}

// Present formats a result computed in currency c.
func Present(r domain.PricingResult, c domain.Currency) (Display, error) {
	policy, err := ShippingFor(c)
	if err != nil {
		return Display{}, err
	}

	d := Display{
		Currency:    c,
		Subtotal:    FormatAmount(r.Subtotal, c),
		Shipping:    FormatAmount(r.Shipping, c),
		EcoDiscount: "-" + FormatAmount(r.EcoDiscount, c),
		Total:       FormatAmount(r.Total, c),
		FreeShipping: FreeShippingHint{
			Threshold: policy.Threshold,
			Remaining: policy.Remaining(r.Subtotal),
			Qualified: r.Subtotal >= policy.Threshold,
		},
	}
	if r.Shipping == 0 {
		d.Shipping = freeLabel
	}
	if !d.FreeShipping.Qualified {
		d.FreeShipping.Message = FreeShippingMessage(c, policy)
	}
	return d, nil
}

func FreeShippingMessage(c domain.Currency, p ShippingPolicy) string {
	return fmt.Sprintf("Free shipping on orders over %s %s", decimal.NewFromFloat(p.Threshold).String(), c)
}

// DiscountExplanation describes the eco-discount rule.
func DiscountExplanation() string {
	hundred := decimal.NewFromInt(100)
	per := decimal.NewFromFloat(DiscountPerCertification).Mul(hundred)
	limit := decimal.NewFromFloat(MaxDiscountRate).Mul(hundred)
	return fmt.Sprintf("%s%% off per eco-certification, up to %s%% per item", per.String(), limit.String())
}
