package pricing

import (
	"fmt"
	"math"

	"github.com/rl1809/ecoscene/internal/core/domain"
)

// Eco-discount rates. A line item earns DiscountPerCertification for every
// certification its product carries, capped at MaxDiscountRate per item.
const (
	DiscountPerCertification = 0.02
	MaxDiscountRate          = 0.10
)

// ShippingPolicy is the flat fee charged below the free-shipping threshold.
type ShippingPolicy struct {
	Threshold float64 `json:"threshold"`
	Fee       float64 `json:"fee"`
}

var shippingPolicies = map[domain.Currency]ShippingPolicy{
	domain.CurrencyUSD: {Threshold: 100, Fee: 10},
	domain.CurrencyV:   {Threshold: 100, Fee: 10},
	domain.CurrencyY:   {Threshold: 75, Fee: 7},
}

// ShippingFor returns the shipping policy of a settlement currency.
func ShippingFor(c domain.Currency) (ShippingPolicy, error) {
	p, ok := shippingPolicies[c]
	if !ok {
		return ShippingPolicy{}, fmt.Errorf("%w: %q", domain.ErrUnsupportedCurrency, string(c))
	}
	return p, nil
}

// FeeFor is a step function with a single discontinuity at the threshold.
// A zero subtotal is charged the fee.
func (p ShippingPolicy) FeeFor(subtotal float64) float64 {
	if subtotal >= p.Threshold {
		return 0
	}
	return p.Fee
}

// Remaining is how much more subtotal is needed to ship for free.
func (p ShippingPolicy) Remaining(subtotal float64) float64 {
	if subtotal >= p.Threshold {
		return 0
	}
	return p.Threshold - subtotal
}

// DiscountRate is the per-item eco-discount rate for a certification count.
func DiscountRate(certifications int) float64 {
	if certifications <= 0 {
		return 0
	}
	return math.Min(float64(certifications)*DiscountPerCertification, MaxDiscountRate)
}
