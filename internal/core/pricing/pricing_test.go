package pricing

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rl1809/ecoscene/internal/core/domain"
)

const epsilon = 1e-9

func product(id string, prices domain.Prices, certs ...string) *domain.Product {
	return &domain.Product{ID: id, Price: prices, Certifications: certs, InStock: true}
}

func certs(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = "cert"
	}
	return out
}

func TestComputeTotals_EmptyCartChargesShipping(t *testing.T) {
	r, err := ComputeTotals(nil, domain.CurrencyUSD)
	require.NoError(t, err)

	assert.Equal(t, 0.0, r.Subtotal)
	assert.Equal(t, 10.0, r.Shipping)
	assert.Equal(t, 0.0, r.EcoDiscount)
	assert.Equal(t, 10.0, r.Total)
}

func TestComputeTotals_Scenarios(t *testing.T) {
	tests := []struct {
		name     string
		cart     domain.Cart
		currency domain.Currency
		want     domain.PricingResult
	}{
		{
			name:     "single item below threshold",
			cart:     domain.Cart{{Product: product("p1", domain.Prices{domain.CurrencyUSD: 12.99}, "Organic"), Quantity: 1}},
			currency: domain.CurrencyUSD,
			want:     domain.PricingResult{Subtotal: 12.99, Shipping: 10, EcoDiscount: 0.2598, Total: 22.7302},
		},
		{
			name:     "free shipping with three certifications",
			cart:     domain.Cart{{Product: product("p4", domain.Prices{domain.CurrencyUSD: 185}, certs(3)...), Quantity: 1}},
			currency: domain.CurrencyUSD,
			want:     domain.PricingResult{Subtotal: 185, Shipping: 0, EcoDiscount: 11.1, Total: 173.9},
		},
		{
			name:     "yield currency uses its own threshold",
			cart:     domain.Cart{{Product: product("p4", domain.Prices{domain.CurrencyY: 150}, certs(3)...), Quantity: 1}},
			currency: domain.CurrencyY,
			want:     domain.PricingResult{Subtotal: 150, Shipping: 0, EcoDiscount: 9, Total: 141},
		},
		{
			name:     "quantity two below threshold",
			cart:     domain.Cart{{Product: product("p2", domain.Prices{domain.CurrencyUSD: 45}, certs(2)...), Quantity: 2}},
			currency: domain.CurrencyUSD,
			want:     domain.PricingResult{Subtotal: 90, Shipping: 10, EcoDiscount: 3.6, Total: 96.4},
		},
		{
			name:     "discount capped at ten percent",
			cart:     domain.Cart{{Product: product("p9", domain.Prices{domain.CurrencyV: 50}, certs(7)...), Quantity: 1}},
			currency: domain.CurrencyV,
			want:     domain.PricingResult{Subtotal: 50, Shipping: 10, EcoDiscount: 5, Total: 55},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeTotals(tt.cart, tt.currency)
			require.NoError(t, err)

			assert.InDelta(t, tt.want.Subtotal, got.Subtotal, epsilon)
			assert.InDelta(t, tt.want.Shipping, got.Shipping, epsilon)
			assert.InDelta(t, tt.want.EcoDiscount, got.EcoDiscount, epsilon)
			assert.InDelta(t, tt.want.Total, got.Total, epsilon)
		})
	}
}

func TestComputeTotals_InvalidQuantity(t *testing.T) {
	cart := domain.Cart{
		{Product: product("ok", domain.Prices{domain.CurrencyUSD: 10}), Quantity: 1},
		{Product: product("bad", domain.Prices{domain.CurrencyUSD: 10}), Quantity: 0},
	}

	r, err := ComputeTotals(cart, domain.CurrencyUSD)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidQuantity))
	assert.Equal(t, domain.PricingResult{}, r)

	var lineErr *domain.LineItemError
	require.ErrorAs(t, err, &lineErr)
	assert.Equal(t, 1, lineErr.Index)
	assert.Equal(t, "bad", lineErr.ProductID)
}

func TestComputeTotals_NegativeQuantity(t *testing.T) {
	cart := domain.Cart{{Product: product("p", domain.Prices{domain.CurrencyUSD: 10}), Quantity: -3}}

	_, err := ComputeTotals(cart, domain.CurrencyUSD)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestComputeTotals_MissingPrice(t *testing.T) {
	tests := []struct {
		name string
		item domain.LineItem
	}{
		{"no entry for currency", domain.LineItem{Product: product("p", domain.Prices{domain.CurrencyUSD: 10}), Quantity: 1}},
		{"negative price", domain.LineItem{Product: product("p", domain.Prices{domain.CurrencyV: -1}), Quantity: 1}},
		{"nil product", domain.LineItem{Quantity: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeTotals(domain.Cart{tt.item}, domain.CurrencyV)
			assert.ErrorIs(t, err, domain.ErrMissingPrice)
		})
	}
}

func TestComputeTotals_UnsupportedCurrency(t *testing.T) {
	_, err := ComputeTotals(nil, domain.Currency("EUR"))
	assert.ErrorIs(t, err, domain.ErrUnsupportedCurrency)
}

func TestComputeTotals_DoesNotMutateInput(t *testing.T) {
	p := product("p", domain.Prices{domain.CurrencyUSD: 45, domain.CurrencyY: 35}, "a", "b")
	cart := domain.Cart{{Product: p, Quantity: 2}}

	first, err := ComputeTotals(cart, domain.CurrencyUSD)
	require.NoError(t, err)
	second, err := ComputeTotals(cart, domain.CurrencyUSD)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 2, cart[0].Quantity)
	assert.Equal(t, domain.Prices{domain.CurrencyUSD: 45, domain.CurrencyY: 35}, p.Price)
	assert.Equal(t, []string{"a", "b"}, p.Certifications)
}

func TestComputeTotals_Properties(t *testing.T) {
	catalog := []*domain.Product{
		product("a", domain.Prices{domain.CurrencyUSD: 12.99}, certs(4)...),
		product("b", domain.Prices{domain.CurrencyUSD: 45}, certs(3)...),
		product("c", domain.Prices{domain.CurrencyUSD: 0.5}),
		product("d", domain.Prices{domain.CurrencyUSD: 120}, certs(9)...),
	}

	var cart domain.Cart
	prevSubtotal := 0.0
	for i, p := range catalog {
		cart = append(cart, domain.LineItem{Product: p, Quantity: i + 1})

		r, err := ComputeTotals(cart, domain.CurrencyUSD)
		require.NoError(t, err)

		var wantSubtotal, maxDiscount float64
		for _, item := range cart {
			line := item.Product.Price[domain.CurrencyUSD] * float64(item.Quantity)
			wantSubtotal += line
			maxDiscount += MaxDiscountRate * line
		}

		assert.InDelta(t, wantSubtotal, r.Subtotal, epsilon)
		assert.GreaterOrEqual(t, r.Subtotal, prevSubtotal)
		assert.LessOrEqual(t, r.EcoDiscount, maxDiscount+epsilon)
		assert.Equal(t, r.Subtotal+r.Shipping-r.EcoDiscount, r.Total)
		prevSubtotal = r.Subtotal
	}
}

func TestShippingPolicy_StepAtThreshold(t *testing.T) {
	for _, c := range domain.Currencies {
		policy, err := ShippingFor(c)
		require.NoError(t, err)

		below := policy.FeeFor(policy.Threshold - 0.01)
		at := policy.FeeFor(policy.Threshold)
		above := policy.FeeFor(policy.Threshold + 0.01)

		assert.Equal(t, policy.Fee, below, c)
		assert.Equal(t, 0.0, at, c)
		assert.Equal(t, 0.0, above, c)
		assert.Equal(t, policy.Fee, policy.FeeFor(0), c)
	}
}

func TestDiscountRate(t *testing.T) {
	assert.Equal(t, 0.0, DiscountRate(0))
	assert.InDelta(t, 0.02, DiscountRate(1), epsilon)
	assert.InDelta(t, 0.08, DiscountRate(4), epsilon)
	assert.Equal(t, MaxDiscountRate, DiscountRate(6))
	assert.Equal(t, MaxDiscountRate, DiscountRate(50))
}

func TestComputeTotals_Concurrent(t *testing.T) {
	cart := domain.Cart{
		{Product: product("a", domain.Prices{domain.CurrencyY: 10}, certs(4)...), Quantity: 3},
		{Product: product("b", domain.Prices{domain.CurrencyY: 22}, certs(2)...), Quantity: 2},
	}
	want, err := ComputeTotals(cart, domain.CurrencyY)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := ComputeTotals(cart, domain.CurrencyY)
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			if got != want {
				t.Errorf("expected %+v, got %+v", want, got)
			}
		}()
	}
	wg.Wait()
}

func TestImpact(t *testing.T) {
	a := product("a", domain.Prices{domain.CurrencyUSD: 1}, "x", "y")
	a.Impact.CarbonFootprint = -2.5
	b := product("b", domain.Prices{domain.CurrencyUSD: 1}, "z")
	b.Impact.CarbonFootprint = 1.5

	s := Impact(domain.Cart{{Product: a, Quantity: 2}, {Product: b, Quantity: 1}})

	assert.Equal(t, 3, s.Certifications)
	assert.InDelta(t, -3.5, s.CarbonOffsetKg, epsilon)
}
