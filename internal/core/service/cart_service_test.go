package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rl1809/ecoscene/internal/core/domain"
)

func TestCartService_AddMergesAndKeepsOrder(t *testing.T) {
	svc := NewCartService(newCatalog(), newMockCartRepo(), zerolog.Nop())
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "u", "seeds", 1)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, "u", "beef", 1)
	require.NoError(t, err)
	cart, err := svc.AddItem(ctx, "u", "seeds", 2)
	require.NoError(t, err)

	require.Len(t, cart, 2)
	assert.Equal(t, "seeds", cart[0].Product.ID)
	assert.Equal(t, 3, cart[0].Quantity)
	assert.Equal(t, "beef", cart[1].Product.ID)
}

func TestCartService_AddUnknownProduct(t *testing.T) {
	svc := NewCartService(newCatalog(), newMockCartRepo(), zerolog.Nop())

	_, err := svc.AddItem(context.Background(), "u", "nope", 1)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestCartService_UpdateAndRemove(t *testing.T) {
	repo := newMockCartRepo()
	svc := NewCartService(newCatalog(), repo, zerolog.Nop())
	ctx := context.Background()

	svc.AddItem(ctx, "u", "seeds", 1)
	svc.AddItem(ctx, "u", "beef", 1)

	cart, err := svc.UpdateQuantity(ctx, "u", "seeds", 4)
	require.NoError(t, err)
	assert.Equal(t, 4, cart[0].Quantity)

	_, err = svc.UpdateQuantity(ctx, "u", "seeds", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = svc.UpdateQuantity(ctx, "u", "missing", 1)
	assert.ErrorIs(t, err, domain.ErrItemNotInCart)

	cart, err = svc.RemoveItem(ctx, "u", "seeds")
	require.NoError(t, err)
	require.Len(t, cart, 1)

	stored, _ := repo.GetCart(ctx, "u")
	assert.Equal(t, []domain.CartLine{{ProductID: "beef", Quantity: 1}}, stored)

	require.NoError(t, svc.Clear(ctx, "u"))
	cart, err = svc.Cart(ctx, "u")
	require.NoError(t, err)
	assert.Empty(t, cart)
}

func TestCartService_QuoteSwitchesCurrency(t *testing.T) {
	svc := NewCartService(newCatalog(), newMockCartRepo(), zerolog.Nop())
	ctx := context.Background()

	svc.AddItem(ctx, "u", "beef", 1)

	usd, err := svc.Quote(ctx, "u", domain.CurrencyUSD)
	require.NoError(t, err)
	assert.InDelta(t, 173.9, usd.Totals.Total, 1e-9)
	assert.Equal(t, 3, usd.Impact.Certifications)

	y, err := svc.Quote(ctx, "u", domain.CurrencyY)
	require.NoError(t, err)
	assert.InDelta(t, 141.0, y.Totals.Total, 1e-9)
	assert.Equal(t, domain.CurrencyY, y.Currency)
}

func TestCartService_QuoteLines(t *testing.T) {
	svc := NewCartService(newCatalog(), newMockCartRepo(), zerolog.Nop())
	ctx := context.Background()

	q, err := svc.QuoteLines(ctx, []domain.CartLine{
		{ProductID: "seeds", Quantity: 1},
		{ProductID: "seeds", Quantity: 1},
	}, domain.CurrencyUSD)
	require.NoError(t, err)
	require.Len(t, q.Items, 1)
	assert.Equal(t, 2, q.Items[0].Quantity)
	assert.InDelta(t, 25.98, q.Totals.Subtotal, 1e-9)

	_, err = svc.QuoteLines(ctx, []domain.CartLine{{ProductID: "seeds", Quantity: 0}}, domain.CurrencyUSD)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = svc.QuoteLines(ctx, []domain.CartLine{{ProductID: "nope", Quantity: 1}}, domain.CurrencyUSD)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	empty, err := svc.QuoteLines(ctx, nil, domain.CurrencyY)
	require.NoError(t, err)
	assert.Equal(t, 7.0, empty.Totals.Shipping)
}

func TestCartService_RemoveDelistedLine(t *testing.T) {
	repo := newMockCartRepo()
	svc := NewCartService(newCatalog(), repo, zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, repo.SaveCart(ctx, "u", []domain.CartLine{
		{ProductID: "delisted", Quantity: 1},
		{ProductID: "seeds", Quantity: 1},
	}))

	q, err := svc.Quote(ctx, "u", domain.CurrencyUSD)
	require.NoError(t, err)
	require.Len(t, q.Items, 1)
	assert.Equal(t, "seeds", q.Items[0].Product.ID)

	cart, err := svc.RemoveItem(ctx, "u", "delisted")
	require.NoError(t, err)
	require.Len(t, cart, 1)

	stored, _ := repo.GetCart(ctx, "u")
	assert.Equal(t, []domain.CartLine{{ProductID: "seeds", Quantity: 1}}, stored)
}

func TestCartService_MutationPrunesDelistedLine(t *testing.T) {
	repo := newMockCartRepo()
	svc := NewCartService(newCatalog(), repo, zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, repo.SaveCart(ctx, "u", []domain.CartLine{
		{ProductID: "delisted", Quantity: 1},
		{ProductID: "seeds", Quantity: 1},
	}))

	_, err := svc.AddItem(ctx, "u", "beef", 1)
	require.NoError(t, err)

	stored, _ := repo.GetCart(ctx, "u")
	assert.Equal(t, []domain.CartLine{{ProductID: "seeds", Quantity: 1}, {ProductID: "beef", Quantity: 1}}, stored)
}
