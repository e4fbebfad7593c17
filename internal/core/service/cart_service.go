package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/rl1809/ecoscene/internal/core/domain"
	"github.com/rl1809/ecoscene/internal/core/pricing"
	"github.com/rl1809/ecoscene/internal/core/store"
	"github.com/rl1809/ecoscene/internal/port"
)

// Quote is a priced cart.
type Quote struct {
	Currency domain.Currency
	Items    domain.Cart
	Totals   domain.PricingResult
	Impact   pricing.ImpactSummary
}

type CartService struct {
	catalog port.CatalogRepository
	carts   port.CartRepository
	logger  zerolog.Logger
}

func NewCartService(catalog port.CatalogRepository, carts port.CartRepository, logger zerolog.Logger) *CartService {
	return &CartService{
		catalog: catalog,
		carts:   carts,
		logger:  logger.With().Str("component", "cart").Logger(),
	}
}

func (s *CartService) Product(ctx context.Context, productID string) (*domain.Product, error) {
	p, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("get product %s: %w", productID, err)
	}
	if p == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrProductNotFound, productID)
	}
	return p, nil
}

func (s *CartService) Products(ctx context.Context) ([]domain.Product, error) {
	products, err := s.catalog.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// Cart loads and resolves the user's cart. Lines whose product has left the
// catalog are dropped; the next mutation persists the pruned cart.
func (s *CartService) Cart(ctx context.Context, userID string) (domain.Cart, error) {
	lines, err := s.carts.GetCart(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}

	cart := make(domain.Cart, 0, len(lines))
	for _, l := range lines {
		p, err := s.Product(ctx, l.ProductID)
		if errors.Is(err, domain.ErrProductNotFound) {
			s.logger.Warn().Str("user_id", userID).Str("product_id", l.ProductID).Msg("dropping delisted product from cart")
			continue
		}
		if err != nil {
			return nil, err
		}
		cart = append(cart, domain.LineItem{Product: p, Quantity: l.Quantity})
	}
	return cart, nil
}

func (s *CartService) AddItem(ctx context.Context, userID, productID string, quantity int) (domain.Cart, error) {
	p, err := s.Product(ctx, productID)
	if err != nil {
		return nil, err
	}
	return s.apply(ctx, userID, store.AddToCart{Product: p, Quantity: quantity})
}

func (s *CartService) UpdateQuantity(ctx context.Context, userID, productID string, quantity int) (domain.Cart, error) {
	return s.apply(ctx, userID, store.UpdateCartQuantity{ProductID: productID, Quantity: quantity})
}

func (s *CartService) RemoveItem(ctx context.Context, userID, productID string) (domain.Cart, error) {
	return s.apply(ctx, userID, store.RemoveFromCart{ProductID: productID})
}

func (s *CartService) Clear(ctx context.Context, userID string) error {
	if err := s.carts.DeleteCart(ctx, userID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

// Quote prices the user's stored cart.
func (s *CartService) Quote(ctx context.Context, userID string, currency domain.Currency) (Quote, error) {
	cart, err := s.Cart(ctx, userID)
	if err != nil {
		return Quote{}, err
	}
	return price(cart, currency)
}

// QuoteLines prices an ad-hoc list of lines without touching stored carts.
// Lines for the same product are merged after their quantities are checked.
func (s *CartService) QuoteLines(ctx context.Context, lines []domain.CartLine, currency domain.Currency) (Quote, error) {
	merged := make([]domain.CartLine, 0, len(lines))
	index := make(map[string]int, len(lines))
	for i, l := range lines {
		if l.Quantity < 1 {
			return Quote{}, &domain.LineItemError{Index: i, ProductID: l.ProductID, Err: domain.ErrInvalidQuantity}
		}
		if j, ok := index[l.ProductID]; ok {
			merged[j].Quantity += l.Quantity
			continue
		}
		index[l.ProductID] = len(merged)
		merged = append(merged, l)
	}

	cart, err := s.resolve(ctx, merged)
	if err != nil {
		return Quote{}, err
	}
	return price(cart, currency)
}

func price(cart domain.Cart, currency domain.Currency) (Quote, error) {
	totals, err := pricing.ComputeTotals(cart, currency)
	if err != nil {
		return Quote{}, err
	}
	return Quote{
		Currency: currency,
		Items:    cart,
		Totals:   totals,
		Impact:   pricing.Impact(cart),
	}, nil
}

// apply runs a through the store reducer against the stored cart and
// persists the result.
func (s *CartService) apply(ctx context.Context, userID string, a store.Action) (domain.Cart, error) {
	cart, err := s.Cart(ctx, userID)
	if err != nil {
		return nil, err
	}

	next, err := store.Reduce(store.State{Cart: cart}, a)
	if err != nil {
		return nil, err
	}

	if err := s.carts.SaveCart(ctx, userID, next.Cart.Lines()); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}

	s.logger.Debug().Str("user_id", userID).Str("action", a.ActionType()).Int("lines", len(next.Cart)).Msg("cart updated")
	return next.Cart, nil
}

func (s *CartService) resolve(ctx context.Context, lines []domain.CartLine) (domain.Cart, error) {
	cart := make(domain.Cart, 0, len(lines))
	for _, l := range lines {
		p, err := s.Product(ctx, l.ProductID)
		if err != nil {
			return nil, err
		}
		cart = append(cart, domain.LineItem{Product: p, Quantity: l.Quantity})
	}
	return cart, nil
}
