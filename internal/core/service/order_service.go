package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rl1809/ecoscene/internal/core/domain"
	"github.com/rl1809/ecoscene/internal/core/pricing"
	"github.com/rl1809/ecoscene/internal/port"
)

// ErrCheckoutClosed is returned once the order queue has been closed for
// shutdown.
var ErrCheckoutClosed = errors.New("checkout is closed")

type OrderService struct {
	carts      *CartService
	store      port.CartRepository
	cache      port.CacheRepository
	orders     port.DatabaseRepository
	orderQueue chan domain.Order
	logger     zerolog.Logger

	mu     sync.RWMutex // held for reading while a checkout may send
	closed bool
}

func NewOrderService(carts *CartService, cache port.CacheRepository, orders port.DatabaseRepository, queueSize int, logger zerolog.Logger) *OrderService {
	return &OrderService{
		carts:      carts,
		store:      carts.carts,
		cache:      cache,
		orders:     orders,
		orderQueue: make(chan domain.Order, queueSize),
		logger:     logger.With().Str("component", "checkout").Logger(),
	}
}

func IdempotencyKey(userID, requestID string) string {
	return fmt.Sprintf("checkout:%s:%s", userID, requestID)
}

// Checkout prices the user's cart, empties it and queues the order for
// persistence. A request id can be checked out only once.
func (s *OrderService) Checkout(ctx context.Context, requestID, userID string, currency domain.Currency) (order domain.Order, err error) {
	key := IdempotencyKey(userID, requestID)

	ok, err := s.cache.SetIdempotency(ctx, key)
	if err != nil {
		return domain.Order{}, fmt.Errorf("idempotency check failed: %w", err)
	}
	if !ok {
		return domain.Order{}, domain.ErrDuplicateRequest
	}

	defer func() {
		if err == nil {
			return
		}
		if releaseErr := s.cache.ReleaseIdempotency(context.WithoutCancel(ctx), key); releaseErr != nil {
			s.logger.Error().Err(releaseErr).Str("key", key).Msg("failed to release idempotency key")
		}
	}()

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return domain.Order{}, ErrCheckoutClosed
	}

	quote, err := s.carts.Quote(ctx, userID, currency)
	if err != nil {
		return domain.Order{}, err
	}
	if len(quote.Items) == 0 {
		return domain.Order{}, domain.ErrEmptyCart
	}

	lines := make([]domain.OrderLine, 0, len(quote.Items))
	for _, item := range quote.Items {
		if !item.Product.InStock {
			return domain.Order{}, fmt.Errorf("%w: %s", domain.ErrOutOfStock, item.Product.ID)
		}
		lines = append(lines, domain.OrderLine{
			ProductID: item.Product.ID,
			Name:      item.Product.Name,
			UnitPrice: item.Product.Price[currency],
			Quantity:  item.Quantity,
		})
	}

	now := time.Now()
	order = domain.Order{
		ID:             uuid.NewString(),
		RequestID:      requestID,
		UserID:         userID,
		Currency:       currency,
		Lines:          lines,
		Totals:         quote.Totals,
		Status:         domain.OrderStatusPending,
		IdempotencyKey: key,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.carts.Clear(ctx, userID); err != nil {
		return domain.Order{}, err
	}

	select {
	case s.orderQueue <- order:
	case <-ctx.Done():
		if restoreErr := restoreCart(context.WithoutCancel(ctx), s.store, order); restoreErr != nil {
			s.logger.Error().Err(restoreErr).Str("user_id", userID).Msg("failed to restore cart")
		}
		return domain.Order{}, ctx.Err()
	}

	s.logger.Info().
		Str("order_id", order.ID).
		Str("user_id", userID).
		Str("total", pricing.FormatAmount(order.Totals.Total, currency)).
		Msg("order queued")

	return order, nil
}

// GetOrder returns a persisted order. Orders still waiting in the queue are
// not visible yet.
func (s *OrderService) GetOrder(ctx context.Context, orderID string) (domain.Order, error) {
	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("get order %s: %w", orderID, err)
	}
	if order == nil {
		return domain.Order{}, fmt.Errorf("%w: %s", domain.ErrOrderNotFound, orderID)
	}
	return *order, nil
}

func (s *OrderService) GetOrderQueue() <-chan domain.Order {
	return s.orderQueue
}

// Close stops accepting checkouts and closes the queue once in-flight
// checkouts have enqueued. Workers must still be draining.
func (s *OrderService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.orderQueue)
}

// restoreCart merges the order's lines back into whatever the user has in
// their cart now.
func restoreCart(ctx context.Context, carts port.CartRepository, order domain.Order) error {
	current, err := carts.GetCart(ctx, order.UserID)
	if err != nil {
		return err
	}
	return carts.SaveCart(ctx, order.UserID, mergeLines(order.CartLines(), current))
}

func mergeLines(first, second []domain.CartLine) []domain.CartLine {
	out := make([]domain.CartLine, 0, len(first)+len(second))
	index := make(map[string]int, len(first)+len(second))
	for _, l := range append(append([]domain.CartLine(nil), first...), second...) {
		if i, ok := index[l.ProductID]; ok {
			out[i].Quantity += l.Quantity
			continue
		}
		index[l.ProductID] = len(out)
		out = append(out, l)
	}
	return out
}
