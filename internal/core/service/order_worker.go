package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/rl1809/ecoscene/internal/core/domain"
	"github.com/rl1809/ecoscene/internal/port"
)

const defaultSaveTimeout = 5 * time.Second

// OrderWorker persists queued orders. When an order cannot be saved the
// user's cart is restored and the checkout request id becomes reusable.
type OrderWorker struct {
	db        port.DatabaseRepository
	cache     port.CacheRepository
	carts     port.CartRepository
	publisher port.EventPublisher
	logger    zerolog.Logger
	timeout   time.Duration
}

func NewOrderWorker(db port.DatabaseRepository, cache port.CacheRepository, carts port.CartRepository, publisher port.EventPublisher, logger zerolog.Logger) *OrderWorker {
	return &OrderWorker{
		db:        db,
		cache:     cache,
		carts:     carts,
		publisher: publisher,
		logger:    logger.With().Str("component", "order_worker").Logger(),
		timeout:   defaultSaveTimeout,
	}
}

// Run drains queue until it is closed.
func (w *OrderWorker) Run(id int, queue <-chan domain.Order) {
	for order := range queue {
		w.process(id, order)
	}
}

func (w *OrderWorker) process(id int, order domain.Order) {
	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()

	log := w.logger.With().Int("worker", id).Str("order_id", order.ID).Logger()

	order.Status = domain.OrderStatusConfirmed
	order.UpdatedAt = time.Now()

	err := w.db.CreateOrder(ctx, order)
	cancel()
	if err != nil {
		log.Error().Err(err).Msg("failed to save order")
		w.rollback(log, order)
		return
	}
	log.Info().Msg("saved order")

	pubCtx, pubCancel := context.WithTimeout(context.Background(), w.timeout)
	defer pubCancel()
	if err := w.publisher.PublishOrderPlaced(pubCtx, order); err != nil {
		log.Error().Err(err).Msg("failed to publish order event")
	}
}

// rollback runs on its own deadline; the save context has usually expired.
func (w *OrderWorker) rollback(log zerolog.Logger, order domain.Order) {
	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()

	if err := restoreCart(ctx, w.carts, order); err != nil {
		log.Error().Err(err).Msg("CRITICAL cart restore failed")
	} else {
		log.Info().Msg("restored cart")
	}

	if order.IdempotencyKey == "" {
		return
	}
	if err := w.cache.ReleaseIdempotency(ctx, order.IdempotencyKey); err != nil {
		log.Error().Err(err).Msg("failed to release idempotency key")
	}
}
