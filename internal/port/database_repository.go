package port

import (
	"context"

	"github.com/rl1809/ecoscene/internal/core/domain"
)

type DatabaseRepository interface {
	// CreateOrder persists an order and its lines in one transaction
	CreateOrder(ctx context.Context, order domain.Order) error

	// GetOrder returns nil, nil when the order does not exist
	GetOrder(ctx context.Context, orderID string) (*domain.Order, error)
}
