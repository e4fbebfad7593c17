package port

import (
	"context"

	"github.com/rl1809/ecoscene/internal/core/domain"
)

type CartRepository interface {
	// GetCart returns the stored lines in cart order, empty if none
	GetCart(ctx context.Context, userID string) ([]domain.CartLine, error)

	// SaveCart replaces the stored lines
	SaveCart(ctx context.Context, userID string, lines []domain.CartLine) error

	DeleteCart(ctx context.Context, userID string) error
}
