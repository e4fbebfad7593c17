package port

import (
	"context"

	"github.com/rl1809/ecoscene/internal/core/domain"
)

type CatalogRepository interface {
	// GetProduct returns nil, nil when the product does not exist
	GetProduct(ctx context.Context, productID string) (*domain.Product, error)

	ListProducts(ctx context.Context) ([]domain.Product, error)
}
