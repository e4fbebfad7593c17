package storage

import (
	"context"
	"sync"

	"github.com/rl1809/ecoscene/internal/core/domain"
)

// MemoryCatalog serves a fixed product list. Products are shared by pointer
// and must not be modified after construction.
type MemoryCatalog struct {
	products []domain.Product
	byID     map[string]*domain.Product
}

func NewMemoryCatalog(products []domain.Product) *MemoryCatalog {
	c := &MemoryCatalog{
		products: products,
		byID:     make(map[string]*domain.Product, len(products)),
	}
	for i := range c.products {
		c.byID[c.products[i].ID] = &c.products[i]
	}
	return c
}

func (c *MemoryCatalog) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	return c.byID[productID], nil
}

func (c *MemoryCatalog) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return append([]domain.Product(nil), c.products...), nil
}

// MemoryCartStore keeps carts and idempotency claims in process. It is used
// when no Redis address is configured.
type MemoryCartStore struct {
	mu     sync.Mutex
	carts  map[string][]domain.CartLine
	claims map[string]struct{}
}

func NewMemoryCartStore() *MemoryCartStore {
	return &MemoryCartStore{
		carts:  make(map[string][]domain.CartLine),
		claims: make(map[string]struct{}),
	}
}

func (m *MemoryCartStore) GetCart(ctx context.Context, userID string) ([]domain.CartLine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.CartLine{}, m.carts[userID]...), nil
}

func (m *MemoryCartStore) SaveCart(ctx context.Context, userID string, lines []domain.CartLine) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(lines) == 0 {
		delete(m.carts, userID)
		return nil
	}
	m.carts[userID] = append([]domain.CartLine(nil), lines...)
	return nil
}

func (m *MemoryCartStore) DeleteCart(ctx context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.carts, userID)
	return nil
}

func (m *MemoryCartStore) SetIdempotency(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.claims[key]; ok {
		return false, nil
	}
	m.claims[key] = struct{}{}
	return true, nil
}

func (m *MemoryCartStore) ReleaseIdempotency(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.claims, key)
	return nil
}

// MemoryOrderStore is an in-process order repository.
type MemoryOrderStore struct {
	mu     sync.RWMutex
	orders map[string]domain.Order
}

func NewMemoryOrderStore() *MemoryOrderStore {
	return &MemoryOrderStore{orders: make(map[string]domain.Order)}
}

func (m *MemoryOrderStore) CreateOrder(ctx context.Context, order domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders[order.ID] = order
	return nil
}

func (m *MemoryOrderStore) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	o, ok := m.orders[orderID]
	if !ok {
		return nil, nil
	}
	return &o, nil
}
