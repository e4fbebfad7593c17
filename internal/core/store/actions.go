package store

import "github.com/rl1809/ecoscene/internal/core/domain"

// Action is a state transition request. Actions are values; the store keeps
// them in its log as dispatched.
type Action interface {
	ActionType() string
}

type FetchProductsStart struct{}

type FetchProductsSuccess struct {
	Products []domain.Product
}

type FetchProductsFailure struct {
	Message string
}

// AddToCart merges into an existing line for the same product.
type AddToCart struct {
	Product  *domain.Product
	Quantity int
}

type RemoveFromCart struct {
	ProductID string
}

type UpdateCartQuantity struct {
	ProductID string
	Quantity  int
}

type ClearCart struct{}

type AddToWishlist struct {
	Product *domain.Product
}

type RemoveFromWishlist struct {
	ProductID string
}

type SetFilter struct {
	Filter domain.Filter
}

type SetCurrency struct {
	Currency domain.Currency
}

func (FetchProductsStart) ActionType() string   { return "commerce/fetchProductsStart" }
func (FetchProductsSuccess) ActionType() string { return "commerce/fetchProductsSuccess" }
func (FetchProductsFailure) ActionType() string { return "commerce/fetchProductsFailure" }
func (AddToCart) ActionType() string            { return "commerce/addToCart" }
func (RemoveFromCart) ActionType() string       { return "commerce/removeFromCart" }
func (UpdateCartQuantity) ActionType() string   { return "commerce/updateCartQuantity" }
func (ClearCart) ActionType() string            { return "commerce/clearCart" }
func (AddToWishlist) ActionType() string        { return "commerce/addToWishlist" }
func (RemoveFromWishlist) ActionType() string   { return "commerce/removeFromWishlist" }
func (SetFilter) ActionType() string            { return "commerce/setFilter" }
func (SetCurrency) ActionType() string          { return "commerce/setCurrency" }
