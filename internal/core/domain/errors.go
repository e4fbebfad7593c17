package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidQuantity     = errors.New("invalid quantity")
	ErrMissingPrice        = errors.New("missing price")
	ErrUnsupportedCurrency = errors.New("unsupported currency")
	ErrProductNotFound     = errors.New("product not found")
	ErrItemNotInCart       = errors.New("item not in cart")
	ErrOrderNotFound       = errors.New("order not found")
	ErrEmptyCart           = errors.New("cart is empty")
	ErrOutOfStock          = errors.New("product out of stock")
	ErrDuplicateRequest    = errors.New("duplicate request")
)

// LineItemError reports which line item of a cart failed validation.
type LineItemError struct {
	Index     int
	ProductID string
	Err       error
}

func (e *LineItemError) Error() string {
	return fmt.Sprintf("line item %d (%s): %v", e.Index, e.ProductID, e.Err)
}

func (e *LineItemError) Unwrap() error {
	return e.Err
}
