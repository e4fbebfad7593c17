// Package store holds client session state as an immutable value updated by
// a pure reducer over an action log.
package store

import (
	"fmt"

	"github.com/rl1809/ecoscene/internal/core/domain"
)

// State is a snapshot. Reduce never modifies a State in place, so snapshots
// may be shared freely as long as callers treat them as read-only.
type State struct {
	Products []domain.Product
	Cart     domain.Cart
	Wishlist []*domain.Product
	Filter   domain.Filter
	Currency domain.Currency
	Loading  bool
	Error    string
}

func Initial() State {
	return State{Currency: domain.CurrencyUSD}
}

// Reduce applies a to s and returns the next state. On error s is returned
// unchanged.
func Reduce(s State, a Action) (State, error) {
	switch a := a.(type) {
	case FetchProductsStart:
		s.Loading = true
		s.Error = ""

	case FetchProductsSuccess:
		s.Products = append([]domain.Product(nil), a.Products...)
		s.Loading = false

	case FetchProductsFailure:
		s.Loading = false
		s.Error = a.Message

	case AddToCart:
		if a.Product == nil {
			return s, domain.ErrProductNotFound
		}
		if a.Quantity < 1 {
			return s, fmt.Errorf("%w: %d", domain.ErrInvalidQuantity, a.Quantity)
		}
		cart := cloneCart(s.Cart)
		if i := cart.Find(a.Product.ID); i >= 0 {
			cart[i].Quantity += a.Quantity
		} else {
			cart = append(cart, domain.LineItem{Product: a.Product, Quantity: a.Quantity})
		}
		s.Cart = cart

	case RemoveFromCart:
		cart := make(domain.Cart, 0, len(s.Cart))
		for _, item := range s.Cart {
			if item.Product.ID != a.ProductID {
				cart = append(cart, item)
			}
		}
		s.Cart = cart

	case UpdateCartQuantity:
		i := s.Cart.Find(a.ProductID)
		if i < 0 {
			return s, fmt.Errorf("%w: %s", domain.ErrItemNotInCart, a.ProductID)
		}
		if a.Quantity < 1 {
			return s, fmt.Errorf("%w: %d", domain.ErrInvalidQuantity, a.Quantity)
		}
		cart := cloneCart(s.Cart)
		cart[i].Quantity = a.Quantity
		s.Cart = cart

	case ClearCart:
		s.Cart = domain.Cart{}

	case AddToWishlist:
		if a.Product == nil {
			return s, domain.ErrProductNotFound
		}
		for _, p := range s.Wishlist {
			if p.ID == a.Product.ID {
				return s, nil
			}
		}
		wishlist := make([]*domain.Product, len(s.Wishlist), len(s.Wishlist)+1)
		copy(wishlist, s.Wishlist)
		s.Wishlist = append(wishlist, a.Product)

	case RemoveFromWishlist:
		wishlist := make([]*domain.Product, 0, len(s.Wishlist))
		for _, p := range s.Wishlist {
			if p.ID != a.ProductID {
				wishlist = append(wishlist, p)
			}
		}
		s.Wishlist = wishlist

	case SetFilter:
		f := a.Filter
		f.Certifications = append([]string(nil), a.Filter.Certifications...)
		s.Filter = f

	case SetCurrency:
		if !a.Currency.Valid() {
			return s, fmt.Errorf("%w: %q", domain.ErrUnsupportedCurrency, string(a.Currency))
		}
		s.Currency = a.Currency

	default:
		return s, fmt.Errorf("unknown action %T", a)
	}
	return s, nil
}

func cloneCart(c domain.Cart) domain.Cart {
	out := make(domain.Cart, len(c), len(c)+1)
	copy(out, c)
	return out
}
