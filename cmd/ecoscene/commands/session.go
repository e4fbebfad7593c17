package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/rl1809/ecoscene/internal/core/domain"
	"github.com/rl1809/ecoscene/internal/core/store"
	"github.com/rl1809/ecoscene/internal/port"
)

// session is a recorded shopping session. Example:
//
//	currency = "V"
//
//	[[actions]]
//	type = "add"
//	product = "product-001"
//	quantity = 2
type session struct {
	Currency string          `toml:"currency"`
	Actions  []sessionAction `toml:"actions"`
}

type sessionAction struct {
	Type           string   `toml:"type"`
	Product        string   `toml:"product"`
	Quantity       int      `toml:"quantity"`
	Currency       string   `toml:"currency"`
	Search         string   `toml:"search"`
	Category       string   `toml:"category"`
	Certifications []string `toml:"certifications"`
}

func loadSession(path string) (session, error) {
	var s session
	if _, err := toml.DecodeFile(path, &s); err != nil {
		return session{}, fmt.Errorf("read session: %w", err)
	}
	return s, nil
}

// storeActions resolves product references against catalog. A leading
// currency setting becomes the first action.
func (s session) storeActions(ctx context.Context, catalog port.CatalogRepository) ([]store.Action, error) {
	var out []store.Action
	if s.Currency != "" {
		c, err := domain.ParseCurrency(s.Currency)
		if err != nil {
			return nil, err
		}
		out = append(out, store.SetCurrency{Currency: c})
	}

	for i, a := range s.Actions {
		action, err := a.resolve(ctx, catalog)
		if err != nil {
			return nil, fmt.Errorf("action %d (%s): %w", i, a.Type, err)
		}
		out = append(out, action)
	}
	return out, nil
}

func (a sessionAction) resolve(ctx context.Context, catalog port.CatalogRepository) (store.Action, error) {
	lookup := func() (*domain.Product, error) {
		p, err := catalog.GetProduct(ctx, a.Product)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrProductNotFound, a.Product)
		}
		return p, nil
	}

	switch a.Type {
	case "add":
		p, err := lookup()
		if err != nil {
			return nil, err
		}
		q := a.Quantity
		if q == 0 {
			q = 1
		}
		return store.AddToCart{Product: p, Quantity: q}, nil
	case "update":
		return store.UpdateCartQuantity{ProductID: a.Product, Quantity: a.Quantity}, nil
	case "remove":
		return store.RemoveFromCart{ProductID: a.Product}, nil
	case "clear":
		return store.ClearCart{}, nil
	case "wishlist":
		p, err := lookup()
		if err != nil {
			return nil, err
		}
		return store.AddToWishlist{Product: p}, nil
	case "unwishlist":
		return store.RemoveFromWishlist{ProductID: a.Product}, nil
	case "currency":
		return store.SetCurrency{Currency: domain.Currency(strings.ToUpper(a.Currency))}, nil
	case "filter":
		return store.SetFilter{Filter: domain.Filter{
			Search:         a.Search,
			Category:       a.Category,
			Certifications: a.Certifications,
		}}, nil
	default:
		return nil, fmt.Errorf("unknown action type %q", a.Type)
	}
}
