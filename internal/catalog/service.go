package catalog

import (
	"context"
	"fmt"

	"github.com/angelmondragon/luxe-storefront/internal/cart"
	pkgerrors "github.com/angelmondragon/luxe-storefront/pkg/errors"
)

// Feed supplies the full product list.
type Feed interface {
	Load(ctx context.Context) ([]Product, error)
}

// Service answers browse and lookup queries against the feed.
type Service interface {
	Browse(ctx context.Context, state State) (Page, error)
	Find(ctx context.Context, id cart.ItemID) (Product, error)
	FindCartProduct(ctx context.Context, id cart.ItemID) (cart.Product, error)
}

type service struct {
	feed Feed
}

// NewService builds a catalog service over feed.
func NewService(feed Feed) (Service, error) {
	if feed == nil {
		return nil, fmt.Errorf("catalog feed required")
	}
	return &service{feed: feed}, nil
}

func (s *service) Browse(ctx context.Context, state State) (Page, error) {
	products, err := s.feed.Load(ctx)
	if err != nil {
		return Page{}, err
	}
	return Paginate(products, state), nil
}

func (s *service) Find(ctx context.Context, id cart.ItemID) (Product, error) {
	products, err := s.feed.Load(ctx)
	if err != nil {
		return Product{}, err
	}
	for _, p := range products {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, pkgerrors.New(pkgerrors.CodeNotFound, "product not found").
		WithDetails(map[string]any{"product_id": id})
}

// FindCartProduct lets the cart service resolve ids without knowing the feed shape.
func (s *service) FindCartProduct(ctx context.Context, id cart.ItemID) (cart.Product, error) {
	p, err := s.Find(ctx, id)
	if err != nil {
		return cart.Product{}, err
	}
	return p.CartProduct(), nil
}
