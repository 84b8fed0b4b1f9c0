package cart

import (
	"context"
	"errors"
	"fmt"

	pkgerrors "github.com/angelmondragon/luxe-storefront/pkg/errors"
	"github.com/angelmondragon/luxe-storefront/pkg/logger"
	"github.com/angelmondragon/luxe-storefront/pkg/storage"
)

// ProductFinder resolves a product id to the fields copied into a cart line.
type ProductFinder interface {
	FindCartProduct(ctx context.Context, id ItemID) (Product, error)
}

type mutationRecorder interface {
	IncCartMutation(op string)
}

// Service loads, mutates and persists a visitor's cart. Every mutation writes to the store,
// including ones that change nothing.
type Service interface {
	Get(ctx context.Context, visitorID string) (*Cart, error)
	Add(ctx context.Context, visitorID string, product Product) (*Cart, error)
	AddByID(ctx context.Context, visitorID string, id ItemID) (*Cart, error)
	Increment(ctx context.Context, visitorID string, id ItemID) (*Cart, error)
	Decrement(ctx context.Context, visitorID string, id ItemID) (*Cart, error)
	Remove(ctx context.Context, visitorID string, id ItemID) (*Cart, error)
	Empty(ctx context.Context, visitorID string) (*Cart, error)
}

type service struct {
	store   storage.Store
	finder  ProductFinder
	metrics mutationRecorder
	logg    *logger.Logger
}

// NewService builds a cart service backed by the provided store and product finder.
func NewService(store storage.Store, finder ProductFinder, metrics mutationRecorder, logg *logger.Logger) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("storage required")
	}
	if finder == nil {
		return nil, fmt.Errorf("product finder required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{
		store:   store,
		finder:  finder,
		metrics: metrics,
		logg:    logg,
	}, nil
}

// Get returns the stored cart. A missing, unreadable or corrupt value yields an empty
// cart; the failure is logged and never returned.
func (s *service) Get(ctx context.Context, visitorID string) (*Cart, error) {
	if visitorID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "visitor id is required")
	}
	return s.load(ctx, visitorID), nil
}

func (s *service) load(ctx context.Context, visitorID string) *Cart {
	data, err := s.store.Get(ctx, visitorID, storage.KeyCart)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logg.WarnErr(ctx, "cart.load_failed", err)
		}
		return &Cart{}
	}
	c, dropped, err := Decode(data)
	if err != nil {
		s.logg.WarnErr(ctx, "cart.decode_failed", err)
		return &Cart{}
	}
	if dropped > 0 {
		s.logg.Warn(s.logg.WithField(ctx, "dropped", dropped), "cart.invalid_items_dropped")
	}
	return c
}

func (s *service) persist(ctx context.Context, visitorID string, c *Cart) error {
	data, err := Encode(c)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode cart")
	}
	if err := s.store.Set(ctx, visitorID, storage.KeyCart, data); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save cart")
	}
	return nil
}

func (s *service) mutate(ctx context.Context, visitorID, op string, fn func(c *Cart)) (*Cart, error) {
	if visitorID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "visitor id is required")
	}
	c := s.load(ctx, visitorID)
	fn(c)
	if err := s.persist(ctx, visitorID, c); err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.IncCartMutation(op)
	}
	return c, nil
}

func (s *service) Add(ctx context.Context, visitorID string, product Product) (*Cart, error) {
	if product.ID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id must be positive")
	}
	if !product.Price.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product price must not be negative")
	}
	return s.mutate(ctx, visitorID, "add", func(c *Cart) { c.Add(product) })
}

// AddByID resolves id through the catalog before adding it.
func (s *service) AddByID(ctx context.Context, visitorID string, id ItemID) (*Cart, error) {
	product, err := s.finder.FindCartProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.Add(ctx, visitorID, product)
}

func (s *service) Increment(ctx context.Context, visitorID string, id ItemID) (*Cart, error) {
	return s.mutate(ctx, visitorID, "increment", func(c *Cart) { c.Increment(id) })
}

func (s *service) Decrement(ctx context.Context, visitorID string, id ItemID) (*Cart, error) {
	return s.mutate(ctx, visitorID, "decrement", func(c *Cart) { c.Decrement(id) })
}

func (s *service) Remove(ctx context.Context, visitorID string, id ItemID) (*Cart, error) {
	return s.mutate(ctx, visitorID, "remove", func(c *Cart) { c.Remove(id) })
}

// Empty drops the stored cart entirely; a missing key loads as an empty cart.
func (s *service) Empty(ctx context.Context, visitorID string) (*Cart, error) {
	if visitorID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "visitor id is required")
	}
	if err := s.store.Delete(ctx, visitorID, storage.KeyCart); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
	}
	if s.metrics != nil {
		s.metrics.IncCartMutation("empty")
	}
	return &Cart{}, nil
}
