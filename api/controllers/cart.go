package controllers

import (
	"net/http"

	"github.com/angelmondragon/luxe-storefront/api/middleware"
	"github.com/angelmondragon/luxe-storefront/api/responses"
	"github.com/angelmondragon/luxe-storefront/api/validators"
	"github.com/angelmondragon/luxe-storefront/internal/cart"
	pkgerrors "github.com/angelmondragon/luxe-storefront/pkg/errors"
	"github.com/angelmondragon/luxe-storefront/pkg/logger"
	"github.com/go-chi/chi/v5"
)

func itemIDParam(r *http.Request) (cart.ItemID, error) {
	raw := chi.URLParam(r, "productId")
	id, err := cart.ParseID(raw)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id").
			WithDetails(map[string]any{"product_id": raw})
	}
	return id, nil
}

// CartGet returns the visitor's cart.
func CartGet(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := svc.Get(r.Context(), middleware.VisitorIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartResponse(c))
	}
}

// CartAddItem adds one unit of a catalog product.
func CartAddItem(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addCartItemRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		c, err := svc.AddByID(r.Context(), middleware.VisitorIDFromContext(r.Context()), req.ProductID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, newCartResponse(c))
	}
}

// CartUpdateItem moves a line's quantity by +1 or -1. Reaching zero removes the line.
func CartUpdateItem(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := itemIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req updateCartItemRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		visitorID := middleware.VisitorIDFromContext(r.Context())
		var c *cart.Cart
		if req.Delta > 0 {
			c, err = svc.Increment(r.Context(), visitorID, id)
		} else {
			c, err = svc.Decrement(r.Context(), visitorID, id)
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartResponse(c))
	}
}

// CartRemoveItem drops a line. Unknown ids succeed without change.
func CartRemoveItem(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := itemIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		c, err := svc.Remove(r.Context(), middleware.VisitorIDFromContext(r.Context()), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartResponse(c))
	}
}

// CartEmpty clears the cart.
func CartEmpty(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := svc.Empty(r.Context(), middleware.VisitorIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartResponse(c))
	}
}

func validationError(err error, field string) error {
	return pkgerrors.Wrap(pkgerrors.CodeValidation, err, err.Error()).
		WithDetails(map[string]any{"field": field})
}
