package controllers

import (
	"context"
	"net/http"

	"github.com/angelmondragon/luxe-storefront/api/middleware"
	"github.com/angelmondragon/luxe-storefront/api/responses"
	"github.com/angelmondragon/luxe-storefront/api/validators"
	"github.com/angelmondragon/luxe-storefront/internal/cart"
	"github.com/angelmondragon/luxe-storefront/internal/catalog"
	"github.com/angelmondragon/luxe-storefront/internal/views"
	"github.com/angelmondragon/luxe-storefront/pkg/logger"
)

const maxFormIDLength = 32

// cartCount is the badge value for page renders. Cart reads never fail loudly, so a
// rejected read renders as zero.
func cartCount(r *http.Request, svc cart.Service) int {
	c, err := svc.Get(r.Context(), middleware.VisitorIDFromContext(r.Context()))
	if err != nil {
		return 0
	}
	return c.TotalCount()
}

// writePageError answers a failed page action with a short plain text message.
func writePageError(w http.ResponseWriter, r *http.Request, logg *logger.Logger, err error) {
	responses.LogError(r.Context(), logg, err)
	_, status, msg := responses.Resolve(err)
	http.Error(w, msg, status)
}

// CatalogPage renders the shop page. A feed failure renders the error state instead of
// the grid.
func CatalogPage(svc catalog.Service, prefs PageSizePreferences, carts cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		count := cartCount(r, carts)

		state, err := browseState(r, prefs, middleware.VisitorIDFromContext(ctx), false)
		if err != nil {
			writePageError(w, r, logg, err)
			return
		}
		page, err := svc.Browse(ctx, state)
		if err != nil {
			responses.LogError(ctx, logg, err)
			_, status, msg := responses.Resolve(err)
			responses.WriteHTML(ctx, logg, w, status, views.CatalogError(msg, count))
			return
		}
		responses.WriteHTML(ctx, logg, w, http.StatusOK, views.CatalogPage(page, count))
	}
}

// CartPage renders the cart page.
func CartPage(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := svc.Get(r.Context(), middleware.VisitorIDFromContext(r.Context()))
		if err != nil {
			writePageError(w, r, logg, err)
			return
		}
		responses.WriteHTML(r.Context(), logg, w, http.StatusOK, views.CartPage(c))
	}
}

// writeCartMutation answers a cart form post. HTMX requests get only the fragment they
// target, plain posts are redirected to the cart page.
func writeCartMutation(w http.ResponseWriter, r *http.Request, logg *logger.Logger, c *cart.Cart, added bool) {
	if !views.IsHTMXRequest(r) {
		responses.RedirectSeeOther(w, r, "/cart")
		return
	}
	if added {
		w.Header().Set(views.HeaderTrigger, views.EventCartAdded)
	}
	if views.TargetsBadge(r) {
		responses.WriteHTML(r.Context(), logg, w, http.StatusOK, views.CartBadge(c.TotalCount(), false))
		return
	}
	responses.WriteHTML(r.Context(), logg, w, http.StatusOK, views.CartFragment(c))
}

// CartAddForm handles the add to cart button.
func CartAddForm(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := cart.ParseID(validators.FormValue(r, "product_id", maxFormIDLength))
		if err != nil {
			writePageError(w, r, logg, validationError(err, "product_id"))
			return
		}
		c, err := svc.AddByID(r.Context(), middleware.VisitorIDFromContext(r.Context()), id)
		if err != nil {
			writePageError(w, r, logg, err)
			return
		}
		writeCartMutation(w, r, logg, c, true)
	}
}

// ItemAction is a per-line cart operation such as cart.Service.Increment.
type ItemAction func(ctx context.Context, visitorID string, id cart.ItemID) (*cart.Cart, error)

// CartItemForm handles the quantity and remove buttons of a cart line.
func CartItemForm(action ItemAction, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := itemIDParam(r)
		if err != nil {
			writePageError(w, r, logg, err)
			return
		}
		c, err := action(r.Context(), middleware.VisitorIDFromContext(r.Context()), id)
		if err != nil {
			writePageError(w, r, logg, err)
			return
		}
		writeCartMutation(w, r, logg, c, false)
	}
}

// CartEmptyForm handles the empty cart button.
func CartEmptyForm(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := svc.Empty(r.Context(), middleware.VisitorIDFromContext(r.Context()))
		if err != nil {
			writePageError(w, r, logg, err)
			return
		}
		writeCartMutation(w, r, logg, c, false)
	}
}

// ProductFeed serves the bundled product feed.
func ProductFeed(feed []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "public, max-age=300")
		_, _ = w.Write(feed)
	}
}
