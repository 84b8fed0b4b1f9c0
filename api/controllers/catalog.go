package controllers

import (
	"net/http"

	"github.com/angelmondragon/luxe-storefront/api/middleware"
	"github.com/angelmondragon/luxe-storefront/api/responses"
	"github.com/angelmondragon/luxe-storefront/api/validators"
	"github.com/angelmondragon/luxe-storefront/internal/catalog"
	"github.com/angelmondragon/luxe-storefront/pkg/logger"
)

// CatalogList returns one page of products with pagination in meta.
func CatalogList(svc catalog.Service, prefs PageSizePreferences, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		state, err := browseState(r, prefs, middleware.VisitorIDFromContext(ctx), true)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		page, err := svc.Browse(ctx, state)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessMeta(w, page.Products, newPageMeta(page))
	}
}

// PreferencesSetPageSize stores the visitor's page size.
func PreferencesSetPageSize(prefs PageSizePreferences, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req pageSizeRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		size, err := prefs.SetPageSize(r.Context(), middleware.VisitorIDFromContext(r.Context()), req.PageSize)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]int{"page_size": size})
	}
}
