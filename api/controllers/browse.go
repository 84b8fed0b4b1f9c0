package controllers

import (
	"context"
	"net/http"

	"github.com/angelmondragon/luxe-storefront/api/validators"
	"github.com/angelmondragon/luxe-storefront/internal/catalog"
	"github.com/angelmondragon/luxe-storefront/pkg/pagination"
)

const (
	maxQueryLength = 200
	maxPage        = 1 << 20
)

// PageSizePreferences reads and writes the visitor's catalog page size.
type PageSizePreferences interface {
	Default() int
	PageSize(ctx context.Context, visitorID string) int
	SetPageSize(ctx context.Context, visitorID string, size int) (int, error)
}

// browseState builds the catalog state for a request. An explicit per_page is saved as
// the visitor's preference. With strict unset, malformed numbers fall back to defaults
// instead of failing, which suits pages reached from hand-edited links.
func browseState(r *http.Request, prefs PageSizePreferences, visitorID string, strict bool) (catalog.State, error) {
	ctx := r.Context()
	state := catalog.State{PageSize: prefs.PageSize(ctx, visitorID)}.
		Search(validators.QueryString(r, "q", maxQueryLength))

	page, err := validators.ParseQueryInt(r, "page", 1, 1, maxPage)
	if err != nil {
		if strict {
			return catalog.State{}, err
		}
		page = 1
	}
	state.Page = page

	perPage, err := validators.ParseQueryInt(r, "per_page", 0, 1, pagination.MaxLimit)
	if err != nil {
		if strict {
			return catalog.State{}, err
		}
		perPage = 0
	}
	if perPage > 0 && perPage != state.PageSize {
		saved, err := prefs.SetPageSize(ctx, visitorID, perPage)
		if err != nil {
			return catalog.State{}, err
		}
		state.PageSize = saved
	}
	return state.Normalized(), nil
}
