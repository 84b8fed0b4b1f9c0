package catalog

import (
	"strings"

	"github.com/angelmondragon/luxe-storefront/pkg/pagination"
	"golang.org/x/text/cases"
)

// Search keeps products whose name contains term, ignoring case. A blank term keeps
// everything.
func Search(products []Product, term string) []Product {
	needle := strings.TrimSpace(term)
	if needle == "" {
		return cloneProducts(products)
	}
	fold := cases.Fold()
	needle = fold.String(needle)

	out := make([]Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(fold.String(p.Name), needle) {
			out = append(out, p)
		}
	}
	return out
}

// State is what a visitor is currently browsing.
type State struct {
	Query    string
	Page     int
	PageSize int
}

// Search starts a new query from the first page.
func (s State) Search(term string) State {
	s.Query = strings.TrimSpace(term)
	s.Page = 1
	return s
}

// Normalized clamps the page to at least 1 and the page size to the allowed range.
func (s State) Normalized() State {
	if s.Page < 1 {
		s.Page = 1
	}
	s.PageSize = pagination.NormalizeLimit(s.PageSize)
	s.Query = strings.TrimSpace(s.Query)
	return s
}

// Page is one page of search results.
type Page struct {
	Products   []Product `json:"products"`
	Page       int       `json:"page"`
	TotalPages int       `json:"total_pages"`
	Total      int       `json:"total"`
	PageSize   int       `json:"page_size"`
	Query      string    `json:"query,omitempty"`
}

// HasPrev reports whether a previous page exists.
func (p Page) HasPrev() bool {
	return p.Page > 1
}

// HasNext reports whether a following page exists.
func (p Page) HasNext() bool {
	return p.Page < p.TotalPages
}

// Paginate filters products by the state query and cuts out the requested page. The
// page is clamped into [1, max(1, total pages)].
func Paginate(products []Product, state State) Page {
	state = state.Normalized()
	filtered := Search(products, state.Query)
	pages := pagination.PageCount(len(filtered), state.PageSize)
	page := pagination.ClampPage(state.Page, pages)
	return Page{
		Products:   pagination.Slice(filtered, page, state.PageSize),
		Page:       page,
		TotalPages: pages,
		Total:      len(filtered),
		PageSize:   state.PageSize,
		Query:      state.Query,
	}
}
