package views

import (
	"context"
	"net/url"
	"strconv"

	"github.com/angelmondragon/luxe-storefront/internal/catalog"
	"github.com/angelmondragon/luxe-storefront/pkg/types"
	"github.com/a-h/templ"
)

// PageSizeOptions are the page sizes offered in the catalog toolbar.
var PageSizeOptions = []int{6, 9, 12, 24, 48}

// CatalogPage renders the product grid with search and pagination controls.
func CatalogPage(page catalog.Page, cartCount int) templ.Component {
	return Layout("Shop", cartCount, CatalogContent(page))
}

// CatalogContent is the catalog body without the page shell.
func CatalogContent(page catalog.Page) templ.Component {
	return render(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<section class="catalog">`)
		h.component(ctx, searchForm(page))
		if len(page.Products) == 0 {
			h.raw(`<p class="catalog-empty">No products match your search.</p>`)
		} else {
			h.raw(`<div class="product-grid" hx-target="#` + CartBadgeID + `" hx-swap="outerHTML">`)
			for _, p := range page.Products {
				h.component(ctx, productCard(p))
			}
			h.raw(`</div>`)
		}
		h.component(ctx, pager(page))
		h.raw(`</section>`)
	})
}

// CatalogError replaces the grid when the feed cannot be loaded.
func CatalogError(message string, cartCount int) templ.Component {
	return Layout("Shop", cartCount, render(func(_ context.Context, h *htmlWriter) {
		h.raw(`<div class="catalog-error" role="alert"><p>`)
		h.text(message)
		h.raw(`</p><a href="/products">Try again</a></div>`)
	}))
}

func searchForm(page catalog.Page) templ.Component {
	return render(func(_ context.Context, h *htmlWriter) {
		h.raw(`<form class="search-form" method="get" action="/products" role="search">`)
		h.raw(`<input type="search" name="q" placeholder="Search products"`)
		h.attr("value", page.Query)
		h.raw(`><select name="per_page" aria-label="Items per page">`)
		for _, size := range pageSizeChoices(page.PageSize) {
			h.raw(`<option`)
			h.attr("value", strconv.Itoa(size))
			if size == page.PageSize {
				h.raw(` selected`)
			}
			h.raw(`>`)
			h.int(size)
			h.raw(` per page</option>`)
		}
		h.raw(`</select><button type="submit">Search</button></form>`)
	})
}

func pageSizeChoices(current int) []int {
	for _, size := range PageSizeOptions {
		if size == current {
			return PageSizeOptions
		}
	}
	out := make([]int, 0, len(PageSizeOptions)+1)
	inserted := false
	for _, size := range PageSizeOptions {
		if !inserted && current < size {
			out = append(out, current)
			inserted = true
		}
		out = append(out, size)
	}
	if !inserted {
		out = append(out, current)
	}
	return out
}

func productCard(p catalog.Product) templ.Component {
	return render(func(_ context.Context, h *htmlWriter) {
		h.raw(`<article class="product-card"><img loading="lazy"`)
		h.url("src", templ.URL(p.ImageURL))
		h.attr("alt", p.Name)
		h.raw(`><div class="product-info"><span class="product-category">`)
		h.text(p.Category)
		h.raw(`</span><h3 class="product-title">`)
		h.text(p.Name)
		h.raw(`</h3><p class="product-price">`)
		h.text(types.FormatCurrency(p.Price.Decimal))
		h.raw(`</p><form method="post" action="/cart/items" hx-post="/cart/items">`)
		h.raw(`<input type="hidden" name="product_id"`)
		h.attr("value", p.ID.String())
		h.raw(`><button type="submit" class="add-to-cart-btn">Add to cart</button></form></div></article>`)
	})
}

func pager(page catalog.Page) templ.Component {
	return render(func(_ context.Context, h *htmlWriter) {
		if page.TotalPages <= 1 {
			return
		}
		h.raw(`<nav class="pagination" aria-label="Pagination">`)
		if page.HasPrev() {
			h.raw(`<a rel="prev"`)
			h.url("href", pageURL(page, page.Page-1))
			h.raw(`>Previous</a>`)
		}
		h.raw(`<span class="page-status">Page `)
		h.int(page.Page)
		h.raw(` of `)
		h.int(page.TotalPages)
		h.raw(`</span>`)
		if page.HasNext() {
			h.raw(`<a rel="next"`)
			h.url("href", pageURL(page, page.Page+1))
			h.raw(`>Next</a>`)
		}
		h.raw(`</nav>`)
	})
}

func pageURL(page catalog.Page, n int) templ.SafeURL {
	q := url.Values{}
	if page.Query != "" {
		q.Set("q", page.Query)
	}
	q.Set("page", strconv.Itoa(n))
	return templ.URL("/products?" + q.Encode())
}
