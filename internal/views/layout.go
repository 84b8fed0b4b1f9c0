package views

import (
	"context"

	"github.com/a-h/templ"
)

const (
	brandName = "LUXE"
	htmxSrc   = "https://unpkg.com/htmx.org@2.0.4"
)

const addedFlashScript = `document.body.addEventListener("cart:added", function (e) {
  var btn = e.target.querySelector && e.target.querySelector(".add-to-cart-btn");
  if (!btn) { return; }
  btn.classList.add("added");
  setTimeout(function () { btn.classList.remove("added"); }, 1500);
});`

// CartBadge renders the header item count. With oob set it is marked for an HTMX
// out-of-band swap so it can ride along with another fragment.
func CartBadge(count int, oob bool) templ.Component {
	return render(func(_ context.Context, h *htmlWriter) {
		h.raw(`<span`)
		h.attr("id", CartBadgeID)
		h.attr("class", "cart-count")
		if oob {
			h.attr("hx-swap-oob", "true")
		}
		h.raw(`>`)
		h.int(count)
		h.raw(`</span>`)
	})
}

// Layout wraps body in the page shell with the header and the cart badge.
func Layout(title string, cartCount int, body templ.Component) templ.Component {
	return render(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.raw(`<title>`)
		h.text(pageTitle(title))
		h.raw(`</title><link rel="stylesheet" href="/static/styles.css">`)
		h.raw(`<script`)
		h.attr("src", htmxSrc)
		h.raw(`></script></head><body>`)
		h.raw(`<header class="header"><a class="logo" href="/">` + brandName + `</a>`)
		h.raw(`<nav class="nav"><a class="nav-link" href="/products">Shop</a>`)
		h.raw(`<a class="nav-link icon-btn" aria-label="Cart" href="/cart">Cart `)
		h.component(ctx, CartBadge(cartCount, false))
		h.raw(`</a></nav></header><main id="main">`)
		h.component(ctx, body)
		h.raw(`</main><script>` + addedFlashScript + `</script></body></html>`)
	})
}

func pageTitle(title string) string {
	if title == "" {
		return brandName
	}
	return title + " | " + brandName
}
