package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/luxe-storefront/api/controllers"
	"github.com/angelmondragon/luxe-storefront/api/middleware"
	"github.com/angelmondragon/luxe-storefront/internal/cart"
	"github.com/angelmondragon/luxe-storefront/internal/catalog"
	"github.com/angelmondragon/luxe-storefront/pkg/config"
	"github.com/angelmondragon/luxe-storefront/pkg/logger"
	"github.com/angelmondragon/luxe-storefront/web/static"
)

// Deps bundles what the router hands to controllers.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	Store    controllers.Pinger
	Tokens   middleware.VisitorTokens
	Carts    cart.Service
	Catalog  catalog.Service
	Prefs    controllers.PageSizePreferences
	Gatherer prometheus.Gatherer
}

func NewRouter(d Deps) http.Handler {
	cfg, logg := d.Config, d.Logger
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, d.Store))
	})
	gatherer := d.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Get("/"+static.FeedFile, controllers.ProductFeed(static.Feed()))
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static.FS()))))

	visitor := middleware.Visitor(d.Tokens, cfg.Visitor, logg)

	r.Group(func(r chi.Router) {
		r.Use(visitor)
		r.Get("/", controllers.CatalogPage(d.Catalog, d.Prefs, d.Carts, logg))
		r.Get("/products", controllers.CatalogPage(d.Catalog, d.Prefs, d.Carts, logg))
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartPage(d.Carts, logg))
			r.Post("/items", controllers.CartAddForm(d.Carts, logg))
			r.Post("/items/{productId}/increment", controllers.CartItemForm(d.Carts.Increment, logg))
			r.Post("/items/{productId}/decrement", controllers.CartItemForm(d.Carts.Decrement, logg))
			r.Post("/items/{productId}/remove", controllers.CartItemForm(d.Carts.Remove, logg))
			r.Post("/empty", controllers.CartEmptyForm(d.Carts, logg))
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.CORS(cfg.App.CORSOrigins), visitor)
		r.Get("/catalog", controllers.CatalogList(d.Catalog, d.Prefs, logg))
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartGet(d.Carts, logg))
			r.Delete("/", controllers.CartEmpty(d.Carts, logg))
			r.Post("/items", controllers.CartAddItem(d.Carts, logg))
			r.Patch("/items/{productId}", controllers.CartUpdateItem(d.Carts, logg))
			r.Delete("/items/{productId}", controllers.CartRemoveItem(d.Carts, logg))
		})
		r.Put("/preferences/page-size", controllers.PreferencesSetPageSize(d.Prefs, logg))
	})

	return r
}
