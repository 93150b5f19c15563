package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/recyclelect/storefront-backend/api/controllers"
	"github.com/recyclelect/storefront-backend/api/middleware"
	"github.com/recyclelect/storefront-backend/internal/cart"
	"github.com/recyclelect/storefront-backend/internal/catalog"
	checkoutsvc "github.com/recyclelect/storefront-backend/internal/checkout"
	"github.com/recyclelect/storefront-backend/internal/favorites"
	"github.com/recyclelect/storefront-backend/internal/orders"
	"github.com/recyclelect/storefront-backend/internal/pricing"
	"github.com/recyclelect/storefront-backend/pkg/config"
	"github.com/recyclelect/storefront-backend/pkg/logger"
	"github.com/recyclelect/storefront-backend/pkg/metrics"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Config     *config.Config
	Logger     *logger.Logger
	Metrics    *metrics.HTTPMetrics
	Registry   *prometheus.Registry
	DB         controllers.Pinger
	Sessions   controllers.Pinger
	Catalog    catalog.Service
	Calculator *pricing.Calculator
	Cart       cart.Service
	Favorites  favorites.Service
	Checkout   checkoutsvc.Service
	Orders     orders.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.CORS(cfg.App.AllowedOrigins()),
		middleware.Logging(logg),
		middleware.Metrics(deps.Metrics),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, deps.Sessions))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductsList(deps.Catalog, logg))
			r.Get("/brands", controllers.ProductBrands(deps.Catalog, logg))
			r.Get("/{productId}", controllers.ProductsGet(deps.Catalog, logg))
		})

		r.Get("/delivery-options", controllers.DeliveryOptions(deps.Calculator, logg))
		r.Get("/upgrade-options", controllers.UpgradeOptions(deps.Calculator, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Session(logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartGet(deps.Cart, logg))
				r.Delete("/", controllers.CartClear(deps.Cart, logg))
				r.Post("/items", controllers.CartAddItem(deps.Cart, logg))
				r.Delete("/items/{productId}", controllers.CartRemoveItem(deps.Cart, logg))
				r.Delete("/lines/{productId}", controllers.CartDeleteLine(deps.Cart, logg))
			})

			r.Route("/favorites", func(r chi.Router) {
				r.Get("/", controllers.FavoritesList(deps.Favorites, logg))
				r.Delete("/", controllers.FavoritesClear(deps.Favorites, logg))
				r.Post("/toggle", controllers.FavoritesToggle(deps.Favorites, logg))
				r.Get("/{productId}", controllers.FavoritesCheck(deps.Favorites, logg))
			})

			r.Route("/checkout", func(r chi.Router) {
				r.Post("/", controllers.CheckoutBegin(deps.Checkout, logg))
				r.Get("/", controllers.CheckoutGet(deps.Checkout, logg))
				r.Delete("/", controllers.CheckoutCancel(deps.Checkout, logg))
				r.Post("/delivery", controllers.CheckoutSelectDelivery(deps.Checkout, logg))
				r.Post("/upgrades", controllers.CheckoutSelectUpgrade(deps.Checkout, logg))
				r.Post("/advance", controllers.CheckoutAdvance(deps.Checkout, logg))
				r.Post("/back", controllers.CheckoutBack(deps.Checkout, logg))
				r.Put("/form", controllers.CheckoutUpdateForm(deps.Checkout, logg))
				r.Post("/submit", controllers.CheckoutSubmit(deps.Checkout, logg))
			})

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.OrdersList(deps.Orders, logg))
				r.Get("/{reference}", controllers.OrdersGet(deps.Orders, logg))
			})
		})
	})

	return r
}
