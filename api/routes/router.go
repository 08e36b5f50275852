package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nharmon/slicehaus-backend/api/controllers"
	cartcontrollers "github.com/nharmon/slicehaus-backend/api/controllers/cart"
	"github.com/nharmon/slicehaus-backend/api/middleware"
	cartsvc "github.com/nharmon/slicehaus-backend/internal/cart"
	"github.com/nharmon/slicehaus-backend/internal/catalog"
	"github.com/nharmon/slicehaus-backend/internal/orders"
	"github.com/nharmon/slicehaus-backend/pkg/config"
	"github.com/nharmon/slicehaus-backend/pkg/db"
	"github.com/nharmon/slicehaus-backend/pkg/logger"
	"github.com/nharmon/slicehaus-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisP redis.Pinger,
	catalogService catalog.Service,
	cartService cartsvc.Service,
	ordersService orders.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/menu", func(r chi.Router) {
			r.Get("/", controllers.MenuList(catalogService, logg))
			r.Get("/{productId}", controllers.MenuDetail(catalogService, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Session(cfg.Session, logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", cartcontrollers.CartFetch(cartService, logg))
				r.Delete("/", cartcontrollers.CartClear(cartService, logg))
				r.Post("/items", cartcontrollers.CartAddItem(cartService, logg))
				r.Patch("/items", cartcontrollers.CartAdjustItem(cartService, logg))
				r.Delete("/items/{productId}", cartcontrollers.CartRemoveItem(cartService, logg))
				r.Post("/merge", cartcontrollers.CartMerge(cartService, logg))
			})

			r.Post("/checkout", controllers.Checkout(ordersService, logg))

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.OrderList(ordersService, logg))
				r.Get("/{orderId}", controllers.OrderDetail(ordersService, logg))
			})
		})
	})

	return r
}
