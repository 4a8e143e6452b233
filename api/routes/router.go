package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cryptogear/backend/api/controllers"
	"github.com/cryptogear/backend/api/middleware"
	authsvc "github.com/cryptogear/backend/internal/auth"
	cartsvc "github.com/cryptogear/backend/internal/cart"
	"github.com/cryptogear/backend/internal/catalog"
	ordersvc "github.com/cryptogear/backend/internal/orders"
	recommendsvc "github.com/cryptogear/backend/internal/recommend"
	"github.com/cryptogear/backend/pkg/auth/session"
	"github.com/cryptogear/backend/pkg/config"
	"github.com/cryptogear/backend/pkg/logger"
	"github.com/cryptogear/backend/pkg/metrics"
	"github.com/cryptogear/backend/pkg/redis"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Config  *config.Config
	Logger  *logger.Logger
	Metrics *metrics.HTTPMetrics

	DB    controllers.Pinger
	Redis *redis.Client

	Sessions *session.Manager

	Auth      authsvc.Service
	Catalog   catalog.Service
	Cart      cartsvc.Service
	Orders    ordersvc.Service
	Recommend recommendsvc.Service
}

// NewRouter assembles the storefront API.
func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.Metrics),
		middleware.CORS(cfg.CORS.Origins),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, deps.Redis))
	})

	if deps.Metrics != nil {
		r.Handle("/metrics", deps.Metrics.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())

		r.Route("/auth", func(r chi.Router) {
			r.With(middleware.AuthRateLimit(registerPolicy, deps.Redis, logg)).
				Post("/register", controllers.Register(deps.Auth, logg))
			r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).
				Post("/login", controllers.Login(deps.Auth, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))
				r.Get("/me", controllers.Me(deps.Auth, logg))
				r.Post("/logout", controllers.Logout(deps.Auth, logg))
			})
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(deps.Catalog, logg))
			r.Get("/{productID}", controllers.GetProduct(deps.Catalog, logg))
		})

		r.Post("/ai/recommend", controllers.Recommend(deps.Recommend, logg))

		if !cfg.App.IsProd() {
			r.Post("/seed", controllers.SeedProducts(deps.Catalog, logg))
		}

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))

			r.Get("/private/ping", controllers.PrivatePing())

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.GetCart(deps.Cart, logg))
				r.Post("/add", controllers.AddCartItem(deps.Cart, logg))
				r.Delete("/remove/{productID}", controllers.RemoveCartItem(deps.Cart, logg))
				r.Delete("/clear", controllers.ClearCart(deps.Cart, logg))
			})

			r.Route("/orders", func(r chi.Router) {
				r.Post("/", controllers.CreateOrder(deps.Orders, logg))
				r.Get("/", controllers.ListOrders(deps.Orders, logg))
				r.Get("/{orderID}", controllers.GetOrder(deps.Orders, logg))
			})
		})
	})

	return r
}
