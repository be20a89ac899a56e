package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/whatscart/whatscart-backend/api/controllers"
	"github.com/whatscart/whatscart-backend/api/middleware"
	"github.com/whatscart/whatscart-backend/internal/auth"
	"github.com/whatscart/whatscart-backend/internal/cart"
	"github.com/whatscart/whatscart-backend/internal/media"
	"github.com/whatscart/whatscart-backend/internal/products"
	"github.com/whatscart/whatscart-backend/internal/share"
	"github.com/whatscart/whatscart-backend/internal/stores"
	"github.com/whatscart/whatscart-backend/pkg/config"
	"github.com/whatscart/whatscart-backend/pkg/db"
	"github.com/whatscart/whatscart-backend/pkg/logger"
	"github.com/whatscart/whatscart-backend/pkg/redis"
)

// Deps bundles everything the router mounts.
type Deps struct {
	Config *config.Config
	Logger *logger.Logger

	DB    *db.Client
	Redis *redis.Client

	AuthService     auth.Service
	RegisterService auth.RegisterService
	StoreService    stores.Service
	ProductService  products.Service
	CartService     cart.Service
	ShareService    share.Service
	MediaService    media.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.Share.BaseURL),
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
		r.Get("/ready", controllers.HealthReady(cfg, deps.DB, deps.Redis, logg))
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Use(middleware.Idempotency(deps.Redis, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).
			Post("/login", controllers.Login(deps.AuthService, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, deps.Redis, logg)).
			Post("/register", controllers.Register(deps.RegisterService, logg))
	})

	// Public storefront surface. Cart routes authenticate with the cart
	// token header rather than a JWT.
	r.Route("/api/v1/stores/{slug}", func(r chi.Router) {
		r.Get("/", controllers.PublicStore(deps.StoreService, logg))
		r.Get("/products", controllers.PublicProducts(deps.ProductService, logg))
		r.Get("/products/{productID}", controllers.PublicProduct(deps.ProductService, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Use(middleware.Idempotency(deps.Redis, logg))

			r.Get("/", controllers.CartGet(deps.CartService, logg))
			r.Post("/items", controllers.CartAddItem(deps.CartService, logg))
			r.Patch("/items/{productID}", controllers.CartUpdateQuantity(deps.CartService, logg))
			r.Put("/items/{productID}", controllers.CartUpdateQuantity(deps.CartService, logg))
			r.Delete("/items/{productID}", controllers.CartRemoveItem(deps.CartService, logg))
			r.Delete("/", controllers.CartClear(deps.CartService, logg))
			r.Put("/phone", controllers.CartSetPhone(deps.CartService, logg))
			r.Post("/message", controllers.CartOrderMessage(deps.CartService, logg))

			r.Post("/share", controllers.ShareCart(deps.ShareService, logg))
			r.Get("/{shortID}", controllers.SharedCart(deps.ShareService, logg))
			r.Get("/{shortID}/reconcile", controllers.SharedCartReconcile(deps.ShareService, logg))
			r.Post("/{shortID}/add-all", controllers.SharedCartAddAll(deps.ShareService, logg))
		})
	})

	// Seller surface.
	r.Route("/api/v1/seller", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Route("/store", func(r chi.Router) {
			r.Post("/", controllers.StoreCreate(deps.StoreService, logg))
			r.Get("/", controllers.StoreProfile(deps.StoreService, logg))
			r.Patch("/", controllers.StoreUpdate(deps.StoreService, logg))
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductListMine(deps.ProductService, logg))
			r.Post("/", controllers.ProductCreate(deps.ProductService, logg))
			r.Patch("/{productID}", controllers.ProductUpdate(deps.ProductService, logg))
			r.Delete("/{productID}", controllers.ProductDelete(deps.ProductService, logg))
		})

		r.Post("/media", controllers.MediaUpload(deps.MediaService, cfg.Media, logg))
	})

	return r
}
