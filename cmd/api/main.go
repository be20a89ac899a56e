package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/multierr"

	"github.com/whatscart/whatscart-backend/api/routes"
	"github.com/whatscart/whatscart-backend/internal/auth"
	"github.com/whatscart/whatscart-backend/internal/cart"
	"github.com/whatscart/whatscart-backend/internal/events"
	"github.com/whatscart/whatscart-backend/internal/media"
	"github.com/whatscart/whatscart-backend/internal/products"
	"github.com/whatscart/whatscart-backend/internal/sellers"
	"github.com/whatscart/whatscart-backend/internal/share"
	"github.com/whatscart/whatscart-backend/internal/stores"
	"github.com/whatscart/whatscart-backend/pkg/config"
	"github.com/whatscart/whatscart-backend/pkg/db"
	"github.com/whatscart/whatscart-backend/pkg/logger"
	"github.com/whatscart/whatscart-backend/pkg/migrate"
	"github.com/whatscart/whatscart-backend/pkg/pubsub"
	"github.com/whatscart/whatscart-backend/pkg/redis"
	"github.com/whatscart/whatscart-backend/pkg/storage/gcs"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	closers := []func() error{}
	closeAll := func() {
		var errs error
		for i := len(closers) - 1; i >= 0; i-- {
			errs = multierr.Append(errs, closers[i]())
		}
		if errs != nil {
			logg.Error(context.Background(), "error closing resources", errs)
		}
	}

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	closers = append(closers, dbClient.Close)

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		closeAll()
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		closeAll()
		os.Exit(1)
	}
	closers = append(closers, redisClient.Close)

	var cartEvents events.Publisher
	if cfg.PubSub.Enabled {
		pubsubClient, err := pubsub.NewClient(context.Background(), cfg.GCP, cfg.PubSub, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap pubsub", err)
			closeAll()
			os.Exit(1)
		}
		closers = append(closers, pubsubClient.Close)

		cartEvents, err = events.NewPubSubPublisher(pubsubClient.CartEventsPublisher(), logg)
		if err != nil {
			logg.Error(context.Background(), "failed to create event publisher", err)
			closeAll()
			os.Exit(1)
		}
	}

	gcsClient, err := gcs.NewClient(context.Background(), cfg.GCS, cfg.GCP, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap gcs", err)
		closeAll()
		os.Exit(1)
	}
	closers = append(closers, gcsClient.Close)

	deps, err := buildDeps(cfg, logg, dbClient, redisClient, gcsClient, cartEvents)
	if err != nil {
		logg.Error(context.Background(), "failed to build services", err)
		closeAll()
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:              addr,
		Handler:           routes.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			closeAll()
			os.Exit(1)
		}
	case <-stopCtx.Done():
		logg.Info(ctx, "shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
		cancel()
	}

	closeAll()
	logg.Info(ctx, "api server stopped")
}

func buildDeps(
	cfg *config.Config,
	logg *logger.Logger,
	dbClient *db.Client,
	redisClient *redis.Client,
	gcsClient *gcs.Client,
	cartEvents events.Publisher,
) (routes.Deps, error) {
	sellerRepo := sellers.NewRepository(dbClient.DB())
	storeRepo := stores.NewRepository(dbClient.DB())
	productRepo := products.NewRepository(dbClient.DB())
	cartRepo := cart.NewRepository(dbClient.DB())
	shareRepo := share.NewRepository(dbClient.DB())

	authService, err := auth.NewService(auth.ServiceParams{
		SellerRepo: sellerRepo,
		StoreRepo:  storeRepo,
		JWTConfig:  cfg.JWT,
	})
	if err != nil {
		return routes.Deps{}, err
	}

	registerService, err := auth.NewRegisterService(auth.RegisterServiceParams{
		DB:             dbClient,
		PasswordConfig: cfg.Password,
		JWTConfig:      cfg.JWT,
	})
	if err != nil {
		return routes.Deps{}, err
	}

	storeService, err := stores.NewService(storeRepo)
	if err != nil {
		return routes.Deps{}, err
	}

	productService, err := products.NewService(productRepo, storeRepo, storeService, cfg.Plan, logg)
	if err != nil {
		return routes.Deps{}, err
	}

	cartService, err := cart.NewService(cartRepo, dbClient, storeService, productRepo, cartEvents, logg)
	if err != nil {
		return routes.Deps{}, err
	}

	shareService, err := share.NewService(shareRepo, cartService, storeService, productRepo, cfg.Share, cartEvents, logg)
	if err != nil {
		return routes.Deps{}, err
	}

	mediaService, err := media.NewService(gcsClient, cfg.Media, logg)
	if err != nil {
		return routes.Deps{}, err
	}

	return routes.Deps{
		Config:          cfg,
		Logger:          logg,
		DB:              dbClient,
		Redis:           redisClient,
		AuthService:     authService,
		RegisterService: registerService,
		StoreService:    storeService,
		ProductService:  productService,
		CartService:     cartService,
		ShareService:    shareService,
		MediaService:    mediaService,
	}, nil
}
