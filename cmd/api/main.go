package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	httptransport "github.com/spec-kit/petcare-service/internal/api/http"
	"github.com/spec-kit/petcare-service/internal/api/http/handlers"
	"github.com/spec-kit/petcare-service/internal/auth"
	"github.com/spec-kit/petcare-service/internal/config"
	"github.com/spec-kit/petcare-service/internal/events"
	"github.com/spec-kit/petcare-service/internal/observability"
	"github.com/spec-kit/petcare-service/internal/persistence"
	"github.com/spec-kit/petcare-service/internal/repository"
	"github.com/spec-kit/petcare-service/internal/service"
	"github.com/spec-kit/petcare-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.BootstrapSchema {
		if err := persistence.BootstrapSchema(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to bootstrap schema", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	queryTimeout := cfg.Postgres.QueryTimeout()
	userRepo := repository.NewUserRepository(pool, queryTimeout)
	petRepo := repository.NewPetRepository(pool, queryTimeout)
	productRepo := repository.NewProductRepository(pool, queryTimeout)
	purchaseRepo := repository.NewPurchaseRepository(pool, queryTimeout)
	contactRepo := repository.NewContactRepository(pool, queryTimeout)

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartNotificationWorker(service.NewNotificationService(dispatcher, logger, cfg.Notification))

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:   userRepo,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	if cfg.Auth.AdminEmail != "" {
		_, err := authService.EnsureAdmin(ctx, service.RegisterInput{
			Email:    cfg.Auth.AdminEmail,
			Password: cfg.Auth.AdminPassword,
			Rut:      cfg.Auth.AdminRut,
		})
		if err != nil {
			logger.Fatal("failed to bootstrap admin", zap.Error(err))
		}
	}

	var limiter httptransport.RateLimiter
	if redis.Available() {
		limiter = httptransport.NewRedisRateLimiter(redis.Client, cfg.RateLimit.Requests, cfg.RateLimit.Window())
	} else {
		logger.Warn("rate limiting falls back to per-process buckets")
		limiter = httptransport.NewLocalRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window())
	}

	metrics := observability.NewMetrics()
	app := httptransport.NewApp(logger)
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, metrics, []handlers.Checker{pg}, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Users:          handlers.NewUsersHandler(service.NewUserService(userRepo)),
		Catalog:        handlers.NewCatalogHandler(service.NewCatalogService(petRepo, productRepo)),
		Purchases:      handlers.NewPurchasesHandler(service.NewPurchaseService(purchaseRepo, dispatcher, logger)),
		Contact:        handlers.NewContactHandler(service.NewContactService(contactRepo, dispatcher, logger)),
		AuthMiddleware: auth.NewAuthMiddleware(authService),
		AuthRateLimit:  httptransport.RateLimit(limiter, logger),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
