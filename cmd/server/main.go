package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ErlanBelekov/shop-api/config"
	"github.com/ErlanBelekov/shop-api/internal/access"
	"github.com/ErlanBelekov/shop-api/internal/apperror"
	"github.com/ErlanBelekov/shop-api/internal/auth"
	"github.com/ErlanBelekov/shop-api/internal/health"
	"github.com/ErlanBelekov/shop-api/internal/infrastructure/postgres"
	ctxlog "github.com/ErlanBelekov/shop-api/internal/log"
	"github.com/ErlanBelekov/shop-api/internal/metrics"
	httptransport "github.com/ErlanBelekov/shop-api/internal/transport/http"
	"github.com/ErlanBelekov/shop-api/internal/transport/http/handler"
	"github.com/ErlanBelekov/shop-api/internal/upload"
	"github.com/ErlanBelekov/shop-api/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := ctxlog.New(cfg.Env, cfg.SlogLevel(), os.Stdout)

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		stop()
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	if err := postgres.Migrate(pool); err != nil {
		stop()
		log.Fatalf("migrate: %v", err)
	}

	store, err := upload.NewDiskStore(cfg.UploadDir)
	if err != nil {
		stop()
		log.Fatalf("upload dir: %v", err)
	}
	mediator := upload.NewMediator(store, cfg.PublicBaseURL, cfg.MaxUploadBytes())

	// Credentials
	secret := []byte(cfg.JWTSecret)
	policy := access.NewPolicy(auth.NewVerifier(secret), access.DefaultRules(cfg.APIURL)...)
	issuer := auth.NewIssuer(secret, cfg.JWTTTL)

	// Repositories
	categoryRepo := postgres.NewCategoryRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)

	handlers := httptransport.Handlers{
		Categories: handler.NewCategoryHandler(usecase.NewCategoryUsecase(categoryRepo), logger),
		Products:   handler.NewProductHandler(usecase.NewProductUsecase(productRepo, categoryRepo), mediator, logger),
		Users:      handler.NewUserHandler(usecase.NewUserUsecase(userRepo, issuer), logger),
		Orders:     handler.NewOrderHandler(usecase.NewOrderUsecase(orderRepo, productRepo, userRepo), logger),
	}

	metrics.Register()
	checker := health.NewChecker(pool, logger, prometheus.DefaultRegisterer).
		With("uploads", health.DirCheck(store.Dir()))

	router := httptransport.NewRouter(logger, httptransport.Options{
		APIPrefix: cfg.APIURL,
		UploadDir: store.Dir(),
		Timeout:   cfg.RequestTimeout,
		// A full gallery plus form fields.
		MaxBodyBytes: cfg.MaxUploadBytes()*(upload.MaxGalleryFiles+1) + 1<<20,
		CORSOrigins:  cfg.CORSOrigins,
		HSTS:         cfg.Env != "local",
	}, policy, apperror.NewNormalizer(cfg.ExposeDiagnostics()), checker, handlers)

	srv := http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	metricsSrv := metrics.NewServer(":"+cfg.MetricsPort, checker)

	go func() {
		logger.Info("server started", "port", cfg.Port, "api", cfg.APIURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	go func() {
		logger.Info("metrics server started", "port", cfg.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown", "error", err)
	}
}
