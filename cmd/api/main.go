package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"paraguay-shipping/config"
	"paraguay-shipping/internal/delivery/http/middleware"
	v1 "paraguay-shipping/internal/delivery/http/v1"
	"paraguay-shipping/internal/domain"
	"paraguay-shipping/internal/infrastructure/cache"
	"paraguay-shipping/internal/infrastructure/region"
	pgrepo "paraguay-shipping/internal/repository/postgres"
	"paraguay-shipping/internal/usecase"
	"paraguay-shipping/pkg/logger"
	"paraguay-shipping/pkg/storage"
	"paraguay-shipping/pkg/utils"

	"github.com/NYTimes/gziphandler"
	"golang.org/x/time/rate"
)

func main() {
	cfg := config.LoadConfig()
	utils.SetSecret(cfg.JWTSecret)

	logger.Init(cfg.Env, cfg.LogLevel)
	log := logger.Get()

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	// Database
	pgxPool, err := pgrepo.NewPgxPool(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pgxPool.Close()
	log.Info().Msg("Successfully connected to PostgreSQL via pgx")

	if err := pgrepo.EnsureSchema(context.Background(), pgxPool); err != nil {
		log.Fatal().Err(err).Msg("Failed to prepare shipping_settings table")
	}

	settingsRepo := pgrepo.NewSettingsRepository(pgxPool)
	regions := region.NewDirectory()

	// Default expiration 30m, cleanup every 60m
	memCache := cache.NewMemoryCache(30*time.Minute, 60*time.Minute)

	// Settings snapshots (R2) are optional
	var archive domain.SettingsArchive
	if cfg.SnapshotsEnabled() {
		r2Storage, err := storage.NewR2Storage(
			context.Background(),
			cfg.R2AccountID,
			cfg.R2AccessKeyID,
			cfg.R2AccessKeySecret,
			cfg.R2BucketName,
			cfg.R2PublicURL,
			cfg.R2UploadTimeout,
		)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize R2 Storage")
		}
		archive = r2Storage
		log.Info().Str("bucket", cfg.R2BucketName).Msg("Settings snapshots enabled")
	}

	shippingUC := usecase.NewShippingUsecase(settingsRepo, regions, cfg.ShippingMethodID, cfg.ShippingCountry)
	settingsUC := usecase.NewSettingsUsecase(settingsRepo, archive, cfg.ShippingMethodID)

	shippingHandler := v1.NewShippingHandler(shippingUC, memCache, cfg.CacheCitiesTTL)
	adminSettingsHandler := v1.NewAdminSettingsHandler(settingsUC, memCache)
	configHandler := v1.NewConfigHandler(memCache, regions, cfg.ShippingCountry)

	mux := http.NewServeMux()

	// Shipping (Public)
	mux.HandleFunc("POST /api/v1/shipping/rates", shippingHandler.QuoteRates)
	mux.HandleFunc("GET /api/v1/shipping/cities", shippingHandler.GetCities)
	mux.HandleFunc("GET /api/v1/shipping/checkout-guard", shippingHandler.CheckoutGuard)
	mux.HandleFunc("GET /api/v1/config/enums", configHandler.GetEnums)

	// Admin (Protected)
	adminMiddleware := func(h http.HandlerFunc) http.Handler {
		return middleware.AuthMiddleware(middleware.AdminMiddleware(h))
	}

	mux.Handle("GET /api/v1/admin/shipping/settings", adminMiddleware(adminSettingsHandler.GetSettings))
	mux.Handle("PUT /api/v1/admin/shipping/settings", adminMiddleware(adminSettingsHandler.UpdateSettings))
	mux.Handle("POST /api/v1/admin/shipping/settings/validate", adminMiddleware(adminSettingsHandler.ValidateSettings))

	// Health Check
	healthHandler := func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := pgxPool.Ping(ctx); err != nil {
			utils.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded", "db": "unreachable"})
			return
		}
		utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok", "db": "connected"})
	}
	mux.HandleFunc("GET /api/v1/health", healthHandler)
	mux.HandleFunc("GET /health", healthHandler) // load balancers probe the root path

	addr := fmt.Sprintf(":%s", cfg.Port)

	// cleanup every minute, TTL 3 minutes
	rateLimiter := middleware.NewRateLimiter(
		context.Background(),
		rate.Limit(cfg.RateLimitRPS),
		cfg.RateLimitBurst,
		time.Minute,
		3*time.Minute,
	)

	handler := middleware.NewCORSMiddleware(cfg)(mux)
	handler = middleware.RequestLogger(handler)
	handler = rateLimiter.Middleware()(handler)
	handler = gziphandler.GzipHandler(handler)

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	logger.ServiceStart("paraguay-shipping", cfg.Env, addr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Server shutting down...")

	rateLimiter.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.ServiceStop("paraguay-shipping")
}
