// Command server runs the Aveline shop backend: a storefront and back office
// HTTP API over a SQLite-backed document store.
//
//	@title                      Aveline Shop Backend API
//	@version                    1.0
//	@description                Storefront and back office API for the Aveline fashion shop.
//	@BasePath                   /api/v1
//	@securityDefinitions.apikey BearerAuth
//	@in                         header
//	@name                       Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/avelineco/go-shop-backend/internal/auth"
	"github.com/avelineco/go-shop-backend/internal/cart"
	"github.com/avelineco/go-shop-backend/internal/checkout"
	"github.com/avelineco/go-shop-backend/internal/config"
	"github.com/avelineco/go-shop-backend/internal/containers"
	"github.com/avelineco/go-shop-backend/internal/domain"
	httpapi "github.com/avelineco/go-shop-backend/internal/http"
	"github.com/avelineco/go-shop-backend/internal/http/handlers"
	"github.com/avelineco/go-shop-backend/internal/observability"
	"github.com/avelineco/go-shop-backend/internal/store"
	"github.com/avelineco/go-shop-backend/internal/sysutil"
)

// version is stamped by the build pipeline via -ldflags.
var version = "dev"

func main() {
	// .env is optional; real deployments configure through the environment.
	_ = godotenv.Load()

	cfg := config.MustLoad()
	setupLogger(cfg)
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		log.Fatal().Err(err).Msg("otel setup failed")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownOTel(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("otel shutdown")
		}
	}()

	db, err := store.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open database failed")
	}
	if err := store.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate failed")
	}
	if cfg.OTEL.Enabled {
		if err := store.EnableTracing(db); err != nil {
			log.Warn().Err(err).Msg("gorm tracing not enabled")
		}
	}

	deps := buildDeps(ctx, db, cfg)

	r := gin.New()
	httpapi.RegisterRoutes(r, db, deps, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("version", version).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// buildDeps constructs the document store containers and services. Containers
// merge stored documents over these defaults, so a fresh install starts with
// a usable zone and tax configuration.
func buildDeps(ctx context.Context, db *gorm.DB, cfg config.Config) handlers.Deps {
	s := store.NewSQLiteStore(db)

	gw, err := auth.NewGateway(nil, cfg.Auth.DemoEmail, cfg.Auth.DemoPassword, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("auth gateway init failed")
	}

	coupons := containers.NewCoupons(ctx, s, nil)
	tax := containers.NewTax(ctx, s, domain.TaxSettings{
		Enabled:     true,
		DefaultRate: cfg.Pricing.DefaultTaxRate,
		Label:       "Sales Tax",
	})
	carts := cart.NewService(s, tax, cart.Config{
		FreeShippingThreshold: cfg.Pricing.FreeShippingThreshold,
		ShippingCost:          cfg.Pricing.ShippingCost,
	})

	return handlers.Deps{
		Products:    containers.NewProducts(ctx, s, nil),
		Collections: containers.NewCollections(ctx, s, nil),
		Coupons:     coupons,
		Zones: containers.NewShippingZones(ctx, s, []domain.ShippingZone{
			{
				ID:     "zone_domestic",
				Name:   "Domestic",
				States: []string{"CA", "NY", "TX", "FL", "IL", "WA"},
				Methods: []domain.ShippingMethod{
					{ID: "standard", Name: "Standard", Rate: cfg.Pricing.ShippingCost, EstimatedDays: "3-5", Enabled: true},
					{ID: "express", Name: "Express", Rate: cfg.Pricing.ShippingCost * 2, EstimatedDays: "1-2", Enabled: true},
				},
			},
		}),
		Tax:     tax,
		Returns: containers.NewReturns(ctx, s, nil),
		Reviews: containers.NewReviews(ctx, s, nil),
		Tickets: containers.NewTickets(ctx, s, nil),
		Media:   containers.NewMedia(ctx, s, nil),
		Blog:    containers.NewBlog(ctx, s, nil),
		SEO: containers.NewSEO(ctx, s, domain.SEOSettings{
			SiteTitle: "Aveline",
		}),
		Subscribers:   containers.NewSubscribers(ctx, s, nil),
		Campaigns:     containers.NewCampaigns(ctx, s, nil),
		Notifications: containers.NewNotifications(ctx, s, nil),
		Activity:      containers.NewActivityLogs(ctx, s),
		Carts:         carts,
		Checkout:      checkout.NewService(carts, coupons, s),
		Auth:          gw,
		DB:            db,
		IdemTTL:       cfg.IdempotencyTTL,
	}
}

// setupLogger configures the global zerolog logger from config.
func setupLogger(cfg config.Config) {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	sysutil.SetLogLevel(cfg.LogLevel)
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}
