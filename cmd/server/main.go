package main

import (
	"context"
	"delivery-route-map/internal/adapters/directions"
	"delivery-route-map/internal/adapters/geocode"
	"delivery-route-map/internal/adapters/render"
	"delivery-route-map/internal/adapters/report"
	"delivery-route-map/internal/adapters/repositories"
	"delivery-route-map/internal/api"
	"delivery-route-map/internal/config"
	"delivery-route-map/internal/domain"
	"delivery-route-map/internal/jobs"
	"delivery-route-map/internal/platform/db"
	"delivery-route-map/internal/platform/logger"
	"delivery-route-map/internal/ports"
	"delivery-route-map/internal/security"
	"delivery-route-map/internal/services"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// main is the application composition root.
// It wires concrete adapters (Postgres, Google Maps, Nominatim) behind ports
// and starts the HTTP server.
func main() {
	cfg, dotenv, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	zl, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = zl.Sync() }()
	zap.ReplaceGlobals(zl)

	if !dotenv {
		zl.Info("no .env file found (using environment variables)")
	}

	if err := run(cfg, zl); err != nil {
		zl.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, zl *zap.Logger) error {
	if err := cfg.RequireJWTSecret(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer conn.Close()

	// Initialize schema and seed demo data on startup for local runs.
	if err := repositories.InitSchema(ctx, conn); err != nil {
		return err
	}
	n, err := repositories.SeedFromJSON(ctx, conn, cfg.SeedPath)
	if err != nil {
		zl.Warn("seeding skipped", zap.String("path", cfg.SeedPath), zap.Error(err))
	} else if n > 0 {
		zl.Info("seeded deliveries", zap.Int("count", n))
	}

	dirSvc, geocoder, err := newMapsAdapters(cfg, zl)
	if err != nil {
		return err
	}

	deliveries := repositories.NewPostgresDeliveryRepository(conn)
	users := repositories.NewPostgresUserRepository(conn)
	if cfg.AdminPassword != "" {
		created, err := security.EnsureAdmin(ctx, users, cfg.AdminUsername, cfg.AdminPassword)
		if err != nil {
			return err
		}
		if created {
			zl.Info("created admin account", zap.String("username", cfg.AdminUsername))
		}
	}
	auth := security.NewAuthenticator(users, cfg.JWTSecret, cfg.JWTTTL)

	initializer := &services.MapInitializer{
		Directions: dirSvc,
		NewRenderer: func(view *domain.MapView) ports.DirectionsRenderer {
			return render.NewMapRenderer(view)
		},
		Logger: zl.Named("map"),
	}

	if cfg.GeocodeSchedule != "" {
		job := jobs.NewGeocodePendingJob(deliveries, geocoder, cfg.GeocodeSchedule, zl)
		if err := job.Start(); err != nil {
			return err
		}
		defer job.Stop()
	}

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := api.NewRouter(api.Deps{
		Deliveries:      deliveries,
		Geocoder:        geocoder,
		Reports:         report.NewPDFReport(),
		MapInitializer:  initializer,
		Auth:            auth,
		Tokens:          auth,
		MapRouteTimeout: cfg.MapRouteTimeout,
		Logger:          zl,
	})

	// Write timeout leaves room for the map endpoint to wait on the routing API.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.MapRouteTimeout + 10*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zl.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	zl.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// newMapsAdapters builds the directions service and the geocoder chain.
// Without a Google API key routing is denied and geocoding uses Nominatim only.
func newMapsAdapters(cfg *config.Config, zl *zap.Logger) (ports.DirectionsService, ports.Geocoder, error) {
	nominatim, err := geocode.NewNominatimGeocoder(cfg.NominatimURL, cfg.NominatimUserAgent)
	if err != nil {
		return nil, nil, err
	}

	if cfg.GoogleAPIKey == "" {
		zl.Warn("GOOGLE_API_KEY not set: route overlay disabled, geocoding via nominatim only")
		dirSvc := directions.NewFailingDirectionsService(domain.RouteStatusRequestDenied, "no API key configured")
		return dirSvc, geocode.NewFallbackGeocoder(zl, nominatim), nil
	}

	dirSvc, err := directions.NewGoogleDirectionsService(cfg.GoogleAPIKey)
	if err != nil {
		return nil, nil, err
	}
	google, err := geocode.NewGoogleGeocoder(cfg.GoogleAPIKey)
	if err != nil {
		return nil, nil, err
	}

	return dirSvc, geocode.NewFallbackGeocoder(zl, google, nominatim), nil
}
