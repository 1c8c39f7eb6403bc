package api

import (
	"delivery-route-map/internal/api/handlers"
	"delivery-route-map/internal/ports"
	"delivery-route-map/internal/services"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Dependencies needed by the HTTP API.
type Deps struct {
	Deliveries      ports.DeliveryRepository
	Geocoder        ports.Geocoder
	Reports         ports.ReportRenderer
	MapInitializer  *services.MapInitializer
	Auth            handlers.LoginService
	Tokens          TokenParser
	MapRouteTimeout time.Duration
	Logger          *zap.Logger
}

// NewRouter wires HTTP handlers with their dependencies and returns the engine.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(requestIDMiddleware(), loggingMiddleware(d.Logger), recoveryMiddleware(d.Logger))

	authHandler := &handlers.AuthHandler{Auth: d.Auth, Logger: d.Logger}
	deliveryHandler := &handlers.DeliveryHandler{
		Repo:     d.Deliveries,
		Geocoder: d.Geocoder,
		Reports:  d.Reports,
		Logger:   d.Logger,
	}
	mapHandler := &handlers.MapHandler{
		Repo:        d.Deliveries,
		Initializer: d.MapInitializer,
		WaitTimeout: d.MapRouteTimeout,
		Logger:      d.Logger,
	}

	r.GET("/health", handlers.Health)
	r.POST("/login", authHandler.Login)

	protected := r.Group("/", jwtMiddleware(d.Tokens))
	protected.GET("/map", mapHandler.Show)
	protected.GET("/deliveries", deliveryHandler.List)
	protected.POST("/deliveries", deliveryHandler.Create)
	protected.GET("/deliveries/report.pdf", deliveryHandler.Report)
	protected.POST("/deliveries/:id/geocode", deliveryHandler.Geocode)
	protected.GET("/deliveries/:id/waze", deliveryHandler.OpenWaze)
	protected.GET("/deliveries/:id/maps", deliveryHandler.OpenMaps)

	return r
}
