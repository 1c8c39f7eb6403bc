package handlers

import (
	"delivery-route-map/internal/api/dto"
	"delivery-route-map/internal/domain"
	"delivery-route-map/internal/ports"
	"delivery-route-map/internal/services"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MapHandler renders the delivery route map.
type MapHandler struct {
	Repo        ports.DeliveryRepository
	Initializer *services.MapInitializer
	// WaitTimeout bounds how long the handler waits for the routing outcome
	// before answering with the base map.
	WaitTimeout time.Duration
	Logger      *zap.Logger
}

// Show initializes the map for all deliveries and returns the view once the
// route has been handled. Routing failures are not surfaced: the client gets
// the base map.
func (h *MapHandler) Show(c *gin.Context) {
	ctx := c.Request.Context()

	deliveries, err := h.Repo.ListDeliveries(ctx)
	if err != nil {
		h.Logger.Error("list deliveries failed", zap.Error(err))
		writeError(c, http.StatusInternalServerError, "internal server error")
		return
	}

	view, done := h.Initializer.InitMap(ctx, domain.MapContainerID, deliveries)

	timer := time.NewTimer(h.WaitTimeout)
	defer timer.Stop()

	select {
	case <-done:
		c.JSON(http.StatusOK, toMapResponse(view))
	case <-timer.C:
		h.Logger.Warn("route not ready, serving base map", zap.Duration("waited", h.WaitTimeout))
		c.JSON(http.StatusOK, baseMapResponse(view))
	case <-ctx.Done():
		// Client went away.
	}
}

func baseMapResponse(view *domain.MapView) dto.MapResponse {
	return dto.MapResponse{
		Container: view.ContainerID,
		Center:    dto.LatLng{Lat: view.Center.Lat, Lng: view.Center.Lng},
		Zoom:      view.Zoom,
	}
}

// toMapResponse must only be called after the initializer signalled done.
func toMapResponse(view *domain.MapView) dto.MapResponse {
	res := baseMapResponse(view)
	if !view.HasRoute() {
		return res
	}

	res.Routes = make([]dto.RouteResponse, 0, len(view.Directions.Routes))
	for _, r := range view.Directions.Routes {
		legs := make([]dto.RouteLegResponse, 0, len(r.Legs))
		for _, l := range r.Legs {
			legs = append(legs, dto.RouteLegResponse{
				StartAddress:    l.StartAddress,
				EndAddress:      l.EndAddress,
				Start:           dto.LatLng{Lat: l.Start.Lat, Lng: l.Start.Lng},
				End:             dto.LatLng{Lat: l.End.Lat, Lng: l.End.Lng},
				DistanceMeters:  l.DistanceMeters,
				DurationSeconds: int(l.Duration.Seconds()),
			})
		}

		res.Routes = append(res.Routes, dto.RouteResponse{
			Summary:       r.Summary,
			Polyline:      r.Polyline,
			WaypointOrder: r.WaypointOrder,
			Warnings:      r.Warnings,
			Legs:          legs,
		})
	}

	return res
}
