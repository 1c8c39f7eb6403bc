package services

import (
	"context"
	"delivery-route-map/internal/domain"
	"delivery-route-map/internal/ports"
	"errors"

	"go.uber.org/zap"
)

const (
	// DepotPlaceholder is sent as both route endpoints. It is a placeholder,
	// not a resolvable depot address.
	DepotPlaceholder = "Endereço do depósito"
	DefaultZoom      = 12
)

// DefaultCenter is the fixed map center (São Paulo).
var DefaultCenter = domain.Coordinates{Lat: -23.5505, Lng: -46.6333}

// RouteOutcome is the result of a single routing request: either a result
// (Status OK) or a failure status with no result.
type RouteOutcome struct {
	Result *domain.RouteResult
	Status domain.RouteStatus
	Err    error
}

func (o RouteOutcome) OK() bool {
	return o.Status == domain.RouteStatusOK
}

// MapInitializer builds a map view and overlays an optimized driving route
// through the given deliveries.
type MapInitializer struct {
	Directions ports.DirectionsService
	// NewRenderer binds a renderer to the freshly created map view.
	NewRenderer func(view *domain.MapView) ports.DirectionsRenderer
	Logger      *zap.Logger
}

// BuildWaypoints projects each delivery address into a mandatory stop.
// The result has exactly one waypoint per delivery, in input order.
func BuildWaypoints(deliveries []*domain.Delivery) []domain.Waypoint {
	waypoints := make([]domain.Waypoint, 0, len(deliveries))
	for _, d := range deliveries {
		waypoints = append(waypoints, domain.Waypoint{Location: d.Address, Stopover: true})
	}
	return waypoints
}

// BuildRouteRequest returns the depot round trip through all deliveries.
func BuildRouteRequest(deliveries []*domain.Delivery) domain.RouteRequest {
	return domain.RouteRequest{
		Origin:            DepotPlaceholder,
		Destination:       DepotPlaceholder,
		Waypoints:         BuildWaypoints(deliveries),
		OptimizeWaypoints: true,
		TravelMode:        domain.TravelModeDriving,
	}
}

// RequestRoute issues one routing request in the background and delivers
// exactly one outcome on the returned channel.
func RequestRoute(ctx context.Context, svc ports.DirectionsService, req domain.RouteRequest) <-chan RouteOutcome {
	out := make(chan RouteOutcome, 1)

	go func() {
		result, err := svc.Route(ctx, req)
		if err == nil {
			out <- RouteOutcome{Result: result, Status: domain.RouteStatusOK}
			return
		}

		status := domain.RouteStatusUnknownError
		var se *domain.RouteStatusError
		if errors.As(err, &se) {
			status = se.Status
		}
		out <- RouteOutcome{Status: status, Err: err}
	}()

	return out
}

// InitMap creates the base map for containerID and starts the route request.
//
// It does not block on the routing service. The returned channel is closed
// once the outcome has been handled: on OK the renderer has drawn the route
// onto the view, otherwise a diagnostic was logged and the view is left as
// the base map.
func (m *MapInitializer) InitMap(
	ctx context.Context,
	containerID string,
	deliveries []*domain.Delivery,
) (*domain.MapView, <-chan struct{}) {
	view := domain.NewMapView(containerID, DefaultCenter, DefaultZoom)
	renderer := m.NewRenderer(view)
	req := BuildRouteRequest(deliveries)

	log := m.Logger
	if log == nil {
		log = zap.NewNop()
	}

	done := make(chan struct{})
	outcomes := RequestRoute(ctx, m.Directions, req)

	go func() {
		defer close(done)

		outcome := <-outcomes
		if outcome.OK() {
			renderer.SetDirections(outcome.Result)
			return
		}

		log.Error("route generation failed",
			zap.String("status", string(outcome.Status)),
			zap.Int("waypoints", len(req.Waypoints)),
			zap.Error(outcome.Err),
		)
	}()

	return view, done
}
