package ports

import (
	"context"
	"delivery-route-map/internal/domain"
)

// Contract for computing a route through a list of waypoints.
//
// A request that reaches the service but completes with a non-OK status
// must be reported as *domain.RouteStatusError.
type DirectionsService interface {
	Route(ctx context.Context, req domain.RouteRequest) (*domain.RouteResult, error)
}
