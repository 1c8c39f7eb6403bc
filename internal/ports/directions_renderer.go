package ports

import "delivery-route-map/internal/domain"

// Draws a computed route onto the map view it is bound to.
type DirectionsRenderer interface {
	SetDirections(result *domain.RouteResult)
}
