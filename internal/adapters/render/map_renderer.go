package render

import "delivery-route-map/internal/domain"

// MapRenderer draws directions onto the map view it was created for.
type MapRenderer struct {
	view *domain.MapView
}

func NewMapRenderer(view *domain.MapView) *MapRenderer {
	return &MapRenderer{view: view}
}

// SetDirections replaces the route overlay of the bound view.
func (r *MapRenderer) SetDirections(result *domain.RouteResult) {
	r.view.Directions = result
}
