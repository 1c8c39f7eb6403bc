package domain

// MapContainerID identifies the element the map is drawn into.
const MapContainerID = "map"

// Represents a map canvas bound to a container element.
// A MapView starts as a base map (center and zoom only). A renderer may
// later attach a route overlay to it.
type MapView struct {
	ContainerID string
	Center      Coordinates
	Zoom        int
	Directions  *RouteResult
}

func NewMapView(containerID string, center Coordinates, zoom int) *MapView {
	return &MapView{
		ContainerID: containerID,
		Center:      center,
		Zoom:        zoom,
	}
}

// HasRoute reports whether a route overlay has been rendered.
func (m *MapView) HasRoute() bool {
	return m.Directions != nil
}
