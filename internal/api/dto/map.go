package dto

type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type RouteLegResponse struct {
	StartAddress    string `json:"start_address"`
	EndAddress      string `json:"end_address"`
	Start           LatLng `json:"start"`
	End             LatLng `json:"end"`
	DistanceMeters  int    `json:"distance_meters"`
	DurationSeconds int    `json:"duration_seconds"`
}

type RouteResponse struct {
	Summary       string             `json:"summary"`
	Polyline      string             `json:"polyline"`
	WaypointOrder []int              `json:"waypoint_order"`
	Warnings      []string           `json:"warnings"`
	Legs          []RouteLegResponse `json:"legs"`
}

// MapResponse describes the rendered map. Routes is null when no route
// overlay was drawn.
type MapResponse struct {
	Container string          `json:"container"`
	Center    LatLng          `json:"center"`
	Zoom      int             `json:"zoom"`
	Routes    []RouteResponse `json:"routes"`
}
