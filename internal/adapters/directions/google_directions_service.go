package directions

import (
	"context"
	"delivery-route-map/internal/domain"
	"delivery-route-map/internal/platform/obs"
	"errors"
	"fmt"
	"strings"

	"googlemaps.github.io/maps"
)

// GoogleDirectionsService implements DirectionsService using the Google Maps
// Directions API.
//
// Waypoint optimization is delegated to Google: the request only carries the
// optimize flag and the service returns the visiting order.
// The service is safe for concurrent use.
type GoogleDirectionsService struct {
	client *maps.Client
}

// NewGoogleDirectionsService builds a client for apiKey. Extra client options
// (base URL, HTTP client) may be passed for testing.
func NewGoogleDirectionsService(apiKey string, opts ...maps.ClientOption) (*GoogleDirectionsService, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("google directions: api key is empty")
	}

	c, err := maps.NewClient(append([]maps.ClientOption{maps.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("google directions: create client: %w", err)
	}

	return &GoogleDirectionsService{client: c}, nil
}

func (g *GoogleDirectionsService) Route(
	ctx context.Context,
	req domain.RouteRequest,
) (_ *domain.RouteResult, err error) {
	defer obs.Time(ctx, "google.Directions")(&err)

	routes, _, err := g.client.Directions(ctx, toDirectionsRequest(req))
	if err != nil {
		return nil, &domain.RouteStatusError{
			Status:  statusFromError(err),
			Message: err.Error(),
		}
	}
	// The client does not report ZERO_RESULTS as an error.
	if len(routes) == 0 {
		return nil, &domain.RouteStatusError{Status: domain.RouteStatusZeroResults}
	}

	return toRouteResult(routes), nil
}

func toDirectionsRequest(req domain.RouteRequest) *maps.DirectionsRequest {
	waypoints := make([]string, 0, len(req.Waypoints))
	for _, w := range req.Waypoints {
		// Pass-through points are expressed with the "via:" prefix.
		if w.Stopover {
			waypoints = append(waypoints, w.Location)
		} else {
			waypoints = append(waypoints, "via:"+w.Location)
		}
	}

	mode := maps.TravelModeDriving
	if req.TravelMode != domain.TravelModeDriving {
		mode = maps.Mode(strings.ToLower(string(req.TravelMode)))
	}

	return &maps.DirectionsRequest{
		Origin:      req.Origin,
		Destination: req.Destination,
		Waypoints:   waypoints,
		Optimize:    req.OptimizeWaypoints,
		Mode:        mode,
	}
}

func toRouteResult(routes []maps.Route) *domain.RouteResult {
	out := &domain.RouteResult{Routes: make([]domain.Route, 0, len(routes))}

	for _, r := range routes {
		route := domain.Route{
			Summary:       r.Summary,
			Polyline:      r.OverviewPolyline.Points,
			WaypointOrder: r.WaypointOrder,
			Warnings:      r.Warnings,
			Legs:          make([]domain.RouteLeg, 0, len(r.Legs)),
		}

		for _, leg := range r.Legs {
			if leg == nil {
				continue
			}
			route.Legs = append(route.Legs, domain.RouteLeg{
				StartAddress:   leg.StartAddress,
				EndAddress:     leg.EndAddress,
				Start:          domain.Coordinates{Lat: leg.StartLocation.Lat, Lng: leg.StartLocation.Lng},
				End:            domain.Coordinates{Lat: leg.EndLocation.Lat, Lng: leg.EndLocation.Lng},
				DistanceMeters: leg.Distance.Meters,
				Duration:       leg.Duration,
			})
		}

		out.Routes = append(out.Routes, route)
	}

	return out
}

// statusFromError recovers the API status from client errors, which are
// formatted as "maps: <STATUS> - <message>". Anything else (transport
// failures, decode errors) is reported as UNKNOWN_ERROR.
func statusFromError(err error) domain.RouteStatus {
	msg, ok := strings.CutPrefix(err.Error(), "maps: ")
	if !ok {
		return domain.RouteStatusUnknownError
	}

	status, _, _ := strings.Cut(msg, " - ")
	return domain.ParseRouteStatus(strings.TrimSpace(status))
}
