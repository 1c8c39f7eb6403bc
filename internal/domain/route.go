package domain

import (
	"fmt"
	"time"
)

type TravelMode string

const TravelModeDriving TravelMode = "DRIVING"

// Routing status codes reported by the directions service.
type RouteStatus string

const (
	RouteStatusOK                     RouteStatus = "OK"
	RouteStatusNotFound               RouteStatus = "NOT_FOUND"
	RouteStatusZeroResults            RouteStatus = "ZERO_RESULTS"
	RouteStatusMaxWaypointsExceeded   RouteStatus = "MAX_WAYPOINTS_EXCEEDED"
	RouteStatusMaxRouteLengthExceeded RouteStatus = "MAX_ROUTE_LENGTH_EXCEEDED"
	RouteStatusInvalidRequest         RouteStatus = "INVALID_REQUEST"
	RouteStatusOverQueryLimit         RouteStatus = "OVER_QUERY_LIMIT"
	RouteStatusRequestDenied          RouteStatus = "REQUEST_DENIED"
	RouteStatusUnknownError           RouteStatus = "UNKNOWN_ERROR"
)

var knownStatuses = map[RouteStatus]struct{}{
	RouteStatusOK:                     {},
	RouteStatusNotFound:               {},
	RouteStatusZeroResults:            {},
	RouteStatusMaxWaypointsExceeded:   {},
	RouteStatusMaxRouteLengthExceeded: {},
	RouteStatusInvalidRequest:         {},
	RouteStatusOverQueryLimit:         {},
	RouteStatusRequestDenied:          {},
	RouteStatusUnknownError:           {},
}

// ParseRouteStatus maps a raw status string to a RouteStatus.
// Unrecognized values collapse to UNKNOWN_ERROR.
func ParseRouteStatus(s string) RouteStatus {
	st := RouteStatus(s)
	if _, ok := knownStatuses[st]; ok {
		return st
	}
	return RouteStatusUnknownError
}

// An intermediate stop the route must pass through.
type Waypoint struct {
	Location string
	Stopover bool
}

// Represents one routing request: fixed endpoints plus the stops in between.
// It is built once per map initialization and not retained.
type RouteRequest struct {
	Origin            string
	Destination       string
	Waypoints         []Waypoint
	OptimizeWaypoints bool
	TravelMode        TravelMode
}

// One leg of a computed route, between two consecutive stops.
type RouteLeg struct {
	StartAddress   string
	EndAddress     string
	Start          Coordinates
	End            Coordinates
	DistanceMeters int
	Duration       time.Duration
}

type Route struct {
	Summary  string
	Polyline string
	Legs     []RouteLeg
	// WaypointOrder is the optimized visiting order as indexes into the request waypoints.
	WaypointOrder []int
	Warnings      []string
}

// Represents the result returned by the directions service.
// Callers treat it as opaque and hand it to a renderer untouched.
type RouteResult struct {
	Routes []Route
}

// RouteStatusError reports a routing request that completed with a non-OK status.
type RouteStatusError struct {
	Status  RouteStatus
	Message string
}

func (e *RouteStatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("routing failed: status %s", e.Status)
	}
	return fmt.Sprintf("routing failed: status %s: %s", e.Status, e.Message)
}
