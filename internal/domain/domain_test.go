package domain

import (
	"testing"
)

func TestParseRouteStatus(t *testing.T) {
	cases := map[string]RouteStatus{
		"OK":               RouteStatusOK,
		"ZERO_RESULTS":     RouteStatusZeroResults,
		"REQUEST_DENIED":   RouteStatusRequestDenied,
		"OVER_QUERY_LIMIT": RouteStatusOverQueryLimit,
		"":                 RouteStatusUnknownError,
		"something else":   RouteStatusUnknownError,
	}

	for in, want := range cases {
		if got := ParseRouteStatus(in); got != want {
			t.Errorf("ParseRouteStatus(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDeliveryGeocodeQuery(t *testing.T) {
	d := &Delivery{Address: "Rua Augusta 50, Lisboa"}
	if got := d.GeocodeQuery(); got != "Rua Augusta 50, Lisboa" {
		t.Fatalf("query without city = %q", got)
	}

	d.City = "Lisboa"
	if got := d.GeocodeQuery(); got != "Rua Augusta 50, Lisboa, Lisboa" {
		t.Fatalf("query with city = %q", got)
	}
}

func TestDeliveryCoordinates(t *testing.T) {
	d := &Delivery{ID: 1, Address: "A"}
	if _, ok := d.Coordinates(); ok {
		t.Fatal("expected no coordinates before geocoding")
	}

	lat, lon := 38.7078, -9.1366
	d.Lat, d.Lon = &lat, &lon

	c, ok := d.Coordinates()
	if !ok {
		t.Fatal("expected coordinates after geocoding")
	}
	if c.String() != "38.7078,-9.1366" {
		t.Fatalf("coordinates = %q, want 38.7078,-9.1366", c.String())
	}
}

func TestRouteStatusError(t *testing.T) {
	err := &RouteStatusError{Status: RouteStatusZeroResults}
	if err.Error() != "routing failed: status ZERO_RESULTS" {
		t.Fatalf("unexpected message: %q", err.Error())
	}

	err.Message = "no route"
	if err.Error() != "routing failed: status ZERO_RESULTS: no route" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestNewMapViewStartsWithoutRoute(t *testing.T) {
	v := NewMapView(MapContainerID, Coordinates{Lat: 1, Lng: 2}, 12)
	if v.HasRoute() {
		t.Fatal("new map view must not carry a route overlay")
	}
	if v.ContainerID != "map" || v.Zoom != 12 {
		t.Fatalf("unexpected view: %+v", v)
	}
}
