package services

import (
	"delivery-route-map/internal/domain"
	"testing"
)

func TestNavigationLinks(t *testing.T) {
	lat, lon := 38.7078, -9.1366

	geocoded := &domain.Delivery{ID: 1, Address: "Praça do Comércio", Lat: &lat, Lon: &lon}
	pending := &domain.Delivery{ID: 2, Address: "Rua Augusta 50, Lisboa"}

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"waze with coordinates", WazeLink(geocoded), "https://waze.com/ul?ll=38.7078,-9.1366&navigate=yes"},
		{"waze with address", WazeLink(pending), "https://waze.com/ul?q=Rua+Augusta+50%2C+Lisboa&navigate=yes"},
		{"maps with coordinates", GoogleMapsLink(geocoded), "https://www.google.com/maps/dir/?api=1&destination=38.7078,-9.1366"},
		{"maps with address", GoogleMapsLink(pending), "https://www.google.com/maps/search/Rua+Augusta+50%2C+Lisboa"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Fatalf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}
