package geocode

import (
	"context"
	"delivery-route-map/internal/domain"
	"delivery-route-map/internal/platform/obs"
	"delivery-route-map/internal/ports"
	"errors"
	"fmt"
	"strings"

	"googlemaps.github.io/maps"
)

// GoogleGeocoder resolves addresses with the Google Geocoding API.
type GoogleGeocoder struct {
	client *maps.Client
}

func NewGoogleGeocoder(apiKey string, opts ...maps.ClientOption) (*GoogleGeocoder, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("google geocoder: api key is empty")
	}

	c, err := maps.NewClient(append([]maps.ClientOption{maps.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("google geocoder: create client: %w", err)
	}

	return &GoogleGeocoder{client: c}, nil
}

func (g *GoogleGeocoder) Name() string { return "google" }

func (g *GoogleGeocoder) Geocode(ctx context.Context, address string) (_ domain.Coordinates, err error) {
	defer obs.Time(ctx, "google.Geocode")(&err)

	results, err := g.client.Geocode(ctx, &maps.GeocodingRequest{Address: address})
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("google geocode %q: %w", address, err)
	}

	if len(results) == 0 {
		return domain.Coordinates{}, fmt.Errorf("google geocode %q: %w", address, ports.ErrNoGeocodeResult)
	}

	loc := results[0].Geometry.Location
	return domain.Coordinates{Lat: loc.Lat, Lng: loc.Lng}, nil
}
