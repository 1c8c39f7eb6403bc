package ports

import (
	"context"
	"delivery-route-map/internal/domain"
	"errors"
)

var ErrNoGeocodeResult = errors.New("no geocode result")

// Contract for resolving a free-text address to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (domain.Coordinates, error)
}
