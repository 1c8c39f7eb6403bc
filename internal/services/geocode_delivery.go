package services

import (
	"context"
	"delivery-route-map/internal/domain"
	"delivery-route-map/internal/ports"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// GeocodeDelivery resolves the delivery's address (plus city, when set) and
// persists the coordinates.
func GeocodeDelivery(
	ctx context.Context,
	id int,
	repo ports.DeliveryRepository,
	geocoder ports.Geocoder,
) (domain.Coordinates, error) {
	d, err := repo.GetDelivery(ctx, id)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode delivery %d: %w", id, err)
	}

	c, err := geocoder.Geocode(ctx, d.GeocodeQuery())
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode delivery %d: %w", id, err)
	}

	if err := repo.UpdateCoordinates(ctx, id, c); err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode delivery %d: store coordinates: %w", id, err)
	}

	return c, nil
}

// GeocodePending geocodes every delivery that has no coordinates yet.
// Per-delivery failures are logged and skipped; the count of resolved
// deliveries is returned.
func GeocodePending(
	ctx context.Context,
	repo ports.DeliveryRepository,
	geocoder ports.Geocoder,
	logger *zap.Logger,
) (int, error) {
	deliveries, err := repo.ListDeliveries(ctx)
	if err != nil {
		return 0, fmt.Errorf("geocode pending: list deliveries: %w", err)
	}

	resolved := 0
	for _, d := range deliveries {
		if _, ok := d.Coordinates(); ok {
			continue
		}

		if _, err := GeocodeDelivery(ctx, d.ID, repo, geocoder); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return resolved, fmt.Errorf("geocode pending: %w", err)
			}
			logger.Warn("geocode pending delivery failed", zap.Int("delivery_id", d.ID), zap.Error(err))
			continue
		}
		resolved++
	}

	return resolved, nil
}
