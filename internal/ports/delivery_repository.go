package ports

import (
	"context"
	"delivery-route-map/internal/domain"
)

// Port: a boundary for storing and retrieving Delivery entities.
type DeliveryRepository interface {
	// Retrieve all deliveries, newest first.
	ListDeliveries(ctx context.Context) ([]*domain.Delivery, error)
	GetDelivery(ctx context.Context, id int) (*domain.Delivery, error)
	AddDelivery(ctx context.Context, d domain.NewDelivery) (*domain.Delivery, error)
	UpdateCoordinates(ctx context.Context, id int, c domain.Coordinates) error
}
