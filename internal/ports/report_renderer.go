package ports

import (
	"delivery-route-map/internal/domain"
	"io"
)

// Renders a printable delivery report.
type ReportRenderer interface {
	RenderDeliveries(w io.Writer, deliveries []*domain.Delivery) error
}
