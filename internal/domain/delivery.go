package domain

import (
	"errors"
	"strconv"
	"time"
)

var ErrDeliveryNotFound = errors.New("delivery not found")

// Represents a single delivery handled by the system.
// A Delivery has a free-form address used verbatim as a routing waypoint.
// Coordinates are populated by geocoding and stay nil until then.
type Delivery struct {
	ID        int
	Address   string
	City      string
	Notes     string
	Lat       *float64
	Lon       *float64
	Delivered bool
	CreatedAt time.Time
}

// Coordinates reports the geocoded position, if any.
func (d *Delivery) Coordinates() (Coordinates, bool) {
	if d.Lat == nil || d.Lon == nil {
		return Coordinates{}, false
	}
	return Coordinates{Lat: *d.Lat, Lng: *d.Lon}, true
}

// GeocodeQuery is the free-text query used to resolve the delivery position.
func (d *Delivery) GeocodeQuery() string {
	if d.City == "" {
		return d.Address
	}
	return d.Address + ", " + d.City
}

// Input for creating a delivery.
type NewDelivery struct {
	Address string
	City    string
	Notes   string
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
