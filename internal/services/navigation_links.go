package services

import (
	"delivery-route-map/internal/domain"
	"net/url"
)

// WazeLink opens turn-by-turn navigation to the delivery in Waze.
// Coordinates are preferred; the address is used as a search query otherwise.
func WazeLink(d *domain.Delivery) string {
	if c, ok := d.Coordinates(); ok {
		return "https://waze.com/ul?ll=" + c.String() + "&navigate=yes"
	}
	return "https://waze.com/ul?q=" + url.QueryEscape(d.Address) + "&navigate=yes"
}

// GoogleMapsLink opens directions (or a search, without coordinates) in Google Maps.
func GoogleMapsLink(d *domain.Delivery) string {
	if c, ok := d.Coordinates(); ok {
		return "https://www.google.com/maps/dir/?api=1&destination=" + c.String()
	}
	return "https://www.google.com/maps/search/" + url.QueryEscape(d.Address)
}
