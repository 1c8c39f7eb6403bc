package dto

import "time"

type DeliveryResponse struct {
	ID        int       `json:"id"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
	Notes     string    `json:"notes"`
	Lat       *float64  `json:"lat"`
	Lon       *float64  `json:"lon"`
	Delivered bool      `json:"delivered"`
	CreatedAt time.Time `json:"created_at"`
}

type ListDeliveriesResponse struct {
	Deliveries []DeliveryResponse `json:"deliveries"`
}

type CreateDeliveryRequest struct {
	Address string `json:"address" binding:"required"`
	City    string `json:"city"`
	Notes   string `json:"notes"`
}

type GeocodeResponse struct {
	OK  bool    `json:"ok"`
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}
