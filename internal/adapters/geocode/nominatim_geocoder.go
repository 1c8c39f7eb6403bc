package geocode

import (
	"context"
	"delivery-route-map/internal/domain"
	"delivery-route-map/internal/platform/obs"
	"delivery-route-map/internal/ports"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// nominatim returns coordinates as decimal strings.
type searchResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// NominatimGeocoder resolves addresses with an OpenStreetMap Nominatim
// instance (/search endpoint).
type NominatimGeocoder struct {
	session   *http.Client
	baseURL   string
	userAgent string
}

func NewNominatimGeocoder(baseURL, userAgent string) (*NominatimGeocoder, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("nominatim geocoder: base url is empty")
	}
	if strings.TrimSpace(userAgent) == "" {
		return nil, errors.New("nominatim geocoder: user agent is empty")
	}

	return &NominatimGeocoder{
		session:   &http.Client{Timeout: 8 * time.Second},
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
	}, nil
}

func (n *NominatimGeocoder) Name() string { return "nominatim" }

func (n *NominatimGeocoder) Geocode(ctx context.Context, address string) (_ domain.Coordinates, err error) {
	defer obs.Time(ctx, "nominatim.Geocode")(&err)

	req, err := n.newRequest(ctx, n.baseURL+"/search")
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("nominatim geocode: %w", err)
	}

	q := req.URL.Query()
	q.Set("q", address)
	q.Set("format", "json")
	q.Set("limit", "1")
	req.URL.RawQuery = q.Encode()

	resp, err := n.do(req)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("nominatim geocode: execute request: %w", err)
	}
	defer resp.Body.Close()

	var decoded []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Coordinates{}, fmt.Errorf("nominatim geocode: decode response: %w", err)
	}

	if len(decoded) == 0 {
		return domain.Coordinates{}, fmt.Errorf("nominatim geocode %q: %w", address, ports.ErrNoGeocodeResult)
	}

	lat, err := strconv.ParseFloat(decoded[0].Lat, 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("nominatim geocode: invalid lat %q: %w", decoded[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(decoded[0].Lon, 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("nominatim geocode: invalid lon %q: %w", decoded[0].Lon, err)
	}

	return domain.Coordinates{Lat: lat, Lng: lon}, nil
}
