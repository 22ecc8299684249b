package geocoder

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/geofence"
)

// NominatimClient resolves addresses through an OpenStreetMap Nominatim
// compatible search endpoint.
type NominatimClient struct {
	baseURL     string
	userAgent   string
	countryCode string
	httpClient  *http.Client
}

func NewNominatimClient(baseURL, userAgent, countryCode string, timeout time.Duration) *NominatimClient {
	return &NominatimClient{
		baseURL:     baseURL,
		userAgent:   userAgent,
		countryCode: countryCode,
		httpClient:  &http.Client{Timeout: timeout},
	}
}

type searchResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Geocode implements geofence.Geocoder.
func (c *NominatimClient) Geocode(ctx context.Context, address string) (geofence.GeoPoint, error) {
	if address == "" {
		return geofence.GeoPoint{}, geofence.ErrAddressNotFound
	}

	q := url.Values{}
	q.Set("q", address)
	q.Set("format", "jsonv2")
	q.Set("limit", "1")
	if c.countryCode != "" {
		q.Set("countrycodes", c.countryCode)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+q.Encode(), nil)
	if err != nil {
		return geofence.GeoPoint{}, fmt.Errorf("failed to build geocoding request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return geofence.GeoPoint{}, fmt.Errorf("geocoding request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return geofence.GeoPoint{}, fmt.Errorf("geocoding request failed: status %d", resp.StatusCode)
	}

	var results []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return geofence.GeoPoint{}, fmt.Errorf("failed to decode geocoding response: %w", err)
	}
	if len(results) == 0 {
		return geofence.GeoPoint{}, geofence.ErrAddressNotFound
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return geofence.GeoPoint{}, fmt.Errorf("invalid latitude in geocoding response: %w", err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return geofence.GeoPoint{}, fmt.Errorf("invalid longitude in geocoding response: %w", err)
	}

	return geofence.GeoPoint{Latitude: lat, Longitude: lon}, nil
}
