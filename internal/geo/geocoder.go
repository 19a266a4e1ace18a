package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/terraincognita07/sitelog/internal/services"
	"golang.org/x/time/rate"
)

const (
	DefaultGeocoderURL = "https://nominatim.openstreetmap.org/search"
	geocoderName       = "geocoder"
	userAgent          = "sitelog/1.0"
)

// NominatimGeocoder resolves addresses with a Nominatim search endpoint.
// Requests are throttled to the configured rate; the public instance allows
// one per second.
type NominatimGeocoder struct {
	endpoint string
	client   *http.Client
	limiter  *rate.Limiter
	observer CallObserver
}

func NewNominatimGeocoder(endpoint string, requestsPerSecond float64, timeout time.Duration, observer CallObserver) *NominatimGeocoder {
	if strings.TrimSpace(endpoint) == "" {
		endpoint = DefaultGeocoderURL
	}
	if requestsPerSecond <= 0 {
		requestsPerSecond = 1
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &NominatimGeocoder{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
		limiter:  rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
		observer: observer,
	}
}

type nominatimPlace struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

func (geocoder *NominatimGeocoder) Geocode(ctx context.Context, address string) (services.Coordinates, bool, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return services.Coordinates{}, false, nil
	}
	coordinates, found, err := geocoder.lookup(ctx, address)
	switch {
	case err != nil:
		observe(geocoder.observer, geocoderName, outcomeFailure)
	case !found:
		observe(geocoder.observer, geocoderName, outcomeEmpty)
	default:
		observe(geocoder.observer, geocoderName, outcomeOK)
	}
	return coordinates, found, err
}

func (geocoder *NominatimGeocoder) lookup(ctx context.Context, address string) (services.Coordinates, bool, error) {
	if err := geocoder.limiter.Wait(ctx); err != nil {
		return services.Coordinates{}, false, fmt.Errorf("wait for rate limit: %w", err)
	}

	query := url.Values{}
	query.Set("format", "json")
	query.Set("q", address)
	query.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, geocoder.endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return services.Coordinates{}, false, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := geocoder.client.Do(req)
	if err != nil {
		return services.Coordinates{}, false, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return services.Coordinates{}, false, fmt.Errorf("geocoder status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var places []nominatimPlace
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return services.Coordinates{}, false, fmt.Errorf("decode response: %w", err)
	}
	if len(places) == 0 {
		return services.Coordinates{}, false, nil
	}

	latitude, err := strconv.ParseFloat(places[0].Lat, 64)
	if err != nil {
		return services.Coordinates{}, false, fmt.Errorf("parse latitude %q: %w", places[0].Lat, err)
	}
	longitude, err := strconv.ParseFloat(places[0].Lon, 64)
	if err != nil {
		return services.Coordinates{}, false, fmt.Errorf("parse longitude %q: %w", places[0].Lon, err)
	}
	return services.Coordinates{Latitude: latitude, Longitude: longitude}, true, nil
}
