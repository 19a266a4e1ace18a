package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/terraincognita07/sitelog/internal/models"
)

const (
	DefaultForecastURL = "https://api.open-meteo.com/v1/forecast"
	DefaultArchiveURL  = "https://archive-api.open-meteo.com/v1/archive"
	weatherName        = "weather"
	dayLayout          = "2006-01-02"
)

// OpenMeteoWeather summarizes one day of hourly Open-Meteo data. Today is
// read from the forecast API, earlier days from the archive.
type OpenMeteoWeather struct {
	forecastURL string
	archiveURL  string
	client      *http.Client
	location    *time.Location
	now         func() time.Time
	observer    CallObserver
}

func NewOpenMeteoWeather(forecastURL string, archiveURL string, timeout time.Duration, location *time.Location, observer CallObserver) *OpenMeteoWeather {
	if strings.TrimSpace(forecastURL) == "" {
		forecastURL = DefaultForecastURL
	}
	if strings.TrimSpace(archiveURL) == "" {
		archiveURL = DefaultArchiveURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if location == nil {
		location = time.UTC
	}
	return &OpenMeteoWeather{
		forecastURL: forecastURL,
		archiveURL:  archiveURL,
		client:      &http.Client{Timeout: timeout},
		location:    location,
		now:         time.Now,
		observer:    observer,
	}
}

type hourlySeries struct {
	Hourly struct {
		Temperature []*float64 `json:"temperature_2m"`
		WeatherCode []*float64 `json:"weather_code"`
	} `json:"hourly"`
}

func (weather *OpenMeteoWeather) WeatherFor(ctx context.Context, latitude float64, longitude float64, day time.Time) (models.WeatherSnapshot, bool, error) {
	snapshot, found, err := weather.fetch(ctx, latitude, longitude, day)
	switch {
	case err != nil:
		observe(weather.observer, weatherName, outcomeFailure)
	case !found:
		observe(weather.observer, weatherName, outcomeEmpty)
	default:
		observe(weather.observer, weatherName, outcomeOK)
	}
	return snapshot, found, err
}

func (weather *OpenMeteoWeather) fetch(ctx context.Context, latitude float64, longitude float64, day time.Time) (models.WeatherSnapshot, bool, error) {
	date := day.In(weather.location).Format(dayLayout)
	endpoint := weather.archiveURL
	if date >= weather.now().In(weather.location).Format(dayLayout) {
		endpoint = weather.forecastURL
	}

	query := url.Values{}
	query.Set("latitude", strconv.FormatFloat(latitude, 'f', -1, 64))
	query.Set("longitude", strconv.FormatFloat(longitude, 'f', -1, 64))
	query.Set("start_date", date)
	query.Set("end_date", date)
	query.Set("hourly", "temperature_2m,weather_code")
	query.Set("timezone", "auto")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return models.WeatherSnapshot{}, false, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := weather.client.Do(req)
	if err != nil {
		return models.WeatherSnapshot{}, false, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return models.WeatherSnapshot{}, false, fmt.Errorf("weather status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var series hourlySeries
	if err := json.NewDecoder(resp.Body).Decode(&series); err != nil {
		return models.WeatherSnapshot{}, false, fmt.Errorf("decode response: %w", err)
	}

	snapshot, ok := summarize(series.Hourly.Temperature, series.Hourly.WeatherCode)
	if !ok {
		return models.WeatherSnapshot{}, false, nil
	}
	snapshot.Date = date
	return snapshot, true, nil
}

// summarize takes the day's maximum temperature and its most frequent
// weather code. Ties go to the lower code. Missing hours are skipped.
func summarize(temperatures []*float64, codes []*float64) (models.WeatherSnapshot, bool) {
	maxTemperature := math.Inf(-1)
	for _, temperature := range temperatures {
		if temperature != nil && *temperature > maxTemperature {
			maxTemperature = *temperature
		}
	}

	counts := make(map[int]int, len(codes))
	for _, code := range codes {
		if code != nil {
			counts[int(*code)]++
		}
	}
	if math.IsInf(maxTemperature, -1) || len(counts) == 0 {
		return models.WeatherSnapshot{}, false
	}

	commonCode, commonCount := 0, 0
	for code, count := range counts {
		if count > commonCount || (count == commonCount && code < commonCode) {
			commonCode, commonCount = code, count
		}
	}

	condition := conditionFor(commonCode)
	return models.WeatherSnapshot{
		Temperature: int(math.Floor(maxTemperature + 0.5)),
		Description: condition.description,
		Icon:        condition.icon,
	}, true
}
