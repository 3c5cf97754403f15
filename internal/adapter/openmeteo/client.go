// Package openmeteo adapts the Open-Meteo geocoding and forecast APIs to
// the domain model. Responses are validated strictly at this boundary so
// the classifier never sees a malformed series.
package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/couchcryptid/flood-insights-service/internal/config"
	"github.com/couchcryptid/flood-insights-service/internal/domain"
	"github.com/couchcryptid/flood-insights-service/internal/observability"
)

// hourlyTimeLayout is the ISO-8601 minute-resolution format Open-Meteo
// uses for hourly timestamps when a named timezone is requested.
const hourlyTimeLayout = "2006-01-02T15:04"

// hourlyVariables matches the upstream dashboard's variable selection.
const hourlyVariables = "temperature_2m,precipitation,relativehumidity_2m,windspeed_10m"

// Client calls the Open-Meteo geocoding and forecast APIs.
type Client struct {
	geocodeBaseURL  string
	forecastBaseURL string
	forecastHours   int
	httpClient      *http.Client
	metrics         *observability.Metrics
	logger          *slog.Logger
}

// NewClient creates an Open-Meteo client with bounded retries on transport
// and 5xx failures.
func NewClient(cfg *config.Config, metrics *observability.Metrics, logger *slog.Logger) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = cfg.ProviderRetryMax
	rc.HTTPClient.Timeout = cfg.ProviderTimeout
	rc.Logger = nil

	return &Client{
		geocodeBaseURL:  cfg.GeocodeBaseURL,
		forecastBaseURL: cfg.ForecastBaseURL,
		forecastHours:   cfg.ForecastHours,
		httpClient:      rc.StandardClient(),
		metrics:         metrics,
		logger:          logger,
	}
}

// Geocode resolves a city name to a location. Returns
// domain.ErrLocationNotFound when the API has no match.
func (c *Client) Geocode(ctx context.Context, city string) (domain.Location, error) {
	params := url.Values{
		"name":     {city},
		"count":    {"1"},
		"language": {"en"},
	}

	body, err := c.get(ctx, "geocode", c.geocodeBaseURL+"?"+params.Encode())
	if err != nil {
		return domain.Location{}, err
	}

	var resp geocodeResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return domain.Location{}, fmt.Errorf("decode geocode response: %w", err)
	}
	if len(resp.Results) == 0 {
		return domain.Location{}, fmt.Errorf("geocode %q: %w", city, domain.ErrLocationNotFound)
	}

	r := resp.Results[0]
	return domain.Location{
		Name:    r.Name,
		Country: r.Country,
		Lat:     r.Latitude,
		Lon:     r.Longitude,
	}, nil
}

// HourlyForecast fetches the hourly window for a coordinate and converts
// it into a validated WeatherSeries.
func (c *Client) HourlyForecast(ctx context.Context, lat, lon float64) (domain.WeatherSeries, error) {
	params := url.Values{
		"latitude":       {formatCoord(lat)},
		"longitude":      {formatCoord(lon)},
		"hourly":         {hourlyVariables},
		"forecast_hours": {strconv.Itoa(c.forecastHours)},
		"timezone":       {"UTC"},
	}

	body, err := c.get(ctx, "forecast", c.forecastBaseURL+"?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var resp forecastResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode forecast response: %w", err)
	}

	series, err := resp.Hourly.toSeries()
	if err != nil {
		return nil, err
	}
	if err := series.Validate(); err != nil {
		return nil, fmt.Errorf("provider returned malformed series: %w", err)
	}
	return series, nil
}

func (c *Client) get(ctx context.Context, endpoint, fullURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create %s request: %w", endpoint, err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.ProviderDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.ProviderRequests.WithLabelValues(endpoint, "error").Inc()
		return nil, fmt.Errorf("%s request: %w", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.ProviderRequests.WithLabelValues(endpoint, "error").Inc()
		return nil, fmt.Errorf("read %s response: %w", endpoint, err)
	}

	if resp.StatusCode != http.StatusOK {
		c.metrics.ProviderRequests.WithLabelValues(endpoint, "error").Inc()
		return nil, fmt.Errorf("open-meteo %s API: status %d: %s", endpoint, resp.StatusCode, body)
	}

	c.metrics.ProviderRequests.WithLabelValues(endpoint, "success").Inc()
	return body, nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

// Open-Meteo API response types.

type geocodeResponse struct {
	Results []geocodeResult `json:"results"`
}

type geocodeResult struct {
	Name      string  `json:"name"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type forecastResponse struct {
	Hourly hourlyBlock `json:"hourly"`
}

// hourlyBlock uses pointer slices so upstream nulls are detected instead
// of silently becoming zeros.
type hourlyBlock struct {
	Time             []string   `json:"time"`
	Temperature2M    []*float64 `json:"temperature_2m"`
	Precipitation    []*float64 `json:"precipitation"`
	RelativeHumidity []*float64 `json:"relativehumidity_2m"`
	WindSpeed10M     []*float64 `json:"windspeed_10m"`
}

// toSeries converts the column-oriented hourly block into samples,
// rejecting ragged arrays, null values, and unparseable timestamps.
func (h hourlyBlock) toSeries() (domain.WeatherSeries, error) {
	n := len(h.Time)
	if n == 0 {
		return nil, fmt.Errorf("forecast response has no hourly data")
	}
	if len(h.Temperature2M) != n || len(h.Precipitation) != n ||
		len(h.RelativeHumidity) != n || len(h.WindSpeed10M) != n {
		return nil, fmt.Errorf("forecast response arrays have mismatched lengths")
	}

	series := make(domain.WeatherSeries, 0, n)
	for i := 0; i < n; i++ {
		ts, err := time.Parse(hourlyTimeLayout, h.Time[i])
		if err != nil {
			return nil, fmt.Errorf("parse hourly timestamp %q: %w", h.Time[i], err)
		}

		if h.Temperature2M[i] == nil || h.Precipitation[i] == nil ||
			h.RelativeHumidity[i] == nil || h.WindSpeed10M[i] == nil {
			return nil, fmt.Errorf("forecast response has null value at index %d", i)
		}

		series = append(series, domain.WeatherSample{
			Timestamp:    ts.UTC(),
			RainfallMM:   *h.Precipitation[i],
			TemperatureC: *h.Temperature2M[i],
			WindKPH:      *h.WindSpeed10M[i],
			HumidityPct:  *h.RelativeHumidity[i],
		})
	}
	return series, nil
}
