// Package forecast orchestrates the geocode, fetch, classify, and
// summarize stages that turn a city name into a flood-insights report.
package forecast

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/flood-insights-service/internal/domain"
	"github.com/couchcryptid/flood-insights-service/internal/observability"
)

// Geocoder resolves a city name to a location.
type Geocoder interface {
	Geocode(ctx context.Context, city string) (domain.Location, error)
}

// WeatherProvider fetches the hourly series for a coordinate. The returned
// series is already validated at the provider boundary.
type WeatherProvider interface {
	HourlyForecast(ctx context.Context, lat, lon float64) (domain.WeatherSeries, error)
}

// Report is the full payload rendered by the dashboard: the series, its
// aggregates, the flood-risk assessment, and advisory text.
type Report struct {
	RequestID string               `json:"request_id"`
	Location  string               `json:"location"`
	Lat       float64              `json:"lat"`
	Lon       float64              `json:"lon"`
	Series    domain.WeatherSeries `json:"series"`

	RollingShortMM float64 `json:"rolling_short_mm"`
	RollingLongMM  float64 `json:"rolling_long_mm"`
	RainfallStdDev float64 `json:"rainfall_std_dev"`

	Hazards    domain.HazardSummary       `json:"hazards"`
	Assessment domain.FloodRiskAssessment `json:"assessment"`
	Advisories domain.AdvisorySet         `json:"advisories"`

	GeneratedAt time.Time `json:"generated_at"`
}

// readinessFailureThreshold is the consecutive-provider-failure streak
// after which /readyz starts failing. One flaky call should not pull the
// instance out of rotation.
const readinessFailureThreshold = 3

// Options carries the aggregate windows and hazard thresholds the service
// applies around the classifier.
type Options struct {
	RollingShortHours int
	RollingLongHours  int
	Hazards           domain.HazardConfig
}

// Service builds forecast reports. Safe for concurrent use.
type Service struct {
	geocoder   Geocoder
	provider   WeatherProvider
	classifier *domain.Classifier
	opts       Options

	logger  *slog.Logger
	metrics *observability.Metrics
	clock   clockwork.Clock

	failStreak atomic.Int64
}

// NewService wires the forecast stages together. Pass a nil clock for
// real time.
func NewService(
	geocoder Geocoder,
	provider WeatherProvider,
	classifier *domain.Classifier,
	opts Options,
	logger *slog.Logger,
	metrics *observability.Metrics,
	clock clockwork.Clock,
) (*Service, error) {
	if opts.RollingShortHours < 1 || opts.RollingLongHours < 1 {
		return nil, &domain.ConfigurationError{Field: "RollingHours", Reason: "windows must be at least 1"}
	}
	if err := opts.Hazards.Validate(); err != nil {
		return nil, err
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &Service{
		geocoder:   geocoder,
		provider:   provider,
		classifier: classifier,
		opts:       opts,
		logger:     logger,
		metrics:    metrics,
		clock:      clock,
	}, nil
}

// CityForecast resolves the city, fetches its hourly series, and builds
// the report.
func (s *Service) CityForecast(ctx context.Context, city string) (Report, error) {
	location, err := s.geocoder.Geocode(ctx, city)
	if err != nil {
		if errors.Is(err, domain.ErrLocationNotFound) {
			s.metrics.ForecastRequests.WithLabelValues("not_found").Inc()
			return Report{}, err
		}
		s.recordProviderFailure()
		s.metrics.ForecastRequests.WithLabelValues("provider_error").Inc()
		return Report{}, fmt.Errorf("geocode city: %w", err)
	}

	series, err := s.provider.HourlyForecast(ctx, location.Lat, location.Lon)
	if err != nil {
		s.recordProviderFailure()
		s.metrics.ForecastRequests.WithLabelValues("provider_error").Inc()
		return Report{}, fmt.Errorf("fetch hourly forecast: %w", err)
	}
	s.failStreak.Store(0)

	report, err := s.buildReport(location, series)
	if err != nil {
		s.metrics.ForecastRequests.WithLabelValues("invalid_input").Inc()
		return Report{}, err
	}

	s.metrics.ForecastRequests.WithLabelValues("success").Inc()
	s.logger.Info("forecast report built",
		"request_id", report.RequestID,
		"location", report.Location,
		"samples", len(report.Series),
		"risk_level", report.Assessment.RiskLevel,
	)
	return report, nil
}

// Assess runs the classifier over a caller-supplied series. This is the
// raw classifier boundary; series validation errors pass through
// unchanged.
func (s *Service) Assess(series domain.WeatherSeries) (domain.FloodRiskAssessment, error) {
	assessment, err := s.classifier.Assess(series)
	if err != nil {
		return domain.FloodRiskAssessment{}, err
	}
	s.metrics.Assessments.WithLabelValues(string(assessment.RiskLevel)).Inc()
	return assessment, nil
}

// CheckReadiness fails after a streak of consecutive provider failures and
// recovers on the next success. A freshly started instance is ready.
func (s *Service) CheckReadiness(_ context.Context) error {
	if streak := s.failStreak.Load(); streak >= readinessFailureThreshold {
		return fmt.Errorf("weather provider unreachable: %d consecutive failures", streak)
	}
	return nil
}

func (s *Service) buildReport(location domain.Location, series domain.WeatherSeries) (Report, error) {
	assessment, err := s.Assess(series)
	if err != nil {
		return Report{}, err
	}

	hazards := domain.SummarizeHazards(series, s.opts.Hazards)

	return Report{
		RequestID:      uuid.NewString(),
		Location:       location.Label(),
		Lat:            location.Lat,
		Lon:            location.Lon,
		Series:         series,
		RollingShortMM: domain.RollingRainfall(series, s.opts.RollingShortHours),
		RollingLongMM:  domain.RollingRainfall(series, s.opts.RollingLongHours),
		RainfallStdDev: domain.RainfallStdDev(series),
		Hazards:        hazards,
		Assessment:     assessment,
		Advisories:     domain.BuildAdvisories(assessment.RiskLevel, hazards),
		GeneratedAt:    s.clock.Now().UTC(),
	}, nil
}

func (s *Service) recordProviderFailure() {
	if streak := s.failStreak.Add(1); streak == readinessFailureThreshold {
		s.logger.Warn("provider failure streak reached readiness threshold", "streak", streak)
	}
}
