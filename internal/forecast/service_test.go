package forecast

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/flood-insights-service/internal/domain"
	"github.com/couchcryptid/flood-insights-service/internal/observability"
)

var (
	testStart = time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	testNow   = time.Date(2026, 8, 23, 6, 0, 0, 0, time.UTC)
)

type stubGeocoder struct {
	loc   domain.Location
	err   error
	calls int
}

func (s *stubGeocoder) Geocode(_ context.Context, _ string) (domain.Location, error) {
	s.calls++
	return s.loc, s.err
}

type stubProvider struct {
	series domain.WeatherSeries
	err    error
}

func (s *stubProvider) HourlyForecast(_ context.Context, _, _ float64) (domain.WeatherSeries, error) {
	return s.series, s.err
}

func testSeries(rain []float64) domain.WeatherSeries {
	series := make(domain.WeatherSeries, len(rain))
	for i := range rain {
		series[i] = domain.WeatherSample{
			Timestamp:    testStart.Add(time.Duration(i) * time.Hour),
			RainfallMM:   rain[i],
			TemperatureC: 26,
			WindKPH:      8,
			HumidityPct:  70,
		}
	}
	return series
}

func newTestService(t *testing.T, geocoder Geocoder, provider WeatherProvider) *Service {
	t.Helper()

	classifier, err := domain.NewClassifier(domain.DefaultRiskConfig())
	require.NoError(t, err)

	svc, err := NewService(geocoder, provider, classifier, Options{
		RollingShortHours: 24,
		RollingLongHours:  72,
		Hazards:           domain.DefaultHazardConfig(),
	},
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		observability.NewMetricsForTesting(),
		clockwork.NewFakeClockAt(testNow),
	)
	require.NoError(t, err)
	return svc
}

func TestService_CityForecast(t *testing.T) {
	geocoder := &stubGeocoder{loc: domain.Location{Name: "Pune", Country: "India", Lat: 18.52, Lon: 73.86}}
	provider := &stubProvider{series: testSeries([]float64{2, 3, 4, 5, 80})}
	svc := newTestService(t, geocoder, provider)

	report, err := svc.CityForecast(context.Background(), "Pune")
	require.NoError(t, err)

	assert.NotEmpty(t, report.RequestID)
	assert.Equal(t, "Pune, India", report.Location)
	assert.Equal(t, 18.52, report.Lat)
	assert.Len(t, report.Series, 5)
	assert.Equal(t, 94.0, report.RollingShortMM)
	assert.Equal(t, 94.0, report.RollingLongMM)
	assert.Equal(t, domain.RiskHigh, report.Assessment.RiskLevel)
	assert.Contains(t, report.Assessment.TriggeredReasons, domain.ReasonHeavyRainfall)
	assert.Contains(t, report.Advisories.English, "High flood risk")
	assert.Equal(t, testNow, report.GeneratedAt)
}

func TestService_CityForecast_LocationNotFound(t *testing.T) {
	geocoder := &stubGeocoder{err: domain.ErrLocationNotFound}
	svc := newTestService(t, geocoder, &stubProvider{})

	_, err := svc.CityForecast(context.Background(), "Nowhereville")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrLocationNotFound))

	// Unknown cities are a caller problem, not a provider outage.
	require.NoError(t, svc.CheckReadiness(context.Background()))
}

func TestService_CityForecast_ProviderError(t *testing.T) {
	geocoder := &stubGeocoder{loc: domain.Location{Name: "Pune"}}
	provider := &stubProvider{err: errors.New("connection reset")}
	svc := newTestService(t, geocoder, provider)

	_, err := svc.CityForecast(context.Background(), "Pune")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch hourly forecast")
}

func TestService_Readiness_FailureStreak(t *testing.T) {
	geocoder := &stubGeocoder{loc: domain.Location{Name: "Pune"}}
	provider := &stubProvider{err: errors.New("connection reset")}
	svc := newTestService(t, geocoder, provider)

	require.NoError(t, svc.CheckReadiness(context.Background()))

	for i := 0; i < readinessFailureThreshold; i++ {
		_, err := svc.CityForecast(context.Background(), "Pune")
		require.Error(t, err)
	}
	require.Error(t, svc.CheckReadiness(context.Background()))

	// A successful fetch resets the streak.
	provider.err = nil
	provider.series = testSeries([]float64{0, 0, 0})
	_, err := svc.CityForecast(context.Background(), "Pune")
	require.NoError(t, err)
	require.NoError(t, svc.CheckReadiness(context.Background()))
}

func TestService_Assess(t *testing.T) {
	svc := newTestService(t, &stubGeocoder{}, &stubProvider{})

	t.Run("valid series", func(t *testing.T) {
		assessment, err := svc.Assess(testSeries([]float64{12, 12, 12, 12, 12}))
		require.NoError(t, err)
		assert.Equal(t, domain.RiskModerate, assessment.RiskLevel)
	})

	t.Run("invalid series surfaces InvalidInputError", func(t *testing.T) {
		_, err := svc.Assess(nil)
		require.Error(t, err)

		var inputErr *domain.InvalidInputError
		assert.ErrorAs(t, err, &inputErr)
	})
}

func TestService_CityForecast_Deterministic(t *testing.T) {
	geocoder := &stubGeocoder{loc: domain.Location{Name: "Pune", Country: "India"}}
	provider := &stubProvider{series: testSeries([]float64{12, 12, 12, 12, 12, 12})}
	svc := newTestService(t, geocoder, provider)

	first, err := svc.CityForecast(context.Background(), "Pune")
	require.NoError(t, err)
	second, err := svc.CityForecast(context.Background(), "Pune")
	require.NoError(t, err)

	// Request IDs differ by design; everything derived from the series
	// must match.
	first.RequestID = ""
	second.RequestID = ""
	assert.Equal(t, first, second)
}
