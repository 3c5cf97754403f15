package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/flood-insights-service/internal/domain"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Open-Meteo provider configuration.
	GeocodeBaseURL   string
	ForecastBaseURL  string
	ProviderTimeout  time.Duration
	ProviderRetryMax int
	GeocodeCacheSize int

	// ForecastHours bounds the hourly window requested from the provider.
	ForecastHours int

	// Flood classifier thresholds and windows.
	RainHeavyMM      float64
	RainSevereMM     float64
	RainLowMM        float64
	TempDropC        float64
	TempDropLookback int
	SustainedSamples int

	// Heat and storm hazard thresholds.
	HeatMediumC    float64
	HeatHighC      float64
	StormMediumKPH float64
	StormHighKPH   float64

	// Rolling rainfall aggregate windows, in samples (hours).
	RollingShortHours int
	RollingLongHours  int
}

// Load reads configuration from environment variables, applying defaults
// where unset. Invalid values fail here so misconfiguration surfaces at
// startup, not on the first request.
func Load() (*Config, error) {
	riskDefaults := domain.DefaultRiskConfig()
	hazardDefaults := domain.DefaultHazardConfig()

	cfg := &Config{
		HTTPAddr:  envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:  envOrDefault("LOG_LEVEL", "info"),
		LogFormat: envOrDefault("LOG_FORMAT", "json"),

		GeocodeBaseURL:  envOrDefault("OPENMETEO_GEOCODE_URL", "https://geocoding-api.open-meteo.com/v1/search"),
		ForecastBaseURL: envOrDefault("OPENMETEO_FORECAST_URL", "https://api.open-meteo.com/v1/forecast"),
	}

	var err error
	if cfg.ShutdownTimeout, err = envDuration("SHUTDOWN_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.ProviderTimeout, err = envDuration("OPENMETEO_TIMEOUT", 20*time.Second); err != nil {
		return nil, err
	}
	if cfg.ProviderRetryMax, err = envInt("OPENMETEO_RETRY_MAX", 3, 0, 10); err != nil {
		return nil, err
	}
	if cfg.GeocodeCacheSize, err = envInt("GEOCODE_CACHE_SIZE", 1000, 1, 1_000_000); err != nil {
		return nil, err
	}
	if cfg.ForecastHours, err = envInt("FORECAST_HOURS", 120, 1, 16*24); err != nil {
		return nil, err
	}

	if cfg.RainHeavyMM, err = envFloat("RAIN_HEAVY_MM", riskDefaults.HeavyRainfallMM); err != nil {
		return nil, err
	}
	if cfg.RainSevereMM, err = envFloat("RAIN_SEVERE_MM", riskDefaults.SevereRainfallMM); err != nil {
		return nil, err
	}
	if cfg.RainLowMM, err = envFloat("RAIN_LOW_MM", riskDefaults.LowRainfallMM); err != nil {
		return nil, err
	}
	if cfg.TempDropC, err = envFloat("TEMP_DROP_C", riskDefaults.TempDropC); err != nil {
		return nil, err
	}
	if cfg.TempDropLookback, err = envInt("TEMP_DROP_LOOKBACK", riskDefaults.TempLookback, 1, 1000); err != nil {
		return nil, err
	}
	if cfg.SustainedSamples, err = envInt("SUSTAINED_SAMPLES", riskDefaults.SustainedSamples, 1, 1000); err != nil {
		return nil, err
	}

	if cfg.HeatMediumC, err = envFloat("HEAT_MEDIUM_C", hazardDefaults.HeatMediumC); err != nil {
		return nil, err
	}
	if cfg.HeatHighC, err = envFloat("HEAT_HIGH_C", hazardDefaults.HeatHighC); err != nil {
		return nil, err
	}
	if cfg.StormMediumKPH, err = envFloat("STORM_MEDIUM_KPH", hazardDefaults.StormMediumKPH); err != nil {
		return nil, err
	}
	if cfg.StormHighKPH, err = envFloat("STORM_HIGH_KPH", hazardDefaults.StormHighKPH); err != nil {
		return nil, err
	}

	if cfg.RollingShortHours, err = envInt("ROLLING_SHORT_HOURS", 24, 1, 16*24); err != nil {
		return nil, err
	}
	if cfg.RollingLongHours, err = envInt("ROLLING_LONG_HOURS", 72, 1, 16*24); err != nil {
		return nil, err
	}

	// Threshold consistency is owned by the domain validators; surfacing
	// their errors here keeps ConfigurationError at initialization time.
	if err := cfg.RiskConfig().Validate(); err != nil {
		return nil, err
	}
	if err := cfg.HazardConfig().Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// RiskConfig assembles the classifier configuration.
func (c *Config) RiskConfig() domain.RiskConfig {
	return domain.RiskConfig{
		HeavyRainfallMM:  c.RainHeavyMM,
		SevereRainfallMM: c.RainSevereMM,
		LowRainfallMM:    c.RainLowMM,
		TempDropC:        c.TempDropC,
		TempLookback:     c.TempDropLookback,
		SustainedSamples: c.SustainedSamples,
	}
}

// HazardConfig assembles the heat/storm summary configuration.
func (c *Config) HazardConfig() domain.HazardConfig {
	return domain.HazardConfig{
		HeatMediumC:     c.HeatMediumC,
		HeatHighC:       c.HeatHighC,
		StormMediumKPH:  c.StormMediumKPH,
		StormHighKPH:    c.StormHighKPH,
		TrailingSamples: c.RollingShortHours,
	}
}

func envOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s: must be a positive duration, got %q", key, v)
	}
	return d, nil
}

func envInt(key string, fallback, minValue, maxValue int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < minValue || n > maxValue {
		return 0, fmt.Errorf("%s: must be an integer in [%d,%d], got %q", key, minValue, maxValue, v)
	}
	return n, nil
}

func envFloat(key string, fallback float64) (float64, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: must be a number, got %q", key, v)
	}
	return f, nil
}
