package domain

import "math"

// HazardLevel grades non-flood hazards. Unlike RiskLevel these follow the
// advisory system's three-step scale in lowercase, matching the wording
// used in the rendered advisories.
type HazardLevel string

const (
	HazardLow    HazardLevel = "low"
	HazardMedium HazardLevel = "medium"
	HazardHigh   HazardLevel = "high"
)

// HazardConfig holds the heat and storm thresholds. Wind values are km/h,
// Open-Meteo's native windspeed_10m unit.
type HazardConfig struct {
	HeatMediumC    float64
	HeatHighC      float64
	StormMediumKPH float64
	StormHighKPH   float64

	// TrailingSamples bounds the window the maxima are taken over.
	TrailingSamples int
}

// DefaultHazardConfig returns the advisory defaults: 35/40 degC heat bands
// and 29/54 km/h wind bands (8 and 15 m/s) over the trailing 24 hours.
func DefaultHazardConfig() HazardConfig {
	return HazardConfig{
		HeatMediumC:     35,
		HeatHighC:       40,
		StormMediumKPH:  29,
		StormHighKPH:    54,
		TrailingSamples: 24,
	}
}

// Validate returns a *ConfigurationError for the first invalid field.
func (c HazardConfig) Validate() error {
	switch {
	case c.HeatMediumC <= 0:
		return &ConfigurationError{Field: "HeatMediumC", Reason: "must be positive"}
	case c.HeatHighC <= c.HeatMediumC:
		return &ConfigurationError{Field: "HeatHighC", Reason: "must exceed HeatMediumC"}
	case c.StormMediumKPH <= 0:
		return &ConfigurationError{Field: "StormMediumKPH", Reason: "must be positive"}
	case c.StormHighKPH <= c.StormMediumKPH:
		return &ConfigurationError{Field: "StormHighKPH", Reason: "must exceed StormMediumKPH"}
	case c.TrailingSamples < 1:
		return &ConfigurationError{Field: "TrailingSamples", Reason: "must be at least 1"}
	}
	return nil
}

// HazardSummary grades heat and storm exposure from trailing maxima.
type HazardSummary struct {
	Heat       HazardLevel `json:"heat"`
	Storm      HazardLevel `json:"storm"`
	MaxTempC   float64     `json:"max_temp_c"`
	MaxWindKPH float64     `json:"max_wind_kph"`
}

// SummarizeHazards grades the trailing window of the series. The series
// must be non-empty and cfg validated; callers reach this after the
// boundary checks.
func SummarizeHazards(series WeatherSeries, cfg HazardConfig) HazardSummary {
	window := series.Tail(cfg.TrailingSamples)

	maxTemp := math.Inf(-1)
	maxWind := 0.0
	for _, sample := range window {
		maxTemp = math.Max(maxTemp, sample.TemperatureC)
		maxWind = math.Max(maxWind, sample.WindKPH)
	}

	return HazardSummary{
		Heat:       gradeHazard(maxTemp, cfg.HeatMediumC, cfg.HeatHighC),
		Storm:      gradeHazard(maxWind, cfg.StormMediumKPH, cfg.StormHighKPH),
		MaxTempC:   maxTemp,
		MaxWindKPH: maxWind,
	}
}

func gradeHazard(value, medium, high float64) HazardLevel {
	switch {
	case value >= high:
		return HazardHigh
	case value >= medium:
		return HazardMedium
	default:
		return HazardLow
	}
}

// RollingRainfall sums rainfall over the trailing n samples, or the whole
// series when shorter.
func RollingRainfall(series WeatherSeries, n int) float64 {
	total := 0.0
	for _, sample := range series.Tail(n) {
		total += sample.RainfallMM
	}
	return total
}

// RainfallStdDev is the population standard deviation of rainfall across
// the whole series. Zero for an empty series.
func RainfallStdDev(series WeatherSeries) float64 {
	if len(series) == 0 {
		return 0
	}

	mean := 0.0
	for _, sample := range series {
		mean += sample.RainfallMM
	}
	mean /= float64(len(series))

	variance := 0.0
	for _, sample := range series {
		d := sample.RainfallMM - mean
		variance += d * d
	}
	variance /= float64(len(series))

	return math.Sqrt(variance)
}
