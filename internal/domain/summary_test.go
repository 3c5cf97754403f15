package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeHazards(t *testing.T) {
	cfg := DefaultHazardConfig()

	t.Run("calm conditions are low", func(t *testing.T) {
		series := hourlySeries([]float64{0, 0, 0}, []float64{24, 26, 25})
		summary := SummarizeHazards(series, cfg)

		assert.Equal(t, HazardLow, summary.Heat)
		assert.Equal(t, HazardLow, summary.Storm)
		assert.Equal(t, 26.0, summary.MaxTempC)
	})

	t.Run("heat bands", func(t *testing.T) {
		medium := SummarizeHazards(hourlySeries([]float64{0}, []float64{36}), cfg)
		assert.Equal(t, HazardMedium, medium.Heat)

		high := SummarizeHazards(hourlySeries([]float64{0}, []float64{41}), cfg)
		assert.Equal(t, HazardHigh, high.Heat)
	})

	t.Run("storm bands", func(t *testing.T) {
		series := hourlySeries([]float64{0}, nil)
		series[0].WindKPH = 30
		assert.Equal(t, HazardMedium, SummarizeHazards(series, cfg).Storm)

		series[0].WindKPH = 60
		assert.Equal(t, HazardHigh, SummarizeHazards(series, cfg).Storm)
	})

	t.Run("maxima only cover the trailing window", func(t *testing.T) {
		temps := make([]float64, 30)
		for i := range temps {
			temps[i] = 20
		}
		temps[0] = 45 // outside the trailing 24 samples

		series := hourlySeries(make([]float64, 30), temps)
		summary := SummarizeHazards(series, cfg)

		assert.Equal(t, HazardLow, summary.Heat)
		assert.Equal(t, 20.0, summary.MaxTempC)
	})
}

func TestHazardConfig_Validate(t *testing.T) {
	require.NoError(t, DefaultHazardConfig().Validate())

	bad := DefaultHazardConfig()
	bad.HeatHighC = bad.HeatMediumC

	var cfgErr *ConfigurationError
	err := bad.Validate()
	require.Error(t, err)
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "HeatHighC", cfgErr.Field)
}

func TestRollingRainfall(t *testing.T) {
	series := hourlySeries([]float64{1, 2, 3, 4}, nil)

	assert.Equal(t, 7.0, RollingRainfall(series, 2))
	assert.Equal(t, 10.0, RollingRainfall(series, 24))
	assert.Equal(t, 0.0, RollingRainfall(series, 0))
}

func TestRainfallStdDev(t *testing.T) {
	assert.Equal(t, 0.0, RainfallStdDev(nil))
	assert.Equal(t, 0.0, RainfallStdDev(hourlySeries([]float64{5, 5, 5}, nil)))

	// Population stddev of {2, 4} is 1.
	assert.InDelta(t, 1.0, RainfallStdDev(hourlySeries([]float64{2, 4}, nil)), 1e-9)
}
