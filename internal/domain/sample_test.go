package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeatherSeries_Validate(t *testing.T) {
	valid := hourlySeries([]float64{0, 1, 2}, nil)

	t.Run("well-formed series", func(t *testing.T) {
		require.NoError(t, valid.Validate())
	})

	tests := []struct {
		name    string
		series  WeatherSeries
		wantMsg string
	}{
		{"empty", WeatherSeries{}, "empty"},
		{"negative rainfall", hourlySeries([]float64{1, -2}, nil), "rainfall_mm"},
		{"negative wind", WeatherSeries{{Timestamp: seriesStart, WindKPH: -5, HumidityPct: 50}}, "wind_kph"},
		{"humidity too high", WeatherSeries{{Timestamp: seriesStart, HumidityPct: 100.5}}, "humidity_pct"},
		{"out of order", WeatherSeries{
			{Timestamp: seriesStart.Add(time.Hour), HumidityPct: 50},
			{Timestamp: seriesStart, HumidityPct: 50},
		}, "not after previous"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.series.Validate()
			require.Error(t, err)

			var inputErr *InvalidInputError
			require.ErrorAs(t, err, &inputErr)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestWeatherSeries_Tail(t *testing.T) {
	series := hourlySeries([]float64{0, 1, 2, 3}, nil)

	assert.Len(t, series.Tail(2), 2)
	assert.Equal(t, 2.0, series.Tail(2)[0].RainfallMM)
	assert.Equal(t, series, series.Tail(10))
	assert.Empty(t, series.Tail(0))
}

func TestWeatherSeries_Latest(t *testing.T) {
	series := hourlySeries([]float64{0, 1, 7}, nil)
	assert.Equal(t, 7.0, series.Latest().RainfallMM)
}

func TestLocation_Label(t *testing.T) {
	assert.Equal(t, "Pune, India", Location{Name: "Pune", Country: "India"}.Label())
	assert.Equal(t, "Pune", Location{Name: "Pune"}.Label())
}
