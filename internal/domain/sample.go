package domain

import (
	"fmt"
	"time"
)

// WeatherSample is a single hourly observation for one location.
// Immutable once produced by the provider boundary.
type WeatherSample struct {
	Timestamp    time.Time `json:"timestamp"`
	RainfallMM   float64   `json:"rainfall_mm"`
	TemperatureC float64   `json:"temperature_c"`
	WindKPH      float64   `json:"wind_kph"`
	HumidityPct  float64   `json:"humidity_pct"`
}

// WeatherSeries is an ordered sequence of samples for one location and
// time window, ascending by timestamp with no duplicates.
type WeatherSeries []WeatherSample

// Validate checks the series invariants. It returns an *InvalidInputError
// describing the first violation found, or nil for a well-formed series.
func (s WeatherSeries) Validate() error {
	if len(s) == 0 {
		return &InvalidInputError{Reason: "series is empty"}
	}

	for i, sample := range s {
		if sample.RainfallMM < 0 {
			return &InvalidInputError{
				Reason: fmt.Sprintf("sample %d: rainfall_mm %.2f is negative", i, sample.RainfallMM),
			}
		}
		if sample.HumidityPct < 0 || sample.HumidityPct > 100 {
			return &InvalidInputError{
				Reason: fmt.Sprintf("sample %d: humidity_pct %.2f outside [0,100]", i, sample.HumidityPct),
			}
		}
		if sample.WindKPH < 0 {
			return &InvalidInputError{
				Reason: fmt.Sprintf("sample %d: wind_kph %.2f is negative", i, sample.WindKPH),
			}
		}
		if i == 0 {
			continue
		}
		if !sample.Timestamp.After(s[i-1].Timestamp) {
			return &InvalidInputError{
				Reason: fmt.Sprintf("sample %d: timestamp %s not after previous sample", i, sample.Timestamp.Format(time.RFC3339)),
			}
		}
	}

	return nil
}

// Latest returns the most recent sample. The series must be non-empty.
func (s WeatherSeries) Latest() WeatherSample {
	return s[len(s)-1]
}

// Tail returns the trailing n samples, or the whole series when it is
// shorter than n.
func (s WeatherSeries) Tail(n int) WeatherSeries {
	if n <= 0 {
		return nil
	}
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}

// Location identifies a geocoded place as resolved by the provider.
type Location struct {
	Name    string  `json:"name"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// Label renders the location as "Name, Country", omitting a missing country.
func (l Location) Label() string {
	if l.Country == "" {
		return l.Name
	}
	return l.Name + ", " + l.Country
}
