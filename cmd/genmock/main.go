// Command genmock generates deterministic hourly weather-series fixtures
// for classifier testing and dashboard demos.
//
// Usage:
//
//	go run ./cmd/genmock -scenario monsoon -hours 72 -out data/mock/monsoon_72h.json
//
// Scenarios:
//
//	calm        light scattered drizzle, mild temperatures
//	monsoon     sustained rain above the low-intensity threshold
//	cloudburst  dry run-up ending in a single severe downpour
//	coldfront   sharp temperature drop over the final hours
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"
	"time"

	"github.com/couchcryptid/flood-insights-service/internal/domain"
)

var scenarioNames = []string{"calm", "monsoon", "cloudburst", "coldfront"}

func main() {
	scenario := flag.String("scenario", "calm", "one of calm, monsoon, cloudburst, coldfront")
	hours := flag.Int("hours", 72, "number of hourly samples to generate")
	seed := flag.Int64("seed", 1, "random seed; fixed seeds give reproducible fixtures")
	start := flag.String("start", "2026-08-20T00:00:00Z", "RFC3339 timestamp of the first sample")
	out := flag.String("out", "", "output path, or stdout when empty")
	flag.Parse()

	startTime, err := time.Parse(time.RFC3339, *start)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: invalid -start: %v\n", err)
		os.Exit(1)
	}
	if *hours < 1 {
		fmt.Fprintln(os.Stderr, "FATAL: -hours must be at least 1")
		os.Exit(1)
	}

	series, err := generate(*scenario, *hours, startTime, rand.New(rand.NewSource(*seed)))
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		os.Exit(1)
	}

	data, err := json.MarshalIndent(series, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: marshal series: %v\n", err)
		os.Exit(1)
	}
	data = append(data, '\n')

	if *out == "" {
		_, _ = os.Stdout.Write(data)
		return
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: write %s: %v\n", *out, err)
		os.Exit(1)
	}
	fmt.Printf("wrote %d samples (%s) to %s\n", len(series), *scenario, *out)
}

func generate(scenario string, hours int, start time.Time, rng *rand.Rand) (domain.WeatherSeries, error) {
	series := make(domain.WeatherSeries, hours)
	for i := range series {
		series[i] = baseSample(start, i, rng)
	}

	switch scenario {
	case "calm":
		// Base samples already describe calm conditions.
	case "monsoon":
		for i := range series {
			series[i].RainfallMM = 11 + rng.Float64()*8
			series[i].HumidityPct = 85 + rng.Float64()*10
		}
	case "cloudburst":
		last := hours - 1
		series[last].RainfallMM = 60 + rng.Float64()*30
		series[last].HumidityPct = 95
	case "coldfront":
		// Temperature slides ~15 degrees over the final six hours.
		for i := max(0, hours-6); i < hours; i++ {
			steps := float64(hours - 1 - i)
			series[i].TemperatureC = 15 + steps*2.5
			series[i].WindKPH = 35 + rng.Float64()*10
		}
	default:
		return nil, fmt.Errorf("unknown scenario %q (want one of %v)", scenario, scenarioNames)
	}

	if err := series.Validate(); err != nil {
		return nil, fmt.Errorf("generated series failed validation: %w", err)
	}
	return series, nil
}

// baseSample produces a mild day with a diurnal temperature cycle and
// occasional drizzle.
func baseSample(start time.Time, i int, rng *rand.Rand) domain.WeatherSample {
	hourOfDay := float64((start.Hour() + i) % 24)
	diurnal := 5 * math.Sin((hourOfDay-9)/24*2*math.Pi)

	rain := 0.0
	if rng.Float64() < 0.2 {
		rain = rng.Float64() * 2
	}

	return domain.WeatherSample{
		Timestamp:    start.Add(time.Duration(i) * time.Hour).UTC(),
		RainfallMM:   rain,
		TemperatureC: 27 + diurnal + rng.Float64(),
		WindKPH:      5 + rng.Float64()*10,
		HumidityPct:  55 + rng.Float64()*20,
	}
}
