// Command riskcheck runs the flood-risk classifier over a weather-series
// fixture and prints the assessment, aggregates, and advisories. With
// -expect it doubles as an integrity check for fixture files produced by
// genmock, exiting non-zero when the classification does not match.
//
// Usage:
//
//	go run ./cmd/riskcheck -series data/mock/monsoon_72h.json
//	go run ./cmd/riskcheck -series data/mock/cloudburst_72h.json -expect HIGH
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/couchcryptid/flood-insights-service/internal/domain"
)

func main() {
	seriesPath := flag.String("series", "", "path to a JSON weather-series fixture")
	expect := flag.String("expect", "", "optional expected risk level (LOW, MODERATE, HIGH)")
	flag.Parse()

	if *seriesPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*seriesPath, *expect); code != 0 {
		os.Exit(code)
	}
}

func run(seriesPath, expect string) int {
	data, err := os.ReadFile(seriesPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: read series: %v\n", err)
		return 1
	}

	var series domain.WeatherSeries
	if err := json.Unmarshal(data, &series); err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: parse series: %v\n", err)
		return 1
	}

	classifier, err := domain.NewClassifier(domain.DefaultRiskConfig())
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: classifier config: %v\n", err)
		return 1
	}

	assessment, err := classifier.Assess(series)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FAIL: series rejected: %v\n", err)
		return 1
	}

	hazards := domain.SummarizeHazards(series, domain.DefaultHazardConfig())
	advisories := domain.BuildAdvisories(assessment.RiskLevel, hazards)

	fmt.Printf("samples:       %d\n", len(series))
	fmt.Printf("evaluated_at:  %s\n", assessment.EvaluatedAt.Format("2006-01-02T15:04:05Z"))
	fmt.Printf("risk_level:    %s\n", assessment.RiskLevel)
	fmt.Printf("reasons:       %v\n", assessment.TriggeredReasons)
	fmt.Printf("rain 24h/72h:  %.1f / %.1f mm\n",
		domain.RollingRainfall(series, 24), domain.RollingRainfall(series, 72))
	fmt.Printf("rain stddev:   %.2f mm\n", domain.RainfallStdDev(series))
	fmt.Printf("heat/storm:    %s / %s\n", hazards.Heat, hazards.Storm)
	fmt.Printf("advisory:      %s\n", advisories.English)

	if expect != "" && domain.RiskLevel(expect) != assessment.RiskLevel {
		fmt.Fprintf(os.Stderr, "FAIL: expected %s, got %s\n", expect, assessment.RiskLevel)
		return 1
	}

	fmt.Println("OK")
	return 0
}
