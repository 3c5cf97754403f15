package domain

import "time"

// RiskLevel is the ordinal flood-risk category, LOW < MODERATE < HIGH.
type RiskLevel string

const (
	RiskLow      RiskLevel = "LOW"
	RiskModerate RiskLevel = "MODERATE"
	RiskHigh     RiskLevel = "HIGH"
)

// Rank maps a risk level onto the ordering LOW(0) < MODERATE(1) < HIGH(2).
func (r RiskLevel) Rank() int {
	switch r {
	case RiskModerate:
		return 1
	case RiskHigh:
		return 2
	default:
		return 0
	}
}

// ReasonCode identifies which threshold rule triggered.
type ReasonCode string

const (
	ReasonHeavyRainfall     ReasonCode = "HEAVY_RAINFALL"
	ReasonTempDrop          ReasonCode = "TEMP_DROP"
	ReasonSustainedRainfall ReasonCode = "SUSTAINED_RAINFALL"
)

// FloodRiskAssessment is the classifier output. TriggeredReasons is a set;
// it is emitted in fixed rule order so identical inputs serialize
// identically.
type FloodRiskAssessment struct {
	RiskLevel        RiskLevel    `json:"risk_level"`
	TriggeredReasons []ReasonCode `json:"triggered_reasons"`
	EvaluatedAt      time.Time    `json:"evaluated_at"`
}

// RiskConfig holds the classifier thresholds and window sizes. All values
// are required and must be positive; SevereRainfallMM must exceed
// HeavyRainfallMM for the escalation rule to be meaningful.
type RiskConfig struct {
	// HeavyRainfallMM is the latest-sample rainfall above which
	// HEAVY_RAINFALL triggers.
	HeavyRainfallMM float64

	// SevereRainfallMM escalates a lone HEAVY_RAINFALL to HIGH.
	SevereRainfallMM float64

	// LowRainfallMM is the per-sample floor for the sustained-rain rule.
	LowRainfallMM float64

	// TempDropC is the temperature decrease, over TempLookback steps,
	// above which TEMP_DROP triggers.
	TempDropC float64

	// TempLookback is the number of steps back to the reference sample (N).
	TempLookback int

	// SustainedSamples is the consecutive-sample run length required for
	// SUSTAINED_RAINFALL (M).
	SustainedSamples int
}

// DefaultRiskConfig returns the operational defaults. 50 mm matches the
// flood threshold used by the upstream advisory system; 30 mm is its
// medium boundary (0.6x).
func DefaultRiskConfig() RiskConfig {
	return RiskConfig{
		HeavyRainfallMM:  30,
		SevereRainfallMM: 50,
		LowRainfallMM:    10,
		TempDropC:        10,
		TempLookback:     4,
		SustainedSamples: 5,
	}
}

// Validate returns a *ConfigurationError for the first invalid field.
func (c RiskConfig) Validate() error {
	switch {
	case c.HeavyRainfallMM <= 0:
		return &ConfigurationError{Field: "HeavyRainfallMM", Reason: "must be positive"}
	case c.SevereRainfallMM <= 0:
		return &ConfigurationError{Field: "SevereRainfallMM", Reason: "must be positive"}
	case c.SevereRainfallMM <= c.HeavyRainfallMM:
		return &ConfigurationError{Field: "SevereRainfallMM", Reason: "must exceed HeavyRainfallMM"}
	case c.LowRainfallMM <= 0:
		return &ConfigurationError{Field: "LowRainfallMM", Reason: "must be positive"}
	case c.TempDropC <= 0:
		return &ConfigurationError{Field: "TempDropC", Reason: "must be positive"}
	case c.TempLookback < 1:
		return &ConfigurationError{Field: "TempLookback", Reason: "must be at least 1"}
	case c.SustainedSamples < 1:
		return &ConfigurationError{Field: "SustainedSamples", Reason: "must be at least 1"}
	}
	return nil
}

// Classifier maps a WeatherSeries to a FloodRiskAssessment using the
// threshold rules described in the package documentation. It holds no
// mutable state and is safe for concurrent use.
type Classifier struct {
	cfg RiskConfig
}

// NewClassifier validates cfg and returns a Classifier.
func NewClassifier(cfg RiskConfig) (*Classifier, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Classifier{cfg: cfg}, nil
}

// Config returns the configuration the classifier was built with.
func (c *Classifier) Config() RiskConfig {
	return c.cfg
}

// Assess evaluates the rules against a validated series and classifies the
// result. It returns an *InvalidInputError when the series violates the
// model invariants.
func (c *Classifier) Assess(series WeatherSeries) (FloodRiskAssessment, error) {
	if err := series.Validate(); err != nil {
		return FloodRiskAssessment{}, err
	}

	latest := series.Latest()

	var reasons []ReasonCode
	if latest.RainfallMM > c.cfg.HeavyRainfallMM {
		reasons = append(reasons, ReasonHeavyRainfall)
	}
	if c.tempDropped(series) {
		reasons = append(reasons, ReasonTempDrop)
	}
	if c.sustainedRain(series) {
		reasons = append(reasons, ReasonSustainedRainfall)
	}

	return FloodRiskAssessment{
		RiskLevel:        c.classify(reasons, latest.RainfallMM),
		TriggeredReasons: reasons,
		EvaluatedAt:      latest.Timestamp,
	}, nil
}

// tempDropped reports whether temperature fell more than TempDropC between
// the sample TempLookback steps back and the latest sample. Series shorter
// than the look-back window cannot trigger: the reference sample does not
// exist, and clamping to the oldest sample would flag drops over a window
// the rule was never configured for.
func (c *Classifier) tempDropped(series WeatherSeries) bool {
	ref := len(series) - 1 - c.cfg.TempLookback
	if ref < 0 {
		return false
	}
	drop := series[ref].TemperatureC - series.Latest().TemperatureC
	return drop > c.cfg.TempDropC
}

// sustainedRain reports whether the trailing SustainedSamples samples all
// have rainfall strictly above LowRainfallMM.
func (c *Classifier) sustainedRain(series WeatherSeries) bool {
	if len(series) < c.cfg.SustainedSamples {
		return false
	}
	for _, sample := range series.Tail(c.cfg.SustainedSamples) {
		if sample.RainfallMM <= c.cfg.LowRainfallMM {
			return false
		}
	}
	return true
}

// classify applies the precedence policy: HIGH for two or more reasons, or
// a lone HEAVY_RAINFALL whose latest rainfall clears the severe threshold;
// MODERATE for exactly one reason; LOW otherwise.
func (c *Classifier) classify(reasons []ReasonCode, latestRainfall float64) RiskLevel {
	switch {
	case len(reasons) >= 2:
		return RiskHigh
	case len(reasons) == 1 && reasons[0] == ReasonHeavyRainfall && latestRainfall > c.cfg.SevereRainfallMM:
		return RiskHigh
	case len(reasons) == 1:
		return RiskModerate
	default:
		return RiskLow
	}
}
