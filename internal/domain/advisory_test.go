package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildAdvisories(t *testing.T) {
	t.Run("high flood risk", func(t *testing.T) {
		set := BuildAdvisories(RiskHigh, HazardSummary{Heat: HazardLow, Storm: HazardLow})

		assert.Contains(t, set.English, "High flood risk")
		assert.Contains(t, set.Hindi, "उच्च बाढ़ जोखिम")
		assert.Contains(t, set.Marathi, "उच्च पूर धोका")
	})

	t.Run("low everything falls back to english", func(t *testing.T) {
		set := BuildAdvisories(RiskLow, HazardSummary{Heat: HazardLow, Storm: HazardLow})

		assert.Equal(t, "Flood risk is low — normal conditions.", set.English)
		assert.Equal(t, set.English, set.Hindi)
		assert.Equal(t, set.English, set.Marathi)
	})

	t.Run("combined hazards concatenate lines", func(t *testing.T) {
		set := BuildAdvisories(RiskModerate, HazardSummary{Heat: HazardHigh, Storm: HazardMedium})

		assert.Contains(t, set.English, "Medium flood risk")
		assert.Contains(t, set.English, "High heat")
		assert.Contains(t, set.English, "Moderate winds")
		// Moderate winds has no localized line; the Hindi set still carries
		// the flood and heat lines.
		assert.Contains(t, set.Hindi, "मध्यम बाढ़ जोखिम")
		assert.Contains(t, set.Hindi, "उच्च तापमान")
	})

	t.Run("deterministic", func(t *testing.T) {
		a := BuildAdvisories(RiskHigh, HazardSummary{Heat: HazardMedium, Storm: HazardHigh})
		b := BuildAdvisories(RiskHigh, HazardSummary{Heat: HazardMedium, Storm: HazardHigh})
		assert.Equal(t, a, b)
	})
}
