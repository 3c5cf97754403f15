package domain

import "strings"

// AdvisorySet carries the rendered advisory text per supported language.
// Hindi and Marathi fall back to the English text when no localized line
// applies (low-hazard lines are English-only).
type AdvisorySet struct {
	English string `json:"advisory_en"`
	Hindi   string `json:"advisory_hi"`
	Marathi string `json:"advisory_mr"`
}

// BuildAdvisories renders field-team advisory text for the given flood
// risk level and hazard summary. The wording is fixed per level so the
// output stays deterministic and translatable.
func BuildAdvisories(flood RiskLevel, hazards HazardSummary) AdvisorySet {
	var en, hi, mr []string

	switch flood {
	case RiskHigh:
		en = append(en, "High flood risk — move livestock/equipment to higher ground.")
		hi = append(hi, "उच्च बाढ़ जोखिम — पशुधन और उपकरण सुरक्षित स्थान पर ले जाएं।")
		mr = append(mr, "उच्च पूर धोका — जनावरे व उपकरणे उंच जागी हलवा.")
	case RiskModerate:
		en = append(en, "Medium flood risk — inspect low-lying fields and secure valuables.")
		hi = append(hi, "मध्यम बाढ़ जोखिम — निचले क्षेत्रों की जाँच करें और सामान सुरक्षित रखें।")
		mr = append(mr, "मध्यम पूर धोका — खालच्या शेतांची तपासणी करा व वस्तू सुरक्षित ठेवा.")
	default:
		en = append(en, "Flood risk is low — normal conditions.")
	}

	switch hazards.Heat {
	case HazardHigh:
		en = append(en, "High heat — avoid field work during midday; stay hydrated.")
		hi = append(hi, "उच्च तापमान — दोपहर के दौरान खेत का काम न करें; पानी पिएं।")
		mr = append(mr, "उच्च ताप — दुपारच्या वेळी काम टाळा; पाणी प्या.")
	case HazardMedium:
		en = append(en, "Moderate heat — take precautions during hot hours.")
		hi = append(hi, "मध्यम तापमान — गर्मी के समय सावधानी रखें।")
		mr = append(mr, "मध्यम ताप — गरम वेळेत खबरदारी घ्या.")
	}

	switch hazards.Storm {
	case HazardHigh:
		en = append(en, "High wind risk — secure shade nets and loose equipment.")
		hi = append(hi, "उच्च हवा जोखिम — नेट और ढीले उपकरण सुरक्षित रखें।")
		mr = append(mr, "उच्च वारा धोका — जाळी आणि ढीले उपकरण सुरक्षित ठेवा.")
	case HazardMedium:
		en = append(en, "Moderate winds — be cautious while working at heights.")
	}

	english := strings.Join(en, " ")
	set := AdvisorySet{English: english, Hindi: english, Marathi: english}
	if len(hi) > 0 {
		set.Hindi = strings.Join(hi, " ")
	}
	if len(mr) > 0 {
		set.Marathi = strings.Join(mr, " ")
	}
	return set
}
