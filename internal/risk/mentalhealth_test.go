package risk

import (
	. "gopkg.in/check.v1"

	"medipred/internal/model"
)

type MentalHealthSuite struct{}

var _ = Suite(&MentalHealthSuite{})

func calmMentalHealthForm() model.Form {
	return model.Form{
		"moodChanges":      "none",
		"anxietyLevel":     "none",
		"sleepQuality":     "good",
		"energyLevel":      "normal",
		"concentration":    "normal",
		"appetite":         "normal",
		"socialWithdrawal": "none",
		"suicidalThoughts": "none",
		"substanceUse":     "none",
		"familyHistory":    "no",
		"recentTrauma":     "no",
		"stressLevel":      "low",
		"physicalSymptoms": "none",
	}
}

func (s *MentalHealthSuite) TestCalmProfile(c *C) {
	result, err := NewMentalHealthScorer(FixedJitter(0)).Evaluate(calmMentalHealthForm())
	c.Assert(err, IsNil)
	c.Assert(result.Prediction, Equals, false)
	c.Assert(result.Probability, Equals, 5.0)
	c.Assert(result.Recommendations, DeepEquals, mentalHealthBaseline)

	c.Assert(result.MentalHealth, NotNil)
	c.Assert(result.MentalHealth.OverallScore, Equals, 0.0)
	c.Assert(result.MentalHealth.Severity, Equals, "mild")
	c.Assert(result.MentalHealth.Conditions, HasLen, 0)

	c.Assert(result.RiskFactors, HasLen, 3)
	for _, f := range result.RiskFactors {
		c.Assert(f.Value, Equals, "0")
		c.Assert(f.Impact, Equals, model.ImpactLow)
	}
}

func (s *MentalHealthSuite) TestSelfHarmIdeationPrependsConsult(c *C) {
	form := calmMentalHealthForm()
	form["suicidalThoughts"] = "mild"
	result, err := NewMentalHealthScorer(FixedJitter(0)).Evaluate(form)
	c.Assert(err, IsNil)

	c.Assert(result.MentalHealth.DepressionScore, Equals, 5.0)
	c.Assert(result.Prediction, Equals, false)
	c.Assert(result.Recommendations, HasLen, 5)
	c.Assert(result.Recommendations[0], Equals, consultProfessional)
	c.Assert(result.Recommendations[1:], DeepEquals, mentalHealthBaseline)
}

func (s *MentalHealthSuite) TestModerateProfile(c *C) {
	form := calmMentalHealthForm()
	form["anxietyLevel"] = "severe"
	form["stressLevel"] = "very_high"
	form["recentTrauma"] = "yes"
	result, err := NewMentalHealthScorer(FixedJitter(0)).Evaluate(form)
	c.Assert(err, IsNil)

	detail := result.MentalHealth
	c.Assert(detail.AnxietyScore, Equals, 6.0)
	c.Assert(detail.StressScore, Equals, 9.0)
	c.Assert(detail.OverallScore, Equals, 50.0)
	c.Assert(detail.Severity, Equals, "moderate")
	c.Assert(result.Prediction, Equals, true)
	c.Assert(result.Probability, Equals, 50.0)

	c.Assert(detail.Conditions, HasLen, 2)
	c.Assert(detail.Conditions[0].Name, Equals, "Anxiety")
	c.Assert(detail.Conditions[1].Name, Equals, "Stress")
	c.Assert(detail.Conditions[1].Probability, Equals, 0.6)

	c.Assert(result.Recommendations, DeepEquals, mentalHealthBaseline)
	c.Assert(result.RiskFactors[1].Impact, Equals, model.ImpactMedium)
}

func (s *MentalHealthSuite) TestSevereProfile(c *C) {
	form := model.Form{
		"age":              "34",
		"moodChanges":      "severe",
		"anxietyLevel":     "severe",
		"sleepQuality":     "very_poor",
		"energyLevel":      "very_low",
		"concentration":    "very_poor",
		"appetite":         "severe_decrease",
		"socialWithdrawal": "severe",
		"suicidalThoughts": "severe",
		"substanceUse":     "severe",
		"familyHistory":    "yes",
		"recentTrauma":     "yes",
		"stressLevel":      "very_high",
		"physicalSymptoms": "severe",
	}
	result, err := NewMentalHealthScorer(FixedJitter(0.1)).Evaluate(form)
	c.Assert(err, IsNil)

	detail := result.MentalHealth
	c.Assert(detail.DepressionScore, Equals, 26.0)
	c.Assert(detail.AnxietyScore, Equals, 14.0)
	c.Assert(detail.StressScore, Equals, 9.0)
	c.Assert(detail.OverallScore, Equals, 100.0)
	c.Assert(detail.Severity, Equals, "severe")
	c.Assert(result.Prediction, Equals, true)
	c.Assert(result.Probability, Equals, 95.0)

	c.Assert(detail.Conditions, HasLen, 3)
	for _, cond := range detail.Conditions {
		c.Assert(cond.Probability <= 0.95, Equals, true)
	}
	c.Assert(detail.Conditions[0].Probability, Equals, 0.95)

	c.Assert(result.Recommendations, HasLen, 6)
	c.Assert(result.Recommendations[0], Equals, consultProfessional)
	c.Assert(result.Recommendations[5], Equals, reduceSubstanceUse)

	c.Assert(result.RiskFactors[0].Name, Equals, "Depression Score")
	c.Assert(result.RiskFactors[0].Value, Equals, "26")
	c.Assert(result.RiskFactors[0].Impact, Equals, model.ImpactHigh)
}

func (s *MentalHealthSuite) TestUnknownOptionRejected(c *C) {
	form := calmMentalHealthForm()
	form["stressLevel"] = "extreme"
	_, err := NewMentalHealthScorer(FixedJitter(0)).Evaluate(form)
	c.Assert(err, ErrorMatches, `invalid mental-health questionnaire: stressLevel must be one of \[low moderate high very_high\]`)
}

func (s *MentalHealthSuite) TestRiskFactorsOrderedByWeight(c *C) {
	form := calmMentalHealthForm()
	form["stressLevel"] = "very_high"
	form["recentTrauma"] = "yes"
	result, err := NewMentalHealthScorer(FixedJitter(0)).Evaluate(form)
	c.Assert(err, IsNil)

	c.Assert(result.RiskFactors, HasLen, 3)
	c.Assert(result.RiskFactors[0].Name, Equals, "Stress Score")
	c.Assert(result.RiskFactors[0].Weight, Equals, 9.0)
	// Zero-weight ties keep depression before anxiety.
	c.Assert(result.RiskFactors[1].Name, Equals, "Depression Score")
	c.Assert(result.RiskFactors[2].Name, Equals, "Anxiety Score")
	for i := 1; i < len(result.RiskFactors); i++ {
		c.Assert(result.RiskFactors[i-1].Weight >= result.RiskFactors[i].Weight, Equals, true)
	}
}

func (s *MentalHealthSuite) TestHighAnxietyAloneAdvisesProfessional(c *C) {
	form := calmMentalHealthForm()
	form["anxietyLevel"] = "severe"
	form["sleepQuality"] = "poor"
	form["physicalSymptoms"] = "severe"
	form["familyHistory"] = "yes"
	result, err := NewMentalHealthScorer(FixedJitter(0)).Evaluate(form)
	c.Assert(err, IsNil)

	c.Assert(result.MentalHealth.AnxietyScore, Equals, 11.0)
	c.Assert(result.MentalHealth.DepressionScore <= 10, Equals, true)
	c.Assert(result.Recommendations, HasLen, 5)
	c.Assert(result.Recommendations[0], Equals, consultProfessional)
	c.Assert(result.RiskFactors[0].Name, Equals, "Anxiety Score")
}

func (s *MentalHealthSuite) TestHighDepressionAloneAdvisesProfessional(c *C) {
	form := calmMentalHealthForm()
	form["moodChanges"] = "severe"
	form["sleepQuality"] = "very_poor"
	form["energyLevel"] = "very_low"
	form["appetite"] = "severe_decrease"
	result, err := NewMentalHealthScorer(FixedJitter(0)).Evaluate(form)
	c.Assert(err, IsNil)

	c.Assert(result.MentalHealth.DepressionScore, Equals, 12.0)
	c.Assert(result.MentalHealth.AnxietyScore <= 10, Equals, true)
	c.Assert(result.Recommendations, HasLen, 5)
	c.Assert(result.Recommendations[0], Equals, consultProfessional)
	c.Assert(result.Recommendations[1:], DeepEquals, mentalHealthBaseline)
}

func (s *MentalHealthSuite) TestModerateSubScoresDoNotAdviseProfessional(c *C) {
	form := calmMentalHealthForm()
	form["anxietyLevel"] = "severe"
	form["physicalSymptoms"] = "severe"
	form["familyHistory"] = "yes"
	result, err := NewMentalHealthScorer(FixedJitter(0)).Evaluate(form)
	c.Assert(err, IsNil)

	c.Assert(result.MentalHealth.AnxietyScore, Equals, 10.0)
	c.Assert(result.Recommendations, DeepEquals, mentalHealthBaseline)
}
