package risk

import (
	. "gopkg.in/check.v1"

	"medipred/internal/model"
)

type ParkinsonsSuite struct{}

var _ = Suite(&ParkinsonsSuite{})

func quietParkinsonsForm() model.Form {
	return model.Form{
		"age":                 30,
		"tremor":              "none",
		"rigidity":            "none",
		"bradykinesia":        "none",
		"posturalInstability": "none",
		"speechChanges":       "none",
		"facialExpression":    "normal",
		"handwriting":         "normal",
		"sleepProblems":       "none",
		"depression":          "none",
		"familyHistory":       "no",
		"exposureToToxins":    "no",
		"headInjury":          "no",
	}
}

func (s *ParkinsonsSuite) TestNoSymptomsFloors(c *C) {
	result, err := NewParkinsonsScorer(FixedJitter(0)).Evaluate(quietParkinsonsForm())
	c.Assert(err, IsNil)
	c.Assert(result.Probability, Equals, 5.0)
	c.Assert(result.Prediction, Equals, false)
	c.Assert(result.RiskFactors, NotNil)
	c.Assert(result.RiskFactors, HasLen, 0)
	c.Assert(result.Recommendations, DeepEquals, parkinsonsRecommendations)
}

func (s *ParkinsonsSuite) TestSevereSymptoms(c *C) {
	form := model.Form{
		"age":                 70,
		"gender":              "male",
		"tremor":              "severe",
		"rigidity":            "severe",
		"bradykinesia":        "severe",
		"posturalInstability": "severe",
		"speechChanges":       "severe",
		"facialExpression":    "masked",
		"handwriting":         "micrographia",
		"sleepProblems":       "severe",
		"depression":          "severe",
		"anxiety":             "moderate",
		"familyHistory":       "yes",
		"exposureToToxins":    "yes",
		"headInjury":          "yes",
	}
	result, err := NewParkinsonsScorer(FixedJitter(0)).Evaluate(form)
	c.Assert(err, IsNil)
	// 31 of 36 points
	c.Assert(result.Probability, Equals, 86.1)
	c.Assert(result.Prediction, Equals, true)

	c.Assert(result.RiskFactors, HasLen, 4)
	names := []string{}
	for _, f := range result.RiskFactors {
		names = append(names, f.Name)
		c.Assert(f.Impact, Equals, model.ImpactHigh)
	}
	c.Assert(names, DeepEquals, []string{"Tremor", "Slowness of Movement", "Muscle Rigidity", "Facial Expression"})
}

func (s *ParkinsonsSuite) TestFactorsSortedByTierNotWeight(c *C) {
	form := quietParkinsonsForm()
	form["age"] = 55
	form["tremor"] = "mild"
	form["bradykinesia"] = "moderate"
	form["facialExpression"] = "reduced"
	form["familyHistory"] = "yes"

	result, err := NewParkinsonsScorer(FixedJitter(0)).Evaluate(form)
	c.Assert(err, IsNil)
	// 1 + 3 + 1.5 + 2 + 1 for age
	c.Assert(result.Probability, Equals, 23.6)
	c.Assert(result.Prediction, Equals, false)

	c.Assert(result.RiskFactors, HasLen, 4)
	c.Assert(result.RiskFactors[0].Name, Equals, "Family History")
	c.Assert(result.RiskFactors[0].Impact, Equals, model.ImpactHigh)
	c.Assert(result.RiskFactors[1].Name, Equals, "Slowness of Movement")
	c.Assert(result.RiskFactors[1].Weight, Equals, 3.0)
	c.Assert(result.RiskFactors[2].Name, Equals, "Facial Expression")
	c.Assert(result.RiskFactors[2].Impact, Equals, model.ImpactMedium)
	c.Assert(result.RiskFactors[3].Name, Equals, "Tremor")
	c.Assert(result.RiskFactors[3].Impact, Equals, model.ImpactLow)
}

func (s *ParkinsonsSuite) TestLowerThreshold(c *C) {
	form := quietParkinsonsForm()
	form["age"] = 65
	form["tremor"] = "moderate"
	form["rigidity"] = "moderate"
	form["bradykinesia"] = "moderate"
	form["familyHistory"] = "yes"

	// 2 + 2 + 3 + 2 + 2 = 11 points, 30.6%
	result, err := NewParkinsonsScorer(FixedJitter(0)).Evaluate(form)
	c.Assert(err, IsNil)
	c.Assert(result.Probability, Equals, 30.6)
	c.Assert(result.Prediction, Equals, true)
}

func (s *ParkinsonsSuite) TestAgeRequired(c *C) {
	form := quietParkinsonsForm()
	delete(form, "age")
	_, err := NewParkinsonsScorer(FixedJitter(0)).Evaluate(form)
	c.Assert(err, ErrorMatches, "invalid parkinsons questionnaire: age is required")
}
