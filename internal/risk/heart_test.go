package risk

import (
	. "gopkg.in/check.v1"

	"medipred/internal/model"
)

type HeartSuite struct{}

var _ = Suite(&HeartSuite{})

func severeHeartForm() model.Form {
	return model.Form{
		"age":            70,
		"sex":            "male",
		"chestPainType":  "asymptomatic",
		"restingBP":      170,
		"cholesterol":    300,
		"fastingBS":      "true",
		"restingECG":     "leftVentricularHypertrophy",
		"maxHR":          100,
		"exerciseAngina": "yes",
		"oldpeak":        4,
		"stSlope":        "downsloping",
		"majorVessels":   3,
		"thalassemia":    "reversibleDefect",
	}
}

func healthyHeartForm() model.Form {
	return model.Form{
		"age":            "30",
		"sex":            "female",
		"chestPainType":  "typical",
		"restingBP":      "110",
		"cholesterol":    "180",
		"fastingBS":      "false",
		"restingECG":     "normal",
		"maxHR":          "180",
		"exerciseAngina": "no",
		"oldpeak":        "0",
		"stSlope":        "upsloping",
		"majorVessels":   "0",
		"thalassemia":    "normal",
	}
}

func (s *HeartSuite) TestSevereProfileSaturates(c *C) {
	result, err := NewHeartScorer(FixedJitter(0)).Evaluate(severeHeartForm())
	c.Assert(err, IsNil)
	c.Assert(result.Probability, Equals, 95.0)
	c.Assert(result.Prediction, Equals, true)
	c.Assert(result.IsElevatedRisk(), Equals, true)

	c.Assert(result.RiskFactors, HasLen, 5)
	names := make([]string, 0, len(result.RiskFactors))
	for _, f := range result.RiskFactors {
		names = append(names, f.Name)
		c.Assert(f.Weight, Equals, 0.25)
		c.Assert(f.Impact, Equals, model.ImpactHigh)
	}
	c.Assert(names, DeepEquals, []string{
		"Age", "Chest Pain Type", "Resting Blood Pressure", "Cholesterol", "Exercise-Induced Angina",
	})
	c.Assert(result.RiskFactors[0].Value, Equals, "70 years")

	c.Assert(result.Recommendations, HasLen, 9)
	c.Assert(result.Recommendations[:2], DeepEquals, heartBaseline)
	c.Assert(result.Recommendations[7:], DeepEquals, heartClosing)
}

func (s *HeartSuite) TestHealthyProfileFloors(c *C) {
	result, err := NewHeartScorer(FixedJitter(0)).Evaluate(healthyHeartForm())
	c.Assert(err, IsNil)
	c.Assert(result.Probability, Equals, 5.0)
	c.Assert(result.Prediction, Equals, false)

	c.Assert(result.RiskFactors, HasLen, 5)
	c.Assert(result.RiskFactors[0].Name, Equals, "Chest Pain Type")
	c.Assert(result.RiskFactors[0].Value, Equals, "Typical")
	c.Assert(result.RiskFactors[0].Impact, Equals, model.ImpactLow)
	// zero contributions keep questionnaire order
	c.Assert(result.RiskFactors[1].Name, Equals, "Age")
	c.Assert(result.RiskFactors[2].Name, Equals, "Sex")

	c.Assert(result.Recommendations, DeepEquals, append(append([]string{}, heartBaseline...), heartClosing...))
}

func (s *HeartSuite) TestJitterMovesAcrossThreshold(c *C) {
	form := healthyHeartForm()
	form["age"] = 70
	form["sex"] = "male"
	form["chestPainType"] = "asymptomatic"
	form["maxHR"] = 150
	form["exerciseAngina"] = "yes"
	form["thalassemia"] = "fixedDefect"

	up, err := NewHeartScorer(FixedJitter(0.05)).Evaluate(form)
	c.Assert(err, IsNil)
	c.Assert(up.Probability, Equals, 43.0)
	c.Assert(up.Prediction, Equals, true)

	down, err := NewHeartScorer(FixedJitter(-0.05)).Evaluate(form)
	c.Assert(err, IsNil)
	c.Assert(down.Probability, Equals, 33.0)
	c.Assert(down.Prediction, Equals, false)
}

func (s *HeartSuite) TestJitterIsBounded(c *C) {
	result, err := NewHeartScorer(FixedJitter(0.5)).Evaluate(healthyHeartForm())
	c.Assert(err, IsNil)
	// 0.05/2.5 + 0.05
	c.Assert(result.Probability, Equals, 7.0)
}

func (s *HeartSuite) TestLowMaxHeartRateForAge(c *C) {
	form := healthyHeartForm()
	form["maxHR"] = 120
	result, err := NewHeartScorer(FixedJitter(0)).Evaluate(form)
	c.Assert(err, IsNil)
	c.Assert(result.RiskFactors[0].Name, Equals, "Maximum Heart Rate")
	c.Assert(result.RiskFactors[0].Weight, Equals, 0.15)
	c.Assert(result.RiskFactors[0].Impact, Equals, model.ImpactHigh)
}

func (s *HeartSuite) TestConditionalRecommendations(c *C) {
	form := healthyHeartForm()
	form["restingBP"] = 150
	form["fastingBS"] = true
	result, err := NewHeartScorer(FixedJitter(0)).Evaluate(form)
	c.Assert(err, IsNil)
	c.Assert(result.Recommendations, HasLen, 6)
	c.Assert(result.Recommendations[2], Matches, "Monitor blood pressure.*")
	c.Assert(result.Recommendations[3], Matches, "Monitor blood glucose.*")
	c.Assert(result.Recommendations[4:], DeepEquals, heartClosing)
}
