package risk

import (
	. "gopkg.in/check.v1"

	"medipred/internal/model"
)

type DiabetesSuite struct{}

var _ = Suite(&DiabetesSuite{})

func severeDiabetesForm() model.Form {
	return model.Form{
		"glucose":          250,
		"bmi":              40,
		"age":              70,
		"diabetesPedigree": 1.5,
		"bloodPressure":    95,
		"insulin":          250,
		"skinThickness":    45,
		"pregnancies":      6,
	}
}

func healthyDiabetesForm() model.Form {
	return model.Form{
		"glucose":          "90",
		"bmi":              "22.5",
		"age":              "25",
		"diabetesPedigree": "0.1",
		"bloodPressure":    "70",
		"insulin":          "80",
		"skinThickness":    "20",
		"pregnancies":      "0",
	}
}

func (s *DiabetesSuite) TestEveryFactorAtTopTier(c *C) {
	result, err := NewDiabetesScorer(FixedJitter(0)).Evaluate(severeDiabetesForm())
	c.Assert(err, IsNil)
	// weighted sum 1.85 over a normalizer of 8.8
	c.Assert(result.Probability, Equals, 21.0)
	c.Assert(result.Prediction, Equals, false)

	c.Assert(result.RiskFactors, HasLen, 5)
	names := []string{}
	for _, f := range result.RiskFactors {
		names = append(names, f.Name)
		c.Assert(f.Impact, Equals, model.ImpactHigh)
	}
	c.Assert(names, DeepEquals, []string{"Glucose Level", "BMI", "Family History", "Age", "Insulin Level"})
	c.Assert(result.RiskFactors[0].Value, Equals, "250 mg/dL")
	c.Assert(result.RiskFactors[2].Value, Equals, "1.5")

	c.Assert(result.Recommendations, HasLen, 8)
	c.Assert(result.Recommendations[:2], DeepEquals, diabetesBaseline)
	c.Assert(result.Recommendations[6:], DeepEquals, diabetesClosing)
}

func (s *DiabetesSuite) TestUpperJitterStaysBelowThreshold(c *C) {
	result, err := NewDiabetesScorer(FixedJitter(1)).Evaluate(severeDiabetesForm())
	c.Assert(err, IsNil)
	c.Assert(result.Probability, Equals, 26.0)
	c.Assert(result.Prediction, Equals, false)
}

func (s *DiabetesSuite) TestLadderBoundariesAreInclusive(c *C) {
	form := model.Form{
		"glucose":          140,
		"bmi":              30,
		"age":              45,
		"diabetesPedigree": 0.6,
		"bloodPressure":    80,
		"insulin":          150,
		"skinThickness":    30,
		"pregnancies":      1,
	}
	answers, err := DecodeDiabetes(form)
	c.Assert(err, IsNil)
	result := NewDiabetesScorer(FixedJitter(0)).Score(answers)

	weights := map[string]float64{}
	for _, f := range result.RiskFactors {
		weights[f.Name] = f.Weight
	}
	c.Assert(weights["Glucose Level"], Equals, 0.25)
	c.Assert(weights["BMI"], Equals, 0.20)
	c.Assert(weights["Family History"], Equals, 0.15)
	c.Assert(weights["Age"], Equals, 0.15)
	c.Assert(weights["Blood Pressure"], Equals, 0.10)
}

func (s *DiabetesSuite) TestLowInsulinBand(c *C) {
	form := healthyDiabetesForm()
	form["insulin"] = 20
	low, err := DecodeDiabetes(form)
	c.Assert(err, IsNil)
	form["insulin"] = 0
	zero, err := DecodeDiabetes(form)
	c.Assert(err, IsNil)

	scorer := NewDiabetesScorer(FixedJitter(0))
	c.Assert(insulinWeight(scorer.Score(low)), Equals, 0.05)
	c.Assert(insulinWeight(scorer.Score(zero)) <= 0, Equals, true)
}

func (s *DiabetesSuite) TestHealthyProfileKeepsOnlyFixedAdvice(c *C) {
	result, err := NewDiabetesScorer(FixedJitter(0)).Evaluate(healthyDiabetesForm())
	c.Assert(err, IsNil)
	c.Assert(result.Probability, Equals, 5.0)
	c.Assert(result.Recommendations, DeepEquals, append(append([]string{}, diabetesBaseline...), diabetesClosing...))
	for _, f := range result.RiskFactors {
		c.Assert(f.Impact, Equals, model.ImpactLow)
	}
}

func insulinWeight(result *model.PredictionResult) float64 {
	for _, f := range result.RiskFactors {
		if f.Name == "Insulin Level" {
			return f.Weight
		}
	}
	return -1
}
