package risk

import "medipred/internal/model"

const (
	// DiabetesThreshold is the probability above which diabetes risk is elevated
	DiabetesThreshold = 0.4
	// diabetesNormalizer must stay in step with the browser scorer. The
	// weighted sum tops out at 1.85, so probability peaks near 0.26 and
	// diabetes is never flagged elevated. Do not rescale.
	diabetesNormalizer = 8.8
	diabetesTopFactors = 5
)

var (
	diabetesBaseline = []string{
		"Maintain a balanced diet rich in fiber, lean proteins, and healthy fats while limiting refined carbohydrates and sugars",
		"Engage in regular physical activity (aim for at least 150 minutes of moderate exercise per week)",
	}
	diabetesClosing = []string{
		"Stay well-hydrated and limit alcohol consumption",
		"Manage stress through relaxation techniques, adequate sleep, and social support",
	}
)

// DiabetesScorer scores the eight-factor diabetes questionnaire
type DiabetesScorer struct {
	jitter JitterSource
}

// NewDiabetesScorer creates a diabetes scorer drawing noise from jitter
func NewDiabetesScorer(jitter JitterSource) *DiabetesScorer {
	return &DiabetesScorer{jitter: jitter}
}

// Condition implements Scorer
func (s *DiabetesScorer) Condition() model.ConditionType {
	return model.ConditionDiabetes
}

// Evaluate implements Scorer
func (s *DiabetesScorer) Evaluate(form model.Form) (*model.PredictionResult, error) {
	answers, err := DecodeDiabetes(form)
	if err != nil {
		return nil, err
	}
	return s.Score(answers), nil
}

// Score computes the prediction for validated answers
func (s *DiabetesScorer) Score(a *model.DiabetesAnswers) *model.PredictionResult {
	glucoseRisk := reaches(a.Glucose, rung{200, 0.35}, rung{140, 0.25}, rung{100, 0.10})
	bmiRisk := reaches(a.BMI, rung{35, 0.25}, rung{30, 0.20}, rung{25, 0.10})
	ageRisk := reaches(float64(a.Age), rung{65, 0.20}, rung{45, 0.15}, rung{35, 0.05})
	pedigreeRisk := reaches(a.DiabetesPedigree, rung{1.0, 0.25}, rung{0.6, 0.15}, rung{0.3, 0.05})
	bpRisk := reaches(a.BloodPressure, rung{90, 0.15}, rung{80, 0.10})
	insulinRisk := reaches(a.Insulin, rung{200, 0.20}, rung{150, 0.10})
	if insulinRisk == 0 && a.Insulin > 0 && a.Insulin <= 30 {
		insulinRisk = 0.05
	}
	skinRisk := reaches(a.SkinThickness, rung{40, 0.10}, rung{30, 0.05})
	pregnancyRisk := reaches(float64(a.Pregnancies), rung{5, 0.10}, rung{1, 0.05})

	weighted := glucoseRisk*1.5 +
		bmiRisk*1.2 +
		pedigreeRisk*1.1 +
		ageRisk +
		bpRisk +
		insulinRisk +
		skinRisk +
		pregnancyRisk
	probability := clamp(weighted/diabetesNormalizer+s.jitter.Jitter(-symmetricJitter, symmetricJitter), minProbability, maxProbability)

	factors := []contribution{
		{"Glucose Level", formatNumber(a.Glucose) + " mg/dL", glucoseRisk, 0.35},
		{"BMI", formatNumber(a.BMI) + " kg/m²", bmiRisk, 0.25},
		{"Age", formatNumber(float64(a.Age)) + " years", ageRisk, 0.20},
		{"Family History", formatNumber(a.DiabetesPedigree), pedigreeRisk, 0.25},
		{"Blood Pressure", formatNumber(a.BloodPressure) + " mm Hg", bpRisk, 0.15},
		{"Insulin Level", formatNumber(a.Insulin) + " mu U/ml", insulinRisk, 0.20},
		{"Skin Thickness", formatNumber(a.SkinThickness) + " mm", skinRisk, 0.10},
		{"Pregnancies", formatNumber(float64(a.Pregnancies)), pregnancyRisk, 0.10},
	}

	recommendations := append([]string{}, diabetesBaseline...)
	if glucoseRisk > 0.1 {
		recommendations = append(recommendations, "Monitor your blood glucose levels regularly and consider consulting with a healthcare provider")
	}
	if bmiRisk > 0.1 {
		recommendations = append(recommendations, "Work with a healthcare provider to develop a weight management plan appropriate for your health status")
	}
	if bpRisk > 0.05 {
		recommendations = append(recommendations, "Monitor your blood pressure regularly and follow medical advice to keep it controlled")
	}
	if pedigreeRisk > 0.15 {
		recommendations = append(recommendations, "Given your family history, consider more frequent diabetes screening with your healthcare provider")
	}
	recommendations = append(recommendations, diabetesClosing...)

	percent := toPercent(probability)
	return &model.PredictionResult{
		Prediction:      elevated(percent, DiabetesThreshold),
		Probability:     percent,
		RiskFactors:     rankByContribution(factors, diabetesTopFactors),
		Recommendations: recommendations,
	}
}
