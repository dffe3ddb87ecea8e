package risk

import "medipred/internal/model"

const (
	// HeartThreshold is the probability above which heart risk is elevated
	HeartThreshold  = 0.4
	heartNormalizer = 2.5
	heartTopFactors = 5
)

var (
	heartChestPain = map[string]float64{
		"typical":      0.05,
		"atypical":     0.10,
		"nonAnginal":   0.15,
		"asymptomatic": 0.25,
	}
	heartECG = map[string]float64{
		"normal":                     0,
		"stWaveAbnormality":          0.15,
		"leftVentricularHypertrophy": 0.20,
	}
	heartSlope = map[string]float64{
		"upsloping":   0,
		"flat":        0.15,
		"downsloping": 0.25,
	}
	heartThal = map[string]float64{
		"normal":           0,
		"fixedDefect":      0.10,
		"reversibleDefect": 0.20,
	}
)

var (
	heartBaseline = []string{
		"Maintain a heart-healthy diet rich in fruits, vegetables, whole grains, and lean proteins",
		"Engage in regular cardiovascular exercise (at least 150 minutes of moderate activity per week)",
	}
	heartClosing = []string{
		"Quit smoking and limit alcohol consumption",
		"Manage stress through relaxation techniques, adequate sleep, and social support",
	}
)

// HeartScorer scores the thirteen-field heart-disease questionnaire
type HeartScorer struct {
	jitter JitterSource
}

// NewHeartScorer creates a heart scorer drawing noise from jitter
func NewHeartScorer(jitter JitterSource) *HeartScorer {
	return &HeartScorer{jitter: jitter}
}

// Condition implements Scorer
func (s *HeartScorer) Condition() model.ConditionType {
	return model.ConditionHeart
}

// Evaluate implements Scorer
func (s *HeartScorer) Evaluate(form model.Form) (*model.PredictionResult, error) {
	answers, err := DecodeHeart(form)
	if err != nil {
		return nil, err
	}
	return s.Score(answers), nil
}

// Score computes the prediction for validated answers
func (s *HeartScorer) Score(a *model.HeartAnswers) *model.PredictionResult {
	age := float64(a.Age)
	ageRisk := exceeds(age, rung{65, 0.25}, rung{50, 0.15}, rung{40, 0.05})
	sexRisk := 0.0
	if a.Sex == "male" {
		sexRisk = 0.10
	}
	chestPainRisk := heartChestPain[a.ChestPainType]
	bpRisk := exceeds(a.RestingBP, rung{160, 0.25}, rung{140, 0.15}, rung{120, 0.05})
	cholRisk := exceeds(a.Cholesterol, rung{280, 0.25}, rung{240, 0.15}, rung{200, 0.05})
	fastingBSRisk := 0.0
	if a.FastingBS {
		fastingBSRisk = 0.15
	}
	ecgRisk := heartECG[a.RestingECG]
	hrRisk := 0.0
	if a.MaxHR < 0.7*(220-age) {
		hrRisk = 0.15
	}
	anginaRisk := 0.0
	if a.ExerciseAngina == "yes" {
		anginaRisk = 0.25
	}
	oldpeakRisk := exceeds(a.Oldpeak, rung{3, 0.25}, rung{1.5, 0.15}, rung{0.5, 0.05})
	slopeRisk := heartSlope[a.STSlope]
	vesselsRisk := 0.08 * float64(a.MajorVessels)
	thalRisk := heartThal[a.Thalassemia]

	sex := "Female"
	if a.Sex == "male" {
		sex = "Male"
	}
	fastingBS := "Normal"
	if a.FastingBS {
		fastingBS = "> 120 mg/dl"
	}

	// Field order here is the tie-break order for ranking.
	factors := []contribution{
		{"Age", formatNumber(age) + " years", ageRisk, 0.25},
		{"Sex", sex, sexRisk, 0.10},
		{"Chest Pain Type", capitalize(a.ChestPainType), chestPainRisk, 0.25},
		{"Resting Blood Pressure", formatNumber(a.RestingBP) + " mm Hg", bpRisk, 0.25},
		{"Cholesterol", formatNumber(a.Cholesterol) + " mg/dl", cholRisk, 0.25},
		{"Fasting Blood Sugar", fastingBS, fastingBSRisk, 0.15},
		{"Resting ECG", spaceCamel(a.RestingECG), ecgRisk, 0.20},
		{"Maximum Heart Rate", formatNumber(a.MaxHR) + " bpm", hrRisk, 0.15},
		{"Exercise-Induced Angina", yesNo(a.ExerciseAngina == "yes"), anginaRisk, 0.25},
		{"ST Depression", formatNumber(a.Oldpeak) + " mm", oldpeakRisk, 0.25},
		{"ST Slope", a.STSlope, slopeRisk, 0.25},
		{"Major Vessels", formatNumber(float64(a.MajorVessels)), vesselsRisk, 0.24},
		{"Thalassemia", spaceCamel(a.Thalassemia), thalRisk, 0.20},
	}

	total := 0.0
	for _, f := range factors {
		total += f.score
	}
	probability := clamp(total/heartNormalizer+s.jitter.Jitter(-symmetricJitter, symmetricJitter), minProbability, maxProbability)

	recommendations := append([]string{}, heartBaseline...)
	if bpRisk > 0.1 {
		recommendations = append(recommendations, "Monitor blood pressure regularly and follow medical advice to keep it controlled")
	}
	if cholRisk > 0.1 {
		recommendations = append(recommendations, "Have your cholesterol levels checked regularly and consider dietary changes or medication if elevated")
	}
	if fastingBSRisk > 0 {
		recommendations = append(recommendations, "Monitor blood glucose levels and follow your doctor's advice for managing blood sugar")
	}
	if anginaRisk > 0 {
		recommendations = append(recommendations, "Discuss your chest pain symptoms with a cardiologist for proper evaluation")
	}
	if ageRisk > 0.15 || sexRisk > 0 {
		recommendations = append(recommendations, "Schedule regular cardiac check-ups given your age and gender risk profile")
	}
	recommendations = append(recommendations, heartClosing...)

	percent := toPercent(probability)
	return &model.PredictionResult{
		Prediction:      elevated(percent, HeartThreshold),
		Probability:     percent,
		RiskFactors:     rankByContribution(factors, heartTopFactors),
		Recommendations: recommendations,
	}
}
