package risk

import "medipred/internal/model"

const (
	// ParkinsonsThreshold is the probability above which Parkinson's risk is elevated
	ParkinsonsThreshold  = 0.3
	parkinsonsMaxScore   = 36.0
	parkinsonsTopFactors = 4
)

var (
	motorLadder        = map[string]float64{"mild": 1, "moderate": 2, "severe": 3}
	bradykinesiaLadder = map[string]float64{"mild": 1.5, "moderate": 3, "severe": 4}
	facialLadder       = map[string]float64{"reduced": 1.5, "masked": 3}
	handwritingLadder  = map[string]float64{"slightly_small": 1.5, "micrographia": 3}
	nonMotorLadder     = map[string]float64{"mild": 0.5, "moderate": 1, "severe": 1.5}

	severityTier = map[string]model.ImpactTier{
		"mild":     model.ImpactLow,
		"moderate": model.ImpactMedium,
		"severe":   model.ImpactHigh,
	}
)

var parkinsonsRecommendations = []string{
	"Consult with a neurologist for a comprehensive evaluation",
	"Consider physical therapy to improve mobility and balance",
	"Engage in regular exercise, particularly activities that improve flexibility and coordination",
	"Join a support group to connect with others experiencing similar symptoms",
	"Maintain a healthy diet rich in antioxidants",
}

// ParkinsonsScorer scores the Parkinson's symptom questionnaire
type ParkinsonsScorer struct {
	jitter JitterSource
}

// NewParkinsonsScorer creates a Parkinson's scorer drawing noise from jitter
func NewParkinsonsScorer(jitter JitterSource) *ParkinsonsScorer {
	return &ParkinsonsScorer{jitter: jitter}
}

// Condition implements Scorer
func (s *ParkinsonsScorer) Condition() model.ConditionType {
	return model.ConditionParkinsons
}

// Evaluate implements Scorer
func (s *ParkinsonsScorer) Evaluate(form model.Form) (*model.PredictionResult, error) {
	answers, err := DecodeParkinsons(form)
	if err != nil {
		return nil, err
	}
	return s.Score(answers), nil
}

// Score computes the prediction for validated answers
func (s *ParkinsonsScorer) Score(a *model.ParkinsonsAnswers) *model.PredictionResult {
	score := motorLadder[a.Tremor] +
		motorLadder[a.Rigidity] +
		bradykinesiaLadder[a.Bradykinesia] +
		motorLadder[a.PosturalInstability] +
		motorLadder[a.SpeechChanges] +
		facialLadder[a.FacialExpression] +
		handwritingLadder[a.Handwriting] +
		nonMotorLadder[a.SleepProblems] +
		nonMotorLadder[a.Depression]
	if a.FamilyHistory == "yes" {
		score += 2
	}
	if a.ExposureToToxins == "yes" {
		score++
	}
	if a.HeadInjury == "yes" {
		score++
	}
	score += exceeds(float64(a.Age), rung{60, 2}, rung{50, 1})

	probability := clamp(score/parkinsonsMaxScore+s.jitter.Jitter(-symmetricJitter, symmetricJitter), minProbability, maxProbability)

	var factors []model.RiskFactor
	if a.Tremor != "none" {
		factors = append(factors, model.RiskFactor{Name: "Tremor", Value: a.Tremor, Weight: motorLadder[a.Tremor], Impact: severityTier[a.Tremor]})
	}
	if a.Bradykinesia != "none" {
		factors = append(factors, model.RiskFactor{Name: "Slowness of Movement", Value: a.Bradykinesia, Weight: bradykinesiaLadder[a.Bradykinesia], Impact: severityTier[a.Bradykinesia]})
	}
	if a.Rigidity != "none" {
		factors = append(factors, model.RiskFactor{Name: "Muscle Rigidity", Value: a.Rigidity, Weight: motorLadder[a.Rigidity], Impact: severityTier[a.Rigidity]})
	}
	if a.FacialExpression != "normal" {
		impact := model.ImpactMedium
		if a.FacialExpression == "masked" {
			impact = model.ImpactHigh
		}
		factors = append(factors, model.RiskFactor{Name: "Facial Expression", Value: a.FacialExpression, Weight: facialLadder[a.FacialExpression], Impact: impact})
	}
	if a.Handwriting != "normal" {
		impact := model.ImpactMedium
		if a.Handwriting == "micrographia" {
			impact = model.ImpactHigh
		}
		factors = append(factors, model.RiskFactor{Name: "Handwriting Changes", Value: a.Handwriting, Weight: handwritingLadder[a.Handwriting], Impact: impact})
	}
	if a.FamilyHistory == "yes" {
		factors = append(factors, model.RiskFactor{Name: "Family History", Value: "Yes", Weight: 2, Impact: model.ImpactHigh})
	}

	percent := toPercent(probability)
	return &model.PredictionResult{
		Prediction:      elevated(percent, ParkinsonsThreshold),
		Probability:     percent,
		RiskFactors:     rankByTier(factors, parkinsonsTopFactors),
		Recommendations: append([]string{}, parkinsonsRecommendations...),
	}
}
