package risk

import (
	"math"

	"medipred/internal/model"
)

const (
	// MentalHealthThreshold is the overall score above which risk is elevated
	MentalHealthThreshold = 0.4
	mentalHealthMaxScore  = 30.0
	subScoreCutoff        = 5.0  // sub-condition is reported above this
	subScoreUrgent        = 10.0 // professional help is advised above this
	subScoreNormalizer    = 15.0
)

var (
	severityLadder = map[string]float64{"mild": 1, "moderate": 2, "severe": 3}
	anxietyLadder  = map[string]float64{"mild": 2, "moderate": 4, "severe": 6}
	sleepLadder    = map[string]float64{"fair": 1, "poor": 2, "very_poor": 3}
	energyLadder   = map[string]float64{"low": 1, "very_low": 3}
	appetiteLadder = map[string]float64{"decreased": 1, "severe_decrease": 3}
	focusLadder    = map[string]float64{"poor": 1, "very_poor": 2}
	stressLadder   = map[string]float64{"moderate": 2, "high": 4, "very_high": 6}
)

var mentalHealthBaseline = []string{
	"Practice mindfulness and relaxation techniques daily",
	"Establish a regular sleep schedule and bedtime routine",
	"Engage in regular physical exercise, aim for at least 30 minutes most days",
	"Connect with supportive friends and family members",
}

const (
	consultProfessional = "Consult with a mental health professional as soon as possible"
	reduceSubstanceUse  = "Consider reducing alcohol or substance use, which can worsen symptoms"
)

// MentalHealthScorer scores the depression, anxiety and stress questionnaire
type MentalHealthScorer struct {
	jitter JitterSource
}

// NewMentalHealthScorer creates a mental-health scorer drawing noise from jitter
func NewMentalHealthScorer(jitter JitterSource) *MentalHealthScorer {
	return &MentalHealthScorer{jitter: jitter}
}

// Condition implements Scorer
func (s *MentalHealthScorer) Condition() model.ConditionType {
	return model.ConditionMentalHealth
}

// Evaluate implements Scorer
func (s *MentalHealthScorer) Evaluate(form model.Form) (*model.PredictionResult, error) {
	answers, err := DecodeMentalHealth(form)
	if err != nil {
		return nil, err
	}
	return s.Score(answers), nil
}

// Score computes the prediction for validated answers
func (s *MentalHealthScorer) Score(a *model.MentalHealthAnswers) *model.PredictionResult {
	selfHarm := a.SuicidalThoughts != "none"

	depression := severityLadder[a.MoodChanges] +
		sleepLadder[a.SleepQuality] +
		energyLadder[a.EnergyLevel] +
		appetiteLadder[a.Appetite] +
		focusLadder[a.Concentration] +
		severityLadder[a.SocialWithdrawal]
	if selfHarm {
		depression += 5
	}

	anxiety := anxietyLadder[a.AnxietyLevel] + severityLadder[a.PhysicalSymptoms]
	if a.SleepQuality == "poor" || a.SleepQuality == "very_poor" {
		anxiety++
	}

	stress := stressLadder[a.StressLevel]
	if a.RecentTrauma == "yes" {
		stress += 3
	}

	if a.FamilyHistory == "yes" {
		depression++
		anxiety++
	}
	substance := severityLadder[a.SubstanceUse]
	depression += substance
	anxiety += substance

	overall := math.Min(1, (depression+anxiety+stress)/mentalHealthMaxScore)

	conditions := []model.ConditionProbability{}
	for _, sub := range []struct {
		name  string
		score float64
	}{
		{"Depression", depression},
		{"Anxiety", anxiety},
		{"Stress", stress},
	} {
		if sub.score > subScoreCutoff {
			conditions = append(conditions, model.ConditionProbability{
				Name:        sub.name,
				Probability: math.Min(maxProbability, sub.score/subScoreNormalizer+s.jitter.Jitter(0, conditionJitter)),
			})
		}
	}

	severity := "mild"
	switch {
	case overall > 0.7:
		severity = "severe"
	case overall > 0.4:
		severity = "moderate"
	}

	recommendations := append([]string{}, mentalHealthBaseline...)
	if depression > subScoreUrgent || anxiety > subScoreUrgent || selfHarm {
		recommendations = append([]string{consultProfessional}, recommendations...)
	}
	if a.SubstanceUse != "none" {
		recommendations = append(recommendations, reduceSubstanceUse)
	}

	return &model.PredictionResult{
		Prediction:  overall > MentalHealthThreshold,
		Probability: toPercent(clamp(overall, minProbability, maxProbability)),
		RiskFactors: rankByWeight([]model.RiskFactor{
			subScoreFactor("Depression Score", depression),
			subScoreFactor("Anxiety Score", anxiety),
			subScoreFactor("Stress Score", stress),
		}),
		Recommendations: recommendations,
		MentalHealth: &model.MentalHealthDetail{
			OverallScore:    toPercent(overall),
			Severity:        severity,
			DepressionScore: depression,
			AnxietyScore:    anxiety,
			StressScore:     stress,
			Conditions:      conditions,
		},
	}
}

func subScoreFactor(name string, score float64) model.RiskFactor {
	impact := model.ImpactLow
	switch {
	case score > subScoreUrgent:
		impact = model.ImpactHigh
	case score > subScoreCutoff:
		impact = model.ImpactMedium
	}
	return model.RiskFactor{
		Name:   name,
		Value:  formatNumber(score),
		Weight: score,
		Impact: impact,
	}
}
