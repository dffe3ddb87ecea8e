package model

import "time"

// ImpactTier is the coarse classification of a factor's normalized contribution
type ImpactTier string

const (
	ImpactLow    ImpactTier = "low"
	ImpactMedium ImpactTier = "medium"
	ImpactHigh   ImpactTier = "high"
)

// RiskFactor is one questionnaire field's share of the overall risk
type RiskFactor struct {
	Name   string     `json:"name" bson:"name"`
	Value  string     `json:"value" bson:"value"`   // Human-formatted answer, e.g. "170 mm Hg"
	Weight float64    `json:"weight" bson:"weight"` // Raw contribution toward the risk score
	Impact ImpactTier `json:"impact" bson:"impact"`
}

// ConditionProbability is a mental-health sub-condition flagged by the scorer
type ConditionProbability struct {
	Name        string  `json:"name" bson:"name"`
	Probability float64 `json:"probability" bson:"probability"` // 0-0.95
}

// MentalHealthDetail carries the extra outputs of the mental-health scorer
type MentalHealthDetail struct {
	OverallScore    float64                `json:"overall_score" bson:"overallScore"` // 0-100
	Severity        string                 `json:"severity" bson:"severity"`          // "mild", "moderate", "severe"
	DepressionScore float64                `json:"depression_score" bson:"depressionScore"`
	AnxietyScore    float64                `json:"anxiety_score" bson:"anxietyScore"`
	StressScore     float64                `json:"stress_score" bson:"stressScore"`
	Conditions      []ConditionProbability `json:"conditions" bson:"conditions"`
}

// PredictionResult is the output contract shared by every scorer
type PredictionResult struct {
	Prediction      bool                `json:"prediction" bson:"prediction"`   // Elevated risk
	Probability     float64             `json:"probability" bson:"probability"` // Percent in [5,95], one decimal
	RiskFactors     []RiskFactor        `json:"risk_factors" bson:"risk_factors"`
	Recommendations []string            `json:"recommendations" bson:"recommendations"` // Most urgent first
	MentalHealth    *MentalHealthDetail `json:"mental_health,omitempty" bson:"mentalHealth,omitempty"`
}

// IsElevatedRisk reports the binary classification
func (r *PredictionResult) IsElevatedRisk() bool {
	return r.Prediction
}

// PredictionRecord is a persisted assessment owned by a single user
type PredictionRecord struct {
	ID             string                 `json:"id" bson:"_id,omitempty"`
	UserID         string                 `json:"userId" bson:"userId"`
	PredictionType ConditionType          `json:"predictionType" bson:"predictionType"`
	Result         PredictionResult       `json:"result" bson:"result"`
	FormData       map[string]interface{} `json:"formData" bson:"formData"` // Questionnaire as submitted
	CreatedAt      time.Time              `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time              `json:"updatedAt" bson:"updatedAt"`
}

// ConditionSummary aggregates one user's records for a single condition
type ConditionSummary struct {
	PredictionType ConditionType `json:"predictionType" bson:"_id"`
	Total          int64         `json:"total" bson:"total"`
	Elevated       int64         `json:"elevated" bson:"elevated"`
	LastAssessedAt time.Time     `json:"lastAssessedAt" bson:"lastAssessedAt"`
}
