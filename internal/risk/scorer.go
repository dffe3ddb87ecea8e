package risk

import (
	"fmt"

	"medipred/internal/model"
)

// Scorer turns one condition's questionnaire into a prediction. Implementations
// are pure: no I/O and no state shared between calls.
type Scorer interface {
	Condition() model.ConditionType
	Evaluate(form model.Form) (*model.PredictionResult, error)
}

// Registry holds one scorer per supported condition
type Registry struct {
	scorers map[model.ConditionType]Scorer
}

// NewRegistry builds the four condition scorers around a shared jitter source
func NewRegistry(jitter JitterSource) *Registry {
	if jitter == nil {
		jitter = DefaultJitter
	}
	r := &Registry{scorers: make(map[model.ConditionType]Scorer, len(model.Conditions))}
	for _, s := range []Scorer{
		NewHeartScorer(jitter),
		NewDiabetesScorer(jitter),
		NewParkinsonsScorer(jitter),
		NewMentalHealthScorer(jitter),
	} {
		r.scorers[s.Condition()] = s
	}
	return r
}

// Get returns the scorer for condition
func (r *Registry) Get(condition model.ConditionType) (Scorer, error) {
	s, ok := r.scorers[condition]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCondition, condition)
	}
	return s, nil
}

// Evaluate decodes and scores form for condition. An unknown condition is
// reported as a validation error wrapping ErrUnknownCondition.
func (r *Registry) Evaluate(condition model.ConditionType, form model.Form) (*model.PredictionResult, error) {
	s, err := r.Get(condition)
	if err != nil {
		return nil, &ValidationError{
			Condition: condition,
			Fields:    []FieldError{{Field: "condition", Reason: "is not supported"}},
			cause:     err,
		}
	}
	return s.Evaluate(form)
}
