package risk

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"

	"medipred/internal/model"
)

// requiredFields must be present and non-blank before decoding. Enum fields
// are covered by their oneof rules; these are the fields a zero value would
// otherwise silently satisfy.
var requiredFields = map[model.ConditionType][]string{
	model.ConditionHeart: {
		"age", "restingBP", "cholesterol", "fastingBS", "maxHR", "oldpeak", "majorVessels",
	},
	model.ConditionDiabetes: {
		"pregnancies", "glucose", "bloodPressure", "skinThickness", "insulin", "bmi", "diabetesPedigree", "age",
	},
	model.ConditionParkinsons: {"age"},
	model.ConditionMentalHealth: {},
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// DecodeHeart validates a heart-disease form
func DecodeHeart(form model.Form) (*model.HeartAnswers, error) {
	var a model.HeartAnswers
	if err := decode(model.ConditionHeart, form, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// DecodeDiabetes validates a diabetes form
func DecodeDiabetes(form model.Form) (*model.DiabetesAnswers, error) {
	var a model.DiabetesAnswers
	if err := decode(model.ConditionDiabetes, form, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// DecodeParkinsons validates a Parkinson's form
func DecodeParkinsons(form model.Form) (*model.ParkinsonsAnswers, error) {
	var a model.ParkinsonsAnswers
	if err := decode(model.ConditionParkinsons, form, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// DecodeMentalHealth validates a mental-health form
func DecodeMentalHealth(form model.Form) (*model.MentalHealthAnswers, error) {
	var a model.MentalHealthAnswers
	if err := decode(model.ConditionMentalHealth, form, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func decode(condition model.ConditionType, form model.Form, out interface{}) error {
	verr := &ValidationError{Condition: condition}

	input := make(map[string]interface{}, len(form))
	for k, v := range form {
		if s, ok := v.(string); ok {
			v = strings.TrimSpace(s)
		}
		input[k] = v
	}

	for _, field := range requiredFields[condition] {
		v, ok := input[field]
		if !ok || v == nil || v == "" {
			verr.add(field, "is required")
		}
	}
	if !verr.empty() {
		return verr
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return fmt.Errorf("build %s decoder: %w", condition, err)
	}
	if err := dec.Decode(input); err != nil {
		var merr *mapstructure.Error
		if !errors.As(err, &merr) {
			return fmt.Errorf("decode %s questionnaire: %w", condition, err)
		}
		for _, msg := range merr.Errors {
			verr.add("", msg)
		}
		return verr
	}

	if err := validate.Struct(out); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return fmt.Errorf("validate %s questionnaire: %w", condition, err)
		}
		for _, fe := range fieldErrs {
			verr.add(fe.Field(), describe(fe))
		}
		return verr
	}
	return nil
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	default:
		return "failed " + fe.Tag() + " check"
	}
}
