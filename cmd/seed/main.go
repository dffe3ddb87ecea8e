package main

import (
	"context"
	"os"
	"time"

	"medipred/internal/app"
	"medipred/internal/config"
	"medipred/internal/model"
)

// demoForms are scored and stored for the seed user, one per condition
var demoForms = map[model.ConditionType]model.Form{
	model.ConditionHeart: {
		"age": "58", "sex": "male", "chestPainType": "asymptomatic", "restingBP": "150",
		"cholesterol": "260", "fastingBS": "true", "restingECG": "stWaveAbnormality",
		"maxHR": "120", "exerciseAngina": "yes", "oldpeak": "2.3", "stSlope": "flat",
		"majorVessels": "1", "thalassemia": "reversibleDefect",
	},
	model.ConditionDiabetes: {
		"pregnancies": "2", "glucose": "155", "bloodPressure": "85", "skinThickness": "32",
		"insulin": "180", "bmi": "33.4", "diabetesPedigree": "0.9", "age": "47",
	},
	model.ConditionParkinsons: {
		"age": "66", "gender": "female", "tremor": "mild", "rigidity": "mild",
		"bradykinesia": "moderate", "posturalInstability": "none", "speechChanges": "mild",
		"facialExpression": "reduced", "handwriting": "slightly_small", "sleepProblems": "moderate",
		"depression": "mild", "anxiety": "none", "familyHistory": "yes",
		"exposureToToxins": "no", "headInjury": "no",
	},
	model.ConditionMentalHealth: {
		"age": "29", "moodChanges": "moderate", "anxietyLevel": "moderate", "sleepQuality": "poor",
		"energyLevel": "low", "concentration": "poor", "appetite": "normal",
		"socialWithdrawal": "mild", "suicidalThoughts": "none", "substanceUse": "none",
		"familyHistory": "no", "recentTrauma": "no", "stressLevel": "high", "physicalSymptoms": "mild",
	},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	cfg.ScoringDelay = 0
	logger := app.NewLogger(cfg, os.Stdout)

	userID := "demo-user"
	if len(os.Args) > 1 {
		userID = os.Args[1]
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect")
	}
	defer a.Close(context.Background())

	for _, condition := range model.Conditions {
		record, err := a.Service.Assess(ctx, userID, condition, demoForms[condition])
		if err != nil {
			logger.Fatal().Err(err).Str("condition", condition.String()).Msg("failed to seed prediction")
		}
		logger.Info().
			Str("id", record.ID).
			Str("condition", condition.String()).
			Float64("probability", record.Result.Probability).
			Msg("seeded prediction")
	}

	logger.Info().Str("user_id", userID).Int("count", len(model.Conditions)).Msg("seed complete")
}
