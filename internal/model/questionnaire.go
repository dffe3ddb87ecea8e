package model

// Form is a questionnaire as it arrives from a client: field names mapped to
// numbers, numeric strings, enum strings or "true"/"false" strings.
type Form map[string]interface{}

// HeartAnswers is the validated heart-disease questionnaire
type HeartAnswers struct {
	Age            int     `json:"age" mapstructure:"age" validate:"min=20,max=100"`
	Sex            string  `json:"sex" mapstructure:"sex" validate:"oneof=male female"`
	ChestPainType  string  `json:"chestPainType" mapstructure:"chestPainType" validate:"oneof=typical atypical nonAnginal asymptomatic"`
	RestingBP      float64 `json:"restingBP" mapstructure:"restingBP" validate:"min=80,max=200"`     // mm Hg
	Cholesterol    float64 `json:"cholesterol" mapstructure:"cholesterol" validate:"min=100,max=600"` // mg/dl
	FastingBS      bool    `json:"fastingBS" mapstructure:"fastingBS"`                                // Fasting blood sugar > 120 mg/dl
	RestingECG     string  `json:"restingECG" mapstructure:"restingECG" validate:"oneof=normal stWaveAbnormality leftVentricularHypertrophy"`
	MaxHR          float64 `json:"maxHR" mapstructure:"maxHR" validate:"min=60,max=220"` // bpm
	ExerciseAngina string  `json:"exerciseAngina" mapstructure:"exerciseAngina" validate:"oneof=yes no"`
	Oldpeak        float64 `json:"oldpeak" mapstructure:"oldpeak" validate:"min=0,max=10"` // ST depression, mm
	STSlope        string  `json:"stSlope" mapstructure:"stSlope" validate:"oneof=upsloping flat downsloping"`
	MajorVessels   int     `json:"majorVessels" mapstructure:"majorVessels" validate:"min=0,max=3"`
	Thalassemia    string  `json:"thalassemia" mapstructure:"thalassemia" validate:"oneof=normal fixedDefect reversibleDefect"`
}

// DiabetesAnswers is the validated diabetes questionnaire
type DiabetesAnswers struct {
	Pregnancies      int     `json:"pregnancies" mapstructure:"pregnancies" validate:"min=0,max=20"`
	Glucose          float64 `json:"glucose" mapstructure:"glucose" validate:"min=50,max=250"`             // mg/dL
	BloodPressure    float64 `json:"bloodPressure" mapstructure:"bloodPressure" validate:"min=30,max=180"` // Diastolic, mm Hg
	SkinThickness    float64 `json:"skinThickness" mapstructure:"skinThickness" validate:"min=0,max=100"`  // mm
	Insulin          float64 `json:"insulin" mapstructure:"insulin" validate:"min=0,max=900"`              // mu U/ml
	BMI              float64 `json:"bmi" mapstructure:"bmi" validate:"min=10,max=70"`
	DiabetesPedigree float64 `json:"diabetesPedigree" mapstructure:"diabetesPedigree" validate:"min=0,max=2.5"`
	Age              int     `json:"age" mapstructure:"age" validate:"min=18,max=120"`
}

// ParkinsonsAnswers is the validated Parkinson's questionnaire
type ParkinsonsAnswers struct {
	Age                 int    `json:"age" mapstructure:"age" validate:"min=18,max=120"`
	Gender              string `json:"gender" mapstructure:"gender" validate:"omitempty,oneof=male female other"`
	Tremor              string `json:"tremor" mapstructure:"tremor" validate:"oneof=none mild moderate severe"`
	Rigidity            string `json:"rigidity" mapstructure:"rigidity" validate:"oneof=none mild moderate severe"`
	Bradykinesia        string `json:"bradykinesia" mapstructure:"bradykinesia" validate:"oneof=none mild moderate severe"`
	PosturalInstability string `json:"posturalInstability" mapstructure:"posturalInstability" validate:"oneof=none mild moderate severe"`
	SpeechChanges       string `json:"speechChanges" mapstructure:"speechChanges" validate:"oneof=none mild moderate severe"`
	FacialExpression    string `json:"facialExpression" mapstructure:"facialExpression" validate:"oneof=normal reduced masked"`
	Handwriting         string `json:"handwriting" mapstructure:"handwriting" validate:"oneof=normal slightly_small micrographia"`
	SleepProblems       string `json:"sleepProblems" mapstructure:"sleepProblems" validate:"oneof=none mild moderate severe"`
	Depression          string `json:"depression" mapstructure:"depression" validate:"oneof=none mild moderate severe"`
	Anxiety             string `json:"anxiety" mapstructure:"anxiety" validate:"omitempty,oneof=none mild moderate severe"`
	FamilyHistory       string `json:"familyHistory" mapstructure:"familyHistory" validate:"oneof=yes no"`
	ExposureToToxins    string `json:"exposureToToxins" mapstructure:"exposureToToxins" validate:"oneof=yes no"`
	HeadInjury          string `json:"headInjury" mapstructure:"headInjury" validate:"oneof=yes no"`
}

// MentalHealthAnswers is the validated mental-health questionnaire
type MentalHealthAnswers struct {
	Age              int    `json:"age,omitempty" mapstructure:"age" validate:"omitempty,min=1,max=120"`
	Gender           string `json:"gender,omitempty" mapstructure:"gender" validate:"omitempty,oneof=male female other"`
	MoodChanges      string `json:"moodChanges" mapstructure:"moodChanges" validate:"oneof=none mild moderate severe"`
	AnxietyLevel     string `json:"anxietyLevel" mapstructure:"anxietyLevel" validate:"oneof=none mild moderate severe"`
	SleepQuality     string `json:"sleepQuality" mapstructure:"sleepQuality" validate:"oneof=good fair poor very_poor"`
	EnergyLevel      string `json:"energyLevel" mapstructure:"energyLevel" validate:"oneof=high normal low very_low"`
	Concentration    string `json:"concentration" mapstructure:"concentration" validate:"oneof=excellent normal poor very_poor"`
	Appetite         string `json:"appetite" mapstructure:"appetite" validate:"oneof=increased normal decreased severe_decrease"`
	SocialWithdrawal string `json:"socialWithdrawal" mapstructure:"socialWithdrawal" validate:"oneof=none mild moderate severe"`
	SuicidalThoughts string `json:"suicidalThoughts" mapstructure:"suicidalThoughts" validate:"oneof=none mild moderate severe"`
	SubstanceUse     string `json:"substanceUse" mapstructure:"substanceUse" validate:"oneof=none mild moderate severe"`
	FamilyHistory    string `json:"familyHistory" mapstructure:"familyHistory" validate:"oneof=yes no"`
	RecentTrauma     string `json:"recentTrauma" mapstructure:"recentTrauma" validate:"oneof=yes no"`
	StressLevel      string `json:"stressLevel" mapstructure:"stressLevel" validate:"oneof=low moderate high very_high"`
	PhysicalSymptoms string `json:"physicalSymptoms" mapstructure:"physicalSymptoms" validate:"oneof=none mild moderate severe"`
}
