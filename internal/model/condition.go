package model

// ConditionType identifies one of the supported assessment domains
type ConditionType string

const (
	ConditionHeart        ConditionType = "heart"
	ConditionDiabetes     ConditionType = "diabetes"
	ConditionParkinsons   ConditionType = "parkinsons"
	ConditionMentalHealth ConditionType = "mental-health"
)

// Conditions lists every supported condition in display order
var Conditions = []ConditionType{
	ConditionHeart,
	ConditionDiabetes,
	ConditionParkinsons,
	ConditionMentalHealth,
}

// ParseCondition maps a path or body value onto a known condition
func ParseCondition(s string) (ConditionType, bool) {
	for _, c := range Conditions {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

// String implements fmt.Stringer
func (c ConditionType) String() string {
	return string(c)
}
