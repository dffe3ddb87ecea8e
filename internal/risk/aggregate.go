package risk

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"medipred/internal/model"
)

const (
	minProbability = 0.05
	maxProbability = 0.95
)

// rung is one threshold of a ladder; ladders are checked from the top down
type rung struct {
	threshold float64
	score     float64
}

// exceeds returns the score of the first rung strictly below v
func exceeds(v float64, rungs ...rung) float64 {
	for _, r := range rungs {
		if v > r.threshold {
			return r.score
		}
	}
	return 0
}

// reaches returns the score of the first rung at or below v
func reaches(v float64, rungs ...rung) float64 {
	for _, r := range rungs {
		if v >= r.threshold {
			return r.score
		}
	}
	return 0
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

// toPercent converts a probability to a percentage with one decimal place
func toPercent(p float64) float64 {
	return math.Round(p*1000) / 10
}

// elevated classifies on the reported percentage
func elevated(percent, threshold float64) bool {
	return percent > threshold*100
}

// impactTier maps a contribution normalized against its maximum
func impactTier(ratio float64) model.ImpactTier {
	switch {
	case ratio > 0.8:
		return model.ImpactHigh
	case ratio > 0.4:
		return model.ImpactMedium
	default:
		return model.ImpactLow
	}
}

// contribution is a scored questionnaire field before ranking
type contribution struct {
	name  string
	value string
	score float64
	max   float64
}

// rankByContribution orders factors by descending score, keeping input order
// on ties, and keeps the first limit entries.
func rankByContribution(cs []contribution, limit int) []model.RiskFactor {
	sorted := make([]contribution, len(cs))
	copy(sorted, cs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].score > sorted[j].score
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}

	factors := make([]model.RiskFactor, 0, len(sorted))
	for _, c := range sorted {
		ratio := 0.0
		if c.max > 0 {
			ratio = c.score / c.max
		}
		factors = append(factors, model.RiskFactor{
			Name:   c.name,
			Value:  c.value,
			Weight: c.score,
			Impact: impactTier(ratio),
		})
	}
	return factors
}

// rankByWeight orders factors by descending weight, keeping input order on ties
func rankByWeight(factors []model.RiskFactor) []model.RiskFactor {
	sorted := make([]model.RiskFactor, len(factors))
	copy(sorted, factors)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Weight > sorted[j].Weight
	})
	return sorted
}

var tierOrder = map[model.ImpactTier]int{
	model.ImpactHigh:   0,
	model.ImpactMedium: 1,
	model.ImpactLow:    2,
}

// rankByTier orders factors high, medium, low (stable) and keeps the first limit
func rankByTier(factors []model.RiskFactor, limit int) []model.RiskFactor {
	sorted := make([]model.RiskFactor, len(factors))
	copy(sorted, factors)
	sort.SliceStable(sorted, func(i, j int) bool {
		return tierOrder[sorted[i].Impact] < tierOrder[sorted[j].Impact]
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// spaceCamel turns "leftVentricularHypertrophy" into "left Ventricular Hypertrophy"
func spaceCamel(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsUpper(r) {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}
