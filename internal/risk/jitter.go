package risk

import "math/rand"

// JitterSource yields the noise added to a heuristic probability. Scorers ask
// for a value in [lo, hi); implementations decide how to pick it.
type JitterSource interface {
	Jitter(lo, hi float64) float64
}

type uniformJitter struct{}

// Jitter draws uniformly from [lo, hi) using the shared math/rand source,
// which is safe for concurrent use.
func (uniformJitter) Jitter(lo, hi float64) float64 {
	return lo + rand.Float64()*(hi-lo)
}

// DefaultJitter is the uniform source used outside of tests
var DefaultJitter JitterSource = uniformJitter{}

// FixedJitter always returns the same offset, clamped to the requested interval
type FixedJitter float64

// Jitter implements JitterSource
func (f FixedJitter) Jitter(lo, hi float64) float64 {
	return clamp(float64(f), lo, hi)
}

// Jitter intervals per condition
const (
	symmetricJitter = 0.05 // heart, diabetes, Parkinson's: [-0.05, +0.05)
	conditionJitter = 0.1  // mental-health sub-conditions: [0, 0.1)
)
