package graph

import (
	"math"
	"time"
)

// Decay scoring:
//   - exponential: exp(-elapsedDays / decayDays)
//   - floor: 0.05, so old items stay discoverable but deprioritized
//   - blended into traversal scores as (0.5 + 0.5*decay) so recency
//     modulates rather than dominates structural relevance

const (
	// DefaultDecayDays is the half-life-ish window for temporal decay.
	DefaultDecayDays = 30.0

	// decayFloor keeps old items discoverable.
	decayFloor = 0.05

	// depthPenalty multiplies the score once per hop.
	depthPenalty = 0.7

	// defaultLinkWeight stands in for links with no recorded weight.
	defaultLinkWeight = 0.5
)

// TemporalDecay returns a recency score in [0.05, 1.0] for an observation at
// the given time. Pure and deterministic apart from the clock.
func TemporalDecay(at time.Time, decayDays float64) float64 {
	return temporalDecayAt(at, decayDays, time.Now())
}

func temporalDecayAt(at time.Time, decayDays float64, now time.Time) float64 {
	if decayDays <= 0 {
		decayDays = DefaultDecayDays
	}
	elapsed := now.Sub(at).Hours() / 24
	if elapsed <= 0 {
		return 1.0
	}
	score := math.Exp(-elapsed / decayDays)
	if score < decayFloor {
		return decayFloor
	}
	return score
}

// temporalBlend maps a decay score into the [0.5, 1.0] multiplier applied to
// structural scores.
func temporalBlend(decay float64) float64 {
	return 0.5 + 0.5*decay
}

// EntityScore is the per-node relevance formula: depth penalty times link
// weight times the temporal blend. A nil link scores with the default weight
// and decays from the entity's creation time. Traversal accumulates the same
// factors hop by hop.
func EntityScore(entity Entity, link *EntityLink, depth int, decayDays float64) float64 {
	return entityScoreAt(entity, link, depth, decayDays, time.Now())
}

func entityScoreAt(entity Entity, link *EntityLink, depth int, decayDays float64, now time.Time) float64 {
	weight := defaultLinkWeight
	at := entity.CreatedAt
	if link != nil {
		if link.Weight > 0 {
			weight = link.Weight
		}
		at = link.LastSeenAt
	}
	decay := temporalDecayAt(at, decayDays, now)
	return math.Pow(depthPenalty, float64(depth)) * weight * temporalBlend(decay)
}
