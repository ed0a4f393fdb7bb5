package aggregator

import (
	"github.com/FractionEstate/decentralized-did/pkg/minutia"
	"github.com/FractionEstate/decentralized-did/pkg/secret"
)

// FingerPresentation is one finger's contribution to an aggregation call:
// the FingerKey reproduced by fuzzyextractor.Rep (or freshly issued by
// fuzzyextractor.Gen), tagged with the finger it came from and the quality
// score its template carried.
type FingerPresentation struct {
	FingerID minutia.FingerID
	Key      secret.Bytes32
	Quality  uint8
}

// Thresholds configures the fallback admission tiers (spec §4.4). Callers
// may raise these but must not lower them below the system defaults.
type Thresholds struct {
	// Tier1 is the minimum average quality required when exactly
	// enrolledCount-1 fingers are presented.
	Tier1 uint8
	// Tier2 is the minimum average quality required when enrolledCount-2 or
	// fewer fingers are presented (still requiring at least two).
	Tier2 uint8
}

// DefaultThresholds returns the system default fallback tiers: 70 for a
// single missing finger, 85 for two or more missing.
func DefaultThresholds() Thresholds {
	return Thresholds{Tier1: 70, Tier2: 85}
}

// Tier classifies an AggregationResult's admission path, for logging and UI
// presentation. It is not part of the wire contract — callers needing a
// machine-checkable signal should use FallbackMode and FingersUsed instead.
type Tier string

const (
	TierFull Tier = "full"
	TierOne  Tier = "fallback_tier1"
	TierTwo  Tier = "fallback_tier2"
)

// AggregationResult is the outcome of a successful Aggregate call (spec
// §4.2's AggregationResult type).
type AggregationResult struct {
	MasterKey       secret.Bytes32
	FingersUsed     []minutia.FingerID
	FingersEnrolled int
	AverageQuality  uint8
	FallbackMode    bool
}

// Tier reports which admission path produced r, for observability. It
// re-derives the classification from FingersUsed/FingersEnrolled rather
// than storing it, so it always agrees with the invariants Aggregate
// enforced.
func (r AggregationResult) Tier() Tier {
	if !r.FallbackMode {
		return TierFull
	}
	if len(r.FingersUsed) == r.FingersEnrolled-1 {
		return TierOne
	}
	return TierTwo
}
