// Package aggregator combines up to ten per-finger keys into one master key
// via XOR, with quality-weighted fallback admission when not every enrolled
// finger can be presented (spec §4.4). XOR's commutativity and
// associativity give O(1) rotation and revocation: replacing or removing a
// finger's contribution never requires re-presenting the others.
package aggregator

import (
	"github.com/FractionEstate/decentralized-did/pkg/minutia"
	"github.com/FractionEstate/decentralized-did/pkg/secret"
)

// Aggregate combines the presented finger keys into a master key. If every
// enrolled finger is presented the result is not in fallback mode; otherwise
// admission requires the average quality to clear the tier threshold for
// how many fingers are missing, per DefaultThresholds (or a stricter caller
// override).
func Aggregate(keys []FingerPresentation, enrolledCount int, thresholds Thresholds) (AggregationResult, error) {
	if enrolledCount < 2 || enrolledCount > 10 {
		return AggregationResult{}, ErrInvalidEnrolledCount
	}
	if err := checkDuplicates(keys); err != nil {
		return AggregationResult{}, err
	}

	n := len(keys)
	fallback := n != enrolledCount

	if fallback {
		if n < 2 {
			return AggregationResult{}, ErrInsufficientFingers
		}
		avg := averageQuality(keys)
		required := thresholds.Tier2
		if n == enrolledCount-1 {
			required = thresholds.Tier1
		}
		if avg < required {
			return AggregationResult{}, ErrQualityTooLow
		}
	}

	var master secret.Bytes32
	fingersUsed := make([]minutia.FingerID, 0, n)
	for _, k := range keys {
		master = master.Xor(k.Key)
		fingersUsed = append(fingersUsed, k.FingerID)
	}

	return AggregationResult{
		MasterKey:       master,
		FingersUsed:     fingersUsed,
		FingersEnrolled: enrolledCount,
		AverageQuality:  averageQuality(keys),
		FallbackMode:    fallback,
	}, nil
}

// Rotate derives the master key that results from replacing oldKey with
// newKey for one finger, without re-presenting any other finger: spec
// §4.4's "new_master = old_master XOR old_finger_key XOR new_finger_key".
func Rotate(oldMaster, oldKey, newKey secret.Bytes32) secret.Bytes32 {
	return oldMaster.Xor(oldKey).Xor(newKey)
}

// Revoke derives the master key that results from removing removedKey's
// finger from the aggregation: "new_master = old_master XOR removed_finger_key".
func Revoke(oldMaster, removedKey secret.Bytes32) secret.Bytes32 {
	return oldMaster.Xor(removedKey)
}

func checkDuplicates(keys []FingerPresentation) error {
	seen := make(map[minutia.FingerID]struct{}, len(keys))
	for _, k := range keys {
		if _, ok := seen[k.FingerID]; ok {
			return ErrDuplicateFinger.Wrapf("duplicate finger_id %q", k.FingerID)
		}
		seen[k.FingerID] = struct{}{}
	}
	return nil
}

func averageQuality(keys []FingerPresentation) uint8 {
	if len(keys) == 0 {
		return 0
	}
	var sum int
	for _, k := range keys {
		sum += int(k.Quality)
	}
	return uint8(sum / len(keys))
}
