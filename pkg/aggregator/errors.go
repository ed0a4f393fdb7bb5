package aggregator

import "cosmossdk.io/errors"

// Error codes for the aggregator package (spec §4.4).
var (
	// ErrInsufficientFingers indicates fewer than two finger keys were
	// presented, regardless of quality.
	ErrInsufficientFingers = errors.Register("aggregator", 1, "aggregator: fewer than two finger keys presented")

	// ErrQualityTooLow indicates a fallback presentation's average quality
	// fell below the tier threshold its finger count requires.
	ErrQualityTooLow = errors.Register("aggregator", 2, "aggregator: average quality below fallback tier threshold")

	// ErrDuplicateFinger indicates the same finger_id appeared twice in one
	// aggregate call.
	ErrDuplicateFinger = errors.Register("aggregator", 3, "aggregator: duplicate finger_id in presented keys")

	// ErrUnknownFinger indicates a target finger is not part of the current
	// aggregation. Rotate and Revoke work on keys alone and never return it.
	ErrUnknownFinger = errors.Register("aggregator", 4, "aggregator: finger_id not present in aggregation")

	// ErrInvalidEnrolledCount indicates enrolledCount fell outside [2,10].
	ErrInvalidEnrolledCount = errors.Register("aggregator", 5, "aggregator: enrolled_count must be within [2,10]")
)
