package fuzzyextractor

import "cosmossdk.io/errors"

// Error codes for the fuzzyextractor package. Spec §4.3's "Error taxonomy",
// minus InsufficientFeatures which originates in the quantizer and merely
// propagates through Gen/Rep.
var (
	// ErrTooNoisy indicates the BCH decoder could not correct the received
	// word: Rep's reproduction sample differs from the enrolled one by more
	// than t=10 bits.
	ErrTooNoisy = errors.Register("fuzzyextractor", 1, "fuzzyextractor: too noisy, decode failure exceeds code capacity")

	// ErrTampered indicates the recomputed MAC does not match helper.Mac —
	// the helper bundle has been modified since Gen produced it.
	ErrTampered = errors.Register("fuzzyextractor", 2, "fuzzyextractor: helper MAC mismatch")

	// ErrUnsupportedParams indicates helper.Version or helper.CodeParamsTag
	// is not one this build understands.
	ErrUnsupportedParams = errors.Register("fuzzyextractor", 3, "fuzzyextractor: unsupported helper version or code params tag")

	// ErrRNGFailure indicates the caller-supplied RNG failed to fill the
	// salt or message buffer.
	ErrRNGFailure = errors.Register("fuzzyextractor", 4, "fuzzyextractor: failed to read from rng")
)
