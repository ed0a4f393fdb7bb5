package quantizer

import "cosmossdk.io/errors"

// Error codes for the quantizer package.
var (
	// ErrInsufficientFeatures indicates the template is empty, or its
	// quantized vector set fewer bits than Params.MinSetBits. Spec §4.1.
	ErrInsufficientFeatures = errors.Register("quantizer", 1, "quantizer: insufficient features in template")

	// ErrInvalidParams indicates a Params value failed Validate.
	ErrInvalidParams = errors.Register("quantizer", 2, "quantizer: invalid parameters")
)
