package bch

import "cosmossdk.io/errors"

// Error codes for the bch package.
var (
	// ErrDecodeFailure indicates the received word has more bit errors than
	// the code's correction capacity (t); spec §4.2's DecodeFailure.
	ErrDecodeFailure = errors.Register("bch", 1, "bch: decode failure, error count exceeds correction capacity")
)
