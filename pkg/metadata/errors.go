package metadata

import "cosmossdk.io/errors"

// Error codes for the metadata package (spec §4.6).
var (
	ErrBadVersion           = errors.Register("metadata", 1, "metadata: unsupported record version")
	ErrMissingField         = errors.Register("metadata", 2, "metadata: required field missing")
	ErrDuplicateController  = errors.Register("metadata", 3, "metadata: duplicate controller address")
	ErrEmptyControllers     = errors.Register("metadata", 4, "metadata: controllers must be non-empty")
	ErrBadTimestamp         = errors.Register("metadata", 5, "metadata: malformed or missing timestamp")
	ErrRecordTooLarge       = errors.Register("metadata", 6, "metadata: encoded record exceeds inline size bound")
	ErrHelperSchemaMismatch = errors.Register("metadata", 7, "metadata: helperStorage/helperData/helperUri are inconsistent")
	ErrUnauthorizedSigner   = errors.Register("metadata", 8, "metadata: signer is not a member of the controller set at parent height")
	ErrDidMismatch          = errors.Register("metadata", 9, "metadata: update record's did does not match target record")
)
