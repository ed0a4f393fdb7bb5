package ledgermem

import "cosmossdk.io/errors"

// ErrConflict indicates an enrollment record already exists for a DID;
// the losing enrollment in a race must receive this (spec §5's "linearizable
// on the DID key" guarantee).
var ErrConflict = errors.Register("ledgermem", 1, "ledgermem: an enrollment record already exists for this did")
