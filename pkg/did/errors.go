package did

import "cosmossdk.io/errors"

// Error codes for the did package (spec §4.5).
var (
	// ErrLegacyFormat indicates a parsed string matches the prior
	// did:<chain>:<wallet>#<fragment> shape, which is explicitly rejected.
	ErrLegacyFormat = errors.Register("did", 1, "did: legacy did:<chain>:<wallet>#<fragment> format is not accepted")

	// ErrMalformed indicates a string does not match the
	// did:<chain>:<network>:<id> shape at all.
	ErrMalformed = errors.Register("did", 2, "did: malformed identifier")

	// ErrUnknownNetwork indicates the network segment is neither "mainnet"
	// nor "testnet".
	ErrUnknownNetwork = errors.Register("did", 3, "did: unknown network")
)
