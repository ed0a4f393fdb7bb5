// Package did derives and parses the DID identifiers this module anchors to
// a ledger: did:<chain>:<network>:<base58-id>, where the id body is a Base58
// encoding of a BLAKE2b-256 hash over an aggregated commitment (spec §4.5).
package did

import (
	"strings"

	"github.com/mr-tron/base58"

	"github.com/FractionEstate/decentralized-did/internal/domainhash"
)

// Chain is the fixed literal identifying this DID method's chain segment.
const Chain = "veid"

// Network selects which ledger network a DID was minted on. The same
// commitment produces a different DID per network, since Network is part of
// the string but not part of the hashed commitment itself — two networks
// sharing a commitment get distinct identifiers by construction.
type Network string

const (
	Mainnet Network = "mainnet"
	Testnet Network = "testnet"
)

// Valid reports whether n is one of the two recognised networks.
func (n Network) Valid() bool {
	return n == Mainnet || n == Testnet
}

// DID is a parsed did:<chain>:<network>:<id> identifier.
type DID struct {
	Chain   string
	Network Network
	ID      string
}

// String renders d back into its canonical did:<chain>:<network>:<id> form.
func (d DID) String() string {
	return "did:" + d.Chain + ":" + string(d.Network) + ":" + d.ID
}

// FromCommitment derives the DID for an aggregated commitment on network.
// The same (commitment, network) pair always yields the same DID; across
// networks the id body is identical and only the network segment differs.
func FromCommitment(commitment [32]byte, network Network) DID {
	digest := domainhash.Sum256("did.v1", commitment[:])
	id := base58.Encode(digest[:])
	return DID{Chain: Chain, Network: network, ID: id}
}

// Parse validates and decomposes a DID string. It rejects the legacy
// did:<chain>:<wallet>#<fragment> format with ErrLegacyFormat, and any
// string that does not match did:<chain>:<network>:<id> with ErrMalformed.
func Parse(s string) (DID, error) {
	if strings.Contains(s, "#") {
		return DID{}, ErrLegacyFormat
	}

	parts := strings.Split(s, ":")
	if len(parts) != 4 || parts[0] != "did" {
		return DID{}, ErrMalformed.Wrapf("expected did:<chain>:<network>:<id>, got %q", s)
	}
	chain, networkStr, id := parts[1], parts[2], parts[3]
	if chain == "" || id == "" {
		return DID{}, ErrMalformed.Wrapf("chain and id segments must be non-empty, got %q", s)
	}

	network := Network(networkStr)
	if !network.Valid() {
		return DID{}, ErrUnknownNetwork.Wrapf("got %q", networkStr)
	}

	decoded, err := base58.Decode(id)
	if err != nil {
		return DID{}, ErrMalformed.Wrapf("id segment is not valid base58: %s", err)
	}
	if len(decoded) != 32 {
		return DID{}, ErrMalformed.Wrapf("id segment decodes to %d bytes, want 32", len(decoded))
	}

	return DID{Chain: chain, Network: network, ID: id}, nil
}
