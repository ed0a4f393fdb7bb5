// Package domainhash provides the single domain-separated BLAKE2b-256
// construction used everywhere this module needs a "personalised" hash:
// the DID builder, the aggregation commitment, and the fuzzy extractor's
// key and MAC derivation all call into this package so the separation
// technique lives in exactly one place.
//
// golang.org/x/crypto/blake2b does not expose RFC 7693's Salt/Personal
// parameter-block fields on its stable New256/Sum256 surface, so
// personalisation is expressed explicitly instead: a length-prefixed
// domain tag and every input part are written into the hash state ahead of
// the caller's data, which gives the same separation guarantee a native
// Person field would without depending on an unconfirmed API shape.
package domainhash

import (
	"encoding/binary"
	"hash"

	"golang.org/x/crypto/blake2b"
)

// Sum256 computes an unkeyed, domain-separated BLAKE2b-256 digest of person
// and parts. Used where the hash need not be secret-keyed — e.g. the DID
// builder's commitment-to-identifier hash, which is public by design.
func Sum256(person string, parts ...[]byte) [32]byte {
	return Keyed256(nil, person, parts...)
}

// Keyed256 computes a domain-separated BLAKE2b-256 digest keyed by key (up
// to 64 bytes). Used where the hash must be unforgeable without knowledge
// of key — e.g. deriving a FingerKey from a salt.
func Keyed256(key []byte, person string, parts ...[]byte) [32]byte {
	h, err := blake2b.New256(key)
	if err != nil {
		// Only reachable if key exceeds 64 bytes; every caller in this
		// module passes a fixed-size key it controls.
		panic("domainhash: invalid blake2b key length: " + err.Error())
	}
	writeLengthPrefixed(h, []byte(person))
	for _, p := range parts {
		writeLengthPrefixed(h, p)
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// New256 returns a fresh, unkeyed BLAKE2b-256 hash.Hash constructor,
// suitable for use as the underlying hash in crypto/hmac.New.
func New256() hash.Hash {
	h, err := blake2b.New256(nil)
	if err != nil {
		panic("domainhash: blake2b.New256(nil) failed: " + err.Error())
	}
	return h
}

func writeLengthPrefixed(h hash.Hash, b []byte) {
	var lenBuf [8]byte
	binary.BigEndian.PutUint64(lenBuf[:], uint64(len(b)))
	h.Write(lenBuf[:])
	h.Write(b)
}
