package fuzzyextractor

import (
	"hash"

	"github.com/FractionEstate/decentralized-did/internal/domainhash"
)

func keyedHash(key []byte, person string, parts ...[]byte) [32]byte {
	return domainhash.Keyed256(key, person, parts...)
}

func newBlake2b256() hash.Hash {
	return domainhash.New256()
}
