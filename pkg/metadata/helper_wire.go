package metadata

import (
	"github.com/mr-tron/base58"

	"github.com/FractionEstate/decentralized-did/pkg/fuzzyextractor"
	"github.com/FractionEstate/decentralized-did/pkg/minutia"
)

// ToWireHelper converts a fuzzyextractor.Helper into its canonical
// Base58-encoded wire form.
func ToWireHelper(h fuzzyextractor.Helper) WireHelper {
	return WireHelper{
		CodeParamsTag: h.CodeParamsTag,
		FingerID:      string(h.FingerID),
		Mac:           base58.Encode(h.Mac[:]),
		Offset:        base58.Encode(h.Offset[:]),
		Salt:          base58.Encode(h.Salt[:]),
		Version:       h.Version,
	}
}

// ToHelper decodes a wire-form helper back into a fuzzyextractor.Helper.
func (w WireHelper) ToHelper() (fuzzyextractor.Helper, error) {
	salt, err := base58.Decode(w.Salt)
	if err != nil || len(salt) != 32 {
		return fuzzyextractor.Helper{}, ErrHelperSchemaMismatch.Wrap("salt must decode to 32 bytes")
	}
	offset, err := base58.Decode(w.Offset)
	if err != nil || len(offset) != 16 {
		return fuzzyextractor.Helper{}, ErrHelperSchemaMismatch.Wrap("offset must decode to 16 bytes")
	}
	mac, err := base58.Decode(w.Mac)
	if err != nil || len(mac) != 16 {
		return fuzzyextractor.Helper{}, ErrHelperSchemaMismatch.Wrap("mac must decode to 16 bytes")
	}

	h := fuzzyextractor.Helper{
		FingerID:      minutia.FingerID(w.FingerID),
		CodeParamsTag: w.CodeParamsTag,
		Version:       w.Version,
	}
	copy(h.Salt[:], salt)
	copy(h.Offset[:], offset)
	copy(h.Mac[:], mac)
	return h, nil
}
