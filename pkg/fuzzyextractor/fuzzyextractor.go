// Package fuzzyextractor implements the Gen/Rep fuzzy extractor described in
// spec §4.3: a BCH(127,64,10) secure sketch wrapped in keyed BLAKE2b-256
// hashing, turning a noisy 127-bit quantized fingerprint vector into a
// stable 32-byte FingerKey plus a public Helper bundle that leaks no
// information about the key beyond what the sketch necessarily reveals.
package fuzzyextractor

import (
	"crypto/hmac"
	"crypto/subtle"
	"io"

	"github.com/FractionEstate/decentralized-did/pkg/bch"
	"github.com/FractionEstate/decentralized-did/pkg/bitvec"
	"github.com/FractionEstate/decentralized-did/pkg/minutia"
	"github.com/FractionEstate/decentralized-did/pkg/secret"
)

// Gen consumes a quantized vector w and an rng, and produces a fresh
// FingerKey together with the Helper needed to reproduce it from any vector
// within BCH(127,64,10)'s correction radius (t=10 bit flips) of w.
func Gen(w bitvec.Len127, fingerID minutia.FingerID, rng io.Reader) (secret.Bytes32, Helper, error) {
	var salt [32]byte
	if _, err := io.ReadFull(rng, salt[:]); err != nil {
		return secret.Bytes32{}, Helper{}, ErrRNGFailure.Wrap(err.Error())
	}

	var msgBytes [8]byte
	if _, err := io.ReadFull(rng, msgBytes[:]); err != nil {
		return secret.Bytes32{}, Helper{}, ErrRNGFailure.Wrap(err.Error())
	}
	message := bch.Message(msgBytes)

	codeword := bch.Encode(message)
	offsetVec := codeword.Xor(w)

	key := keyedHash(salt[:], "fx.key.v1", msgBytes[:], []byte(fingerID))

	helper := Helper{
		FingerID:      fingerID,
		Salt:          salt,
		Offset:        offsetVec.Bytes(),
		CodeParamsTag: CurrentCodeParamsTag,
		Version:       CurrentVersion,
	}
	helper.Mac = computeMac(salt[:], key, helper)

	return secret.Bytes32(key), helper, nil
}

// Rep reproduces the FingerKey Gen issued for helper, given a fresh
// quantized vector w2. It fails with ErrTooNoisy if w2 differs from the
// enrolled vector by more bits than BCH(127,64,10) can correct, and with
// ErrTampered if helper's MAC does not match its contents.
func Rep(w2 bitvec.Len127, helper Helper) (secret.Bytes32, error) {
	if helper.Version != CurrentVersion || helper.CodeParamsTag != CurrentCodeParamsTag {
		return secret.Bytes32{}, ErrUnsupportedParams.Wrapf(
			"got version=%d code_params_tag=%d", helper.Version, helper.CodeParamsTag)
	}

	offsetVec := bitvec.FromBytes(helper.Offset)
	noisyCodeword := offsetVec.Xor(w2)

	decoded, err := bch.Decode(noisyCodeword)
	if err != nil {
		return secret.Bytes32{}, ErrTooNoisy.Wrap(err.Error())
	}
	message := bch.MessageOf(decoded.Corrected)

	key := keyedHash(helper.Salt[:], "fx.key.v1", message[:], []byte(helper.FingerID))

	expectedMac := computeMac(helper.Salt[:], key, helper)
	if subtle.ConstantTimeCompare(expectedMac[:], helper.Mac[:]) != 1 {
		for i := range key {
			key[i] = 0
		}
		return secret.Bytes32{}, ErrTampered
	}

	return secret.Bytes32(key), nil
}

// computeMac derives the MAC key from salt and key, then computes an
// HMAC-BLAKE2b-256 over helper's canonical encoding, truncated to 16 bytes.
func computeMac(salt []byte, key [32]byte, helper Helper) [16]byte {
	macKeyFull := keyedHash(salt, "fx.mac.v1", key[:])
	macKey := macKeyFull[:16]

	mac := hmac.New(newBlake2b256, macKey)
	mac.Write(helper.macInput())
	sum := mac.Sum(nil)

	var out [16]byte
	copy(out[:], sum[:16])
	return out
}
