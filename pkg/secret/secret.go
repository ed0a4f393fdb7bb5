// Package secret provides scoped, zeroizing wrappers for the key material
// the fuzzy extractor and aggregator produce. Per spec §9 ("Secret
// lifetime") and §5 ("Shared-resource policy"), FingerKey and master-key
// bytes must never survive past the caller's use of them in readable form;
// Wipe overwrites the backing array in place so no copy lingers in a heap
// container that might outlive its owner.
package secret

// Bytes32 is a 32-byte secret value (a FingerKey or master key) with
// constant-time equality and explicit zeroization. It is a value type, not a
// slice, so it is never accidentally aliased by append or slicing the way a
// []byte would be; callers that need to hold it across a scope boundary
// still own a single backing array they can Wipe themselves.
type Bytes32 [32]byte

// Equal compares two secrets in constant time, regardless of their byte
// content, so the result does not leak timing information about where two
// keys first differ.
func (b Bytes32) Equal(other Bytes32) bool {
	var diff byte
	for i := range b {
		diff |= b[i] ^ other[i]
	}
	return diff == 0
}

// Xor returns the bytewise XOR of b and other. Used by the aggregator to
// combine finger keys and by rotation/revocation to derive an updated master
// key (spec §4.4); b itself is left unchanged.
func (b Bytes32) Xor(other Bytes32) Bytes32 {
	var out Bytes32
	for i := range b {
		out[i] = b[i] ^ other[i]
	}
	return out
}

// Wipe overwrites b with zeros. Call it via defer as soon as a secret's
// plaintext value is no longer needed:
//
//	key := deriveKey(...)
//	defer key.Wipe()
func (b *Bytes32) Wipe() {
	for i := range b {
		b[i] = 0
	}
}

// IsZero reports whether every byte of b is zero. Used defensively after
// Wipe, and to detect an unset secret before use.
func (b Bytes32) IsZero() bool {
	var acc byte
	for _, v := range b {
		acc |= v
	}
	return acc == 0
}
