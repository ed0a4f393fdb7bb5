package fuzzyextractor

import (
	"encoding/binary"

	"github.com/FractionEstate/decentralized-did/pkg/minutia"
)

// CurrentVersion and CurrentCodeParamsTag identify the helper-data layout
// and BCH(127,64,10) parameterization this build produces and accepts.
// Rep rejects any helper that does not carry both.
const (
	CurrentVersion       byte = 0x01
	CurrentCodeParamsTag byte = 0x01
)

// Helper is the public, non-secret bundle Gen emits alongside a FingerKey.
// It is safe to store on a ledger or hand to a verifier: recovering the key
// from Helper alone requires also supplying a sample within t=10 bits of the
// one enrolled, per the BCH(127,64,10) secure sketch (spec §3, §4.3).
type Helper struct {
	FingerID      minutia.FingerID
	Salt          [32]byte
	Offset        [16]byte // codeword XOR quantized vector, 127 bits packed MSB-first
	Mac           [16]byte
	CodeParamsTag byte
	Version       byte
}

// macInput returns the canonical, fixed-order byte encoding of every Helper
// field except Mac itself — the input the MAC is computed and verified over.
func (h Helper) macInput() []byte {
	fid := []byte(h.FingerID)
	buf := make([]byte, 0, 8+len(fid)+32+16+1+1)

	var lenBuf [8]byte
	binary.BigEndian.PutUint64(lenBuf[:], uint64(len(fid)))
	buf = append(buf, lenBuf[:]...)
	buf = append(buf, fid...)
	buf = append(buf, h.Salt[:]...)
	buf = append(buf, h.Offset[:]...)
	buf = append(buf, h.CodeParamsTag, h.Version)
	return buf
}
