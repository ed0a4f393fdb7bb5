// Package quantizer turns a caller-supplied FingerTemplate (an unordered
// list of minutiae) into a fixed-length, order-independent 127-bit vector by
// binning every minutia into a (spatial cell, angle bin) pair and setting
// the corresponding output bit. It is a pure function of the template and
// Params: it never reads images, never retains minutiae past the call, and
// the same template always produces the same vector (spec §4.1).
package quantizer

import (
	"github.com/FractionEstate/decentralized-did/pkg/bitvec"
	"github.com/FractionEstate/decentralized-did/pkg/minutia"
)

// Quantize bins every minutia in t into a 127-bit vector under params. The
// order of t.Minutiae never affects the result, and duplicate (cell, angle)
// pairs collapse via idempotent OR rather than compounding.
func Quantize(t minutia.FingerTemplate, params Params) (bitvec.Len127, error) {
	if err := params.Validate(); err != nil {
		return bitvec.Len127{}, err
	}
	if len(t.Minutiae) == 0 {
		return bitvec.Len127{}, ErrInsufficientFeatures.Wrap("template has no minutiae")
	}

	var vec bitvec.Len127
	gridW := params.gridWidth()
	gridH := params.gridHeight()

	for _, m := range t.Minutiae {
		pos := binPosition(m, params, gridW, gridH)
		vec.Set(pos, true)
	}

	if vec.PopCount() < params.MinSetBits {
		return bitvec.Len127{}, ErrInsufficientFeatures.Wrapf(
			"quantized vector has %d set bits, need at least %d", vec.PopCount(), params.MinSetBits)
	}
	return vec, nil
}

// binPosition maps a single minutia to one of the 127 output bit positions.
// It first bins the minutia into a (cellIndex, angleBin) pair in raster
// order, then folds that pair deterministically into [0,127) by modular
// reduction. The fold is many-to-one by design — spec §4.1 only requires
// that the map be fixed and documented, and that collisions do not compound
// (handled by the caller's idempotent bitvec.Set, not by this function).
func binPosition(m minutia.Minutia, params Params, gridW, gridH int) int {
	cellX := clampInt(int(m.X/params.GridCellMicrons), 0, gridW-1)
	cellY := clampInt(int(m.Y/params.GridCellMicrons), 0, gridH-1)
	cellIndex := cellY*gridW + cellX

	angleBin := int(m.NormalizedTheta() / 360 * float64(params.AngleBins))
	angleBin = clampInt(angleBin, 0, params.AngleBins-1)

	combined := cellIndex*params.AngleBins + angleBin
	pos := combined % 127
	if pos < 0 {
		pos += 127
	}
	return pos
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
