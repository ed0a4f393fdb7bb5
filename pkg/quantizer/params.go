package quantizer

// Params configures the grid-and-angle binning the quantizer uses to turn a
// FingerTemplate into a 127-bit vector. These are fixed system-wide per spec
// §4.1: changing any of them invalidates every helper already issued,
// because Rep re-quantizes with the caller's current Params and compares
// against a BCH codeword sized for the Params used at Gen time.
type Params struct {
	// GridCellMicrons is the spatial bin size, in micrometres. Default 50.
	GridCellMicrons float64
	// AngleBins is the number of angular bins spanning [0,360). Default 32.
	AngleBins int
	// ImageWidthMicrons and ImageHeightMicrons bound the sensor's capture
	// area, used to size the spatial grid.
	ImageWidthMicrons  float64
	ImageHeightMicrons float64
	// MinSetBits is the minimum popcount a quantized vector must have;
	// below this the template is rejected as InsufficientFeatures. Default
	// 12.
	MinSetBits int
}

// DefaultParams returns the system-wide default quantizer parameters
// described in spec §4.1.
func DefaultParams() Params {
	return Params{
		GridCellMicrons:    50,
		AngleBins:          32,
		ImageWidthMicrons:  15000,
		ImageHeightMicrons: 15000,
		MinSetBits:         12,
	}
}

// Validate checks that Params describes a usable grid.
func (p Params) Validate() error {
	if p.GridCellMicrons <= 0 {
		return ErrInvalidParams.Wrap("grid_cell_µm must be positive")
	}
	if p.AngleBins <= 0 {
		return ErrInvalidParams.Wrap("angle_bins must be positive")
	}
	if p.ImageWidthMicrons <= 0 || p.ImageHeightMicrons <= 0 {
		return ErrInvalidParams.Wrap("image dimensions must be positive")
	}
	if p.MinSetBits < 0 || p.MinSetBits > 127 {
		return ErrInvalidParams.Wrap("min_set_bits must be within [0, 127]")
	}
	return nil
}

func (p Params) gridWidth() int {
	return ceilDiv(p.ImageWidthMicrons, p.GridCellMicrons)
}

func (p Params) gridHeight() int {
	return ceilDiv(p.ImageHeightMicrons, p.GridCellMicrons)
}

func ceilDiv(total, cell float64) int {
	n := int(total / cell)
	if float64(n)*cell < total {
		n++
	}
	if n < 1 {
		n = 1
	}
	return n
}
