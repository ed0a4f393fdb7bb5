package bch

import (
	"github.com/FractionEstate/decentralized-did/internal/gf127"
	"github.com/FractionEstate/decentralized-did/pkg/bitvec"
)

// syndromes computes S_1..S_2T by evaluating the received word, treated as a
// polynomial with bit b the coefficient of x^(126-b), at alpha^1..alpha^2T
// via Horner's method. Indices here are 0-based: syndromes(cw)[j-1] is S_j.
func syndromes(cw bitvec.Len127) [2 * T]byte {
	var s [2 * T]byte
	for j := 1; j <= 2*T; j++ {
		alphaJ := gf127.Exp(j)
		var acc byte
		for b := 0; b < N; b++ {
			var bit byte
			if cw.Get(b) {
				bit = 1
			}
			acc = gf127.Mul(acc, alphaJ) ^ bit
		}
		s[j-1] = acc
	}
	return s
}

func allZero(s [2 * T]byte) bool {
	for _, v := range s {
		if v != 0 {
			return false
		}
	}
	return true
}

// berlekampMassey finds the error-locator polynomial sigma (coefficients
// sigma[0]=1, sigma[1], ..., sigma[l]) of minimal degree l consistent with
// the syndrome sequence. l may exceed T, signaling more errors than the code
// can correct; the caller checks that.
func berlekampMassey(s [2 * T]byte) (sigma []byte, l int) {
	const size = 2*T + 1
	c := make([]byte, size)
	b := make([]byte, size)
	c[0], b[0] = 1, 1

	l = 0
	m := 1
	bCoef := byte(1)

	for n := 1; n <= 2*T; n++ {
		delta := s[n-1]
		for i := 1; i <= l; i++ {
			delta ^= gf127.Mul(c[i], s[n-i-1])
		}

		switch {
		case delta == 0:
			m++
		case 2*l <= n-1:
			tCopy := make([]byte, size)
			copy(tCopy, c)
			coef := gf127.Mul(delta, gf127.Inv(bCoef))
			for i := 0; i < size; i++ {
				if i+m < size {
					c[i+m] ^= gf127.Mul(coef, b[i])
				}
			}
			l = n - l
			b = tCopy
			bCoef = delta
			m = 1
		default:
			coef := gf127.Mul(delta, gf127.Inv(bCoef))
			for i := 0; i < size; i++ {
				if i+m < size {
					c[i+m] ^= gf127.Mul(coef, b[i])
				}
			}
			m++
		}
	}

	return c[:l+1], l
}

// chienSearch finds the roots of sigma by brute-force evaluation at
// alpha^-e for every position e in [0,N), returning the corresponding
// codeword bit positions. ok is false if the number of roots found does not
// match the claimed degree l (an uncorrectable pattern masquerading as
// correctable, which must be rejected rather than silently mis-corrected).
func chienSearch(sigma []byte, l int) (positions []int, ok bool) {
	for e := 0; e < N; e++ {
		x := gf127.Exp(-e)
		var acc byte
		xp := byte(1)
		for i := 0; i <= l; i++ {
			acc ^= gf127.Mul(sigma[i], xp)
			xp = gf127.Mul(xp, x)
		}
		if acc == 0 {
			positions = append(positions, N-1-e)
		}
	}
	return positions, len(positions) == l
}
