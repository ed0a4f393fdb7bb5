// Package gf127 implements arithmetic over GF(2^7), the field the
// BCH(127,64,10) codec is built on. 127 = 2^7 - 1 nonzero elements, generated
// by the primitive polynomial x^7 + x + 1 (0x83).
//
// Exp/log tables are computed once at package initialization and are
// read-only thereafter — the only process-wide shared state the codec needs
// (see spec §5, "Shared-resource policy"). Table lookups are indexed only by
// public values (syndromes and received codeword bits are public once helper
// data is public, per spec §4.2's constant-time requirement), so these
// lookups never branch on secret material.
package gf127

// N is the number of nonzero elements of GF(2^7): 2^7 - 1.
const N = 127

// primPoly is x^7 + x + 1, the primitive polynomial generating the field.
// Bit i of primPoly is the coefficient of x^i for i in [0,6]; the implicit
// leading x^7 term is added by the shift-and-reduce construction below.
const primPoly = 0b0000011

var (
	expTable [2 * N]byte // expTable[i] = alpha^i, extended so i+j never overflows lookups
	logTable [N + 1]int  // logTable[alpha^i] = i; logTable[0] is unused (sentinel -1)
)

func init() {
	reg := 1
	for i := 0; i < N; i++ {
		expTable[i] = byte(reg)
		logTable[reg] = i
		reg <<= 1
		if reg&(1<<7) != 0 {
			reg ^= (1 << 7) | primPoly
		}
	}
	for i := N; i < 2*N; i++ {
		expTable[i] = expTable[i-N]
	}
	logTable[0] = -1
}

// Exp returns alpha^i. i is taken modulo N (and may be negative).
func Exp(i int) byte {
	i %= N
	if i < 0 {
		i += N
	}
	return expTable[i]
}

// Log returns the discrete log of the nonzero element a, i.e. i such that
// alpha^i == a. Panics if a == 0.
func Log(a byte) int {
	if a == 0 {
		panic("gf127: log of zero")
	}
	return logTable[a]
}

// Mul multiplies two field elements.
func Mul(a, b byte) byte {
	if a == 0 || b == 0 {
		return 0
	}
	return expTable[(logTable[a]+logTable[b])%N]
}

// Inv returns the multiplicative inverse of the nonzero element a.
func Inv(a byte) byte {
	if a == 0 {
		panic("gf127: inverse of zero")
	}
	return expTable[(N-logTable[a])%N]
}

// Div computes a / b. Panics if b == 0.
func Div(a, b byte) byte {
	return Mul(a, Inv(b))
}

// Pow returns a^n for a nonzero field element a and n >= 0.
func Pow(a byte, n int) byte {
	if n == 0 {
		return 1
	}
	if a == 0 {
		return 0
	}
	return expTable[(logTable[a]*n)%N]
}
