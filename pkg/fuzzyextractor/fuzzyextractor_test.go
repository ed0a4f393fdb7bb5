package fuzzyextractor_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/FractionEstate/decentralized-did/pkg/bitvec"
	"github.com/FractionEstate/decentralized-did/pkg/fuzzyextractor"
	"github.com/FractionEstate/decentralized-did/pkg/minutia"
)

func randomVector(r *rand.Rand) bitvec.Len127 {
	var v bitvec.Len127
	for i := 0; i < 127; i++ {
		v.Set(i, r.Intn(2) == 1)
	}
	return v
}

func flipBits(v bitvec.Len127, positions []int) bitvec.Len127 {
	for _, p := range positions {
		v.Set(p, !v.Get(p))
	}
	return v
}

func samplePositions(r *rand.Rand, n, count int) []int {
	perm := r.Perm(n)
	return perm[:count]
}

func TestGenRepRoundTripNoNoise(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	w := randomVector(r)

	key, helper, err := fuzzyextractor.Gen(w, minutia.RIndex, r)
	require.NoError(t, err)

	got, err := fuzzyextractor.Rep(w, helper)
	require.NoError(t, err)
	require.True(t, key.Equal(got))
}

func TestRepToleratesUpToTBitFlips(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	for trial := 0; trial < 50; trial++ {
		w := randomVector(r)
		key, helper, err := fuzzyextractor.Gen(w, minutia.LThumb, r)
		require.NoError(t, err)

		numErrors := r.Intn(11) // 0..10
		noisy := flipBits(w, samplePositions(r, 127, numErrors))

		got, err := fuzzyextractor.Rep(noisy, helper)
		require.NoError(t, err, "trial %d with %d errors", trial, numErrors)
		require.True(t, key.Equal(got))
	}
}

func TestRepFailsBeyondCapacity(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	failures := 0
	const trials = 40
	for trial := 0; trial < trials; trial++ {
		w := randomVector(r)
		key, helper, err := fuzzyextractor.Gen(w, minutia.RMiddle, r)
		require.NoError(t, err)

		numErrors := 11 + r.Intn(5) // 11..15
		noisy := flipBits(w, samplePositions(r, 127, numErrors))

		got, err := fuzzyextractor.Rep(noisy, helper)
		if err == nil {
			require.False(t, key.Equal(got), "silent miscorrection at trial %d", trial)
		} else {
			failures++
			require.ErrorIs(t, err, fuzzyextractor.ErrTooNoisy)
		}
	}
	require.Greater(t, failures, trials/2, "expected most beyond-capacity trials to fail decode")
}

func TestRepDetectsHelperTampering(t *testing.T) {
	r := rand.New(rand.NewSource(4))
	w := randomVector(r)

	_, helper, err := fuzzyextractor.Gen(w, minutia.LRing, r)
	require.NoError(t, err)

	helper.Offset[0] ^= 0x01

	_, err = fuzzyextractor.Rep(w, helper)
	require.Error(t, err)
	require.ErrorIs(t, err, fuzzyextractor.ErrTampered)
}

func TestRepRejectsUnsupportedParams(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	w := randomVector(r)

	_, helper, err := fuzzyextractor.Gen(w, minutia.RPinky, r)
	require.NoError(t, err)

	helper.Version = 0x02
	_, err = fuzzyextractor.Rep(w, helper)
	require.ErrorIs(t, err, fuzzyextractor.ErrUnsupportedParams)
}

func TestGenIsUnlinkableAcrossIndependentSalts(t *testing.T) {
	r := rand.New(rand.NewSource(6))
	w := randomVector(r)

	_, h1, err := fuzzyextractor.Gen(w, minutia.LIndex, r)
	require.NoError(t, err)
	_, h2, err := fuzzyextractor.Gen(w, minutia.LIndex, r)
	require.NoError(t, err)

	require.NotEqual(t, h1.Salt, h2.Salt)
	require.NotEqual(t, h1.Offset, h2.Offset)
	require.NotEqual(t, h1.Mac, h2.Mac)
}

func TestGenKeysAreIndependentOfFingerID(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	w := randomVector(r)

	k1, _, err := fuzzyextractor.Gen(w, minutia.LThumb, r)
	require.NoError(t, err)
	k2, _, err := fuzzyextractor.Gen(w, minutia.RThumb, r)
	require.NoError(t, err)

	require.False(t, k1.Equal(k2))
}
