package bch_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/FractionEstate/decentralized-did/pkg/bch"
	"github.com/FractionEstate/decentralized-did/pkg/bitvec"
)

func randomMessage(r *rand.Rand) bch.Message {
	var m bch.Message
	r.Read(m[:])
	return m
}

func flipBits(cw [16]byte, positions []int) [16]byte {
	out := cw
	for _, p := range positions {
		byteIdx := p / 8
		bitIdx := 7 - uint(p%8)
		out[byteIdx] ^= 1 << bitIdx
	}
	return out
}

func TestEncodeIsSystematic(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for trial := 0; trial < 50; trial++ {
		msg := randomMessage(r)
		cw := bch.Encode(msg)
		require.Equal(t, msg, bch.MessageOf(cw), "systematic positions must equal the original message")
	}
}

func TestDecodeCorrectsUpToT(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	for trial := 0; trial < 200; trial++ {
		msg := randomMessage(r)
		cw := bch.Encode(msg)

		nErr := r.Intn(bch.T + 1) // 0..T
		positions := samplePositions(r, bch.N, nErr)
		receivedBytes := flipBits(cw.Bytes(), positions)
		received := bitvec.FromBytes(receivedBytes)

		result, err := bch.Decode(received)
		require.NoError(t, err, "trial %d with %d errors should decode", trial, nErr)
		require.Equal(t, cw, result.Corrected)
		require.Equal(t, nErr, result.ErrorCount)
	}
}

func TestDecodeFailsBeyondCapacity(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	sawFailureOrRecovery := 0
	for trial := 0; trial < 100; trial++ {
		msg := randomMessage(r)
		cw := bch.Encode(msg)

		nErr := bch.T + 1 + r.Intn(5) // T+1..T+5
		positions := samplePositions(r, bch.N, nErr)
		receivedBytes := flipBits(cw.Bytes(), positions)
		received := bitvec.FromBytes(receivedBytes)

		result, err := bch.Decode(received)
		if err == nil {
			// A decoder is allowed to "get lucky" only if it reproduces the
			// original codeword exactly; silently returning a different,
			// wrong codeword would be a miscorrection bug.
			require.Equal(t, cw, result.Corrected, "trial %d: decoder must never return a wrong codeword as success", trial)
			sawFailureOrRecovery++
			continue
		}
		sawFailureOrRecovery++
	}
	require.Equal(t, 100, sawFailureOrRecovery)
}

func TestDecodeNoErrors(t *testing.T) {
	r := rand.New(rand.NewSource(4))
	msg := randomMessage(r)
	cw := bch.Encode(msg)
	result, err := bch.Decode(cw)
	require.NoError(t, err)
	require.Equal(t, 0, result.ErrorCount)
	require.Equal(t, cw, result.Corrected)
}

func samplePositions(r *rand.Rand, n, count int) []int {
	perm := r.Perm(n)
	return perm[:count]
}
