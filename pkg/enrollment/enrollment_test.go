package enrollment_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/FractionEstate/decentralized-did/pkg/aggregator"
	"github.com/FractionEstate/decentralized-did/pkg/bitvec"
	"github.com/FractionEstate/decentralized-did/pkg/did"
	"github.com/FractionEstate/decentralized-did/pkg/enrollment"
	"github.com/FractionEstate/decentralized-did/pkg/fuzzyextractor"
	"github.com/FractionEstate/decentralized-did/pkg/ledgermem"
	"github.com/FractionEstate/decentralized-did/pkg/metadata"
	"github.com/FractionEstate/decentralized-did/pkg/minutia"
	"github.com/FractionEstate/decentralized-did/pkg/quantizer"
	"github.com/FractionEstate/decentralized-did/pkg/secret"
)

func sampleTemplate(r *rand.Rand, finger minutia.FingerID, quality uint8, n int) minutia.FingerTemplate {
	t := minutia.FingerTemplate{Finger: finger, Quality: quality}
	for i := 0; i < n; i++ {
		t.Minutiae = append(t.Minutiae, minutia.Minutia{
			X:        r.Float64() * 14000,
			Y:        r.Float64() * 14000,
			ThetaDeg: r.Float64() * 360,
		})
	}
	return t
}

func newCoordinator(ledger enrollment.LedgerIndex, rng *rand.Rand) *enrollment.Coordinator {
	return enrollment.New(enrollment.Config{
		Network: did.Testnet,
		Ledger:  ledger,
		RNG:     rng,
	})
}

func fourFingerTemplates(r *rand.Rand, qualities [4]uint8) []minutia.FingerTemplate {
	fingers := [4]minutia.FingerID{minutia.LThumb, minutia.LIndex, minutia.RThumb, minutia.RIndex}
	out := make([]minutia.FingerTemplate, 4)
	for i, f := range fingers {
		out[i] = sampleTemplate(r, f, qualities[i], 20)
	}
	return out
}

func TestEnrollHappyPath(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	ledger := ledgermem.New()
	coord := newCoordinator(ledger, r)

	templates := fourFingerTemplates(r, [4]uint8{90, 90, 90, 90})

	record, err := coord.Enroll(templates, "addr_A", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Equal(t, []string{"addr_A"}, record.Controllers)
	require.Equal(t, metadata.OpEnrollment, record.Operation)
	require.False(t, record.Revoked)
	require.Equal(t, metadata.HelperInline, record.Biometric.HelperStorage)
	require.Len(t, record.Biometric.HelperData, 4)

	parsed, err := did.Parse(record.Did)
	require.NoError(t, err)
	require.Equal(t, did.Testnet, parsed.Network)
	require.GreaterOrEqual(t, len(parsed.ID), 40)
}

func helpersFromRecord(t *testing.T, rec metadata.Record) map[minutia.FingerID]fuzzyextractor.Helper {
	t.Helper()
	out := make(map[minutia.FingerID]fuzzyextractor.Helper, len(rec.Biometric.HelperData))
	for id, wh := range rec.Biometric.HelperData {
		h, err := wh.ToHelper()
		require.NoError(t, err)
		out[minutia.FingerID(id)] = h
	}
	return out
}

func flipBits(v bitvec.Len127, positions []int) bitvec.Len127 {
	for _, p := range positions {
		v.Set(p, !v.Get(p))
	}
	return v
}

// enrollMasterKey replays Gen across every template directly (bypassing
// Coordinator, which never exposes the raw master key) so noisy-Rep
// scenarios have a baseline to compare against.
func enrollMasterKey(t *testing.T, r *rand.Rand, templates []minutia.FingerTemplate, params quantizer.Params) (secret.Bytes32, map[minutia.FingerID]fuzzyextractor.Helper, map[minutia.FingerID]bitvec.Len127) {
	t.Helper()
	var master secret.Bytes32
	helpers := make(map[minutia.FingerID]fuzzyextractor.Helper, len(templates))
	vectors := make(map[minutia.FingerID]bitvec.Len127, len(templates))
	for _, tmpl := range templates {
		vec, err := quantizer.Quantize(tmpl, params)
		require.NoError(t, err)
		key, helper, err := fuzzyextractor.Gen(vec, tmpl.Finger, r)
		require.NoError(t, err)
		master = master.Xor(key)
		helpers[tmpl.Finger] = helper
		vectors[tmpl.Finger] = vec
	}
	return master, helpers, vectors
}

func TestEnrollThenVerifyIdentityRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	ledger := ledgermem.New()
	coord := newCoordinator(ledger, r)

	templates := fourFingerTemplates(r, [4]uint8{90, 90, 90, 90})
	record, err := coord.Enroll(templates, "addr_A", time.Now())
	require.NoError(t, err)

	helpers := helpersFromRecord(t, record)

	ok, err := coord.VerifyIdentity(templates, helpers, record.Did)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestVerifyPresenceThreeOfFourFallbackDoesNotReproduceDID(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	ledger := ledgermem.New()
	coord := newCoordinator(ledger, r)

	templates := fourFingerTemplates(r, [4]uint8{90, 90, 90, 90})
	record, err := coord.Enroll(templates, "addr_A", time.Now())
	require.NoError(t, err)
	helpers := helpersFromRecord(t, record)

	subset := []minutia.FingerTemplate{templates[0], templates[1], templates[2]}
	subset[0].Quality, subset[1].Quality, subset[2].Quality = 85, 80, 75

	result, err := coord.VerifyPresence(subset, helpers, 4)
	require.NoError(t, err)
	require.True(t, result.FallbackMode)
	require.Equal(t, aggregator.TierOne, result.Tier())

	commitment := [32]byte{}
	copy(commitment[:], result.MasterKey[:])
	parsed, _ := did.Parse(record.Did)
	recomputedDID := did.FromCommitment(commitment, parsed.Network)
	require.NotEqual(t, record.Did, recomputedDID.String())
}

func TestNoisyReproductionWithinCapacitySucceeds(t *testing.T) {
	r := rand.New(rand.NewSource(6))
	params := quantizer.DefaultParams()
	templates := fourFingerTemplates(r, [4]uint8{90, 90, 90, 90})
	master, helpers, vectors := enrollMasterKey(t, r, templates, params)

	var noisyMaster secret.Bytes32
	for _, tmpl := range templates {
		noisy := flipBits(vectors[tmpl.Finger], samplePositions(r, 127, 7))
		key, err := fuzzyextractor.Rep(noisy, helpers[tmpl.Finger])
		require.NoError(t, err)
		noisyMaster = noisyMaster.Xor(key)
	}
	require.True(t, master.Equal(noisyMaster))
}

func TestNoisyReproductionBeyondCapacityFails(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	params := quantizer.DefaultParams()
	templates := fourFingerTemplates(r, [4]uint8{90, 90, 90, 90})
	_, helpers, vectors := enrollMasterKey(t, r, templates, params)

	for _, tmpl := range templates {
		noisy := flipBits(vectors[tmpl.Finger], samplePositions(r, 127, 15))
		_, err := fuzzyextractor.Rep(noisy, helpers[tmpl.Finger])
		require.ErrorIs(t, err, fuzzyextractor.ErrTooNoisy)
	}
}

func samplePositions(r *rand.Rand, n, count int) []int {
	perm := r.Perm(n)
	return perm[:count]
}

func TestDuplicateEnrollmentIsRejected(t *testing.T) {
	r := rand.New(rand.NewSource(4))
	ledger := ledgermem.New()
	coord := newCoordinator(ledger, r)

	templates := fourFingerTemplates(r, [4]uint8{90, 90, 90, 90})
	record, err := coord.Enroll(templates, "addr_A", time.Now())
	require.NoError(t, err)
	require.NoError(t, ledger.Append(record))

	_, err = coord.Enroll(templates, "addr_B", time.Now())
	require.Error(t, err)

	var dup *enrollment.DuplicateEnrollmentError
	require.ErrorAs(t, err, &dup)
	require.Equal(t, record.Did, dup.Existing.Did)
}

func TestRotationIdentity(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	ledger := ledgermem.New()
	coord := newCoordinator(ledger, r)

	templates := fourFingerTemplates(r, [4]uint8{90, 90, 90, 90})
	record, err := coord.Enroll(templates, "addr_A", time.Now())
	require.NoError(t, err)
	helpers := helpersFromRecord(t, record)

	oldRIHelper := helpers[minutia.RIndex]
	oldVec, err := quantizer.Quantize(templates[3], quantizer.DefaultParams())
	require.NoError(t, err)
	oldKey, err := fuzzyextractor.Rep(oldVec, oldRIHelper)
	require.NoError(t, err)

	newKey, _, err := fuzzyextractor.Gen(oldVec, minutia.RIndex, r)
	require.NoError(t, err)

	ok, err := coord.VerifyIdentity(templates, helpers, record.Did)
	require.NoError(t, err)
	require.True(t, ok)

	// Recompute the full master key directly via aggregation to anchor the
	// XOR rotation identity against a known-good baseline.
	fullResult, err := coord.VerifyPresence(templates, helpers, 4)
	require.NoError(t, err)

	rotatedMaster := coord.RotateFinger(fullResult.MasterKey, oldKey, newKey, minutia.RIndex)

	want := fullResult.MasterKey.Xor(oldKey).Xor(newKey)
	require.True(t, want.Equal(rotatedMaster))
}
