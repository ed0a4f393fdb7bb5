package enrollment

import (
	stderrors "errors"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/FractionEstate/decentralized-did/internal/auditlog"
	"github.com/FractionEstate/decentralized-did/internal/domainhash"
	"github.com/FractionEstate/decentralized-did/pkg/aggregator"
	"github.com/FractionEstate/decentralized-did/pkg/did"
	"github.com/FractionEstate/decentralized-did/pkg/fuzzyextractor"
	"github.com/FractionEstate/decentralized-did/pkg/metadata"
	"github.com/FractionEstate/decentralized-did/pkg/minutia"
	"github.com/FractionEstate/decentralized-did/pkg/quantizer"
	"github.com/FractionEstate/decentralized-did/pkg/secret"
)

// genOutcome is one finger's quantize+Gen result, computed concurrently by
// Enroll's fan-out.
type genOutcome struct {
	fingerID minutia.FingerID
	quality  uint8
	key      secret.Bytes32
	helper   fuzzyextractor.Helper
	err      error
}

// Enroll runs spec §4.7's procedure over templates, checks for a duplicate
// DID, and returns a ledger-ready v1.1 record for the caller to submit. It
// does not call Ledger.Append itself.
func (c *Coordinator) Enroll(templates []minutia.FingerTemplate, walletAddress string, now time.Time) (metadata.Record, error) {
	if len(templates) == 0 {
		return metadata.Record{}, ErrNoTemplates
	}

	outcomes := c.genAll(templates)

	var failures []FingerFailure
	presentations := make([]aggregator.FingerPresentation, 0, len(outcomes))
	helpers := make(map[minutia.FingerID]fuzzyextractor.Helper, len(outcomes))
	for _, o := range outcomes {
		if o.err != nil {
			failures = append(failures, FingerFailure{FingerID: string(o.fingerID), Err: o.err})
			continue
		}
		presentations = append(presentations, aggregator.FingerPresentation{
			FingerID: o.fingerID, Key: o.key, Quality: o.quality,
		})
		helpers[o.fingerID] = o.helper
	}
	if len(failures) > 0 {
		return metadata.Record{}, ErrFingerFailures.Wrapf("%+v", failures)
	}

	result, err := aggregator.Aggregate(presentations, len(templates), c.cfg.Thresholds)
	if err != nil {
		return metadata.Record{}, err
	}

	commitment := commitmentFor(result.MasterKey, result.FingersUsed)
	identifier := did.FromCommitment(commitment, c.cfg.Network)

	if existing, ok := c.cfg.Ledger.Exists(identifier.String()); ok {
		c.audit(auditlog.EventDuplicateEnrollment, identifier.String(), walletAddress, nil)
		return metadata.Record{}, &DuplicateEnrollmentError{Existing: existing}
	}

	record := metadata.Record{
		Version:             metadata.Version,
		Did:                 identifier.String(),
		Controllers:         []string{walletAddress},
		EnrollmentTimestamp: metadata.FormatTimestamp(now),
		Operation:           metadata.OpEnrollment,
		Biometric: metadata.Biometric{
			IDHash:        identifier.ID,
			HelperStorage: metadata.HelperInline,
			HelperData:    wireHelpers(helpers),
		},
	}

	if _, err := metadata.Encode(record); err != nil {
		if !stderrors.Is(err, metadata.ErrRecordTooLarge) || c.cfg.ExternalHelperUploader == nil {
			return metadata.Record{}, err
		}
		uri, uploadErr := c.cfg.ExternalHelperUploader(record.Biometric.HelperData)
		if uploadErr != nil {
			return metadata.Record{}, uploadErr
		}
		record.Biometric.HelperData = nil
		record.Biometric.HelperStorage = metadata.HelperExternal
		record.Biometric.HelperUri = uri
		if _, err := metadata.Encode(record); err != nil {
			return metadata.Record{}, err
		}
	}

	c.audit(auditlog.EventEnrolled, record.Did, walletAddress, nil)
	return record, nil
}

// VerifyPresence runs Rep over every presented finger against its matching
// helper and aggregates the recovered keys under fallback rules, without
// comparing against any DID. It authenticates that enough live, matching
// fingers were presented (spec scenario 4's "presence" semantics) — it does
// NOT establish that the presenter is the original enrollee beyond that.
func (c *Coordinator) VerifyPresence(templates []minutia.FingerTemplate, helpers map[minutia.FingerID]fuzzyextractor.Helper, enrolledCount int) (aggregator.AggregationResult, error) {
	presentations, err := c.repAll(templates, helpers)
	if err != nil {
		return aggregator.AggregationResult{}, err
	}
	return aggregator.Aggregate(presentations, enrolledCount, c.cfg.Thresholds)
}

// VerifyIdentity recomputes the master commitment and DID from every
// presented finger and compares it byte-for-byte against expectedDID (spec
// §4.7's "Verification" paragraph). Because the commitment binds the
// master key, this only succeeds when the full originally enrolled finger
// set is presented with unchanged keys — fallback presentations and
// rotated fingers will recompute a different DID by construction; use
// VerifyPresence for those cases (see DESIGN.md's rotation/DID-stability
// decision).
func (c *Coordinator) VerifyIdentity(templates []minutia.FingerTemplate, helpers map[minutia.FingerID]fuzzyextractor.Helper, expectedDID string) (bool, error) {
	presentations, err := c.repAll(templates, helpers)
	if err != nil {
		return false, err
	}

	result, err := aggregator.Aggregate(presentations, len(helpers), c.cfg.Thresholds)
	if err != nil {
		return false, err
	}

	parsed, err := did.Parse(expectedDID)
	if err != nil {
		return false, err
	}

	commitment := commitmentFor(result.MasterKey, result.FingersUsed)
	recomputed := did.FromCommitment(commitment, parsed.Network)

	ok := recomputed.String() == expectedDID
	if ok {
		c.audit(auditlog.EventVerified, expectedDID, "", nil)
	} else {
		c.audit(auditlog.EventVerificationFailed, expectedDID, "", nil)
	}
	return ok, nil
}

// RotateFinger derives the master key that results from replacing a
// finger's key material, via the O(1) XOR identity (spec §4.4's "XOR
// rationale"). It does not mint a new DID: callers needing a fresh
// identifier for the rotated state must re-run Enroll.
func (c *Coordinator) RotateFinger(oldMaster, oldKey, newKey secret.Bytes32, fingerID minutia.FingerID) secret.Bytes32 {
	newMaster := aggregator.Rotate(oldMaster, oldKey, newKey)
	c.audit(auditlog.EventFingerRotated, "", "", map[string]any{"finger_id": string(fingerID)})
	return newMaster
}

// RevokeFinger derives the master key that results from removing a
// finger's contribution, enforcing the minimum two-finger invariant.
func (c *Coordinator) RevokeFinger(oldMaster, removedKey secret.Bytes32, fingerID minutia.FingerID, remainingCount int) (secret.Bytes32, error) {
	if remainingCount < 2 {
		return secret.Bytes32{}, ErrTooFewRemainingFingers
	}
	newMaster := aggregator.Revoke(oldMaster, removedKey)
	c.audit(auditlog.EventFingerRevoked, "", "", map[string]any{"finger_id": string(fingerID)})
	return newMaster, nil
}

func (c *Coordinator) genAll(templates []minutia.FingerTemplate) []genOutcome {
	outcomes := make([]genOutcome, len(templates))
	var g errgroup.Group
	for i, tmpl := range templates {
		i, tmpl := i, tmpl
		g.Go(func() error {
			outcomes[i] = c.genOne(tmpl)
			return nil
		})
	}
	_ = g.Wait()
	return outcomes
}

func (c *Coordinator) genOne(tmpl minutia.FingerTemplate) genOutcome {
	vec, err := quantizer.Quantize(tmpl, c.cfg.QuantParams)
	if err != nil {
		return genOutcome{fingerID: tmpl.Finger, err: err}
	}
	key, helper, err := fuzzyextractor.Gen(vec, tmpl.Finger, c.cfg.RNG)
	if err != nil {
		return genOutcome{fingerID: tmpl.Finger, err: err}
	}
	return genOutcome{fingerID: tmpl.Finger, quality: tmpl.Quality, key: key, helper: helper}
}

type repOutcome struct {
	fingerID minutia.FingerID
	quality  uint8
	key      secret.Bytes32
	err      error
}

func (c *Coordinator) repAll(templates []minutia.FingerTemplate, helpers map[minutia.FingerID]fuzzyextractor.Helper) ([]aggregator.FingerPresentation, error) {
	outcomes := make([]repOutcome, len(templates))
	var g errgroup.Group
	for i, tmpl := range templates {
		i, tmpl := i, tmpl
		g.Go(func() error {
			outcomes[i] = c.repOne(tmpl, helpers)
			return nil
		})
	}
	_ = g.Wait()

	// TooNoisy and missing-helper outcomes simply drop that finger from the
	// presentation set, letting the aggregator's fallback tiers decide
	// admission. Tampered and UnsupportedParams are hard authentication
	// failures and abort the whole verification immediately.
	presentations := make([]aggregator.FingerPresentation, 0, len(outcomes))
	for _, o := range outcomes {
		if o.err == nil {
			presentations = append(presentations, aggregator.FingerPresentation{
				FingerID: o.fingerID, Key: o.key, Quality: o.quality,
			})
			continue
		}
		if stderrors.Is(o.err, fuzzyextractor.ErrTampered) {
			c.audit(auditlog.EventTampered, "", "", map[string]any{"finger_id": string(o.fingerID)})
			return nil, ErrFingerFailures.Wrapf("finger %s: %s", o.fingerID, o.err)
		}
		if stderrors.Is(o.err, fuzzyextractor.ErrUnsupportedParams) {
			return nil, ErrFingerFailures.Wrapf("finger %s: %s", o.fingerID, o.err)
		}
		// ErrTooNoisy, missing helper, or quantizer InsufficientFeatures:
		// drop this finger and let aggregation's fallback tiers decide.
	}
	return presentations, nil
}

func (c *Coordinator) repOne(tmpl minutia.FingerTemplate, helpers map[minutia.FingerID]fuzzyextractor.Helper) repOutcome {
	helper, ok := helpers[tmpl.Finger]
	if !ok {
		return repOutcome{fingerID: tmpl.Finger, err: stderrors.New("no helper for finger")}
	}
	vec, err := quantizer.Quantize(tmpl, c.cfg.QuantParams)
	if err != nil {
		return repOutcome{fingerID: tmpl.Finger, err: err}
	}
	key, err := fuzzyextractor.Rep(vec, helper)
	if err != nil {
		return repOutcome{fingerID: tmpl.Finger, err: err}
	}
	return repOutcome{fingerID: tmpl.Finger, quality: tmpl.Quality, key: key}
}

func (c *Coordinator) audit(eventType auditlog.EventType, didStr, actor string, details map[string]any) {
	if c.cfg.Audit == nil {
		return
	}
	c.cfg.Audit.Log(auditlog.Event{Type: eventType, Did: didStr, Actor: actor, Details: details})
}

func commitmentFor(masterKey secret.Bytes32, fingersUsed []minutia.FingerID) [32]byte {
	ordered := orderFingerIDs(fingersUsed)
	parts := make([][]byte, 0, len(ordered)+1)
	parts = append(parts, masterKey[:])
	for _, id := range ordered {
		parts = append(parts, []byte(id))
	}
	return domainhash.Sum256("agg.commitment.v1", parts...)
}

func orderFingerIDs(ids []minutia.FingerID) []minutia.FingerID {
	rank := make(map[minutia.FingerID]int, len(minutia.AllFingerIDs))
	for i, id := range minutia.AllFingerIDs {
		rank[id] = i
	}
	out := append([]minutia.FingerID{}, ids...)
	sort.Slice(out, func(i, j int) bool { return rank[out[i]] < rank[out[j]] })
	return out
}

func wireHelpers(helpers map[minutia.FingerID]fuzzyextractor.Helper) map[string]metadata.WireHelper {
	out := make(map[string]metadata.WireHelper, len(helpers))
	for id, h := range helpers {
		out[string(id)] = metadata.ToWireHelper(h)
	}
	return out
}
