package enrollment

import (
	"cosmossdk.io/errors"

	"github.com/FractionEstate/decentralized-did/pkg/metadata"
)

// Error codes for the enrollment package (spec §4.7, §7).
var (
	// ErrNoTemplates indicates Enroll was called with zero templates.
	ErrNoTemplates = errors.Register("enrollment", 1, "enrollment: at least one finger template is required")

	// ErrFingerFailures wraps one or more per-finger failures (quantize or
	// Gen/Rep errors) collected during a coordinator call; see
	// FingerFailure for the per-finger detail.
	ErrFingerFailures = errors.Register("enrollment", 2, "enrollment: one or more fingers failed processing")

	// ErrDuplicateEnrollment indicates a ledger record already exists for
	// the computed DID; see DuplicateEnrollmentError for the existing
	// record.
	ErrDuplicateEnrollment = errors.Register("enrollment", 3, "enrollment: a record already exists for this did")

	// ErrTooFewRemainingFingers indicates a revocation would drop the
	// enrolled set below the two-finger minimum.
	ErrTooFewRemainingFingers = errors.Register("enrollment", 5, "enrollment: revocation would leave fewer than two enrolled fingers")
)

// FingerFailure records one finger's processing error within a composite
// ErrFingerFailures report.
type FingerFailure struct {
	FingerID string
	Err      error
}

// DuplicateEnrollmentError carries the pre-existing ledger record alongside
// ErrDuplicateEnrollment, so the caller can present the add-controller path
// (spec §4.7 step 5).
type DuplicateEnrollmentError struct {
	Existing metadata.Record
}

func (e *DuplicateEnrollmentError) Error() string {
	return ErrDuplicateEnrollment.Error()
}

func (e *DuplicateEnrollmentError) Unwrap() error {
	return ErrDuplicateEnrollment
}
