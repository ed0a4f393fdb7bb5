package metadata

import (
	"bytes"
	"encoding/json"
)

// Encode validates r and marshals it to its canonical JSON form. Struct
// fields and map keys are emitted in lexicographic order (the former by
// declaration order in types.go, the latter by encoding/json's built-in
// sorted-map-key behaviour), satisfying the "deterministic key ordering at
// every level" requirement without a bespoke encoder.
func Encode(r Record) ([]byte, error) {
	if err := Validate(r); err != nil {
		return nil, err
	}
	out, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	if r.Biometric.HelperStorage == HelperInline && len(out) > InlineSizeLimitBytes {
		return nil, ErrRecordTooLarge.Wrapf("encoded inline record is %d bytes, limit %d", len(out), InlineSizeLimitBytes)
	}
	return out, nil
}

// Decode unmarshals and validates a record. Top-level unknown fields are
// tolerated for forward compatibility, but fields inside biometric are not
// (spec §6): any unrecognised key there is rejected rather than silently
// dropped.
func Decode(data []byte) (Record, error) {
	var raw struct {
		Record
		Biometric json.RawMessage `json:"biometric"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return Record{}, ErrMissingField.Wrap(err.Error())
	}

	r := raw.Record
	if len(raw.Biometric) > 0 {
		dec := json.NewDecoder(bytes.NewReader(raw.Biometric))
		dec.DisallowUnknownFields()
		var b Biometric
		if err := dec.Decode(&b); err != nil {
			return Record{}, ErrHelperSchemaMismatch.Wrap(err.Error())
		}
		r.Biometric = b
	}

	if err := Validate(r); err != nil {
		return Record{}, err
	}
	return r, nil
}

// Validate checks r's structural invariants. It never checks signatures or
// controller authorization — those are the ledger-side verifier's
// responsibility (spec §4.6).
func Validate(r Record) error {
	if r.Version != Version {
		return ErrBadVersion.Wrapf("got %q, want %q", r.Version, Version)
	}
	if r.Did == "" {
		return ErrMissingField.Wrap("did")
	}
	if len(r.Controllers) == 0 {
		return ErrEmptyControllers
	}
	if err := checkNoDuplicates(r.Controllers); err != nil {
		return err
	}
	if _, err := ParseTimestamp(r.EnrollmentTimestamp); err != nil {
		return err
	}

	switch r.Operation {
	case OpEnrollment, OpAddController, OpRemoveController, OpRevocation:
	default:
		return ErrMissingField.Wrapf("unknown operation %q", r.Operation)
	}
	if r.Operation == OpEnrollment && r.Revoked {
		return ErrMissingField.Wrap("enrollment record cannot be revoked")
	}
	if r.Revoked {
		if r.RevokedAt == "" {
			return ErrMissingField.Wrap("revokedAt")
		}
		if _, err := ParseTimestamp(r.RevokedAt); err != nil {
			return err
		}
	}

	return validateBiometric(r.Biometric)
}

func validateBiometric(b Biometric) error {
	if b.IDHash == "" {
		return ErrMissingField.Wrap("biometric.idHash")
	}
	switch b.HelperStorage {
	case HelperInline:
		if len(b.HelperData) == 0 {
			return ErrHelperSchemaMismatch.Wrap("inline storage requires non-empty helperData")
		}
		if b.HelperUri != "" {
			return ErrHelperSchemaMismatch.Wrap("inline storage must not set helperUri")
		}
	case HelperExternal:
		if b.HelperUri == "" {
			return ErrHelperSchemaMismatch.Wrap("external storage requires helperUri")
		}
		if len(b.HelperData) != 0 {
			return ErrHelperSchemaMismatch.Wrap("external storage must not set helperData")
		}
	default:
		return ErrHelperSchemaMismatch.Wrapf("unknown helperStorage %q", b.HelperStorage)
	}
	return nil
}

func checkNoDuplicates(controllers []string) error {
	seen := make(map[string]struct{}, len(controllers))
	for _, c := range controllers {
		if _, ok := seen[c]; ok {
			return ErrDuplicateController.Wrapf("duplicate controller %q", c)
		}
		seen[c] = struct{}{}
	}
	return nil
}
