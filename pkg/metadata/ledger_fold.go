package metadata

// FoldHistory folds a DID's record history (ordered by block height,
// starting with the enrollment record) into its current ledger view, per
// spec §3's "Ledger view of a DID". signers[i] is the address that signed
// history[i+1] (the i-th update after enrollment); the fold rejects any
// update whose signer was not a member of the controller set at its parent
// height. The codec itself never checks cryptographic signatures — signers
// here is the already-authenticated signer address the ledger-side
// verifier established for that update.
func FoldHistory(history []Record, signers []string) (Record, error) {
	if len(history) == 0 {
		return Record{}, ErrMissingField.Wrap("history must contain at least the enrollment record")
	}
	current := history[0]
	if current.Operation != OpEnrollment {
		return Record{}, ErrMissingField.Wrap("history must start with an enrollment record")
	}

	for i := 1; i < len(history); i++ {
		update := history[i]
		if update.Did != current.Did {
			return Record{}, ErrDidMismatch.Wrapf("record %d has did %q, expected %q", i, update.Did, current.Did)
		}

		var signer string
		if i-1 < len(signers) {
			signer = signers[i-1]
		}
		if !isController(current.Controllers, signer) {
			return Record{}, ErrUnauthorizedSigner.Wrapf("signer %q not in controller set at record %d", signer, i-1)
		}

		current = update
	}

	return current, nil
}

func isController(controllers []string, addr string) bool {
	for _, c := range controllers {
		if c == addr {
			return true
		}
	}
	return false
}
