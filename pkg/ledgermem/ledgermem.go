// Package ledgermem provides a reference, in-memory implementation of the
// LedgerIndex interface the enrollment coordinator consumes (spec §4.8). It
// is suitable for tests and local experimentation; it is not a ledger — it
// offers no persistence, consensus, or cross-process consistency.
package ledgermem

import (
	"sync"

	"github.com/FractionEstate/decentralized-did/pkg/metadata"
)

// Index is a linearizable, process-local LedgerIndex: at most one
// enrollment record survives per DID, and Append enforces that invariant
// the same way a real ledger verifier would.
type Index struct {
	mu      sync.Mutex
	history map[string][]metadata.Record
}

// New returns an empty Index.
func New() *Index {
	return &Index{history: make(map[string][]metadata.Record)}
}

// Exists returns the earliest enrollment record for did, if any.
func (idx *Index) Exists(did string) (metadata.Record, bool) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	records, ok := idx.history[did]
	if !ok || len(records) == 0 {
		return metadata.Record{}, false
	}
	return records[0], true
}

// Append adds record to did's history. Enrollment records are rejected with
// ErrConflict if an enrollment already exists for that DID; update records
// are simply appended in arrival order (this reference implementation does
// not itself verify controller authorization — callers needing that must
// fold through metadata.FoldHistory before trusting an update).
func (idx *Index) Append(record metadata.Record) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	existing := idx.history[record.Did]
	if record.Operation == metadata.OpEnrollment && len(existing) > 0 {
		return ErrConflict
	}
	idx.history[record.Did] = append(existing, record)
	return nil
}

// History returns did's full record history in append order.
func (idx *Index) History(did string) []metadata.Record {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	records := idx.history[did]
	out := make([]metadata.Record, len(records))
	copy(out, records)
	return out
}
