// Package enrollment drives the end-to-end pipeline: quantize each
// presented finger, run the fuzzy extractor, aggregate the results, derive
// a DID, and check it against a caller-supplied ledger before assembling a
// ledger-ready record (spec §4.7). The coordinator never submits to the
// ledger itself — it returns a record for the caller to persist.
package enrollment

import (
	"io"

	"github.com/rs/zerolog"

	"github.com/FractionEstate/decentralized-did/internal/auditlog"
	"github.com/FractionEstate/decentralized-did/pkg/aggregator"
	"github.com/FractionEstate/decentralized-did/pkg/did"
	"github.com/FractionEstate/decentralized-did/pkg/metadata"
	"github.com/FractionEstate/decentralized-did/pkg/quantizer"
)

// LedgerIndex is the external collaborator the coordinator queries for
// uniqueness (spec §4.8). Implementations must be linearizable on the DID
// key: at most one enrollment record may ever exist per DID.
type LedgerIndex interface {
	Exists(did string) (metadata.Record, bool)
	Append(record metadata.Record) error
	History(did string) []metadata.Record
}

// Config configures a Coordinator. Zero-value Thresholds/QuantParams fall
// back to their package defaults.
type Config struct {
	QuantParams quantizer.Params
	Thresholds  aggregator.Thresholds
	Network     did.Network
	Ledger      LedgerIndex
	RNG         io.Reader
	Logger      zerolog.Logger
	Audit       *auditlog.Logger

	// ExternalHelperUploader is invoked when the assembled enrollment
	// record would exceed metadata.InlineSizeLimitBytes inline. It must
	// upload the given helper set and return a fetchable URI. The core
	// does not mandate a transport (spec §1's non-goals); if nil, Enroll
	// returns metadata.ErrRecordTooLarge instead of guessing a transport.
	ExternalHelperUploader func(helpers map[string]metadata.WireHelper) (uri string, err error)
}

// Coordinator implements spec §4.7's EnrollmentCoordinator.
type Coordinator struct {
	cfg Config
}

// New constructs a Coordinator. If cfg.QuantParams is the zero value,
// quantizer.DefaultParams() is used; if cfg.Thresholds is the zero value,
// aggregator.DefaultThresholds() is used.
func New(cfg Config) *Coordinator {
	if cfg.QuantParams == (quantizer.Params{}) {
		cfg.QuantParams = quantizer.DefaultParams()
	}
	if cfg.Thresholds == (aggregator.Thresholds{}) {
		cfg.Thresholds = aggregator.DefaultThresholds()
	}
	return &Coordinator{cfg: cfg}
}
