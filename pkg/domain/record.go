package domain

import (
	"time"

	"github.com/google/uuid"
)

// RecordID uniquely identifies a stored scan record.
type RecordID uuid.UUID

// VerdictSource tells which path of the pipeline produced a verdict.
type VerdictSource string

const (
	// VerdictSourceWhitelist marks verdicts produced by the trusted-domain override.
	VerdictSourceWhitelist VerdictSource = "WHITELIST"
	// VerdictSourceModel marks verdicts produced by model inference.
	VerdictSourceModel VerdictSource = "MODEL"
	// VerdictSourceCache marks verdicts served from the verdict cache.
	VerdictSourceCache VerdictSource = "CACHE"
)

// ScanRecord is a verdict as kept in the scan history.
type ScanRecord struct {
	// ID is the unique identifier of the record.
	ID RecordID `json:"id"`
	// Verdict is the verdict returned to the caller.
	Verdict Verdict `json:"verdict"`
	// Source is the pipeline path that produced Verdict.
	Source VerdictSource `json:"source"`
	// CreatedAt is the time the record was stored.
	CreatedAt time.Time `json:"created_at"`
}
