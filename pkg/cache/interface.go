// Package cache defines the verdict cache used to answer repeated scans of the
// same URL without calling the model again.
//
//go:generate mockgen -package mockcache -source=interface.go -destination=mock/mockcache.go *
package cache

import (
	"context"
	"phishnet/pkg/domain"
)

// VerdictCache stores verdicts keyed by the model fingerprint and the raw URL,
// so a verdict produced by one set of artifacts is never served by another.
type VerdictCache interface {
	// Get returns the verdict model cached for URL, or nil when there is none.
	Get(ctx context.Context, model, URL string) (*domain.Verdict, error)
	// Set stores the verdict for URL under model. Implementations apply their own expiry.
	Set(ctx context.Context, model, URL string, verdict *domain.Verdict) error
	// Close releases the underlying connection.
	Close() error
}
