package scanner

import (
	"context"
	"phishnet/pkg/domain"
)

// Scanner classifies URLs and lists past scans.
//
//go:generate mockgen -package mockscanner -source=interface.go -destination=mock/mockscanner.go *
type Scanner interface {
	Scan(ctx context.Context, URL string) (*domain.Verdict, error)
	History(ctx context.Context, query HistoryQuery) ([]domain.ScanRecord, string, error)
}

// Predictor classifies a single URL.
type Predictor interface {
	Predict(ctx context.Context, URL string) (*domain.Verdict, domain.VerdictSource, error)
	// Model fingerprints the artifacts behind Predict. Cached verdicts are scoped by it.
	Model() string
}
