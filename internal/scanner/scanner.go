// Package scanner implements the request-level scan service: it guards the
// predictor, answers from the verdict cache and records scan history.
package scanner

import (
	"context"
	"fmt"
	"phishnet/internal/config"
	"phishnet/pkg/cache"
	"phishnet/pkg/domain"
	"phishnet/pkg/logger"
	"phishnet/pkg/oracle"
	"phishnet/pkg/serrors"
	"phishnet/pkg/storage"

	"go.uber.org/zap"
)

// ModelNotLoadedMessage is reported for every scan while no predictor is loaded.
const ModelNotLoadedMessage = "AI Model not loaded"

// Options configure history paging.
type Options struct {
	// DefaultPageSize is used when History is called with limit 0.
	DefaultPageSize uint
	// MaxPageSize caps the History limit.
	MaxPageSize uint
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		DefaultPageSize: cfg.History.DefaultPageSize,
		MaxPageSize:     cfg.History.MaxPageSize,
	}
}

// Deps are the collaborators of the scan service. Cache and History are
// optional.
type Deps struct {
	Predictors *Holder
	Cache      cache.VerdictCache
	History    storage.RecordStorage
}

type scanner struct {
	options Options
	deps    Deps
}

// Scan classifies URL. Cached verdicts are returned as-is; fresh model
// verdicts are cached. Cache and history failures are logged and never change
// the verdict.
func (s *scanner) Scan(ctx context.Context, URL string) (*domain.Verdict, error) {
	predictor := s.deps.Predictors.Load()
	if predictor == nil {
		return nil, serrors.With(oracle.ErrArtifactUnavailable, ModelNotLoadedMessage)
	}

	model := predictor.Model()
	if verdict := s.cached(ctx, model, URL); verdict != nil {
		s.record(ctx, verdict, domain.VerdictSourceCache)

		return verdict, nil
	}

	verdict, source, err := predictor.Predict(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("could not classify URL: %w", err)
	}

	if source == domain.VerdictSourceModel && s.deps.Cache != nil {
		if err := s.deps.Cache.Set(ctx, model, URL, verdict); err != nil {
			logger.Warn(ctx, "could not cache verdict", zap.Error(err))
		}
	}
	s.record(ctx, verdict, source)

	return verdict, nil
}

func (s *scanner) cached(ctx context.Context, model, URL string) *domain.Verdict {
	if s.deps.Cache == nil {
		return nil
	}

	verdict, err := s.deps.Cache.Get(ctx, model, URL)
	if err != nil {
		logger.Warn(ctx, "could not read verdict cache", zap.Error(err))

		return nil
	}
	if verdict != nil {
		logger.Debug(ctx, "verdict served from cache")
	}

	return verdict
}

func (s *scanner) record(ctx context.Context, verdict *domain.Verdict, source domain.VerdictSource) {
	if s.deps.History == nil {
		return
	}

	if _, err := s.deps.History.StoreRecords(ctx, domain.ScanRecord{
		Verdict: *verdict,
		Source:  source,
	}); err != nil {
		logger.Warn(ctx, "could not store scan record", zap.Error(err))
	}
}

// History returns a page of scan records, newest first, optionally
// restricted to one URL. The returned cursor is empty on the last page.
func (s *scanner) History(ctx context.Context, query HistoryQuery) ([]domain.ScanRecord, string, error) {
	if s.deps.History == nil {
		return nil, "", serrors.With(serrors.ErrUnavailable, "scan history is disabled")
	}

	var cursor *storage.Cursor
	if query.Cursor != "" {
		c, err := ParseCursor(query.Cursor)
		if err != nil {
			return nil, "", err
		}
		cursor = c
	}

	limit := query.Limit
	if limit == 0 {
		limit = s.options.DefaultPageSize
	}
	if s.options.MaxPageSize > 0 && limit > s.options.MaxPageSize {
		limit = s.options.MaxPageSize
	}

	var (
		page storage.RecordPage
		err  error
	)
	if query.URL != "" {
		page, err = s.deps.History.RecordsByURL(ctx, query.URL, cursor, limit)
	} else {
		page, err = s.deps.History.RecentRecords(ctx, cursor, limit)
	}
	if err != nil {
		return nil, "", fmt.Errorf("could not get scan history (%s): %w", query, err)
	}

	var next string
	if page.NextCursor != nil {
		next = FormatCursor(*page.NextCursor)
	}

	return page.Records, next, nil
}

// New creates a new Scanner.
func New(deps Deps, options Options) Scanner {
	if deps.Predictors == nil {
		deps.Predictors = &Holder{}
	}
	if options.DefaultPageSize == 0 {
		options.DefaultPageSize = 20
	}

	return &scanner{
		options: options,
		deps:    deps,
	}
}
