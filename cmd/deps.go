package main

import (
	"context"
	"phishnet/internal/config"
	"phishnet/internal/predictor"
	"phishnet/pkg/cache/rediscache"
	"phishnet/pkg/logger"
	"phishnet/pkg/oracle/artifacts"
	"phishnet/pkg/storage/postgres"

	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// getPostgres creates the scan history storage using configuration values and returns it
// along with a cleanup function to close the connection pool.
func getPostgres(ctx context.Context, cfg *config.Config) (*postgres.PgSQL, func()) {
	pgsql, err := postgres.New(ctx, postgres.Options{
		Username:           cfg.History.Username,
		Password:           cfg.History.Password,
		Host:               cfg.History.Host,
		Port:               cfg.History.Port,
		Database:           cfg.History.DatabaseName,
		ConnMaxLifetime:    cfg.History.ConnMaxLifetime,
		ConnMaxIdleTime:    cfg.History.ConnMaxIdleTime,
		MaxOpenConnections: cfg.History.MaxOpenConnections,
		MaxIdleConnections: cfg.History.MaxIdleConnections,
		SslMode:            cfg.History.SslMode,
	})
	if err != nil {
		logger.Fatal(ctx, "could not create postgres storage", zap.Error(err))
	}

	return pgsql, func() {
		logger.Info(ctx, "closing postgres client...")
		if err = pgsql.Close(); err != nil {
			logger.Warn(ctx, "could not close postgres connection", zap.Error(err))
		}
	}
}

// getCache connects to the verdict cache and returns it along with a cleanup function.
func getCache(ctx context.Context, cfg *config.Config) (*rediscache.Redis, func()) {
	rc, err := rediscache.New(ctx, rediscache.Options{
		URL:         cfg.Cache.URL,
		TTL:         cfg.Cache.TTL,
		PoolSize:    cfg.Cache.PoolSize,
		DialTimeout: cfg.Cache.DialTimeout,
		ReadTimeout: cfg.Cache.ReadTimeout,
	})
	if err != nil {
		logger.Fatal(ctx, "could not connect to verdict cache", zap.Error(err))
	}

	return rc, func() {
		logger.Info(ctx, "closing verdict cache...")
		if err = rc.Close(); err != nil {
			logger.Warn(ctx, "could not close verdict cache", zap.Error(err))
		}
	}
}

// loadPredictor loads the model artifacts and builds a predictor on top of them.
func loadPredictor(ctx context.Context, cfg *config.Config, mp metric.MeterProvider) (*predictor.Predictor, error) {
	bundle, err := artifacts.Load(ctx, artifacts.Options{
		TokenizerPath:   cfg.Model.TokenizerPath,
		ScalerPath:      cfg.Model.ScalerPath,
		ServingURL:      cfg.Model.ServingURL,
		ModelName:       cfg.Model.Name,
		Timeout:         cfg.Model.Timeout,
		SequenceLength:  cfg.Model.SequenceLength,
		BreakerFailures: cfg.Model.BreakerFailures,
		BreakerTimeout:  cfg.Model.BreakerTimeout,
	})
	if err != nil {
		return nil, err //nolint: wrapcheck
	}

	return predictor.New(predictor.Deps{
		Encoder:     bundle.Tokenizer,
		Transformer: bundle.Scaler,
		Scorer:      bundle.Scorer,
	}, predictor.Options{
		SequenceLength: bundle.SequenceLength,
		Model:          bundle.Fingerprint,
		MeterProvider:  mp,
	})
}
