package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"phishnet/internal/api"
	"phishnet/internal/api/handler/v1handler"
	"phishnet/internal/config"
	"phishnet/internal/scanner"
	"phishnet/pkg/logger"
	"phishnet/pkg/metrics"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

func setupServer(ctx context.Context, cfg *config.Config, sc scanner.Scanner) func(ctx context.Context) {
	server, err := api.NewServer(api.Deps{
		Deps: v1handler.Deps{Scanner: sc},
	}, api.NewOptions(cfg))
	if err != nil {
		logger.Fatal(ctx, "could not create webserver", zap.Error(err))
	}
	server.ErrorLog = logger.StdLog(ctx, slog.LevelWarn)

	go func() {
		logger.Info(ctx, "starting webserver...", zap.String("addr", cfg.HTTP.Addr))
		if err := server.ListenAndServe(); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				logger.Error(ctx, "could not start webserver", zap.Error(err))
			}
		}
	}()

	return func(ctx context.Context) {
		logger.Info(ctx, "stopping webserver...")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(ctx, "could not stop webserver", zap.Error(err))
		}
	}
}

// setupPredictor loads the artifacts into a holder. A failed load leaves the
// holder empty so the API still starts and reports the model as not loaded.
func setupPredictor(ctx context.Context, cfg *config.Config, mp metric.MeterProvider) *scanner.Holder {
	holder := scanner.NewHolder(nil)

	p, err := loadPredictor(ctx, cfg, mp)
	if err != nil {
		logger.Error(ctx, "could not load model artifacts, scans will fail until reload", zap.Error(err))

		return holder
	}
	holder.Store(p)
	logger.Info(ctx, "model artifacts loaded", zap.String("model", p.Model()))

	return holder
}

// watchReload reloads the artifacts on SIGHUP. The previous predictor keeps
// serving when a reload fails.
func watchReload(ctx context.Context, cfg *config.Config, mp metric.MeterProvider, holder *scanner.Holder) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)

	go func() {
		defer signal.Stop(hup)
		for {
			select {
			case <-ctx.Done():
				return
			case <-hup:
				logger.Info(ctx, "reloading model artifacts...")
				p, err := loadPredictor(ctx, cfg, mp)
				if err != nil {
					logger.Error(ctx, "could not reload model artifacts", zap.Error(err))

					continue
				}
				holder.Store(p)
				logger.Info(ctx, "model artifacts reloaded", zap.String("model", p.Model()))
			}
		}
	}()
}

func serveCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Loads the model and starts the API server",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			mp, err := metrics.NewMeterProvider(prometheus.DefaultRegisterer)
			if err != nil {
				logger.Fatal(ctx, "could not create meter provider", zap.Error(err))
			}
			defer func() {
				if err := mp.Shutdown(context.Background()); err != nil {
					logger.Warn(ctx, "could not shutdown meter provider", zap.Error(err))
				}
			}()

			deps := scanner.Deps{Predictors: setupPredictor(ctx, cfg, mp)}
			watchReload(ctx, cfg, mp, deps.Predictors)

			if cfg.Cache.Enabled {
				rc, closeCache := getCache(ctx, cfg)
				defer closeCache()
				deps.Cache = rc
			}

			if cfg.History.Enabled {
				strg, closeStrg := getPostgres(ctx, cfg)
				defer closeStrg()
				deps.History = strg
			}

			stopWebserver := setupServer(ctx, cfg, scanner.New(deps, scanner.NewOptions(cfg)))

			// wait for interrupt
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GracefulShutdownTimeout)
			defer cancel()

			stopWebserver(shutdownCtx)
		},
	}

	return cmd
}
