package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/signal"
	"phishnet/internal/config"
	"phishnet/internal/predictor"
	"phishnet/pkg/domain"
	"phishnet/pkg/logger"
	"strings"
	"syscall"

	"github.com/go-faster/jx"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type prediction struct {
	url     string
	verdict *domain.Verdict
	source  domain.VerdictSource
	err     error
}

func (p prediction) encode(e *jx.Encoder) {
	if p.err != nil {
		e.Obj(func(e *jx.Encoder) {
			e.Field("url", func(e *jx.Encoder) { e.Str(p.url) })
			e.Field("detail", func(e *jx.Encoder) { e.Str(p.err.Error()) })
		})

		return
	}
	e.Obj(func(e *jx.Encoder) {
		e.Field("source", func(e *jx.Encoder) { e.Str(string(p.source)) })
		e.Field("verdict", p.verdict.Encode)
	})
}

// readURLs returns args when present, otherwise one URL per non-empty line of r.
func readURLs(args []string, r io.Reader) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}

	var urls []string
	s := bufio.NewScanner(r)
	for s.Scan() {
		if line := strings.TrimSpace(s.Text()); line != "" {
			urls = append(urls, line)
		}
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("could not read URLs: %w", err)
	}

	return urls, nil
}

// predictAll classifies urls with at most concurrency inflight calls and
// returns the results in input order. A concurrency below 1 means no limit.
// Per-URL failures are kept in the result.
func predictAll(ctx context.Context, p *predictor.Predictor, urls []string, concurrency int) []prediction {
	results := make([]prediction, len(urls))

	if concurrency < 1 {
		concurrency = -1
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, u := range urls {
		g.Go(func() error {
			verdict, source, err := p.Predict(ctx, u)
			results[i] = prediction{url: u, verdict: verdict, source: source, err: err}

			return nil
		})
	}
	_ = g.Wait()

	return results
}

func predictCommand(cfg *config.Config) *cobra.Command {
	var concurrency int

	cmd := &cobra.Command{
		Use:   "predict [url...]",
		Short: "Classifies URLs from arguments or stdin and prints JSON verdicts",
		RunE: func(cmd *cobra.Command, args []string) error {
			if concurrency < 1 {
				return fmt.Errorf("concurrency must be at least 1, got %d", concurrency)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			urls, err := readURLs(args, cmd.InOrStdin())
			if err != nil {
				return err
			}

			p, err := loadPredictor(ctx, cfg, nil)
			if err != nil {
				logger.Error(ctx, "could not load model artifacts", zap.Error(err))

				return err
			}

			out := bufio.NewWriter(cmd.OutOrStdout())
			defer func() { _ = out.Flush() }()

			e := jx.GetEncoder()
			defer jx.PutEncoder(e)

			failed := 0
			for _, res := range predictAll(ctx, p, urls, concurrency) {
				if res.err != nil {
					failed++
				}
				e.Reset()
				res.encode(e)
				_, _ = out.Write(e.Bytes())
				_ = out.WriteByte('\n')
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d URLs could not be classified", failed, len(urls))
			}

			return nil
		},
	}

	cmd.Flags().IntVarP(&concurrency, "concurrency", "n", 8, "Maximum concurrent model calls")

	return cmd
}
