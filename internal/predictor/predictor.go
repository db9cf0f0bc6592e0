// Package predictor composes the whitelist gate, the feature extractor, the
// scoring oracle and the explanation engine into a single verdict. It owns the
// decision thresholds.
package predictor

import (
	"context"
	"fmt"
	"phishnet/pkg/domain"
	"phishnet/pkg/explain"
	"phishnet/pkg/features"
	"phishnet/pkg/metrics"
	"phishnet/pkg/oracle"
	"phishnet/pkg/whitelist"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

const (
	// PhishingThreshold is the score above which a URL is phishing.
	PhishingThreshold = 0.5
	// CriticalThreshold is the score above which a phishing URL is CRITICAL.
	CriticalThreshold = 0.8

	// DefaultSequenceLength is the token sequence length used when none is configured.
	DefaultSequenceLength = 150

	instrumentationName = "phishnet/internal/predictor"
)

// Whitelist verdict details.
const (
	TrustedDomainDetail = "✅ Domain is in the Trusted Whitelist."
	ScanSkippedDetail   = "✅ AI Scan skipped for optimization."
)

// Deps are the loaded artifacts the predictor scores with.
type Deps struct {
	Encoder     oracle.Encoder
	Transformer oracle.Transformer
	Scorer      oracle.Scorer
}

// Options tune the predictor. Zero values fall back to defaults.
type Options struct {
	SequenceLength int
	// Model fingerprints the loaded artifacts.
	Model          string
	MeterProvider  metric.MeterProvider
	TracerProvider trace.TracerProvider
}

// Predictor is immutable after New and safe for concurrent use.
type Predictor struct {
	deps   Deps
	seqLen int
	model  string

	tracer  trace.Tracer
	scans   metric.Int64Counter
	latency metric.Float64Histogram
}

// New creates a Predictor.
func New(deps Deps, opts Options) (*Predictor, error) {
	if opts.SequenceLength <= 0 {
		opts.SequenceLength = DefaultSequenceLength
	}
	if opts.MeterProvider == nil {
		opts.MeterProvider = metricnoop.NewMeterProvider()
	}
	if opts.TracerProvider == nil {
		opts.TracerProvider = tracenoop.NewTracerProvider()
	}

	meter := opts.MeterProvider.Meter(instrumentationName)
	scans, err := meter.Int64Counter("phishnet.scans",
		metric.WithDescription("Number of classified URLs by decision path and risk level."))
	if err != nil {
		return nil, fmt.Errorf("could not create scans counter: %w", err)
	}
	latency, err := meter.Float64Histogram("phishnet.oracle.duration",
		metric.WithDescription("Latency of scoring oracle calls."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(metrics.DefaultBuckets...))
	if err != nil {
		return nil, fmt.Errorf("could not create oracle latency histogram: %w", err)
	}

	return &Predictor{
		deps:    deps,
		seqLen:  opts.SequenceLength,
		model:   opts.Model,
		tracer:  opts.TracerProvider.Tracer(instrumentationName),
		scans:   scans,
		latency: latency,
	}, nil
}

// Model returns the fingerprint of the artifacts the predictor was built with.
func (p *Predictor) Model() string { return p.model }

// Predict classifies rawURL. Trusted domains short-circuit with a canned SAFE
// verdict and never reach the oracle.
func (p *Predictor) Predict(ctx context.Context, rawURL string) (*domain.Verdict, domain.VerdictSource, error) {
	ctx, span := p.tracer.Start(ctx, "predictor.Predict")
	defer span.End()

	if whitelist.IsTrusted(whitelist.NormalizeDomain(rawURL)) {
		v := TrustedVerdict(rawURL)
		p.record(ctx, domain.VerdictSourceWhitelist, v.RiskLevel)
		span.SetAttributes(attribute.String("phishnet.source", string(domain.VerdictSourceWhitelist)))

		return v, domain.VerdictSourceWhitelist, nil
	}

	vec := features.Extract(rawURL)
	scaled, err := p.deps.Transformer.Transform(vec.Slice())
	if err != nil {
		span.SetStatus(codes.Error, err.Error())

		return nil, "", fmt.Errorf("could not scale features: %w", err)
	}
	seq := p.deps.Encoder.Encode(rawURL, p.seqLen)

	start := time.Now()
	score, err := p.deps.Scorer.Score(ctx, seq, scaled)
	p.latency.Record(ctx, time.Since(start).Seconds())
	if err != nil {
		span.SetStatus(codes.Error, err.Error())

		return nil, "", fmt.Errorf("could not score URL: %w", err)
	}

	v := Decide(rawURL, score, vec)
	p.record(ctx, domain.VerdictSourceModel, v.RiskLevel)
	span.SetAttributes(
		attribute.String("phishnet.source", string(domain.VerdictSourceModel)),
		attribute.Float64("phishnet.score", score),
	)

	return v, domain.VerdictSourceModel, nil
}

func (p *Predictor) record(ctx context.Context, source domain.VerdictSource, risk domain.RiskLevel) {
	p.scans.Add(ctx, 1, metric.WithAttributes(
		attribute.String("source", string(source)),
		attribute.String("risk_level", string(risk)),
	))
}

// TrustedVerdict is the verdict returned for whitelisted domains.
func TrustedVerdict(rawURL string) *domain.Verdict {
	return &domain.Verdict{
		URL:               rawURL,
		IsPhishing:        false,
		ConfidenceScore:   0,
		DisplayConfidence: DisplayConfidence(0, false),
		RiskLevel:         domain.RiskLevelSafe,
		Details:           []string{TrustedDomainDetail, ScanSkippedDetail},
	}
}

// Decide turns a model score into a verdict.
func Decide(rawURL string, score float64, vec features.Vector) *domain.Verdict {
	isPhishing := score > PhishingThreshold

	return &domain.Verdict{
		URL:               rawURL,
		IsPhishing:        isPhishing,
		ConfidenceScore:   score,
		DisplayConfidence: DisplayConfidence(score, isPhishing),
		RiskLevel:         RiskLevel(score),
		Details:           explain.Explain(vec, isPhishing),
	}
}

// RiskLevel buckets a score.
func RiskLevel(score float64) domain.RiskLevel {
	switch {
	case score > CriticalThreshold:
		return domain.RiskLevelCritical
	case score > PhishingThreshold:
		return domain.RiskLevelModerate
	default:
		return domain.RiskLevelSafe
	}
}

// DisplayConfidence formats the confidence in the direction of the verdict:
// the score itself for phishing and its complement otherwise.
func DisplayConfidence(score float64, isPhishing bool) string {
	c := score
	if !isPhishing {
		c = 1 - score
	}

	return fmt.Sprintf("%.1f%%", c*100)
}
