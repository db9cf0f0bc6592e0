// Package artifacts loads the read-only model artifacts once and hands them
// out as a single immutable bundle.
package artifacts

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"phishnet/pkg/features"
	"phishnet/pkg/oracle"
	"phishnet/pkg/oracle/scaler"
	"phishnet/pkg/oracle/tfserving"
	"phishnet/pkg/oracle/tokenizer"
	"phishnet/pkg/serrors"
	"time"
)

// DefaultSequenceLength is the padded token sequence length the model was trained with.
const DefaultSequenceLength = 150

// Options point to the artifacts to load.
type Options struct {
	// TokenizerPath is the Keras tokenizer JSON export.
	TokenizerPath string
	// ScalerPath is the scaler JSON export.
	ScalerPath string
	// ServingURL is the TensorFlow Serving REST endpoint.
	ServingURL string
	// ModelName is the served model name.
	ModelName string
	// Timeout bounds a single call to the model server.
	Timeout time.Duration
	// SequenceLength is the padded token sequence length.
	SequenceLength int
	// BreakerFailures opens the circuit after this many consecutive failures; 0 disables it.
	BreakerFailures uint32
	// BreakerTimeout is how long an open circuit stays open.
	BreakerTimeout time.Duration
}

// Bundle groups the loaded artifacts. All members are safe for concurrent use.
type Bundle struct {
	Tokenizer      oracle.Encoder
	Scaler         oracle.Transformer
	Scorer         oracle.Scorer
	SequenceLength int
	// Fingerprint identifies this combination of tokenizer, scaler and
	// served model version. Verdicts cached under one fingerprint are not
	// valid under another.
	Fingerprint string
}

// Load reads the tokenizer and scaler and verifies that the model is
// available on the serving endpoint. Every failure is reported as
// oracle.ErrArtifactUnavailable.
func Load(ctx context.Context, opts Options) (*Bundle, error) {
	tk, err := tokenizer.Load(opts.TokenizerPath)
	if err != nil {
		return nil, serrors.Wrap(oracle.ErrArtifactUnavailable, err, "could not load tokenizer")
	}

	sc, err := scaler.Load(opts.ScalerPath, features.Size)
	if err != nil {
		return nil, serrors.Wrap(oracle.ErrArtifactUnavailable, err, "could not load scaler")
	}

	client := tfserving.New(&http.Client{Timeout: opts.Timeout}, tfserving.Options{
		BaseURL:         opts.ServingURL,
		ModelName:       opts.ModelName,
		BreakerFailures: opts.BreakerFailures,
		BreakerTimeout:  opts.BreakerTimeout,
	})
	version, err := client.Status(ctx)
	if err != nil {
		return nil, err //nolint: wrapcheck
	}

	fp, err := fingerprint(opts.ModelName, version, opts.TokenizerPath, opts.ScalerPath)
	if err != nil {
		return nil, serrors.Wrap(oracle.ErrArtifactUnavailable, err, "could not fingerprint artifacts")
	}

	seqLen := opts.SequenceLength
	if seqLen <= 0 {
		seqLen = DefaultSequenceLength
	}

	return &Bundle{
		Tokenizer:      tk,
		Scaler:         sc,
		Scorer:         client,
		SequenceLength: seqLen,
		Fingerprint:    fp,
	}, nil
}

func fingerprint(modelName, version string, paths ...string) (string, error) {
	h := sha256.New()
	_, _ = fmt.Fprintf(h, "%s:%s\n", modelName, version)
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return "", err //nolint: wrapcheck
		}
		_, err = io.Copy(h, f)
		_ = f.Close()
		if err != nil {
			return "", err //nolint: wrapcheck
		}
	}

	return hex.EncodeToString(h.Sum(nil))[:16], nil
}
