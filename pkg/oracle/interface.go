// Package oracle defines the boundary to the pre-trained hybrid model that
// turns a padded token sequence and a scaled feature vector into a phishing
// probability.
package oracle

import (
	"context"
	"phishnet/pkg/serrors"
)

// Semantic error kinds reported by oracle implementations and the artifact
// loader. Callers branch on them with errors.Is.
var (
	// ErrArtifactUnavailable reports that the model, tokenizer or scaler could
	// not be loaded. It is a startup condition, not a per-request one.
	ErrArtifactUnavailable = serrors.NewKind("ARTIFACT_UNAVAILABLE")
	// ErrInferenceFailed reports that a single scoring call failed.
	ErrInferenceFailed = serrors.NewKind("INFERENCE_FAILED")
)

// Scorer is the opaque scoring model. Implementations must be safe for
// concurrent use.
//
//go:generate mockgen -package mockoracle -source=interface.go -destination=mock/mockoracle.go *
type Scorer interface {
	// Score returns the phishing probability in [0,1] for a padded token
	// sequence and a scaled feature vector.
	Score(ctx context.Context, sequence []int32, features []float64) (float64, error)
}

// Encoder converts a URL into a fixed-length token sequence.
type Encoder interface {
	Encode(text string, maxLen int) []int32
}

// Transformer applies the fitted feature normalization.
type Transformer interface {
	Transform(features []float64) ([]float64, error)
}
