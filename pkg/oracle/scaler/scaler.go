// Package scaler applies a fitted feature normalization exported from
// scikit-learn (StandardScaler or MinMaxScaler) as JSON.
//
// Expected document shapes:
//
//	{"kind": "standard", "mean": [...], "scale": [...]}
//	{"kind": "minmax",   "min":  [...], "scale": [...]}
package scaler

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
)

// Kind names a supported scaler type.
type Kind string

const (
	// KindStandard computes (x - mean) / scale.
	KindStandard Kind = "standard"
	// KindMinMax computes x * scale + min.
	KindMinMax Kind = "minmax"
)

// Scaler is immutable after construction and safe for concurrent use.
type Scaler struct {
	kind   Kind
	offset []float64
	scale  []float64
}

type export struct {
	Kind  Kind      `json:"kind"`
	Mean  []float64 `json:"mean"`
	Min   []float64 `json:"min"`
	Scale []float64 `json:"scale"`
}

// New validates parameters and builds a Scaler. offset is the mean for a
// standard scaler and the min for a min-max scaler.
func New(kind Kind, offset, scale []float64, size int) (*Scaler, error) {
	if kind != KindStandard && kind != KindMinMax {
		return nil, fmt.Errorf("unsupported scaler kind %q", kind)
	}
	if len(offset) != size || len(scale) != size {
		return nil, fmt.Errorf("scaler expects %d features, got offset=%d scale=%d", size, len(offset), len(scale))
	}

	s := &Scaler{
		kind:   kind,
		offset: append([]float64(nil), offset...),
		scale:  append([]float64(nil), scale...),
	}
	for i, v := range s.scale {
		if math.IsNaN(v) || math.IsInf(v, 0) || math.IsNaN(s.offset[i]) || math.IsInf(s.offset[i], 0) {
			return nil, fmt.Errorf("scaler parameter %d is not finite", i)
		}
		// scikit-learn replaces zero variance by 1
		if kind == KindStandard && v == 0 {
			s.scale[i] = 1
		}
	}

	return s, nil
}

// Parse builds a Scaler from its JSON export.
func Parse(b []byte, size int) (*Scaler, error) {
	var exp export
	if err := json.Unmarshal(b, &exp); err != nil {
		return nil, fmt.Errorf("could not decode scaler: %w", err)
	}

	offset := exp.Mean
	if exp.Kind == KindMinMax {
		offset = exp.Min
	}

	return New(exp.Kind, offset, exp.Scale, size)
}

// Load reads and parses a scaler JSON file.
func Load(path string, size int) (*Scaler, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read scaler file: %w", err)
	}

	return Parse(b, size)
}

// Kind returns the scaler type.
func (s *Scaler) Kind() Kind { return s.kind }

// Transform returns a normalized copy of features.
func (s *Scaler) Transform(features []float64) ([]float64, error) {
	if len(features) != len(s.scale) {
		return nil, fmt.Errorf("scaler expects %d features, got %d", len(s.scale), len(features))
	}

	out := make([]float64, len(features))
	for i, x := range features {
		if s.kind == KindMinMax {
			out[i] = x*s.scale[i] + s.offset[i]
		} else {
			out[i] = (x - s.offset[i]) / s.scale[i]
		}
	}

	return out, nil
}
