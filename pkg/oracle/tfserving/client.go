// Package tfserving provides an oracle.Scorer backed by the TensorFlow Serving
// REST API.
package tfserving

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"phishnet/pkg/oracle"
	"phishnet/pkg/serrors"
	"strconv"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/sony/gobreaker"
)

// Named model inputs expected by the served signature.
const (
	SequenceInput = "url_input"
	FeatureInput  = "meta_input"
)

// Options configure the connection to the model server.
type Options struct {
	// BaseURL is the REST endpoint of the model server, e.g. "http://localhost:8501".
	BaseURL string
	// ModelName is the name the model is served under.
	ModelName string
	// BreakerFailures is the number of consecutive failures that opens the
	// circuit breaker. Zero disables the breaker.
	BreakerFailures uint32
	// BreakerTimeout is how long the breaker stays open before probing again.
	BreakerTimeout time.Duration
}

// Client talks to TensorFlow Serving and fulfills the oracle.Scorer
// interface. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client // httpClient performs HTTP requests to the model server
	baseURL    string       // baseURL is the model server endpoint without a trailing slash
	modelName  string       // modelName is the served model name
	breaker    *gobreaker.CircuitBreaker
}

// Ensure Client conforms to the oracle.Scorer interface at compile time.
var _ oracle.Scorer = (*Client)(nil)

// New constructs a Client using the provided http.Client.
func New(httpClient *http.Client, opts Options) *Client {
	c := &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		modelName:  opts.ModelName,
	}

	if opts.BreakerFailures > 0 {
		failures := opts.BreakerFailures
		c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "tfserving-" + opts.ModelName,
			MaxRequests: 1,
			Timeout:     opts.BreakerTimeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= failures
			},
		})
	}

	return c
}

func (c *Client) modelURL() string {
	return c.baseURL + "/v1/models/" + url.PathEscape(c.modelName)
}

// Status verifies that at least one version of the model is AVAILABLE and
// returns the highest such version. Any failure is reported as
// oracle.ErrArtifactUnavailable.
func (c *Client) Status(ctx context.Context) (string, error) {
	// https://www.tensorflow.org/tfx/serving/api_rest#model_status_api
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.modelURL(), nil)
	if err != nil {
		return "", serrors.Wrap(oracle.ErrArtifactUnavailable, err, "could not create request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", serrors.Wrap(oracle.ErrArtifactUnavailable, err, "could not reach model server")
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", serrors.Wrap(oracle.ErrArtifactUnavailable, err, "could not read response body")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", serrors.With(oracle.ErrArtifactUnavailable,
			"model status failed: %s", strings.TrimSpace(string(b)))
	}

	var status struct {
		ModelVersionStatus []struct {
			Version string `json:"version"`
			State   string `json:"state"`
		} `json:"model_version_status"`
	}
	if err := json.Unmarshal(b, &status); err != nil {
		return "", serrors.Wrap(oracle.ErrArtifactUnavailable, err, "could not decode model status")
	}

	version, found := int64(-1), false
	for _, v := range status.ModelVersionStatus {
		if v.State != "AVAILABLE" {
			continue
		}
		found = true
		// versions are decimal integers; anything else still counts as available
		if n, err := strconv.ParseInt(v.Version, 10, 64); err == nil && n > version {
			version = n
		}
	}
	if !found {
		return "", serrors.With(oracle.ErrArtifactUnavailable, "model %q has no available version", c.modelName)
	}
	if version < 0 {
		return "", nil
	}

	return strconv.FormatInt(version, 10), nil
}

// Score sends one instance to the predict endpoint and returns the scalar
// probability. Failures are reported as oracle.ErrInferenceFailed and are
// never retried.
func (c *Client) Score(ctx context.Context, sequence []int32, features []float64) (float64, error) {
	if c.breaker == nil {
		return c.predict(ctx, sequence, features)
	}

	res, err := c.breaker.Execute(func() (interface{}, error) {
		return c.predict(ctx, sequence, features)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return 0, serrors.Wrap(oracle.ErrInferenceFailed, err, "model server circuit open")
		}

		return 0, err //nolint: wrapcheck
	}

	return res.(float64), nil //nolint: forcetypeassert
}

func (c *Client) predict(ctx context.Context, sequence []int32, features []float64) (float64, error) {
	// https://www.tensorflow.org/tfx/serving/api_rest#predict_api (columnar format)
	type predictReq struct {
		Inputs map[string]any `json:"inputs"`
	}
	body, err := json.Marshal(predictReq{Inputs: map[string]any{
		SequenceInput: [][]int32{sequence},
		FeatureInput:  [][]float64{features},
	}})
	if err != nil {
		return 0, serrors.Wrap(oracle.ErrInferenceFailed, err, "could not marshal request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.modelURL()+":predict", bytes.NewReader(body))
	if err != nil {
		return 0, serrors.Wrap(oracle.ErrInferenceFailed, err, "could not create request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, serrors.Wrap(oracle.ErrInferenceFailed, errors.Wrap(err, "send request"), "inference failed")
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, serrors.Wrap(oracle.ErrInferenceFailed, err, "could not read response body")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, serrors.With(oracle.ErrInferenceFailed, "predict failed: %s", strings.TrimSpace(string(b)))
	}

	score, err := ParseOutputs(b)
	if err != nil {
		return 0, serrors.Wrap(oracle.ErrInferenceFailed, err, "could not decode prediction")
	}

	return score, nil
}

// ParseOutputs extracts the single probability from a columnar predict
// response. A model with one output answers {"outputs": [[p]]}; a model with
// named outputs answers {"outputs": {"name": [[p]]}} and must have exactly one.
func ParseOutputs(b []byte) (float64, error) {
	var resp struct {
		Outputs json.RawMessage `json:"outputs"`
	}
	if err := json.Unmarshal(b, &resp); err != nil {
		return 0, errors.Wrap(err, "decode response")
	}
	if len(resp.Outputs) == 0 {
		return 0, errors.New("response has no outputs")
	}

	var tensor [][]float64
	if err := json.Unmarshal(resp.Outputs, &tensor); err != nil {
		var named map[string][][]float64
		if err := json.Unmarshal(resp.Outputs, &named); err != nil {
			return 0, errors.Wrap(err, "decode outputs")
		}
		if len(named) != 1 {
			return 0, errors.Errorf("expected one named output, got %d", len(named))
		}
		for _, v := range named {
			tensor = v
		}
	}

	if len(tensor) != 1 || len(tensor[0]) != 1 {
		return 0, errors.New("expected a single scalar output")
	}

	p := tensor[0][0]
	if math.IsNaN(p) || p < 0 || p > 1 {
		return 0, fmt.Errorf("probability %v out of range", p)
	}

	return p, nil
}
