package v1handler_test

import (
	"net/http"
	"phishnet/internal/api/handler/v1handler"
	"phishnet/internal/scanner"
	"phishnet/pkg/domain"
	"phishnet/pkg/oracle"
	"phishnet/pkg/serrors"
	"strings"
	"testing"

	"github.com/go-faster/jx"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestScan(t *testing.T) {
	sc, mux := newServer(t)
	sc.EXPECT().Scan(gomock.Any(), "http://192.168.0.1/login").Return(&domain.Verdict{
		URL:               "http://192.168.0.1/login",
		IsPhishing:        true,
		ConfidenceScore:   0.97,
		DisplayConfidence: "97.0%",
		RiskLevel:         domain.RiskLevelCritical,
		Details:           []string{"⚠️ Host uses an IP address instead of a domain name."},
	}, nil)

	rec := do(mux, http.MethodPost, "/api/scan", `{"url": "http://192.168.0.1/login"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{
		"url": "http://192.168.0.1/login",
		"is_phishing": true,
		"confidence_score": 0.97,
		"display_confidence": "97.0%",
		"risk_level": "CRITICAL",
		"details": ["⚠️ Host uses an IP address instead of a domain name."]
	}`, rec.Body.String())
}

func TestScan_EmptyURLIsAccepted(t *testing.T) {
	sc, mux := newServer(t)
	sc.EXPECT().Scan(gomock.Any(), "").Return(&domain.Verdict{Details: []string{}}, nil)

	rec := do(mux, http.MethodPost, "/api/scan", `{"url": "", "source": "extension"}`)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestScan_InvalidBody(t *testing.T) {
	for name, body := range map[string]string{
		"empty":        "",
		"not json":     "url=http://a",
		"missing url":  `{"link": "http://a"}`,
		"url not text": `{"url": 42}`,
		"url null":     `{"url": null}`,
		"array":        `["http://a"]`,
		"too large":    `{"url": "` + strings.Repeat("a", 2048) + `"}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, mux := newServer(t)

			rec := do(mux, http.MethodPost, "/api/scan", body)
			require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

			var detail string
			require.NoError(t, jx.DecodeBytes(rec.Body.Bytes()).ObjBytes(func(d *jx.Decoder, key []byte) error {
				if string(key) != "detail" {
					return d.Skip()
				}
				var err error
				detail, err = d.Str()

				return err
			}))
			require.NotEmpty(t, detail)
		})
	}
}

func TestScan_Failures(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		body string
	}{
		{
			name: "model not loaded",
			err:  serrors.With(oracle.ErrArtifactUnavailable, scanner.ModelNotLoadedMessage),
			body: `{"detail": "AI Model not loaded"}`,
		},
		{
			name: "inference failure",
			err:  serrors.With(oracle.ErrInferenceFailed, "predict failed: model not found"),
			body: `{"detail": "predict failed: model not found"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sc, mux := newServer(t)
			sc.EXPECT().Scan(gomock.Any(), "http://a.example").Return(nil, tc.err)

			rec := do(mux, http.MethodPost, "/api/scan", `{"url": "http://a.example"}`)
			require.Equal(t, http.StatusInternalServerError, rec.Code)
			require.JSONEq(t, tc.body, rec.Body.String())
		})
	}
}

func TestScan_MethodNotAllowed(t *testing.T) {
	_, mux := newServer(t)

	rec := do(mux, http.MethodGet, "/api/scan", "")
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestScanRequest_Decode(t *testing.T) {
	var req v1handler.ScanRequest
	require.NoError(t, req.Decode(jx.DecodeStr(`{"extra": {"a": [1]}, "url": "http://x"}`)))
	require.Equal(t, "http://x", req.URL)
}
