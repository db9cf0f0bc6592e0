package v1handler_test

import (
	"net/http"
	"net/url"
	"phishnet/internal/scanner"
	"phishnet/pkg/domain"
	"phishnet/pkg/serrors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestHistory(t *testing.T) {
	sc, mux := newServer(t)
	records := []domain.ScanRecord{{
		ID: domain.RecordID(uuid.MustParse("0b8a7f39-3f56-4c1e-9d43-0f4f5c1e2a10")),
		Verdict: domain.Verdict{
			URL:               "https://github.com/login",
			DisplayConfidence: "100.0%",
			RiskLevel:         domain.RiskLevelSafe,
			Details:           []string{"✅ Domain is in the Trusted Whitelist."},
		},
		Source:    domain.VerdictSourceWhitelist,
		CreatedAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}}
	sc.EXPECT().History(gomock.Any(), scanner.HistoryQuery{Cursor: "2024-05-02T00:00:00Z_0b8a7f39-3f56-4c1e-9d43-0f4f5c1e2a10", Limit: 1}).
		Return(records, "2024-05-01T10:00:00Z_0b8a7f39-3f56-4c1e-9d43-0f4f5c1e2a10", nil)

	rec := do(mux, http.MethodGet, "/api/history?limit=1&cursor=2024-05-02T00:00:00Z_0b8a7f39-3f56-4c1e-9d43-0f4f5c1e2a10", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{
		"items": [{
			"id": "0b8a7f39-3f56-4c1e-9d43-0f4f5c1e2a10",
			"verdict": {
				"url": "https://github.com/login",
				"is_phishing": false,
				"confidence_score": 0,
				"display_confidence": "100.0%",
				"risk_level": "SAFE",
				"details": ["✅ Domain is in the Trusted Whitelist."]
			},
			"source": "WHITELIST",
			"created_at": "2024-05-01T10:00:00Z"
		}],
		"next_cursor": "2024-05-01T10:00:00Z_0b8a7f39-3f56-4c1e-9d43-0f4f5c1e2a10"
	}`, rec.Body.String())
}

func TestHistory_LastPage(t *testing.T) {
	sc, mux := newServer(t)
	sc.EXPECT().History(gomock.Any(), scanner.HistoryQuery{}).Return(nil, "", nil)

	rec := do(mux, http.MethodGet, "/api/history", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"items": [], "next_cursor": null}`, rec.Body.String())
}

func TestHistory_URLFilter(t *testing.T) {
	sc, mux := newServer(t)
	target := "http://login-verify.example/account?id=1&x=2"
	sc.EXPECT().History(gomock.Any(), scanner.HistoryQuery{URL: target, Limit: 5}).Return(nil, "", nil)

	rec := do(mux, http.MethodGet, "/api/history?limit=5&url="+url.QueryEscape(target), "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"items": [], "next_cursor": null}`, rec.Body.String())
}

func TestHistory_Errors(t *testing.T) {
	t.Run("invalid limit", func(t *testing.T) {
		_, mux := newServer(t)

		for _, limit := range []string{"0", "-1", "ten", "10abc"} {
			rec := do(mux, http.MethodGet, "/api/history?limit="+limit, "")
			require.Equal(t, http.StatusBadRequest, rec.Code, limit)
		}
	})

	t.Run("disabled", func(t *testing.T) {
		sc, mux := newServer(t)
		sc.EXPECT().History(gomock.Any(), scanner.HistoryQuery{}).
			Return(nil, "", serrors.With(serrors.ErrUnavailable, "scan history is disabled"))

		rec := do(mux, http.MethodGet, "/api/history", "")
		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
		require.JSONEq(t, `{"detail": "scan history is disabled"}`, rec.Body.String())
	})
}
