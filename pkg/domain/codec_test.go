package domain_test

import (
	"encoding/json"
	"phishnet/pkg/domain"
	"testing"
	"time"

	"github.com/go-faster/jx"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestVerdict_JSONShape(t *testing.T) {
	v := &domain.Verdict{
		URL:               "http://example.com",
		IsPhishing:        true,
		ConfidenceScore:   0.9,
		DisplayConfidence: "90.0%",
		RiskLevel:         domain.RiskLevelCritical,
		Details:           []string{"a", "b"},
	}

	b, err := json.Marshal(v)
	require.NoError(t, err)
	require.JSONEq(t, `{
		"url": "http://example.com",
		"is_phishing": true,
		"confidence_score": 0.9,
		"display_confidence": "90.0%",
		"risk_level": "CRITICAL",
		"details": ["a", "b"]
	}`, string(b))
}

func TestVerdict_EmptyDetailsIsArray(t *testing.T) {
	e := jx.Encoder{}
	(&domain.Verdict{}).Encode(&e)
	require.Contains(t, e.String(), `"details":[]`)
}

func TestVerdict_DecodeSkipsUnknown(t *testing.T) {
	var v domain.Verdict
	err := v.Decode(jx.DecodeStr(`{"url": "u", "extra": {"x": [1, 2]}, "risk_level": "SAFE", "details": []}`))
	require.NoError(t, err)
	require.Equal(t, domain.Verdict{URL: "u", RiskLevel: domain.RiskLevelSafe, Details: []string{}}, v)
}

func TestVerdict_DecodeTypeMismatch(t *testing.T) {
	var v domain.Verdict
	require.Error(t, v.Decode(jx.DecodeStr(`{"is_phishing": "yes"}`)))
}

func TestScanRecord_Codec(t *testing.T) {
	r := domain.ScanRecord{
		ID: domain.RecordID(uuid.MustParse("8b4f8d36-5d5f-4bd9-9a4e-2bd1c0f9a1e7")),
		Verdict: domain.Verdict{
			URL:               "https://github.com",
			DisplayConfidence: "100.0%",
			RiskLevel:         domain.RiskLevelSafe,
			Details:           []string{"ok"},
		},
		Source:    domain.VerdictSourceWhitelist,
		CreatedAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}

	e := jx.Encoder{}
	r.Encode(&e)
	require.JSONEq(t, `{
		"id": "8b4f8d36-5d5f-4bd9-9a4e-2bd1c0f9a1e7",
		"verdict": {
			"url": "https://github.com",
			"is_phishing": false,
			"confidence_score": 0,
			"display_confidence": "100.0%",
			"risk_level": "SAFE",
			"details": ["ok"]
		},
		"source": "WHITELIST",
		"created_at": "2024-05-01T10:00:00Z"
	}`, e.String())

	var got domain.ScanRecord
	require.NoError(t, got.Decode(jx.DecodeBytes(e.Bytes())))
	require.Equal(t, r, got)
}
