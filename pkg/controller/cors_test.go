package controller_test

import (
	"net/http"
	"net/http/httptest"
	"phishnet/pkg/controller"
	"testing"

	"github.com/stretchr/testify/require"
)

func serveCORS(t *testing.T, method, origin string, origins ...string) (*http.Response, bool) {
	t.Helper()
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusTeapot)
	})

	req := httptest.NewRequest(method, "/api/scan", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	rec := httptest.NewRecorder()
	controller.WithCORS(next, origins...).ServeHTTP(rec, req)

	return rec.Result(), called
}

func TestWithCORS_Preflight(t *testing.T) {
	res, called := serveCORS(t, http.MethodOptions, "http://localhost:5173", "*")
	require.False(t, called, "next handler should not be called for OPTIONS preflight")
	require.Equal(t, http.StatusNoContent, res.StatusCode)
	require.Equal(t, "http://localhost:5173", res.Header.Get("Access-Control-Allow-Origin"))
	require.Equal(t, "true", res.Header.Get("Access-Control-Allow-Credentials"))
	require.Contains(t, res.Header.Get("Access-Control-Allow-Methods"), "POST")
}

func TestWithCORS_NoOriginHeader(t *testing.T) {
	res, called := serveCORS(t, http.MethodGet, "")
	require.True(t, called)
	require.Equal(t, http.StatusTeapot, res.StatusCode)
	require.Equal(t, "*", res.Header.Get("Access-Control-Allow-Origin"))
}

func TestWithCORS_AllowList(t *testing.T) {
	res, called := serveCORS(t, http.MethodPost, "https://app.phishnet.example", "https://app.phishnet.example")
	require.True(t, called)
	require.Equal(t, "https://app.phishnet.example", res.Header.Get("Access-Control-Allow-Origin"))

	res, called = serveCORS(t, http.MethodOptions, "https://evil.example", "https://app.phishnet.example")
	require.True(t, called, "disallowed preflight falls through to the router")
	require.Empty(t, res.Header.Get("Access-Control-Allow-Origin"))
}
