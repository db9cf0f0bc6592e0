package controller_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"phishnet/pkg/controller"
	"phishnet/pkg/logger"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestGetClientIP(t *testing.T) {
	testCases := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		want       string
	}{
		{name: "x-forwarded-for", headers: map[string]string{"X-Forwarded-For": "1.2.3.4, 5.6.7.8"}, want: "1.2.3.4"},
		{name: "x-real-ip", headers: map[string]string{"X-Real-IP": "9.8.7.6"}, want: "9.8.7.6"},
		{name: "remote addr", remoteAddr: "10.0.0.1:12345", want: "10.0.0.1"},
		{name: "invalid remote addr", remoteAddr: "not-an-addr", want: "not-an-addr"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}
			if tc.remoteAddr != "" {
				req.RemoteAddr = tc.remoteAddr
			}
			require.Equal(t, tc.want, controller.GetClientIP(req))
		})
	}
}

func TestWithLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	ctx := logger.WithLogger(context.Background(), zap.New(core))

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Echo", controller.RequestID(r.Context()))
		w.WriteHeader(http.StatusCreated)
	})
	h := controller.WithLogger(next, "/metrics")

	t.Run("provided request id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/scan", nil).WithContext(ctx)
		req.Header.Set(controller.RequestIDHeader, "abc-123")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)
		require.Equal(t, "abc-123", rec.Header().Get("X-Echo"))
		require.Equal(t, "abc-123", rec.Header().Get(controller.RequestIDHeader))

		entries := logs.TakeAll()
		require.Len(t, entries, 1)
		fields := entries[0].ContextMap()
		require.Equal(t, "abc-123", fields["request_id"])
		require.EqualValues(t, http.StatusCreated, fields["status_code"])
		require.Equal(t, "/api/scan", fields["path"])
	})

	t.Run("generated request id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx))

		require.NotEmpty(t, rec.Header().Get("X-Echo"))
		require.Equal(t, rec.Header().Get("X-Echo"), rec.Header().Get(controller.RequestIDHeader))
		require.Len(t, logs.TakeAll(), 1)
	})

	t.Run("quiet path", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil).WithContext(ctx))

		require.Equal(t, http.StatusCreated, rec.Code)
		require.Empty(t, logs.TakeAll())
	})
}
