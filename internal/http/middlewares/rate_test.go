package middlewares

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/bookwookie/internal/rate"
)

type stubLimiter struct {
	keys  []string
	allow bool
}

func (s *stubLimiter) Allow(_ context.Context, key string) (rate.Result, error) {
	s.keys = append(s.keys, key)
	return rate.Result{Allowed: s.allow, RetryAfter: time.Minute}, nil
}

func postLogin(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/auth/authenticate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "10.0.0.1:5000"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestLoginLimitKeyedByUsernameAndIP(t *testing.T) {
	lim := &stubLimiter{allow: true}
	h := WithLoginRateLimit(lim)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := postLogin(t, h, `{"username":"bob","password":"x"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, lim.keys, 1)
	assert.Equal(t, "bob|10.0.0.1", lim.keys[0])
}

func TestLoginLimitBlockedReturns429(t *testing.T) {
	lim := &stubLimiter{allow: false}
	h := WithLoginRateLimit(lim)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("el handler no debería correr")
	}))

	rec := postLogin(t, h, `{"username":"bob","password":"x"}`)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))
}

func TestLoginBodyOverPeekLimitReachesHandlerIntact(t *testing.T) {
	// body válido más largo que lo que mira el extractor de username
	pad := strings.Repeat("a", 8192)
	body := `{"username":"bob","password":"x","comment":"` + pad + `"}`

	lim := &stubLimiter{allow: true}
	var got struct {
		Username string `json:"username"`
		Comment  string `json:"comment"`
	}
	h := WithLoginRateLimit(lim)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.Len(t, b, len(body))
		require.NoError(t, json.Unmarshal(b, &got))
		w.WriteHeader(http.StatusOK)
	}))

	rec := postLogin(t, h, body)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "bob", got.Username)
	assert.Equal(t, pad, got.Comment)
}
