package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nharmon/slicehaus-backend/pkg/config"
	"github.com/nharmon/slicehaus-backend/pkg/session"
)

func sessionTestConfig() config.SessionConfig {
	return config.SessionConfig{
		Secret:     "middleware-secret",
		Issuer:     "slicehaus",
		TTLMinutes: 60,
	}
}

func captureSession(t *testing.T, cfg config.SessionConfig, mutate func(r *http.Request)) (*httptest.ResponseRecorder, string) {
	t.Helper()

	var seen string
	handler := Session(cfg, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = SessionIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	if mutate != nil {
		mutate(req)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec, seen
}

func TestSessionMintsWhenMissing(t *testing.T) {
	t.Parallel()

	cfg := sessionTestConfig()
	rec, seen := captureSession(t, cfg, nil)

	require.NotEmpty(t, seen)
	token := rec.Header().Get("X-SH-Session")
	require.NotEmpty(t, token)

	parsed, err := session.Parse(cfg, token)
	require.NoError(t, err)
	assert.Equal(t, seen, parsed)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "sh_session", cookies[0].Name)
	assert.Equal(t, token, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}

func TestSessionReusesValidToken(t *testing.T) {
	t.Parallel()

	cfg := sessionTestConfig()
	sessionID := uuid.NewString()
	token, err := session.Mint(cfg, time.Now(), sessionID)
	require.NoError(t, err)

	rec, seen := captureSession(t, cfg, func(r *http.Request) {
		r.Header.Set("X-SH-Session", token)
	})

	assert.Equal(t, sessionID, seen)
	assert.Equal(t, token, rec.Header().Get("X-SH-Session"))
}

func TestSessionAcceptsCookie(t *testing.T) {
	t.Parallel()

	cfg := sessionTestConfig()
	sessionID := uuid.NewString()
	token, err := session.Mint(cfg, time.Now(), sessionID)
	require.NoError(t, err)

	_, seen := captureSession(t, cfg, func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: "sh_session", Value: token})
	})

	assert.Equal(t, sessionID, seen)
}

func TestSessionReplacesTamperedToken(t *testing.T) {
	t.Parallel()

	cfg := sessionTestConfig()
	other := sessionTestConfig()
	other.Secret = "attacker-secret"
	forged, err := session.Mint(other, time.Now(), uuid.NewString())
	require.NoError(t, err)

	rec, seen := captureSession(t, cfg, func(r *http.Request) {
		r.Header.Set("X-SH-Session", forged)
	})

	require.NotEmpty(t, seen)
	reissued := rec.Header().Get("X-SH-Session")
	assert.NotEqual(t, forged, reissued)

	parsed, err := session.Parse(cfg, reissued)
	require.NoError(t, err)
	assert.Equal(t, seen, parsed)
}
