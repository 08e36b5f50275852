package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nharmon/slicehaus-backend/api/responses"
	"github.com/nharmon/slicehaus-backend/pkg/config"
	pkgerrors "github.com/nharmon/slicehaus-backend/pkg/errors"
	"github.com/nharmon/slicehaus-backend/pkg/logger"
	"github.com/nharmon/slicehaus-backend/pkg/session"
)

const (
	sessionHeader = "X-SH-Session"
	sessionCookie = "sh_session"
)

// Session resolves the anonymous storefront session. A valid token from the
// cookie or header is reused; anything missing, expired, or tampered with
// silently gets a fresh session rather than an error, since there is no
// account to be locked out of. The token is echoed on every response so
// clients can persist it.
func Session(cfg config.SessionConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := ""
			if raw := tokenFromRequest(r); raw != "" {
				if id, err := session.Parse(cfg, raw); err == nil {
					sessionID = id
				}
			}

			token := tokenFromRequest(r)
			if sessionID == "" {
				sessionID = uuid.NewString()
				minted, err := session.Mint(cfg, time.Now(), sessionID)
				if err != nil {
					responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint session"))
					return
				}
				token = minted
			}

			w.Header().Set(sessionHeader, token)
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookie,
				Value:    token,
				Path:     "/",
				MaxAge:   int(cfg.TTL() / time.Second),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})

			ctx := WithSessionID(r.Context(), sessionID)
			if logg != nil {
				ctx = logg.WithSessionID(ctx, sessionID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func tokenFromRequest(r *http.Request) string {
	if header := strings.TrimSpace(r.Header.Get(sessionHeader)); header != "" {
		return header
	}
	if cookie, err := r.Cookie(sessionCookie); err == nil {
		return strings.TrimSpace(cookie.Value)
	}
	return ""
}
