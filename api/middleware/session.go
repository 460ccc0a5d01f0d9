package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/minithai/minithai-backend/pkg/logger"
)

const sessionCookieMaxAge = 30 * 24 * time.Hour

// Session assigns every guest a stable session id via cookie. The id
// keys the session's cart document; no account is attached to it.
func Session(cookieName string, secure bool, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := ""
			if cookie, err := r.Cookie(cookieName); err == nil {
				if _, parseErr := uuid.Parse(cookie.Value); parseErr == nil {
					sessionID = cookie.Value
				}
			}

			if sessionID == "" {
				sessionID = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     cookieName,
					Value:    sessionID,
					Path:     "/",
					MaxAge:   int(sessionCookieMaxAge.Seconds()),
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := WithSessionID(r.Context(), sessionID)
			if logg != nil {
				ctx = logg.WithSessionID(ctx, sessionID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
