package middleware

import (
	"net/http"

	"github.com/angelmondragon/luxe-storefront/pkg/config"
	"github.com/angelmondragon/luxe-storefront/pkg/logger"
)

// VisitorTokens issues and verifies visitor cookies.
type VisitorTokens interface {
	Issue() (visitorID, token string, err error)
	Parse(token string) (string, error)
}

// Visitor resolves the anonymous visitor behind a request from its cookie, issuing a new
// one when the cookie is missing, expired or forged.
func Visitor(tokens VisitorTokens, cfg config.VisitorConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			visitorID := ""

			if cookie, err := r.Cookie(cfg.CookieName); err == nil && cookie.Value != "" {
				id, parseErr := tokens.Parse(cookie.Value)
				if parseErr == nil {
					visitorID = id
				} else if logg != nil {
					logg.WarnErr(ctx, "visitor.token_rejected", parseErr)
				}
			}

			if visitorID == "" {
				id, token, err := tokens.Issue()
				if err != nil {
					if logg != nil {
						logg.Error(ctx, "visitor.issue_failed", err)
					}
					http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
					return
				}
				visitorID = id
				http.SetCookie(w, &http.Cookie{
					Name:     cfg.CookieName,
					Value:    token,
					Path:     "/",
					MaxAge:   int(cfg.TTL.Seconds()),
					HttpOnly: true,
					Secure:   cfg.CookieSecure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx = WithVisitorID(ctx, visitorID)
			if logg != nil {
				ctx = logg.WithVisitorID(ctx, visitorID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
