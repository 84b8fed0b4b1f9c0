package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/angelmondragon/luxe-storefront/api/responses"
	pkgerrors "github.com/angelmondragon/luxe-storefront/pkg/errors"
	"github.com/angelmondragon/luxe-storefront/pkg/logger"
)

// Recoverer turns a handler panic into a 500. JSON routes get the error envelope, pages
// get a plain text response.
func Recoverer(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					err := pkgerrors.Wrap(pkgerrors.CodeInternal, fmt.Errorf("panic: %v", rec), "panic")
					ctx := r.Context()
					if logg != nil {
						ctx = logg.WithField(ctx, "panic", fmt.Sprint(rec))
					}
					if strings.HasPrefix(r.URL.Path, "/api/") {
						responses.WriteError(ctx, logg, w, err)
						return
					}
					responses.LogError(ctx, logg, err)
					http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
