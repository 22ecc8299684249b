package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/i18n"
)

// Locale stores the best supported Accept-Language match in the request
// context. Requests without a match keep the default locale.
func Locale(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if locale := i18n.MatchAcceptLanguage(r.Header.Get("Accept-Language")); locale != "" {
			r = r.WithContext(i18n.WithLocale(r.Context(), locale))
		}
		next.ServeHTTP(w, r)
	})
}
