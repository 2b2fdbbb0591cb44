package middleware

import (
	"net/http"

	"github.com/akshita-as02/wanderwise/internal/api/models"
)

// securityHeaders are set on every response. The API only serves JSON and
// PDF documents, so nothing may be framed or load subresources.
var securityHeaders = []struct{ name, value string }{
	{"X-Content-Type-Options", "nosniff"},
	{"X-Frame-Options", "DENY"},
	{"Strict-Transport-Security", "max-age=31536000; includeSubDomains"},
	{"Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'"},
	{"Referrer-Policy", "strict-origin-when-cross-origin"},
	{"Permissions-Policy", "geolocation=(), camera=(), microphone=()"},
}

// SecurityHeaders adds standard security headers to all HTTP responses.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for _, sh := range securityHeaders {
			w.Header().Set(sh.name, sh.value)
		}
		next.ServeHTTP(w, r)
	})
}

// RequireTLS rejects requests the load balancer received over plain HTTP.
// Only X-Forwarded-Proto is consulted, so direct connections without the
// header pass through.
func RequireTLS(enabled bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !enabled {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			proto := r.Header.Get("X-Forwarded-Proto")
			if proto == "" || proto == "https" {
				next.ServeHTTP(w, r)
				return
			}
			models.NewProblem(models.ProblemTypeTLSRequired, http.StatusForbidden, GetRequestID(r.Context())).
				WithDetails("This endpoint requires HTTPS").
				WithInstance(r.URL.Path).
				Write(w)
		})
	}
}
