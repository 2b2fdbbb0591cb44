package middleware

import (
	"mime"
	"net/http"

	"github.com/akshita-as02/wanderwise/internal/api/models"
)

// ContentTypeJSON defaults the response Content-Type to application/json.
// Handlers that stream other media types override it.
func ContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if w.Header().Get("Content-Type") == "" {
			w.Header().Set("Content-Type", "application/json")
		}
		next.ServeHTTP(w, r)
	})
}

// RequireJSON rejects POST, PUT and PATCH bodies that declare a media type
// other than application/json. A missing Content-Type is accepted.
func RequireJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
			if ct := r.Header.Get("Content-Type"); ct != "" {
				mediaType, _, err := mime.ParseMediaType(ct)
				if err != nil || mediaType != "application/json" {
					problem := models.NewProblem(models.ProblemTypeValidation, http.StatusUnsupportedMediaType, GetRequestID(r.Context())).
						WithDetails("Content-Type must be application/json").
						WithInstance(r.URL.Path)
					problem.Write(w)
					return
				}
			}
		}
		next.ServeHTTP(w, r)
	})
}
