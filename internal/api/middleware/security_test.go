package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/akshita-as02/wanderwise/internal/api/middleware"
)

var pdfHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="paris.pdf"`)
	_, _ = w.Write([]byte("%PDF-1.3"))
})

func TestSecurityHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	middleware.SecurityHeaders(pdfHandler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/itineraries/x/pdf", http.NoBody))

	want := map[string]string{
		"X-Content-Type-Options":    "nosniff",
		"X-Frame-Options":           "DENY",
		"Strict-Transport-Security": "max-age=31536000; includeSubDomains",
		"Content-Security-Policy":   "default-src 'none'; frame-ancestors 'none'",
		"Referrer-Policy":           "strict-origin-when-cross-origin",
		"Permissions-Policy":        "geolocation=(), camera=(), microphone=()",
	}
	for name, value := range want {
		assert.Equal(t, value, rec.Header().Get(name), name)
	}

	// Handler headers survive.
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="paris.pdf"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "%PDF-1.3", rec.Body.String())
}

func TestRequireTLS(t *testing.T) {
	tests := []struct {
		name     string
		enabled  bool
		proto    string
		wantCode int
	}{
		{"disabled allows http", false, "http", http.StatusOK},
		{"enabled rejects http", true, "http", http.StatusForbidden},
		{"enabled allows https", true, "https", http.StatusOK},
		{"enabled allows direct connections", true, "", http.StatusOK},
	}

	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/destinations/popular", http.NoBody)
			if tt.proto != "" {
				req.Header.Set("X-Forwarded-Proto", tt.proto)
			}
			rec := httptest.NewRecorder()

			middleware.RequireTLS(tt.enabled)(ok).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantCode == http.StatusForbidden {
				assert.Contains(t, rec.Body.String(), `"type":"tls_required"`)
				assert.Contains(t, rec.Body.String(), "This endpoint requires HTTPS")
				assert.Contains(t, rec.Body.String(), `"instance":"/v1/destinations/popular"`)
			}
		})
	}
}
