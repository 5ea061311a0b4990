package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware(t *testing.T) {
	apiKey := "secret-key"
	middleware := AuthMiddleware(apiKey, nil, NewSuspiciousActivityDetector())

	tests := []struct {
		name           string
		providedKey    string
		path           string
		expectedStatus int
	}{
		{
			name:           "Valid API Key",
			providedKey:    apiKey,
			path:           "/api/v1/stats",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Invalid API Key",
			providedKey:    "wrong-key",
			path:           "/api/v1/stats",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Missing API Key",
			providedKey:    "",
			path:           "/api/v1/stats",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Public Path - Healthz",
			providedKey:    "",
			path:           "/healthz",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Public Path - Readyz",
			providedKey:    "",
			path:           "/readyz",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Public Path - Metrics",
			providedKey:    "",
			path:           "/metrics",
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.providedKey != "" {
				req.Header.Set(HeaderAPIKey, tt.providedKey)
			}
			rec := httptest.NewRecorder()

			middleware(okHandler()).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}

func TestSecurityHeadersMiddleware(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()

	SecurityHeadersMiddleware()(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, HeaderValueNoSniff, rec.Header().Get(HeaderContentType))
	assert.Equal(t, HeaderValueSameOrigin, rec.Header().Get(HeaderFrameOptions))
	assert.Equal(t, HeaderValueXSSBlock, rec.Header().Get(HeaderXSSProtection))
	assert.Equal(t, HeaderValueReferrerStrictOrigin, rec.Header().Get(HeaderReferrerPolicy))
}

func TestRequestSizeLimitMiddleware(t *testing.T) {
	echo := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, 64)
		if _, err := r.Body.Read(buf); err != nil && !strings.Contains(err.Error(), "EOF") {
			http.Error(w, "request too large", http.StatusRequestEntityTooLarge)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	t.Run("Under Limit", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/games", strings.NewReader("small"))
		rec := httptest.NewRecorder()
		RequestSizeLimitMiddleware(32)(echo).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Over Limit", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/games", strings.NewReader(strings.Repeat("x", 128)))
		rec := httptest.NewRecorder()
		RequestSizeLimitMiddleware(32)(echo).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	})
}

func TestSuspiciousActivityDetector_RateLimit(t *testing.T) {
	detector := NewSuspiciousActivityDetector()

	for i := 0; i < rateLimitWindowRequests; i++ {
		assert.True(t, detector.RecordRequest("10.0.0.1"))
	}
	assert.False(t, detector.RecordRequest("10.0.0.1"))

	// Other IPs are unaffected.
	assert.True(t, detector.RecordRequest("10.0.0.2"))
}

func TestSecurityLoggingMiddleware_BlocksOverRate(t *testing.T) {
	detector := NewSuspiciousActivityDetector()
	for i := 0; i < rateLimitWindowRequests; i++ {
		detector.RecordRequest("192.0.2.1")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil)
	req.RemoteAddr = "192.0.2.1:54321"
	rec := httptest.NewRecorder()

	SecurityLoggingMiddleware(nil, detector)(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestExtractIP(t *testing.T) {
	tests := []struct {
		name           string
		remoteAddr     string
		forwardedFor   string
		trustedProxies []string
		expected       string
	}{
		{
			name:       "Direct Connection",
			remoteAddr: "203.0.113.5:12345",
			expected:   "203.0.113.5",
		},
		{
			name:         "Forwarded Header From Untrusted Peer Ignored",
			remoteAddr:   "203.0.113.5:12345",
			forwardedFor: "198.51.100.7",
			expected:     "203.0.113.5",
		},
		{
			name:           "Forwarded Header From Trusted Proxy",
			remoteAddr:     "10.0.0.1:443",
			forwardedFor:   "198.51.100.7",
			trustedProxies: []string{"10.0.0.1"},
			expected:       "198.51.100.7",
		},
		{
			name:           "Rightmost Forwarded Entry Wins",
			remoteAddr:     "10.0.0.1:443",
			forwardedFor:   "198.51.100.7, 198.51.100.8",
			trustedProxies: []string{"10.0.0.1"},
			expected:       "198.51.100.8",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.forwardedFor != "" {
				req.Header.Set(HeaderForwardedFor, tt.forwardedFor)
			}
			assert.Equal(t, tt.expected, extractIP(req, tt.trustedProxies))
		})
	}
}
