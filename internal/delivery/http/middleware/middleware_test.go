package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"careerai-backend/internal/domain"
	"careerai-backend/pkg/apperror"
	"careerai-backend/pkg/security"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimiter_MemoryWindow(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(nil, nil)
	rl.now = func() time.Time { return now }

	r := gin.New()
	r.Use(rl.Middleware(RateLimitConfig{Limit: 2, Window: time.Minute, KeyPrefix: "rl:test:"}))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	first := serve(r, http.MethodGet, "/ping", nil)
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "2", first.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Remaining"))

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/ping", nil).Code)

	blocked := serve(r, http.MethodGet, "/ping", nil)
	assert.Equal(t, http.StatusTooManyRequests, blocked.Code)
	assert.Equal(t, "60", blocked.Header().Get("Retry-After"))
	assert.Equal(t, "0", blocked.Header().Get("X-RateLimit-Remaining"))

	now = now.Add(61 * time.Second)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/ping", nil).Code)
}

func TestRateLimiter_KeysAreIndependent(t *testing.T) {
	rl := NewRateLimiter(nil, nil)
	r := gin.New()
	r.Use(rl.Middleware(RateLimitConfig{
		Limit:   1,
		Window:  time.Minute,
		KeyFunc: func(c *gin.Context) string { return c.GetHeader("X-Client") },
	}))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/ping", map[string]string{"X-Client": "a"}).Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/ping", map[string]string{"X-Client": "b"}).Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(r, http.MethodGet, "/ping", map[string]string{"X-Client": "a"}).Code)
}

func TestRateLimiter_SweepsExpiredEntries(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(nil, nil)
	rl.now = func() time.Time { return now }

	rl.incrMemory("a", time.Minute)
	rl.incrMemory("b", time.Minute)
	require.Len(t, rl.entries, 2)

	now = now.Add(10 * time.Minute)
	rl.incrMemory("c", time.Minute)
	assert.Len(t, rl.entries, 1)
}

func TestDefaultConfigs(t *testing.T) {
	global := GlobalConfig(0, time.Minute)
	assert.Equal(t, 100, global.Limit)
	assert.False(t, global.FailClosed)

	strict := AuthConfig(0, time.Minute)
	assert.Equal(t, 10, strict.Limit)
	assert.True(t, strict.FailClosed)
	assert.NotEqual(t, global.KeyPrefix, strict.KeyPrefix)
}

func TestCORSMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware([]string{"https://app.example.com/"}))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	tests := []struct {
		name       string
		method     string
		origin     string
		wantCode   int
		wantOrigin string
	}{
		{"allowed preflight", http.MethodOptions, "https://app.example.com", http.StatusNoContent, "https://app.example.com"},
		{"rejected preflight", http.MethodOptions, "https://evil.example.com", http.StatusForbidden, ""},
		{"allowed request", http.MethodGet, "https://app.example.com", http.StatusOK, "https://app.example.com"},
		{"foreign origin request", http.MethodGet, "https://evil.example.com", http.StatusOK, ""},
		{"no origin", http.MethodGet, "", http.StatusOK, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headers := map[string]string{}
			if tt.origin != "" {
				headers["Origin"] = tt.origin
			}
			w := serve(r, tt.method, "/ping", headers)
			assert.Equal(t, tt.wantCode, w.Code)
			assert.Equal(t, tt.wantOrigin, w.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, "Origin", w.Header().Get("Vary"))
		})
	}
}

func TestCORSMiddleware_Wildcard(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware([]string{"*"}))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(r, http.MethodGet, "/ping", map[string]string{"Origin": "https://anything.example"})
	assert.Equal(t, "https://anything.example", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestErrorHandler(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), ErrorHandler(nil))
	r.GET("/missing", func(c *gin.Context) { c.Error(apperror.NotFound("Job not found")) })
	r.GET("/down", func(c *gin.Context) { c.Error(apperror.Unavailable(errors.New("dial tcp: refused"))) })
	r.GET("/boom", func(c *gin.Context) { c.Error(errors.New("pq: secret table detail")) })

	w := serve(r, http.MethodGet, "/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Job not found")
	assert.Contains(t, w.Body.String(), w.Header().Get("X-Request-ID"))

	w = serve(r, http.MethodGet, "/down", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.NotContains(t, w.Body.String(), "refused")

	w = serve(r, http.MethodGet, "/boom", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "secret")
}

func TestErrorHandler_LogsForbidden(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	r := gin.New()
	r.Use(ErrorHandler(security.WrapLogger(zap.New(core), "test", "test")))
	r.DELETE("/jobs/:id", func(c *gin.Context) {
		c.Set(string(domain.KeyUserID), "user-7")
		c.Error(apperror.Forbidden("Not your job"))
	})

	w := serve(r, http.MethodDelete, "/jobs/1", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	entries := logs.FilterMessage(string(security.EventForbiddenAccess)).All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "user-7", fields["subject_value"])
	assert.Contains(t, fields["details"], `"endpoint":"/jobs/:id"`)
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(r, http.MethodGet, "/ping", map[string]string{"X-Request-ID": "abc-123"})
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))

	w = serve(r, http.MethodGet, "/ping", map[string]string{"X-Request-ID": strings.Repeat("x", 200)})
	assert.Len(t, w.Header().Get("X-Request-ID"), 36)
}

func TestSecurityHeaders(t *testing.T) {
	r := gin.New()
	r.Use(SecurityHeadersMiddleware(true))
	r.GET("/v1/jobs", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(r, http.MethodGet, "/v1/jobs", map[string]string{"Authorization": "Bearer x"})
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, w.Header().Get("Strict-Transport-Security"))
	assert.Contains(t, w.Header().Get("Cache-Control"), "no-store")

	r = gin.New()
	r.Use(SecurityHeadersMiddleware(false))
	r.GET("/v1/jobs", func(c *gin.Context) { c.Status(http.StatusOK) })
	w = serve(r, http.MethodGet, "/v1/jobs", nil)
	assert.Empty(t, w.Header().Get("Strict-Transport-Security"))
}
