package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/monastery360/service-travel/pkg/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newRouter(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw...)
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, middleware.GetRequestID(c))
	})
	r.GET("/panic", func(c *gin.Context) { panic("boom") })
	return r
}

func TestRequestID_generatesWhenMissing(t *testing.T) {
	r := newRouter(middleware.RequestIDMiddleware())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	id := rec.Header().Get(middleware.RequestIDHeader)
	assert.NotEmpty(t, id)
	assert.Equal(t, id, rec.Body.String())
}

func TestRequestID_propagatesIncoming(t *testing.T) {
	r := newRouter(middleware.RequestIDMiddleware())
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(middleware.RequestIDHeader, "req-42")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, "req-42", rec.Header().Get(middleware.RequestIDHeader))
}

func TestRecovery_returns500(t *testing.T) {
	r := newRouter(middleware.RecoveryMiddleware(zap.NewNop()), middleware.LoggerMiddleware(zap.NewNop()))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestSecurityHeaders(t *testing.T) {
	r := newRouter(middleware.SecurityHeadersMiddleware())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
}

func TestCORS_allowsConfiguredOrigin(t *testing.T) {
	r := newRouter(middleware.CORSMiddleware([]string{"https://monastery360.example"}))
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "https://monastery360.example")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, "https://monastery360.example", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimit_memoryStore(t *testing.T) {
	store, err := middleware.NewLimiterStore(nil, "test")
	require.NoError(t, err)
	mw, err := middleware.RateLimit(store, "2-M")
	require.NoError(t, err)

	r := newRouter(mw)
	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRateLimit_badFormat(t *testing.T) {
	store, err := middleware.NewLimiterStore(nil, "test")
	require.NoError(t, err)
	_, err = middleware.RateLimit(store, "lots")
	assert.Error(t, err)
}

func TestAdminToken(t *testing.T) {
	r := newRouter(middleware.AdminTokenMiddleware("s3cret"))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(middleware.AdminTokenHeader, "s3cret")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
