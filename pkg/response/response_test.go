package response_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/monastery360/service-travel/pkg/domain"
	"github.com/monastery360/service-travel/pkg/response"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, h gin.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/", h)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	return rec
}

func TestError_appErrorStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{domain.NewValidationError("bad"), http.StatusBadRequest},
		{domain.NewNotFoundError("Session", "1"), http.StatusNotFound},
		{domain.NewInvalidStateError("idle", "map_open"), http.StatusConflict},
		{domain.NewUpstreamError("osrm", errors.New("x")), http.StatusBadGateway},
		{domain.NewConfigurationError("missing key"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		rec := serve(t, func(c *gin.Context) { response.Error(c, tc.err) })
		assert.Equal(t, tc.want, rec.Code, tc.err.Error())
	}
}

func TestError_hidesInternalDetail(t *testing.T) {
	rec := serve(t, func(c *gin.Context) { response.Error(c, errors.New("pq: password authentication failed")) })

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var env response.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, "internal server error", env.Error.Message)
	assert.False(t, env.Success)
}

func TestSuccess_wrapsData(t *testing.T) {
	rec := serve(t, func(c *gin.Context) { response.Success(c, gin.H{"ok": true}) })

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"data":{"ok":true}}`, rec.Body.String())
}
