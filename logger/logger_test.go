package logger_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/muhammadEhsanUllahdev/MareketNesting-sub003/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestInitializeWithWriter_TeesJSONToExtraSink(t *testing.T) {
	var buf bytes.Buffer
	logger.InitializeWithWriter("production", &buf)

	logger.Log.Info("sink check")
	_ = logger.Log.Sync()

	assert.Contains(t, buf.String(), "sink check")
	assert.Contains(t, buf.String(), `"timestamp"`)
}

func TestCtxHelpers_CarryRequestIDFromGinContext(t *testing.T) {
	var buf bytes.Buffer
	logger.InitializeWithWriter("production", &buf)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set(logger.RequestIDKey, "req-123")

	logger.Info(c, "checkout step")
	logger.Warn(c, "slow collaborator")
	_ = logger.Log.Sync()

	assert.Contains(t, buf.String(), "req-123")
	assert.Contains(t, buf.String(), "checkout step")
	assert.Contains(t, buf.String(), "slow collaborator")
}

func TestCtxHelpers_ReadRequestIDFromRequestContext(t *testing.T) {
	var buf bytes.Buffer
	logger.InitializeWithWriter("production", &buf)

	// RequestLogger propagates the incoming X-Request-ID into the request
	// context, which is what services receive
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(logger.RequestLogger())
	r.GET("/ping", func(c *gin.Context) {
		logger.Info(c.Request.Context(), "service-side log")
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "req-777")
	r.ServeHTTP(httptest.NewRecorder(), req)
	_ = logger.Log.Sync()

	assert.Contains(t, buf.String(), "service-side log")
	assert.Contains(t, buf.String(), "req-777")
}
