package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func requestContext(t *testing.T) (*gin.Context, *http.Request) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request = req
	return c, req
}

func TestClientIP(t *testing.T) {
	t.Run("Forwarded For Uses First Hop", func(t *testing.T) {
		c, req := requestContext(t)
		req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1, 10.0.0.2")
		assert.Equal(t, "203.0.113.7", clientIP(c))
	})

	t.Run("Real IP Fallback", func(t *testing.T) {
		c, req := requestContext(t)
		req.Header.Set("X-Real-IP", " 198.51.100.4 ")
		assert.Equal(t, "198.51.100.4", clientIP(c))
	})

	t.Run("Remote Addr Port Stripped", func(t *testing.T) {
		c, req := requestContext(t)
		req.RemoteAddr = "192.0.2.10:52114"
		assert.Equal(t, "192.0.2.10", clientIP(c))
	})
}
