package requestid

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter() (*gin.Engine, *string) {
	gin.SetMode(gin.TestMode)
	var captured string
	r := gin.New()
	r.Use(Middleware())
	r.GET("/ping", func(c *gin.Context) {
		captured = Value(c)
		c.Status(http.StatusOK)
	})
	return r, &captured
}

func TestMiddlewareIssuesID(t *testing.T) {
	r, captured := newRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w, req)

	require.NotEmpty(t, *captured)
	assert.Equal(t, *captured, w.Header().Get("X-Request-ID"))
}

func TestMiddlewareKeepsInboundID(t *testing.T) {
	r, captured := newRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "client-trace-42")
	r.ServeHTTP(w, req)

	assert.Equal(t, "client-trace-42", *captured)
	assert.Equal(t, "client-trace-42", w.Header().Get("X-Request-ID"))
}

func TestMiddlewareReplacesUnsafeInboundID(t *testing.T) {
	cases := map[string]string{
		"control chars": "abc\ndef",
		"too long":      strings.Repeat("a", 65),
		"spaces":        "has space",
	}
	for name, inbound := range cases {
		t.Run(name, func(t *testing.T) {
			r, captured := newRouter()

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			req.Header.Set("X-Request-ID", inbound)
			r.ServeHTTP(w, req)

			assert.NotEqual(t, inbound, *captured)
			assert.NotEmpty(t, *captured)
		})
	}
}
