package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func testCtx(t *testing.T, path, realIP string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, path, nil)
	if realIP != "" {
		c.Set("real_ip", realIP)
	}
	return c
}

func TestAllowPrivateIP(t *testing.T) {
	tests := []struct {
		name string
		ip   string
		want bool
	}{
		{"loopback", "127.0.0.1", true},
		{"rfc1918", "10.1.2.3", true},
		{"rfc1918 upper range", "192.168.0.7", true},
		{"public", "203.0.113.50", false},
		{"garbage", "not-an-ip", false},
	}
	allow := AllowPrivateIP()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testCtx(t, "/api/register", tt.ip)
			assert.Equal(t, tt.want, allow(c))
		})
	}
}

func TestKeyByIPAndPath_SeparatesRoutes(t *testing.T) {
	keyFn := KeyByIPAndPath()

	register := keyFn(testCtx(t, "/api/register", "203.0.113.50"))
	login := keyFn(testCtx(t, "/api/login", "203.0.113.50"))

	assert.NotEqual(t, register, login, "same client must get one window per route")
	assert.Contains(t, register, "203.0.113.50")
	assert.Contains(t, register, "/api/register")
}

func TestKeyByUserID_AnonymousFallsBackToIP(t *testing.T) {
	keyFn := KeyByUserID()

	anon := testCtx(t, "/api/reviews", "203.0.113.50")
	assert.Contains(t, keyFn(anon), "203.0.113.50")

	authed := testCtx(t, "/api/reviews", "203.0.113.50")
	authed.Set(CtxUserIDKey, "user-1")
	assert.Equal(t, "rl:user:user-1", keyFn(authed))
}
