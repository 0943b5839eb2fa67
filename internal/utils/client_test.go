package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestParseDevice(t *testing.T) {
	tests := []struct {
		name       string
		userAgent  string
		deviceType string
		bot        bool
	}{
		{"empty", "", "unknown", false},
		{"desktop chrome", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36", "desktop", false},
		{"iphone", "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1", "mobile", false},
		{"ipad", "Mozilla/5.0 (iPad; CPU OS 16_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/16.0 Mobile/15E148 Safari/604.1", "tablet", false},
		{"crawler", "Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)", "desktop", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			device := ParseDevice(tt.userAgent)
			assert.Equal(t, tt.deviceType, device.Type)
			assert.Equal(t, tt.bot, device.IsBot)
			assert.NotEmpty(t, device.OS)
			assert.NotEmpty(t, device.Browser)
		})
	}
}

func TestClientIP(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		headers  map[string]string
		expected string
	}{
		{"real ip header", map[string]string{"X-Real-IP": "203.0.113.7"}, "203.0.113.7"},
		{"private real ip skipped", map[string]string{"X-Real-IP": "10.0.0.4", "X-Forwarded-For": "198.51.100.2"}, "198.51.100.2"},
		{"first public forwarded", map[string]string{"X-Forwarded-For": "192.168.1.5, 198.51.100.9, 203.0.113.1"}, "198.51.100.9"},
		{"remote address fallback", nil, "192.0.2.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tt.headers {
				c.Request.Header.Set(k, v)
			}
			assert.Equal(t, tt.expected, ClientIP(c))
		})
	}
}

func TestGenerateJWTSecrets(t *testing.T) {
	access, refresh, err := GenerateJWTSecrets()
	assert.NoError(t, err)
	assert.Len(t, access, SecretBytes*2)
	assert.Len(t, refresh, SecretBytes*2)
	assert.NotEqual(t, access, refresh)

	_, err = GenerateSecret(0)
	assert.Error(t, err)
}
