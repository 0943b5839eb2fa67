package utils

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
	ua "github.com/mssola/user_agent"
)

// Device summarizes the terminal a front desk request came from
type Device struct {
	Type    string `json:"device_type"` // mobile, tablet, desktop, unknown
	OS      string `json:"os"`
	Browser string `json:"browser"`
	IsBot   bool   `json:"is_bot"`
}

var tabletMarkers = []string{"ipad", "tablet", "kindle", "sm-t", "nexus 7", "nexus 9", "nexus 10"}

// ParseDevice extracts device details from a User-Agent header
func ParseDevice(userAgent string) Device {
	if strings.TrimSpace(userAgent) == "" {
		return Device{Type: "unknown", OS: "Unknown", Browser: "Unknown"}
	}

	parser := ua.New(userAgent)
	device := Device{
		Type:    "desktop",
		OS:      "Unknown",
		Browser: "Unknown",
		IsBot:   parser.Bot(),
	}

	if os := parser.OSInfo(); os.Name != "" {
		device.OS = strings.TrimSpace(os.Name + " " + os.Version)
	}
	if name, version := parser.Browser(); name != "" {
		device.Browser = strings.TrimSpace(name + " " + version)
	}

	if parser.Mobile() {
		device.Type = "mobile"
		lower := strings.ToLower(userAgent)
		for _, marker := range tabletMarkers {
			if strings.Contains(lower, marker) {
				device.Type = "tablet"
				break
			}
		}
	}

	return device
}

// ClientIP returns the first public address in X-Real-IP or X-Forwarded-For,
// falling back to gin's view of the remote address.
func ClientIP(c *gin.Context) string {
	if ip := strings.TrimSpace(c.GetHeader("X-Real-IP")); isPublicIP(ip) {
		return ip
	}

	for _, part := range strings.Split(c.GetHeader("X-Forwarded-For"), ",") {
		if ip := strings.TrimSpace(part); isPublicIP(ip) {
			return ip
		}
	}

	return c.ClientIP()
}

func isPublicIP(s string) bool {
	ip := net.ParseIP(s)
	if ip == nil {
		return false
	}
	return !ip.IsLoopback() && !ip.IsPrivate() && !ip.IsUnspecified() && !ip.IsLinkLocalUnicast()
}
