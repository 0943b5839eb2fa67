package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jPabloBC/hl.ingenit-v1-sub000/pkg/jwt"
	"github.com/sirupsen/logrus"
)

// StaffContextKey is the key used to store the authenticated staff member in the Gin context
const StaffContextKey = "staff"

// StaffContext represents the authenticated staff member and the hotel they act for
type StaffContext struct {
	StaffID    uuid.UUID `json:"staff_id"`
	BusinessID uuid.UUID `json:"business_id"`
	Roles      []string  `json:"roles"`
}

// HasRole reports whether the staff member holds any of roles
func (s StaffContext) HasRole(roles ...string) bool {
	for _, want := range roles {
		for _, have := range s.Roles {
			if have == want {
				return true
			}
		}
	}
	return false
}

func abort(c *gin.Context, status int, errCode, message, code string) {
	c.AbortWithStatusJSON(status, gin.H{
		"error":   errCode,
		"message": message,
		"code":    code,
	})
}

// AuthMiddleware validates the bearer access token and stores a StaffContext
func AuthMiddleware(jwtService *jwt.Service, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logger.WithFields(logrus.Fields{
			"path": c.Request.URL.Path,
			"ip":   c.ClientIP(),
		})

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			log.Warn("Missing authorization header")
			abort(c, http.StatusUnauthorized, "unauthorized", "Authorization header is required", "MISSING_AUTH_HEADER")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
			log.Warn("Invalid authorization header format")
			abort(c, http.StatusUnauthorized, "unauthorized", "Invalid authorization header format. Expected: Bearer <token>", "INVALID_AUTH_FORMAT")
			return
		}

		claims, err := jwtService.ValidateAccessToken(strings.TrimSpace(parts[1]))
		if err != nil {
			log.WithError(err).Warn("Access token rejected")
			if jwt.IsExpired(err) {
				abort(c, http.StatusUnauthorized, "token_expired", "Access token has expired. Please refresh your token.", "TOKEN_EXPIRED")
			} else {
				abort(c, http.StatusUnauthorized, "invalid_token", "Invalid access token", "INVALID_TOKEN")
			}
			return
		}

		c.Set(StaffContextKey, StaffContext{
			StaffID:    claims.StaffID,
			BusinessID: claims.BusinessID,
			Roles:      claims.Roles,
		})
		c.Next()
	}
}

// RequireRole rejects staff members holding none of roles
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		staff, exists := GetStaffContext(c)
		if !exists {
			abort(c, http.StatusUnauthorized, "unauthorized", "Staff context not found. Auth middleware may not be applied.", "MISSING_STAFF_CONTEXT")
			return
		}

		if !staff.HasRole(roles...) {
			abort(c, http.StatusForbidden, "forbidden", "You don't have permission to access this resource", "INSUFFICIENT_PERMISSIONS")
			return
		}

		c.Next()
	}
}

// GetStaffContext retrieves the staff context from the Gin context
func GetStaffContext(c *gin.Context) (StaffContext, bool) {
	value, exists := c.Get(StaffContextKey)
	if !exists {
		return StaffContext{}, false
	}

	staff, ok := value.(StaffContext)
	if !ok {
		return StaffContext{}, false
	}

	return staff, true
}

// MustGetStaffContext retrieves the staff context or panics (use only after AuthMiddleware)
func MustGetStaffContext(c *gin.Context) StaffContext {
	staff, exists := GetStaffContext(c)
	if !exists {
		panic("staff context not found - ensure AuthMiddleware is applied")
	}
	return staff
}
