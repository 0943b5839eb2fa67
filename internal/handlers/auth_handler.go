package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jPabloBC/hl.ingenit-v1-sub000/internal/utils"
	"github.com/jPabloBC/hl.ingenit-v1-sub000/pkg/jwt"
)

// TokenIssuer verifies refresh tokens and signs new token pairs
type TokenIssuer interface {
	ValidateRefreshToken(token string) (*jwt.Claims, error)
	GenerateAccessToken(staffID, businessID uuid.UUID, roles []string) (string, error)
	GenerateRefreshToken(staffID, businessID uuid.UUID, roles []string) (string, error)
	GetTokenExpiry(token string) (time.Time, error)
}

// AuthHandler refreshes staff tokens
type AuthHandler struct {
	tokens TokenIssuer
	logger *logrus.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(tokens TokenIssuer, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{tokens: tokens, logger: logger}
}

// RefreshTokenRequest represents the refresh request body
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// RefreshTokenResponse represents the response after refreshing token
type RefreshTokenResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresIn    int       `json:"expires_in_seconds"`
	ExpiresAt    time.Time `json:"expires_at"`
	TokenType    string    `json:"token_type"`
}

// RefreshToken handles POST /api/v1/auth/refresh
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_REQUEST", "refresh_token is required")
		return
	}

	claims, err := h.tokens.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		h.logger.WithError(err).WithField("ip", utils.ClientIP(c)).Warn("Refresh token rejected")
		code := "INVALID_TOKEN"
		if jwt.IsExpired(err) {
			code = "TOKEN_EXPIRED"
		}
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "invalid_token",
			Message: "Invalid or expired refresh token",
			Code:    code,
		})
		return
	}

	access, err := h.tokens.GenerateAccessToken(claims.StaffID, claims.BusinessID, claims.Roles)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	refresh, err := h.tokens.GenerateRefreshToken(claims.StaffID, claims.BusinessID, claims.Roles)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	expiresAt, err := h.tokens.GetTokenExpiry(access)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.logger.WithFields(logrus.Fields{
		"staff_id":    claims.StaffID,
		"business_id": claims.BusinessID,
	}).Info("Staff token refreshed")

	c.JSON(http.StatusOK, RefreshTokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int(time.Until(expiresAt).Seconds()),
		ExpiresAt:    expiresAt.UTC(),
		TokenType:    "Bearer",
	})
}
