package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const issuer = "hotel-room-state"

// TokenType represents the type of JWT token
type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"
)

// Staff roles carried in access tokens
const (
	RoleFrontDesk = "front_desk"
	RoleManager   = "manager"
	RoleAdmin     = "admin"
)

// ErrWrongTokenType is returned when a refresh token is presented as access or vice versa
var ErrWrongTokenType = errors.New("wrong token type")

// Claims identifies a hotel staff member and the business they act for
type Claims struct {
	StaffID    uuid.UUID `json:"staff_id"`
	BusinessID uuid.UUID `json:"business_id"`
	Roles      []string  `json:"roles"`
	TokenType  TokenType `json:"token_type"`
	jwt.RegisteredClaims
}

// HasRole reports whether the claims include any of roles
func (c *Claims) HasRole(roles ...string) bool {
	for _, have := range c.Roles {
		for _, want := range roles {
			if have == want {
				return true
			}
		}
	}
	return false
}

// Service signs and verifies staff tokens. Logins happen in the hotel account
// service, which shares the secrets; this service verifies and refreshes them.
type Service struct {
	accessSecret       string
	refreshSecret      string
	accessTokenExpiry  time.Duration
	refreshTokenExpiry time.Duration
}

// NewService creates a new JWT service
func NewService(accessSecret, refreshSecret string, accessExpiry, refreshExpiry time.Duration) *Service {
	return &Service{
		accessSecret:       accessSecret,
		refreshSecret:      refreshSecret,
		accessTokenExpiry:  accessExpiry,
		refreshTokenExpiry: refreshExpiry,
	}
}

// GenerateAccessToken signs an access token for a staff member of a business
func (s *Service) GenerateAccessToken(staffID, businessID uuid.UUID, roles []string) (string, error) {
	return s.sign(staffID, businessID, roles, AccessToken, s.accessTokenExpiry, s.accessSecret)
}

// GenerateRefreshToken signs a refresh token. It carries the roles so a new
// access token can be issued from it alone.
func (s *Service) GenerateRefreshToken(staffID, businessID uuid.UUID, roles []string) (string, error) {
	return s.sign(staffID, businessID, roles, RefreshToken, s.refreshTokenExpiry, s.refreshSecret)
}

func (s *Service) sign(staffID, businessID uuid.UUID, roles []string, tokenType TokenType, expiry time.Duration, secret string) (string, error) {
	now := time.Now()
	claims := Claims{
		StaffID:    staffID,
		BusinessID: businessID,
		Roles:      roles,
		TokenType:  tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    issuer,
			Subject:   staffID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", tokenType, err)
	}

	return tokenString, nil
}

// ValidateAccessToken validates and parses an access token
func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.validateToken(tokenString, s.accessSecret, AccessToken)
}

// ValidateRefreshToken validates and parses a refresh token
func (s *Service) ValidateRefreshToken(tokenString string) (*Claims, error) {
	return s.validateToken(tokenString, s.refreshSecret, RefreshToken)
}

func (s *Service) validateToken(tokenString, secret string, expectedType TokenType) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithIssuer(issuer))
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	if claims.TokenType != expectedType {
		return nil, fmt.Errorf("%w: expected %s, got %s", ErrWrongTokenType, expectedType, claims.TokenType)
	}

	if claims.BusinessID == uuid.Nil {
		return nil, fmt.Errorf("token has no business")
	}

	return claims, nil
}

// GetTokenExpiry returns the expiry time of a token without verifying it
func (s *Service) GetTokenExpiry(tokenString string) (time.Time, error) {
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, &Claims{})
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || claims.ExpiresAt == nil {
		return time.Time{}, fmt.Errorf("token has no expiry time")
	}

	return claims.ExpiresAt.Time, nil
}

// IsExpired reports whether err came from an expired token
func IsExpired(err error) bool {
	return errors.Is(err, jwt.ErrTokenExpired)
}
