package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labs-polaris/Polaris-Back-Web/internal/config"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// TokenManager issues and verifies the access/refresh token pair. A refresh
// token must never authenticate a request; callers check the returned type.
type TokenManager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenManager(cfg *config.Config) *TokenManager {
	return &TokenManager{
		secret:     []byte(cfg.JWTSecret),
		accessTTL:  cfg.AccessTokenTTL,
		refreshTTL: cfg.RefreshTokenTTL,
	}
}

func (tm *TokenManager) GenerateAccessToken(userID string) (string, error) {
	return tm.generate(userID, TokenTypeAccess, tm.accessTTL)
}

func (tm *TokenManager) GenerateRefreshToken(userID string) (string, error) {
	return tm.generate(userID, TokenTypeRefresh, tm.refreshTTL)
}

func (tm *TokenManager) generate(userID, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()

	claims := jwt.MapClaims{
		"sub":  userID,
		"type": tokenType,
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tm.secret)
}

// Verify checks signature and expiry and returns the subject and type tag.
func (tm *TokenManager) Verify(tokenString string) (userID string, tokenType string, err error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return tm.secret, nil
	})

	if err != nil || !token.Valid {
		return "", "", fmt.Errorf("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)

	if !ok {
		return "", "", fmt.Errorf("invalid token claims")
	}

	userID, ok = claims["sub"].(string)

	if !ok || userID == "" {
		return "", "", fmt.Errorf("invalid subject in token claims")
	}

	tokenType, ok = claims["type"].(string)

	if !ok || tokenType == "" {
		return "", "", fmt.Errorf("invalid type in token claims")
	}

	return userID, tokenType, nil
}
