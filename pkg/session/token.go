package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/nharmon/slicehaus-backend/pkg/config"
)

var jwtSigningMethod = jwt.SigningMethodHS256

// Mint issues a signed token carrying the anonymous session id. Sessions
// carry no identity beyond the id itself; they only pin a cart and its
// order history to one browser.
func Mint(cfg config.SessionConfig, now time.Time, sessionID string) (string, error) {
	if cfg.Secret == "" {
		return "", fmt.Errorf("session secret is required")
	}
	if cfg.Issuer == "" {
		return "", fmt.Errorf("session issuer is required")
	}
	if cfg.TTL() <= 0 {
		return "", fmt.Errorf("session ttl must be positive")
	}
	if strings.TrimSpace(sessionID) == "" {
		return "", fmt.Errorf("session id is required")
	}

	claims := jwt.RegisteredClaims{
		Issuer:    cfg.Issuer,
		Subject:   sessionID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(cfg.TTL())),
		ID:        uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwtSigningMethod, claims)
	signed, err := token.SignedString([]byte(cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("signing session token: %w", err)
	}
	return signed, nil
}

// Parse validates the token and returns the session id it carries.
func Parse(cfg config.SessionConfig, tokenString string) (string, error) {
	if cfg.Secret == "" {
		return "", fmt.Errorf("session secret is required")
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (interface{}, error) {
			if token.Method != jwtSigningMethod {
				return nil, fmt.Errorf("unexpected signing method %s", token.Header["alg"])
			}
			return []byte(cfg.Secret), nil
		},
		jwt.WithValidMethods([]string{jwtSigningMethod.Alg()}),
		jwt.WithIssuer(cfg.Issuer),
	)
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(claims.Subject) == "" {
		return "", fmt.Errorf("session token missing subject")
	}
	return claims.Subject, nil
}
