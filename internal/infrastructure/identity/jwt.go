package identity

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	purposeSession     = "session"
	purposeDiscordLink = "discord-link"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// TokenManager signs and verifies HS256 tokens. Session tokens carry the
// session id as jti; link codes are short-lived tokens with their own purpose.
type TokenManager struct {
	secretKey []byte
	now       func() time.Time
}

// Claims are the custom claims of every token issued by the club.
type Claims struct {
	UserID  string `json:"uid"`
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

func NewTokenManager(secretKey string, now func() time.Time) *TokenManager {
	if now == nil {
		now = time.Now
	}
	return &TokenManager{secretKey: []byte(secretKey), now: now}
}

// Generate signs a token for userID with the given purpose, id and lifetime.
func (m *TokenManager) Generate(userID, purpose, id string, ttl time.Duration) (string, error) {
	now := m.now()
	claims := &Claims{
		UserID:  userID,
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        id,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Validate parses tokenString and checks its signature, lifetime and purpose.
func (m *TokenManager) Validate(tokenString, purpose string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return m.secretKey, nil
		},
		jwt.WithTimeFunc(m.now),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Purpose != purpose {
		return nil, fmt.Errorf("%w: purpose %q", ErrInvalidToken, claims.Purpose)
	}
	return claims, nil
}
