package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is the uniform verification failure. Expired and tampered
// tokens are deliberately indistinguishable to the caller.
var ErrInvalidToken = errors.New("invalid or expired token")

// Identity is the authenticated principal carried inside every token.
type Identity struct {
	ID    string
	Email string
	Role  string
}

type tokenClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies access and refresh tokens. Access and
// refresh tokens are signed with independent secrets and expiries so a stolen
// access token has a bounded blast radius.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewTokenService(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *TokenService {
	return &TokenService{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

func (s *TokenService) IssueAccess(identity Identity) (string, error) {
	return sign(identity, s.accessSecret, s.accessTTL)
}

func (s *TokenService) IssueRefresh(identity Identity) (string, error) {
	return sign(identity, s.refreshSecret, s.refreshTTL)
}

func (s *TokenService) VerifyAccess(token string) (Identity, error) {
	return verify(token, s.accessSecret)
}

func (s *TokenService) VerifyRefresh(token string) (Identity, error) {
	return verify(token, s.refreshSecret)
}

func sign(identity Identity, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		Email: identity.Email,
		Role:  identity.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign jwt: %w", err)
	}
	return signed, nil
}

func verify(tokenStr string, secret []byte) (Identity, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &tokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return Identity{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid {
		return Identity{}, ErrInvalidToken
	}

	return Identity{
		ID:    claims.Subject,
		Email: claims.Email,
		Role:  claims.Role,
	}, nil
}
