package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Domain errors for local API auth.
var (
	ErrInvalidAccessKey = errors.New("invalid access key")
	ErrInvalidToken     = errors.New("invalid token")
)

// AuthService exchanges the configured access key for short-lived JWTs that
// protect the local API. There are no user accounts and nothing is stored;
// the single key and signing secret come from configuration.
type AuthService struct {
	keyHash    []byte
	signingKey []byte
	tokenTTL   time.Duration
}

// NewAuthService hashes the configured access key once at startup so later
// comparisons run through bcrypt's constant-time check.
func NewAuthService(accessKey, signingKey string, tokenTTL time.Duration) (*AuthService, error) {
	if strings.TrimSpace(accessKey) == "" {
		return nil, errors.New("access key is empty")
	}
	if strings.TrimSpace(signingKey) == "" {
		return nil, errors.New("signing key is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(accessKey), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash access key: %w", err)
	}
	return &AuthService{keyHash: hash, signingKey: []byte(signingKey), tokenTTL: tokenTTL}, nil
}

// GenerateToken validates the access key and returns a signed JWT.
func (s *AuthService) GenerateToken(accessKey string) (string, error) {
	if err := bcrypt.CompareHashAndPassword(s.keyHash, []byte(accessKey)); err != nil {
		return "", ErrInvalidAccessKey
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "local-api",
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		IssuedAt:  jwt.NewNumericDate(now),
	})
	return token.SignedString(s.signingKey)
}

// ParseToken verifies a bearer token issued by GenerateToken.
func (s *AuthService) ParseToken(accessToken string) error {
	token, err := jwt.Parse(accessToken, func(token *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.signingKey, nil
	})
	if err != nil {
		return err
	}
	if !token.Valid {
		return ErrInvalidToken
	}
	return nil
}
