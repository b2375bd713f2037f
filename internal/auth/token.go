package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenValidity is the fixed window during which an issued token is
// accepted.
const TokenValidity = time.Hour

// ErrTokenInvalid covers malformed, badly signed and expired tokens
// alike.
var ErrTokenInvalid = errors.New("invalid token")

// Claims defines the JWT claims structure.
type Claims struct {
	jwt.RegisteredClaims
}

// TokenService issues and verifies compact signed bearer tokens. The
// signing key is set once at startup, shared read-only by all requests,
// and never exposed through any method.
type TokenService struct {
	key []byte
}

// NewTokenService creates a TokenService around the given signing
// secret.
func NewTokenService(secret string) *TokenService {
	return &TokenService{key: []byte(secret)}
}

// Issue creates a signed token binding a username to the validity
// window starting now.
func (s *TokenService) Issue(username string) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenValidity)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.key)
}

// Verify parses and validates a token string. The signature and expiry
// are checked before any claim is trusted; every failure mode collapses
// into ErrTokenInvalid.
func (s *TokenService) Verify(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return s.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, ErrTokenInvalid
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// Subject returns the subject of a valid token string.
func (s *TokenService) Subject(tokenStr string) (string, error) {
	claims, err := s.Verify(tokenStr)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}
