// Package auth verifies and issues the HS256 bearer tokens that protect the API.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/ErlanBelekov/shop-api/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

// Every verification failure matches domain.ErrUnauthorized.
var (
	ErrTokenMissing   = fmt.Errorf("%w: token missing", domain.ErrUnauthorized)
	ErrTokenMalformed = fmt.Errorf("%w: token malformed", domain.ErrUnauthorized)
	ErrTokenSignature = fmt.Errorf("%w: token signature invalid", domain.ErrUnauthorized)
	ErrTokenExpired   = fmt.Errorf("%w: token expired", domain.ErrUnauthorized)
)

// Claims is the decoded identity carried by a verified token.
type Claims struct {
	Admin bool `json:"admin"`
	jwt.RegisteredClaims
}

type Verifier struct {
	key    []byte
	parser *jwt.Parser
}

func NewVerifier(secret []byte) *Verifier {
	return &Verifier{
		key: secret,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
		),
	}
}

// Verify checks structure, signature and expiry of raw. It performs no I/O.
func (v *Verifier) Verify(raw string) (*Claims, error) {
	if raw == "" {
		return nil, ErrTokenMissing
	}

	claims := &Claims{}
	_, err := v.parser.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return v.key, nil
	})
	if err != nil {
		return nil, classify(err)
	}

	if claims.Subject == "" {
		return nil, ErrTokenMalformed
	}
	return claims, nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrTokenUnverifiable):
		return ErrTokenSignature
	default:
		return fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	}
}

// Issuer mints tokens for the login flow using the same secret the Verifier checks.
type Issuer struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

func NewIssuer(secret []byte, ttl time.Duration) *Issuer {
	return &Issuer{key: secret, ttl: ttl, now: time.Now}
}

func (i *Issuer) Issue(userID string, admin bool) (string, error) {
	now := i.now()
	claims := Claims{
		Admin: admin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.key)
	if err != nil {
		return "", fmt.Errorf("sign jwt: %w", err)
	}
	return signed, nil
}
