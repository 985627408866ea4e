package auth_test

import (
	"errors"
	"testing"
	"time"

	"github.com/ErlanBelekov/shop-api/internal/auth"
	"github.com/ErlanBelekov/shop-api/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

const testKey = "verifier-test-secret-32-chars!!!"

func makeJWT(t *testing.T, method jwt.SigningMethod, key any, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	if err != nil {
		t.Fatalf("sign jwt: %v", err)
	}
	return s
}

func TestVerify_Failures(t *testing.T) {
	v := auth.NewVerifier([]byte(testKey))
	now := time.Now()

	tests := []struct {
		name  string
		token string
		want  error
	}{
		{"empty", "", auth.ErrTokenMissing},
		{"garbage", "not.a.jwt", auth.ErrTokenMalformed},
		{
			"expired",
			makeJWT(t, jwt.SigningMethodHS256, []byte(testKey), jwt.MapClaims{
				"sub": "user-1",
				"exp": now.Add(-time.Hour).Unix(),
			}),
			auth.ErrTokenExpired,
		},
		{
			"wrong secret",
			makeJWT(t, jwt.SigningMethodHS256, []byte("another-secret-that-is-32-chars!"), jwt.MapClaims{
				"sub": "user-1",
				"exp": now.Add(time.Hour).Unix(),
			}),
			auth.ErrTokenSignature,
		},
		{
			"other hmac algorithm",
			makeJWT(t, jwt.SigningMethodHS512, []byte(testKey), jwt.MapClaims{
				"sub": "user-1",
				"exp": now.Add(time.Hour).Unix(),
			}),
			auth.ErrTokenSignature,
		},
		{
			"no expiry",
			makeJWT(t, jwt.SigningMethodHS256, []byte(testKey), jwt.MapClaims{"sub": "user-1"}),
			auth.ErrTokenMalformed,
		},
		{
			"no subject",
			makeJWT(t, jwt.SigningMethodHS256, []byte(testKey), jwt.MapClaims{
				"exp": now.Add(time.Hour).Unix(),
			}),
			auth.ErrTokenMalformed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := v.Verify(tt.token)
			if claims != nil {
				t.Errorf("claims = %+v, want nil", claims)
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
			if !errors.Is(err, domain.ErrUnauthorized) {
				t.Errorf("err = %v does not match domain.ErrUnauthorized", err)
			}
		})
	}
}

func TestVerify_UnsignedTokenRejected(t *testing.T) {
	tok := makeJWT(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, jwt.MapClaims{
		"sub": "user-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	_, err := auth.NewVerifier([]byte(testKey)).Verify(tok)
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("err = %v, want unauthorized", err)
	}
}

func TestIssue_RoundTrip(t *testing.T) {
	issuer := auth.NewIssuer([]byte(testKey), time.Hour)

	signed, err := issuer.Issue("user-42", true)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := auth.NewVerifier([]byte(testKey)).Verify(signed)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Subject != "user-42" {
		t.Errorf("sub = %q, want user-42", claims.Subject)
	}
	if !claims.Admin {
		t.Error("admin claim lost")
	}
	if claims.ExpiresAt == nil || !claims.ExpiresAt.After(time.Now()) {
		t.Errorf("exp = %v, want future", claims.ExpiresAt)
	}
}
