package service

import (
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const testPassword = "wake-me-up"

func newTestOperator(t *testing.T) *OperatorAuth {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	return NewOperatorAuth(AuthSettings{
		PasswordHash: string(hash),
		SigningKey:   "test-signing-key",
		TokenTTL:     15 * time.Minute,
	})
}

func TestOperatorAuth_IssueAndAuthorize(t *testing.T) {
	a := newTestOperator(t)
	now := time.Date(2025, 6, 24, 10, 0, 0, 0, time.UTC)
	a.now = func() time.Time { return now }

	token, expires, err := a.IssueToken(testPassword)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	if !expires.Equal(now.Add(15 * time.Minute)) {
		t.Fatalf("expires = %v", expires)
	}
	if err := a.Authorize(token, ScopeAlarmWrite); err != nil {
		t.Fatalf("Authorize: %v", err)
	}
	if err := a.Authorize(token, "alarm:admin"); !errors.Is(err, ErrMissingScope) {
		t.Fatalf("foreign scope err = %v", err)
	}

	now = now.Add(16 * time.Minute)
	if err := a.Authorize(token, ScopeAlarmWrite); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expired token err = %v", err)
	}
}

func TestOperatorAuth_WrongPassword(t *testing.T) {
	a := newTestOperator(t)
	if _, _, err := a.IssueToken("snooze"); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("err = %v", err)
	}
}

func TestOperatorAuth_LockedWithoutHash(t *testing.T) {
	a := NewOperatorAuth(AuthSettings{SigningKey: "k"})
	if !a.Locked() {
		t.Fatalf("expected locked")
	}
	if _, _, err := a.IssueToken(""); !errors.Is(err, ErrWritesLocked) {
		t.Fatalf("IssueToken err = %v", err)
	}
	if err := a.Authorize("anything", ScopeAlarmWrite); !errors.Is(err, ErrWritesLocked) {
		t.Fatalf("Authorize err = %v", err)
	}
}

func TestOperatorAuth_RejectsForeignTokens(t *testing.T) {
	a := newTestOperator(t)
	claims := func(iss string) operatorClaims {
		return operatorClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    iss,
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
			Scope: ScopeAlarmWrite,
		}
	}
	sign := func(t *testing.T, tok *jwt.Token, key any) string {
		t.Helper()
		s, err := tok.SignedString(key)
		if err != nil {
			t.Fatalf("sign: %v", err)
		}
		return s
	}
	rsaKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("rsa key: %v", err)
	}
	noExp := claims(tokenIssuer)
	noExp.ExpiresAt = nil

	tests := map[string]string{
		"malformed":       "not-a-jwt",
		"other key":       sign(t, jwt.NewWithClaims(jwt.SigningMethodHS256, claims(tokenIssuer)), []byte("other-key")),
		"other issuer":    sign(t, jwt.NewWithClaims(jwt.SigningMethodHS256, claims("other-device")), []byte("test-signing-key")),
		"rs256":           sign(t, jwt.NewWithClaims(jwt.SigningMethodRS256, claims(tokenIssuer)), rsaKey),
		"no expiry claim": sign(t, jwt.NewWithClaims(jwt.SigningMethodHS256, noExp), []byte("test-signing-key")),
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			if err := a.Authorize(token, ScopeAlarmWrite); !errors.Is(err, ErrInvalidToken) {
				t.Fatalf("err = %v, want ErrInvalidToken", err)
			}
		})
	}
}

func TestNewOperatorAuth_DefaultsTTL(t *testing.T) {
	a := NewOperatorAuth(AuthSettings{SigningKey: "k"})
	if a.tokenTTL != defaultTokenTTL {
		t.Fatalf("ttl = %v, want %v", a.tokenTTL, defaultTokenTTL)
	}
}

func TestHashPassword(t *testing.T) {
	if _, err := HashPassword("  "); err == nil {
		t.Fatalf("empty password accepted")
	}
	hash, err := HashPassword(testPassword)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	a := NewOperatorAuth(AuthSettings{PasswordHash: hash, SigningKey: "k"})
	if _, _, err := a.IssueToken(testPassword); err != nil {
		t.Fatalf("hash does not verify: %v", err)
	}
}
