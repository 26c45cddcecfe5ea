package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	defaultTokenTTL = time.Hour
	tokenIssuer     = "deskclock"
	operatorSubject = "operator"
)

// ScopeAlarmWrite allows changing or clearing the alarm.
const ScopeAlarmWrite = "alarm:write"

// AuthSettings come from the auth section of the configuration.
type AuthSettings struct {
	PasswordHash string // bcrypt hash of the operator password; empty locks alarm writes
	SigningKey   string
	TokenTTL     time.Duration
}

var (
	ErrWritesLocked    = errors.New("alarm writes are locked: no operator password configured")
	ErrInvalidPassword = errors.New("invalid password")
	ErrInvalidToken    = errors.New("invalid token")
	ErrMissingScope    = errors.New("token lacks the required scope")
)

type operatorClaims struct {
	jwt.RegisteredClaims
	Scope string `json:"scope"`
}

// OperatorAuth guards alarm changes. The clock has a single operator whose
// bcrypt password hash lives in the configuration; a correct password buys
// a short-lived HS256 token scoped to alarm writes.
type OperatorAuth struct {
	passwordHash []byte
	signingKey   []byte
	tokenTTL     time.Duration
	now          func() time.Time
}

func NewOperatorAuth(cfg AuthSettings) *OperatorAuth {
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &OperatorAuth{
		passwordHash: []byte(strings.TrimSpace(cfg.PasswordHash)),
		signingKey:   []byte(cfg.SigningKey),
		tokenTTL:     ttl,
		now:          time.Now,
	}
}

// Locked reports whether no operator password is configured.
func (a *OperatorAuth) Locked() bool {
	return len(a.passwordHash) == 0
}

// IssueToken checks password and returns a signed alarm-write token.
func (a *OperatorAuth) IssueToken(password string) (string, time.Time, error) {
	if a.Locked() {
		return "", time.Time{}, ErrWritesLocked
	}
	if err := bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password)); err != nil {
		return "", time.Time{}, ErrInvalidPassword
	}

	now := a.now()
	expires := now.Add(a.tokenTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, operatorClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   operatorSubject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
		Scope: ScopeAlarmWrite,
	})
	signed, err := token.SignedString(a.signingKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expires, nil
}

// Authorize verifies token and checks that it grants scope.
func (a *OperatorAuth) Authorize(token, scope string) error {
	if a.Locked() {
		return ErrWritesLocked
	}
	var claims operatorClaims
	_, err := jwt.ParseWithClaims(token, &claims,
		func(*jwt.Token) (any, error) { return a.signingKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !hasString(strings.Fields(claims.Scope), scope) {
		return ErrMissingScope
	}
	return nil
}

// HashPassword returns the bcrypt hash to put in auth.password_hash.
func HashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", errors.New("password is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
