// File path: internal/auth/auth.go

// Package auth validates the signed session tokens issued by the external
// auth provider and resolves them to local user accounts. Admin surfaces
// additionally require the account's role to be "admin".
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/parentys/platform/internal/catalog"
)

var (
	// ErrUnauthenticated means the token is missing, malformed, expired, or
	// references no known account.
	ErrUnauthenticated = errors.New("auth: unauthenticated")
	// ErrForbidden means the account is valid but lacks the admin role.
	ErrForbidden = errors.New("auth: admin role required")
)

// UserSource resolves authenticated subjects to local accounts.
type UserSource interface {
	UserByID(ctx context.Context, id string) (*catalog.User, error)
}

// Verifier checks HS256 session tokens against the shared provider secret.
type Verifier struct {
	secret []byte
	users  UserSource
}

// NewVerifier constructs a Verifier. The secret is shared with the auth
// provider and must not be empty.
func NewVerifier(secret string, users UserSource) (*Verifier, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("auth secret required")
	}
	if users == nil {
		return nil, errors.New("user source required")
	}
	return &Verifier{secret: []byte(secret), users: users}, nil
}

// Authenticate verifies the token signature and expiry, then loads the
// referenced account. Any failure maps to ErrUnauthenticated; callers never
// see parsing details beyond the wrapped cause.
func (v *Verifier) Authenticate(ctx context.Context, token string) (*catalog.User, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrUnauthenticated
	}
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return v.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}
	subject, err := parsed.Claims.GetSubject()
	if err != nil || subject == "" {
		return nil, ErrUnauthenticated
	}
	user, err := v.users.UserByID(ctx, subject)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, fmt.Errorf("load user %s: %w", subject, err)
	}
	return user, nil
}

// RequireAdmin authenticates the token and rejects non-admin accounts.
func (v *Verifier) RequireAdmin(ctx context.Context, token string) (*catalog.User, error) {
	user, err := v.Authenticate(ctx, token)
	if err != nil {
		return nil, err
	}
	if !user.IsAdmin() {
		return nil, ErrForbidden
	}
	return user, nil
}

// IssueToken mints a session token the way the auth provider does. Used by
// tests and local development tooling.
func IssueToken(secret, userID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
