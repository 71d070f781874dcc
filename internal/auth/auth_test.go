// File path: internal/auth/auth_test.go
package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parentys/platform/internal/catalog"
)

type fakeUsers struct {
	users map[string]catalog.User
}

func (f *fakeUsers) UserByID(ctx context.Context, id string) (*catalog.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	return &user, nil
}

func newVerifier(t *testing.T) (*Verifier, *fakeUsers) {
	t.Helper()
	users := &fakeUsers{users: map[string]catalog.User{
		"admin-1":  {ID: "admin-1", Email: "admin@parentys.example", Role: "admin"},
		"parent-1": {ID: "parent-1", Email: "parent@parentys.example", Role: "parent"},
	}}
	verifier, err := NewVerifier("test-secret", users)
	require.NoError(t, err)
	return verifier, users
}

func TestAuthenticateValidToken(t *testing.T) {
	verifier, _ := newVerifier(t)
	token, err := IssueToken("test-secret", "admin-1", time.Hour)
	require.NoError(t, err)

	user, err := verifier.Authenticate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "admin-1", user.ID)
}

func TestAuthenticateRejectsBadTokens(t *testing.T) {
	verifier, _ := newVerifier(t)
	ctx := context.Background()

	_, err := verifier.Authenticate(ctx, "")
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = verifier.Authenticate(ctx, "not-a-token")
	assert.ErrorIs(t, err, ErrUnauthenticated)

	wrongSecret, err := IssueToken("other-secret", "admin-1", time.Hour)
	require.NoError(t, err)
	_, err = verifier.Authenticate(ctx, wrongSecret)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	expired, err := IssueToken("test-secret", "admin-1", -time.Minute)
	require.NoError(t, err)
	_, err = verifier.Authenticate(ctx, expired)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	unknown, err := IssueToken("test-secret", "ghost", time.Hour)
	require.NoError(t, err)
	_, err = verifier.Authenticate(ctx, unknown)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestRequireAdmin(t *testing.T) {
	verifier, _ := newVerifier(t)
	ctx := context.Background()

	adminToken, err := IssueToken("test-secret", "admin-1", time.Hour)
	require.NoError(t, err)
	user, err := verifier.RequireAdmin(ctx, adminToken)
	require.NoError(t, err)
	assert.True(t, user.IsAdmin())

	parentToken, err := IssueToken("test-secret", "parent-1", time.Hour)
	require.NoError(t, err)
	_, err = verifier.RequireAdmin(ctx, parentToken)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestNewVerifierValidation(t *testing.T) {
	_, err := NewVerifier("", &fakeUsers{})
	assert.Error(t, err)
	_, err = NewVerifier("secret", nil)
	assert.Error(t, err)
}
