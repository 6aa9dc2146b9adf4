package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func setupAuth(t *testing.T) (AuthService, *fixture) {
	t.Helper()
	f := setup(t)
	return NewAuthService(f.users, "test-secret", time.Hour), f
}

func TestSignupAndLogin(t *testing.T) {
	auth, _ := setupAuth(t)
	ctx := context.Background()

	user, err := auth.Signup(ctx, "alice", "alice@example.com", "hunter22")
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)
	require.NotEqual(t, "hunter22", user.Password)

	got, err := auth.Login(ctx, "alice", "hunter22")
	require.NoError(t, err)
	require.Equal(t, user.ID, got.ID)

	_, err = auth.Login(ctx, "alice", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = auth.Login(ctx, "nobody", "hunter22")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSignupRejectsDuplicateUsername(t *testing.T) {
	auth, _ := setupAuth(t)
	ctx := context.Background()

	_, err := auth.Signup(ctx, "alice", "a@example.com", "pw")
	require.NoError(t, err)
	_, err = auth.Signup(ctx, "alice", "b@example.com", "pw")
	require.ErrorIs(t, err, ErrUsernameTaken)
}

func TestTokenRoundTrip(t *testing.T) {
	auth, _ := setupAuth(t)
	ctx := context.Background()

	user, err := auth.Signup(ctx, "alice", "a@example.com", "pw")
	require.NoError(t, err)

	token, err := auth.IssueToken(user)
	require.NoError(t, err)

	got, err := auth.VerifyToken(ctx, token)
	require.NoError(t, err)
	require.Equal(t, user.ID, got.ID)

	_, err = auth.VerifyToken(ctx, token+"tampered")
	require.ErrorIs(t, err, ErrInvalidToken)

	_, err = auth.VerifyToken(ctx, "not-a-token")
	require.ErrorIs(t, err, ErrInvalidToken)
}
