package users

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/irccwatch/internal/server/auth"
	"github.com/dmitrijs2005/irccwatch/internal/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func newTestService() (*Service, *MemoryRepository) {
	repo := NewMemoryRepository()
	return NewService(repo, testSecret, time.Hour), repo
}

func TestRegister_CreatesActiveUser(t *testing.T) {
	s, repo := newTestService()
	ctx := context.Background()

	u, err := s.Register(ctx, " New@Example.com ", "secret1")
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "new@example.com", u.Email)
	assert.Equal(t, RoleUser, u.Role)
	assert.True(t, u.IsActive)
	assert.NotEqual(t, []byte("secret1"), u.PasswordHash)

	stored, err := repo.GetUserByEmail(ctx, "NEW@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, stored.ID)
}

func TestRegister_Validation(t *testing.T) {
	s, _ := newTestService()
	ctx := context.Background()

	for _, tc := range []struct{ email, password string }{
		{"", "secret1"},
		{"a@b.com", ""},
		{"not-an-email", "secret1"},
		{"a@b.com", "abc"},
	} {
		_, err := s.Register(ctx, tc.email, tc.password)
		assert.ErrorIs(t, err, shared.ErrorValidation, "%q/%q", tc.email, tc.password)
	}
}

func TestRegister_Duplicate(t *testing.T) {
	s, _ := newTestService()
	ctx := context.Background()

	_, err := s.Register(ctx, "a@b.com", "secret1")
	require.NoError(t, err)

	_, err = s.Register(ctx, "A@B.com", "secret2")
	assert.ErrorIs(t, err, shared.ErrorAlreadyExists)
}

func TestSeed_IsIdempotent(t *testing.T) {
	s, _ := newTestService()
	ctx := context.Background()

	first, err := s.Seed(ctx, "admin@example.com", "admin123", RoleAdmin)
	require.NoError(t, err)
	second, err := s.Seed(ctx, "admin@example.com", "other-pass", RoleAdmin)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, RoleAdmin, second.Role)
}

func TestLogin(t *testing.T) {
	s, _ := newTestService()
	ctx := context.Background()

	_, err := s.Seed(ctx, "admin@example.com", "admin123", RoleAdmin)
	require.NoError(t, err)

	token, u, err := s.Login(ctx, "admin@example.com", "admin123")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, u.Role)

	claims, err := auth.ParseToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, RoleAdmin, claims.Role)

	_, _, err = s.Login(ctx, "admin@example.com", "wrong")
	assert.ErrorIs(t, err, shared.ErrorInvalidLoginPassword)

	_, _, err = s.Login(ctx, "nobody@example.com", "admin123")
	assert.ErrorIs(t, err, shared.ErrorInvalidLoginPassword)
}

func TestLogin_InactiveUserRejected(t *testing.T) {
	s, repo := newTestService()
	ctx := context.Background()

	u, err := s.Register(ctx, "a@b.com", "secret1")
	require.NoError(t, err)
	u.IsActive = false
	require.NoError(t, repo.Update(ctx, u))

	_, _, err = s.Login(ctx, "a@b.com", "secret1")
	assert.ErrorIs(t, err, shared.ErrorInvalidLoginPassword)
}

func TestAuthenticate(t *testing.T) {
	s, _ := newTestService()
	ctx := context.Background()

	_, err := s.Register(ctx, "a@b.com", "secret1")
	require.NoError(t, err)
	token, _, err := s.Login(ctx, "a@b.com", "secret1")
	require.NoError(t, err)

	u, err := s.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", u.Email)

	_, err = s.Authenticate(ctx, "garbage")
	assert.ErrorIs(t, err, shared.ErrorInvalidToken)

	orphan, err := auth.GenerateToken("gone@b.com", RoleUser, testSecret, time.Hour)
	require.NoError(t, err)
	_, err = s.Authenticate(ctx, orphan)
	assert.ErrorIs(t, err, shared.ErrorInvalidToken)
}

func TestChangePassword(t *testing.T) {
	s, _ := newTestService()
	ctx := context.Background()

	_, err := s.Register(ctx, "a@b.com", "secret1")
	require.NoError(t, err)

	assert.ErrorIs(t, s.ChangePassword(ctx, "a@b.com", "wrong", "secret2"), shared.ErrorValidation)
	assert.ErrorIs(t, s.ChangePassword(ctx, "a@b.com", "secret1", "abc"), shared.ErrorValidation)
	require.NoError(t, s.ChangePassword(ctx, "a@b.com", "secret1", "secret2"))

	_, _, err = s.Login(ctx, "a@b.com", "secret1")
	assert.ErrorIs(t, err, shared.ErrorInvalidLoginPassword)
	_, _, err = s.Login(ctx, "a@b.com", "secret2")
	assert.NoError(t, err)
}

func TestStats(t *testing.T) {
	s, repo := newTestService()
	ctx := context.Background()

	_, err := s.Register(ctx, "a@b.com", "secret1")
	require.NoError(t, err)
	u, err := s.Register(ctx, "c@d.com", "secret1")
	require.NoError(t, err)
	u.IsActive = false
	require.NoError(t, repo.Update(ctx, u))

	st, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, Stats{Total: 2, Active: 1, Inactive: 1}, st)
}

func TestMemoryRepository_ListSorted(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	for _, e := range []string{"z@x.com", "a@x.com", "m@x.com"} {
		_, err := repo.Create(ctx, &User{Email: e})
		require.NoError(t, err)
	}

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "a@x.com", all[0].Email)
	assert.Equal(t, "z@x.com", all[2].Email)

	assert.ErrorIs(t, repo.Update(ctx, &User{Email: "none@x.com"}), shared.ErrorNotFound)
}
