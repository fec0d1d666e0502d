package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/irccwatch/internal/client/client"
	"github.com/dmitrijs2005/irccwatch/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin_SuccessOpensDashboard(t *testing.T) {
	ta := newTestApp(t)
	stubInputs(t, []string{"a@b.com"}, "secret")

	require.NoError(t, ta.Login(context.Background()))

	assert.Equal(t, "a@b.com", ta.auth.LastLogin.Email)
	assert.Equal(t, "secret", ta.auth.LastLogin.Password)
	assert.True(t, ta.isLoggedIn())
	assert.Equal(t, "/dashboard", ta.nav.Current())
	assert.Contains(t, ta.out.String(), "Signed in as a@b.com (user)")
	assert.Contains(t, ta.out.String(), "No credentials yet")
}

func TestLogin_RejectedCredentials(t *testing.T) {
	ta := newTestApp(t)
	ta.auth.err = &client.APIError{Status: 401, Kind: client.KindUnauthorized, Message: "Invalid credentials"}
	stubInputs(t, []string{"a@b.com"}, "wrong")

	err := ta.Login(context.Background())
	require.Error(t, err)

	assert.False(t, ta.isLoggedIn())
	assert.Contains(t, ta.out.String(), "invalid email or password")
	assert.Equal(t, "/login", ta.nav.Current())
}

func TestLogin_ServiceUnavailable(t *testing.T) {
	ta := newTestApp(t)
	ta.auth.err = errors.Join(client.ErrUnavailable, errors.New("dial tcp: refused"))
	stubInputs(t, []string{"a@b.com"}, "secret")

	require.Error(t, ta.Login(context.Background()))
	assert.Contains(t, ta.out.String(), "service unavailable, try again later")
}

func TestLogin_InputErrorStops(t *testing.T) {
	ta := newTestApp(t)
	stubInputs(t, nil)

	require.Error(t, ta.Login(context.Background()))
	assert.Empty(t, ta.auth.LastLogin.Email)
}

func TestRegister_ValidationShowsFields(t *testing.T) {
	ta := newTestApp(t)
	ta.auth.err = client.ValidationError("invalid input", map[string]string{
		"password":         "the length must be no less than 6",
		"confirm_password": "passwords do not match",
	})
	stubInputs(t, []string{"a@b.com"}, "abc", "abd")

	require.Error(t, ta.Register(context.Background()))

	assert.Equal(t, "abc", ta.auth.LastRegister.Password)
	assert.Equal(t, "abd", ta.auth.LastRegister.ConfirmPassword)
	assert.Equal(t,
		"  confirm_password: passwords do not match\n  password: the length must be no less than 6\n",
		ta.out.String())
}

func TestRegister_SuccessLogsIn(t *testing.T) {
	ta := newTestApp(t)
	stubInputs(t, []string{"new@b.com"}, "secret1", "secret1")

	require.NoError(t, ta.Register(context.Background()))
	assert.True(t, ta.isLoggedIn())
	assert.Contains(t, ta.out.String(), "Account created")
}

func TestRegister_PublicForAuthenticatedUser(t *testing.T) {
	ta := newTestApp(t)
	ta.loginAs(t, models.RoleUser)
	stubInputs(t, []string{"x@y.z"}, "secret1", "secret1")

	require.NoError(t, ta.Register(context.Background()))
	assert.Equal(t, "x@y.z", ta.auth.LastRegister.Email)
}

func TestLogout_RedirectsToLogin(t *testing.T) {
	ta := newTestApp(t)
	ta.loginAs(t, models.RoleUser)
	ta.nav.enter("/dashboard")

	require.NoError(t, ta.Logout(context.Background()))
	assert.False(t, ta.isLoggedIn())
	assert.Equal(t, "/login", ta.nav.Current())
	assert.Contains(t, ta.out.String(), "→ /login")
}

func TestChangePassword(t *testing.T) {
	ta := newTestApp(t)
	ta.loginAs(t, models.RoleUser)
	stubInputs(t, nil, "old-pass", "new-pass", "new-pass")

	require.NoError(t, ta.ChangePassword(context.Background()))
	assert.Equal(t, "old-pass", ta.auth.LastChange.CurrentPassword)
	assert.Equal(t, "new-pass", ta.auth.LastChange.NewPassword)
	assert.Contains(t, ta.out.String(), "Password changed successfully")
}

func TestChangePassword_AnonymousIsRedirected(t *testing.T) {
	ta := newTestApp(t)
	stubInputs(t, nil, "old-pass", "new-pass", "new-pass")

	require.NoError(t, ta.ChangePassword(context.Background()))
	assert.Empty(t, ta.auth.LastChange.NewPassword)
	assert.Equal(t, "→ /login\n", ta.out.String())
}
