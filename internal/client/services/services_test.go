package services

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/irccwatch/internal/client/client"
	"github.com/dmitrijs2005/irccwatch/internal/client/models"
	"github.com/dmitrijs2005/irccwatch/internal/client/repositories/cache"
	"github.com/dmitrijs2005/irccwatch/internal/client/session"
	"github.com/dmitrijs2005/irccwatch/internal/client/tokenstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession(t *testing.T) (*session.Session, *tokenstore.MemoryStore) {
	t.Helper()
	store := tokenstore.NewMemoryStore()
	return session.New(store, nil), store
}

func TestAuthService_LoginValidatesBeforeCalling(t *testing.T) {
	api := &fakeAPI{}
	s, _ := newSession(t)
	svc := NewAuthService(api, s)

	_, err := svc.Login(context.Background(), LoginForm{Email: "not-an-email", Password: ""})
	require.Error(t, err)
	assert.ErrorIs(t, err, client.ErrValidation)
	fields := client.FieldErrors(err)
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "password")
	assert.Equal(t, 0, api.Calls)
}

func TestAuthService_LoginRejectsIncompleteResponse(t *testing.T) {
	api := &fakeAPI{loginResp: &models.LoginResponse{Token: "t1"}}
	s, store := newSession(t)
	svc := NewAuthService(api, s)

	_, err := svc.Login(context.Background(), LoginForm{Email: "a@b.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrBadLoginResponse)
	_, ok, _ := store.Get(context.Background())
	assert.False(t, ok)
}

func TestAuthService_LoginPropagatesBackendErrors(t *testing.T) {
	apiErr := &client.APIError{Status: 401, Kind: client.KindUnauthorized, Message: "Invalid credentials"}
	api := &fakeAPI{loginErr: apiErr}
	s, _ := newSession(t)

	snap, err := NewAuthService(api, s).Login(context.Background(), LoginForm{Email: "a@b.com", Password: "wrong12"})
	assert.ErrorIs(t, err, client.ErrUnauthorized)
	assert.False(t, snap.Authenticated())
}

func TestAuthService_RegisterValidation(t *testing.T) {
	tests := []struct {
		name  string
		form  RegisterForm
		field string
	}{
		{"bad email", RegisterForm{Email: "x", Password: "secret1", ConfirmPassword: "secret1"}, "email"},
		{"short password", RegisterForm{Email: "a@b.com", Password: "abc", ConfirmPassword: "abc"}, "password"},
		{"mismatch", RegisterForm{Email: "a@b.com", Password: "secret1", ConfirmPassword: "secret2"}, "confirm_password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeAPI{}
			s, _ := newSession(t)
			_, err := NewAuthService(api, s).Register(context.Background(), tt.form)
			require.Error(t, err)
			assert.Equal(t, client.KindValidation, client.KindOf(err))
			assert.Contains(t, client.FieldErrors(err), tt.field)
			assert.Equal(t, 0, api.Calls)
		})
	}
}

func TestAuthService_RegisterLogsIn(t *testing.T) {
	api := &fakeAPI{loginResp: &models.LoginResponse{Token: "t1", User: &models.User{Email: "a@b.com", Role: models.RoleUser}}}
	s, store := newSession(t)

	snap, err := NewAuthService(api, s).Register(context.Background(),
		RegisterForm{Email: "a@b.com", Password: "secret1", ConfirmPassword: "secret1"})
	require.NoError(t, err)
	assert.True(t, snap.Authenticated())
	assert.Equal(t, 2, api.Calls)

	tok, ok, _ := store.Get(context.Background())
	assert.True(t, ok)
	assert.Equal(t, "t1", tok)
}

func TestAuthService_RegisterStopsOnBackendError(t *testing.T) {
	api := &fakeAPI{registerErr: &client.APIError{Status: 400, Kind: client.KindValidation, Message: "User already exists"}}
	s, _ := newSession(t)

	_, err := NewAuthService(api, s).Register(context.Background(),
		RegisterForm{Email: "a@b.com", Password: "secret1", ConfirmPassword: "secret1"})
	assert.ErrorIs(t, err, client.ErrValidation)
	assert.Equal(t, 1, api.Calls)
}

func TestAuthService_ChangePassword(t *testing.T) {
	api := &fakeAPI{}
	s, _ := newSession(t)
	svc := NewAuthService(api, s)

	_, err := svc.ChangePassword(context.Background(), ChangePasswordForm{CurrentPassword: "old123", NewPassword: "new", ConfirmPassword: "new"})
	assert.Contains(t, client.FieldErrors(err), "new_password")

	msg, err := svc.ChangePassword(context.Background(), ChangePasswordForm{CurrentPassword: "old123", NewPassword: "new123", ConfirmPassword: "new123"})
	require.NoError(t, err)
	assert.Equal(t, "Password changed", msg)
	assert.Equal(t, "new123", api.LastPassword)
}

func TestCredentialService_CreateValidation(t *testing.T) {
	api := &fakeAPI{credential: &models.Credential{ID: "c1"}}
	svc := NewCredentialService(api)

	_, err := svc.Create(context.Background(), models.CredentialInput{ApplicationType: "visitor", NotificationEmail: "bad"})
	require.Error(t, err)
	fields := client.FieldErrors(err)
	assert.Contains(t, fields, "ircc_username")
	assert.Contains(t, fields, "ircc_password")
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "application_type")
	assert.Equal(t, 0, api.Calls)

	c, err := svc.Create(context.Background(), models.CredentialInput{
		IRCCUsername:      " jdoe ",
		IRCCPassword:      "portal-pass",
		NotificationEmail: "n@x.com",
		IsActive:          true,
	})
	require.NoError(t, err)
	assert.Equal(t, "c1", c.ID)
	require.NotNil(t, api.LastInput)
	assert.Equal(t, "jdoe", api.LastInput.IRCCUsername)
	assert.Equal(t, models.ApplicationCitizen, api.LastInput.ApplicationType)
}

func TestCredentialService_UpdateAndToggle(t *testing.T) {
	api := &fakeAPI{credential: &models.Credential{ID: "c1"}}
	svc := NewCredentialService(api)

	_, err := svc.Update(context.Background(), "c1", models.CredentialPatch{})
	assert.ErrorIs(t, err, client.ErrValidation)

	bad := models.ApplicationType("tourist")
	_, err = svc.Update(context.Background(), "c1", models.CredentialPatch{ApplicationType: &bad})
	assert.Contains(t, client.FieldErrors(err), "application_type")

	_, err = svc.SetActive(context.Background(), "c1", false)
	require.NoError(t, err)
	require.NotNil(t, api.LastPatch)
	require.NotNil(t, api.LastPatch.IsActive)
	assert.False(t, *api.LastPatch.IsActive)
	assert.Nil(t, api.LastPatch.IRCCPassword)

	_, err = svc.Get(context.Background(), " ")
	assert.ErrorIs(t, err, client.ErrValidation)

	require.NoError(t, svc.Delete(context.Background(), "c1"))
	assert.Equal(t, "c1", api.LastID)
}

func TestApplicationService_ListSortedByLastUpdated(t *testing.T) {
	api := &fakeAPI{appsRaw: []byte(`{"applications":[
		{"applicationNumber":"old","lastUpdatedTime":100},
		{"applicationNumber":"new","lastUpdatedTime":300},
		{"applicationNumber":"mid","lastUpdatedTime":200}
	]}`)}

	recs, err := NewApplicationService(api).List(context.Background())
	require.NoError(t, err)
	var got []string
	for _, r := range recs {
		got = append(got, r.ApplicationNumber)
	}
	assert.Equal(t, []string{"new", "mid", "old"}, got)
}

func TestApplicationService_LatestAndAt(t *testing.T) {
	api := &fakeAPI{appRaw: []byte(`{"data":{"applicationNumber":"C1","status":"completed"}}`)}
	svc := NewApplicationService(api)

	rec, err := svc.Latest(context.Background(), "C1")
	require.NoError(t, err)
	assert.Equal(t, "C1", rec.ApplicationNumber)

	_, err = svc.At(context.Background(), "C1", "1741944413000")
	require.NoError(t, err)
	assert.Equal(t, "1741944413000", api.LastStamp)

	_, err = svc.Latest(context.Background(), "")
	assert.ErrorIs(t, err, client.ErrValidation)

	api.appErr = &client.APIError{Status: 404, Kind: client.KindNotFound}
	_, err = svc.Latest(context.Background(), "C2")
	assert.ErrorIs(t, err, client.ErrNotFound)
}

func TestAdminService_PropagatesForbidden(t *testing.T) {
	api := &fakeAPI{adminErr: &client.APIError{Status: 403, Kind: client.KindForbidden}}
	svc := NewAdminService(api)

	_, err := svc.Dashboard(context.Background())
	assert.ErrorIs(t, err, client.ErrForbidden)

	api.adminErr = nil
	api.adminMessage = "Check triggered"
	msg, err := svc.CheckAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Check triggered", msg)
}

func openCache(t *testing.T) *sql.DB {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestConfigService_FallsBackToCache(t *testing.T) {
	db := openCache(t)
	repo := cache.NewSQLiteRepository(db)
	api := &fakeAPI{config: &models.PublicConfig{GoogleClientID: "gid", GoogleAnalyticsID: "ga"}}

	first := NewConfigService(api, repo, nil)
	cfg, err := first.PublicConfig(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "gid", cfg.GoogleClientID)

	// A fresh service with the backend down still serves the persisted copy.
	api.config, api.configErr = nil, client.ErrUnavailable
	second := NewConfigService(api, repo, nil)
	cfg, err = second.PublicConfig(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ga", cfg.GoogleAnalyticsID)
}

func TestConfigService_NoCacheReturnsError(t *testing.T) {
	api := &fakeAPI{configErr: errors.New("down")}
	_, err := NewConfigService(api, nil, nil).PublicConfig(context.Background())
	assert.Error(t, err)
}
