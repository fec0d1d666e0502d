package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/irccwatch/internal/client/client"
	"github.com/dmitrijs2005/irccwatch/internal/client/models"
	"github.com/dmitrijs2005/irccwatch/internal/client/status"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCredential() *models.Credential {
	return &models.Credential{
		ID:                "c1",
		UserID:            "u1",
		IRCCUsername:      "portal-user",
		NotificationEmail: "n@b.com",
		IsActive:          true,
		LastStatus:        "In Progress",
		ApplicationNumber: "C000123",
		ApplicationType:   models.ApplicationCitizen,
	}
}

func TestDashboard_AnonymousRedirectsToLogin(t *testing.T) {
	ta := newTestApp(t)

	require.NoError(t, ta.Dashboard(context.Background()))
	assert.Equal(t, "→ /login\n", ta.out.String())
}

func TestDashboard_ListsCredentials(t *testing.T) {
	ta := newTestApp(t)
	ta.loginAs(t, models.RoleUser)
	ta.creds.list = &models.CredentialList{Credentials: []models.Credential{*sampleCredential()}, Total: 1}

	require.NoError(t, ta.Dashboard(context.Background()))

	out := ta.out.String()
	assert.Contains(t, out, "1 credential(s)")
	assert.Contains(t, out, "IRCC USER")
	assert.Contains(t, out, "portal-user")
	assert.Contains(t, out, "C000123")
	assert.NotContains(t, out, "OWNER")
}

func TestAddCredential_SendsInput(t *testing.T) {
	ta := newTestApp(t)
	ta.loginAs(t, models.RoleUser)
	ta.creds.cred = sampleCredential()
	stubInputs(t, []string{"portal-user", "n@b.com", "Immigrant"}, "portal-pass")

	require.NoError(t, ta.AddCredential(context.Background()))

	require.NotNil(t, ta.creds.LastIn)
	assert.Equal(t, models.CredentialInput{
		IRCCUsername:      "portal-user",
		IRCCPassword:      "portal-pass",
		NotificationEmail: "n@b.com",
		IsActive:          true,
		ApplicationType:   models.ApplicationImmigrant,
	}, *ta.creds.LastIn)
	assert.Contains(t, ta.out.String(), "Credential c1 saved")
}

func TestEditCredential_BlankAnswersKeepValues(t *testing.T) {
	ta := newTestApp(t)
	ta.loginAs(t, models.RoleUser)
	ta.creds.cred = sampleCredential()
	stubInputs(t, []string{"", "new@b.com", ""}, "")

	require.NoError(t, ta.EditCredential(context.Background(), "c1"))

	require.NotNil(t, ta.creds.Patch)
	assert.Nil(t, ta.creds.Patch.IRCCUsername)
	assert.Nil(t, ta.creds.Patch.IRCCPassword)
	assert.Nil(t, ta.creds.Patch.ApplicationType)
	require.NotNil(t, ta.creds.Patch.NotificationEmail)
	assert.Equal(t, "new@b.com", *ta.creds.Patch.NotificationEmail)
	assert.Equal(t, "/credentials/c1", ta.nav.Current())
}

func TestEditCredential_NothingToChange(t *testing.T) {
	ta := newTestApp(t)
	ta.loginAs(t, models.RoleUser)
	ta.creds.cred = sampleCredential()
	stubInputs(t, []string{"", "", ""}, "")

	require.NoError(t, ta.EditCredential(context.Background(), "c1"))
	assert.Nil(t, ta.creds.Patch)
	assert.Contains(t, ta.out.String(), "Nothing to change")
}

func TestEditCredential_NotFoundReturnsToDashboard(t *testing.T) {
	ta := newTestApp(t)
	ta.loginAs(t, models.RoleUser)
	ta.creds.err = &client.APIError{Status: 404, Kind: client.KindNotFound, Message: "Credential not found"}

	require.Error(t, ta.EditCredential(context.Background(), "missing"))
	assert.Equal(t, "record not found\n→ /dashboard\n", ta.out.String())
	assert.Equal(t, "/dashboard", ta.nav.Current())
	assert.True(t, ta.isLoggedIn())
}

func TestToggleCredential(t *testing.T) {
	ta := newTestApp(t)
	ta.loginAs(t, models.RoleUser)
	ta.creds.cred = sampleCredential()

	require.NoError(t, ta.ToggleCredential(context.Background(), "c1"))
	require.NotNil(t, ta.creds.Active)
	assert.False(t, *ta.creds.Active)
	assert.Contains(t, ta.out.String(), "Monitoring disabled for c1")
}

func TestDeleteCredential_Confirmation(t *testing.T) {
	ta := newTestApp(t)
	ta.loginAs(t, models.RoleUser)

	stubInputs(t, []string{"n", "y"})

	require.NoError(t, ta.DeleteCredential(context.Background(), "c1"))
	assert.Empty(t, ta.creds.Deleted)
	assert.Contains(t, ta.out.String(), "Cancelled")

	require.NoError(t, ta.DeleteCredential(context.Background(), "c1"))
	assert.Equal(t, []string{"c1"}, ta.creds.Deleted)
	assert.Contains(t, ta.out.String(), "Credential c1 deleted")
}

func sampleRecord() status.ApplicationRecord {
	return status.ApplicationRecord{
		ApplicationNumber: "C000123",
		UCI:               "1234567",
		Status:            status.StatusInProgress,
		LastUpdatedAt:     time.Date(2024, 5, 2, 12, 0, 0, 0, time.UTC).UnixMilli(),
		Activities: []status.Activity{
			{Type: status.ActivityLanguage, Status: status.StatusCompleted, Order: 1},
			{Type: status.ActivityBackgroundVerification, Status: status.StatusInProgress, Order: 2},
		},
		History: []status.HistoryEntry{
			{Timestamp: time.Date(2024, 5, 2, 12, 0, 0, 0, time.UTC).UnixMilli(), Heading: "Background check started", IsNew: true},
			{Timestamp: time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC).UnixMilli(), Heading: "Application received", Description: "We received your application"},
		},
	}
}

func TestApplications_Table(t *testing.T) {
	ta := newTestApp(t)
	ta.loginAs(t, models.RoleUser)
	ta.apps.records = []status.ApplicationRecord{sampleRecord()}

	require.NoError(t, ta.Applications(context.Background()))

	out := ta.out.String()
	assert.Contains(t, out, "C000123")
	assert.Contains(t, out, "In Progress")
	assert.Contains(t, out, "1/2")
}

func TestApplications_Empty(t *testing.T) {
	ta := newTestApp(t)
	ta.loginAs(t, models.RoleUser)

	require.NoError(t, ta.Applications(context.Background()))
	assert.Contains(t, ta.out.String(), "No applications tracked yet")
}

func TestApplication_Detail(t *testing.T) {
	ta := newTestApp(t)
	ta.loginAs(t, models.RoleUser)
	ta.apps.records = []status.ApplicationRecord{sampleRecord()}

	require.NoError(t, ta.Application(context.Background(), "C000123", "1714651200000"))

	assert.Equal(t, "C000123", ta.apps.LastNumber)
	assert.Equal(t, "1714651200000", ta.apps.LastStamp)

	out := ta.out.String()
	assert.Contains(t, out, "Application C000123 (UCI 1234567)")
	assert.Contains(t, out, "Language Test")
	assert.Contains(t, out, "Background Verification")
	assert.Contains(t, out, "* ")
	assert.Contains(t, out, "Background check started")
	assert.Contains(t, out, "    We received your application")
	assert.Less(t, strings.Index(out, "Background check started"), strings.Index(out, "Application received"))
}

func TestAdmin_NonAdminRedirectedToDashboard(t *testing.T) {
	ta := newTestApp(t)
	ta.loginAs(t, models.RoleUser)

	require.NoError(t, ta.Admin(context.Background()))
	assert.Empty(t, ta.admin.calls)
	assert.Equal(t, "→ /dashboard\n", ta.out.String())
}

func TestAdmin_Dashboard(t *testing.T) {
	ta := newTestApp(t)
	ta.loginAs(t, models.RoleAdmin)
	ta.admin.stats = &models.AdminStats{
		Users:        models.UserStats{Total: 3, Active: 2, Inactive: 1},
		Credentials:  models.CredentialStats{Total: 4, StatusDistribution: map[string]int{"In Progress": 3, "Approved": 1}},
		SystemStatus: "healthy",
	}
	ta.creds.list = &models.CredentialList{Credentials: []models.Credential{*sampleCredential()}, Total: 1}

	require.NoError(t, ta.Admin(context.Background()))

	out := ta.out.String()
	assert.Contains(t, out, "System: healthy")
	assert.Contains(t, out, "Users: 3 total, 2 active, 1 inactive")
	assert.Less(t, strings.Index(out, "Approved"), strings.Index(out, "In Progress"))
	assert.Contains(t, out, "OWNER")
	assert.Contains(t, out, "u1")
}

func TestAdmin_ForbiddenKeepsSession(t *testing.T) {
	ta := newTestApp(t)
	ta.loginAs(t, models.RoleAdmin)
	ta.admin.err = &client.APIError{Status: 403, Kind: client.KindForbidden}

	require.Error(t, ta.CheckAll(context.Background()))
	assert.Equal(t, "permission denied\n", ta.out.String())
	assert.True(t, ta.isLoggedIn())
}

func TestAdminActions_Messages(t *testing.T) {
	ta := newTestApp(t)
	ta.loginAs(t, models.RoleAdmin)

	require.NoError(t, ta.CheckAll(context.Background()))
	require.NoError(t, ta.TestEmail(context.Background()))

	assert.Equal(t, []string{"checkall", "testemail"}, ta.admin.calls)
	assert.Equal(t, "Checking 3 credentials\nTest e-mail sent\n", ta.out.String())
}

func TestRenderError_UnauthorizedIsSilent(t *testing.T) {
	ta := newTestApp(t)
	ta.renderError(context.Background(), &client.APIError{Status: 401, Kind: client.KindUnauthorized})
	ta.renderError(context.Background(), context.Canceled)
	assert.Empty(t, ta.out.String())
}

func TestRenderError_Unknown(t *testing.T) {
	ta := newTestApp(t)
	ta.renderError(context.Background(), &client.APIError{Status: 500, Kind: client.KindServer, Message: "boom"})
	assert.Contains(t, ta.out.String(), "error:")
}

func TestNavigator(t *testing.T) {
	ta := newTestApp(t)

	_, _, ok := ta.nav.enter("/nowhere")
	assert.False(t, ok)
	assert.Contains(t, ta.out.String(), "Unknown screen: /nowhere")

	ta.loginAs(t, models.RoleUser)
	_, params, ok := ta.nav.enter("/applications/C1")
	require.True(t, ok)
	assert.Equal(t, "C1", params["number"])

	ta.out.Reset()
	ta.nav.redirect(context.Background(), "/applications/C1")
	assert.Empty(t, ta.out.String(), "redirect to the current screen is silent")
}

func TestSessionUnauthorizedHookRedirects(t *testing.T) {
	ta := newTestApp(t)
	ta.loginAs(t, models.RoleUser)
	ta.nav.enter("/dashboard")

	ta.session.HandleUnauthorized(context.Background())

	assert.False(t, ta.isLoggedIn())
	assert.Equal(t, "/login", ta.nav.Current())
	assert.Equal(t, "→ /login\n", ta.out.String())
}

func TestApp_ReaderIsUsedForPrompts(t *testing.T) {
	ta := newTestApp(t)
	ta.reader = bufio.NewReader(strings.NewReader("y\n"))

	yes, err := Confirm(ta.reader, "ok?", ta.out)
	require.NoError(t, err)
	assert.True(t, yes)
}
