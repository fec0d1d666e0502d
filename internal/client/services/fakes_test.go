package services

import (
	"context"
	"encoding/json"

	"github.com/dmitrijs2005/irccwatch/internal/client/client"
	"github.com/dmitrijs2005/irccwatch/internal/client/models"
)

// fakeAPI records the last inputs and replays preset outputs.
type fakeAPI struct {
	client.API

	LastEmail, LastPassword string
	LastInput               *models.CredentialInput
	LastPatch               *models.CredentialPatch
	LastID                  string
	LastNumber, LastStamp   string
	Calls                   int

	loginResp    *models.LoginResponse
	loginErr     error
	registerErr  error
	changeErr    error
	credential   *models.Credential
	credErr      error
	appsRaw      json.RawMessage
	appRaw       json.RawMessage
	appErr       error
	config       *models.PublicConfig
	configErr    error
	stats        *models.AdminStats
	adminErr     error
	adminMessage string
}

func (f *fakeAPI) Login(ctx context.Context, email, password string) (*models.LoginResponse, error) {
	f.Calls++
	f.LastEmail, f.LastPassword = email, password
	return f.loginResp, f.loginErr
}

func (f *fakeAPI) Register(ctx context.Context, email, password string) (string, error) {
	f.Calls++
	f.LastEmail, f.LastPassword = email, password
	return "User registered successfully", f.registerErr
}

func (f *fakeAPI) ChangePassword(ctx context.Context, current, next string) (string, error) {
	f.Calls++
	f.LastPassword = next
	return "Password changed", f.changeErr
}

func (f *fakeAPI) CreateCredential(ctx context.Context, in models.CredentialInput) (*models.Credential, error) {
	f.Calls++
	f.LastInput = &in
	return f.credential, f.credErr
}

func (f *fakeAPI) UpdateCredential(ctx context.Context, id string, patch models.CredentialPatch) (*models.Credential, error) {
	f.Calls++
	f.LastID = id
	f.LastPatch = &patch
	return f.credential, f.credErr
}

func (f *fakeAPI) Credential(ctx context.Context, id string) (*models.Credential, error) {
	f.Calls++
	f.LastID = id
	return f.credential, f.credErr
}

func (f *fakeAPI) DeleteCredential(ctx context.Context, id string) error {
	f.Calls++
	f.LastID = id
	return f.credErr
}

func (f *fakeAPI) Applications(ctx context.Context) (json.RawMessage, error) {
	f.Calls++
	return f.appsRaw, f.appErr
}

func (f *fakeAPI) LatestApplication(ctx context.Context, number string) (json.RawMessage, error) {
	f.Calls++
	f.LastNumber = number
	return f.appRaw, f.appErr
}

func (f *fakeAPI) ApplicationAt(ctx context.Context, number, timestamp string) (json.RawMessage, error) {
	f.Calls++
	f.LastNumber, f.LastStamp = number, timestamp
	return f.appRaw, f.appErr
}

func (f *fakeAPI) PublicConfig(ctx context.Context) (*models.PublicConfig, error) {
	f.Calls++
	return f.config, f.configErr
}

func (f *fakeAPI) AdminDashboard(ctx context.Context) (*models.AdminStats, error) {
	f.Calls++
	return f.stats, f.adminErr
}

func (f *fakeAPI) CheckAll(ctx context.Context) (string, error) {
	f.Calls++
	return f.adminMessage, f.adminErr
}

func (f *fakeAPI) TestEmail(ctx context.Context) (string, error) {
	f.Calls++
	return f.adminMessage, f.adminErr
}
